package secretbin

import (
	"context"

	"go.uber.org/zap"

	"github.com/secretbin/client-go/internal/api"
)

// Verification is an in-flight email verification exchange. The code is
// delivered out of band to the recipient; exchanging it yields a signed
// token that authorizes one email delivery and is not reusable across
// secrets.
type Verification struct {
	VerifyID string
	Code     string
}

// RequestVerification starts an email verification exchange for delivery to
// toEmail. The fromEmail is shown to the recipient as the sender.
func (c *Client) RequestVerification(ctx context.Context, toEmail, fromEmail string) (*Verification, error) {
	if toEmail == "" {
		return nil, c.fail(&ValidationError{Fields: []string{"toEmail"}})
	}

	resp, err := c.apiClient.RequestVerification(ctx, &api.VerifyRequestRequest{
		ToEmail:   toEmail,
		FromEmail: fromEmail,
	})
	if err != nil {
		return nil, c.fail(err)
	}

	c.log.Debug("verification requested", zap.String("verifyId", resp.VerifyID))

	return &Verification{
		VerifyID: resp.VerifyID,
		Code:     resp.Code,
	}, nil
}

// Verify exchanges a one-time verification code for a verified token.
// A rejected code fails with ErrVerificationFailed; the exchange is consumed
// either way and must be restarted with RequestVerification.
func (c *Client) Verify(ctx context.Context, verifyID, code string) (string, error) {
	var missing []string
	if verifyID == "" {
		missing = append(missing, "verifyId")
	}
	if code == "" {
		missing = append(missing, "code")
	}
	if len(missing) > 0 {
		return "", c.fail(&ValidationError{Fields: missing})
	}

	resp, err := c.apiClient.Verify(ctx, &api.VerifyRequest{
		VerifyID: verifyID,
		Code:     code,
	})
	if err != nil {
		return "", c.fail(err)
	}
	if !resp.OK || resp.VerifiedToken == "" {
		return "", c.fail(ErrVerificationFailed)
	}

	c.log.Debug("email verified", zap.String("verifyId", verifyID))

	return resp.VerifiedToken, nil
}
