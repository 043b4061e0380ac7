package api

import "context"

// CreateSecret stores a new secret and returns its id and burn deadline.
func (c *Client) CreateSecret(ctx context.Context, req *CreateSecretRequest) (*CreateSecretResponse, error) {
	var result CreateSecretResponse
	if err := c.post(ctx, "/api/secret/", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// RetrieveSecret fetches a secret payload. The call is one-shot: the server
// destroys the secret on first successful retrieval.
func (c *Client) RetrieveSecret(ctx context.Context, req *RetrieveSecretRequest) (*RetrieveSecretResponse, error) {
	var result RetrieveSecretResponse
	if err := c.post(ctx, "/api/secret/retrieve/", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreateRequest creates a placeholder for a secret someone else will provide.
func (c *Client) CreateRequest(ctx context.Context, req *CreateRequestRequest) (*CreateRequestResponse, error) {
	var result CreateRequestResponse
	if err := c.post(ctx, "/api/request/", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// RetrieveRequest fetches the fulfilment challenge for an open request.
func (c *Client) RetrieveRequest(ctx context.Context, req *RetrieveRequestRequest) (*RetrieveRequestResponse, error) {
	var result RetrieveRequestResponse
	if err := c.post(ctx, "/api/request/retrieve/", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// FulfilRequest satisfies an open request, consuming its fulfilment id.
func (c *Client) FulfilRequest(ctx context.Context, req *FulfilRequestRequest) (*FulfilRequestResponse, error) {
	var result FulfilRequestResponse
	if err := c.post(ctx, "/api/request/fulfil/", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// RequestVerification starts an email verification exchange.
func (c *Client) RequestVerification(ctx context.Context, req *VerifyRequestRequest) (*VerifyRequestResponse, error) {
	var result VerifyRequestResponse
	if err := c.post(ctx, "/api/verify/request/", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Verify exchanges a one-time code for a signed verified token.
func (c *Client) Verify(ctx context.Context, req *VerifyRequest) (*VerifyResponse, error) {
	var result VerifyResponse
	if err := c.post(ctx, "/api/verify/", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
