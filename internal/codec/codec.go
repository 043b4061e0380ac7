// Package codec provides the pure data transforms used throughout the SDK:
// PEM wrapping, standard base64 and lowercase hex. All transforms are
// stateless and round-trip exactly, including for empty input.
//
// Base64 uses the standard padded alphabet so that output is byte-for-byte
// compatible with the browser client (window.btoa / window.atob).
package codec

import (
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// ErrDecode is returned when input to any decode transform is malformed.
var ErrDecode = errors.New("malformed encoding")

// pemLineLength is the maximum line length of base64 payload in PEM output.
const pemLineLength = 64

// PEMEncode wraps data in a PEM envelope with the given label. The base64
// payload is wrapped at 64 characters per line.
func PEMEncode(label string, data []byte) string {
	b64 := base64.StdEncoding.EncodeToString(data)

	var sb strings.Builder
	sb.WriteString("-----BEGIN " + label + "-----\n")
	for len(b64) > pemLineLength {
		sb.WriteString(b64[:pemLineLength])
		sb.WriteByte('\n')
		b64 = b64[pemLineLength:]
	}
	sb.WriteString(b64)
	sb.WriteString("\n-----END " + label + "-----")
	return sb.String()
}

// PEMDecode strips the PEM envelope and decodes the base64 payload. The label
// is not checked against a specific value, but both BEGIN and END markers must
// be present. Interior whitespace is ignored.
func PEMDecode(pemData string) ([]byte, error) {
	begin := strings.Index(pemData, "-----BEGIN ")
	if begin == -1 {
		return nil, fmt.Errorf("%w: missing PEM begin marker", ErrDecode)
	}
	body := pemData[begin+len("-----BEGIN "):]
	headerEnd := strings.Index(body, "-----")
	if headerEnd == -1 {
		return nil, fmt.Errorf("%w: malformed PEM header", ErrDecode)
	}
	body = body[headerEnd+5:]

	end := strings.Index(body, "-----END ")
	if end == -1 {
		return nil, fmt.Errorf("%w: missing PEM end marker", ErrDecode)
	}
	body = body[:end]

	b64 := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r':
			return -1
		}
		return r
	}, body)

	data, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid base64 in PEM body", ErrDecode)
	}
	return data, nil
}

// Base64Encode encodes bytes as standard padded base64.
func Base64Encode(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// Base64Decode decodes standard padded base64.
func Base64Decode(s string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid base64", ErrDecode)
	}
	return data, nil
}

// HexEncode encodes bytes as lowercase hex.
func HexEncode(data []byte) string {
	return hex.EncodeToString(data)
}

// HexDecode decodes lowercase or uppercase hex. Odd-length or non-hex input
// fails with ErrDecode.
func HexDecode(s string) ([]byte, error) {
	data, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid hex", ErrDecode)
	}
	return data, nil
}
