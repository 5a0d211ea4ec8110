// Package request carries per-call wire parameters for the REST surface.
package request

import (
	"fmt"

	"github.com/google/uuid"
)

// APIContext wraps the parameters of one outbound API call: the mandatory
// access token, an idempotency request id, custom headers, and per-call
// configuration overrides. Not safe for concurrent mutation; build one
// per call.
type APIContext struct {
	accessToken   string
	requestID     string
	maskRequestID bool

	// Headers are custom per-call HTTP headers.
	Headers map[string]string
	// Config holds per-call configuration overrides.
	Config map[string]string
}

// NewAPIContext creates a context for the given access token, which must
// be header-ready ("Bearer xxx...").
func NewAPIContext(accessToken string) (*APIContext, error) {
	if accessToken == "" {
		return nil, fmt.Errorf("access token is required")
	}
	return &APIContext{accessToken: accessToken}, nil
}

// AccessToken returns the access token.
func (c *APIContext) AccessToken() string { return c.accessToken }

// SetRequestID sets an explicit idempotency id.
func (c *APIContext) SetRequestID(id string) error {
	if id == "" {
		return fmt.Errorf("request id cannot be empty")
	}
	c.requestID = id
	return nil
}

// SetMaskRequestID suppresses the request id; RequestID then returns ""
// so callers can skip the idempotency header entirely.
func (c *APIContext) SetMaskRequestID(mask bool) { c.maskRequestID = mask }

// RequestID returns the idempotency id, generating one on first use. Once
// generated the id is stable for the lifetime of the context. Returns ""
// when masked.
func (c *APIContext) RequestID() string {
	if c.maskRequestID {
		return ""
	}
	if c.requestID == "" {
		c.requestID = uuid.New().String()
	}
	return c.requestID
}
