package verify

import (
	"context"
	"strings"
)

// Request is the inbound body sent by the mobile client.
type Request struct {
	ProductName string `json:"productName"`
	ImageBase64 string `json:"imageBase64"` // JPEG, base64 (a data: prefix is tolerated)
}

// Validate reports ErrEmptyInput when either field is missing or blank.
func (r Request) Validate() error {
	if strings.TrimSpace(r.ProductName) == "" || strings.TrimSpace(r.ImageBase64) == "" {
		return ErrEmptyInput
	}
	return nil
}

// Result carries the upstream text verbatim, conventionally "STATUS|REASON".
type Result struct {
	Text string `json:"result"`
}

// Payload is what an Engine sends upstream: one instruction part and one inline image part.
type Payload struct {
	Prompt   string
	MIMEType string
	ImageB64 string
}

type Engine interface {
	Name() string
	Generate(ctx context.Context, p Payload) (string, error)
}

type ctxKey struct{}

// WithRequestID tags ctx with an id that shows up in relay log lines.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

func RequestID(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKey{}).(string); ok && v != "" {
		return v
	}
	return "-"
}
