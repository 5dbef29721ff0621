package gemini

import (
	"fmt"
	"strings"

	"verify-image/api/internal/verify"
)

// NewEngine picks the transport by name: "rest" (default) or "sdk".
func NewEngine(kind, key, model, baseURL string) (verify.Engine, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", "rest":
		return NewREST(key, model, baseURL), nil
	case "sdk":
		return NewSDK(key, model, baseURL), nil
	default:
		return nil, fmt.Errorf("unknown engine %q; use 'rest' or 'sdk'", kind)
	}
}
