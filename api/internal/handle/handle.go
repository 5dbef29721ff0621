package handle

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"verify-image/api/internal/verify"
)

const defaultMaxBody = 20 << 20

// Verifier is what the handler needs from the relay.
type Verifier interface {
	Ready() error
	Verify(ctx context.Context, req verify.Request) (verify.Result, error)
}

type Handle struct {
	v       Verifier
	maxBody int64
}

func New(v Verifier, maxBody int64) *Handle {
	if maxBody <= 0 {
		maxBody = defaultMaxBody
	}
	return &Handle{
		v:       v,
		maxBody: maxBody,
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError is the only place an error turns into a response: logged, then 500 {"error": msg}.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	log.Printf("[%s] verify-image error (%s): %s", verify.RequestID(ctx), verify.KindOf(err), err.Error())
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
}
