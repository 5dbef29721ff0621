package handle

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/google/uuid"

	"verify-image/api/internal/verify"
)

// VerifyImage serves the verify-image endpoint. OPTIONS answers the browser
// preflight; every other method goes through the relay.
func (h *Handle) VerifyImage(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
		return
	}

	id := uuid.NewString()
	w.Header().Set("X-Request-Id", id)
	ctx := verify.WithRequestID(r.Context(), id)

	res, err := h.verify(ctx, w, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handle) verify(ctx context.Context, w http.ResponseWriter, r *http.Request) (verify.Result, error) {
	// config problems are reported before the body is even looked at
	if err := h.v.Ready(); err != nil {
		return verify.Result{}, err
	}

	var req verify.Request
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, h.maxBody))
	if err := dec.Decode(&req); err != nil {
		return verify.Result{}, verify.Errorf(verify.ValidationError, "bad json: %w", err)
	}
	// exactly one JSON value; anything but whitespace after it is rejected
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return verify.Result{}, verify.Errorf(verify.ValidationError, "bad json: unexpected data after body")
	}
	return h.v.Verify(ctx, req)
}
