package handle

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"verify-image/api/internal/verify"
)

type fakeVerifier struct {
	readyErr error
	res      verify.Result
	err      error
	calls    int
	got      verify.Request
	reqID    string
}

func (f *fakeVerifier) Ready() error { return f.readyErr }

func (f *fakeVerifier) Verify(ctx context.Context, req verify.Request) (verify.Result, error) {
	f.calls++
	f.got = req
	f.reqID = verify.RequestID(ctx)
	return f.res, f.err
}

func do(h *Handle, method, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/verify-image", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.VerifyImage(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var m map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	return m
}

func TestVerifyImageOptions(t *testing.T) {
	fv := &fakeVerifier{readyErr: verify.ErrMissingAPIKey}
	rec := do(New(fv, 0), http.MethodOptions, "garbage")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Zero(t, fv.calls)
}

func TestVerifyImageSuccess(t *testing.T) {
	fv := &fakeVerifier{res: verify.Result{Text: "valid|Gambar sesuai dengan produk."}}
	rec := do(New(fv, 0), http.MethodPost, `{"productName":"Laptop ASUS","imageBase64":"/9j/4AAQ"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, map[string]string{"result": "valid|Gambar sesuai dengan produk."}, decode(t, rec))
	assert.Equal(t, verify.Request{ProductName: "Laptop ASUS", ImageBase64: "/9j/4AAQ"}, fv.got)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
	assert.Equal(t, rec.Header().Get("X-Request-Id"), fv.reqID)
}

func TestVerifyImageConfigErrorBeforeBody(t *testing.T) {
	fv := &fakeVerifier{readyErr: verify.ErrMissingAPIKey}
	rec := do(New(fv, 0), http.MethodPost, `not json at all`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, map[string]string{"error": verify.MsgMissingAPIKey}, decode(t, rec))
	assert.Zero(t, fv.calls)
}

func TestVerifyImageBadJSON(t *testing.T) {
	for _, body := range []string{``, `{`, `[1,2]`, `{"productName":5}`} {
		fv := &fakeVerifier{}
		rec := do(New(fv, 0), http.MethodPost, body)

		assert.Equal(t, http.StatusInternalServerError, rec.Code, "body %q", body)
		assert.True(t, strings.HasPrefix(decode(t, rec)["error"], "bad json: "))
		assert.Zero(t, fv.calls)
	}
}

func TestVerifyImageTrailingData(t *testing.T) {
	for _, body := range []string{
		`{"productName":"Laptop ASUS","imageBase64":"abc"} trailing`,
		`{"productName":"Laptop ASUS","imageBase64":"abc"}{"productName":"x"}`,
		`{"productName":"Laptop ASUS","imageBase64":"abc"} {`,
	} {
		fv := &fakeVerifier{res: verify.Result{Text: "valid|x"}}
		rec := do(New(fv, 0), http.MethodPost, body)

		assert.Equal(t, http.StatusInternalServerError, rec.Code, "body %q", body)
		assert.True(t, strings.HasPrefix(decode(t, rec)["error"], "bad json: "))
		assert.Zero(t, fv.calls)
	}
}

func TestVerifyImageTrailingWhitespaceAccepted(t *testing.T) {
	fv := &fakeVerifier{res: verify.Result{Text: "valid|x"}}
	rec := do(New(fv, 0), http.MethodPost, "{\"productName\":\"Laptop ASUS\",\"imageBase64\":\"abc\"}\n  \n")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, fv.calls)
}

func TestVerifyImageBodyTooLarge(t *testing.T) {
	fv := &fakeVerifier{}
	body := `{"productName":"x","imageBase64":"` + strings.Repeat("A", 128) + `"}`
	rec := do(New(fv, 32), http.MethodPost, body)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, decode(t, rec)["error"], "bad json")
	assert.Zero(t, fv.calls)
}

func TestVerifyImageRelayErrorIsUniform500(t *testing.T) {
	errs := []error{
		verify.ErrEmptyInput,
		verify.ErrEmptyAnswer,
		verify.NewError(verify.UpstreamError, "API key not valid.", nil),
		verify.NewError(verify.NetworkError, "dial tcp: refused", nil),
	}
	for _, e := range errs {
		fv := &fakeVerifier{err: e}
		rec := do(New(fv, 0), http.MethodPost, `{"productName":"a","imageBase64":"b"}`)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, map[string]string{"error": e.Error()}, decode(t, rec))
	}
}
