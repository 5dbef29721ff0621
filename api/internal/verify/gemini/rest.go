package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"

	"verify-image/api/internal/verify"
)

const DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// REST talks to generateContent over plain HTTP, key in the query string.
type REST struct {
	APIKey  string
	Model   string
	BaseURL string
	httpc   *http.Client
}

// NewREST builds the engine. The client has no timeout; the caller's context bounds the call.
func NewREST(key, model, baseURL string) *REST {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	return &REST{
		APIKey:  strings.TrimSpace(key),
		Model:   strings.TrimSpace(model),
		BaseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{},
	}
}

func (e *REST) Name() string { return "gemini-rest" }

func (e *REST) Generate(ctx context.Context, p verify.Payload) (string, error) {
	if e.APIKey == "" {
		return "", verify.ErrMissingAPIKey
	}

	body := generateRequest{
		Contents: []content{{
			Parts: []part{
				{Text: p.Prompt},
				{InlineData: &inlineData{MIMEType: p.MIMEType, Data: p.ImageB64}},
			},
		}},
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return "", verify.Errorf(verify.UpstreamError, "encode request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s", e.BaseURL, url.PathEscape(e.Model), url.QueryEscape(e.APIKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", verify.Errorf(verify.NetworkError, "build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.httpc.Do(req)
	if err != nil {
		// *url.Error embeds the URL, which carries the key
		return "", verify.NewError(verify.NetworkError, redact(err.Error(), e.APIKey), err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", verify.Errorf(verify.NetworkError, "read upstream body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("[%s] gemini error %d: %s", verify.RequestID(ctx), resp.StatusCode, string(raw))
		return "", verify.NewError(verify.UpstreamError, vendorMessage(raw), nil)
	}

	var out generateResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", verify.Errorf(verify.UpstreamError, "bad upstream json: %w", err)
	}
	txt := out.firstText()
	if txt == "" {
		return "", verify.ErrEmptyAnswer
	}
	return txt, nil
}

// vendorMessage pulls error.message out of an error body, or falls back to the generic rejection.
func vendorMessage(raw []byte) string {
	var eb errorBody
	if err := json.Unmarshal(raw, &eb); err == nil && eb.Error != nil {
		if strings.TrimSpace(eb.Error.Message) != "" {
			return eb.Error.Message
		}
	}
	return verify.MsgUpstreamRejected
}

func redact(s, secret string) string {
	if secret == "" {
		return s
	}
	s = strings.ReplaceAll(s, url.QueryEscape(secret), "***")
	return strings.ReplaceAll(s, secret, "***")
}
