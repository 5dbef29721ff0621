package gemini

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"verify-image/api/internal/util"
	"verify-image/api/internal/verify"
)

// SDK goes through the generative-ai-go client. The image has to be decoded
// here because the SDK wants raw bytes.
type SDK struct {
	APIKey string
	Model  string
	// Endpoint is the host the SDK talks to; empty keeps the SDK default.
	Endpoint string
}

// NewSDK shares GEMINI_BASE_URL with the REST engine. The SDK appends its own
// API version, so a trailing /v1 or /v1beta is dropped.
func NewSDK(key, model, baseURL string) *SDK {
	return &SDK{
		APIKey:   strings.TrimSpace(key),
		Model:    strings.TrimSpace(model),
		Endpoint: sdkEndpoint(baseURL),
	}
}

func (e *SDK) Name() string { return "gemini-sdk" }

func (e *SDK) Generate(ctx context.Context, p verify.Payload) (string, error) {
	if e.APIKey == "" {
		return "", verify.ErrMissingAPIKey
	}
	img, err := util.DecodeBase64(p.ImageB64)
	if err != nil {
		return "", verify.Errorf(verify.ValidationError, "bad image base64: %w", err)
	}

	opts := []option.ClientOption{option.WithAPIKey(e.APIKey)}
	if e.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(e.Endpoint))
	}
	cl, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return "", verify.Errorf(verify.NetworkError, "init gemini client: %w", err)
	}
	defer cl.Close()

	m := cl.GenerativeModel(e.Model)
	resp, err := m.GenerateContent(ctx,
		genai.Text(p.Prompt),
		genai.Blob{MIMEType: p.MIMEType, Data: img},
	)
	if err != nil {
		// a blocked prompt or a SAFETY/RECITATION finish is a 200 without text
		var berr *genai.BlockedError
		if errors.As(err, &berr) {
			return "", verify.ErrEmptyAnswer
		}
		return "", verify.NewError(verify.UpstreamError, sdkMessage(err), err)
	}

	txt := firstText(resp)
	if txt == "" {
		return "", verify.ErrEmptyAnswer
	}
	return txt, nil
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil || resp.Candidates[0].Content == nil {
		return ""
	}
	parts := resp.Candidates[0].Content.Parts
	if len(parts) == 0 {
		return ""
	}
	if t, ok := parts[0].(genai.Text); ok {
		return string(t)
	}
	return ""
}

func sdkMessage(err error) string {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && strings.TrimSpace(gerr.Message) != "" {
		return gerr.Message
	}
	if m := strings.TrimSpace(err.Error()); m != "" {
		return m
	}
	return verify.MsgUpstreamRejected
}

// sdkEndpoint turns a REST base URL into the SDK endpoint. The public default
// maps to "" so the SDK keeps its own transport settings.
func sdkEndpoint(baseURL string) string {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" || base == DefaultBaseURL {
		return ""
	}
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	for _, v := range []string{"/v1beta", "/v1"} {
		if strings.HasSuffix(u.Path, v) {
			u.Path = strings.TrimSuffix(u.Path, v)
			break
		}
	}
	return strings.TrimRight(u.String(), "/")
}
