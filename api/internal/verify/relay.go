package verify

import (
	"context"
	"log"
	"strings"
	"time"

	"verify-image/api/internal/prompt"
	"verify-image/api/internal/util"
)

type Options struct {
	APIKey string
	// Timeout bounds the upstream call; zero leaves it to the caller's context.
	Timeout time.Duration
}

// Relay checks a request, renders the prompt and asks the engine for a verdict.
// It holds no per-call state and is safe for concurrent use.
type Relay struct {
	eng     Engine
	tmpl    *prompt.Template
	timeout time.Duration
	initErr error
}

// New never fails: a missing API key is kept and reported by every call.
func New(opt Options, eng Engine, tmpl *prompt.Template) *Relay {
	r := &Relay{eng: eng, tmpl: tmpl, timeout: opt.Timeout}
	if strings.TrimSpace(opt.APIKey) == "" {
		r.initErr = ErrMissingAPIKey
	}
	return r
}

// Ready reports the configuration error, if any.
func (r *Relay) Ready() error { return r.initErr }

func (r *Relay) Verify(ctx context.Context, req Request) (Result, error) {
	if r.initErr != nil {
		return Result{}, r.initErr
	}
	if err := req.Validate(); err != nil {
		return Result{}, err
	}

	p := Payload{
		Prompt:   r.tmpl.Render(req.ProductName),
		MIMEType: r.tmpl.MIMEType,
		ImageB64: util.StripDataURL(req.ImageBase64),
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	log.Printf("[%s] sending verification request for: %q (engine=%s)", RequestID(ctx), req.ProductName, r.eng.Name())
	text, err := r.eng.Generate(ctx, p)
	if err != nil {
		return Result{}, err
	}
	return Result{Text: text}, nil
}
