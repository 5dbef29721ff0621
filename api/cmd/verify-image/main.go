package main

import (
	"log"

	"verify-image/api/internal/config"
	"verify-image/api/internal/handle"
	"verify-image/api/internal/httpserver"
	"verify-image/api/internal/prompt"
	"verify-image/api/internal/verify"
	"verify-image/api/internal/verify/gemini"
)

func main() {
	cfg := config.Load()

	tmpl, err := prompt.Load(cfg.PromptFile)
	if err != nil {
		log.Fatalf("prompt: %v", err)
	}
	eng, err := gemini.NewEngine(cfg.Engine, cfg.APIKey, cfg.Model, cfg.BaseURL)
	if err != nil {
		log.Fatalf("engine: %v", err)
	}

	relay := verify.New(verify.Options{APIKey: cfg.APIKey, Timeout: cfg.UpstreamTimeout}, eng, tmpl)
	if err := relay.Ready(); err != nil {
		// keep serving: every request will answer with this error
		log.Printf("WARNING: %v (set GOOGLE_API_KEY)", err)
	}
	log.Printf("engine=%s model=%s prompt=%s v%s", eng.Name(), cfg.Model, tmpl.Name, tmpl.Version)

	h := handle.New(relay, cfg.MaxBodyBytes)

	log.Fatal(httpserver.StartHTTP(":"+cfg.Port, httpserver.NewRouter(h)))
}
