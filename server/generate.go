package server

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	scribex "github.com/fhswno/scribex-js-sub001"
)

type generateRequest struct {
	Provider     string                 `json:"provider"`
	Prompt       string                 `json:"prompt"`
	Context      []scribex.ContextBlock `json:"context"`
	Temperature  *float64               `json:"temperature"`
	MaxTokens    *int                   `json:"maxTokens"`
	SystemPrompt *string                `json:"systemPrompt"`
}

// Generate handles POST /api/generate. A success is a streamed plain-text
// body with chunks flushed as the backend produces them; a failure before
// the first fragment is a non-success status with an {error} JSON body.
// A failure after output has begun aborts the connection, since the status
// line is already on the wire; the client sees its body read fail instead of
// a clean end of stream.
func Generate(providers *scribex.Registry, defaultProvider scribex.ProviderID) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if req.Prompt == "" {
			writeError(w, http.StatusBadRequest, "prompt is required")
			return
		}

		id := scribex.ProviderID(req.Provider)
		if id == "" {
			id = defaultProvider
		}
		provider, ok := providers.Get(id)
		if !ok {
			writeError(w, http.StatusBadRequest, "unknown provider: "+id.String())
			return
		}

		genReq := &scribex.GenerateRequest{
			Prompt:  req.Prompt,
			Context: req.Context,
		}
		if req.Temperature != nil || req.MaxTokens != nil || req.SystemPrompt != nil {
			genReq.Config = &scribex.GenerateConfig{
				Temperature:  req.Temperature,
				MaxTokens:    req.MaxTokens,
				SystemPrompt: req.SystemPrompt,
			}
		}

		start := time.Now()
		stream, err := provider.Generate(r.Context(), genReq)
		if err != nil {
			slog.Error("generation failed",
				"request_id", RequestIDFromContext(r.Context()),
				"provider", id,
				"err", err,
			)
			writeError(w, errorStatus(err), errorMessage(err))
			return
		}
		defer stream.Close()

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)

		flusher, _ := w.(http.Flusher)
		for stream.Next() {
			if _, err := io.WriteString(w, stream.Current()); err != nil {
				// Client went away; the deferred Close aborts the backend call.
				return
			}
			if flusher != nil {
				flusher.Flush()
			}
		}
		generateDuration.WithLabelValues(id.String()).Observe(time.Since(start).Seconds())

		if err := stream.Err(); err != nil {
			slog.Warn("generation stream aborted",
				"request_id", RequestIDFromContext(r.Context()),
				"provider", id,
				"err", err,
			)
			// The status line is already on the wire, so the only way to make
			// the truncation observable is to drop the connection instead of
			// writing a clean terminating chunk. Fragments delivered so far
			// remain valid.
			panic(http.ErrAbortHandler)
		}
	}
}

// errorStatus maps a generation failure to the status returned to the
// editor. A backend-reported status is passed through; anything else is a
// bad gateway.
func errorStatus(err error) int {
	var perr *scribex.ProviderError
	if errors.As(err, &perr) && perr.StatusCode >= 400 {
		return perr.StatusCode
	}
	return http.StatusBadGateway
}

// errorMessage extracts the best available failure message.
func errorMessage(err error) string {
	var perr *scribex.ProviderError
	if errors.As(err, &perr) {
		return perr.Message
	}
	return err.Error()
}
