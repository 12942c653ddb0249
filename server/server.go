// Package server exposes the generation gateway and the highlighting service
// over HTTP to the editor client.
package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	scribex "github.com/fhswno/scribex-js-sub001"
	"github.com/fhswno/scribex-js-sub001/highlight"
)

// SetupMux wires the handlers with the full middleware chain.
func SetupMux(providers *scribex.Registry, highlighter *highlight.Service, defaultProvider scribex.ProviderID) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/generate", Generate(providers, defaultProvider))
	mux.HandleFunc("/api/highlight", Highlight(highlighter))
	mux.HandleFunc("/api/health", Health(providers))
	mux.Handle("/metrics", promhttp.Handler())
	return Chain(mux)
}
