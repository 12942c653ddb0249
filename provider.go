package scribex

import (
	"context"
	"sort"
)

// Provider defines the interface that all generation backends must implement.
// Backends are interchangeable: each one accepts the same request shape and
// returns its output as a stream of text fragments. The caller selects which
// provider to use; the gateway never substitutes one provider for another and
// never retries across providers.
type Provider interface {
	// Generate sends one generation request to the backend and returns the
	// response as a text-fragment stream. The first fragment is deliverable
	// before the backend finishes sending.
	//
	// A backend or transport failure before any output was produced is
	// returned as the error. A failure after streaming has begun surfaces
	// through the stream's Err method; fragments already delivered remain
	// valid.
	//
	// Each call owns its own connection and stream. Concurrent calls,
	// including calls against the same provider, are fully independent.
	Generate(ctx context.Context, req *GenerateRequest) (*TextStream, error)

	// Name returns the provider identifier (e.g., "anthropic", "lorem").
	Name() ProviderID
}

// ProviderID represents a unique provider identifier.
// Using a typed string prevents typos when looking providers up by name.
// Generic HTTP backends carry whatever name they were configured with.
type ProviderID string

// Known provider identifiers
const (
	// ProviderAnthropic is Anthropic's Claude API
	ProviderAnthropic ProviderID = "anthropic"

	// ProviderLorem is the mock Lorem provider for development and testing
	ProviderLorem ProviderID = "lorem"
)

// String returns the string representation of the provider ID
func (p ProviderID) String() string {
	return string(p)
}

// Registry holds the configured providers, keyed by name.
// It is populated once at startup and read-only afterwards, so lookups
// require no locking.
type Registry struct {
	providers map[ProviderID]Provider
}

// NewRegistry creates a registry from the given providers.
// A later provider with the same name replaces an earlier one.
func NewRegistry(providers ...Provider) *Registry {
	r := &Registry{providers: make(map[ProviderID]Provider, len(providers))}
	for _, p := range providers {
		r.providers[p.Name()] = p
	}
	return r
}

// Get returns the provider registered under id.
func (r *Registry) Get(id ProviderID) (Provider, bool) {
	p, ok := r.providers[id]
	return p, ok
}

// Names returns the registered provider names in sorted order.
func (r *Registry) Names() []ProviderID {
	names := make([]ProviderID, 0, len(r.providers))
	for id := range r.providers {
		names = append(names, id)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}
