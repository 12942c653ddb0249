package server

import (
	"net/http"

	scribex "github.com/fhswno/scribex-js-sub001"
)

type healthResponse struct {
	Status    string   `json:"status"`
	Providers []string `json:"providers"`
}

// Health reports the configured providers. It does not probe backends;
// a provider's availability is only observable by calling it.
func Health(providers *scribex.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		names := providers.Names()
		list := make([]string, len(names))
		for i, id := range names {
			list[i] = id.String()
		}
		writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Providers: list})
	}
}
