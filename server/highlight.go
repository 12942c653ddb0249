package server

import (
	"encoding/json"
	"net/http"

	"github.com/fhswno/scribex-js-sub001/highlight"
)

type highlightResponse struct {
	HTML string `json:"html"`
}

// Highlight handles POST /api/highlight. The boundary is lenient by
// contract: a malformed body or wrong field types degrade to empty source
// and plain-text language, and the response is always a success with a JSON
// body — an empty html string means "no highlighting available".
func Highlight(svc *highlight.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		var raw map[string]any
		code, language := "", ""
		if err := json.NewDecoder(r.Body).Decode(&raw); err == nil {
			code, _ = raw["code"].(string)
			language, _ = raw["language"].(string)
		}

		highlightSourceChars.Observe(float64(len(code)))
		writeJSON(w, http.StatusOK, highlightResponse{HTML: svc.Render(code, language)})
	}
}
