package httpapi

import (
	_ "embed"
	"net/http"
)

// The labs catalogue is static content; the production site serves it as a
// flat file and so do we.
//
//go:embed labs.json
var labsContent []byte

func (h *Handler) handleLabs(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(labsContent)
}
