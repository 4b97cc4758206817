package http

import (
	"net/http"
	"strings"
)

type parseRequest struct {
	Text string `json:"text"`
}

// handleParse turns free text into a structured expense suggestion. Nothing
// is persisted; the client reviews the result before posting it.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if err := decodeBody(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeBadRequest(w, "text is required")
		return
	}

	parsed, err := s.parse.Parse(r.Context(), req.Text)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, parsed)
}
