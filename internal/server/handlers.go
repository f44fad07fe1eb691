package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/alexanderramin/faqbot/internal/domain"
	"github.com/alexanderramin/faqbot/internal/session"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 64 << 10

type chatRequest struct {
	Query     string `json:"query"`
	SessionID string `json:"session_id,omitempty"`
}

type chatResponse struct {
	domain.Response
	SessionID string `json:"session_id"`
}

type greetResponse struct {
	Text       string   `json:"text"`
	Confidence float64  `json:"confidence"`
	References []string `json:"references"`
}

type farewellRequest struct {
	SessionID string `json:"session_id"`
}

type farewellResponse struct {
	Text      string `json:"text"`
	SessionID string `json:"session_id"`
}

type historyResponse struct {
	SessionID string        `json:"session_id"`
	Turns     []domain.Turn `json:"turns"`
}

type networkResponse struct {
	Address     string    `json:"address"`
	Available   bool      `json:"available"`
	MedianMs    float64   `json:"median_ms"`
	LatenciesMs []float64 `json:"latencies_ms"`
	Failures    int       `json:"failures"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy", "service": "faqbot"})
}

func (s *Server) handleGreet(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, greetResponse{
		Text:       s.deps.Assistant.Greet(),
		Confidence: 1.0,
		References: []string{},
	})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	sessionID := resolveSessionID(req.SessionID, r)
	resp := s.deps.Assistant.Respond(r.Context(), sessionID, req.Query)

	w.Header().Set(SessionHeader, sessionID)
	writeJSON(w, http.StatusOK, chatResponse{Response: resp, SessionID: sessionID})
}

func (s *Server) handleFarewell(w http.ResponseWriter, r *http.Request) {
	var req farewellRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	sessionID := domain.CoalesceStr(req.SessionID, r.Header.Get(SessionHeader))
	if sessionID == "" {
		writeError(w, http.StatusBadRequest, "session_id is required", "")
		return
	}

	writeJSON(w, http.StatusOK, farewellResponse{
		Text:      s.deps.Assistant.Farewell(sessionID),
		SessionID: sessionID,
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	turns := s.deps.Assistant.History(id)
	if turns == nil {
		turns = []domain.Turn{}
	}
	writeJSON(w, http.StatusOK, historyResponse{SessionID: id, Turns: turns})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.deps.Assistant.Reset(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleNetwork(w http.ResponseWriter, r *http.Request) {
	st := s.deps.Network.Probe(r.Context())
	resp := networkResponse{
		Address:     st.Address,
		Available:   st.Available,
		MedianMs:    millis(st.Median.Microseconds()),
		LatenciesMs: make([]float64, len(st.Latencies)),
		Failures:    st.Failures,
	}
	for i, l := range st.Latencies {
		resp.LatenciesMs[i] = millis(l.Microseconds())
	}
	writeJSON(w, http.StatusOK, resp)
}

func millis(us int64) float64 {
	return float64(us) / 1000
}

// resolveSessionID prefers the body, then the header, then a fresh id.
func resolveSessionID(fromBody string, r *http.Request) string {
	if id := strings.TrimSpace(fromBody); id != "" {
		return id
	}
	if id := strings.TrimSpace(r.Header.Get(SessionHeader)); id != "" {
		return id
	}
	return session.NewID()
}

func decodeBody(r *http.Request, out any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("empty body")
		}
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message, detail string) {
	resp := map[string]string{
		"error":   message,
		"message": message,
	}
	if detail != "" {
		resp["detail"] = detail
	}
	writeJSON(w, status, resp)
}
