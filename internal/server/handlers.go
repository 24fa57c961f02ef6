package server

import (
	"context"
	"encoding/json"
	"errors"
	"math/big"
	"net/http"
	"time"

	apperrors "github.com/agbru/fibmod/internal/errors"
	"github.com/agbru/fibmod/internal/format"
)

// Response represents the standardized JSON response for a computation request.
type Response struct {
	// N is the requested Fibonacci index, echoed back as a decimal string.
	N string `json:"n"`
	// Mod is the requested modulus, echoed back as a decimal string.
	Mod string `json:"mod"`
	// Result is F(n) mod m as a decimal string. Omitted on error.
	Result string `json:"result,omitempty"`
	// Duration is the formatted execution time string.
	Duration string `json:"duration"`
	// Backend is the display name of the backend used.
	Backend string `json:"backend"`
}

// ErrorResponse represents the standardized JSON response for an API error.
type ErrorResponse struct {
	// Error is the short error code or status text.
	Error string `json:"error"`
	// Message is a descriptive error message.
	Message string `json:"message,omitempty"`
}

// handleFib serves GET /fib?n=<index>&mod=<modulus>&backend=<name>.
// The backend parameter is optional and defaults to "big", the only backend
// whose domain is unbounded.
func (s *Server) handleFib(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", "")
		return
	}

	q := r.URL.Query()

	n, ok := parseQueryInt(q.Get("n"), s.securityConfig.MaxParamLen)
	if !ok || n.Sign() < 0 {
		writeError(w, http.StatusBadRequest, "invalid parameter", "n must be a non-negative decimal integer")
		return
	}
	m, ok := parseQueryInt(q.Get("mod"), s.securityConfig.MaxParamLen)
	if !ok || m.Sign() <= 0 {
		writeError(w, http.StatusBadRequest, "invalid parameter", "mod must be a decimal integer >= 1")
		return
	}

	name := q.Get("backend")
	if name == "" {
		name = "big"
	}
	backend, err := s.registry.Get(name)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown backend", err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.Timeout)
	defer cancel()

	start := time.Now()
	result, err := backend.FibMod(ctx, n, m)
	if err != nil {
		var verr apperrors.ValidationError
		if errors.As(err, &verr) {
			writeError(w, http.StatusBadRequest, "invalid parameter", verr.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "computation failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, Response{
		N:        n.String(),
		Mod:      m.String(),
		Result:   result.String(),
		Duration: format.ExecutionDuration(time.Since(start)),
		Backend:  backend.Name(),
	})
}

// handleHealth serves GET /health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleBackends serves GET /backends, listing the registered backend names.
func (s *Server) handleBackends(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"backends": s.registry.List()})
}

// parseQueryInt parses a decimal query parameter into a big.Int, rejecting
// values longer than maxLen characters before touching the parser.
func parseQueryInt(raw string, maxLen int) (*big.Int, bool) {
	if raw == "" || (maxLen > 0 && len(raw) > maxLen) {
		return nil, false
	}
	v, ok := new(big.Int).SetString(raw, 10)
	return v, ok
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: code, Message: message})
}
