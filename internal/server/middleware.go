package server

import (
	"net/http"
	"time"

	"github.com/agbru/fibmod/internal/logging"
)

// loggingMiddleware wraps an http.HandlerFunc to log the details of each
// request: method, path, remote address, and handling duration.
func (s *Server) loggingMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		next(w, r)

		s.logger.Info("request handled",
			logging.String("method", r.Method),
			logging.String("path", r.URL.Path),
			logging.String("remote", r.RemoteAddr),
			logging.String("duration", time.Since(start).String()))
	}
}
