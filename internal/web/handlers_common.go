package web

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/JonMunkholm/minicrm/internal/core"
	"github.com/JonMunkholm/minicrm/internal/logging"
	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
)

// parseIntParam parses a positive integer query parameter with a default value.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil || i < 1 {
		return defaultVal
	}
	return i
}

// parseID reads the {id} route parameter. A malformed id cannot name a
// record, so it is reported as not found.
func parseID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid id %q: %w", raw, core.ErrNotFound)
	}
	return id, nil
}

// clientIP returns the host part of RemoteAddr.
func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// render writes an HTML page.
func (s *Server) render(w http.ResponseWriter, r *http.Request, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := c.Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render failed", "path", r.URL.Path, "error", err)
	}
}

// isValidation reports whether err is a rejected form submission.
func isValidation(err error) bool {
	var verr *core.ValidationError
	return errors.As(err, &verr)
}

// noticeText renders err for a notice banner.
func noticeText(err error) string {
	msg := core.MapError(err)
	if msg.Action == "" {
		return msg.Message
	}
	return fmt.Sprintf("%s. %s.", trimPeriod(msg.Message), trimPeriod(msg.Action))
}

func trimPeriod(s string) string {
	for len(s) > 0 && s[len(s)-1] == '.' {
		s = s[:len(s)-1]
	}
	return s
}

// exportFilename stamps prefix with the current time, e.g.
// organizations_20240131_154500.xlsx.
func exportFilename(prefix string, now time.Time) string {
	return fmt.Sprintf("%s_%s.xlsx", prefix, now.Format("20060102_150405"))
}

// pluralize returns "1 project" or "3 projects".
func pluralize(n int, singular, plural string) string {
	if n == 1 {
		return "1 " + singular
	}
	return strconv.Itoa(n) + " " + plural
}
