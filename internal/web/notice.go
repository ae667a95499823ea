package web

import (
	"net/http"
	"net/url"

	"github.com/JonMunkholm/minicrm/internal/web/templates"
)

// Notices travel in the redirect URL instead of a session so handlers stay
// stateless: ?notice=<text>&level=success|error.
const (
	noticeParam = "notice"
	levelParam  = "level"

	levelSuccess = "success"
	levelError   = "error"
)

// redirectWithNotice sends a 303 to path with the notice and any extra
// query values (used to echo rejected form input back to the form).
func redirectWithNotice(w http.ResponseWriter, r *http.Request, path, level, text string, extra url.Values) {
	q := url.Values{}
	for k, vs := range extra {
		for _, v := range vs {
			if v != "" {
				q.Add(k, v)
			}
		}
	}
	if text != "" {
		q.Set(noticeParam, text)
		q.Set(levelParam, level)
	}

	target := path
	if len(q) > 0 {
		target += "?" + q.Encode()
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// noticeFromRequest reads the notice left by a previous redirect.
func noticeFromRequest(r *http.Request) templates.Notice {
	q := r.URL.Query()
	text := q.Get(noticeParam)
	if text == "" {
		return templates.Notice{}
	}
	level := levelSuccess
	if q.Get(levelParam) == levelError {
		level = levelError
	}
	return templates.Notice{Level: level, Text: text}
}

// nav builds the page chrome for the active section.
func nav(r *http.Request, active string) templates.NavParams {
	return templates.NavParams{Active: active, Notice: noticeFromRequest(r)}
}
