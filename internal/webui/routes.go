// Package webui serves a plain HTML dump of the session for debugging.
package webui

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"matatumonitor/internal/session"
)

type WebUI struct {
	Session *session.Session
}

func (webUI *WebUI) SetWebUIRoutes(router *httprouter.Router) {
	router.HandlerFunc(http.MethodGet, "/debug", webUI.debugIndexHandler)
}
