package restapi

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

type handlerFunc func(w http.ResponseWriter, r *http.Request)

func validateAPIKey(api *RestAPI, finalHandler handlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if api.RequestHasInvalidAPIKey(r) {
			api.invalidAPIKeyResponse(w, r)
			return
		}
		finalHandler(w, r)
	})
}

func (api *RestAPI) SetRoutes(router *httprouter.Router) {
	router.Handler(http.MethodGet, "/api/reports", validateAPIKey(api, api.reportsHandler))
	router.Handler(http.MethodPost, "/api/reports", validateAPIKey(api, api.submitReportHandler))
	router.Handler(http.MethodGet, "/api/reports/:id", validateAPIKey(api, api.reportHandler))
	router.Handler(http.MethodPost, "/api/reports/:id/upvote", validateAPIKey(api, api.upvoteHandler))
	router.Handler(http.MethodPost, "/api/reports/:id/downvote", validateAPIKey(api, api.downvoteHandler))

	router.Handler(http.MethodGet, "/api/routes", validateAPIKey(api, api.routesHandler))
	router.Handler(http.MethodGet, "/api/routes/:id", validateAPIKey(api, api.routeHandler))
	router.Handler(http.MethodGet, "/api/route-labels", validateAPIKey(api, api.routeLabelsHandler))

	router.Handler(http.MethodGet, "/api/selection", validateAPIKey(api, api.selectionHandler))
	router.Handler(http.MethodPut, "/api/selection/route", validateAPIKey(api, api.selectRouteHandler))
	router.Handler(http.MethodPut, "/api/selection/location", validateAPIKey(api, api.selectLocationHandler))

	router.Handler(http.MethodGet, "/api/stats", validateAPIKey(api, api.statsHandler))
	router.Handler(http.MethodGet, "/api/current-time", validateAPIKey(api, api.currentTimeHandler))
}
