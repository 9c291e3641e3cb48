package restapi

import (
	"net/http"

	"matatumonitor/internal/models"
)

func (api *RestAPI) selectionHandler(w http.ResponseWriter, r *http.Request) {
	api.sendSelection(w, r)
}

type selectRouteRequest struct {
	RouteID *string `json:"routeId"`
}

// selectRouteHandler highlights a route. A null or empty routeId clears the
// highlight.
func (api *RestAPI) selectRouteHandler(w http.ResponseWriter, r *http.Request) {
	var req selectRouteRequest
	if err := readJSON(w, r, &req); err != nil {
		api.errorResponse(w, r, err)
		return
	}

	routeID := ""
	if req.RouteID != nil {
		routeID = *req.RouteID
	}
	if err := api.Session.SelectRoute(r.Context(), routeID); err != nil {
		api.errorResponse(w, r, err)
		return
	}

	api.sendSelection(w, r)
}

// selectLocationRequest carries either a position or, when the browser could
// not determine one, unavailable=true and an optional reason.
type selectLocationRequest struct {
	Lat         *float64 `json:"lat"`
	Lng         *float64 `json:"lng"`
	Unavailable bool     `json:"unavailable"`
	Reason      string   `json:"reason"`
}

func (api *RestAPI) selectLocationHandler(w http.ResponseWriter, r *http.Request) {
	var req selectLocationRequest
	if err := readJSON(w, r, &req); err != nil {
		api.errorResponse(w, r, err)
		return
	}

	if req.Unavailable {
		reason := req.Reason
		if reason == "" {
			reason = "unspecified"
		}
		api.Session.LocationUnavailable(r.Context(), reason)
		api.sendSelection(w, r)
		return
	}

	fieldErrors := map[string][]string{}
	if req.Lat == nil {
		fieldErrors["lat"] = append(fieldErrors["lat"], "lat is required")
	}
	if req.Lng == nil {
		fieldErrors["lng"] = append(fieldErrors["lng"], "lng is required")
	}
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	if err := api.Session.SelectLocation(r.Context(), *req.Lat, *req.Lng); err != nil {
		api.errorResponse(w, r, err)
		return
	}

	api.sendSelection(w, r)
}

func (api *RestAPI) sendSelection(w http.ResponseWriter, r *http.Request) {
	entry := models.NewSelectionEntry(api.Session.Selection())
	api.sendResponse(w, r, models.NewEntryResponse(entry, models.NewEmptyReferences()))
}
