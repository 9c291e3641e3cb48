package restapi

import (
	"net/http"

	"matatumonitor/internal/models"
	"matatumonitor/internal/utils"
)

func (api *RestAPI) routesHandler(w http.ResponseWriter, r *http.Request) {
	entries := models.NewRouteEntries(api.Session.Routes().List())
	api.sendResponse(w, r, models.NewListResponse(entries, models.NewEmptyReferences()))
}

func (api *RestAPI) routeHandler(w http.ResponseWriter, r *http.Request) {
	id := utils.ExtractIDFromParams(r, "id")
	if err := utils.ValidateID(id); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"id": {err.Error()}})
		return
	}

	route, err := api.Session.Routes().Get(id)
	if err != nil {
		api.errorResponse(w, r, err)
		return
	}

	api.sendResponse(w, r, models.NewEntryResponse(models.NewRouteEntry(route), models.NewEmptyReferences()))
}

// routeLabelsHandler returns the entries of the report form's route picker.
func (api *RestAPI) routeLabelsHandler(w http.ResponseWriter, r *http.Request) {
	api.sendResponse(w, r, models.NewListResponse(api.Session.Routes().Labels(), models.NewEmptyReferences()))
}
