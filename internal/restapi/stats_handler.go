package restapi

import (
	"net/http"
	"time"

	"matatumonitor/internal/models"
)

func (api *RestAPI) statsHandler(w http.ResponseWriter, r *http.Request) {
	entry := models.NewStatsEntry(api.Session.Stats())
	api.sendResponse(w, r, models.NewEntryResponse(entry, models.NewEmptyReferences()))
}

// currentTimeHandler writes a JSON response with information about the
// current time.
func (api *RestAPI) currentTimeHandler(w http.ResponseWriter, r *http.Request) {
	timeData := models.NewCurrentTimeData(time.Now())
	response := models.NewOKResponse(timeData)

	api.sendResponse(w, r, response)
}
