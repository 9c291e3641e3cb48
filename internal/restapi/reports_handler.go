package restapi

import (
	"net/http"

	"matatumonitor/internal/models"
	"matatumonitor/internal/reports"
	"matatumonitor/internal/utils"
)

// reportsHandler lists the feed, newest first, with the catalog routes the
// reports refer to.
func (api *RestAPI) reportsHandler(w http.ResponseWriter, r *http.Request) {
	entries := models.NewReportEntries(api.Session.Reports())
	references := models.RouteReferences(api.Session.Routes(), entries)

	api.sendResponse(w, r, models.NewListResponse(entries, references))
}

func (api *RestAPI) reportHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := api.reportIDParam(w, r)
	if !ok {
		return
	}

	report, err := api.Session.Report(id)
	if err != nil {
		api.errorResponse(w, r, err)
		return
	}

	entry := models.NewReportEntry(report)
	references := models.RouteReferences(api.Session.Routes(), []models.ReportEntry{entry})
	api.sendResponse(w, r, models.NewEntryResponse(entry, references))
}

func (api *RestAPI) submitReportHandler(w http.ResponseWriter, r *http.Request) {
	var draft reports.Draft
	if err := readJSON(w, r, &draft); err != nil {
		api.errorResponse(w, r, err)
		return
	}

	report, err := api.Session.SubmitReport(r.Context(), draft)
	if err != nil {
		api.errorResponse(w, r, err)
		return
	}

	entry := models.NewReportEntry(report)
	references := models.RouteReferences(api.Session.Routes(), []models.ReportEntry{entry})
	response := models.NewEntryResponse(entry, references)
	response.Code = http.StatusCreated
	response.Text = "Created"

	w.Header().Set("Location", "/api/reports/"+report.ID)
	api.sendResponse(w, r, response)
}

func (api *RestAPI) upvoteHandler(w http.ResponseWriter, r *http.Request) {
	api.voteHandler(w, r, reports.Upvote)
}

func (api *RestAPI) downvoteHandler(w http.ResponseWriter, r *http.Request) {
	api.voteHandler(w, r, reports.Downvote)
}

type voteEntry struct {
	Report   models.ReportEntry `json:"report"`
	Promoted bool               `json:"promoted"`
}

func (api *RestAPI) voteHandler(w http.ResponseWriter, r *http.Request, v reports.Vote) {
	id, ok := api.reportIDParam(w, r)
	if !ok {
		return
	}

	vote := api.Session.Upvote
	if v == reports.Downvote {
		vote = api.Session.Downvote
	}

	result, err := vote(r.Context(), id)
	if err != nil {
		api.errorResponse(w, r, err)
		return
	}

	entry := voteEntry{
		Report:   models.NewReportEntry(result.Report),
		Promoted: result.Promoted,
	}
	api.sendResponse(w, r, models.NewEntryResponse(entry, models.NewEmptyReferences()))
}

// reportIDParam extracts and validates the :id path parameter. On failure the
// 400 response has already been written.
func (api *RestAPI) reportIDParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := utils.ExtractIDFromParams(r, "id")
	if err := utils.ValidateID(id); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"id": {err.Error()}})
		return "", false
	}
	return id, true
}
