package webui

import (
	"embed"
	"html/template"
	"net/http"
	"strings"

	"github.com/davecgh/go-spew/spew"
)

//go:embed debug_index.html
var templateFS embed.FS

var debugTemplate = template.Must(template.ParseFS(templateFS, "debug_index.html"))

// dataTypes are the values accepted by the dataType query parameter.
var dataTypes = []string{"reports", "routes", "labels", "selection", "stats"}

type debugData struct {
	Title     string
	Pre       string
	DataTypes []string
}

var dumper = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

func writeDebugData(w http.ResponseWriter, title string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	dataStruct := debugData{
		Title:     title,
		Pre:       dumper.Sdump(data),
		DataTypes: dataTypes,
	}

	if err := debugTemplate.Execute(w, dataStruct); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (webUI *WebUI) debugIndexHandler(w http.ResponseWriter, r *http.Request) {
	dataType := r.URL.Query().Get("dataType")

	var data interface{}
	var title string

	switch dataType {
	case "reports":
		data = webUI.Session.Reports()
		title = "Session - Reports"
	case "routes":
		data = webUI.Session.Routes().List()
		title = "Session - Routes"
	case "labels":
		data = webUI.Session.Routes().Labels()
		title = "Session - Route Labels"
	case "selection":
		data = webUI.Session.Selection()
		title = "Session - Selection"
	case "stats":
		data = webUI.Session.Stats()
		title = "Session - Stats"
	default:
		data = map[string]string{
			"error": "Please use one of the following: " + strings.Join(dataTypes, ", ") + ".",
		}
		title = "Choose a data type"
	}

	writeDebugData(w, title, data)
}
