package restapi

import (
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"matatumonitor/internal/app"
	"matatumonitor/internal/appconf"
	"matatumonitor/internal/webui"
)

type RestAPI struct {
	*app.Application
	rateLimiter *RateLimitMiddleware
}

// NewRestAPI creates a new RestAPI instance with initialized rate limiter
func NewRestAPI(app *app.Application) *RestAPI {
	return &RestAPI{
		Application: app,
		rateLimiter: NewRateLimitMiddleware(app.Config.RateLimit, time.Second),
	}
}

// Handler assembles the full HTTP surface. The event stream is mounted
// outside the compression and logging wrappers because it needs the raw
// connection for the WebSocket upgrade.
func (api *RestAPI) Handler() http.Handler {
	router := httprouter.New()
	router.NotFound = http.HandlerFunc(api.sendNotFound)
	router.MethodNotAllowed = http.HandlerFunc(api.methodNotAllowedResponse)
	router.PanicHandler = api.panicResponse
	api.SetRoutes(router)
	if api.Config.Env != appconf.Production {
		webUI := &webui.WebUI{Session: api.Session}
		webUI.SetWebUIRoutes(router)
	}

	var handler http.Handler = router
	if api.rateLimiter != nil {
		handler = api.rateLimiter.Handler(handler)
	}
	handler = CompressionMiddleware(handler)
	handler = NewRequestLoggingMiddleware(api.Logger, api.Metrics)(handler)
	handler = api.WithSecurityHeaders(handler)

	mux := http.NewServeMux()
	if api.Hub != nil {
		mux.Handle("/api/events", validateAPIKey(api, api.Hub.ServeHTTP))
	}
	if api.Metrics != nil {
		mux.Handle("/metrics", api.Metrics.Handler())
	}
	mux.Handle("/", handler)

	return NewCORSMiddleware(api.Config.AllowedOrigins)(mux)
}

// Stop releases background resources held by middleware.
func (api *RestAPI) Stop() {
	if api.rateLimiter != nil {
		api.rateLimiter.Stop()
	}
}
