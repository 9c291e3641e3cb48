// Package session owns the in-memory state of a running monitor: the report
// feed, the route catalog and the user's current map selection.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"matatumonitor/internal/catalog"
	"matatumonitor/internal/logging"
	"matatumonitor/internal/reports"
	"matatumonitor/internal/transit"
)

// idAttempts bounds retries when a generated id collides with an existing one.
const idAttempts = 3

// Options configures a Session. Zero values get sensible defaults.
type Options struct {
	Logger   *slog.Logger
	Notifier Notifier
	Metrics  Metrics
	Clock    func() time.Time
	NewID    func() string
}

// Selection is what the user currently has highlighted on the map.
type Selection struct {
	RouteID  string
	Location *transit.Coordinate
}

// VoteResult is the outcome of a vote. Promoted is true only for the upvote
// that made the report validated.
type VoteResult struct {
	Report   reports.Report
	Promoted bool
}

// Stats summarises the session for the header and status panel.
type Stats struct {
	ActiveReports            int
	ValidatedReports         int
	ReportsByKind            map[reports.Kind]int
	AverageFareChangePercent *float64
}

// Session serialises every command behind one mutex so that each runs to
// completion before the next starts.
type Session struct {
	mu        sync.Mutex
	store     *reports.Store
	routes    *catalog.Catalog
	selection Selection

	logger   *slog.Logger
	notifier Notifier
	metrics  Metrics
	clock    func() time.Time
	newID    func() string
}

// New creates a session over store and routes.
func New(store *reports.Store, routes *catalog.Catalog, opts Options) *Session {
	s := &Session{
		store:    store,
		routes:   routes,
		logger:   opts.Logger,
		notifier: opts.Notifier,
		metrics:  opts.Metrics,
		clock:    opts.Clock,
		newID:    opts.NewID,
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	s.logger = s.logger.With(slog.String("component", "session"))
	if s.metrics == nil {
		s.metrics = noopMetrics{}
	}
	if s.clock == nil {
		s.clock = time.Now
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	s.metrics.SetActiveReports(store.Len())
	return s
}

// NewSample creates a session seeded with the demo reports and routes.
func NewSample(opts Options) (*Session, error) {
	now := time.Now()
	if opts.Clock != nil {
		now = opts.Clock()
	}
	store, err := reports.NewStore(reports.SampleReports(now)...)
	if err != nil {
		return nil, fmt.Errorf("seeding reports: %w", err)
	}
	routes, err := catalog.New(catalog.Sample(now)...)
	if err != nil {
		return nil, fmt.Errorf("seeding routes: %w", err)
	}
	return New(store, routes, opts), nil
}

// SubmitReport validates d and puts the resulting report at the front of the
// feed. A *reports.ValidationError leaves the feed unchanged.
func (s *Session) SubmitReport(ctx context.Context, d reports.Draft) (reports.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock()
	var lastErr error
	for attempt := 0; attempt < idAttempts; attempt++ {
		r, err := reports.NewReport(d, s.newID(), now, reports.CurrentUser)
		if err != nil {
			s.metrics.SubmissionRejected()
			return reports.Report{}, err
		}

		err = s.store.Insert(r)
		if errors.Is(err, reports.ErrDuplicateID) {
			lastErr = err
			continue
		}
		if err != nil {
			return reports.Report{}, err
		}

		s.metrics.ReportSubmitted(r.Kind())
		s.metrics.SetActiveReports(s.store.Len())
		logging.LogOperation(s.logger, "report_submitted",
			slog.String("report_id", r.ID),
			slog.String("type", string(r.Kind())),
			slog.String("route", r.Route))
		return r, nil
	}
	return reports.Report{}, fmt.Errorf("could not allocate a report id: %w", lastErr)
}

// Upvote counts an upvote. The upvote that reaches the validation threshold
// promotes the report and emits EventReportValidated exactly once.
func (s *Session) Upvote(ctx context.Context, id string) (VoteResult, error) {
	result, err := s.vote(id, reports.Upvote)
	if err != nil {
		return result, err
	}
	if result.Promoted {
		s.notify(ctx, Event{Type: EventReportValidated, Report: result.Report, At: s.clock()})
	}
	return result, nil
}

// Downvote counts a downvote. It never affects validation.
func (s *Session) Downvote(ctx context.Context, id string) (VoteResult, error) {
	return s.vote(id, reports.Downvote)
}

func (s *Session) vote(id string, v reports.Vote) (VoteResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, promoted, err := s.store.Vote(id, v)
	if err != nil {
		s.metrics.VoteRejected(v)
		logging.LogOperation(s.logger, "vote_rejected",
			slog.String("report_id", id),
			slog.String("vote", v.String()),
			slog.String("reason", err.Error()))
		return VoteResult{}, fmt.Errorf("%svote %q: %w", v, id, err)
	}

	s.metrics.Voted(v)
	if promoted {
		s.metrics.ReportValidated()
		logging.LogOperation(s.logger, "report_validated",
			slog.String("report_id", r.ID),
			slog.Int("upvotes", r.Upvotes))
	}
	return VoteResult{Report: r, Promoted: promoted}, nil
}

func (s *Session) notify(ctx context.Context, event Event) {
	if s.notifier == nil {
		return
	}
	s.notifier.Notify(ctx, event)
}

// Report returns the report with the given id.
func (s *Session) Report(id string) (reports.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Get(id)
}

// Reports returns the feed, newest first.
func (s *Session) Reports() []reports.Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.All()
}

// Routes returns the route catalog.
func (s *Session) Routes() *catalog.Catalog {
	return s.routes
}

// SelectRoute highlights a route; an empty id clears the highlight.
func (s *Session) SelectRoute(ctx context.Context, routeID string) error {
	if routeID != "" && !s.routes.Has(routeID) {
		return fmt.Errorf("select route %q: %w", routeID, catalog.ErrRouteNotFound)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection.RouteID = routeID
	return nil
}

// SelectLocation records the last point the user indicated on the map. It is
// used to prefill the next draft.
func (s *Session) SelectLocation(ctx context.Context, lat, lng float64) error {
	c := transit.Coordinate{Lat: lat, Lng: lng}
	if fieldErrors := c.Validate(); len(fieldErrors) > 0 {
		return &reports.ValidationError{FieldErrors: fieldErrors}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection.Location = &c
	return nil
}

// LocationUnavailable records that the browser could not provide a position,
// for example because permission was denied. The previous selection is kept.
func (s *Session) LocationUnavailable(ctx context.Context, reason string) {
	logging.LogOperation(s.logger, "location_unavailable", slog.String("reason", reason))
}

// Selection returns the current map selection.
func (s *Session) Selection() Selection {
	s.mu.Lock()
	defer s.mu.Unlock()

	sel := s.selection
	if sel.Location != nil {
		c := *sel.Location
		sel.Location = &c
	}
	return sel
}

// Stats summarises the feed and catalog.
func (s *Session) Stats() Stats {
	all := s.Reports()

	stats := Stats{
		ActiveReports: len(all),
		ReportsByKind: make(map[reports.Kind]int, len(reports.Kinds)),
	}
	for _, k := range reports.Kinds {
		stats.ReportsByKind[k] = 0
	}
	for _, r := range all {
		stats.ReportsByKind[r.Kind()]++
		if r.Validated {
			stats.ValidatedReports++
		}
	}
	if avg, ok := s.routes.AverageFareChangePercent(); ok {
		stats.AverageFareChangePercent = &avg
	}
	return stats
}
