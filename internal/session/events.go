package session

import (
	"context"
	"time"

	"matatumonitor/internal/reports"
)

// EventType names a notification emitted by the session.
type EventType string

// EventReportValidated fires once per report, on the upvote that promotes it.
const EventReportValidated EventType = "report.validated"

// Event is a notification for the presentation layer.
type Event struct {
	Type   EventType
	Report reports.Report
	At     time.Time
}

// Title and Message are the user-facing text for the event.
func (e Event) Title() string {
	switch e.Type {
	case EventReportValidated:
		return "Report Verified"
	}
	return string(e.Type)
}

func (e Event) Message() string {
	switch e.Type {
	case EventReportValidated:
		return "This report has been verified by the community."
	}
	return ""
}

// Notifier delivers events. Implementations must not block for long; the
// session calls them after releasing its lock, on the request goroutine.
type Notifier interface {
	Notify(ctx context.Context, event Event)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, event Event)

func (f NotifierFunc) Notify(ctx context.Context, event Event) { f(ctx, event) }

// Metrics receives counts of session activity.
type Metrics interface {
	ReportSubmitted(kind reports.Kind)
	SubmissionRejected()
	Voted(v reports.Vote)
	VoteRejected(v reports.Vote)
	ReportValidated()
	SetActiveReports(n int)
}

type noopMetrics struct{}

func (noopMetrics) ReportSubmitted(reports.Kind) {}
func (noopMetrics) SubmissionRejected()          {}
func (noopMetrics) Voted(reports.Vote)           {}
func (noopMetrics) VoteRejected(reports.Vote)    {}
func (noopMetrics) ReportValidated()             {}
func (noopMetrics) SetActiveReports(int)         {}
