package notify

import (
	"context"

	"matatumonitor/internal/session"
)

// Fanout delivers each event to every notifier in order.
type Fanout []session.Notifier

func (f Fanout) Notify(ctx context.Context, event session.Event) {
	for _, n := range f {
		if n != nil {
			n.Notify(ctx, event)
		}
	}
}
