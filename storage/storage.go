package storage

import (
	"time"

	"git.sr.ht/~mariusor/heorte"
)

// DateCursor selects a time window: D is added to T, negative values
// look backwards.
type DateCursor struct {
	T time.Time
	D time.Duration
}

func Cursor(st time.Time, d time.Duration) DateCursor {
	return DateCursor{
		T: st,
		D: d,
	}
}

type Saver interface {
	SaveEvents(heorte.Events) error
	SaveEvent(heorte.Event) error
}

type Loader interface {
	LoadEvents(DateCursor, ...string) (heorte.Events, error)
	LoadEvent(string, time.Time, string) heorte.Event
}
