package heorte

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Event is a single calendar entry extracted from a content page or
// expanded from a recurring rule.
type Event struct {
	Slug         string
	Title        string
	Summary      string
	Description  string
	Location     string
	Lang         string
	URL          string
	Tags         []string
	StartTime    time.Time
	Duration     time.Duration
	LastModified time.Time
	Draft        bool
}

type Events []Event

func (e Event) EndTime() time.Time {
	return e.StartTime.Add(e.Duration)
}

func (e Event) IsValid() bool {
	return !e.StartTime.IsZero() && len(e.Slug) > 0
}

func (e Event) AllDay() bool {
	return e.Duration > 24*time.Hour
}

// stringArrayEqual compares regardless of order, leaving the inputs
// untouched.
func stringArrayEqual(a1, a2 []string) bool {
	if len(a1) != len(a2) {
		return false
	}
	s1 := make([]string, len(a1))
	s2 := make([]string, len(a2))
	copy(s1, a1)
	copy(s2, a2)
	sort.Strings(s1)
	sort.Strings(s2)
	for k, v := range s1 {
		if v != s2[k] {
			return false
		}
	}
	return true
}

func (e Event) Equals(other Event) bool {
	return e.Slug == other.Slug &&
		e.StartTime.Equal(other.StartTime) &&
		e.Duration == other.Duration &&
		e.Title == other.Title &&
		e.Summary == other.Summary &&
		e.Location == other.Location &&
		e.Lang == other.Lang &&
		e.URL == other.URL &&
		stringArrayEqual(e.Tags, other.Tags) &&
		e.Draft == other.Draft
}

func (e Event) String() string {
	return e.GoString()
}

func (e Event) GoString() string {
	fmtTime := e.StartTime.Format("2006-01-02 15:04 MST")
	if len(e.Location) > 0 {
		return fmt.Sprintf("<[%s] %s @ %s, %s//%s>", e.Slug, e.Title, e.Location, fmtTime, e.Duration)
	}
	return fmt.Sprintf("<[%s] %s @ %s//%s>", e.Slug, e.Title, fmtTime, e.Duration)
}

func (e Events) String() string {
	return e.GoString()
}

func (e Events) GoString() string {
	ss := make([]string, len(e))
	for i, ev := range e {
		ss[i] = ev.GoString()
	}
	return fmt.Sprintf("Events[%d]:\n\t%s\n", len(e), strings.Join(ss, "\n\t"))
}

func (e Events) Contains(inc Event) bool {
	for _, ev := range e {
		if ev.Equals(inc) {
			return true
		}
	}
	return false
}

func before(e1, e2 Event) bool {
	if e1.StartTime.Equal(e2.StartTime) {
		return e1.EndTime().Before(e2.EndTime())
	}
	return e1.StartTime.Before(e2.StartTime)
}

// SortedByNewest orders events descending on (start, end), the order
// used for the full event list.
func (e Events) SortedByNewest() Events {
	sorted := make(Events, len(e))
	copy(sorted, e)
	sort.SliceStable(sorted, func(i, j int) bool {
		return before(sorted[j], sorted[i])
	})
	return sorted
}

// SortedBySoonest orders events ascending on (start, end), the order
// used for the upcoming list and the calendar.
func (e Events) SortedBySoonest() Events {
	sorted := make(Events, len(e))
	copy(sorted, e)
	sort.SliceStable(sorted, func(i, j int) bool {
		return before(sorted[i], sorted[j])
	})
	return sorted
}

// Upcoming keeps events that have not fully passed: everything ending
// today or later, at day granularity.
func (e Events) Upcoming(now time.Time) Events {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	upcoming := make(Events, 0, len(e))
	for _, ev := range e {
		end := ev.EndTime()
		endDay := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, end.Location())
		if !endDay.Before(today) {
			upcoming = append(upcoming, ev)
		}
	}
	return upcoming
}

// From keeps events starting at, or after, the passed time.
func (e Events) From(now time.Time) Events {
	future := make(Events, 0, len(e))
	for _, ev := range e {
		if !ev.StartTime.Before(now) {
			future = append(future, ev)
		}
	}
	return future
}

// Published filters out draft events.
func (e Events) Published() Events {
	published := make(Events, 0, len(e))
	for _, ev := range e {
		if ev.Draft {
			continue
		}
		published = append(published, ev)
	}
	return published
}

// ByLang groups events on their language field. Events without one end
// up under the passed default language.
func (e Events) ByLang(dflt string) map[string]Events {
	grouped := make(map[string]Events)
	for _, ev := range e {
		lang := ev.Lang
		if lang == "" {
			lang = dflt
		}
		grouped[lang] = append(grouped[lang], ev)
	}
	return grouped
}

// Localized reports if any event carries an explicit language.
func (e Events) Localized() bool {
	for _, ev := range e {
		if ev.Lang != "" {
			return true
		}
	}
	return false
}
