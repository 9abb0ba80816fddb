package heorte

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tz = time.UTC

func ev(slug string, start time.Time, d time.Duration) Event {
	return Event{
		Slug:      slug,
		Title:     slug,
		StartTime: start,
		Duration:  d,
	}
}

func TestEventIsValid(t *testing.T) {
	assert.False(t, Event{}.IsValid())
	assert.False(t, Event{Slug: "a"}.IsValid())
	assert.False(t, Event{StartTime: time.Now()}.IsValid())
	assert.True(t, ev("a", time.Now(), time.Hour).IsValid())
}

func TestEventEndTime(t *testing.T) {
	start := time.Date(2030, 5, 4, 18, 0, 0, 0, tz)
	e := ev("a", start, 90*time.Minute)
	assert.Equal(t, start.Add(90*time.Minute), e.EndTime())
}

func TestEventAllDay(t *testing.T) {
	start := time.Date(2030, 5, 4, 0, 0, 0, 0, tz)
	assert.False(t, ev("a", start, 24*time.Hour).AllDay())
	assert.True(t, ev("a", start, 48*time.Hour).AllDay())
}

func TestEventEquals(t *testing.T) {
	start := time.Date(2030, 5, 4, 18, 0, 0, 0, tz)
	e1 := ev("a", start, time.Hour)
	e2 := ev("a", start, time.Hour)
	require.True(t, e1.Equals(e2))

	e2.Location = "elsewhere"
	assert.False(t, e1.Equals(e2))

	e1.Tags = []string{"metal", "releases"}
	e2 = e1
	e2.Tags = []string{"releases", "metal"}
	assert.True(t, e1.Equals(e2))

	// comparing must not reorder the tags of either side
	assert.Equal(t, []string{"metal", "releases"}, e1.Tags)
	assert.Equal(t, []string{"releases", "metal"}, e2.Tags)
}

func TestEventsSorted(t *testing.T) {
	base := time.Date(2030, 5, 4, 18, 0, 0, 0, tz)
	first := ev("first", base, time.Hour)
	second := ev("second", base.Add(24*time.Hour), time.Hour)
	shorter := ev("shorter", base.Add(24*time.Hour), 30*time.Minute)

	events := Events{second, first, shorter}

	soonest := events.SortedBySoonest()
	require.Len(t, soonest, 3)
	assert.Equal(t, "first", soonest[0].Slug)
	assert.Equal(t, "shorter", soonest[1].Slug)
	assert.Equal(t, "second", soonest[2].Slug)

	newest := events.SortedByNewest()
	assert.Equal(t, "second", newest[0].Slug)
	assert.Equal(t, "shorter", newest[1].Slug)
	assert.Equal(t, "first", newest[2].Slug)

	// inputs stay untouched
	assert.Equal(t, "second", events[0].Slug)
}

func TestEventsUpcoming(t *testing.T) {
	now := time.Date(2030, 5, 4, 12, 0, 0, 0, tz)

	past := ev("past", now.Add(-72*time.Hour), time.Hour)
	endedThisMorning := ev("this-morning", now.Add(-4*time.Hour), time.Hour)
	future := ev("future", now.Add(time.Hour), time.Hour)

	upcoming := Events{past, endedThisMorning, future}.Upcoming(now)
	assert.Len(t, upcoming, 2)
	assert.False(t, upcoming.Contains(past))
	// an event that ended earlier today is still upcoming at day granularity
	assert.True(t, upcoming.Contains(endedThisMorning))
	assert.True(t, upcoming.Contains(future))
}

func TestEventsFrom(t *testing.T) {
	now := time.Date(2030, 5, 4, 12, 0, 0, 0, tz)

	past := ev("past", now.Add(-time.Minute), time.Hour)
	exact := ev("exact", now, time.Hour)
	future := ev("future", now.Add(time.Minute), time.Hour)

	from := Events{past, exact, future}.From(now)
	assert.Len(t, from, 2)
	assert.True(t, from.Contains(exact))
	assert.True(t, from.Contains(future))
}

func TestEventsPublished(t *testing.T) {
	now := time.Date(2030, 5, 4, 12, 0, 0, 0, tz)
	draft := ev("draft", now, time.Hour)
	draft.Draft = true
	public := ev("public", now, time.Hour)

	published := Events{draft, public}.Published()
	require.Len(t, published, 1)
	assert.Equal(t, "public", published[0].Slug)
}

func TestEventsByLang(t *testing.T) {
	now := time.Date(2030, 5, 4, 12, 0, 0, 0, tz)
	en := ev("en-page", now, time.Hour)
	en.Lang = "en"
	de := ev("de-page", now, time.Hour)
	de.Lang = "de"
	plain := ev("plain", now, time.Hour)

	events := Events{en, de, plain}
	require.True(t, events.Localized())

	grouped := events.ByLang("en")
	require.Len(t, grouped, 2)
	assert.Len(t, grouped["en"], 2)
	assert.Len(t, grouped["de"], 1)

	assert.False(t, Events{plain}.Localized())
}
