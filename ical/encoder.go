package ical

import (
	"fmt"
	"io"
	"strings"

	ics "github.com/arran4/golang-ical"

	"git.sr.ht/~mariusor/heorte"
	"git.sr.ht/~mariusor/heorte/content"
)

// Calendar carries the header properties of the emitted iCalendar
// stream.
type Calendar struct {
	Name        string
	Description string
	URL         string
	Version     string
	Timezone    string
	// DefaultLang is the language group events without an explicit
	// language belong to. It is not serialized.
	DefaultLang string
}

const refreshInterval = "PT1H"

// Encode serializes events as an iCalendar 2.0 stream. Timestamps are
// written in basic UTC format. The caller is expected to have filtered
// and ordered the events.
func Encode(w io.Writer, c Calendar, events heorte.Events) error {
	cal := ics.NewCalendar()
	cal.SetProductId(fmt.Sprintf("-//~mariusor/heorte//EN/%s", c.Version))
	cal.SetVersion("2.0")
	cal.SetCalscale("GREGORIAN")
	cal.SetMethod(ics.MethodPublish)

	cal.SetName(c.Name)
	cal.SetXWRCalName(c.Name)
	description := c.Description
	if description == "" {
		description = c.Name
	}
	cal.SetDescription(description)
	cal.SetXWRCalDesc(description)
	if c.URL != "" {
		cal.SetUrl(c.URL)
	}
	if c.Timezone != "" {
		cal.SetTimezoneId(c.Timezone)
		cal.SetXWRTimezone(c.Timezone)
	}
	cal.SetRefreshInterval(refreshInterval)
	cal.SetXPublishedTTL(refreshInterval)

	for _, ev := range events {
		e := cal.AddEvent(ev.URL)
		e.SetDtStampTime(ev.LastModified.UTC())
		if ev.AllDay() {
			e.SetAllDayStartAt(ev.StartTime.UTC())
			e.SetAllDayEndAt(ev.EndTime().UTC())
		} else {
			e.SetStartAt(ev.StartTime.UTC())
			e.SetEndAt(ev.EndTime().UTC())
		}
		summary := ev.Summary
		if summary == "" {
			summary = ev.Title
		}
		e.SetSummary(summary)
		if desc := content.StripTags(ev.Description); desc != "" {
			e.SetDescription(desc)
		}
		if ev.Location != "" {
			e.SetLocation(ev.Location)
		}
		if len(ev.Tags) > 0 {
			e.SetProperty(ics.ComponentPropertyCategories, strings.Join(ev.Tags, ","))
		}
		if ev.URL != "" {
			e.SetURL(ev.URL)
		}
	}

	return cal.SerializeTo(w)
}
