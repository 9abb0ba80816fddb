package recur

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-ap/errors"
	"github.com/teambition/rrule-go"

	"git.sr.ht/~mariusor/heorte"
	"git.sr.ht/~mariusor/heorte/content"
)

// Rule declares a recurring event in the site settings. Recurrence
// follows RFC 5545 RRULE syntax.
type Rule struct {
	Title    string `yaml:"title"`
	Summary  string `yaml:"summary"`
	Location string `yaml:"location"`
	PageURL  string `yaml:"page_url"`
	Rule     string `yaml:"recurring_rule"`
	Duration string `yaml:"event-duration"`
}

// NextOccurrence expands the rule to its first occurrence strictly
// after now. Rules with nothing left in the future return an invalid
// event.
func (r Rule) NextOccurrence(now time.Time, siteURL string) (heorte.Event, error) {
	rule, err := rrule.StrToRRule(r.Rule)
	if err != nil {
		return heorte.Event{}, errors.Annotatef(err, "invalid recurring rule for event named %q", r.Title)
	}
	duration, err := content.ParseDuration(r.Duration)
	if err != nil {
		return heorte.Event{}, errors.Annotatef(err, "invalid event-duration for event named %q", r.Title)
	}

	next := rule.After(now, false)
	if next.IsZero() {
		return heorte.Event{}, nil
	}
	next = next.In(now.Location())

	slug := strings.TrimSuffix(r.PageURL, ".html")
	return heorte.Event{
		Slug:         "pages/" + slug,
		Title:        r.Title,
		Summary:      content.StripTags(r.Summary),
		Location:     r.Location,
		URL:          fmt.Sprintf("%s/pages/%s", strings.TrimSuffix(siteURL, "/"), r.PageURL),
		StartTime:    next,
		Duration:     duration,
		LastModified: next,
	}, nil
}

// Events expands all rules against the same reference time.
func Events(rules []Rule, now time.Time, siteURL string) (heorte.Events, error) {
	events := make(heorte.Events, 0, len(rules))
	for _, r := range rules {
		ev, err := r.NextOccurrence(now, siteURL)
		if err != nil {
			return events, err
		}
		if ev.IsValid() {
			events = append(events, ev)
		}
	}
	return events, nil
}
