package content

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"git.sr.ht/~mariusor/tagextractor"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-ap/errors"
	"gitlab.com/golang-commonmark/markdown"
	"golang.org/x/sync/errgroup"

	"git.sr.ht/~mariusor/heorte"
)

const DefaultSummaryField = "summary"

type LoggerFn func(string, ...interface{})

// Config collects the knobs of a content scan.
type Config struct {
	// Root is the content directory to walk.
	Root string
	// SiteURL prefixes page URLs, it becomes part of the event UID.
	SiteURL string
	// SummaryField is the front matter field used for the calendar
	// summary, "summary" when empty.
	SummaryField string
	// Location is the timezone event timestamps are read in.
	Location *time.Location
	LogFn    LoggerFn
	ErrFn    LoggerFn
}

type scanner struct {
	root    string
	siteURL string
	summary string
	loc     *time.Location
	log     LoggerFn
	err     LoggerFn
}

func New(c Config) *scanner {
	s := scanner{
		root:    c.Root,
		siteURL: strings.TrimSuffix(c.SiteURL, "/"),
		summary: c.SummaryField,
		loc:     c.Location,
		log:     func(string, ...interface{}) {},
		err:     func(string, ...interface{}) {},
	}
	if s.summary == "" {
		s.summary = DefaultSummaryField
	}
	if s.loc == nil {
		s.loc = time.Local
	}
	if c.LogFn != nil {
		s.log = c.LogFn
	}
	if c.ErrFn != nil {
		s.err = c.ErrFn
	}
	return &s
}

func isPage(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return true
	}
	return false
}

// Scan walks the content tree and extracts one event per page that
// declares event metadata. Pages failing to parse are reported through
// the returned error but do not stop the walk.
func (s *scanner) Scan(ctx context.Context) (heorte.Events, error) {
	paths := make([]string, 0)
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && isPage(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Annotatef(err, "unable to walk content path %s", s.root)
	}

	var mu sync.Mutex
	events := make(heorte.Events, 0, len(paths))
	failed := make([]error, 0)

	g, ctx := errgroup.WithContext(ctx)
	for _, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			ev, err := s.loadEvent(path)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				s.err("%s: %s", path, err)
				failed = append(failed, err)
				return nil
			}
			if ev != nil {
				s.log("found event %v", *ev)
				events = append(events, *ev)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return events, err
	}
	if len(failed) > 0 {
		return events, errors.Newf("%d of %d pages failed to parse", len(failed), len(paths))
	}
	return events, nil
}

// loadEvent returns nil without an error for pages that carry no event
// metadata.
func (s *scanner) loadEvent(path string) (*heorte.Event, error) {
	a, err := LoadArticle(s.root, path)
	if err != nil {
		return nil, err
	}
	if !a.IsEvent() {
		return nil, nil
	}

	start, err := ParseTimestamp(a.Meta.EventStart, s.loc)
	if err != nil {
		return nil, errors.Annotatef(err, "unable to parse the event-start field in the event named %q", a.Meta.Title)
	}

	var duration time.Duration
	switch {
	case a.Meta.EventEnd != "":
		end, err := ParseTimestamp(a.Meta.EventEnd, s.loc)
		if err != nil {
			return nil, errors.Annotatef(err, "unable to parse the event-end field in the event named %q", a.Meta.Title)
		}
		duration = end.Sub(start)
	case a.Meta.EventDuration != "":
		if duration, err = ParseDuration(a.Meta.EventDuration); err != nil {
			return nil, errors.Annotatef(err, "invalid event-duration field in the event named %q", a.Meta.Title)
		}
	default:
		return nil, errors.Newf("either event-end or event-duration must be specified in the event named %q", a.Meta.Title)
	}

	modified := start
	if a.Meta.Date != "" {
		if d, err := ParseTimestamp(a.Meta.Date, s.loc); err == nil {
			modified = d
		}
	} else if fi, err := os.Stat(path); err == nil {
		modified = fi.ModTime()
	}

	body, found := tagextractor.FindAndReplace(bytes.TrimSpace(a.Body))
	tags := a.Meta.Tags
	for _, t := range heorte.TagNames(found) {
		if !containsFold(tags, t) {
			tags = append(tags, t)
		}
	}

	summary := a.Field(s.summary)
	if summary == "" {
		summary = a.Meta.Summary
	}

	ev := heorte.Event{
		Slug:         a.Slug,
		Title:        a.Meta.Title,
		Summary:      StripTags(summary),
		Description:  renderMarkdown(body),
		Location:     a.Meta.EventLocation,
		Lang:         a.Meta.Lang,
		URL:          s.pageURL(a),
		Tags:         tags,
		StartTime:    start,
		Duration:     duration,
		LastModified: modified,
		Draft:        a.IsDraft(),
	}
	return &ev, nil
}

func (s *scanner) pageURL(a *Article) string {
	u := a.Meta.URL
	if u == "" {
		u = a.Slug + ".html"
	}
	return fmt.Sprintf("%s/%s", s.siteURL, strings.TrimPrefix(u, "/"))
}

func containsFold(list []string, s string) bool {
	for _, l := range list {
		if strings.EqualFold(l, s) {
			return true
		}
	}
	return false
}

func renderMarkdown(data []byte) string {
	md := markdown.New(
		markdown.HTML(true),
		markdown.Tables(true),
		markdown.Linkify(false),
		markdown.Typographer(true),
		markdown.Breaks(true),
	)
	return md.RenderToString(data)
}

// StripTags flattens markup in a metadata value to its text content.
func StripTags(data string) string {
	if !strings.ContainsRune(data, '<') {
		return strings.TrimSpace(data)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(data))
	if err != nil {
		return strings.TrimSpace(data)
	}
	return strings.TrimSpace(doc.Text())
}
