package render

import (
	"embed"
	"html/template"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-ap/errors"
	"github.com/mariusor/render"

	"git.sr.ht/~mariusor/heorte"
)

//go:embed templates
var templates embed.FS

type LoggerFn func(string, ...interface{})

// Config collects what the list pages need besides the events.
type Config struct {
	// SiteTitle ends up in the page titles.
	SiteTitle string
	// OutputPath is the site output directory the pages are written to.
	OutputPath string
	// DefaultLang groups events without an explicit language.
	DefaultLang string
	LogFn       LoggerFn
	ErrFn       LoggerFn
}

type renderer struct {
	title    string
	output   string
	dfltLang string
	ren      *render.Render
	log      LoggerFn
	err      LoggerFn
}

var defaultRenderOptions = render.Options{
	Directory:  "templates",
	FileSystem: templates,
	Layout:     "main",
	Extensions: []string{".html"},
	Funcs: []template.FuncMap{{
		"datetime": func(t time.Time) string { return t.Format(time.RFC3339) },
		"showDate": func(t time.Time) string { return t.Format("2006-01-02 15:04") },
		"raw":      func(s string) template.HTML { return template.HTML(s) },
	}},
	Delims:                    render.Delims{Left: "{{", Right: "}}"},
	Charset:                   "UTF-8",
	DisableCharset:            false,
	HTMLContentType:           "text/html",
	DisableHTTPErrorRendering: true,
}

func New(c Config) *renderer {
	r := renderer{
		title:    c.SiteTitle,
		output:   c.OutputPath,
		dfltLang: c.DefaultLang,
		ren:      render.New(defaultRenderOptions),
		log:      func(string, ...interface{}) {},
		err:      func(string, ...interface{}) {},
	}
	if c.LogFn != nil {
		r.log = c.LogFn
	}
	if c.ErrFn != nil {
		r.err = c.ErrFn
	}
	return &r
}

type listPage struct {
	Title     string
	Site      string
	Lang      string
	Generated time.Time
	Events    heorte.Events
}

// WritePages renders the full event list and the upcoming list into
// the output path. When events carry languages, one pair of pages is
// written per language under a language subdirectory.
func (r *renderer) WritePages(events heorte.Events, now time.Time) error {
	events = events.Published()
	if !events.Localized() {
		return r.writePair(r.output, r.dfltLang, events, now)
	}
	for lang, grouped := range events.ByLang(r.dfltLang) {
		if err := r.writePair(filepath.Join(r.output, lang), lang, grouped, now); err != nil {
			return err
		}
	}
	return nil
}

func (r *renderer) writePair(dir, lang string, events heorte.Events, now time.Time) error {
	all := listPage{
		Title:     "Events",
		Site:      r.title,
		Lang:      lang,
		Generated: now,
		Events:    events.SortedByNewest(),
	}
	if err := r.writeList(dir, "events", all); err != nil {
		return err
	}
	upcoming := listPage{
		Title:     "Upcoming events",
		Site:      r.title,
		Lang:      lang,
		Generated: now,
		Events:    events.Upcoming(now).SortedBySoonest(),
	}
	return r.writeList(dir, "upcoming", upcoming)
}

func (r *renderer) writeList(dir, name string, page listPage) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Annotatef(err, "unable to create output path %s", dir)
	}
	path := filepath.Join(dir, name+".html")
	f, err := os.Create(path)
	if err != nil {
		return errors.Annotatef(err, "unable to create page %s", path)
	}
	defer f.Close()

	if err = r.ren.HTML(f, http.StatusOK, name, page); err != nil {
		return errors.Annotatef(err, "unable to render page %s", path)
	}
	r.log("wrote %s with %d events", path, len(page.Events))
	return nil
}
