package ical

import (
	"bytes"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"git.sr.ht/~mariusor/heorte/storage"
	"git.sr.ht/~mariusor/heorte/storage/boltdb"
)

type handler struct {
	cal  func() Calendar
	path string
}

// use one year
var serveWindow = 8759*time.Hour + 59*time.Minute + 59*time.Second

// Routes serves the calendar from the event cache found under path.
// The calendar header properties are resolved per request, so a
// settings reload reaches responses without a restart.
func Routes(path string, cal func() Calendar) http.Handler {
	h := handler{cal: cal, path: filepath.Join(path, boltdb.DefaultFile)}

	r := chi.NewRouter()
	r.Get("/calendar.ics", h.ServeHTTP)
	r.Get("/{lang}/calendar.ics", h.ServeHTTP)
	return r
}

func (h handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	lang := strings.ToLower(chi.URLParam(r, "lang"))

	st := boltdb.New(boltdb.Config{
		Path:  h.path,
		LogFn: nil,
		ErrFn: nil,
	})
	date := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	events, err := st.LoadEvents(storage.DateCursor{T: date, D: serveWindow})
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(fmt.Sprintf("%s", err)))
		return
	}

	c := h.cal()
	// events without a language belong to the default group, same as
	// the generated calendar file
	if lang != "" {
		events = events.ByLang(c.DefaultLang)[lang]
		c.Description = fmt.Sprintf("%s, events for %s", c.Name, lang)
		c.URL = fmt.Sprintf("%s/%s/calendar.ics", strings.TrimSuffix(c.URL, "/calendar.ics"), lang)
	} else if events.Localized() {
		events = events.ByLang(c.DefaultLang)[c.DefaultLang]
	}

	b := &bytes.Buffer{}
	err = Encode(b, c, events.Published().From(now).SortedBySoonest())
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(fmt.Sprintf("%s", err)))
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Write(b.Bytes())
}
