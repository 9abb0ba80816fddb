package render

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.sr.ht/~mariusor/heorte"
)

func testEvent(slug, title, lang string, start time.Time) heorte.Event {
	return heorte.Event{
		Slug:      slug,
		Title:     title,
		Lang:      lang,
		URL:       "https://example.com/" + slug + ".html",
		StartTime: start,
		Duration:  time.Hour,
	}
}

func readPage(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err, "expected page at %s", path)
	return string(data)
}

func TestWritePages(t *testing.T) {
	out := t.TempDir()
	now := time.Date(2030, 5, 4, 12, 0, 0, 0, time.UTC)

	events := heorte.Events{
		testEvent("events/future", "Repair night", "", now.Add(48*time.Hour)),
		testEvent("events/past", "Old soldering workshop", "", now.Add(-48*time.Hour)),
	}
	draft := testEvent("events/draft", "Unfinished announcement", "", now.Add(24*time.Hour))
	draft.Draft = true
	events = append(events, draft)

	r := New(Config{SiteTitle: "Makerspace", OutputPath: out, DefaultLang: "en", LogFn: t.Logf})
	require.NoError(t, r.WritePages(events, now))

	all := readPage(t, filepath.Join(out, "events.html"))
	assert.Contains(t, all, "Makerspace")
	assert.Contains(t, all, "Repair night")
	assert.Contains(t, all, "Old soldering workshop")
	assert.NotContains(t, all, "Unfinished announcement")

	upcoming := readPage(t, filepath.Join(out, "upcoming.html"))
	assert.Contains(t, upcoming, "Repair night")
	assert.NotContains(t, upcoming, "Old soldering workshop")
}

func TestWritePagesLocalized(t *testing.T) {
	out := t.TempDir()
	now := time.Date(2030, 5, 4, 12, 0, 0, 0, time.UTC)

	events := heorte.Events{
		testEvent("events/en", "English only", "en", now.Add(48*time.Hour)),
		testEvent("events/de", "Nur Deutsch", "de", now.Add(48*time.Hour)),
		testEvent("events/untagged", "No language", "", now.Add(48*time.Hour)),
	}

	r := New(Config{SiteTitle: "Makerspace", OutputPath: out, DefaultLang: "en"})
	require.NoError(t, r.WritePages(events, now))

	en := readPage(t, filepath.Join(out, "en", "events.html"))
	assert.Contains(t, en, "English only")
	// events without a language end up under the default one
	assert.Contains(t, en, "No language")
	assert.NotContains(t, en, "Nur Deutsch")

	de := readPage(t, filepath.Join(out, "de", "events.html"))
	assert.Contains(t, de, "Nur Deutsch")
	assert.NotContains(t, de, "English only")

	_, err := os.Stat(filepath.Join(out, "events.html"))
	assert.True(t, os.IsNotExist(err))
}

func TestWritePagesEmptyUpcoming(t *testing.T) {
	out := t.TempDir()
	now := time.Date(2030, 5, 4, 12, 0, 0, 0, time.UTC)

	events := heorte.Events{
		testEvent("events/past", "Old soldering workshop", "", now.Add(-30*24*time.Hour)),
	}

	r := New(Config{SiteTitle: "Makerspace", OutputPath: out, DefaultLang: "en"})
	require.NoError(t, r.WritePages(events, now))

	upcoming := readPage(t, filepath.Join(out, "upcoming.html"))
	assert.Contains(t, upcoming, "No upcoming events.")
}
