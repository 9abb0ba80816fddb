package content

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePage(t *testing.T, root, name, data string) string {
	t.Helper()
	path := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))
	return path
}

const eventPage = `---
title: Repair night
date: 2030-04-01 10:00
summary: Bring your broken things
lang: en
event-start: 2030-05-04 18:00
event-duration: 2h 30m
event-location: The workshop
tags:
  - repair
---
We fix things together.
`

func TestLoadArticle(t *testing.T) {
	root := t.TempDir()
	path := writePage(t, root, "events/repair-night.md", eventPage)

	a, err := LoadArticle(root, path)
	require.NoError(t, err)

	assert.Equal(t, "events/repair-night", a.Slug)
	assert.Equal(t, "Repair night", a.Meta.Title)
	assert.Equal(t, "2030-05-04 18:00", a.Meta.EventStart)
	assert.Equal(t, "2h 30m", a.Meta.EventDuration)
	assert.Equal(t, "The workshop", a.Meta.EventLocation)
	assert.Equal(t, []string{"repair"}, a.Meta.Tags)
	assert.Equal(t, "We fix things together.\n", string(a.Body))
	assert.True(t, a.IsEvent())
	assert.False(t, a.IsDraft())
}

func TestLoadArticleWithoutFrontMatter(t *testing.T) {
	root := t.TempDir()
	path := writePage(t, root, "plain.md", "# Just a page\n\nNothing to see.\n")

	a, err := LoadArticle(root, path)
	require.NoError(t, err)
	assert.False(t, a.IsEvent())
	assert.Contains(t, string(a.Body), "Just a page")
}

func TestLoadArticleUnterminatedFrontMatter(t *testing.T) {
	root := t.TempDir()
	path := writePage(t, root, "broken.md", "---\ntitle: Broken\n")

	_, err := LoadArticle(root, path)
	assert.Error(t, err)
}

func TestArticleField(t *testing.T) {
	root := t.TempDir()
	page := `---
title: Show
abstract: The one line version
event-start: 2030-05-04 18:00
event-duration: 1h
---
`
	path := writePage(t, root, "show.md", page)

	a, err := LoadArticle(root, path)
	require.NoError(t, err)
	assert.Equal(t, "The one line version", a.Field("abstract"))
	assert.Equal(t, "The one line version", a.Field("Abstract"))
	assert.Equal(t, "", a.Field("missing"))
}

func TestIsDraft(t *testing.T) {
	root := t.TempDir()
	page := `---
title: Not ready
status: draft
event-start: 2030-05-04 18:00
event-duration: 1h
---
`
	path := writePage(t, root, "draft.md", page)

	a, err := LoadArticle(root, path)
	require.NoError(t, err)
	assert.True(t, a.IsDraft())
}

func TestParseTimestamp(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	got, err := ParseTimestamp("2030-05-04 18:00", berlin)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2030, 5, 4, 18, 0, 0, 0, berlin), got)

	got, err = ParseTimestamp("2030-05-04", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2030, 5, 4, 0, 0, 0, 0, time.UTC), got)

	_, err = ParseTimestamp("not a date", time.UTC)
	assert.Error(t, err)
}
