package content

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-ap/errors"
	"gopkg.in/yaml.v3"
)

// Metadata holds the recognized front matter fields of a page.
type Metadata struct {
	Title         string   `yaml:"title"`
	Date          string   `yaml:"date"`
	Summary       string   `yaml:"summary"`
	Lang          string   `yaml:"lang"`
	Status        string   `yaml:"status"`
	URL           string   `yaml:"url"`
	Tags          []string `yaml:"tags"`
	EventStart    string   `yaml:"event-start"`
	EventEnd      string   `yaml:"event-end"`
	EventDuration string   `yaml:"event-duration"`
	EventLocation string   `yaml:"event-location"`
}

// Article is a content page together with its parsed front matter.
type Article struct {
	Path string
	Slug string
	Meta Metadata
	Body []byte

	fields map[string]string
}

var frontMatterDelim = []byte("---")

func splitFrontMatter(data []byte) ([]byte, []byte, error) {
	trimmed := bytes.TrimLeft(data, "\r\n \t")
	if !bytes.HasPrefix(trimmed, frontMatterDelim) {
		return nil, data, nil
	}
	rest := trimmed[len(frontMatterDelim):]
	end := bytes.Index(rest, append([]byte("\n"), frontMatterDelim...))
	if end < 0 {
		return nil, data, errors.Newf("unterminated front matter block")
	}
	meta := rest[:end]
	body := rest[end+1+len(frontMatterDelim):]
	return meta, bytes.TrimLeft(body, "\r\n"), nil
}

// LoadArticle reads a page from disk and parses its front matter.
// The slug is the page path relative to root, without extension.
func LoadArticle(root, path string) (*Article, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Annotatef(err, "unable to read page %s", path)
	}

	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = filepath.Base(path)
	}
	a := Article{
		Path: path,
		Slug: strings.TrimSuffix(filepath.ToSlash(rel), filepath.Ext(rel)),
	}

	meta, body, err := splitFrontMatter(data)
	if err != nil {
		return nil, errors.Annotatef(err, "invalid front matter in page %s", path)
	}
	a.Body = body
	if meta == nil {
		return &a, nil
	}
	if err = yaml.Unmarshal(meta, &a.Meta); err != nil {
		return nil, errors.Annotatef(err, "invalid front matter in page %s", path)
	}
	// a second decode keeps the raw fields around for configurable
	// metadata lookups, eg. metadata_field_for_summary
	raw := make(map[string]interface{})
	if err = yaml.Unmarshal(meta, &raw); err == nil {
		a.fields = make(map[string]string, len(raw))
		for k, v := range raw {
			if s, ok := v.(string); ok {
				a.fields[strings.ToLower(k)] = s
			} else if v != nil {
				a.fields[strings.ToLower(k)] = fmt.Sprintf("%v", v)
			}
		}
	}
	return &a, nil
}

// Field returns the raw front matter value for name.
func (a *Article) Field(name string) string {
	return a.fields[strings.ToLower(name)]
}

// IsEvent reports whether the page declared an event start time.
func (a *Article) IsEvent() bool {
	return a.Meta.EventStart != ""
}

// IsDraft reports whether the page should stay out of outputs.
func (a *Article) IsDraft() bool {
	return strings.EqualFold(a.Meta.Status, "draft")
}

// TimestampFormat is the expected format of the event-start and
// event-end metadata fields.
const TimestampFormat = "2006-01-02 15:04"

var timestampFormats = []string{
	TimestampFormat,
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC3339,
}

// ParseTimestamp parses a metadata timestamp in the site's timezone.
func ParseTimestamp(raw string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	for _, f := range timestampFormats {
		if t, err := time.ParseInLocation(f, raw, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.Newf("unable to parse timestamp %q, expected format %q", raw, TimestampFormat)
}
