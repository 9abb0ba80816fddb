package boltdb

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"git.sr.ht/~mariusor/heorte"
	"git.sr.ht/~mariusor/heorte/storage"
)

type LoggerFn func(string, ...interface{})

type repo struct {
	d    *bolt.DB
	root []byte
	path string
	log  LoggerFn
	err  LoggerFn
}

const (
	rootBucket = "events"

	// DefaultFile is the cache file name under the data path.
	DefaultFile = "events.bdb"

	// undBucket holds events that carry no language.
	undBucket = "und"
)

// Events are stored one language bucket deep, under keys that order
// them chronologically.
const keyTimeFormat = "20060102T1504"

// Config
type Config struct {
	Path  string
	LogFn LoggerFn
	ErrFn LoggerFn
}

// New returns a new events repository
func New(c Config) *repo {
	b := repo{
		root: []byte(rootBucket),
		path: c.Path,
		log:  func(string, ...interface{}) {},
		err:  func(string, ...interface{}) {},
	}
	if c.ErrFn != nil {
		b.err = c.ErrFn
	}
	if c.LogFn != nil {
		b.log = c.LogFn
	}

	return &b
}

func (r *repo) open() error {
	var err error
	r.d, err = bolt.Open(r.path, 0600, nil)
	if err != nil {
		return fmt.Errorf("could not open db %s %w", r.path, err)
	}
	err = r.d.Update(func(tx *bolt.Tx) error {
		root, err := tx.CreateBucketIfNotExists(r.root)
		if err != nil {
			return fmt.Errorf("unable to create root bucket %s: %w", r.root, err)
		}
		if !root.Writable() {
			return fmt.Errorf("non writeable root bucket %s", r.root)
		}
		return nil
	})
	return err
}

// close closes the boltdb database if possible.
func (r *repo) close() error {
	if r.d == nil {
		return nil
	}
	return r.d.Close()
}

func langBucket(lang string) []byte {
	if lang == "" {
		return []byte(undBucket)
	}
	return []byte(lang)
}

func itemKey(date time.Time, slug string) []byte {
	return []byte(fmt.Sprintf("%s/%s", date.UTC().Format(keyTimeFormat), slug))
}

// getCursorKeys computes the key range of a cursor window, [min, max).
func getCursorKeys(c storage.DateCursor) ([]byte, []byte) {
	var min, max []byte
	if c.D < 0 {
		max = []byte(c.T.UTC().Format(keyTimeFormat))
		min = []byte(c.T.Add(c.D).UTC().Format(keyTimeFormat))
	} else {
		min = []byte(c.T.UTC().Format(keyTimeFormat))
		max = []byte(c.T.Add(c.D).UTC().Format(keyTimeFormat))
	}
	return min, max
}

// LoadEvent loads a single event by its page slug.
func (r *repo) LoadEvent(lang string, date time.Time, slug string) heorte.Event {
	events, err := r.LoadEvents(storage.DateCursor{T: date, D: time.Hour}, lang)
	if err != nil {
		r.err("error loading events: %s", err)
	}
	for _, event := range events {
		if event.Slug == slug {
			return event
		}
	}
	return heorte.Event{}
}

// LoadEvents loads the events of the cursor window. Without languages
// it loads every language bucket.
func (r *repo) LoadEvents(cursor storage.DateCursor, langs ...string) (heorte.Events, error) {
	var err error
	err = r.open()
	if err != nil {
		return nil, err
	}
	defer r.close()
	return loadFromBuckets(r.d, r.root, cursor, langs...)
}

func loadFromBucket(b *bolt.Bucket, min, max []byte) heorte.Events {
	events := make(heorte.Events, 0)

	c := b.Cursor()
	for key, raw := c.Seek(min); key != nil && bytes.Compare(key, max) < 0; key, raw = c.Next() {
		ev, err := loadItem(raw)
		if err != nil {
			continue
		}
		if ev.IsValid() {
			events = append(events, ev)
		}
	}

	return events
}

func rootLangs(rb *bolt.Bucket) []string {
	langs := make([]string, 0)
	rb.ForEach(func(k, v []byte) error {
		if v == nil {
			langs = append(langs, string(k))
		}
		return nil
	})
	return langs
}

func loadFromBuckets(db *bolt.DB, root []byte, cursor storage.DateCursor, langs ...string) (heorte.Events, error) {
	events := make(heorte.Events, 0)

	err := db.View(func(tx *bolt.Tx) error {
		rb := tx.Bucket(root)
		if rb == nil {
			return fmt.Errorf("invalid bucket %s", root)
		}
		if len(langs) == 0 {
			langs = rootLangs(rb)
		}

		min, max := getCursorKeys(cursor)
		for _, lang := range langs {
			b := rb.Bucket(langBucket(lang))
			if b == nil {
				continue
			}
			events = append(events, loadFromBucket(b, min, max)...)
		}
		return nil
	})

	return events, err
}

func loadItem(raw []byte) (heorte.Event, error) {
	ev := heorte.Event{}
	if len(raw) == 0 {
		return ev, fmt.Errorf("empty raw item")
	}
	err := json.Unmarshal(raw, &ev)
	return ev, err
}

// SaveEvents
func (r *repo) SaveEvents(events heorte.Events) error {
	var err error
	err = r.open()
	if err != nil {
		return err
	}
	defer r.close()

	for _, ev := range events {
		ev, err = save(r, ev)
		if err != nil {
			r.err("Error saving event %s: %s", ev.Slug, err)
		}
	}
	return err
}

// SaveEvent
func (r *repo) SaveEvent(ev heorte.Event) error {
	var err error
	err = r.open()
	if err != nil {
		return err
	}
	defer r.close()

	ev, err = save(r, ev)
	return err
}

func save(r *repo, ev heorte.Event) (heorte.Event, error) {
	err := r.d.Update(func(tx *bolt.Tx) error {
		root := tx.Bucket(r.root)
		if root == nil {
			return fmt.Errorf("invalid bucket %s", r.root)
		}
		if !root.Writable() {
			return fmt.Errorf("non writeable bucket %s", r.root)
		}
		b, err := root.CreateBucketIfNotExists(langBucket(ev.Lang))
		if err != nil {
			return fmt.Errorf("unable to create bucket for %s: %w", langBucket(ev.Lang), err)
		}
		entryBytes, err := json.Marshal(ev)
		if err != nil {
			return fmt.Errorf("could not marshal object: %w", err)
		}
		err = b.Put(itemKey(ev.StartTime, ev.Slug), entryBytes)
		if err != nil {
			return fmt.Errorf("could not store encoded object: %w", err)
		}

		return nil
	})

	return ev, err
}
