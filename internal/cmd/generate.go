package cmd

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/urfave/cli"

	"git.sr.ht/~mariusor/heorte"
	"git.sr.ht/~mariusor/heorte/content"
	"git.sr.ht/~mariusor/heorte/ical"
	"git.sr.ht/~mariusor/heorte/recur"
	"git.sr.ht/~mariusor/heorte/render"
	"git.sr.ht/~mariusor/heorte/storage/boltdb"
)

var GenerateCmd = cli.Command{
	Name:  "generate",
	Usage: "Scans the content path and writes the calendar file and the event list pages",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "debug",
			Usage: "Output debug messages",
		},
		&cli.BoolFlag{
			Name:  "dry-run",
			Usage: "Don't persist events or write output files",
		},
	},
	Action: generateSite,
}

func generateSite(c *cli.Context) error {
	debug := c.Bool("debug") || c.GlobalBool("debug")
	dryRun := c.Bool("dry-run")

	s, err := LoadSettings(settingsPath(c.GlobalString("settings")))
	if err != nil {
		return err
	}
	loc, err := s.Location()
	if err != nil {
		errFn("%s", err)
	}
	now := time.Now().In(loc)

	var debugFn logFn = func(string, ...interface{}) {}
	if debug {
		debugFn = info
	}

	scanner := content.New(content.Config{
		Root:         s.ContentPath,
		SiteURL:      s.SiteURL,
		SummaryField: s.SummaryField,
		Location:     loc,
		LogFn:        content.LoggerFn(debugFn),
		ErrFn:        content.LoggerFn(errFn),
	})
	events, scanErr := scanner.Scan(context.Background())

	recurring, err := recur.Events(s.RecurringEvents, now, s.SiteURL)
	if err != nil {
		return err
	}
	events = append(events, recurring...)
	info("%d events found in %s", len(events), s.ContentPath)

	if dryRun {
		debugFn("dry-run: skipping cache and output")
		return scanErr
	}

	st := boltdb.New(boltdb.Config{
		Path:  filepath.Join(c.GlobalString("path"), boltdb.DefaultFile),
		LogFn: boltdb.LoggerFn(debugFn),
		ErrFn: boltdb.LoggerFn(errFn),
	})
	if err = st.SaveEvents(events); err != nil {
		return err
	}

	published := events.Published()
	if s.ICSName != "" {
		if err = writeCalendar(s, loc, published, now); err != nil {
			return err
		}
	}

	ren := render.New(render.Config{
		SiteTitle:   s.SiteTitle,
		OutputPath:  s.OutputPath,
		DefaultLang: s.DefaultLang,
		LogFn:       render.LoggerFn(debugFn),
		ErrFn:       render.LoggerFn(errFn),
	})
	if err = ren.WritePages(published, now); err != nil {
		return err
	}
	return scanErr
}

func writeCalendar(s Settings, loc *time.Location, events heorte.Events, now time.Time) error {
	if events.Localized() {
		events = events.ByLang(s.DefaultLang)[s.DefaultLang]
	}

	if err := MkDirIfNotExists(s.OutputPath); err != nil {
		return err
	}
	path := filepath.Join(s.OutputPath, s.ICSName)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	events = events.From(now).SortedBySoonest()
	info("generating calendar at %s with %d events", path, len(events))
	return ical.Encode(f, ical.Calendar{
		Name:     s.SiteTitle,
		URL:      s.SiteURL + "/" + s.ICSName,
		Version:  AppVersion,
		Timezone: loc.String(),
	}, events)
}
