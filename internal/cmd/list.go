package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/urfave/cli"

	"git.sr.ht/~mariusor/heorte/storage"
	"git.sr.ht/~mariusor/heorte/storage/boltdb"
)

var ListCmd = cli.Command{
	Name:  "list",
	Usage: "Lists cached calendar events",
	Flags: []cli.Flag{
		&cli.StringSliceFlag{
			Name:  "lang",
			Usage: "Which language groups to list",
		},
		&cli.BoolFlag{
			Name:  "debug",
			Usage: "Output debug messages",
		},
		&cli.StringFlag{
			Name:  "start",
			Usage: "Date at which to start",
			Value: defaultStartTime.Format("2006-01-02"),
		},
		&cli.DurationFlag{
			Name:  "end",
			Usage: "Date interval to check",
			Value: defaultDuration,
		},
	},
	Action: listEvents,
}

func listEvents(c *cli.Context) error {
	langs := c.StringSlice("lang")

	start := defaultStartTime
	if sf := c.String("start"); len(sf) > 0 {
		if sfp, err := time.Parse("2006-01-02", sf); err == nil {
			start = sfp
		}
	}
	duration := c.Duration("end")

	st := boltdb.New(boltdb.Config{
		Path:  filepath.Join(c.GlobalString("path"), boltdb.DefaultFile),
		LogFn: nil,
		ErrFn: nil,
	})

	info("Loading events for period: %s - %s", start.Format("2006-01-02 Mon, 15:04"), start.Add(duration).Format("2006-01-02 Mon, 15:04"))
	events, err := st.LoadEvents(storage.Cursor(start, duration), langs...)
	if err != nil {
		return fmt.Errorf("unable to load events: %w", err)
	}
	if len(events) == 0 {
		fmt.Printf("nothing found")
		return nil
	}
	for _, e := range events.SortedBySoonest() {
		fmtTime := e.StartTime.Format("2006-01-02 15:04 MST")
		loc := ""
		if len(e.Location) > 0 {
			loc = " @ " + e.Location
		}
		info("[%s] %s%s %s//%s", e.Slug, e.Title, loc, fmtTime, e.Duration)
		if e.Summary != "" {
			info("%s", e.Summary)
		}
	}
	return nil
}
