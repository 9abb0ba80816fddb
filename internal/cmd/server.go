package cmd

import (
	"context"
	"fmt"
	"sync"
	"syscall"
	"time"

	"github.com/urfave/cli"

	"git.sr.ht/~mariusor/heorte/ical"
	"git.sr.ht/~mariusor/lw"
	w "git.sr.ht/~mariusor/wrapper"
)

var Server = cli.Command{
	Name:  "start",
	Usage: "Starts the iCal serving server",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "debug",
			Usage: "Output debug messages",
		},
		&cli.StringFlag{
			Name:  "host",
			Usage: "Set hostname on which to listen to",
			Value: "localhost",
		},
		&cli.IntFlag{
			Name:  "port",
			Usage: "Set port on which to listen to",
			Value: 9999,
		},
	},
	Action: serverStart,
}

var wait = 100 * time.Millisecond

func calendarFromSettings(s Settings) ical.Calendar {
	return ical.Calendar{
		Name:        s.SiteTitle,
		URL:         s.SiteURL + "/" + s.ICSName,
		Version:     AppVersion,
		Timezone:    s.Timezone,
		DefaultLang: s.DefaultLang,
	}
}

func serverStart(c *cli.Context) error {
	if c.Bool("debug") || c.GlobalBool("debug") {
		logger := lw.Dev()
		info = logger.Infof
		errFn = logger.Errorf
	}

	listen := fmt.Sprintf("%s:%d", c.String("host"), c.Int("port"))
	info("Listening on %s", listen)

	// Create a deadline to wait for.
	ctx, cancel := context.WithTimeout(context.Background(), wait)
	defer cancel()

	path := c.GlobalString("path")
	settings, err := LoadSettings(settingsPath(c.GlobalString("settings")))
	if err != nil {
		return err
	}
	// the handler reads the settings per request, the SIGHUP handler
	// writes them
	var mu sync.RWMutex
	currentCalendar := func() ical.Calendar {
		mu.RLock()
		defer mu.RUnlock()
		return calendarFromSettings(settings)
	}
	routes := ical.Routes(path, currentCalendar)
	// Get start/stop functions for the http server
	srvRun, srvStop := w.HttpServer(w.Handler(routes), w.OnTCP(listen))
	w.RegisterSignalHandlers(w.SignalHandlers{
		syscall.SIGHUP: func(_ chan int) {
			info("SIGHUP received, reloading configuration")
			if s, err := LoadSettings(settingsPath(c.GlobalString("settings"))); err == nil {
				mu.Lock()
				settings = s
				mu.Unlock()
			}
		},
		syscall.SIGINT: func(exit chan int) {
			info("SIGINT received, stopping")
			exit <- 0
		},
		syscall.SIGTERM: func(exit chan int) {
			info("SIGITERM received, force stopping")
			exit <- 0
		},
		syscall.SIGQUIT: func(exit chan int) {
			info("SIGQUIT received, force stopping with core-dump")
			exit <- 0
		},
	}).Exec(func() error {
		if err := srvRun(); err != nil {
			errFn("Error: %s", err)
			return err
		}
		var err error
		// Doesn't block if no connections, but will otherwise wait until the timeout deadline.
		go func(e error) {
			if err = srvStop(ctx); err != nil {
				errFn("Error: %s", err)
			}
		}(err)
		return err
	})

	return nil
}
