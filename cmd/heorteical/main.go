package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli"

	"git.sr.ht/~mariusor/heorte/internal/cmd"
)

var version = "(unknown)"

func main() {
	var err error

	ctl := cli.App{
		Name:    fmt.Sprintf("%sical", cmd.AppName),
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "path",
				Usage: "Set storage path",
				Value: cmd.DataPath(),
			},
			&cli.StringFlag{
				Name:  "settings",
				Usage: "Set settings file",
				Value: filepath.Join(cmd.DataPath(), cmd.DefaultSettingsFile),
			},
		},
		Commands: []cli.Command{
			cmd.Server,
		},
	}

	err = ctl.Run(os.Args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}
