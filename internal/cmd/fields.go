package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli"

	"git.sr.ht/~mariusor/heorte/content"
)

var FieldsCmd = cli.Command{
	Name:               "fields",
	Usage:              "Lists the recognized event metadata fields, use --help to see a human readable list",
	Action:             showFields,
	CustomHelpTemplate: fieldsHelp(),
}

var eventFields = map[string]string{
	"event-start":    "Event start timestamp, format " + content.TimestampFormat,
	"event-end":      "Event end timestamp, same format as event-start",
	"event-duration": "Event duration, eg. 2h 30m; either it or event-end is required",
	"event-location": "Free form event location",
}

var fieldOrder = []string{"event-start", "event-end", "event-duration", "event-location"}

func writeHelpFields(w io.StringWriter, fields ...string) error {
	for _, f := range fields {
		w.WriteString("\t\t")
		w.WriteString(f)
		w.WriteString(": ")
		w.WriteString(eventFields[f])
		w.WriteString("\n")
	}
	return nil
}

func fieldsHelp() string {
	h := strings.Builder{}
	h.WriteString("Event metadata fields:\n")
	writeHelpFields(&h, fieldOrder...)
	return h.String()
}

func showFields(c *cli.Context) error {
	fmt.Printf("%s\n", strings.Join(fieldOrder, ", "))
	return nil
}
