package cmd

import (
	"os"
	"path/filepath"
	"time"

	"github.com/go-ap/errors"
	"gopkg.in/yaml.v3"

	"git.sr.ht/~mariusor/heorte/content"
	"git.sr.ht/~mariusor/heorte/recur"
)

// DefaultSettingsFile is looked up under the data path when no
// settings flag was passed.
const DefaultSettingsFile = "heorte.yml"

// Settings is the site configuration the generator runs against.
type Settings struct {
	SiteURL         string       `yaml:"site_url"`
	SiteTitle       string       `yaml:"site_title"`
	DefaultLang     string       `yaml:"default_lang"`
	Timezone        string       `yaml:"timezone"`
	ContentPath     string       `yaml:"content_path"`
	OutputPath      string       `yaml:"output_path"`
	ICSName         string       `yaml:"ics_fname"`
	SummaryField    string       `yaml:"metadata_field_for_summary"`
	RecurringEvents []recur.Rule `yaml:"recurring_events"`
}

func defaultSettings() Settings {
	return Settings{
		SiteTitle:    AppName,
		DefaultLang:  "en",
		ContentPath:  "content",
		OutputPath:   "output",
		ICSName:      "calendar.ics",
		SummaryField: content.DefaultSummaryField,
	}
}

// LoadSettings reads the settings file, falling back to defaults for
// everything the file does not set. A missing file is not an error.
func LoadSettings(path string) (Settings, error) {
	s := defaultSettings()
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, errors.Annotatef(err, "unable to read settings file %s", path)
	}
	if err = yaml.Unmarshal(raw, &s); err != nil {
		return s, errors.Annotatef(err, "invalid settings file %s", path)
	}
	return s, nil
}

// Location resolves the configured timezone, the system local zone
// when unset.
func (s Settings) Location() (*time.Location, error) {
	if s.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.Local, errors.Annotatef(err, "unknown timezone %q", s.Timezone)
	}
	return loc, nil
}

func settingsPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return filepath.Join(DataPath(), DefaultSettingsFile)
}
