package content

import (
	"strconv"
	"strings"
	"time"

	"github.com/go-ap/errors"
)

var multipliers = map[byte]time.Duration{
	'w': 7 * 24 * time.Hour,
	'd': 24 * time.Hour,
	'h': time.Hour,
	'm': time.Minute,
	's': time.Second,
}

const validMultipliers = "w d h m s"

// ParseDuration parses duration strings of the form "[<num><multiplier> ]*",
// e.g. "2h 30m". Fractional values are accepted: "1.5h".
func ParseDuration(raw string) (time.Duration, error) {
	chunks := strings.Fields(raw)
	if len(chunks) == 0 {
		return 0, errors.Newf("empty duration value")
	}
	var total time.Duration
	for _, c := range chunks {
		mul, ok := multipliers[c[len(c)-1]]
		if !ok {
			return 0, errors.Newf("unknown time multiplier %q, supported multipliers are: %s", c, validMultipliers)
		}
		val, err := strconv.ParseFloat(c[:len(c)-1], 64)
		if err != nil {
			return 0, errors.Newf("unable to parse %q as a duration chunk", c)
		}
		total += time.Duration(val * float64(mul))
	}
	return total, nil
}
