package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
)

// defaultLocation is the financial-institution timezone attached to
// parsed dates when the caller does not supply one.
var defaultLocation = loadDefaultLocation()

func loadDefaultLocation() *time.Location {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		return time.FixedZone("-03", -3*60*60)
	}
	return loc
}

// DateParser converts locale-formatted date strings into timestamps.
// The pattern must capture day, month and year as named groups;
// hour, min and sec groups are optional and default to zero.
type DateParser struct {
	re     *regexp.Regexp
	loc    *time.Location
	logger *log.Logger
}

func NewDateParser(logger *log.Logger, re *regexp.Regexp) *DateParser {
	return &DateParser{re: re, loc: defaultLocation, logger: logger}
}

// WithLocation returns a copy of the parser attaching results to loc.
func (p *DateParser) WithLocation(loc *time.Location) *DateParser {
	clone := *p
	clone.loc = loc
	return &clone
}

func (p *DateParser) Location() *time.Location { return p.loc }

// Parse returns the timestamp for raw, or nil when raw is empty, the
// pattern does not match, or the matched fields do not form a calendar
// date. Malformed-but-matched dates are logged, never fatal.
func (p *DateParser) Parse(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	m := p.re.FindStringSubmatch(raw)
	if m == nil {
		return nil
	}

	fields := map[string]string{"month": "01", "day": "01", "hour": "00", "min": "00", "sec": "00"}
	for i, name := range p.re.SubexpNames() {
		if name != "" && m[i] != "" {
			fields[name] = m[i]
		}
	}

	year, err := adjustYear(fields["year"])
	if err != nil {
		p.logger.Error("failed converting date, returning nil", "input", raw, "error", err)
		return nil
	}
	month, _ := strconv.Atoi(fields["month"])
	day, _ := strconv.Atoi(fields["day"])
	hour, _ := strconv.Atoi(fields["hour"])
	minute, _ := strconv.Atoi(fields["min"])
	sec, _ := strconv.Atoi(fields["sec"])

	t := time.Date(year, time.Month(month), day, hour, minute, sec, 0, p.loc)
	// time.Date normalizes overflowing fields, so a month 13 or a day
	// past the end of the month silently rolls over; reject those.
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day {
		p.logger.Error("failed converting date, returning nil", "input", raw)
		return nil
	}
	return &t
}

// adjustYear expands a 2-digit year: values below 50 get the current
// century, the rest the previous one. The split is anchored to the run
// date, not a fixed epoch.
func adjustYear(raw string) (int, error) {
	switch len(raw) {
	case 4:
		return strconv.Atoi(raw)
	case 2:
		yy, err := strconv.Atoi(raw)
		if err != nil {
			return 0, err
		}
		century := time.Now().Year() / 100
		if yy >= 50 {
			century--
		}
		return century*100 + yy, nil
	default:
		return 0, fmt.Errorf("invalid year %q", raw)
	}
}
