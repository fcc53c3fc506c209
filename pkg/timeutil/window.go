// Package timeutil parses the look-back windows accepted by list --since.
package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	day  = 24 * time.Hour
	week = 7 * day
)

var segment = regexp.MustCompile(`(\d+)\s*(weeks?|wks?|w|days?|d|hours?|hrs?|h|minutes?|mins?|m|seconds?|secs?|s)`)

var units = map[string]time.Duration{
	"w": week, "wk": week, "wks": week, "week": week, "weeks": week,
	"d": day, "day": day, "days": day,
	"h": time.Hour, "hr": time.Hour, "hrs": time.Hour, "hour": time.Hour, "hours": time.Hour,
	"m": time.Minute, "min": time.Minute, "mins": time.Minute, "minute": time.Minute, "minutes": time.Minute,
	"s": time.Second, "sec": time.Second, "secs": time.Second, "second": time.Second, "seconds": time.Second,
}

// ParseWindow reads a window such as "3d", "1w2d" or "2 hours". Segments may
// repeat and are summed. Empty input is a zero window with no error.
func ParseWindow(s string) (time.Duration, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0, nil
	}

	var total time.Duration
	rest := s
	for _, m := range segment.FindAllStringSubmatchIndex(s, -1) {
		n, err := strconv.Atoi(s[m[2]:m[3]])
		if err != nil {
			return 0, fmt.Errorf("invalid window %q: %w", s, err)
		}
		total += time.Duration(n) * units[s[m[4]:m[5]]]
		rest = strings.Replace(rest, s[m[0]:m[1]], "", 1)
	}
	if strings.TrimSpace(rest) != "" {
		return 0, fmt.Errorf("invalid window %q, want something like 3d or 1w2d", s)
	}
	if total <= 0 {
		return 0, fmt.Errorf("invalid window %q, must be longer than zero", s)
	}
	return total, nil
}

// FormatWindow prints d with the largest units first, e.g. 1w2d6h.
func FormatWindow(d time.Duration) string {
	if d < time.Second {
		return "0s"
	}
	var b strings.Builder
	for _, u := range []struct {
		label string
		size  time.Duration
	}{{"w", week}, {"d", day}, {"h", time.Hour}, {"m", time.Minute}, {"s", time.Second}} {
		if n := d / u.size; n > 0 {
			fmt.Fprintf(&b, "%d%s", n, u.label)
			d -= n * u.size
		}
	}
	return b.String()
}
