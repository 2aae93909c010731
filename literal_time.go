package parcel

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	layoutDate           = "2006-01-02"
	layoutDateTime       = "2006-01-02T15:04:05.0000000"
	layoutDateTimeOffset = "2006-01-02T15:04:05.0000000-07:00"

	// Parse layouts. Fractional seconds are accepted after the seconds
	// field even though the layouts do not spell them out.
	parseLocal  = "2006-01-02T15:04:05"
	parseOffset = "2006-01-02T15:04:05Z07:00"

	ticksPerSecond = int64(time.Second / tick)
	ticksPerMinute = 60 * ticksPerSecond
	ticksPerHour   = 60 * ticksPerMinute
	ticksPerDay    = 24 * ticksPerHour
	maxTicks       = int64(1<<63-1) / int64(tick)
)

var (
	errTimeComponent = errors.New("time component not allowed for date format")
	errDurationRange = errors.New("duration out of range")
	errDurationForm  = errors.New("expected [-][d.]hh:mm:ss[.fffffff]")

	durationPattern = regexp.MustCompile(`^(-)?(?:(\d+)\.)?(\d{1,2}):(\d{2}):(\d{2})(?:\.(\d{1,7}))?$`)
)

func formatTime(t time.Time, kind Kind, format string) string {
	if isDateOnly(format) {
		return t.Format(layoutDate)
	}
	if kind == KindDateTimeOffset {
		return t.Format(layoutDateTimeOffset)
	}
	return t.Format(layoutDateTime)
}

func parseTime(text string, kind Kind, format string) (time.Time, error) {
	if isDateOnly(format) {
		if strings.ContainsAny(text, "Tt ") {
			return time.Time{}, errTimeComponent
		}
		return time.Parse(layoutDate, text)
	}

	switch kind {
	case KindDate:
		if d, err := time.Parse(layoutDate, text); err == nil {
			return d, nil
		}
		ts, err := parseTimestamp(text)
		if err != nil {
			return time.Time{}, err
		}
		y, m, d := ts.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	case KindDateTime:
		if ts, err := time.Parse(parseLocal, text); err == nil {
			return ts.Truncate(tick), nil
		}
		ts, err := time.Parse(parseOffset, text)
		if err != nil {
			return time.Time{}, err
		}
		return ts.UTC().Truncate(tick), nil
	default:
		ts, err := parseTimestamp(text)
		if err != nil {
			return time.Time{}, err
		}
		return ts.Truncate(tick), nil
	}
}

// parseTimestamp accepts a timestamp with or without offset; a missing
// offset is read as UTC.
func parseTimestamp(text string) (time.Time, error) {
	if ts, err := time.Parse(parseOffset, text); err == nil {
		return ts, nil
	}
	return time.Parse(parseLocal, text)
}

// formatDuration renders d as [-][d.]hh:mm:ss[.fffffff].
func formatDuration(d time.Duration) string {
	var b strings.Builder
	mag := uint64(d)
	if d < 0 {
		b.WriteByte('-')
		mag = uint64(-d)
	}
	ticks := mag / uint64(tick)

	days := ticks / uint64(ticksPerDay)
	ticks %= uint64(ticksPerDay)
	hours := ticks / uint64(ticksPerHour)
	ticks %= uint64(ticksPerHour)
	minutes := ticks / uint64(ticksPerMinute)
	ticks %= uint64(ticksPerMinute)
	seconds := ticks / uint64(ticksPerSecond)
	fraction := ticks % uint64(ticksPerSecond)

	if days > 0 {
		fmt.Fprintf(&b, "%d.", days)
	}
	fmt.Fprintf(&b, "%02d:%02d:%02d", hours, minutes, seconds)
	if fraction > 0 {
		fmt.Fprintf(&b, ".%07d", fraction)
	}
	return b.String()
}

func parseDuration(text string) (time.Duration, error) {
	m := durationPattern.FindStringSubmatch(text)
	if m == nil {
		return 0, errDurationForm
	}

	var days int64
	if m[2] != "" {
		var err error
		days, err = strconv.ParseInt(m[2], 10, 64)
		if err != nil || days > maxTicks/ticksPerDay {
			return 0, errDurationRange
		}
	}
	hours, _ := strconv.ParseInt(m[3], 10, 64)
	minutes, _ := strconv.ParseInt(m[4], 10, 64)
	seconds, _ := strconv.ParseInt(m[5], 10, 64)
	if hours > 23 || minutes > 59 || seconds > 59 {
		return 0, errDurationRange
	}
	var fraction int64
	if m[6] != "" {
		fraction, _ = strconv.ParseInt(m[6]+strings.Repeat("0", 7-len(m[6])), 10, 64)
	}

	ticks := days*ticksPerDay + hours*ticksPerHour + minutes*ticksPerMinute + seconds*ticksPerSecond + fraction
	if ticks > maxTicks {
		return 0, errDurationRange
	}
	d := time.Duration(ticks) * tick
	if m[1] == "-" {
		d = -d
	}
	return d, nil
}
