// Package hours parses scraped opening-hours free text into a complete weekly schedule
// Pipeline order
// 1 Fold exotic unicode spaces (the scraper emits U+202F narrow no-break space)
// 2 Extract per-day "<start>-<end>" ranges with a fixed grammar
// 3 Anchor every range onto today's date against a default weekly template
package hours

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"
	"time"
	"unicode"

	ptime "shopfeed/internal/platform/time"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// DayNames are the canonical day labels in storage order
var DayNames = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// defaultRanges anchor days missing from the scraped text
// six days close at 8:30 pm, Sunday at 8 pm
var defaultRanges = [7]string{
	"10 am-8:30 pm",
	"10 am-8:30 pm",
	"10 am-8:30 pm",
	"10 am-8:30 pm",
	"10 am-8:30 pm",
	"10 am-8:30 pm",
	"10 am-8 pm",
}

// segment grammar: `Monday: [10 am-8:30 pm]`, minutes optional on either side
var segmentRe = regexp.MustCompile(`(\w+): \[([\d:]+ ?[ap]m-[\d:]+ ?[ap]m)\]`)

// spaceFolder maps every unicode space separator to a plain ASCII space
var spaceFolder = runes.Map(func(r rune) rune {
	if unicode.Is(unicode.Zs, r) {
		return ' '
	}
	return r
})

// DaySchedule is one day of the weekly schedule. Closed days still carry the
// default template times so the stored shape is uniform
type DaySchedule struct {
	IsOpen    bool      `json:"isOpen"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}

// Week is a complete 7-day schedule in Monday..Sunday order
type Week [7]DaySchedule

// Day returns the schedule for a canonical day name
func (w Week) Day(name string) (DaySchedule, bool) {
	for i, n := range DayNames {
		if n == name {
			return w[i], true
		}
	}
	return DaySchedule{}, false
}

// MarshalJSON emits an object keyed by day name, in Monday..Sunday order
func (w Week) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range DayNames {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(w[i])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ParseRaw extracts a day-label -> time-range map from scraped free text.
// Days absent from the input are simply absent from the map; that is not an error
func ParseRaw(s string) map[string]string {
	if s == "" {
		return map[string]string{}
	}
	folded, _, _ := transform.String(spaceFolder, s)

	out := map[string]string{}
	for _, m := range segmentRe.FindAllStringSubmatch(folded, -1) {
		out[m[1]] = m[2]
	}
	return out
}

// BuildWeek combines a raw day map with the default template into a complete week.
// Days present in raw are open with their scraped times; absent days are closed
// with the template times. Malformed ranges fall back to the closed template
// entry for that day; their labels are returned so the caller can log them
func BuildWeek(raw map[string]string, today time.Time) (Week, []string) {
	var w Week
	var malformed []string

	for i, name := range DayNames {
		rng, present := raw[name]
		open := present
		if !present {
			rng = defaultRanges[i]
		}

		start, end, err := parseRange(rng, today)
		if err != nil {
			malformed = append(malformed, name)
			open = false
			start, end, _ = parseRange(defaultRanges[i], today)
		}

		w[i] = DaySchedule{IsOpen: open, StartTime: start, EndTime: end}
	}
	return w, malformed
}

// parseRange splits "10 am-8:30 pm" on its dash and parses both clock times onto today
func parseRange(rng string, today time.Time) (start, end time.Time, err error) {
	lhs, rhs, found := strings.Cut(rng, "-")
	if !found {
		return start, end, errMissingDash
	}
	if start, err = parseClock(lhs, today); err != nil {
		return start, end, err
	}
	end, err = parseClock(rhs, today)
	return start, end, err
}

// parseClock parses a 12-hour wall-clock time ("10 am", "8:30 pm") onto today's
// date, marked UTC. The scraped source is defined to already be UTC wall-clock
// time, so no zone conversion happens here
func parseClock(s string, today time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	layout := "3 pm"
	if strings.Contains(s, ":") {
		layout = "3:04 pm"
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return time.Time{}, err
	}
	return ptime.OnDay(today, t), nil
}

var errMissingDash = &rangeError{"time range missing dash separator"}

type rangeError struct{ msg string }

func (e *rangeError) Error() string { return e.msg }
