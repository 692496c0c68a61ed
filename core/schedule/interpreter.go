package schedule

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Kind tags a rendered schedule line.
type Kind string

const (
	KindSectionHeader Kind = "section_header"
	KindTimedBlock    Kind = "timed_block"
	KindTip           Kind = "tip"
	KindPlainText     Kind = "plain_text"
)

var (
	// timeRangeRegex matches "H:MM[ AM|PM] <-|–|—> H:MM[ AM|PM]".
	timeRangeRegex        = regexp.MustCompile(`(\d{1,2}):(\d{2})(?:\s*(AM|PM|am|pm)\b)?\s*[-–—]\s*(\d{1,2}):(\d{2})(?:\s*(AM|PM|am|pm)\b)?`)
	leadingSeparatorRegex = regexp.MustCompile(`^[\s:\-–—]+`)
	leadingNumeralRegex   = regexp.MustCompile(`^\d+[.)]\s+`)
)

// ClockTime is a wall-clock time as written in schedule text.
type ClockTime struct {
	Hour     int
	Minute   int
	Meridiem string // "AM", "PM" or empty for 24-hour notation
}

func (c ClockTime) String() string {
	s := fmt.Sprintf("%d:%02d", c.Hour, c.Minute)
	if c.Meridiem != "" {
		s += " " + c.Meridiem
	}
	return s
}

// Hour24 normalizes the hour: PM adds 12 (except 12 PM) and 12 AM is midnight.
func (c ClockTime) Hour24() int {
	switch {
	case c.Meridiem == "PM" && c.Hour != 12:
		return c.Hour + 12
	case c.Meridiem == "AM" && c.Hour == 12:
		return 0
	}
	return c.Hour
}

// TimeRange is a start/end pair found in a line.
type TimeRange struct {
	Start ClockTime
	End   ClockTime
}

// FindTimeRange returns the first time range of line and the line's remaining text
// (the match, leading separator punctuation and a list numeral removed, whitespace collapsed).
func FindTimeRange(line string) (TimeRange, string, bool) {
	loc := timeRangeRegex.FindStringSubmatchIndex(line)
	if loc == nil {
		return TimeRange{}, "", false
	}
	group := func(i int) string {
		if loc[2*i] < 0 {
			return ""
		}
		return line[loc[2*i]:loc[2*i+1]]
	}
	tr := TimeRange{
		Start: newClockTime(group(1), group(2), group(3)),
		End:   newClockTime(group(4), group(5), group(6)),
	}
	rest := line[:loc[0]] + line[loc[1]:]
	rest = strings.Join(strings.Fields(rest), " ")
	rest = leadingNumeralRegex.ReplaceAllString(rest, "")
	rest = strings.TrimSpace(leadingSeparatorRegex.ReplaceAllString(rest, ""))
	return tr, rest, true
}

// HasTimeRange reports whether line holds a time range.
func HasTimeRange(line string) bool {
	return timeRangeRegex.MatchString(line)
}

func newClockTime(hour, minute, meridiem string) ClockTime {
	h, _ := strconv.Atoi(hour)
	m, _ := strconv.Atoi(minute)
	return ClockTime{Hour: h, Minute: m, Meridiem: strings.ToUpper(meridiem)}
}

// Segment is one rendered line of schedule text.
type Segment struct {
	Line        int      `json:"line"` // 1-based line number in the source text
	Kind        Kind     `json:"kind"`
	Text        string   `json:"text"`
	StartTime   string   `json:"start_time,omitempty"`
	EndTime     string   `json:"end_time,omitempty"`
	Description string   `json:"description,omitempty"`
	Category    Category `json:"category,omitempty"`
	Icon        string   `json:"icon,omitempty"`
	Color       string   `json:"color,omitempty"`
}

// Render classifies every non-blank line of text, keeping the original order.
func Render(text string) []Segment {
	lines := strings.Split(text, "\n")
	segments := make([]Segment, 0, len(lines))
	for i, line := range lines {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		seg := Classify(line)
		seg.Line = i + 1
		segments = append(segments, seg)
	}
	return segments
}

// Classify tags a single non-blank line. Checks run in order: section header (lines with a
// time range are excluded), timed block, tip, then plain text.
func Classify(line string) Segment {
	trimmed := strings.TrimSpace(line)
	tr, rest, timed := FindTimeRange(trimmed)

	if !timed {
		for _, rule := range HeaderRules {
			if text, ok := rule.Match(trimmed); ok {
				return Segment{Kind: KindSectionHeader, Text: text}
			}
		}
	}

	if timed {
		rule := CategorizeLine(trimmed)
		return Segment{
			Kind:        KindTimedBlock,
			Text:        trimmed,
			StartTime:   tr.Start.String(),
			EndTime:     tr.End.String(),
			Description: rest,
			Category:    rule.Category,
			Icon:        rule.Icon,
			Color:       rule.Color,
		}
	}

	for _, marker := range TipMarkers {
		if strings.HasPrefix(trimmed, marker) {
			return Segment{Kind: KindTip, Text: strings.TrimSpace(strings.TrimPrefix(trimmed, marker))}
		}
	}

	return Segment{Kind: KindPlainText, Text: trimmed}
}
