package schedule

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Category is the kind of activity a timed block describes.
type Category string

const (
	CategoryNone     Category = "time_block"
	CategoryWake     Category = "wake"
	CategoryStudy    Category = "study"
	CategoryBreak    Category = "break"
	CategorySleep    Category = "sleep"
	CategoryExercise Category = "exercise"
)

// CategoryRule maps a keyword set to a category and its display style.
type CategoryRule struct {
	Category Category
	Label    string
	Icon     string
	Color    string // hex, used by terminal and web renderers
	Keywords []string
}

// CategoryRules are evaluated in order; the first rule with a keyword found in the lowered line wins.
var CategoryRules = []CategoryRule{
	{CategoryWake, "Wake/Morning", "sunrise", "#F59E0B", []string{"wake", "morning"}},
	{CategoryStudy, "Study/Focus", "brain", "#6366F1", []string{"study", "focus"}},
	{CategoryBreak, "Break/Rest", "coffee", "#10B981", []string{"break", "rest"}},
	{CategorySleep, "Sleep/Wind-down", "moon", "#8B5CF6", []string{"sleep", "night", "wind-down", "wind down", "bedtime"}},
	{CategoryExercise, "Exercise", "dumbbell", "#EF4444", []string{"exercise", "workout", "gym", "jog", "walk", "yoga"}},
}

// DefaultCategoryRule styles timed blocks no keyword matched.
var DefaultCategoryRule = CategoryRule{CategoryNone, "Time block", "clock", "#64748B", nil}

// CategorizeLine returns the first CategoryRule whose keywords occur in line (case-insensitive).
func CategorizeLine(line string) CategoryRule {
	lower := strings.ToLower(line)
	for _, rule := range CategoryRules {
		for _, kw := range rule.Keywords {
			if strings.Contains(lower, kw) {
				return rule
			}
		}
	}
	return DefaultCategoryRule
}

// RuleFor looks the display rule of a category up.
func RuleFor(cat Category) CategoryRule {
	for _, rule := range CategoryRules {
		if rule.Category == cat {
			return rule
		}
	}
	return DefaultCategoryRule
}

var (
	// "1. Morning" but not "1.5 hours"
	numberedHeaderRegex = regexp.MustCompile(`^\s*\d+\.(?:\s+|$|[^\d\s])`)

	// HeaderMinLen is the length an all-caps line must exceed to count as a header.
	HeaderMinLen = 5
)

// HeaderRule decides whether a line (without a time range) is a section header.
// It returns the header text to display.
type HeaderRule struct {
	Name  string
	Match func(line string) (string, bool)
}

// HeaderRules are evaluated in order. Lines holding a time range never reach them.
var HeaderRules = []HeaderRule{
	{"numbered", matchNumberedHeader},
	{"all-caps", matchAllCapsHeader},
}

func matchNumberedHeader(line string) (string, bool) {
	loc := numberedHeaderRegex.FindStringIndex(line)
	if loc == nil {
		return "", false
	}
	rest := strings.TrimLeftFunc(line[loc[0]:], unicode.IsSpace)
	rest = strings.TrimLeft(rest, "0123456789")
	return headerText(strings.TrimPrefix(rest, ".")), true
}

func matchAllCapsHeader(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if utf8.RuneCountInString(trimmed) <= HeaderMinLen || trimmed != strings.ToUpper(trimmed) {
		return "", false
	}
	for _, r := range trimmed {
		if unicode.IsLetter(r) {
			return headerText(trimmed), true
		}
	}
	return "", false
}

func headerText(s string) string {
	return strings.TrimSuffix(strings.TrimSpace(s), ":")
}

// TipMarkers are the bullet markers a tip line may start with.
var TipMarkers = []string{"-", "•", "*"}
