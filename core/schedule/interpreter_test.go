package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Segment
	}{
		{
			name: "timed block with meridiem",
			line: "7:00 AM - 8:00 AM - Morning routine & breakfast",
			want: Segment{
				Kind:        KindTimedBlock,
				Text:        "7:00 AM - 8:00 AM - Morning routine & breakfast",
				StartTime:   "7:00 AM",
				EndTime:     "8:00 AM",
				Description: "Morning routine & breakfast",
				Category:    CategoryWake,
				Icon:        "sunrise",
				Color:       "#F59E0B",
			},
		},
		{
			name: "timed block 24h with en dash",
			line: "14:00–15:30: Deep focus study session",
			want: Segment{
				Kind:        KindTimedBlock,
				Text:        "14:00–15:30: Deep focus study session",
				StartTime:   "14:00",
				EndTime:     "15:30",
				Description: "Deep focus study session",
				Category:    CategoryStudy,
				Icon:        "brain",
				Color:       "#6366F1",
			},
		},
		{
			name: "timed block without keyword",
			line: "12:30 pm — 1:00 pm Lunch",
			want: Segment{
				Kind:        KindTimedBlock,
				Text:        "12:30 pm — 1:00 pm Lunch",
				StartTime:   "12:30 PM",
				EndTime:     "1:00 PM",
				Description: "Lunch",
				Category:    CategoryNone,
				Icon:        "clock",
				Color:       "#64748B",
			},
		},
		{
			name: "numbered header",
			line: "1. Morning Block:",
			want: Segment{Kind: KindSectionHeader, Text: "Morning Block"},
		},
		{
			name: "all caps header",
			line: "  KEY TIPS  ",
			want: Segment{Kind: KindSectionHeader, Text: "KEY TIPS"},
		},
		{
			name: "all caps line with a time range is a timed block",
			line: "9:00 AM - 10:00 AM - STUDY",
			want: Segment{
				Kind:        KindTimedBlock,
				Text:        "9:00 AM - 10:00 AM - STUDY",
				StartTime:   "9:00 AM",
				EndTime:     "10:00 AM",
				Description: "STUDY",
				Category:    CategoryStudy,
				Icon:        "brain",
				Color:       "#6366F1",
			},
		},
		{
			name: "numbered line with a time range is a timed block",
			line: "2. 6:00 PM - 6:45 PM Evening walk",
			want: Segment{
				Kind:        KindTimedBlock,
				Text:        "2. 6:00 PM - 6:45 PM Evening walk",
				StartTime:   "6:00 PM",
				EndTime:     "6:45 PM",
				Description: "Evening walk",
				Category:    CategoryExercise,
				Icon:        "dumbbell",
				Color:       "#EF4444",
			},
		},
		{
			name: "list numeral and extra spaces are dropped from the description",
			line: "1. 9:00 - 10:00   Study   hall",
			want: Segment{
				Kind:        KindTimedBlock,
				Text:        "1. 9:00 - 10:00   Study   hall",
				StartTime:   "9:00",
				EndTime:     "10:00",
				Description: "Study hall",
				Category:    CategoryStudy,
				Icon:        "brain",
				Color:       "#6366F1",
			},
		},
		{
			name: "decimal number is not a numbered header",
			line: "1.5 hours of deep work",
			want: Segment{Kind: KindPlainText, Text: "1.5 hours of deep work"},
		},
		{
			name: "short all caps line is plain text",
			line: "NOTE",
			want: Segment{Kind: KindPlainText, Text: "NOTE"},
		},
		{
			name: "caps without letters is not a header",
			line: "-- 1234 --",
			want: Segment{Kind: KindTip, Text: "- 1234 --"},
		},
		{
			name: "dash tip",
			line: "- Stay hydrated",
			want: Segment{Kind: KindTip, Text: "Stay hydrated"},
		},
		{
			name: "bullet tip",
			line: "• Keep consistent wake/sleep times",
			want: Segment{Kind: KindTip, Text: "Keep consistent wake/sleep times"},
		},
		{
			name: "star tip",
			line: "*Review notes before bed",
			want: Segment{Kind: KindTip, Text: "Review notes before bed"},
		},
		{
			name: "single time is plain text",
			line: "Wake up at 7:00 AM",
			want: Segment{Kind: KindPlainText, Text: "Wake up at 7:00 AM"},
		},
		{
			name: "plain text",
			line: "Here is your schedule for tomorrow.",
			want: Segment{Kind: KindPlainText, Text: "Here is your schedule for tomorrow."},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.line))
		})
	}
}

func TestRender(t *testing.T) {
	text := "DAILY STUDY PLAN\r\n\n7:00 AM - 8:00 AM - Morning routine & breakfast\n   \n- Stay hydrated\nGood luck!\n"

	segments := Render(text)
	require.Len(t, segments, 4)

	kinds := make([]Kind, 0, len(segments))
	lines := make([]int, 0, len(segments))
	for _, seg := range segments {
		kinds = append(kinds, seg.Kind)
		lines = append(lines, seg.Line)
	}
	assert.Equal(t, []Kind{KindSectionHeader, KindTimedBlock, KindTip, KindPlainText}, kinds)
	assert.Equal(t, []int{1, 3, 5, 6}, lines)
	assert.Equal(t, "DAILY STUDY PLAN", segments[0].Text)

	assert.Empty(t, Render(""))
	assert.Empty(t, Render("\n \n\t\n"))
}

func TestRender_totality(t *testing.T) {
	text := `1. Morning
6:30 AM - 7:00 AM Wake up
WIND DOWN ROUTINE
10:00 PM - 10:30 PM - Read, then sleep
* Tip one
plain words
   indented words`

	segments := Render(text)
	assert.Len(t, segments, 7)
	for _, seg := range segments {
		switch seg.Kind {
		case KindSectionHeader, KindTimedBlock, KindTip, KindPlainText:
		default:
			t.Errorf("line %d has no kind", seg.Line)
		}
	}
}

func TestFindTimeRange(t *testing.T) {
	tr, rest, ok := FindTimeRange("Block: 11:45 PM-12:15 AM late review")
	require.True(t, ok)
	assert.Equal(t, ClockTime{Hour: 11, Minute: 45, Meridiem: "PM"}, tr.Start)
	assert.Equal(t, ClockTime{Hour: 12, Minute: 15, Meridiem: "AM"}, tr.End)
	assert.Equal(t, 23, tr.Start.Hour24())
	assert.Equal(t, 0, tr.End.Hour24())
	assert.Equal(t, "Block: late review", rest)

	_, _, ok = FindTimeRange("8:00 to 9:00")
	assert.False(t, ok)

	tr, _, ok = FindTimeRange("8:00 - 9:00 amazing focus")
	require.True(t, ok)
	assert.Equal(t, "", tr.End.Meridiem, "meridiem must be a whole word")
}

func TestClockTime_Hour24(t *testing.T) {
	tests := []struct {
		in   ClockTime
		want int
	}{
		{ClockTime{Hour: 12, Meridiem: "AM"}, 0},
		{ClockTime{Hour: 1, Meridiem: "AM"}, 1},
		{ClockTime{Hour: 12, Meridiem: "PM"}, 12},
		{ClockTime{Hour: 1, Meridiem: "PM"}, 13},
		{ClockTime{Hour: 18}, 18},
		{ClockTime{Hour: 0}, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.in.Hour24(), tt.in.String())
	}
}
