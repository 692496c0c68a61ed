package schedule

import (
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
)

const (
	ProductID        = "-//StudyRoom//Study Schedule//EN"
	DailyRecurrence  = "FREQ=DAILY"
	defaultSummary   = "Study Session"
	defaultUIDDomain = "studyroom.app"
)

// CalendarEvent is a daily recurring event derived from a timed schedule line.
type CalendarEvent struct {
	UID         string
	Start       time.Time
	End         time.Time
	Summary     string
	Description string
	Recurrence  string
}

type CalendarOptions struct {
	Domain   string         // UID domain
	Name     string         // X-WR-CALNAME
	Timezone string         // X-WR-TIMEZONE
	Location *time.Location // events are anchored to today's date in this location
}

func DefaultCalendarOptions() CalendarOptions {
	return CalendarOptions{
		Domain:   defaultUIDDomain,
		Name:     "Study Schedule",
		Timezone: "UTC",
		Location: time.UTC,
	}
}

func (o CalendarOptions) withDefaults() CalendarOptions {
	def := DefaultCalendarOptions()
	if o.Domain == "" {
		o.Domain = def.Domain
	}
	if o.Name == "" {
		o.Name = def.Name
	}
	if o.Timezone == "" {
		o.Timezone = def.Timezone
	}
	if o.Location == nil {
		o.Location = def.Location
	}
	return o
}

// ExtractEvents turns every line holding a time range into a daily event anchored on the date of now.
// UIDs are "{scheduleID}-{H}{MM}@{domain}"; later events sharing a start time get a "-N" suffix.
func ExtractEvents(text, scheduleID string, now time.Time, opts CalendarOptions) []CalendarEvent {
	opts = opts.withDefaults()
	y, m, d := now.In(opts.Location).Date()
	seen := make(map[string]int)

	var events []CalendarEvent
	for _, line := range strings.Split(text, "\n") {
		tr, rest, ok := FindTimeRange(strings.TrimSpace(line))
		if !ok {
			continue
		}

		start := time.Date(y, m, d, tr.Start.Hour24(), tr.Start.Minute, 0, 0, opts.Location)
		end := time.Date(y, m, d, tr.End.Hour24(), tr.End.Minute, 0, 0, opts.Location)
		if end.Before(start) { // spans midnight
			end = end.AddDate(0, 0, 1)
		}

		key := fmt.Sprintf("%s-%d%02d", scheduleID, tr.Start.Hour24(), tr.Start.Minute)
		seen[key]++
		if n := seen[key]; n > 1 {
			key = fmt.Sprintf("%s-%d", key, n)
		}

		summary := rest
		if summary == "" {
			summary = defaultSummary
		}
		events = append(events, CalendarEvent{
			UID:         key + "@" + opts.Domain,
			Start:       start,
			End:         end,
			Summary:     summary,
			Description: rest,
			Recurrence:  DailyRecurrence,
		})
	}
	return events
}

// BuildCalendar serializes events into a VCALENDAR document. DTSTAMP is set to stamp.
func BuildCalendar(events []CalendarEvent, stamp time.Time, opts CalendarOptions) string {
	opts = opts.withDefaults()

	cal := ics.NewCalendar()
	cal.SetProductId(ProductID)
	cal.SetCalscale("GREGORIAN")
	cal.SetMethod(ics.MethodPublish)
	cal.SetXWRCalName(opts.Name)
	cal.SetXWRTimezone(opts.Timezone)

	for _, ev := range events {
		vev := cal.AddEvent(ev.UID)
		vev.SetDtStampTime(stamp)
		vev.SetStartAt(ev.Start)
		vev.SetEndAt(ev.End)
		vev.AddProperty(ics.ComponentPropertyRrule, ev.Recurrence)
		vev.SetSummary(ev.Summary)
		vev.SetDescription(ev.Description)
	}
	return cal.Serialize()
}

// ExportCalendar extracts the events of text and serializes them, using now as both anchor date and DTSTAMP.
func ExportCalendar(text, scheduleID string, now time.Time, opts CalendarOptions) string {
	return BuildCalendar(ExtractEvents(text, scheduleID, now, opts), now, opts)
}
