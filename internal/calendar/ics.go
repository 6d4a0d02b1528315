package calendar

import (
	"fmt"
	"io"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
)

const prodID = "-//five82//lunchtray//EN"

var stampNow = time.Now

// NewICS builds an iCalendar document holding one VEVENT per event.
func NewICS(events []Event) *ics.Calendar {
	cal := ics.NewCalendar()
	cal.SetProductId(prodID)
	cal.SetCalscale("GREGORIAN")
	cal.SetMethod(ics.MethodPublish)

	stamp := stampNow().UTC()
	for _, ev := range events {
		vevent := cal.AddEvent(ev.UID + "@lunchtray")
		vevent.SetDtStampTime(stamp)
		vevent.SetStartAt(ev.Start.UTC())
		vevent.SetEndAt(ev.End.UTC())
		vevent.SetSummary(ev.Summary)
		if ev.Description != "" {
			vevent.SetDescription(ev.Description)
		}
		vevent.AddProperty(ics.ComponentPropertyCategories, strings.ToUpper(ev.Meal.String()))
	}
	return cal
}

// WriteICS writes events as an iCalendar document.
func WriteICS(w io.Writer, events []Event) error {
	if _, err := io.WriteString(w, NewICS(events).Serialize()); err != nil {
		return fmt.Errorf("write ics: %w", err)
	}
	return nil
}
