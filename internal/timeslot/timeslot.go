// Package timeslot maps recording instants onto the fixed day-part table
// used by every traffic and bill record.
package timeslot

import (
	"fmt"
	"time"
)

// Offset is the fixed civil-day shift. Stored dates were produced by adding
// this offset to UTC, so no time zone database is consulted.
const Offset = 7 * time.Hour

const dateLayout = "2006-01-02"

const (
	PeriodMorning   = "morning"
	PeriodAfternoon = "afternoon"
	PeriodEvening   = "evening"
	PeriodLateNight = "late-night"
)

type Range struct {
	Start string `json:"start"`
	End   string `json:"end"`

	startMin int
	endMin   int
}

func (r Range) Label() string {
	return r.Start + "–" + r.End
}

func (r Range) contains(minute int) bool {
	return minute >= r.startMin && minute < r.endMin
}

type Period struct {
	Name  string  `json:"name"`
	Slots []Range `json:"slots"`
}

type Bucket struct {
	Date   string `json:"date"`
	Period string `json:"period"`
	Slot   string `json:"slot"`
}

var periods = mustBuild([]Period{
	{Name: PeriodMorning, Slots: hours("06:00", "07:00", "08:00", "09:00", "10:00", "11:00")},
	{Name: PeriodAfternoon, Slots: hours("12:00", "13:00", "14:00", "15:00", "16:00", "17:00")},
	{Name: PeriodEvening, Slots: hours("17:00", "18:00", "19:00")},
	{Name: PeriodLateNight, Slots: hours("19:00", "20:00", "21:00", "22:00", "23:00")},
})

// billPeriods is the slot list offered when a bill count is entered by hand.
// It differs from the tracker table: morning and afternoon stop an hour
// earlier and 19:00–20:00 belongs to evening.
var billPeriods = mustBuild([]Period{
	{Name: PeriodMorning, Slots: hours("06:00", "07:00", "08:00", "09:00", "10:00")},
	{Name: PeriodAfternoon, Slots: hours("12:00", "13:00", "14:00", "15:00", "16:00")},
	{Name: PeriodEvening, Slots: hours("17:00", "18:00", "19:00", "20:00")},
	{Name: PeriodLateNight, Slots: hours("20:00", "21:00", "22:00", "23:00")},
})

// hours turns consecutive boundaries into adjacent ranges.
func hours(bounds ...string) []Range {
	out := make([]Range, 0, len(bounds)-1)
	for i := 0; i+1 < len(bounds); i++ {
		out = append(out, Range{Start: bounds[i], End: bounds[i+1]})
	}
	return out
}

func mustBuild(table []Period) []Period {
	for pi := range table {
		for si := range table[pi].Slots {
			slot := &table[pi].Slots[si]
			start, err := parseClock(slot.Start)
			if err != nil {
				panic(err)
			}
			end, err := parseClock(slot.End)
			if err != nil {
				panic(err)
			}
			if end <= start {
				panic(fmt.Sprintf("timeslot: empty range %s", slot.Label()))
			}
			slot.startMin, slot.endMin = start, end
		}
	}
	return table
}

func parseClock(raw string) (int, error) {
	t, err := time.Parse("15:04", raw)
	if err != nil {
		return 0, fmt.Errorf("timeslot: invalid clock %q: %w", raw, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// Periods returns a copy of the period table in declaration order.
func Periods() []Period {
	return copyTable(periods)
}

// BillPeriods returns a copy of the bill entry table.
func BillPeriods() []Period {
	return copyTable(billPeriods)
}

func copyTable(table []Period) []Period {
	out := make([]Period, len(table))
	for i, p := range table {
		out[i] = Period{Name: p.Name, Slots: append([]Range(nil), p.Slots...)}
	}
	return out
}

func PeriodNames() []string {
	names := make([]string, len(periods))
	for i, p := range periods {
		names[i] = p.Name
	}
	return names
}

func IsPeriod(name string) bool {
	for _, p := range periods {
		if p.Name == name {
			return true
		}
	}
	return false
}

// ValidSlot reports whether slot is one of the labels declared for period.
func ValidSlot(period, slot string) bool {
	return hasSlot(periods, period, slot)
}

// ValidBillSlot is ValidSlot against the bill entry table.
func ValidBillSlot(period, slot string) bool {
	return hasSlot(billPeriods, period, slot)
}

func hasSlot(table []Period, period, slot string) bool {
	for _, p := range table {
		if p.Name != period {
			continue
		}
		for _, r := range p.Slots {
			if r.Label() == slot {
				return true
			}
		}
	}
	return false
}

func shift(t time.Time) time.Time {
	return t.UTC().Add(Offset)
}

func Date(t time.Time) string {
	return shift(t).Format(dateLayout)
}

// Of returns the date, period and slot of t. Instants that fall in no
// declared slot get the first slot of the first period.
func Of(t time.Time) Bucket {
	local := shift(t)
	minute := local.Hour()*60 + local.Minute()
	date := local.Format(dateLayout)

	for _, p := range periods {
		for _, r := range p.Slots {
			if r.contains(minute) {
				return Bucket{Date: date, Period: p.Name, Slot: r.Label()}
			}
		}
	}

	first := periods[0]
	return Bucket{Date: date, Period: first.Name, Slot: first.Slots[0].Label()}
}
