package timeslot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// utcFor returns the UTC instant whose shifted wall clock reads hh:mm on 2024-03-10.
func utcFor(hh, mm int) time.Time {
	return time.Date(2024, 3, 10, hh, mm, 0, 0, time.UTC).Add(-Offset)
}

func TestOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		at     time.Time
		period string
		slot   string
	}{
		{name: "morning mid slot", at: utcFor(8, 30), period: PeriodMorning, slot: "08:00–09:00"},
		{name: "first boundary inclusive", at: utcFor(6, 0), period: PeriodMorning, slot: "06:00–07:00"},
		{name: "end boundary exclusive", at: utcFor(10, 59), period: PeriodMorning, slot: "10:00–11:00"},
		{name: "afternoon", at: utcFor(12, 0), period: PeriodAfternoon, slot: "12:00–13:00"},
		{name: "seventeen belongs to evening", at: utcFor(17, 0), period: PeriodEvening, slot: "17:00–18:00"},
		{name: "nineteen belongs to late night", at: utcFor(19, 0), period: PeriodLateNight, slot: "19:00–20:00"},
		{name: "last slot", at: utcFor(22, 59), period: PeriodLateNight, slot: "22:00–23:00"},
		{name: "late gap falls back", at: utcFor(23, 30), period: PeriodMorning, slot: "06:00–07:00"},
		{name: "early gap falls back", at: utcFor(3, 15), period: PeriodMorning, slot: "06:00–07:00"},
		{name: "lunch gap falls back", at: utcFor(11, 30), period: PeriodMorning, slot: "06:00–07:00"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Of(tt.at)
			assert.Equal(t, tt.period, got.Period)
			assert.Equal(t, tt.slot, got.Slot)
			assert.Equal(t, "2024-03-10", got.Date)
		})
	}
}

func TestOf_IgnoresObserverZone(t *testing.T) {
	t.Parallel()

	bangkok := time.FixedZone("ICT", 7*60*60)
	newYork := time.FixedZone("EST", -5*60*60)

	instant := time.Date(2024, 1, 1, 1, 45, 0, 0, time.UTC)
	a := Of(instant.In(bangkok))
	b := Of(instant.In(newYork))

	assert.Equal(t, a, b)
	assert.Equal(t, Bucket{Date: "2024-01-01", Period: PeriodMorning, Slot: "08:00–09:00"}, a)
}

func TestOf_SameShiftedClockSameBucket(t *testing.T) {
	t.Parallel()

	for minute := 0; minute < 24*60; minute += 7 {
		a := Of(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(minute) * time.Minute))
		b := Of(time.Date(2023, 11, 20, 0, 0, 0, 0, time.UTC).Add(time.Duration(minute) * time.Minute))
		assert.Equal(t, a.Period, b.Period, "minute %d", minute)
		assert.Equal(t, a.Slot, b.Slot, "minute %d", minute)
	}
}

func TestOf_ResultSlotContainsClockOrFallback(t *testing.T) {
	t.Parallel()

	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	for minute := 0; minute < 24*60; minute++ {
		at := base.Add(time.Duration(minute) * time.Minute)
		got := Of(at)
		require.True(t, ValidSlot(got.Period, got.Slot))

		local := at.Add(Offset)
		clock := local.Format("15:04")
		inside := false
		for _, p := range periods {
			for _, r := range p.Slots {
				if clock >= r.Start && clock < r.End {
					inside = true
					assert.Equal(t, r.Label(), got.Slot, "clock %s", clock)
				}
			}
		}
		if !inside {
			assert.Equal(t, "06:00–07:00", got.Slot, "clock %s", clock)
		}
	}
}

func TestDate_CrossesMidnight(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "2024-01-02", Date(time.Date(2024, 1, 1, 17, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-01-01", Date(time.Date(2024, 1, 1, 16, 59, 0, 0, time.UTC)))
}

func TestValidSlot(t *testing.T) {
	t.Parallel()

	assert.True(t, ValidSlot(PeriodEvening, "18:00–19:00"))
	assert.False(t, ValidSlot(PeriodEvening, "19:00–20:00"))
	assert.False(t, ValidSlot("brunch", "06:00–07:00"))
	assert.False(t, ValidSlot(PeriodMorning, "06:00-07:00"))
}

func TestValidBillSlot(t *testing.T) {
	t.Parallel()

	tests := []struct {
		period string
		slot   string
		want   bool
	}{
		{PeriodMorning, "09:00–10:00", true},
		{PeriodMorning, "10:00–11:00", false},
		{PeriodAfternoon, "16:00–17:00", false},
		{PeriodEvening, "19:00–20:00", true},
		{PeriodLateNight, "19:00–20:00", false},
		{PeriodLateNight, "22:00–23:00", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidBillSlot(tt.period, tt.slot), "%s %s", tt.period, tt.slot)
	}

	table := BillPeriods()
	require.Len(t, table, 4)
	assert.Len(t, table[0].Slots, 4)
	assert.Len(t, table[2].Slots, 3)
}

func TestPeriods_ReturnsCopy(t *testing.T) {
	t.Parallel()

	table := Periods()
	require.Len(t, table, 4)
	assert.Equal(t, []string{PeriodMorning, PeriodAfternoon, PeriodEvening, PeriodLateNight}, PeriodNames())

	table[0].Slots[0].Start = "00:00"
	assert.Equal(t, "06:00", Periods()[0].Slots[0].Start)
	assert.True(t, IsPeriod(PeriodLateNight))
	assert.False(t, IsPeriod("all"))
}
