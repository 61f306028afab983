package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/teacher-admin-api/internal/dto"
	"github.com/noah-isme/teacher-admin-api/internal/models"
	"github.com/noah-isme/teacher-admin-api/pkg/calendar"
)

func TestBuildWeekViewShape(t *testing.T) {
	today := time.Date(2026, time.October, 14, 10, 0, 0, 0, time.UTC)
	sched := emptyTestSchedule()
	sched = UpsertSlot(sched, models.TimeSlot{Day: 2, StartTime: "10:00", Status: models.SlotBooked, StudentName: "Budi", Subject: "Math"})
	sched = UpsertSlot(sched, models.TimeSlot{Day: 0, StartTime: "07:00", Status: models.SlotUnavailable, StudentName: "hidden"})

	view := BuildWeekView("t1", sched, calendar.WeekOf(today), today)

	assert.Equal(t, "2026-10-12", view.WeekStart)
	assert.Equal(t, "2026-10-18", view.WeekEnd)
	assert.Equal(t, "2026-10-05", view.Previous)
	assert.Equal(t, "2026-10-19", view.Next)
	require.Len(t, view.Days, 7)
	assert.Equal(t, "Mon", view.Days[0].ShortName)
	assert.True(t, view.Days[2].IsToday)
	assert.False(t, view.Days[0].IsToday)
	require.Len(t, view.Rows, calendar.SlotsPerDay)

	booked := view.Rows[6].Cells[2]
	assert.Equal(t, "10:00", booked.StartTime)
	assert.Equal(t, string(models.SlotBooked), booked.Status)
	assert.Equal(t, dto.StyleFilled, booked.Style)
	assert.Equal(t, "Budi", booked.StudentName)
	assert.Equal(t, "Wednesday 10:00 booked", booked.Label)

	muted := view.Rows[0].Cells[0]
	assert.Equal(t, dto.StyleMuted, muted.Style)
	assert.Empty(t, muted.StudentName)

	empty := view.Rows[0].Cells[1]
	assert.Equal(t, dto.CellEmpty, empty.Status)
	assert.Equal(t, dto.StyleBlank, empty.Style)

	require.Len(t, view.Legend, 3)
	assert.Equal(t, models.SlotBooked, view.Legend[0].Status)
}

func TestWeekNavigationKeepsCells(t *testing.T) {
	today := time.Date(2026, time.October, 14, 10, 0, 0, 0, time.UTC)
	sched := UpsertSlot(emptyTestSchedule(), models.TimeSlot{Day: 4, StartTime: "15:30", Status: models.SlotAvailable})
	week := calendar.WeekOf(today)

	current := BuildWeekView("t1", sched, week, today)
	next := BuildWeekView("t1", sched, week.Next(), today)

	assert.NotEqual(t, current.WeekStart, next.WeekStart)
	assert.Equal(t, current.Rows, next.Rows)
	assert.Len(t, sched.Slots, 1)
	for _, d := range next.Days {
		assert.False(t, d.IsToday)
	}
}

func TestCellStyle(t *testing.T) {
	assert.Equal(t, dto.StyleLightFilled, CellStyle(models.SlotAvailable))
	assert.Equal(t, dto.StyleBlank, CellStyle("weird"))
}
