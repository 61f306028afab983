package service

import (
	"fmt"
	"time"

	"github.com/noah-isme/teacher-admin-api/internal/dto"
	"github.com/noah-isme/teacher-admin-api/internal/models"
	"github.com/noah-isme/teacher-admin-api/pkg/calendar"
)

var slotLegend = []dto.LegendEntry{
	{Status: models.SlotBooked, Label: "Booked", Style: dto.StyleFilled},
	{Status: models.SlotAvailable, Label: "Available", Style: dto.StyleLightFilled},
	{Status: models.SlotUnavailable, Label: "Unavailable", Style: dto.StyleMuted},
}

// CellStyle maps a slot status to its grid style; unknown or empty cells are blank.
func CellStyle(status models.SlotStatus) string {
	switch status {
	case models.SlotBooked:
		return dto.StyleFilled
	case models.SlotAvailable:
		return dto.StyleLightFilled
	case models.SlotUnavailable:
		return dto.StyleMuted
	default:
		return dto.StyleBlank
	}
}

// BuildWeekView projects schedule onto week. Slots carry no date, so every
// week shows the same cells; only the headers change.
func BuildWeekView(teacherID string, schedule models.Schedule, week calendar.Week, today time.Time) dto.WeekView {
	type key struct {
		day   int
		start string
	}
	index := make(map[key]models.TimeSlot, len(schedule.Slots))
	for _, slot := range schedule.Slots {
		k := key{slot.Day, slot.StartTime}
		if _, dup := index[k]; !dup {
			index[k] = slot
		}
	}

	dates := week.Dates()
	todayDate := today.Format(calendar.DateLayout)
	days := make([]dto.WeekDay, 0, calendar.DaysPerWeek)
	for i, d := range dates {
		date := d.Format(calendar.DateLayout)
		days = append(days, dto.WeekDay{
			Index:     i,
			Name:      calendar.DayName(i),
			ShortName: calendar.DayShortName(i),
			Date:      date,
			IsToday:   date == todayDate,
		})
	}

	times := calendar.TimeAxis()
	rows := make([]dto.GridRow, 0, len(times))
	for _, start := range times {
		end, _ := calendar.EndTime(start)
		cells := make([]dto.GridCell, 0, calendar.DaysPerWeek)
		for day := 0; day < calendar.DaysPerWeek; day++ {
			cell := dto.GridCell{
				SlotID:    models.SlotID(day, start),
				Day:       day,
				StartTime: start,
				EndTime:   end,
				Status:    dto.CellEmpty,
				Style:     dto.StyleBlank,
			}
			if slot, ok := index[key{day, start}]; ok {
				cell.Status = string(slot.Status)
				cell.Style = CellStyle(slot.Status)
				if slot.Status == models.SlotBooked {
					cell.StudentName = slot.StudentName
					cell.Subject = slot.Subject
				}
			}
			cell.Label = fmt.Sprintf("%s %s %s", calendar.DayName(day), start, cell.Status)
			cells = append(cells, cell)
		}
		rows = append(rows, dto.GridRow{Time: start, Cells: cells})
	}

	legend := make([]dto.LegendEntry, len(slotLegend))
	copy(legend, slotLegend)

	return dto.WeekView{
		TeacherID: teacherID,
		WeekStart: week.String(),
		WeekEnd:   dates[calendar.DaysPerWeek-1].Format(calendar.DateLayout),
		Previous:  week.Previous().String(),
		Next:      week.Next().String(),
		Days:      days,
		Times:     times,
		Rows:      rows,
		Legend:    legend,
	}
}
