package dto

import "github.com/noah-isme/teacher-admin-api/internal/models"

// SlotClickRequest is a click on one grid cell.
type SlotClickRequest struct {
	Day       *int   `json:"day" binding:"required"`
	StartTime string `json:"startTime" binding:"required"`
}

// SlotUpsertRequest writes booking details into one cell.
type SlotUpsertRequest struct {
	Day         *int              `json:"day" binding:"required"`
	StartTime   string            `json:"startTime" binding:"required"`
	Status      models.SlotStatus `json:"status" binding:"required,oneof=available booked unavailable"`
	StudentName string            `json:"studentName"`
	Subject     string            `json:"subject"`
	Notes       string            `json:"notes"`
}

// SlotClickResult reports the cell after a click.
type SlotClickResult struct {
	Slot     models.TimeSlot   `json:"slot"`
	Previous models.SlotStatus `json:"previous,omitempty"`
	Schedule models.Schedule   `json:"schedule"`
}

// Cell styles handed to the grid renderer.
const (
	StyleFilled      = "filled"
	StyleLightFilled = "light-filled"
	StyleMuted       = "muted"
	StyleBlank       = "blank"
)

// CellEmpty is the status reported for cells without a stored slot.
const CellEmpty = "empty"

// WeekDay is one column header of the grid.
type WeekDay struct {
	Index     int    `json:"index"`
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
	Date      string `json:"date"`
	IsToday   bool   `json:"isToday"`
}

// GridCell is one (day, time) cell.
type GridCell struct {
	SlotID      string `json:"slotId"`
	Day         int    `json:"day"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Status      string `json:"status"`
	Style       string `json:"style"`
	Label       string `json:"label"`
	StudentName string `json:"studentName,omitempty"`
	Subject     string `json:"subject,omitempty"`
}

// GridRow holds the seven cells that start at Time.
type GridRow struct {
	Time  string     `json:"time"`
	Cells []GridCell `json:"cells"`
}

// LegendEntry describes one non-empty status.
type LegendEntry struct {
	Status models.SlotStatus `json:"status"`
	Label  string            `json:"label"`
	Style  string            `json:"style"`
}

// WeekView is the grid projection of a schedule onto one calendar week.
type WeekView struct {
	TeacherID string        `json:"teacherId"`
	WeekStart string        `json:"weekStart"`
	WeekEnd   string        `json:"weekEnd"`
	Previous  string        `json:"previousWeek"`
	Next      string        `json:"nextWeek"`
	Days      []WeekDay     `json:"days"`
	Times     []string      `json:"times"`
	Rows      []GridRow     `json:"rows"`
	Legend    []LegendEntry `json:"legend"`
}
