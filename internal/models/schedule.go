package models

import "fmt"

// SlotStatus is the booking state of a half-hour cell.
type SlotStatus string

const (
	SlotAvailable   SlotStatus = "available"
	SlotBooked      SlotStatus = "booked"
	SlotUnavailable SlotStatus = "unavailable"
)

// SlotStatuses lists every status in cycle order.
var SlotStatuses = []SlotStatus{SlotAvailable, SlotBooked, SlotUnavailable}

// Valid reports whether s is one of the known statuses.
func (s SlotStatus) Valid() bool {
	switch s {
	case SlotAvailable, SlotBooked, SlotUnavailable:
		return true
	}
	return false
}

// Next advances the status along available -> booked -> unavailable -> available.
// Unknown values restart the cycle at available.
func (s SlotStatus) Next() SlotStatus {
	switch s {
	case SlotAvailable:
		return SlotBooked
	case SlotBooked:
		return SlotUnavailable
	default:
		return SlotAvailable
	}
}

// TimeSlot is one half-hour cell of the recurring weekly template.
// Day is Monday-first: 0 is Monday, 6 is Sunday.
type TimeSlot struct {
	ID          string     `json:"id"`
	Day         int        `json:"day"`
	StartTime   string     `json:"startTime"`
	EndTime     string     `json:"endTime"`
	Status      SlotStatus `json:"status"`
	StudentName string     `json:"studentName,omitempty"`
	Subject     string     `json:"subject,omitempty"`
	Notes       string     `json:"notes,omitempty"`
}

// SlotID builds the key-derived identifier of a slot. It is not unique across weeks.
func SlotID(day int, startTime string) string {
	return fmt.Sprintf("%d-%s", day, startTime)
}

// Schedule is the weekly booking template owned by a teacher.
type Schedule struct {
	ID            string     `json:"id,omitempty"`
	TeacherID     string     `json:"teacherId"`
	WeekStartDate string     `json:"weekStartDate"`
	Slots         []TimeSlot `json:"slots"`
}

// Clone returns a copy that does not share the slot slice.
func (s Schedule) Clone() Schedule {
	cp := s
	cp.Slots = make([]TimeSlot, len(s.Slots))
	copy(cp.Slots, s.Slots)
	return cp
}
