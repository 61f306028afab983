package service

import (
	"github.com/noah-isme/teacher-admin-api/internal/models"
	"github.com/noah-isme/teacher-admin-api/pkg/calendar"
	appErrors "github.com/noah-isme/teacher-admin-api/pkg/errors"
)

// ValidateSlotKey checks a (day, startTime) pair against the grid.
func ValidateSlotKey(day int, startTime string) error {
	failures := make(map[string]string)
	if !calendar.ValidDay(day) {
		failures["day"] = "Day must be between 0 (Monday) and 6 (Sunday)"
	}
	if !calendar.OnAxis(startTime) {
		failures["startTime"] = "Start time must be a half-hour between 07:00 and 20:00"
	}
	if len(failures) > 0 {
		return appErrors.Validation("invalid slot", failures)
	}
	return nil
}

// LookupSlot finds the slot stored under (day, startTime).
func LookupSlot(schedule models.Schedule, day int, startTime string) (models.TimeSlot, bool) {
	for _, slot := range schedule.Slots {
		if slot.Day == day && slot.StartTime == startTime {
			return slot, true
		}
	}
	return models.TimeSlot{}, false
}

// ResolveOrCreateSlot returns the stored slot, or a transient available slot
// for an empty cell. The schedule is never modified. A key off the grid is a
// validation error.
func ResolveOrCreateSlot(schedule models.Schedule, day int, startTime string) (models.TimeSlot, error) {
	if err := ValidateSlotKey(day, startTime); err != nil {
		return models.TimeSlot{}, err
	}
	if slot, ok := LookupSlot(schedule, day, startTime); ok {
		return slot, nil
	}
	end, err := calendar.EndTime(startTime)
	if err != nil {
		return models.TimeSlot{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid slot")
	}
	return models.TimeSlot{
		ID:        models.SlotID(day, startTime),
		Day:       day,
		StartTime: startTime,
		EndTime:   end,
		Status:    models.SlotAvailable,
	}, nil
}

// UpsertSlot returns a copy of schedule with slot inserted, or replacing the
// slot under the same key in place. The id and end time are derived from the key.
func UpsertSlot(schedule models.Schedule, slot models.TimeSlot) models.Schedule {
	slot.ID = models.SlotID(slot.Day, slot.StartTime)
	if end, err := calendar.EndTime(slot.StartTime); err == nil {
		slot.EndTime = end
	}

	out := schedule
	out.Slots = make([]models.TimeSlot, 0, len(schedule.Slots)+1)
	replaced := false
	for _, existing := range schedule.Slots {
		if existing.Day != slot.Day || existing.StartTime != slot.StartTime {
			out.Slots = append(out.Slots, existing)
			continue
		}
		if !replaced {
			out.Slots = append(out.Slots, slot)
			replaced = true
		}
	}
	if !replaced {
		out.Slots = append(out.Slots, slot)
	}
	return out
}

// ApplySlotClick is the single click rule of the grid: an empty cell becomes
// an available slot; an existing slot advances one step along the status cycle.
// It returns the new schedule, the resulting slot and the status before the
// click (empty when the cell had no slot).
func ApplySlotClick(schedule models.Schedule, day int, startTime string) (models.Schedule, models.TimeSlot, models.SlotStatus, error) {
	slot, err := ResolveOrCreateSlot(schedule, day, startTime)
	if err != nil {
		return schedule, models.TimeSlot{}, "", err
	}
	if _, exists := LookupSlot(schedule, day, startTime); !exists {
		return UpsertSlot(schedule, slot), slot, "", nil
	}
	previous := slot.Status
	slot.Status = previous.Next()
	updated := UpsertSlot(schedule, slot)
	slot, _ = LookupSlot(updated, day, startTime)
	return updated, slot, previous, nil
}
