package models

// TeacherStatus is the employment state shown on a teacher card.
type TeacherStatus string

const (
	TeacherStatusActive   TeacherStatus = "active"
	TeacherStatusInactive TeacherStatus = "inactive"
	TeacherStatusPending  TeacherStatus = "pending"
)

// Teacher represents an instructor record together with the documents it owns.
type Teacher struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Role             string          `json:"role"`
	Email            string          `json:"email"`
	Phone            string          `json:"phone"`
	Address          string          `json:"address"`
	Avatar           string          `json:"avatar,omitempty"`
	DateOfBirth      string          `json:"dateOfBirth,omitempty"`
	EmergencyContact string          `json:"emergencyContact,omitempty"`
	Status           TeacherStatus   `json:"status"`
	Qualifications   []Qualification `json:"qualifications"`
	Schedule         *Schedule       `json:"schedule,omitempty"`
}

// Clone returns a deep copy so callers never share slices with the roster.
func (t Teacher) Clone() Teacher {
	cp := t
	cp.Qualifications = cloneQualifications(t.Qualifications)
	if t.Schedule != nil {
		sched := t.Schedule.Clone()
		cp.Schedule = &sched
	}
	return cp
}

// TeacherFilter captures filtering options for listing teachers.
type TeacherFilter struct {
	Search   string
	Page     int
	PageSize int
}

// RosterSnapshot is the full teacher collection plus the selected record.
type RosterSnapshot struct {
	Teachers   []Teacher `json:"teachers"`
	SelectedID string    `json:"selectedId,omitempty"`
}

// Selected returns the selected teacher, if any.
func (s RosterSnapshot) Selected() (*Teacher, bool) {
	if s.SelectedID == "" {
		return nil, false
	}
	for i := range s.Teachers {
		if s.Teachers[i].ID == s.SelectedID {
			return &s.Teachers[i], true
		}
	}
	return nil, false
}
