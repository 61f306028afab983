package dto

import "github.com/noah-isme/teacher-admin-api/internal/models"

// QualificationDraft is the add-qualification form. Invalid drafts are ignored, not rejected.
type QualificationDraft struct {
	Name         string                   `json:"name"`
	Rate         float64                  `json:"rate"`
	Currency     string                   `json:"currency"`
	Type         models.QualificationType `json:"type"`
	Description  string                   `json:"description"`
	Requirements []string                 `json:"requirements"`
	IsActive     *bool                    `json:"isActive"`
}

// QualificationsRequest replaces a teacher's qualification list.
type QualificationsRequest struct {
	Qualifications []models.Qualification `json:"qualifications"`
}
