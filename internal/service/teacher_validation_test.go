package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/teacher-admin-api/internal/models"
)

func validDraft() TeacherDraft {
	return TeacherDraft{
		Name:    "Ana",
		Role:    "Tutor",
		Email:   "ana@x.io",
		Phone:   "12345",
		Address: "Main St",
		Status:  models.TeacherStatusActive,
	}
}

func TestTeacherValidatorAcceptsValidDraft(t *testing.T) {
	v := newTeacherValidator(nil)
	assert.Empty(t, v.Check(validDraft()))
}

func TestTeacherValidatorInvalidEmail(t *testing.T) {
	v := newTeacherValidator(nil)
	draft := validDraft()
	draft.Email = "bad"

	failures := v.Check(draft)
	assert.Equal(t, map[string]string{"email": "Invalid email"}, failures)
}

func TestTeacherValidatorCollectsEveryFailure(t *testing.T) {
	v := newTeacherValidator(nil)
	draft := TeacherDraft{Phone: "123", Address: "ab", Status: "retired"}

	failures := v.Check(draft)
	assert.Equal(t, map[string]string{
		"name":    "Name is required",
		"role":    "Role is required",
		"email":   "Email is required",
		"phone":   "Phone must be at least 5 characters",
		"address": "Address too short",
		"status":  "Status must be one of: active, inactive, pending",
	}, failures)
}

func TestTeacherDraftTrimmedBeforeValidation(t *testing.T) {
	v := newTeacherValidator(nil)
	draft := validDraft()
	draft.Name = "   "
	draft.Address = "  ab  "

	failures := v.Check(draft.trimmed())
	assert.Equal(t, "Name is required", failures["name"])
	assert.Equal(t, "Address too short", failures["address"])
}
