package service

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/teacher-admin-api/internal/models"
)

// TeacherDraft is the payload of the add and edit teacher forms.
type TeacherDraft struct {
	Name             string                 `json:"name" validate:"required"`
	Role             string                 `json:"role" validate:"required"`
	Email            string                 `json:"email" validate:"required,email"`
	Phone            string                 `json:"phone" validate:"required,min=5"`
	Address          string                 `json:"address" validate:"required,min=3"`
	Status           models.TeacherStatus   `json:"status" validate:"required,oneof=active inactive pending"`
	Avatar           string                 `json:"avatar,omitempty"`
	DateOfBirth      string                 `json:"dateOfBirth,omitempty"`
	EmergencyContact string                 `json:"emergencyContact,omitempty"`
	Qualifications   []models.Qualification `json:"qualifications,omitempty"`
	Schedule         *models.Schedule       `json:"schedule,omitempty"`
}

func (d TeacherDraft) trimmed() TeacherDraft {
	d.Name = strings.TrimSpace(d.Name)
	d.Role = strings.TrimSpace(d.Role)
	d.Email = strings.TrimSpace(d.Email)
	d.Phone = strings.TrimSpace(d.Phone)
	d.Address = strings.TrimSpace(d.Address)
	d.Status = models.TeacherStatus(strings.TrimSpace(string(d.Status)))
	return d
}

var teacherFieldMessages = map[string]map[string]string{
	"name":    {"required": "Name is required"},
	"role":    {"required": "Role is required"},
	"email":   {"required": "Email is required", "email": "Invalid email"},
	"phone":   {"required": "Phone is required", "min": "Phone must be at least 5 characters"},
	"address": {"required": "Address is required", "min": "Address too short"},
	"status":  {"required": "Status is required", "oneof": "Status must be one of: active, inactive, pending"},
}

type teacherValidator struct {
	validate *validator.Validate
}

func newTeacherValidator(validate *validator.Validate) *teacherValidator {
	if validate == nil {
		validate = validator.New()
	}
	validate.RegisterTagNameFunc(jsonFieldName)
	return &teacherValidator{validate: validate}
}

// Check returns one message per failing field. Every field is checked; an
// empty map means the draft is valid.
func (v *teacherValidator) Check(draft TeacherDraft) map[string]string {
	failures := make(map[string]string)
	err := v.validate.Struct(draft)
	if err == nil {
		return failures
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		failures["_"] = err.Error()
		return failures
	}
	for _, fe := range fieldErrs {
		field := fe.Field()
		if _, seen := failures[field]; seen {
			continue
		}
		msg, ok := teacherFieldMessages[field][fe.Tag()]
		if !ok {
			msg = field + " is invalid"
		}
		failures[field] = msg
	}
	return failures
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}
