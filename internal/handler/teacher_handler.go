package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/teacher-admin-api/internal/dto"
	"github.com/noah-isme/teacher-admin-api/internal/models"
	"github.com/noah-isme/teacher-admin-api/internal/service"
	appErrors "github.com/noah-isme/teacher-admin-api/pkg/errors"
	"github.com/noah-isme/teacher-admin-api/pkg/response"
)

type rosterService interface {
	Snapshot() models.RosterSnapshot
	List(filter models.TeacherFilter) ([]models.Teacher, *models.Pagination)
	Get(id string) (*models.Teacher, error)
	Select(id string) (models.RosterSnapshot, error)
	AddTeacher(ctx context.Context, draft service.TeacherDraft) (models.RosterSnapshot, error)
	UpdateTeacher(ctx context.Context, id string, draft service.TeacherDraft) (models.RosterSnapshot, error)
	DeleteTeacher(ctx context.Context, id string) (models.RosterSnapshot, error)
	UpdateQualifications(ctx context.Context, teacherID string, quals []models.Qualification) (models.RosterSnapshot, error)
	AddQualification(ctx context.Context, teacherID string, draft dto.QualificationDraft) (models.RosterSnapshot, bool, error)
	ToggleQualification(ctx context.Context, teacherID, qualID string) (models.RosterSnapshot, error)
	RemoveQualification(ctx context.Context, teacherID, qualID string) (models.RosterSnapshot, error)
}

// TeacherHandler wires the teacher collection to HTTP routes.
type TeacherHandler struct {
	roster rosterService
}

// NewTeacherHandler constructs a new TeacherHandler.
func NewTeacherHandler(roster rosterService) *TeacherHandler {
	return &TeacherHandler{roster: roster}
}

// List godoc
// @Summary List teachers
// @Tags Teachers
// @Produce json
// @Param search query string false "Case-insensitive name search"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /teachers [get]
func (h *TeacherHandler) List(c *gin.Context) {
	filter := models.TeacherFilter{Search: strings.TrimSpace(c.Query("search"))}
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.Query("limit")); err == nil {
		filter.PageSize = size
	}

	teachers, pagination := h.roster.List(filter)
	response.JSON(c, http.StatusOK, teachers, pagination, map[string]interface{}{"selectedId": h.roster.Snapshot().SelectedID})
}

// Get godoc
// @Summary Get teacher detail
// @Tags Teachers
// @Produce json
// @Param id path string true "Teacher ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /teachers/{id} [get]
func (h *TeacherHandler) Get(c *gin.Context) {
	teacher, err := h.roster.Get(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, teacher, nil)
}

// Create godoc
// @Summary Add teacher
// @Description Validates the draft, appends the teacher with an empty schedule and selects it.
// @Tags Teachers
// @Accept json
// @Produce json
// @Param payload body service.TeacherDraft true "Teacher payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 503 {object} response.Envelope
// @Router /teachers [post]
func (h *TeacherHandler) Create(c *gin.Context) {
	var draft service.TeacherDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid teacher payload"))
		return
	}
	snap, err := h.roster.AddTeacher(c.Request.Context(), draft)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, snap)
}

// Update godoc
// @Summary Update teacher
// @Tags Teachers
// @Accept json
// @Produce json
// @Param id path string true "Teacher ID"
// @Param payload body service.TeacherDraft true "Teacher payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /teachers/{id} [put]
func (h *TeacherHandler) Update(c *gin.Context) {
	var draft service.TeacherDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid teacher payload"))
		return
	}
	snap, err := h.roster.UpdateTeacher(c.Request.Context(), c.Param("id"), draft)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, snap, nil)
}

// Delete godoc
// @Summary Delete teacher
// @Description Removes the teacher with its qualifications and schedule.
// @Tags Teachers
// @Produce json
// @Param id path string true "Teacher ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /teachers/{id} [delete]
func (h *TeacherHandler) Delete(c *gin.Context) {
	snap, err := h.roster.DeleteTeacher(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, snap, nil)
}

// Selection godoc
// @Summary Get the selected teacher
// @Tags Selection
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /selection [get]
func (h *TeacherHandler) Selection(c *gin.Context) {
	snap := h.roster.Snapshot()
	selected, _ := snap.Selected()
	response.JSON(c, http.StatusOK, gin.H{"selectedId": snap.SelectedID, "teacher": selected}, nil)
}

// Select godoc
// @Summary Select teacher
// @Tags Selection
// @Produce json
// @Param id path string true "Teacher ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /selection/{id} [put]
func (h *TeacherHandler) Select(c *gin.Context) {
	snap, err := h.roster.Select(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, snap, nil)
}

// ReplaceQualifications godoc
// @Summary Replace qualifications
// @Tags Qualifications
// @Accept json
// @Produce json
// @Param id path string true "Teacher ID"
// @Param payload body dto.QualificationsRequest true "Qualification list"
// @Success 200 {object} response.Envelope
// @Router /teachers/{id}/qualifications [put]
func (h *TeacherHandler) ReplaceQualifications(c *gin.Context) {
	var req dto.QualificationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid qualification payload"))
		return
	}
	if req.Qualifications == nil {
		req.Qualifications = []models.Qualification{}
	}
	snap, err := h.roster.UpdateQualifications(c.Request.Context(), c.Param("id"), req.Qualifications)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, snap, nil)
}

// AddQualification godoc
// @Summary Add qualification
// @Description A draft with an empty name or a non-positive rate is ignored and reported with added=false.
// @Tags Qualifications
// @Accept json
// @Produce json
// @Param id path string true "Teacher ID"
// @Param payload body dto.QualificationDraft true "Qualification"
// @Success 200 {object} response.Envelope
// @Success 201 {object} response.Envelope
// @Router /teachers/{id}/qualifications [post]
func (h *TeacherHandler) AddQualification(c *gin.Context) {
	var draft dto.QualificationDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid qualification payload"))
		return
	}
	snap, added, err := h.roster.AddQualification(c.Request.Context(), c.Param("id"), draft)
	if err != nil {
		response.Error(c, err)
		return
	}
	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}
	response.JSON(c, status, snap, nil, map[string]interface{}{"added": added})
}

// ToggleQualification godoc
// @Summary Toggle qualification active flag
// @Tags Qualifications
// @Produce json
// @Param id path string true "Teacher ID"
// @Param qid path string true "Qualification ID"
// @Success 200 {object} response.Envelope
// @Router /teachers/{id}/qualifications/{qid}/toggle [patch]
func (h *TeacherHandler) ToggleQualification(c *gin.Context) {
	snap, err := h.roster.ToggleQualification(c.Request.Context(), c.Param("id"), c.Param("qid"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, snap, nil)
}

// RemoveQualification godoc
// @Summary Remove qualification
// @Tags Qualifications
// @Produce json
// @Param id path string true "Teacher ID"
// @Param qid path string true "Qualification ID"
// @Success 200 {object} response.Envelope
// @Router /teachers/{id}/qualifications/{qid} [delete]
func (h *TeacherHandler) RemoveQualification(c *gin.Context) {
	snap, err := h.roster.RemoveQualification(c.Request.Context(), c.Param("id"), c.Param("qid"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, snap, nil)
}
