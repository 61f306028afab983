package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/teacher-admin-api/internal/dto"
	"github.com/noah-isme/teacher-admin-api/internal/models"
	"github.com/noah-isme/teacher-admin-api/internal/service"
	"github.com/noah-isme/teacher-admin-api/pkg/calendar"
	appErrors "github.com/noah-isme/teacher-admin-api/pkg/errors"
	"github.com/noah-isme/teacher-admin-api/pkg/response"
)

type scheduleService interface {
	Schedule(teacherID string) (models.Schedule, error)
	UpdateSchedule(ctx context.Context, teacherID string, schedule models.Schedule) (models.RosterSnapshot, error)
	ClickSlot(ctx context.Context, teacherID string, day int, startTime string) (dto.SlotClickResult, error)
	UpsertSlot(ctx context.Context, teacherID string, req dto.SlotUpsertRequest) (models.TimeSlot, error)
	WeekView(teacherID string, anchor time.Time, offset int) (dto.WeekView, error)
}

type scheduleExporter interface {
	ExportWeek(teacherID string, format service.ExportFormat, anchor time.Time, offset int) (*service.ExportedDocument, error)
}

// ScheduleHandler exposes the weekly booking grid of a teacher.
type ScheduleHandler struct {
	schedules scheduleService
	exporter  scheduleExporter
	location  *time.Location
}

// NewScheduleHandler constructs a schedule handler. Week anchors are parsed in loc.
func NewScheduleHandler(schedules scheduleService, exporter scheduleExporter, loc *time.Location) *ScheduleHandler {
	if loc == nil {
		loc = time.Local
	}
	return &ScheduleHandler{schedules: schedules, exporter: exporter, location: loc}
}

// Get godoc
// @Summary Get teacher schedule
// @Tags Schedules
// @Produce json
// @Param id path string true "Teacher ID"
// @Success 200 {object} response.Envelope
// @Router /teachers/{id}/schedule [get]
func (h *ScheduleHandler) Get(c *gin.Context) {
	sched, err := h.schedules.Schedule(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sched, nil)
}

// Replace godoc
// @Summary Replace teacher schedule
// @Tags Schedules
// @Accept json
// @Produce json
// @Param id path string true "Teacher ID"
// @Param payload body models.Schedule true "Schedule"
// @Success 200 {object} response.Envelope
// @Router /teachers/{id}/schedule [put]
func (h *ScheduleHandler) Replace(c *gin.Context) {
	var sched models.Schedule
	if err := c.ShouldBindJSON(&sched); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid schedule payload"))
		return
	}
	snap, err := h.schedules.UpdateSchedule(c.Request.Context(), c.Param("id"), sched)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, snap, nil)
}

// Click godoc
// @Summary Click a grid cell
// @Description An empty cell becomes available; an existing slot advances available, booked, unavailable.
// @Tags Schedules
// @Accept json
// @Produce json
// @Param id path string true "Teacher ID"
// @Param payload body dto.SlotClickRequest true "Cell coordinates"
// @Success 200 {object} response.Envelope
// @Router /teachers/{id}/schedule/clicks [post]
func (h *ScheduleHandler) Click(c *gin.Context) {
	var req dto.SlotClickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid slot payload"))
		return
	}
	if req.Day == nil {
		response.Error(c, appErrors.Validation("invalid slot payload", map[string]string{"day": "Day is required"}))
		return
	}
	result, err := h.schedules.ClickSlot(c.Request.Context(), c.Param("id"), *req.Day, req.StartTime)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// UpsertSlot godoc
// @Summary Write booking details into a slot
// @Tags Schedules
// @Accept json
// @Produce json
// @Param id path string true "Teacher ID"
// @Param payload body dto.SlotUpsertRequest true "Slot"
// @Success 200 {object} response.Envelope
// @Router /teachers/{id}/schedule/slots [put]
func (h *ScheduleHandler) UpsertSlot(c *gin.Context) {
	var req dto.SlotUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid slot payload"))
		return
	}
	slot, err := h.schedules.UpsertSlot(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, slot, nil)
}

// Week godoc
// @Summary Week grid
// @Tags Schedules
// @Produce json
// @Param id path string true "Teacher ID"
// @Param date query string false "Any date inside the week (YYYY-MM-DD), defaults to today"
// @Param offset query int false "Weeks to move from date, negative for previous weeks"
// @Success 200 {object} response.Envelope
// @Router /teachers/{id}/schedule/week [get]
func (h *ScheduleHandler) Week(c *gin.Context) {
	anchor, offset, err := h.weekQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	view, err := h.schedules.WeekView(c.Param("id"), anchor, offset)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, nil)
}

// Export godoc
// @Summary Export week grid
// @Tags Schedules
// @Produce text/csv
// @Produce application/pdf
// @Param id path string true "Teacher ID"
// @Param format query string false "csv or pdf" default(csv)
// @Param date query string false "Any date inside the week (YYYY-MM-DD)"
// @Param offset query int false "Week offset"
// @Success 200 {file} file
// @Router /teachers/{id}/schedule/export [get]
func (h *ScheduleHandler) Export(c *gin.Context) {
	anchor, offset, err := h.weekQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	format := service.ExportFormat(c.DefaultQuery("format", string(service.ExportFormatCSV)))
	doc, err := h.exporter.ExportWeek(c.Param("id"), format, anchor, offset)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, doc.Filename, doc.ContentType, doc.Payload)
}

func (h *ScheduleHandler) weekQuery(c *gin.Context) (time.Time, int, error) {
	var anchor time.Time
	if raw := c.Query("date"); raw != "" {
		parsed, err := calendar.ParseWeekAnchor(raw, h.location)
		if err != nil {
			return time.Time{}, 0, appErrors.Validation("invalid week query", map[string]string{"date": "Date must use YYYY-MM-DD"})
		}
		anchor = parsed
	}
	offset := 0
	if raw := c.Query("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return time.Time{}, 0, appErrors.Validation("invalid week query", map[string]string{"offset": "Offset must be an integer"})
		}
		offset = n
	}
	return anchor, offset, nil
}
