package service

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/teacher-admin-api/internal/dto"
	"github.com/noah-isme/teacher-admin-api/internal/models"
	appErrors "github.com/noah-isme/teacher-admin-api/pkg/errors"
)

func TestExportWeekCSV(t *testing.T) {
	fx := newRosterFixture(t, seedTeacher("t1", "Ana Maria"))
	_, err := fx.svc.UpsertSlot(context.Background(), "t1", dtoBooking(0, "07:00", "Budi", "Math"))
	require.NoError(t, err)

	svc := NewExportService(fx.svc, nil, nil, nil)
	doc, err := svc.ExportWeek("t1", ExportFormatCSV, time.Date(2026, time.October, 14, 0, 0, 0, 0, time.UTC), 0)
	require.NoError(t, err)

	assert.Equal(t, "schedule_ana_maria_2026-10-12.csv", doc.Filename)
	assert.Equal(t, "text/csv; charset=utf-8", doc.ContentType)
	lines := strings.Split(strings.TrimSpace(string(doc.Payload)), "\n")
	require.Len(t, lines, 28)
	assert.Equal(t, "Time,Mon 2026-10-12,Tue 2026-10-13,Wed 2026-10-14,Thu 2026-10-15,Fri 2026-10-16,Sat 2026-10-17,Sun 2026-10-18", lines[0])
	assert.Equal(t, "07:00,booked / Budi / Math,,,,,,", lines[1])
}

func TestExportWeekPDF(t *testing.T) {
	fx := newRosterFixture(t, seedTeacher("t1", "Ana"))

	doc, err := NewExportService(fx.svc, nil, nil, nil).ExportWeek("t1", "PDF", time.Time{}, -1)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", doc.ContentType)
	assert.Equal(t, "schedule_ana_2026-10-05.pdf", doc.Filename)
	assert.True(t, bytes.HasPrefix(doc.Payload, []byte("%PDF")))
}

func TestExportWeekErrors(t *testing.T) {
	fx := newRosterFixture(t, seedTeacher("t1", "Ana"))
	svc := NewExportService(fx.svc, nil, nil, nil)

	_, err := svc.ExportWeek("t1", "xlsx", time.Time{}, 0)
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	_, err = svc.ExportWeek("missing", ExportFormatCSV, time.Time{}, 0)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "teacher", sanitizeFilename("  "))
	assert.Equal(t, "a-b_c", sanitizeFilename("A/B C"))

	long := sanitizeFilename(strings.Repeat("a", 59) + "éèê")
	assert.True(t, utf8.ValidString(long))
	assert.Equal(t, 60, utf8.RuneCountInString(long))
	assert.Equal(t, strings.Repeat("a", 59)+"é", long)

	wide := sanitizeFilename(strings.Repeat("日本", 40))
	assert.True(t, utf8.ValidString(wide))
	assert.Equal(t, 60, utf8.RuneCountInString(wide))
}

func dtoBooking(day int, start, student, subject string) dto.SlotUpsertRequest {
	return dto.SlotUpsertRequest{Day: &day, StartTime: start, Status: models.SlotBooked, StudentName: student, Subject: subject}
}
