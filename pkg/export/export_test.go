package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDataset() Dataset {
	return Dataset{
		Title:    "Weekly schedule",
		Subtitle: "2026-10-12 to 2026-10-18",
		Headers:  []string{"Time", "Mon", "Tue"},
		Rows: [][]string{
			{"07:00", "available", ""},
			{"07:30", "booked, Budi", "unavailable"},
		},
	}
}

func TestCSVExporterRender(t *testing.T) {
	out, err := NewCSVExporter().Render(sampleDataset())
	require.NoError(t, err)
	assert.Equal(t, "Time,Mon,Tue\n07:00,available,\n07:30,\"booked, Budi\",unavailable\n", string(out))
}

func TestCSVExporterRejectsRaggedRows(t *testing.T) {
	data := sampleDataset()
	data.Rows = append(data.Rows, []string{"08:00"})

	_, err := NewCSVExporter().Render(data)
	assert.Error(t, err)

	_, err = NewCSVExporter().Render(Dataset{})
	assert.Error(t, err)
}

func TestPDFExporterRender(t *testing.T) {
	out, err := NewPDFExporter(WithLandscape(), WithFirstColumnWidth(20)).Render(sampleDataset())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestPDFColumnWidths(t *testing.T) {
	e := NewPDFExporter(WithFirstColumnWidth(30))
	widths := e.columnWidths(190, 3)
	assert.Equal(t, []float64{30, 80, 80}, widths)

	widths = NewPDFExporter().columnWidths(190, 2)
	assert.Equal(t, []float64{95, 95}, widths)
}
