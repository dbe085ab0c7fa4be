package ui

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"activeAlerts/internal/crawler"
)

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	PrintSummary(&buf, crawler.Summary{
		RunID: "run-1",
		Total: 2,
		Results: []crawler.Result{
			{Index: 0, Artifact: "ok_plant_a_north", Success: true, Records: 3},
			{Index: 1, Artifact: "nok_plant_b_south", SaveErr: errors.New("disk full")},
		},
		Unsaved:  1,
		Duration: 75 * time.Second,
	})

	out := buf.String()
	assert.Contains(t, out, "run-1")
	assert.Contains(t, out, "ok_plant_a_north (3)")
	assert.Contains(t, out, "nok_plant_b_south")
	assert.Contains(t, out, "disk full")
	assert.Contains(t, out, "ok: 1")
	assert.Contains(t, out, "nok: 1")
	assert.Contains(t, out, "Не сохранено артефактов: 1")
	assert.Contains(t, out, "1m15s")
}

func TestPrintSummary_NoPlants(t *testing.T) {
	var buf bytes.Buffer
	PrintSummary(&buf, crawler.Summary{RunID: "run-2"})

	assert.Contains(t, buf.String(), "Площадок для обработки нет")
	assert.NotContains(t, buf.String(), "Всего")
}

func TestFormatStatus(t *testing.T) {
	icon, color, text := FormatStatus(true)
	assert.Equal(t, IconCheckmark, icon)
	assert.Equal(t, ColorGreen, color)
	assert.Equal(t, "ok", text)

	icon, color, text = FormatStatus(false)
	assert.Equal(t, IconCross, icon)
	assert.Equal(t, ColorRed, color)
	assert.Equal(t, "nok", text)
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "250ms", FormatDuration(250*time.Millisecond))
	assert.Equal(t, "12s", FormatDuration(12400*time.Millisecond))
}
