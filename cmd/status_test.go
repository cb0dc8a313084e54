package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pergazuz/thai-map/internal/model"
	"github.com/pergazuz/thai-map/internal/report"
)

func TestFormatStatus(t *testing.T) {
	tally := report.Tally{
		Hubs:   2,
		Points: 5,
		ByStatus: map[model.CoverageStatus]int{
			model.StatusCovered: 3,
			model.StatusNear:    1,
			model.StatusNone:    1,
		},
		ByCategory: map[model.Category]int{
			model.CategoryExisting: 2,
			model.CategoryRequest:  2,
			model.CategoryPending:  1,
			model.CategoryOutzone:  0,
		},
	}

	var buf bytes.Buffer
	formatStatus(&buf, tally)
	out := buf.String()

	assert.Contains(t, out, "Hubs:    2")
	assert.Contains(t, out, "Points:  5")
	assert.Contains(t, out, "covered")
	assert.Contains(t, out, "Existing")
	assert.Contains(t, out, "Outzone")

	// Fixed ordering: statuses then categories
	assert.Less(t, strings.Index(out, "covered"), strings.Index(out, "near"))
	assert.Less(t, strings.Index(out, "near"), strings.Index(out, "none"))
	assert.Less(t, strings.Index(out, "Existing"), strings.Index(out, "Request"))
}

func TestFormatStatus_Empty(t *testing.T) {
	var buf bytes.Buffer
	formatStatus(&buf, report.TallyState(model.State{}))
	out := buf.String()

	assert.Contains(t, out, "Hubs:    0")
	assert.Contains(t, out, "Points:  0")
	// Zero rows still listed for every status and category
	assert.Contains(t, out, "covered")
	assert.Contains(t, out, "Pending")
}
