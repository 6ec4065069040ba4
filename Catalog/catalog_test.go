package Catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateTasksDeterministic(t *testing.T) {
	planting := time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC)

	first := GenerateTasks("Ibirayi", planting)
	second := GenerateTasks("Ibirayi", planting)
	assert.Equal(t, first, second)
}

func TestGenerateTasksIbirayiOffsets(t *testing.T) {
	planting := time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC)
	tasks := GenerateTasks("Ibirayi", planting)
	require.Len(t, tasks, 6)

	wantOffsets := []int{0, 14, 30, 60, 90, 120}
	for i, offset := range wantOffsets {
		assert.Equal(t, planting.AddDate(0, 0, offset), tasks[i].Date, "offset %d", offset)
	}

	// The fertilizer task sits exactly 30 days out, no time-of-day drift.
	assert.Equal(t, time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC), tasks[2].Date)
	assert.Equal(t, "Gushyiraho ifumbire ya azote", tasks[2].Description)
}

func TestGenerateTasksIbigori(t *testing.T) {
	planting := time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC)
	tasks := GenerateTasks("Ibigori", planting)
	require.Len(t, tasks, 6)

	wantOffsets := []int{0, 15, 30, 60, 90, 120}
	for i, offset := range wantOffsets {
		assert.Equal(t, planting.AddDate(0, 0, offset), tasks[i].Date)
	}
	assert.Equal(t, "Gutera ibigori", tasks[0].Description)
	assert.Equal(t, "Kwimbura ibigori", tasks[5].Description)
}

func TestGenerateTasksUnknownCrop(t *testing.T) {
	tasks := GenerateTasks("Unknown", time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC))
	assert.Empty(t, tasks)
	assert.NotNil(t, tasks)
}

func TestSupportedCrops(t *testing.T) {
	assert.Equal(t, []string{"Ibigori", "Ibirayi"}, SupportedCrops())
	assert.True(t, Supported("Ibirayi"))
	assert.False(t, Supported("Imyumbati"))
}
