package Catalog

import (
	"time"

	"CropCare/TimeUtils"
)

// PlannedTask is a single dated care action produced from a crop template.
type PlannedTask struct {
	Date        time.Time
	Description string
}

type templateEntry struct {
	DayOffset   int
	Description string
}

// Fixed per-crop care templates, anchored at the planting date.
// Descriptions are the Kinyarwanda task texts shown to farmers.
var cropTemplates = map[string][]templateEntry{
	"Ibirayi": {
		{0, "Gutera Ibirayi"},
		{14, "Gukuraho ibyatsi no kurwanya udukoko"},
		{30, "Gushyiraho ifumbire ya azote"},
		{60, "Gukuraho ibyatsi no kurwanya udukoko bwa kabiri"},
		{90, "Kugenzura indwara n’udukoko"},
		{120, "Kwimbura Ibirayi"},
	},
	"Ibigori": {
		{0, "Gutera ibigori"},
		{15, "Gukuraho ibyatsi no kurwanya udukoko"},
		{30, "Gushyiraho ifumbire ya azote"},
		{60, "Gukuraho ibyatsi no kurwanya udukoko bwa kabiri"},
		{90, "Kongerera ibigori ibiribwa no kugenzura indwara"},
		{120, "Kwimbura ibigori"},
	},
}

var cropOrder = []string{"Ibigori", "Ibirayi"}

// GenerateTasks builds the ordered task list for a crop planted on
// plantingDate. Unknown crops yield an empty list, not an error.
func GenerateTasks(cropType string, plantingDate time.Time) []PlannedTask {
	template, ok := cropTemplates[cropType]
	if !ok {
		return []PlannedTask{}
	}
	tasks := make([]PlannedTask, 0, len(template))
	for _, entry := range template {
		tasks = append(tasks, PlannedTask{
			Date:        TimeUtils.AddDays(plantingDate, entry.DayOffset),
			Description: entry.Description,
		})
	}
	return tasks
}

// Supported reports whether cropType has a care template.
func Supported(cropType string) bool {
	_, ok := cropTemplates[cropType]
	return ok
}

// SupportedCrops returns the crops with templates, in picker order.
func SupportedCrops() []string {
	crops := make([]string, len(cropOrder))
	copy(crops, cropOrder)
	return crops
}
