package domain

import "math"

// Gradebook is the translated StudentVue gradebook for one reporting period.
type Gradebook struct {
	Classes          []Class           `json:"classes"`
	ReportPeriod     int               `json:"report_period"`
	ReportingPeriods []ReportingPeriod `json:"reporting_periods"`
}

type ReportingPeriod struct {
	Name      string `json:"name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type Class struct {
	Name        string              `json:"name"`
	Teacher     string              `json:"teacher"`
	Category    string              `json:"category"`
	Grade       float64             `json:"grade"`
	LetterGrade string              `json:"letter_grade"`
	Categories  map[string]Category `json:"categories"`
	Assignments []Assignment        `json:"assignments"`
}

// Category is one weighted bucket of the class grade. Weight is a fraction (0..1).
type Category struct {
	Weight         float64 `json:"weight"`
	PointsEarned   float64 `json:"points_earned"`
	PointsPossible float64 `json:"points_possible"`
}

// Assignment is a single graded item. PointsEarned is nil while ungraded.
type Assignment struct {
	Name           string   `json:"name"`
	Kind           string   `json:"kind"`
	PointsEarned   *float64 `json:"points_earned"`
	PointsPossible float64  `json:"points_possible"`
	Date           string   `json:"date,omitempty"`
	DueDate        string   `json:"due_date,omitempty"`
	Notes          string   `json:"notes,omitempty"`
}

const LetterNotAvailable = "N/A"

// LetterFor maps a percentage onto the district's letter scale.
func LetterFor(grade float64) string {
	switch {
	case grade >= 89.5:
		return "A"
	case grade >= 79.5:
		return "B"
	case grade >= 69.5:
		return "C"
	case grade >= 59.5:
		return "D"
	case !math.IsNaN(grade) && !math.IsInf(grade, 0):
		return "E"
	default:
		return LetterNotAvailable
	}
}
