package studentvue

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/gradepeek/svue-api/internal/core/domain"
)

// Gradebook fetches and translates the gradebook, optionally for a specific
// reporting period index.
func (c *Client) Gradebook(ctx context.Context, token *domain.AuthToken, reportPeriod *int) (*domain.Gradebook, error) {
	params := ""
	if reportPeriod != nil {
		params = param("ReportPeriod", strconv.Itoa(*reportPeriod))
	}

	result, err := c.Call(ctx, token, MethodGradebook, params)
	if err != nil {
		return nil, err
	}

	var gb gradebookXML
	if err := decodeResult(MethodGradebook, result, &gb); err != nil {
		return nil, err
	}
	return translateGradebook(gb)
}

// --- XML shapes ---

type gradebookXML struct {
	Type             string            `xml:"Type,attr"`
	ErrorMessage     string            `xml:"ErrorMessage,attr"`
	ReportingPeriods []reportPeriodXML `xml:"ReportingPeriods>ReportPeriod"`
	ReportingPeriod  reportPeriodXML   `xml:"ReportingPeriod"`
	Courses          []courseXML       `xml:"Courses>Course"`
}

type reportPeriodXML struct {
	Index       string `xml:"Index,attr"`
	GradePeriod string `xml:"GradePeriod,attr"`
	StartDate   string `xml:"StartDate,attr"`
	EndDate     string `xml:"EndDate,attr"`
}

type courseXML struct {
	Period     string    `xml:"Period,attr"`
	Title      string    `xml:"Title,attr"`
	CourseName string    `xml:"CourseName,attr"`
	Room       string    `xml:"Room,attr"`
	Staff      string    `xml:"Staff,attr"`
	StaffEMail string    `xml:"StaffEMail,attr"`
	StaffGU    string    `xml:"StaffGU,attr"`
	ImageType  string    `xml:"ImageType,attr"`
	Marks      []markXML `xml:"Marks>Mark"`
}

type markXML struct {
	MarkName              string          `xml:"MarkName,attr"`
	CalculatedScoreString string          `xml:"CalculatedScoreString,attr"`
	CalculatedScoreRaw    string          `xml:"CalculatedScoreRaw,attr"`
	GradeCalcs            []gradeCalcXML  `xml:"GradeCalculationSummary>AssignmentGradeCalc"`
	Assignments           []assignmentXML `xml:"Assignments>Assignment"`
}

type gradeCalcXML struct {
	Type           string `xml:"Type,attr"`
	Weight         string `xml:"Weight,attr"`
	Points         string `xml:"Points,attr"`
	PointsPossible string `xml:"PointsPossible,attr"`
	WeightedPct    string `xml:"WeightedPct,attr"`
	CalculatedMark string `xml:"CalculatedMark,attr"`
}

type assignmentXML struct {
	GradebookID   string `xml:"GradebookID,attr"`
	Measure       string `xml:"Measure,attr"`
	Type          string `xml:"Type,attr"`
	Date          string `xml:"Date,attr"`
	DueDate       string `xml:"DueDate,attr"`
	DisplayScore  string `xml:"DisplayScore,attr"`
	ScoreCalValue string `xml:"ScoreCalValue,attr"`
	ScoreMaxValue string `xml:"ScoreMaxValue,attr"`
	ScoreType     string `xml:"ScoreType,attr"`
	Points        string `xml:"Points,attr"`
	Notes         string `xml:"Notes,attr"`
}

// --- translation ---

const totalCalcType = "TOTAL"

func translateGradebook(gb gradebookXML) (*domain.Gradebook, error) {
	periods := make([]domain.ReportingPeriod, 0, len(gb.ReportingPeriods))
	current := -1
	for i, p := range gb.ReportingPeriods {
		periods = append(periods, domain.ReportingPeriod{
			Name:      p.GradePeriod,
			StartDate: p.StartDate,
			EndDate:   p.EndDate,
		})
		if current < 0 && p.GradePeriod == gb.ReportingPeriod.GradePeriod {
			current = i
		}
	}
	if current < 0 {
		return nil, fmt.Errorf("%w: missing field %q", domain.ErrGradebookField, "gp_idx")
	}

	classes := make([]domain.Class, 0, len(gb.Courses))
	for _, course := range gb.Courses {
		class, err := translateCourse(course)
		if err != nil {
			return nil, fmt.Errorf("course %q: %w", course.Title, err)
		}
		classes = append(classes, class)
	}

	return &domain.Gradebook{
		Classes:          classes,
		ReportPeriod:     current,
		ReportingPeriods: periods,
	}, nil
}

func translateCourse(c courseXML) (domain.Class, error) {
	class := domain.Class{
		Name:        c.Title,
		Teacher:     c.Staff,
		Category:    c.ImageType,
		LetterGrade: domain.LetterNotAvailable,
		Categories:  map[string]domain.Category{},
		Assignments: []domain.Assignment{},
	}
	// some courses (homeroom, advisory) carry no mark at all
	if len(c.Marks) == 0 {
		return class, nil
	}
	mark := c.Marks[0]

	grade, err := parseNumber(mark.CalculatedScoreRaw)
	if err != nil {
		return class, fmt.Errorf("%w: bad score %q", domain.ErrGradebookField, mark.CalculatedScoreRaw)
	}
	class.Grade = grade

	class.LetterGrade = mark.CalculatedScoreString
	if strings.IndexFunc(class.LetterGrade, unicode.IsDigit) >= 0 {
		class.LetterGrade = domain.LetterFor(grade)
	}

	for _, calc := range mark.GradeCalcs {
		if calc.Type == totalCalcType {
			continue
		}
		category, err := translateCategory(calc)
		if err != nil {
			return class, err
		}
		class.Categories[calc.Type] = category
	}

	for _, a := range mark.Assignments {
		possible, ok := pointsPossible(a)
		if !ok {
			continue
		}
		assignment := domain.Assignment{
			Name:           unescapeEntities(a.Measure),
			Kind:           a.Type,
			PointsPossible: possible,
			Date:           a.Date,
			DueDate:        a.DueDate,
			Notes:          a.Notes,
		}
		if earned, err := parseNumber(a.ScoreCalValue); err == nil {
			assignment.PointsEarned = &earned
		}
		class.Assignments = append(class.Assignments, assignment)
	}

	return class, nil
}

func translateCategory(calc gradeCalcXML) (domain.Category, error) {
	weight, err := parseNumber(strings.Trim(strings.TrimSpace(calc.Weight), "%"))
	if err != nil {
		return domain.Category{}, fmt.Errorf("%w: bad weight %q", domain.ErrGradebookField, calc.Weight)
	}
	earned, err := parseNumber(calc.Points)
	if err != nil {
		return domain.Category{}, fmt.Errorf("%w: bad points %q", domain.ErrGradebookField, calc.Points)
	}
	possible, err := parseNumber(calc.PointsPossible)
	if err != nil {
		return domain.Category{}, fmt.Errorf("%w: bad points possible %q", domain.ErrGradebookField, calc.PointsPossible)
	}
	return domain.Category{
		Weight:         weight / 100,
		PointsEarned:   earned,
		PointsPossible: possible,
	}, nil
}

// pointsPossible prefers ScoreMaxValue and falls back to the display string,
// which is either "earned / possible" or "n Points Possible".
func pointsPossible(a assignmentXML) (float64, bool) {
	if v, err := parseNumber(a.ScoreMaxValue); err == nil {
		return v, true
	}
	if _, after, found := strings.Cut(a.Points, "/"); found {
		v, err := parseNumber(after)
		return v, err == nil
	}
	v, err := parseNumber(strings.ReplaceAll(a.Points, "Points Possible", ""))
	return v, err == nil
}

// parseNumber accepts thousands separators and surrounding space. Non-finite
// values are rejected since they cannot be encoded as JSON.
func parseNumber(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(strings.ReplaceAll(s, ",", "")), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite number %q", s)
	}
	return v, nil
}

// Assignment names arrive entity-encoded a second time inside the attribute.
func unescapeEntities(s string) string {
	s = strings.ReplaceAll(s, "&apos;", "'")
	s = strings.ReplaceAll(s, "&quot;", `"`)
	s = strings.ReplaceAll(s, "&amp;", "&")
	s = strings.ReplaceAll(s, "&lt;", "<")
	return strings.ReplaceAll(s, "&gt;", ">")
}
