package studentvue

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/gradepeek/svue-api/internal/core/domain"
)

const sampleGradebook = `<Gradebook Type="Traditional" ErrorMessage="">
  <ReportingPeriods>
    <ReportPeriod Index="0" GradePeriod="Quarter 1" StartDate="8/28/2023" EndDate="11/3/2023" />
    <ReportPeriod Index="1" GradePeriod="Quarter 2" StartDate="11/6/2023" EndDate="1/26/2024" />
  </ReportingPeriods>
  <ReportingPeriod GradePeriod="Quarter 2" StartDate="11/6/2023" EndDate="1/26/2024" />
  <Courses>
    <Course Period="1" Title="Algebra II" Room="101" Staff="Smith, J" StaffEMail="js@example.org" ImageType="Math">
      <Marks>
        <Mark MarkName="Q2" CalculatedScoreString="91.2" CalculatedScoreRaw="91.2">
          <GradeCalculationSummary>
            <AssignmentGradeCalc Type="Tests" Weight="60%" Points="1,050.00" PointsPossible="1,200.00" WeightedPct="52.5%" CalculatedMark="A" />
            <AssignmentGradeCalc Type="TOTAL" Weight="100%" Points="1,500.00" PointsPossible="1,600.00" WeightedPct="91.2%" CalculatedMark="A" />
          </GradeCalculationSummary>
          <Assignments>
            <Assignment GradebookID="1" Measure="Quiz &amp;amp; Review" Type="Tests" Date="11/10/2023" DueDate="11/10/2023" ScoreCalValue="45" ScoreMaxValue="50" Points="45 / 50" Notes="late" />
            <Assignment GradebookID="2" Measure="Unit Test" Type="Tests" Date="12/1/2023" DueDate="12/4/2023" ScoreCalValue="" ScoreMaxValue="" Points="100 Points Possible" Notes="" />
            <Assignment GradebookID="3" Measure="Worksheet" Type="Homework" Date="12/2/2023" DueDate="12/2/2023" ScoreCalValue="8" ScoreMaxValue="" Points="8 / 10" Notes="" />
            <Assignment GradebookID="4" Measure="Not Graded" Type="Homework" ScoreCalValue="" ScoreMaxValue="" Points="" />
          </Assignments>
        </Mark>
      </Marks>
    </Course>
    <Course Period="2" Title="English 11" Staff="Lee, K" ImageType="English">
      <Marks>
        <Mark MarkName="Q2" CalculatedScoreString="B+" CalculatedScoreRaw="88.4">
          <GradeCalculationSummary />
          <Assignments />
        </Mark>
      </Marks>
    </Course>
    <Course Period="3" Title="Homeroom" Staff="Doe, A" ImageType="Other">
      <Marks />
    </Course>
  </Courses>
</Gradebook>`

func TestClient_Gradebook(t *testing.T) {
	srv := serveResult(t, sampleGradebook)
	c, token := newTestClient(srv)

	period := 1
	gb, err := c.Gradebook(context.Background(), token, &period)
	if err != nil {
		t.Fatalf("Gradebook: %v", err)
	}

	if gb.ReportPeriod != 1 {
		t.Fatalf("report_period = %d, want 1", gb.ReportPeriod)
	}
	if len(gb.ReportingPeriods) != 2 {
		t.Fatalf("expected 2 reporting periods, got %d", len(gb.ReportingPeriods))
	}
	if p := gb.ReportingPeriods[0]; p.Name != "Quarter 1" || p.StartDate != "8/28/2023" || p.EndDate != "11/3/2023" {
		t.Fatalf("unexpected period %+v", p)
	}
	if len(gb.Classes) != 3 {
		t.Fatalf("expected 3 classes, got %d", len(gb.Classes))
	}

	algebra := gb.Classes[0]
	if algebra.Name != "Algebra II" || algebra.Teacher != "Smith, J" || algebra.Category != "Math" {
		t.Fatalf("unexpected class header %+v", algebra)
	}
	if algebra.Grade != 91.2 || algebra.LetterGrade != "A" {
		t.Fatalf("grade = %v %q", algebra.Grade, algebra.LetterGrade)
	}

	if _, ok := algebra.Categories["TOTAL"]; ok {
		t.Fatal("TOTAL must not be a category")
	}
	tests, ok := algebra.Categories["Tests"]
	if !ok {
		t.Fatal("missing Tests category")
	}
	if tests.Weight != 0.6 || tests.PointsEarned != 1050 || tests.PointsPossible != 1200 {
		t.Fatalf("unexpected category %+v", tests)
	}

	if len(algebra.Assignments) != 3 {
		t.Fatalf("expected 3 assignments (ungradable one dropped), got %d", len(algebra.Assignments))
	}
	quiz := algebra.Assignments[0]
	if quiz.Name != "Quiz & Review" {
		t.Fatalf("name not unescaped: %q", quiz.Name)
	}
	if quiz.PointsEarned == nil || *quiz.PointsEarned != 45 || quiz.PointsPossible != 50 {
		t.Fatalf("unexpected quiz points %+v", quiz)
	}
	if quiz.Kind != "Tests" || quiz.Notes != "late" || quiz.Date != "11/10/2023" {
		t.Fatalf("unexpected quiz fields %+v", quiz)
	}

	unit := algebra.Assignments[1]
	if unit.PointsEarned != nil {
		t.Fatalf("ungraded assignment should have nil points_earned, got %v", *unit.PointsEarned)
	}
	if unit.PointsPossible != 100 || unit.DueDate != "12/4/2023" {
		t.Fatalf("unexpected unit test %+v", unit)
	}

	worksheet := algebra.Assignments[2]
	if worksheet.PointsPossible != 10 {
		t.Fatalf("points possible from 'a / b' = %v, want 10", worksheet.PointsPossible)
	}

	english := gb.Classes[1]
	if english.LetterGrade != "B+" || english.Grade != 88.4 {
		t.Fatalf("letter without digits should be kept: %+v", english)
	}

	homeroom := gb.Classes[2]
	if homeroom.LetterGrade != domain.LetterNotAvailable || homeroom.Grade != 0 {
		t.Fatalf("unexpected homeroom %+v", homeroom)
	}
	if homeroom.Categories == nil || homeroom.Assignments == nil {
		t.Fatal("empty class must carry empty, non-nil collections")
	}
}

func TestGradebook_UngradedEncodesNull(t *testing.T) {
	var gb gradebookXML
	if err := decodeXML(sampleGradebook, &gb); err != nil {
		t.Fatalf("decode: %v", err)
	}
	out, err := translateGradebook(gb)
	if err != nil {
		t.Fatalf("translate: %v", err)
	}

	raw, err := json.Marshal(out.Classes[0].Assignments[1])
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(raw), `"points_earned":null`) {
		t.Fatalf("expected null points_earned, got %s", raw)
	}
	if strings.Contains(string(raw), `"notes"`) {
		t.Fatalf("empty notes should be omitted, got %s", raw)
	}
}

func TestGradebook_MissingCurrentPeriod(t *testing.T) {
	srv := serveResult(t, `<Gradebook>
  <ReportingPeriods><ReportPeriod Index="0" GradePeriod="Quarter 1" /></ReportingPeriods>
  <ReportingPeriod GradePeriod="Summer" />
  <Courses />
</Gradebook>`)
	c, token := newTestClient(srv)

	_, err := c.Gradebook(context.Background(), token, nil)
	if !errors.Is(err, domain.ErrGradebookField) {
		t.Fatalf("expected ErrGradebookField, got %v", err)
	}
}

func TestGradebook_MalformedResult(t *testing.T) {
	srv := serveResult(t, `<Gradebook><Courses><Course`)
	c, token := newTestClient(srv)

	_, err := c.Gradebook(context.Background(), token, nil)
	if !errors.Is(err, domain.ErrUpstreamParse) {
		t.Fatalf("expected ErrUpstreamParse, got %v", err)
	}
}

func TestPointsPossible(t *testing.T) {
	tests := []struct {
		name string
		in   assignmentXML
		want float64
		ok   bool
	}{
		{"max value", assignmentXML{ScoreMaxValue: "20", Points: "1 / 5"}, 20, true},
		{"slash", assignmentXML{Points: "7.5 / 12.5"}, 12.5, true},
		{"possible", assignmentXML{Points: "1,000 Points Possible"}, 1000, true},
		{"empty", assignmentXML{}, 0, false},
		{"text", assignmentXML{Points: "Not for grading"}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := pointsPossible(tt.in)
			if ok != tt.ok || (ok && got != tt.want) {
				t.Fatalf("pointsPossible = (%v, %v), want (%v, %v)", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestParseNumber_RejectsNonFinite(t *testing.T) {
	for _, in := range []string{"NaN", "Inf", "-Inf", ""} {
		if _, err := parseNumber(in); err == nil {
			t.Errorf("parseNumber(%q) should fail", in)
		}
	}
	if v, err := parseNumber(" 1,234.5 "); err != nil || v != 1234.5 {
		t.Fatalf("parseNumber = %v, %v", v, err)
	}
}

func TestUnescapeEntities(t *testing.T) {
	if got := unescapeEntities("Tom&apos;s &quot;Quiz&quot; &amp;lt;b&amp;gt;"); got != `Tom's "Quiz" <b>` {
		t.Fatalf("unexpected %q", got)
	}
}
