// Package types provides type definitions for structured data used throughout the resume-match system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "fmt"

// Grade is the letter bucket derived from the overall match percentage.
type Grade string

// Grade values, highest first.
const (
	GradeAPlus Grade = "A+"
	GradeA     Grade = "A"
	GradeB     Grade = "B"
	GradeC     Grade = "C"
	GradeD     Grade = "D"
	GradeF     Grade = "F"
)

// Fixed per-skill values. The engine does not grade partial competency or requirement importance.
const (
	FullMatchStrength = 100
	ImportanceHigh    = "High"
)

// MatchResult is the complete assessment of one résumé against one job description.
// It is built once per analysis and never mutated afterwards.
type MatchResult struct {
	OverallMatch       OverallMatch `json:"overallMatch"`
	Skills             SkillsReport `json:"skills"`
	Experience         Experience   `json:"experience"`
	ScreeningQuestions []string     `json:"screeningQuestions"`
}

// OverallMatch holds the headline score.
type OverallMatch struct {
	Percentage int    `json:"percentage"`
	Grade      Grade  `json:"grade"`
	Summary    string `json:"summary"`
}

// SkillsReport lists the job skills split by whether the candidate has them.
type SkillsReport struct {
	Matching []MatchingSkill `json:"matching"`
	Missing  []MissingSkill  `json:"missing"`
}

// MatchingSkill is a job skill found in the résumé.
type MatchingSkill struct {
	Name  string `json:"name"`
	Match int    `json:"match"`
}

// MissingSkill is a job skill absent from the résumé.
type MissingSkill struct {
	Name       string `json:"name"`
	Importance string `json:"importance"`
}

// Experience summarizes the résumé timeline.
type Experience struct {
	AverageTenure        string      `json:"averageTenure"`
	AverageTenureYears   float64     `json:"averageTenureYears"`
	TotalExperienceYears int         `json:"totalExperienceYears"`
	Gaps                 []Gap       `json:"gaps"`
	JobHistory           []JobRecord `json:"jobHistory"`
}

// Gap is an inferred interval without employment between two date ranges.
type Gap struct {
	Period        string `json:"period"`
	Duration      string `json:"duration"`
	DurationYears int    `json:"durationYears"`
}

// NewGap builds the gap between the end year of one range and the start year of the next.
func NewGap(fromYear, toYear int) Gap {
	years := toYear - fromYear
	return Gap{
		Period:        fmt.Sprintf("%d - %d", fromYear, toYear),
		Duration:      FormatYears(float64(years)),
		DurationYears: years,
	}
}

// JobRecord is a structured employment entry. Text analysis never produces these;
// they are only present when a caller supplies structured history.
type JobRecord struct {
	Company  string `json:"company"`
	Duration string `json:"duration"`
	Role     string `json:"role"`
}

// FormatYears renders a year count the way the UI displays tenure ("1 year", "2.5 years").
func FormatYears(years float64) string {
	if years == 1 {
		return "1 year"
	}
	if years == float64(int(years)) {
		return fmt.Sprintf("%d years", int(years))
	}
	return fmt.Sprintf("%.1f years", years)
}
