// Package scoring combines skill overlap and experience into an overall match score and grade.
package scoring

import (
	"math"

	"github.com/jonathan/resume-match/internal/types"
)

// Component weights of the overall percentage.
const (
	skillWeight      = 0.7
	experienceWeight = 0.3

	// pointsPerYear makes five years of experience max out the experience component.
	pointsPerYear      = 20
	maxComponentPoints = 100
)

// band maps an inclusive lower bound of the overall percentage to a grade and summary.
type band struct {
	min     int
	grade   types.Grade
	summary string
}

// bands are ordered highest first; the first band whose min is reached wins.
// The last band catches everything below 50.
var bands = []band{
	{90, types.GradeAPlus, "Excellent match with the job requirements"},
	{80, types.GradeA, "Strong match with the job requirements"},
	{70, types.GradeB, "Good match with some areas for improvement"},
	{60, types.GradeC, "Fair match with notable skill gaps"},
	{50, types.GradeD, "Partial match with significant skill gaps"},
	{math.MinInt, types.GradeF, "Weak match for this position"},
}

// Score is the outcome of scoring one candidate against one job.
type Score struct {
	Percentage           int
	Grade                types.Grade
	Summary              string
	SkillMatchPercentage float64
	ExperienceScore      float64
	MatchingSkills       []string
	MissingSkills        []string
}

// Compute scores candidate skills and experience against the job's skills.
// Matching and missing skills keep the order of jobSkills. An empty jobSkills is an
// InvalidInputError because the skill percentage has no denominator.
func Compute(candidateSkills, jobSkills []string, totalExperienceYears int) (*Score, error) {
	jobSkills = dedupe(jobSkills)
	if len(jobSkills) == 0 {
		return nil, &types.InvalidInputError{
			Field:   "jobDescription",
			Message: "no recognized skills in job description",
		}
	}

	candidate := make(map[string]bool, len(candidateSkills))
	for _, s := range candidateSkills {
		candidate[s] = true
	}

	matching := make([]string, 0, len(jobSkills))
	missing := make([]string, 0, len(jobSkills))
	for _, s := range jobSkills {
		if candidate[s] {
			matching = append(matching, s)
		} else {
			missing = append(missing, s)
		}
	}

	skillPct := float64(maxComponentPoints) * float64(len(matching)) / float64(len(jobSkills))
	expScore := ExperienceScore(totalExperienceYears)
	overall := int(math.Round(skillPct*skillWeight + expScore*experienceWeight))

	return &Score{
		Percentage:           overall,
		Grade:                Grade(overall),
		Summary:              Summary(overall),
		SkillMatchPercentage: skillPct,
		ExperienceScore:      expScore,
		MatchingSkills:       matching,
		MissingSkills:        missing,
	}, nil
}

// ExperienceScore converts years of experience to the 0-100 experience component.
func ExperienceScore(totalExperienceYears int) float64 {
	points := float64(totalExperienceYears * pointsPerYear)
	return math.Max(0, math.Min(points, maxComponentPoints))
}

// Grade returns the letter grade for an overall percentage.
func Grade(percentage int) types.Grade {
	return bandFor(percentage).grade
}

// Summary returns the human summary for an overall percentage.
func Summary(percentage int) string {
	return bandFor(percentage).summary
}

func bandFor(percentage int) band {
	for _, b := range bands {
		if percentage >= b.min {
			return b
		}
	}
	return bands[len(bands)-1]
}

func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
