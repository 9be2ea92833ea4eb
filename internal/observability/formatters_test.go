package observability

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-match/internal/types"
)

func sampleResult() *types.MatchResult {
	return &types.MatchResult{
		OverallMatch: types.OverallMatch{Percentage: 53, Grade: types.GradeD, Summary: "Partial match with significant skill gaps"},
		Skills: types.SkillsReport{
			Matching: []types.MatchingSkill{{Name: "React", Match: 100}},
			Missing: []types.MissingSkill{
				{Name: "AWS", Importance: types.ImportanceHigh},
				{Name: "TypeScript", Importance: types.ImportanceHigh},
			},
		},
		Experience: types.Experience{
			AverageTenure:        "4 years",
			TotalExperienceYears: 8,
			Gaps:                 []types.Gap{types.NewGap(2018, 2019)},
			JobHistory:           []types.JobRecord{},
		},
		ScreeningQuestions: []string{"Can you describe your experience with React?"},
	}
}

func TestPrintMatchResult(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintMatchResult("jane.txt", sampleResult())
	output := buf.String()

	assert.Contains(t, output, "MATCH RESULT: jane.txt")
	assert.Contains(t, output, "Overall:  53% (D)")
	assert.Contains(t, output, "+ React")
	assert.Contains(t, output, "- AWS (High)")
	assert.Contains(t, output, "Experience:  8 years")
	assert.Contains(t, output, "2018 - 2019 (1 year)")
	assert.Contains(t, output, "1. Can you describe your")
}

func TestPrintMatchResult_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintMatchResult("x", nil)

	assert.Empty(t, buf.String())
}

func TestPrintMatchResult_TruncatesMissing(t *testing.T) {
	result := sampleResult()
	result.Skills.Missing = nil
	for _, name := range []string{"A", "B", "C", "D", "E", "F", "G"} {
		result.Skills.Missing = append(result.Skills.Missing, types.MissingSkill{Name: name, Importance: types.ImportanceHigh})
	}

	var buf bytes.Buffer
	NewPrinter(&buf).PrintMatchResult("", result)

	assert.Contains(t, buf.String(), "... and 2 more")
	assert.NotContains(t, buf.String(), "- G (High)")
}

func TestPrintBox_LinesFitWidth(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintAnswer("why?", strings.Repeat("word ", 40))

	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		assert.Equal(t, boxWidth, len([]rune(line)), line)
	}
}

func TestPrintError(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintError("bad.txt", errors.New("invalid input: resume: must not be empty"))

	assert.Contains(t, buf.String(), "ANALYSIS FAILED: bad.txt")
	assert.Contains(t, buf.String(), "must not be empty")
}

func TestPrintVocabulary(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintVocabulary("embedded", []string{"Go", "SQL"})

	assert.Contains(t, buf.String(), "SKILL VOCABULARY")
	assert.Contains(t, buf.String(), "Skills: 2")
	assert.Contains(t, buf.String(), "Go, SQL")
}

func TestWrap(t *testing.T) {
	assert.Equal(t, []string{"short"}, wrap("short", 10))
	assert.Equal(t, []string{"aaa bbb", "  ccc"}, wrap("aaa bbb ccc", 8))
	assert.Equal(t, []string{"abc..."}, wrap("abcdefghijkl", 8))
}
