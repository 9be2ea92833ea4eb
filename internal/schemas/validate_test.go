package schemas

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-match/internal/matching"
	"github.com/jonathan/resume-match/internal/timeline"
	"github.com/jonathan/resume-match/internal/types"
)

const validResult = `{
  "overallMatch": {"percentage": 53, "grade": "D", "summary": "Partial match with significant skill gaps"},
  "skills": {
    "matching": [{"name": "React", "match": 100}],
    "missing": [{"name": "AWS", "importance": "High"}]
  },
  "experience": {
    "averageTenure": "4 years",
    "gaps": [{"period": "2018 - 2019", "duration": "1 year"}]
  },
  "screeningQuestions": ["Can you describe your experience with React?"]
}`

func TestValidateMatchResult_Valid(t *testing.T) {
	assert.NoError(t, ValidateMatchResult([]byte(validResult)))
}

func TestValidateMatchResult_RoundTripsAnalyzerOutput(t *testing.T) {
	result := types.MatchResult{
		OverallMatch: types.OverallMatch{Percentage: 100, Grade: types.GradeAPlus, Summary: "x"},
		Skills: types.SkillsReport{
			Matching: []types.MatchingSkill{{Name: "Go", Match: types.FullMatchStrength}},
			Missing:  []types.MissingSkill{},
		},
		Experience: types.Experience{
			AverageTenure: "0 years",
			Gaps:          []types.Gap{},
			JobHistory:    []types.JobRecord{},
		},
		ScreeningQuestions: []string{},
	}
	raw, err := json.Marshal(result)
	require.NoError(t, err)

	assert.NoError(t, ValidateMatchResult(raw))
}

func TestDecodeMatchResult_ScanOrderNegativeTenure(t *testing.T) {
	analyzer := matching.NewAnalyzer(matching.WithTimelineMode(timeline.ModeScanOrder))
	result, err := analyzer.Analyze("React developer 2018-2015", "We need React.", 2024)
	require.NoError(t, err)
	require.Equal(t, -3.0, result.Experience.AverageTenureYears)

	raw, err := json.Marshal(result)
	require.NoError(t, err)

	decoded, err := DecodeMatchResult(raw)
	require.NoError(t, err)
	assert.Equal(t, -3, decoded.Experience.TotalExperienceYears)
	assert.Equal(t, "-3 years", decoded.Experience.AverageTenure)
}

func TestValidateMatchResult_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		doc   string
		field string
	}{
		{"missing overallMatch", `{"skills":{"matching":[],"missing":[]},"experience":{"averageTenure":"","gaps":[]},"screeningQuestions":[]}`, "(root)"},
		{"percentage out of range", `{"overallMatch":{"percentage":140,"grade":"A+","summary":""},"skills":{"matching":[],"missing":[]},"experience":{"averageTenure":"","gaps":[]},"screeningQuestions":[]}`, "overallMatch.percentage"},
		{"unknown grade", `{"overallMatch":{"percentage":40,"grade":"E","summary":""},"skills":{"matching":[],"missing":[]},"experience":{"averageTenure":"","gaps":[]},"screeningQuestions":[]}`, "overallMatch.grade"},
		{"not an object", `[1,2,3]`, "(root)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMatchResult([]byte(tt.doc))
			require.Error(t, err)

			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			require.NotEmpty(t, ve.Errors)
			assert.Equal(t, tt.field, ve.Errors[0].Field)
		})
	}
}

func TestValidateMatchResult_NotJSON(t *testing.T) {
	err := ValidateMatchResult([]byte("{not json"))

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Error(), "not valid JSON")
}

func TestDecodeMatchResult(t *testing.T) {
	result, err := DecodeMatchResult([]byte(validResult))
	require.NoError(t, err)

	assert.Equal(t, 53, result.OverallMatch.Percentage)
	assert.Equal(t, types.GradeD, result.OverallMatch.Grade)
	assert.Equal(t, "React", result.Skills.Matching[0].Name)
	assert.Equal(t, "1 year", result.Experience.Gaps[0].Duration)
	assert.NotNil(t, result.Experience.JobHistory)
}

func TestSchemaLoadError(t *testing.T) {
	cause := errors.New("boom")
	err := &SchemaLoadError{Path: "x.json", Message: "bad", Cause: cause}

	assert.Equal(t, "failed to load schema x.json: bad: boom", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestMatchResultSchema(t *testing.T) {
	assert.Contains(t, MatchResultSchema(), `"title": "MatchResult"`)
}
