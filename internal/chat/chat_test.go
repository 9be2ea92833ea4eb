package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-match/internal/types"
)

type fakeClient struct {
	answer string
	err    error

	system string
	prompt string
	calls  int
}

func (f *fakeClient) Chat(_ context.Context, system, prompt string) (string, error) {
	f.calls++
	f.system = system
	f.prompt = prompt
	return f.answer, f.err
}

func (f *fakeClient) Model() string { return "fake" }
func (f *fakeClient) Close() error  { return nil }

func sampleResult() *types.MatchResult {
	return &types.MatchResult{
		OverallMatch: types.OverallMatch{Percentage: 53, Grade: types.GradeD, Summary: "Partial match with significant skill gaps"},
		Skills: types.SkillsReport{
			Matching: []types.MatchingSkill{{Name: "React", Match: 100}, {Name: "Node.js", Match: 100}},
			Missing:  []types.MissingSkill{{Name: "AWS", Importance: types.ImportanceHigh}, {Name: "TypeScript", Importance: types.ImportanceHigh}},
		},
		Experience: types.Experience{
			AverageTenure:        "2.5 years",
			AverageTenureYears:   2.5,
			TotalExperienceYears: 5,
			Gaps:                 []types.Gap{types.NewGap(2017, 2019)},
			JobHistory:           []types.JobRecord{},
		},
		ScreeningQuestions: []string{
			"Can you describe your experience with React?",
			"What interests you about this position?",
		},
	}
}

func TestNew(t *testing.T) {
	assert.IsType(t, RuleResponder{}, New(nil))
	assert.IsType(t, &Assistant{}, New(&fakeClient{}))
}

func TestAssistant_Respond(t *testing.T) {
	client := &fakeClient{answer: "  The candidate lacks AWS.  "}

	answer := NewAssistant(client).Respond(context.Background(), sampleResult(), "What is missing?")

	assert.Equal(t, "The candidate lacks AWS.", answer)
	assert.Equal(t, 1, client.calls)
	assert.Contains(t, client.system, "expert HR and recruitment assistant")
	assert.Contains(t, client.prompt, "Overall Match: 53% (D)")
	assert.Contains(t, client.prompt, "- AWS (High importance)")
	assert.Contains(t, client.prompt, "Employment Gaps: 2017 - 2019 (2 years)")
	assert.Contains(t, client.prompt, "User Question: What is missing?")
}

func TestAssistant_FallbackOnError(t *testing.T) {
	client := &fakeClient{err: errors.New("connection refused")}

	answer := NewAssistant(client).Respond(context.Background(), sampleResult(), "anything")
	assert.Equal(t, FallbackMessage, answer)
}

func TestAssistant_FallbackOnEmptyAnswer(t *testing.T) {
	answer := NewAssistant(&fakeClient{answer: "   "}).Respond(context.Background(), sampleResult(), "anything")
	assert.Equal(t, FallbackMessage, answer)
}

func TestAssistant_FallbackOnNilResult(t *testing.T) {
	client := &fakeClient{answer: "unused"}

	answer := NewAssistant(client).Respond(context.Background(), nil, "anything")
	assert.Equal(t, FallbackMessage, answer)
	assert.Zero(t, client.calls)
}

func TestBuildPrompt(t *testing.T) {
	system, user, err := BuildPrompt(sampleResult(), "Should we interview?")
	require.NoError(t, err)

	assert.NotEmpty(t, system)
	assert.Contains(t, user, "- React: 100%")
	assert.Contains(t, user, "- Average Tenure: 2.5 years")
	assert.Contains(t, user, "- Job History: None provided")
	assert.Contains(t, user, "1. Can you describe your experience with React?")
	assert.Contains(t, user, "2. What interests you about this position?")
}

func TestBuildPrompt_NoGaps(t *testing.T) {
	result := sampleResult()
	result.Experience.Gaps = nil

	_, user, err := BuildPrompt(result, "q")
	require.NoError(t, err)
	assert.Contains(t, user, "Employment Gaps: None found")
}
