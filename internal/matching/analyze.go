// Package matching runs the full résumé-to-job analysis and assembles the MatchResult.
package matching

import (
	"strings"

	"github.com/jonathan/resume-match/internal/questions"
	"github.com/jonathan/resume-match/internal/scoring"
	"github.com/jonathan/resume-match/internal/skills"
	"github.com/jonathan/resume-match/internal/timeline"
	"github.com/jonathan/resume-match/internal/types"
)

// Analyzer composes skill extraction, timeline analysis, scoring and question generation.
// It holds only immutable configuration, so one Analyzer may serve concurrent requests.
type Analyzer struct {
	extractor *skills.Extractor
	timeline  *timeline.Analyzer
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithVocabulary replaces the default skill vocabulary.
func WithVocabulary(v *skills.Vocabulary) Option {
	return func(a *Analyzer) {
		a.extractor = skills.NewExtractor(v)
	}
}

// WithTimelineMode selects how résumé date ranges are ordered for gap detection.
func WithTimelineMode(mode timeline.Mode) Option {
	return func(a *Analyzer) {
		a.timeline = timeline.NewAnalyzer(mode)
	}
}

// NewAnalyzer creates an Analyzer with the default vocabulary and timeline mode unless overridden.
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{
		extractor: skills.NewExtractor(nil),
		timeline:  timeline.NewAnalyzer(timeline.DefaultMode),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Vocabulary returns the vocabulary used for extraction.
func (a *Analyzer) Vocabulary() *skills.Vocabulary {
	return a.extractor.Vocabulary()
}

// TimelineMode returns the configured timeline mode.
func (a *Analyzer) TimelineMode() timeline.Mode {
	return a.timeline.Mode()
}

// Analyze matches resumeText against jobDescText. currentYear resolves open ranges such as
// "2019-Present". Either a complete result or an error is returned, never both.
func (a *Analyzer) Analyze(resumeText, jobDescText string, currentYear int) (*types.MatchResult, error) {
	if strings.TrimSpace(resumeText) == "" {
		return nil, &types.InvalidInputError{Field: "resume", Message: "résumé text is empty"}
	}
	if strings.TrimSpace(jobDescText) == "" {
		return nil, &types.InvalidInputError{Field: "jobDescription", Message: "job description text is empty"}
	}

	jobSkills := a.extractor.Extract(jobDescText)
	resumeSkills := a.extractor.Extract(resumeText)
	tl := a.timeline.Analyze(resumeText, currentYear)

	score, err := scoring.Compute(resumeSkills, jobSkills, tl.TotalExperienceYears)
	if err != nil {
		return nil, err
	}

	return assemble(score, tl, questions.Generate(score.MatchingSkills, score.MissingSkills)), nil
}

func assemble(score *scoring.Score, tl timeline.Result, screening []string) *types.MatchResult {
	matching := make([]types.MatchingSkill, 0, len(score.MatchingSkills))
	for _, name := range score.MatchingSkills {
		matching = append(matching, types.MatchingSkill{Name: name, Match: types.FullMatchStrength})
	}

	missing := make([]types.MissingSkill, 0, len(score.MissingSkills))
	for _, name := range score.MissingSkills {
		missing = append(missing, types.MissingSkill{Name: name, Importance: types.ImportanceHigh})
	}

	avgTenure := tl.AverageTenureYears()

	return &types.MatchResult{
		OverallMatch: types.OverallMatch{
			Percentage: score.Percentage,
			Grade:      score.Grade,
			Summary:    score.Summary,
		},
		Skills: types.SkillsReport{
			Matching: matching,
			Missing:  missing,
		},
		Experience: types.Experience{
			AverageTenure:        types.FormatYears(avgTenure),
			AverageTenureYears:   avgTenure,
			TotalExperienceYears: tl.TotalExperienceYears,
			Gaps:                 tl.Gaps,
			JobHistory:           []types.JobRecord{},
		},
		ScreeningQuestions: screening,
	}
}
