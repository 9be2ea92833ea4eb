package chat

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/resume-match/internal/types"
)

const (
	concernThreshold = 70
	topSkillCount    = 3
)

const helpText = `I can help you understand:
1. The overall match score and grade
2. Matching and missing skills
3. Employment gaps and tenure
4. Recommended screening questions
5. Areas for improvement
Just ask me about any of these topics!`

const defaultText = "I can help you analyze the match results. You can ask me about the overall match, " +
	"skills, experience, screening questions, or areas for improvement. What would you like to know?"

const noConcernsText = "The candidate appears to be a strong match for the position. No major concerns were identified."

// RuleResponder answers by routing on keywords in the question. Rules are tried in order and
// the first hit wins.
type RuleResponder struct{}

// Respond implements Responder.
func (RuleResponder) Respond(_ context.Context, result *types.MatchResult, message string) string {
	if result == nil {
		return defaultText
	}
	msg := strings.ToLower(message)

	switch {
	case containsAny(msg, "match", "score", "grade"):
		return overall(result)
	case containsAny(msg, "skill", "competency"):
		if containsAny(msg, "missing", "gap") {
			return missingSkills(result)
		}
		return topSkills(result)
	case containsAny(msg, "experience", "tenure", "job"):
		return experience(result)
	case containsAny(msg, "question", "ask", "interview"):
		return "Here are the recommended screening questions:\n" + numbered(result.ScreeningQuestions)
	case containsAny(msg, "improve", "better", "concern"):
		return concerns(result)
	case containsAny(msg, "help", "what can you do"):
		return helpText
	default:
		return defaultText
	}
}

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func overall(r *types.MatchResult) string {
	o := r.OverallMatch
	return fmt.Sprintf("The overall match is %d%% (%s). %s", o.Percentage, o.Grade, o.Summary)
}

func missingSkills(r *types.MatchResult) string {
	if len(r.Skills.Missing) == 0 {
		return "The candidate is not missing any of the skills the job description asks for."
	}
	parts := make([]string, len(r.Skills.Missing))
	for i, s := range r.Skills.Missing {
		parts[i] = fmt.Sprintf("%s (%s importance)", s.Name, s.Importance)
	}
	return fmt.Sprintf("The candidate is missing these skills: %s. "+
		"I recommend focusing on the high-importance skills during the interview.", strings.Join(parts, ", "))
}

func topSkills(r *types.MatchResult) string {
	if len(r.Skills.Matching) == 0 {
		return "The candidate does not have any of the skills the job description asks for."
	}
	sorted := make([]types.MatchingSkill, len(r.Skills.Matching))
	copy(sorted, r.Skills.Matching)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Match > sorted[j].Match })
	if len(sorted) > topSkillCount {
		sorted = sorted[:topSkillCount]
	}

	parts := make([]string, len(sorted))
	for i, s := range sorted {
		parts[i] = fmt.Sprintf("%s (%d%% match)", s.Name, s.Match)
	}
	return "The candidate's strongest matching skills are: " + strings.Join(parts, ", ") + "."
}

func experience(r *types.MatchResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "The candidate's average tenure is %s.", r.Experience.AverageTenure)

	if gaps := r.Experience.Gaps; len(gaps) > 0 {
		parts := make([]string, len(gaps))
		for i, g := range gaps {
			parts[i] = fmt.Sprintf("%s (%s)", g.Period, g.Duration)
		}
		fmt.Fprintf(&b, " There are %d employment gaps: %s.", len(gaps), strings.Join(parts, ", "))
	}

	if jobs := r.Experience.JobHistory; len(jobs) > 0 {
		parts := make([]string, len(jobs))
		for i, j := range jobs {
			parts[i] = fmt.Sprintf("%s at %s (%s)", j.Role, j.Company, j.Duration)
		}
		fmt.Fprintf(&b, " Recent roles include: %s.", strings.Join(parts, ", "))
	}
	return b.String()
}

func concerns(r *types.MatchResult) string {
	var found []string
	if r.OverallMatch.Percentage < concernThreshold {
		found = append(found, fmt.Sprintf("The overall match is below %d%% (%d%%)", concernThreshold, r.OverallMatch.Percentage))
	}

	var high []string
	for _, s := range r.Skills.Missing {
		if strings.EqualFold(s.Importance, types.ImportanceHigh) {
			high = append(high, s.Name)
		}
	}
	if len(high) > 0 {
		found = append(found, "Missing high-importance skills: "+strings.Join(high, ", "))
	}

	if n := len(r.Experience.Gaps); n > 0 {
		found = append(found, fmt.Sprintf("Has %d employment gaps", n))
	}

	if len(found) == 0 {
		return noConcernsText
	}
	return "Key areas of concern:\n- " + strings.Join(found, "\n- ")
}

func numbered(items []string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = fmt.Sprintf("%d. %s", i+1, item)
	}
	return strings.Join(lines, "\n")
}
