// Package questions builds suggested screening questions from a skill comparison.
package questions

import "fmt"

// MaxQuestions caps the generated list.
const MaxQuestions = 5

const (
	matchingTemplate = "Can you describe your experience with %s?"
	missingTemplate  = "How would you approach learning %s if required for this role?"
)

// closingQuestions are appended after the skill questions.
var closingQuestions = []string{
	"What interests you about this position?",
	"How do you stay updated with industry trends?",
}

// Generate returns at most MaxQuestions questions: one per matching skill, then one per
// missing skill, then the closing questions, truncated in that order. With five or more
// matching skills only matching-skill questions remain.
func Generate(matchingSkills, missingSkills []string) []string {
	all := make([]string, 0, len(matchingSkills)+len(missingSkills)+len(closingQuestions))
	for _, s := range matchingSkills {
		all = append(all, fmt.Sprintf(matchingTemplate, s))
	}
	for _, s := range missingSkills {
		all = append(all, fmt.Sprintf(missingTemplate, s))
	}
	all = append(all, closingQuestions...)

	if len(all) > MaxQuestions {
		all = all[:MaxQuestions]
	}
	return all
}
