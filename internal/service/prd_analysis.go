package service

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"codebenders/internal/dto"
)

const (
	overviewLimit     = 280
	mediumComplexity  = 100
	highComplexity    = 1000
	maxSectionEntries = 10
)

var (
	bulletPattern  = regexp.MustCompile(`^\s*(?:[-*•]|\d+[.)])\s+(.+)$`)
	headingPattern = regexp.MustCompile(`^\s*(?:#{1,6}\s+(.+?)|(.+?):)\s*$`)
)

// prdNextSteps is what the wizard asks for after a requirements upload.
var prdNextSteps = []string{
	"Review generated user personas",
	"Select target audience",
	"Define brand design",
	"Configure business logic",
}

func analyzePRD(text string) (dto.PRDAnalysis, int) {
	words := len(strings.Fields(text))
	lower := strings.ToLower(text)

	complexity := "low"
	switch {
	case words > highComplexity:
		complexity = "high"
	case words > mediumComplexity:
		complexity = "medium"
	}

	return dto.PRDAnalysis{
		ContainsFeatures:     strings.Contains(lower, "feature"),
		ContainsRequirements: strings.Contains(lower, "requirement"),
		ContainsGoals:        strings.Contains(lower, "goal"),
		EstimatedComplexity:  complexity,
	}, words
}

// extractSections files bullet points under the heading they follow. A
// heading is a markdown "#" line or a line ending in a colon.
func extractSections(text string) dto.PRDSections {
	sections := dto.PRDSections{
		TargetUsers:           []string{},
		KeyFeatures:           []string{},
		TechnicalRequirements: []string{},
	}

	var heading string
	var overview []string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			if len(overview) > 0 && sections.Overview == "" {
				sections.Overview = strings.Join(overview, " ")
			}
			continue
		}
		if m := bulletPattern.FindStringSubmatch(trimmed); m != nil {
			addEntry(&sections, heading, strings.TrimSpace(m[1]))
			continue
		}
		if m := headingPattern.FindStringSubmatch(trimmed); m != nil {
			heading = strings.ToLower(m[1] + m[2])
			continue
		}
		if sections.Overview == "" {
			overview = append(overview, trimmed)
		}
	}
	if sections.Overview == "" {
		sections.Overview = strings.Join(overview, " ")
	}
	sections.Overview = truncate(sections.Overview, overviewLimit)
	return sections
}

func addEntry(sections *dto.PRDSections, heading, entry string) {
	var target *[]string
	switch {
	case containsAny(heading, "user", "persona", "audience", "customer", "stakeholder"):
		target = &sections.TargetUsers
	case containsAny(heading, "technical", "tech", "stack", "architecture", "non-functional"):
		target = &sections.TechnicalRequirements
	case containsAny(heading, "feature", "functional", "scope", "capabilit"):
		target = &sections.KeyFeatures
	case strings.Contains(heading, "requirement"):
		target = &sections.TechnicalRequirements
	default:
		return
	}
	if len(*target) < maxSectionEntries {
		*target = append(*target, entry)
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	r := []rune(s)
	return strings.TrimSpace(string(r[:limit])) + "…"
}
