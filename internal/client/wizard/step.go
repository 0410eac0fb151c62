package wizard

import (
	"fmt"
	"strings"
)

// Step names a wizard screen. The value is the label shown in the sidebar.
type Step string

const (
	Requirements      Step = "Requirements"
	UserPersona       Step = "User Persona"
	BusinessLogic     Step = "Business Logic Editor"
	BrandDesign       Step = "Brand Design"
	ThirdPartyAPI     Step = "3rd Party API"
	CodeGeneration    Step = "Code Generation"
	Preview           Step = "Preview"
	APIFactory        Step = "API Factory"
	Deploy            Step = "Deploy"
	ABTesting         Step = "A/B Testing"
	PerformanceReport Step = "Performance Report"
)

var steps = []Step{
	Requirements,
	UserPersona,
	BusinessLogic,
	BrandDesign,
	ThirdPartyAPI,
	CodeGeneration,
	Preview,
	APIFactory,
	Deploy,
	ABTesting,
	PerformanceReport,
}

// Steps returns the wizard steps in order.
func Steps() []Step {
	out := make([]Step, len(steps))
	copy(out, steps)
	return out
}

// Index is the zero-based position of s, or -1 when s is not a step.
func (s Step) Index() int {
	for i, step := range steps {
		if step == s {
			return i
		}
	}
	return -1
}

func (s Step) Valid() bool {
	return s.Index() >= 0
}

// Next returns the step after s; ok is false for the last step.
func (s Step) Next() (Step, bool) {
	i := s.Index()
	if i < 0 || i == len(steps)-1 {
		return s, false
	}
	return steps[i+1], true
}

func (s Step) String() string {
	return string(s)
}

// ParseStep accepts a sidebar label (case-insensitive), a slug such as
// "user-persona", or a 1-based position.
func ParseStep(name string) (Step, error) {
	trimmed := strings.TrimSpace(name)
	var pos int
	if _, err := fmt.Sscanf(trimmed, "%d", &pos); err == nil && fmt.Sprint(pos) == trimmed {
		if pos >= 1 && pos <= len(steps) {
			return steps[pos-1], nil
		}
		return "", fmt.Errorf("unknown wizard step %q", name)
	}

	for _, step := range steps {
		if strings.EqualFold(trimmed, string(step)) || strings.EqualFold(trimmed, step.Slug()) {
			return step, nil
		}
	}
	return "", fmt.Errorf("unknown wizard step %q", name)
}

// Slug is the lower-case, dash-separated form used on the command line.
func (s Step) Slug() string {
	r := strings.NewReplacer(" ", "-", "/", "")
	return strings.ToLower(r.Replace(string(s)))
}
