package panel

import "codebenders/internal/client/wizard"

// Info is the fixed content of a step that has no backend interaction yet.
type Info struct {
	Step     wizard.Step
	Title    string
	Summary  string
	Sections []InfoSection
}

type InfoSection struct {
	Heading string
	Lines   []string
}

var infoPanels = map[wizard.Step]Info{
	wizard.CodeGeneration: {
		Step:    wizard.CodeGeneration,
		Title:   "Code Generation",
		Summary: "Generate application code from your requirements, personas, brand and integrations.",
		Sections: []InfoSection{
			{Heading: "Inputs", Lines: []string{"Requirements document", "Selected personas", "Business rules and data constraints", "Brand design", "Third-party providers"}},
		},
	},
	wizard.Preview: {
		Step:    wizard.Preview,
		Title:   "Preview",
		Summary: "This section will contain preview functionality.",
	},
	wizard.APIFactory: {
		Step:    wizard.APIFactory,
		Title:   "API Factory",
		Summary: "Design and publish the API surface of the generated application.",
	},
	wizard.Deploy: {
		Step:    wizard.Deploy,
		Title:   "Deploy",
		Summary: "Configure the frontend and backend targets and follow the deployment.",
		Sections: []InfoSection{
			{Heading: "Frontend configuration", Lines: []string{"Framework", "Build command", "Output directory"}},
			{Heading: "Deployment logs", Lines: []string{"Deployment logs will appear here"}},
		},
	},
	wizard.ABTesting: {
		Step:    wizard.ABTesting,
		Title:   "A/B Testing",
		Summary: "This section will contain A/B testing tools and analytics.",
	},
}

// InfoFor returns the content of a static step; ok is false for steps that
// have their own controller.
func InfoFor(step wizard.Step) (Info, bool) {
	info, ok := infoPanels[step]
	return info, ok
}
