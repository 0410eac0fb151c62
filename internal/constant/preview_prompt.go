package constant

const (
	LLMRoleSystem = "system"
	LLMRoleUser   = "user"

	PreviewSystemPrompt = `You are a senior frontend engineer who builds clickable prototypes.
Answer with ONE self-contained HTML document (inline CSS, no external assets, no JavaScript frameworks).
Do not explain the result. Do not wrap it in prose.`

	// PreviewUserPrompt takes the screen description, the business rules, the
	// data constraints and the brand section, in that order.
	PreviewUserPrompt = `Build a preview of this screen:
%s

Business rules the screen must respect:
%s

Data constraints the forms must enforce:
%s

%s`

	PreviewBrandSection = `Brand:
- Name: %s
- Colors: primary %s, secondary %s, accent %s, background %s, foreground %s
- Font family: %s
- Voice: %s (%s tone)`

	PreviewNoBrandSection = `Brand: none yet, use a neutral palette.`
)
