package panel

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"codebenders/internal/client/wizard"
	"codebenders/internal/dto"
)

const maxPRDFileSize = 2 << 20

var prdFileExtensions = map[string]bool{
	".txt":      true,
	".md":       true,
	".markdown": true,
}

// PRDInput is the requirements form: free text, an attached file, or both.
type PRDInput struct {
	Text     string
	FilePath string
}

type Requirements struct {
	deps *Deps
}

func NewRequirements(deps *Deps) *Requirements {
	return &Requirements{deps: deps}
}

// Submit uploads the combined text and advances to the persona step.
func (r *Requirements) Submit(act wizard.Activation, in PRDInput) (*dto.PRDUploadData, error) {
	text, source, err := combinePRD(in)
	if err != nil {
		return nil, err
	}

	res, err := r.deps.Workspace.UploadPRD(act.Ctx, &dto.PRDUploadRequest{
		Text:   text,
		Source: source,
		Scope:  r.deps.State.Scope(),
	})
	if err != nil {
		return nil, err
	}
	if err := live(act.Ctx); err != nil {
		return nil, err
	}

	r.deps.log().Info(logModule, "PRD uploaded", map[string]interface{}{
		"prd_id":     res.Data.PRDId,
		"word_count": res.Data.WordCount,
	})
	act.Advance()
	return &res.Data, nil
}

func combinePRD(in PRDInput) (string, string, error) {
	text := strings.TrimSpace(in.Text)
	var sources []string
	if text != "" {
		sources = append(sources, "textarea")
	}

	if in.FilePath != "" {
		fileText, err := readPRDFile(in.FilePath)
		if err != nil {
			return "", "", err
		}
		if fileText != "" {
			if text != "" {
				text += "\n\n"
			}
			text += fileText
		}
		sources = append(sources, "file: "+filepath.Base(in.FilePath))
	}

	if strings.TrimSpace(text) == "" {
		return "", "", invalid("text", "Please describe your project or attach a requirements file")
	}
	return text, strings.Join(sources, " + "), nil
}

func readPRDFile(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !prdFileExtensions[ext] {
		return "", invalid("file", fmt.Sprintf("Unsupported file type %q: attach a .txt or .md file", ext))
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", invalid("file", fmt.Sprintf("Cannot read %s", filepath.Base(path)))
	}
	if info.Size() > maxPRDFileSize {
		return "", invalid("file", "Requirements file is larger than 2 MB")
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return "", invalid("file", fmt.Sprintf("Cannot read %s", filepath.Base(path)))
	}
	if !utf8.Valid(content) {
		return "", invalid("file", "Requirements file is not UTF-8 text")
	}
	return strings.TrimSpace(string(content)), nil
}
