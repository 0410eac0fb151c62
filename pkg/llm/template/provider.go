// Package template is an offline provider. It answers every prompt with a
// fixed HTML page that lists the prompt, which keeps previews usable without
// a model server.
package template

import (
	"context"
	"fmt"
	"html"
	"strings"

	"codebenders/pkg/llm"
)

const ModelName = "template"

type Provider struct{}

var _ llm.LLMProvider = Provider{}

func NewProvider() Provider {
	return Provider{}
}

func (Provider) Model() string {
	return ModelName
}

func (p Provider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var prompt string
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == "user" {
			prompt = history[i].Content
			break
		}
	}

	var b strings.Builder
	b.WriteString("```html\n<!DOCTYPE html>\n<html>\n<body>\n<main>\n")
	for _, line := range strings.Split(strings.TrimSpace(prompt), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fmt.Fprintf(&b, "  <p>%s</p>\n", html.EscapeString(line))
	}
	b.WriteString("</main>\n</body>\n</html>\n```")
	return b.String(), nil
}

func (p Provider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, options...)
}
