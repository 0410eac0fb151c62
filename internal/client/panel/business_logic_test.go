package panel

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codebenders/internal/client/wizard"
	"codebenders/internal/dto"
)

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "html fence", in: "```html\n<div>Hi</div>\n```", want: "<div>Hi</div>"},
		{name: "bare fence", in: "```\n<p>x</p>\n```", want: "<p>x</p>"},
		{name: "surrounding whitespace", in: "  \n```html\n<b>ok</b>\n```  \n", want: "<b>ok</b>"},
		{name: "no fence", in: "  <div>plain</div> ", want: "<div>plain</div>"},
		{name: "inner fence kept", in: "<pre>```x```</pre>", want: "<pre>```x```</pre>"},
		{name: "crlf", in: "```html\r\n<i>y</i>\r\n```", want: "<i>y</i>"},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripCodeFences(tt.in))
		})
	}
}

func TestConstraintDrafts(t *testing.T) {
	env := newTestEnv(t, jsonHandler(http.StatusOK, `{}`))
	b := NewBusinessLogic(env.deps)

	require.NoError(t, b.Add(BusinessRule, "Orders over $100 ship free"))
	require.NoError(t, b.Add(BusinessRule, "Refunds within 30 days"))
	require.NoError(t, b.Add(DataConstraint, "Email is unique"))

	require.NoError(t, b.Update(BusinessRule, 1, "Refunds within 14 days"))
	require.NoError(t, b.Remove(BusinessRule, 0))

	assert.True(t, IsValidation(b.Add(DataConstraint, "   ")))
	assert.True(t, IsValidation(b.Remove(DataConstraint, 5)))
	assert.True(t, IsValidation(b.Add("other", "x")))

	c := NewBusinessLogic(env.deps).Constraints()
	assert.Equal(t, []string{"Refunds within 14 days"}, c.BusinessRules)
	assert.Equal(t, []string{"Email is unique"}, c.DataConstraints)
	assert.Zero(t, env.callCount())
}

func TestGeneratePreview(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		var req dto.PreviewRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Checkout page", req.Description)
		assert.Equal(t, []string{"No guest checkout"}, req.BusinessRules)
		jsonHandler(http.StatusOK, `{"content":"`+"```html\\n<form></form>\\n```"+`","model":"llama3"}`)(w, r)
	})
	nav := wizard.New(context.Background(), wizard.BusinessLogic)

	b := NewBusinessLogic(env.deps)
	require.NoError(t, b.Add(BusinessRule, "No guest checkout"))

	html, err := b.GeneratePreview(nav.Current(), " Checkout page ")
	require.NoError(t, err)
	assert.Equal(t, "<form></form>", html)
	assert.Equal(t, html, b.Preview())

	// Generating a preview never moves the wizard.
	assert.Equal(t, wizard.BusinessLogic, nav.Active())
	assert.True(t, b.Continue(nav.Current()))
	assert.Equal(t, wizard.BrandDesign, nav.Active())
}

func TestGeneratePreviewRequiresDescription(t *testing.T) {
	env := newTestEnv(t, jsonHandler(http.StatusOK, `{}`))
	nav := wizard.New(context.Background(), wizard.BusinessLogic)

	_, err := NewBusinessLogic(env.deps).GeneratePreview(nav.Current(), "")
	assert.True(t, IsValidation(err))
	assert.Zero(t, env.callCount())
}
