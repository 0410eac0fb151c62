package panel

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codebenders/internal/client/wizard"
	"codebenders/internal/dto"
)

func writeFile(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, content, 0o600))
	return path
}

func TestCombinePRD(t *testing.T) {
	md := writeFile(t, "shop.md", []byte("# Shop\nSell things\n"))

	tests := []struct {
		name       string
		in         PRDInput
		wantText   string
		wantSource string
		wantErr    string
	}{
		{name: "text only", in: PRDInput{Text: "  A shop  "}, wantText: "A shop", wantSource: "textarea"},
		{name: "file only", in: PRDInput{FilePath: md}, wantText: "# Shop\nSell things", wantSource: "file: shop.md"},
		{name: "both", in: PRDInput{Text: "Intro", FilePath: md}, wantText: "Intro\n\n# Shop\nSell things", wantSource: "textarea + file: shop.md"},
		{name: "nothing", in: PRDInput{Text: "   "}, wantErr: "Please describe your project or attach a requirements file"},
		{name: "wrong extension", in: PRDInput{FilePath: writeFile(t, "shop.pdf", []byte("x"))}, wantErr: `Unsupported file type ".pdf": attach a .txt or .md file`},
		{name: "not utf8", in: PRDInput{FilePath: writeFile(t, "bin.txt", []byte{0xff, 0xfe, 0xfd})}, wantErr: "Requirements file is not UTF-8 text"},
		{name: "too large", in: PRDInput{FilePath: writeFile(t, "big.txt", []byte(strings.Repeat("a", maxPRDFileSize+1)))}, wantErr: "Requirements file is larger than 2 MB"},
		{name: "missing file", in: PRDInput{FilePath: filepath.Join(t.TempDir(), "none.md")}, wantErr: "Cannot read none.md"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, source, err := combinePRD(tt.in)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.True(t, IsValidation(err))
				assert.Equal(t, tt.wantErr, err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantText, text)
			assert.Equal(t, tt.wantSource, source)
		})
	}
}

func TestRequirementsSubmit(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		var req dto.PRDUploadRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "A marketplace for bikes", req.Text)
		assert.Equal(t, "textarea", req.Source)
		if assert.NotNil(t, req.ProjectId) {
			assert.Equal(t, "p-1", *req.ProjectId)
		}
		assert.Nil(t, req.UserId)
		jsonHandler(http.StatusOK, `{"success":true,"data":{"prd_id":"prd-1","word_count":4}}`)(w, r)
	})
	require.NoError(t, env.deps.State.SetCurrentProject(dto.Project{Id: "p-1"}))
	nav := wizard.New(context.Background(), wizard.Requirements)

	data, err := NewRequirements(env.deps).Submit(nav.Current(), PRDInput{Text: "A marketplace for bikes"})
	require.NoError(t, err)
	assert.Equal(t, "prd-1", data.PRDId)
	assert.Equal(t, wizard.UserPersona, nav.Active())
}

func TestRequirementsSubmitFailureStays(t *testing.T) {
	env := newTestEnv(t, jsonHandler(http.StatusBadRequest, `{"detail":"PRD text cannot be empty"}`))
	nav := wizard.New(context.Background(), wizard.Requirements)

	_, err := NewRequirements(env.deps).Submit(nav.Current(), PRDInput{Text: "x"})
	require.Error(t, err)
	assert.Equal(t, "PRD text cannot be empty", Message(err, ""))
	assert.Equal(t, wizard.Requirements, nav.Active())
}
