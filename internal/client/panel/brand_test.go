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

func TestBrandLoad(t *testing.T) {
	tests := []struct {
		name string
		body string
		want func(t *testing.T, d dto.BrandDesign)
	}{
		{
			name: "nothing saved",
			body: `{}`,
			want: func(t *testing.T, d dto.BrandDesign) {
				assert.Equal(t, DefaultBrandDesign(), d)
			},
		},
		{
			name: "partial design",
			body: `{"brandName":"Acme","tone":"Clear"}`,
			want: func(t *testing.T, d dto.BrandDesign) {
				assert.Equal(t, "Acme", d.BrandName)
				assert.Equal(t, "Clear", d.Tone)
				assert.Equal(t, DefaultBrandDesign().Colors, d.Colors)
				assert.Equal(t, "Montserrat", d.FontFamily)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, jsonHandler(http.StatusOK, tt.body))
			nav := wizard.New(context.Background(), wizard.BrandDesign)

			d, err := NewBrand(env.deps).Load(nav.Current())
			require.NoError(t, err)
			tt.want(t, d)
		})
	}
}

func TestBrandSave(t *testing.T) {
	t.Run("rejects bad colors", func(t *testing.T) {
		env := newTestEnv(t, jsonHandler(http.StatusOK, `{}`))
		nav := wizard.New(context.Background(), wizard.BrandDesign)

		design := DefaultBrandDesign()
		design.Colors.Accent = "blue"
		_, err := NewBrand(env.deps).Save(nav.Current(), design)
		require.Error(t, err)
		assert.True(t, IsValidation(err))
		assert.Zero(t, env.callCount())
		assert.Equal(t, wizard.BrandDesign, nav.Active())
	})

	t.Run("rejects blank name", func(t *testing.T) {
		env := newTestEnv(t, jsonHandler(http.StatusOK, `{}`))
		nav := wizard.New(context.Background(), wizard.BrandDesign)

		design := DefaultBrandDesign()
		design.BrandName = "  "
		_, err := NewBrand(env.deps).Save(nav.Current(), design)
		assert.Equal(t, "Brand name is required", Message(err, ""))
	})

	t.Run("uploads and advances", func(t *testing.T) {
		env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
			var req dto.BrandDesignUploadRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "Acme", req.BrandName)
			assert.Equal(t, "#fff", req.Colors.Foreground)
			jsonHandler(http.StatusOK, `{"success":true,"data":{"brandName":"Acme","next_step":"thirdparty"}}`)(w, r)
		})
		nav := wizard.New(context.Background(), wizard.BrandDesign)

		design := DefaultBrandDesign()
		design.BrandName = "Acme"
		design.Colors.Foreground = "#fff"
		res, err := NewBrand(env.deps).Save(nav.Current(), design)
		require.NoError(t, err)
		assert.Equal(t, "thirdparty", res.NextStep)

		saved := env.deps.State.BrandDesign()
		require.NotNil(t, saved)
		assert.Equal(t, "Acme", saved.BrandName)
		assert.Equal(t, wizard.ThirdPartyAPI, nav.Active())
	})
}
