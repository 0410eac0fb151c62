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

func TestExtractRecommendations(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    []dto.ProviderRecommendation
		wantErr bool
	}{
		{
			name: "explicit recommendations",
			raw:  `{"success":true,"data":{"provider_recommendations":[{"api_category":"Payments","category":"payment","providers":[{"name":"Stripe","recommended":true}]}]}}`,
			want: []dto.ProviderRecommendation{{
				APICategory: "Payments",
				Category:    "payment",
				Providers:   []dto.ProviderOption{{Name: "Stripe", Recommended: true}},
			}},
		},
		{
			name: "derived from saved apis",
			raw:  `{"success":true,"data":{"apis_saved":[{"name":"Email","category":"email","description":"Send mail","providers":[{"name":"SendGrid","pricing":"free tier"}]}]}}`,
			want: []dto.ProviderRecommendation{{
				APICategory: "Email",
				Category:    "email",
				Description: "Send mail",
				Providers:   []dto.ProviderOption{{Name: "SendGrid", Pricing: "free tier"}},
			}},
		},
		{
			name: "neither",
			raw:  `{"success":true,"data":{}}`,
			want: []dto.ProviderRecommendation{},
		},
		{
			name:    "not json",
			raw:     `<html>`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractRecommendations([]byte(tt.raw))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestThirdPartyFlow(t *testing.T) {
	var providersSent map[string]string
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/get_thirdparty":
			jsonHandler(http.StatusOK, `{"apis":[
				{"name":"Payments","category":"payment","required":true},
				{"name":"Email","category":"email"}
			]}`)(w, r)
		case "/api/upload_thirdparty":
			var req dto.ThirdPartyUploadRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Len(t, req.SelectedAPIs, 1)
			jsonHandler(http.StatusOK, `{"success":true,"data":{"provider_recommendations":[
				{"api_category":"Payments","category":"payment","providers":[{"name":"Stripe"},{"name":"PayPal"}]}
			]}}`)(w, r)
		case "/api/upload_thirdparty_providers":
			var req dto.ProviderUploadRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			providersSent = req.SelectedProviders
			jsonHandler(http.StatusOK, `{"success":true,"data":{"api_key_requirements":[
				{"provider":"PayPal","category":"payment","keys_required":[{"field":"PAYPAL_CLIENT_ID","label":"Client ID"},{"field":"PAYPAL_SECRET","label":"Secret"}]}
			]}}`)(w, r)
		default:
			http.NotFound(w, r)
		}
	})
	nav := wizard.New(context.Background(), wizard.ThirdPartyAPI)
	tp := NewThirdParty(env.deps)

	apis, err := tp.LoadAPIs(nav.Current())
	require.NoError(t, err)
	require.Len(t, apis, 2)
	assert.Equal(t, "api-0-payment", apis[0].Id)

	_, err = tp.SubmitAPIs(nav.Current())
	assert.True(t, IsValidation(err))

	require.NoError(t, tp.ToggleAPI(APIID(0, "payment")))
	recs, err := tp.SubmitAPIs(nav.Current())
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, StageProviders, tp.Stage())
	assert.Equal(t, map[string]string{"payment": "Stripe"}, tp.SelectedProviders())
	assert.Len(t, env.deps.State.ProviderRecommendations(), 1)

	assert.True(t, IsValidation(tp.SelectProvider("payment", "Square")))
	require.NoError(t, tp.SelectProvider("payment", "PayPal"))

	reqs, err := tp.SubmitProviders(nav.Current())
	require.NoError(t, err)
	require.Len(t, reqs, 1)
	assert.Equal(t, map[string]string{"payment": "PayPal"}, providersSent)
	assert.Equal(t, StageKeys, tp.Stage())
	assert.Equal(t, []string{"PAYPAL_CLIENT_ID", "PAYPAL_SECRET"}, tp.MissingKeys())

	require.NoError(t, tp.SetKey("PAYPAL_CLIENT_ID", "id-123"))
	err = tp.SubmitKeys(nav.Current())
	assert.Equal(t, "Please fill in all API keys to continue", Message(err, ""))
	assert.Equal(t, wizard.ThirdPartyAPI, nav.Active())

	calls := env.callCount()
	require.NoError(t, tp.SetKey("PAYPAL_SECRET", " s3cret "))
	require.NoError(t, tp.SubmitKeys(nav.Current()))

	assert.Equal(t, calls, env.callCount(), "keys stay local")
	assert.Equal(t, map[string]string{"PAYPAL_CLIENT_ID": "id-123", "PAYPAL_SECRET": "s3cret"}, env.deps.State.ThirdPartyAPIKeys())
	assert.Equal(t, StageDone, tp.Stage())
	assert.Equal(t, wizard.CodeGeneration, nav.Active())
}

func TestThirdPartyNoAPIsNeeded(t *testing.T) {
	env := newTestEnv(t, jsonHandler(http.StatusOK, `{}`))
	nav := wizard.New(context.Background(), wizard.ThirdPartyAPI)
	tp := NewThirdParty(env.deps)

	apis, err := tp.LoadAPIs(nav.Current())
	require.NoError(t, err)
	assert.Empty(t, apis)

	_, err = tp.SubmitAPIs(nav.Current())
	require.NoError(t, err)
	assert.Equal(t, StageDone, tp.Stage())
	assert.Equal(t, wizard.CodeGeneration, nav.Active())
}

func TestThirdPartyResumeFromState(t *testing.T) {
	env := newTestEnv(t, nil)
	require.NoError(t, env.deps.State.SetAPIKeyRequirements([]dto.APIKeyRequirement{
		{Provider: "Twilio", Category: "sms", KeysRequired: []dto.APIKeyField{{Field: "TWILIO_SID"}}},
	}))
	tp := NewThirdParty(env.deps)

	reqs := tp.LoadKeyRequirements()
	require.Len(t, reqs, 1)
	assert.Equal(t, StageKeys, tp.Stage())
	assert.Equal(t, []string{"TWILIO_SID"}, tp.MissingKeys())
	assert.True(t, IsValidation(tp.SetKey("UNKNOWN", "x")))
}
