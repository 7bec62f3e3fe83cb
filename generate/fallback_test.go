package generate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBaseURL = "http://localhost:3000"

func TestFallbackAlwaysProducesSmokeTest(t *testing.T) {
	tests := []struct {
		name        string
		description string
	}{
		{"empty description", ""},
		{"no keywords", "a spreadsheet for tracking houseplants"},
		{"whitespace only", "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Fallback(tt.description, "App", testBaseURL)
			require.Len(t, got, 1)
			assert.Equal(t, "01_app_smoke_test.yaml", got[0].FileName)
			assert.Contains(t, got[0].Content, `name: "App Smoke Test"`)
		})
	}
}

func TestFallbackKeywordTriggers(t *testing.T) {
	tests := []struct {
		name        string
		description string
		wantFiles   []string
	}{
		{
			name:        "login keyword",
			description: "An app where users login to see their feed",
			wantFiles:   []string{"01_app_smoke_test.yaml", "02_app_login_flow.yaml"},
		},
		{
			name:        "case insensitive",
			description: "Users must SIGN IN first",
			wantFiles:   []string{"01_app_smoke_test.yaml", "02_app_login_flow.yaml"},
		},
		{
			name:        "signup keyword",
			description: "Visitors can register for an account",
			wantFiles:   []string{"01_app_smoke_test.yaml", "02_app_signup_flow.yaml"},
		},
		{
			name:        "messaging keyword",
			description: "A chat tool for teams",
			wantFiles:   []string{"01_app_smoke_test.yaml", "02_app_messaging.yaml"},
		},
		{
			name:        "profile keyword",
			description: "Each member has a profile page",
			wantFiles:   []string{"01_app_smoke_test.yaml", "02_app_profile.yaml"},
		},
		{
			name:        "multiple groups in order",
			description: "Users sign in, chat with friends, and edit their profile",
			wantFiles: []string{
				"01_app_smoke_test.yaml",
				"02_app_login_flow.yaml",
				"03_app_messaging.yaml",
				"04_app_profile.yaml",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Fallback(tt.description, "App", testBaseURL)
			files := make([]string, 0, len(got))
			for _, r := range got {
				files = append(files, r.FileName)
			}
			assert.Equal(t, tt.wantFiles, files)
		})
	}
}

func TestFallbackKeywordGroupTriggersOnce(t *testing.T) {
	got := Fallback("login with auth so users can sign in", "App", testBaseURL)
	assert.Len(t, got, 2)
}

func TestFallbackLoginUsesStandardCredentials(t *testing.T) {
	got := Fallback("users login here", "App", testBaseURL)
	require.Len(t, got, 2)

	login := got[1].Content
	assert.Contains(t, login, `email: "creator@example.com"`)
	assert.Contains(t, login, `password: "creator-pass-123"`)
	assert.Contains(t, login, "{{email}}")
	assert.Contains(t, login, "{{password}}")
}

func TestFallbackEmbedsProjectLabelAndBaseURL(t *testing.T) {
	got := Fallback("", "Acme Portal", "https://staging.acme.dev")
	require.Len(t, got, 1)
	assert.Equal(t, "01_acme_portal_smoke_test.yaml", got[0].FileName)
	assert.Contains(t, got[0].Content, `baseUrl: "https://staging.acme.dev"`)
}
