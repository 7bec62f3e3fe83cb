package render

import (
	"strings"
	"testing"

	"github.com/hairizuan-noorazman/suitegen/testspec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func loginSpec() testspec.TestSpec {
	return testspec.TestSpec{
		Name: "Login Flow",
		Variables: map[string]string{
			"password": "creator-pass-123",
			"email":    "creator@example.com",
		},
		Steps: testspec.Steps{
			{"type": "navigate", "value": "/login"},
			{"type": "input", "targetSelector": "#email", "value": "{{email}}"},
			{"type": "input", "targetSelector": "#password", "value": "{{password}}"},
			{"type": "tap", "targetSelector": "button[type=submit]"},
			{"type": "wait", "timeoutMs": float64(3000)},
			{"type": "screenshot", "name": "after-login"},
			{"type": "assert", "targetSelector": ".dashboard"},
		},
	}
}

func TestContentIsDeterministic(t *testing.T) {
	spec := loginSpec()
	first := Content(spec, "http://localhost:3000")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Content(spec, "http://localhost:3000"))
	}
}

func TestContentLayout(t *testing.T) {
	got := Content(loginSpec(), "http://localhost:3000")

	expected := `name: "Login Flow"
platform: web
config:
  web:
    baseUrl: "http://localhost:3000"
    headless: false
variables:
  email: "creator@example.com"
  password: "creator-pass-123"
steps:
  - type: navigate
    value: "/login"
  - type: input
    targetSelector: "#email"
    value: "{{email}}"
    optional: false
  - type: input
    targetSelector: "#password"
    value: "{{password}}"
    optional: false
  - type: tap
    targetSelector: "button[type=submit]"
    optional: false
  - type: wait
    timeoutMs: 3000
  - type: screenshot
    name: "after-login"
  - type: assert
    targetSelector: ".dashboard"
`
	assert.Equal(t, expected, got)
}

func TestContentIsParseableYAML(t *testing.T) {
	got := Content(loginSpec(), "http://localhost:3000")

	var doc struct {
		Name     string `yaml:"name"`
		Platform string `yaml:"platform"`
		Config   struct {
			Web struct {
				BaseURL  string `yaml:"baseUrl"`
				Headless bool   `yaml:"headless"`
			} `yaml:"web"`
		} `yaml:"config"`
		Variables map[string]string        `yaml:"variables"`
		Steps     []map[string]interface{} `yaml:"steps"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(got), &doc))

	assert.Equal(t, "Login Flow", doc.Name)
	assert.Equal(t, "web", doc.Platform)
	assert.Equal(t, "http://localhost:3000", doc.Config.Web.BaseURL)
	assert.False(t, doc.Config.Web.Headless)
	assert.Equal(t, "creator@example.com", doc.Variables["email"])
	assert.Len(t, doc.Steps, 7)
	assert.Equal(t, "navigate", doc.Steps[0]["type"])
}

func TestContentSkipsUnrecognizedSteps(t *testing.T) {
	spec := testspec.TestSpec{
		Name: "Mixed",
		Steps: testspec.Steps{
			{"type": "navigate", "value": "/"},
			{"type": "hover", "targetSelector": ".menu"},
			{"type": "screenshot", "name": "home"},
		},
	}
	got := Content(spec, "http://localhost:3000")

	assert.Equal(t, 2, strings.Count(got, "  - type:"))
	assert.NotContains(t, got, "hover")
}

func TestContentEmptySteps(t *testing.T) {
	spec := testspec.TestSpec{Name: "Empty"}
	got := Content(spec, "http://localhost:3000")

	assert.Contains(t, got, "steps: []\n")
	assert.NotContains(t, got, "variables:")

	var doc map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(got), &doc))
	assert.Empty(t, doc["steps"])
}

func TestContentAllUnrecognizedStepsYieldsEmptyList(t *testing.T) {
	spec := testspec.TestSpec{
		Name:  "Nothing Usable",
		Steps: testspec.Steps{{"type": "hover"}, {"type": "scroll"}},
	}
	assert.Contains(t, Content(spec, "http://localhost:3000"), "steps: []\n")
}

func TestContentWaitDefaultTimeout(t *testing.T) {
	spec := testspec.TestSpec{
		Name:  "Waiting",
		Steps: testspec.Steps{{"type": "wait"}},
	}
	assert.Contains(t, Content(spec, "http://localhost:3000"), "timeoutMs: 2000\n")
}

func TestContentWaitNegativeTimeoutClamped(t *testing.T) {
	spec := testspec.TestSpec{
		Name:  "Waiting",
		Steps: testspec.Steps{{"type": "wait", "timeoutMs": float64(-5)}},
	}
	assert.Contains(t, Content(spec, "http://localhost:3000"), "timeoutMs: 2000\n")
}

func TestQuoteEscapesEmbeddedQuotesAndBackslashes(t *testing.T) {
	spec := testspec.TestSpec{
		Name: `He said "hello"`,
		Steps: testspec.Steps{
			{"type": "input", "targetSelector": `input[name="q"]`, "value": `C:\temp`},
		},
	}
	got := Content(spec, "http://localhost:3000")

	assert.Contains(t, got, `name: "He said \"hello\""`)
	assert.Contains(t, got, `targetSelector: "input[name=\"q\"]"`)
	assert.Contains(t, got, `value: "C:\\temp"`)

	var doc struct {
		Name  string                   `yaml:"name"`
		Steps []map[string]interface{} `yaml:"steps"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(got), &doc))
	assert.Equal(t, `He said "hello"`, doc.Name)
	assert.Equal(t, `C:\temp`, doc.Steps[0]["value"])
}

func TestFileName(t *testing.T) {
	tests := []struct {
		index int
		name  string
		want  string
	}{
		{0, "Login Flow", "01_login_flow.yaml"},
		{1, "Sign-Up!", "02_sign_up.yaml"},
		{9, "  ", "10_test.yaml"},
		{2, "___", "03_test.yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FileName(tt.index, tt.name))
		})
	}
}

func TestFileNameTruncatesLongNames(t *testing.T) {
	long := strings.Repeat("a", 300)
	got := FileName(0, long)
	assert.Equal(t, "01_"+strings.Repeat("a", 100)+".yaml", got)
}
