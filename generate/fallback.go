package generate

import (
	"fmt"
	"strings"

	"github.com/hairizuan-noorazman/suitegen/render"
	"github.com/hairizuan-noorazman/suitegen/testspec"
)

// keywordSuite couples one keyword group with the fixed test it triggers.
// Groups are evaluated in declaration order and independently, so a
// description can trigger zero to four additional tests.
type keywordSuite struct {
	keywords []string
	build    func(projectLabel string) testspec.TestSpec
}

var keywordSuites = []keywordSuite{
	{
		keywords: []string{"login", "auth", "sign in"},
		build:    loginFlowSpec,
	},
	{
		keywords: []string{"signup", "register", "sign up"},
		build:    signupFlowSpec,
	},
	{
		keywords: []string{"message", "chat", "messaging"},
		build:    messagingSpec,
	},
	{
		keywords: []string{"profile", "user"},
		build:    profileSpec,
	},
}

// Fallback deterministically produces a minimal suite from a free-text
// description. It performs no I/O and cannot fail: every description,
// including the empty string, yields at least the smoke test.
func Fallback(description, projectLabel, baseURL string) []render.RenderedTest {
	specs := []testspec.TestSpec{smokeSpec(projectLabel)}

	lowered := strings.ToLower(description)
	for _, suite := range keywordSuites {
		for _, kw := range suite.keywords {
			if strings.Contains(lowered, kw) {
				specs = append(specs, suite.build(projectLabel))
				break
			}
		}
	}

	rendered := make([]render.RenderedTest, 0, len(specs))
	for i, spec := range specs {
		rendered = append(rendered, render.Test(i, spec, baseURL))
	}
	return rendered
}

func smokeSpec(projectLabel string) testspec.TestSpec {
	return testspec.TestSpec{
		Name:        fmt.Sprintf("%s Smoke Test", projectLabel),
		Description: "Loads the home page and verifies the app renders",
		Steps: testspec.Steps{
			{"type": "navigate", "value": "/"},
			{"type": "wait"},
			{"type": "screenshot", "name": "home"},
			{"type": "assert", "targetSelector": "body"},
		},
	}
}

func loginFlowSpec(projectLabel string) testspec.TestSpec {
	creds := testspec.CredentialFor(testspec.RoleStandardUser)
	return testspec.TestSpec{
		Name:        fmt.Sprintf("%s Login Flow", projectLabel),
		Description: "Signs in with the standard test account",
		Variables: map[string]string{
			"email":    creds.Email,
			"password": creds.Password,
		},
		Steps: testspec.Steps{
			{"type": "navigate", "value": "/login"},
			{"type": "input", "targetSelector": "input[type=email]", "value": "{{email}}"},
			{"type": "input", "targetSelector": "input[type=password]", "value": "{{password}}"},
			{"type": "tap", "targetSelector": "button[type=submit]"},
			{"type": "wait"},
			{"type": "screenshot", "name": "after_login"},
		},
	}
}

func signupFlowSpec(projectLabel string) testspec.TestSpec {
	return testspec.TestSpec{
		Name:        fmt.Sprintf("%s Signup Flow", projectLabel),
		Description: "Registers a new account",
		Steps: testspec.Steps{
			{"type": "navigate", "value": "/signup"},
			{"type": "input", "targetSelector": "input[type=email]", "value": "newuser@example.com"},
			{"type": "input", "targetSelector": "input[type=password]", "value": "new-user-pass-123"},
			{"type": "tap", "targetSelector": "button[type=submit]"},
			{"type": "wait"},
			{"type": "screenshot", "name": "after_signup"},
		},
	}
}

func messagingSpec(projectLabel string) testspec.TestSpec {
	return testspec.TestSpec{
		Name:        fmt.Sprintf("%s Messaging", projectLabel),
		Description: "Sends a message through the primary conversation view",
		Steps: testspec.Steps{
			{"type": "navigate", "value": "/"},
			{"type": "wait"},
			{"type": "input", "targetSelector": "[data-testid=message-input]", "value": "Hello from an automated test", "optional": true},
			{"type": "tap", "targetSelector": "[data-testid=send-button]", "optional": true},
			{"type": "wait"},
			{"type": "screenshot", "name": "messaging"},
		},
	}
}

func profileSpec(projectLabel string) testspec.TestSpec {
	return testspec.TestSpec{
		Name:        fmt.Sprintf("%s Profile", projectLabel),
		Description: "Opens the profile page and verifies it renders",
		Steps: testspec.Steps{
			{"type": "navigate", "value": "/profile"},
			{"type": "wait"},
			{"type": "screenshot", "name": "profile"},
			{"type": "assert", "targetSelector": "body"},
		},
	}
}
