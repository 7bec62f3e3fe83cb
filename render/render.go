// Package render turns in-memory test specs into the YAML test-definition
// format consumed by the external runner.
package render

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/hairizuan-noorazman/suitegen/testspec"
)

// RenderedTest is the textual artifact produced from one TestSpec.
type RenderedTest struct {
	FileName string `json:"file_name"`
	Content  string `json:"content"`
}

// Test renders a spec into a named artifact. The index gives rendered suites a
// stable on-disk ordering.
func Test(index int, spec testspec.TestSpec, baseURL string) RenderedTest {
	return RenderedTest{
		FileName: FileName(index, spec.Name),
		Content:  Content(spec, baseURL),
	}
}

// Content renders a spec to YAML text. It is deterministic and pure: the same
// spec and baseURL always yield byte-identical output. Key order is fixed:
// name, platform, config.web.baseUrl, config.web.headless, variables, steps.
// Steps with unrecognized types are skipped, so the emitted step count may be
// lower than the input step count.
func Content(spec testspec.TestSpec, baseURL string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "name: %s\n", quote(spec.Name))
	b.WriteString("platform: web\n")
	b.WriteString("config:\n")
	b.WriteString("  web:\n")
	fmt.Fprintf(&b, "    baseUrl: %s\n", quote(baseURL))
	b.WriteString("    headless: false\n")

	if len(spec.Variables) > 0 {
		b.WriteString("variables:\n")
		keys := make([]string, 0, len(spec.Variables))
		for k := range spec.Variables {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "  %s: %s\n", k, quote(spec.Variables[k]))
		}
	}

	emitted := false
	for _, step := range spec.Steps {
		block := stepBlock(step)
		if block == "" {
			continue
		}
		if !emitted {
			b.WriteString("steps:\n")
			emitted = true
		}
		b.WriteString(block)
	}
	if !emitted {
		b.WriteString("steps: []\n")
	}

	return b.String()
}

// stepBlock renders one step, or returns "" for unrecognized types.
func stepBlock(step testspec.Step) string {
	var b strings.Builder

	switch step.Kind() {
	case testspec.KindNavigate:
		b.WriteString("  - type: navigate\n")
		fmt.Fprintf(&b, "    value: %s\n", quote(step.String("value")))

	case testspec.KindWait:
		b.WriteString("  - type: wait\n")
		timeout := step.Int("timeoutMs", testspec.DefaultWaitTimeoutMs)
		// The runner expects an unsigned timeout.
		if timeout < 0 {
			timeout = testspec.DefaultWaitTimeoutMs
		}
		fmt.Fprintf(&b, "    timeoutMs: %d\n", timeout)

	case testspec.KindInput:
		b.WriteString("  - type: input\n")
		fmt.Fprintf(&b, "    targetSelector: %s\n", quote(step.String("targetSelector")))
		fmt.Fprintf(&b, "    value: %s\n", quote(step.String("value")))
		fmt.Fprintf(&b, "    optional: %t\n", step.Bool("optional", false))

	case testspec.KindTap:
		b.WriteString("  - type: tap\n")
		fmt.Fprintf(&b, "    targetSelector: %s\n", quote(step.String("targetSelector")))
		fmt.Fprintf(&b, "    optional: %t\n", step.Bool("optional", false))

	case testspec.KindScreenshot:
		b.WriteString("  - type: screenshot\n")
		fmt.Fprintf(&b, "    name: %s\n", quote(step.String("name")))

	case testspec.KindAssert:
		b.WriteString("  - type: assert\n")
		fmt.Fprintf(&b, "    targetSelector: %s\n", quote(step.String("targetSelector")))

	default:
		return ""
	}

	return b.String()
}

// quote wraps a value in double quotes, escaping backslashes and embedded
// quotes so interpolated content cannot corrupt the emitted YAML.
func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}

// FileName builds the on-disk name for a rendered test: a two-digit index
// prefix followed by the snake_cased test name.
func FileName(index int, name string) string {
	return fmt.Sprintf("%02d_%s.yaml", index+1, slug(name))
}

// slug lowercases a test name and reduces it to [a-z0-9_], collapsing runs of
// other characters into single underscores.
func slug(name string) string {
	var b strings.Builder
	lastUnderscore := true
	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastUnderscore = false
		case !lastUnderscore:
			b.WriteRune('_')
			lastUnderscore = true
		}
	}
	out := strings.Trim(b.String(), "_")
	if out == "" {
		return "test"
	}
	if runes := []rune(out); len(runes) > 100 {
		out = string(runes[:100])
	}
	return out
}
