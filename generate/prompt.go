package generate

import "fmt"

// BuildPrompt constructs the instructional prompt sent to a provider. The
// template constrains the model to the exact step vocabulary the renderer
// understands and asks for a bare JSON array so extraction stays simple.
// XML-style tags keep a clear boundary between instructions and user data.
func BuildPrompt(description, baseURL string) string {
	return fmt.Sprintf(`Generate end-to-end web UI test specifications for the application described below.

<app_description>
%s
</app_description>

<base_url>%s</base_url>

<requirements>
- Return ONLY a JSON array of test objects, no markdown formatting, no explanatory text
- Generate between 3 and 8 tests covering the application's main flows
- Each test object has: "name" (string), "description" (string), "steps" (array)
- Each step object has a "type" field; use ONLY these step types:
  - navigate: go to a path (requires "value" field, e.g. "/login")
  - wait: pause execution (optional "timeoutMs" field, default 2000)
  - input: type text into a field (requires "targetSelector" and "value" fields, optional "optional" boolean)
  - tap: click an element (requires "targetSelector" field, optional "optional" boolean)
  - screenshot: capture a screenshot (requires "name" field)
  - assert: verify an element is present (requires "targetSelector" field)
- Use CSS selectors for all targetSelector fields
- All navigate values are paths relative to the base URL
- Start every test by navigating to a page and end it with a screenshot
</requirements>`, description, baseURL)
}
