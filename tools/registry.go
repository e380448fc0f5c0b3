// Package tools provides a metadata-driven registry for MCP tool definitions.
// It reduces boilerplate in main.go by defining tools declaratively and
// using type-safe handlers to register them.
package tools

// ToolSpec defines a tool's metadata for declarative registration.
// Each spec maps to a handler method with matching Args/Result types.
type ToolSpec struct {
	// Name is the MCP tool name (e.g., "linear_create_issue")
	Name string

	// Method is the handler method name (e.g., "CreateIssue")
	Method string

	// Description is the tool description shown to LLMs
	Description string

	// Title is the human-readable tool title for annotations
	Title string

	// Family groups tools logically (issues, projects, teams, users, auth)
	Family string

	// ReadOnly indicates the tool doesn't modify workspace state
	ReadOnly bool

	// Destructive indicates the tool can delete or overwrite data
	Destructive bool

	// Idempotent indicates repeated calls have the same effect
	Idempotent bool

	// OpenWorld indicates the tool accesses external resources
	OpenWorld bool
}

// ToolsByFamily returns the specs belonging to one tool family.
func ToolsByFamily(family string) []ToolSpec {
	var specs []ToolSpec
	for _, spec := range AllTools {
		if spec.Family == family {
			specs = append(specs, spec)
		}
	}
	return specs
}

// ptr is a helper to create a pointer to a value.
func ptr[T any](v T) *T {
	return &v
}
