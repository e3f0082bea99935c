package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category   Category
	Message    string
	Detail     string
	Suggestion string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// Runtime errors (R001-R099)
	"R001": {
		Category:   CategoryLifecycle,
		Message:    "Use after dispose",
		Detail:     "A signal, memo or effect handle was used after its owning scope was disposed.",
		Suggestion: "Stop reading the handle when the scope that created it is torn down.",
	},
	"R002": {
		Category:   CategoryPropagation,
		Message:    "Propagation cycle",
		Detail:     "Signal writes kept scheduling effects past the configured iteration bound.",
		Suggestion: "Check for an effect that writes a signal it also reads, or raise max_iterations.",
	},
	"R003": {
		Category: CategoryAsync,
		Message:  "Resource loader failed",
		Detail:   "The resource loader returned an error.",
	},
	"R004": {
		Category: CategoryAsync,
		Message:  "Action mutator failed",
		Detail:   "The action mutator returned an error.",
	},
	"R005": {
		Category:   CategoryContext,
		Message:    "Context value not found",
		Detail:     "No scope in the chain provides a value for the requested key.",
		Suggestion: "Call Provide on an ancestor scope before Use.",
	},
	"R006": {
		Category:   CategoryPropagation,
		Message:    "Duplicate key",
		Detail:     "Keys must be unique within one reconciliation pass.",
		Suggestion: "Derive keys from a stable identity rather than item content or position.",
	},

	// Configuration errors (C001-C099)
	"C001": {
		Category: CategoryConfig,
		Message:  "Invalid configuration",
	},
	"C002": {
		Category: CategoryConfig,
		Message:  "Configuration file unreadable",
	},
	"C003": {
		Category:   CategoryConfig,
		Message:    "Configuration file not found",
		Suggestion: "Create reactor.json or reactor.yaml, or pass --config.",
	},

	// CLI errors (X001-X099)
	"X001": {
		Category:   CategoryCLI,
		Message:    "Unknown demo",
		Suggestion: "Run `reactor demo --list` to see the available demos.",
	},
}

// Lookup returns the template registered for code.
func Lookup(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
