package scope

// Scope is a remote content category queried independently per workspace.
type Scope struct {
	Value   string `json:"value" yaml:"value"`
	Display string `json:"display" yaml:"display"`
}

// Known scope values.
const (
	Assets = "assets"
	Forms  = "forms"
	Pages  = "pages"
	Tasks  = "tasks"
)

var registry = []Scope{
	{Value: Assets, Display: "Assets"},
	{Value: Forms, Display: "Forms"},
	{Value: Pages, Display: "Pages"},
	{Value: Tasks, Display: "Tasks"},
}

// All returns every registered scope in display order.
func All() []Scope {
	out := make([]Scope, len(registry))
	copy(out, registry)
	return out
}

// Values returns the registered scope values in display order.
func Values() []string {
	out := make([]string, len(registry))
	for i, s := range registry {
		out[i] = s.Value
	}
	return out
}

// Baseline returns the scopes queried when none are configured.
func Baseline() []Scope {
	return []Scope{registry[0], registry[1]}
}

// Lookup resolves a scope value against the registry.
func Lookup(value string) (Scope, bool) {
	for _, s := range registry {
		if s.Value == value {
			return s, true
		}
	}
	return Scope{}, false
}

// Display returns the display label for value, or value itself if unregistered.
func Display(value string) string {
	if s, ok := Lookup(value); ok {
		return s.Display
	}
	return value
}
