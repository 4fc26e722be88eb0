package validator

// Registry holds the active rule set in registration order, so repeated
// runs over the same order produce identically ordered findings.
type Registry struct {
	rules []Rule
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends a rule to the registry.
func (r *Registry) Register(rule Rule) {
	r.rules = append(r.rules, rule)
}

// All returns the registered rules in registration order.
func (r *Registry) All() []Rule {
	return r.rules
}
