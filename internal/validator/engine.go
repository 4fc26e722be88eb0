package validator

import (
	"log/slog"

	"orderintake/internal/domain"
)

// Result partitions findings by target: order-level issues plus one
// issue list per item, indexed like the input items.
type Result struct {
	OrderIssues []domain.ValidationIssue
	ItemIssues  [][]domain.ValidationIssue
}

// Engine runs every registered rule against an order. Rules never short
// circuit: a blocked order still reports everything that is wrong with
// it, so the reviewer sees the full picture in one pass.
type Engine struct {
	registry *Registry
}

// NewEngine creates an Engine over a rule registry.
func NewEngine(registry *Registry) *Engine {
	return &Engine{registry: registry}
}

// NewDefaultEngine creates an Engine with the built-in rule set.
func NewDefaultEngine() *Engine {
	reg := NewRegistry()
	for _, rule := range BuiltinRules() {
		reg.Register(rule)
	}
	return NewEngine(reg)
}

// Run evaluates all rules and partitions the findings.
func (e *Engine) Run(in *Input) *Result {
	res := &Result{ItemIssues: make([][]domain.ValidationIssue, len(in.Items))}
	for _, rule := range e.registry.All() {
		for _, f := range rule.Validate(in) {
			if f.ItemIndex == OrderLevel {
				res.OrderIssues = append(res.OrderIssues, f.Issue)
				continue
			}
			if f.ItemIndex >= 0 && f.ItemIndex < len(res.ItemIssues) {
				res.ItemIssues[f.ItemIndex] = append(res.ItemIssues[f.ItemIndex], f.Issue)
			}
		}
	}
	slog.Debug("validation complete",
		"order_issues", len(res.OrderIssues),
		"items", len(in.Items),
	)
	return res
}
