package port

import "orderintake/internal/domain"

// ExportRenderer renders an order into export bytes. Implementations
// must be pure functions of order content: the same order produces
// byte-identical output on repeated calls.
type ExportRenderer interface {
	Render(o *domain.Order) ([]byte, error)
}
