package pricing

import "github.com/sangkips/quote-engine/internal/domain/entity"

// Observer receives a fresh totals snapshot after each recalculation
type Observer func(Totals)

// Notifier recalculates totals synchronously and reports them to the
// registered observer, if any.
type Notifier struct {
	observer Observer
}

// NewNotifier creates a notifier with an optional observer
func NewNotifier(observer Observer) *Notifier {
	return &Notifier{observer: observer}
}

// Subscribe registers the observer, replacing any previous one.
// Passing nil unsubscribes.
func (n *Notifier) Subscribe(observer Observer) {
	n.observer = observer
}

// Recalculate computes the totals for the given state, delivers them to
// the observer and returns them.
func (n *Notifier) Recalculate(items []entity.LineItem, cfg entity.PricingConfig) Totals {
	totals := ComputeTotals(items, cfg)
	if n.observer != nil {
		n.observer(totals)
	}
	return totals
}
