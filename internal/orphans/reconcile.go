package orphans

// Result is the outcome of one reconciliation.
type Result struct {
	Known    PathSet
	Observed PathSet
	// Orphaned holds Observed minus Known in walk order.
	Orphaned []string
	// Exclusive holds the symmetric difference of Known and Observed, sorted.
	Exclusive     []string
	ObservedEmpty bool
}

// Reconcile compares the walked media root against the known set. observed is
// expected in walk order; repeats are collapsed to their first position.
func Reconcile(known PathSet, observed []string) Result {
	if known == nil {
		known = make(PathSet)
	}
	result := Result{
		Known:    known,
		Observed: make(PathSet, len(observed)),
	}
	for _, p := range observed {
		if !result.Observed.Add(p) {
			continue
		}
		if !known.Has(p) {
			result.Orphaned = append(result.Orphaned, p)
		}
	}
	result.ObservedEmpty = result.Observed.Len() == 0
	result.Exclusive = known.SymmetricDifference(result.Observed).Sorted()
	return result
}
