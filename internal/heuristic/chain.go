// Package heuristic holds the resolution rules that pick a value when
// data sources disagree or leave a gap: fallback chains, versioned
// lookup tables and string-pattern classifiers. Everything here is a
// pure function of its inputs.
package heuristic

// Step proposes a candidate given the best value found so far. Found is
// false until some earlier step produced a value.
type Step[T any] struct {
	Name    string
	Propose func(best T, found bool) (T, bool)
}

// Chain folds its steps left, letting each candidate replace the current
// best when Prefer says so. The first candidate always wins an empty slot.
type Chain[T any] struct {
	Steps  []Step[T]
	Prefer func(candidate, best T) bool
}

// Resolution is the chain outcome.
type Resolution[T any] struct {
	Value  T
	Found  bool
	Source string
}

// Resolve runs every step in order.
func (c Chain[T]) Resolve() Resolution[T] {
	var r Resolution[T]
	for _, step := range c.Steps {
		v, ok := step.Propose(r.Value, r.Found)
		if !ok {
			continue
		}
		if !r.Found || c.Prefer(v, r.Value) {
			r.Value, r.Found, r.Source = v, true, step.Name
		}
	}
	return r
}

// Larger prefers the bigger of two sizes.
func Larger(candidate, best uint64) bool {
	return candidate > best
}
