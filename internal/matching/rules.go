package matching

// Rule pairs a predicate with the outcome it selects. Tables of rules are
// evaluated top to bottom and the first match wins, so precedence is the
// table order and nothing else.
type Rule[T any] struct {
	Name string
	When func(Query) bool
	Then T
}

// FirstMatch returns the outcome and name of the first rule whose predicate
// holds. ok is false when no rule matched.
func FirstMatch[T any](rules []Rule[T], q Query) (out T, name string, ok bool) {
	for _, r := range rules {
		if r.When != nil && r.When(q) {
			return r.Then, r.Name, true
		}
	}
	return out, "", false
}

// Terms builds a predicate matching any whole word or word run.
func Terms(terms ...string) func(Query) bool {
	return func(q Query) bool { return q.AnyTerm(terms...) }
}

// Phrases builds a predicate matching any substring.
func Phrases(phrases ...string) func(Query) bool {
	return func(q Query) bool { return q.AnyPhrase(phrases...) }
}

// Either combines predicates with OR.
func Either(preds ...func(Query) bool) func(Query) bool {
	return func(q Query) bool {
		for _, p := range preds {
			if p(q) {
				return true
			}
		}
		return false
	}
}
