package kitcompanion

// FilterByDifficulty returns the examples matching the difficulty filter,
// preserving source order. The FilterAll sentinel disables filtering. An
// empty result is a normal state, rendered as "no examples".
func FilterByDifficulty(examples []ScamExample, filter string) []ScamExample {
	if filter == FilterAll || filter == "" {
		return examples
	}
	filtered := make([]ScamExample, 0, len(examples))
	for _, example := range examples {
		if string(example.Difficulty) == filter {
			filtered = append(filtered, example)
		}
	}
	return filtered
}

// FindExample locates an example by ID within one category's collection.
// The detail view is only reachable with an example that belongs to the
// selected category, so lookup never crosses categories.
func FindExample(examples []ScamExample, id string) (ScamExample, bool) {
	for _, example := range examples {
		if example.ID == id {
			return example, true
		}
	}
	return ScamExample{}, false
}
