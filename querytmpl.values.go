package querytmpl

// ResizeValues returns a new slice of length n holding values by position.
// Missing positions are nil and extra values are dropped.
func ResizeValues(values []Value, n int) []Value {
	if n < 0 {
		n = 0
	}
	out := make([]Value, n)
	copy(out, values)
	return out
}

// SyncValues sizes values to the placeholder count of result. Existing entries
// keep their position; positions added at the end are seeded from defaults.
func SyncValues(result *ParseResult, values []Value, defaults []Value) []Value {
	if result == nil {
		return []Value{}
	}
	n := len(result.Placeholders)
	out := ResizeValues(values, n)
	for i := len(values); i < n && i < len(defaults); i++ {
		out[i] = defaults[i]
	}
	return out
}

// ValueAsString is the text-input view of a value: nil is empty and lists
// are comma-joined.
func ValueAsString(v Value) string {
	if v == nil {
		return ""
	}
	return v.String()
}

// ValueAsNumber is the number-input view of a value. Anything non-numeric
// reads as 0.
func ValueAsNumber(v Value) float64 {
	f, ok := NumericValue(v)
	if !ok {
		return 0
	}
	return f
}

// ValueAsStrings is the tags-input view of a value. Text is split on commas;
// nil and numbers are empty.
func ValueAsStrings(v Value) []string {
	tags := TagsOf(v)
	if tags == nil {
		return []string{}
	}
	return append([]string(nil), tags...)
}

// ToggleTag adds tag to the tag view of v, or removes it when already present.
func ToggleTag(v Value, tag string) List {
	tags := ValueAsStrings(v)
	out := make(List, 0, len(tags)+1)
	found := false
	for _, t := range tags {
		if t == tag {
			found = true
			continue
		}
		out = append(out, t)
	}
	if !found {
		out = append(out, tag)
	}
	return out
}
