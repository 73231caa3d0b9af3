package value

import "fmt"

// SassIndex converts a 1-based, possibly-negative Sass list index (as
// passed to nth() and set-nth()) into a 0-based Go
// index, validating range and rejecting 0 and non-integers along the way.
func SassIndex(index Value, length int) (int, error) {
	n, ok := index.Data.(Number)
	if !ok {
		return 0, fmt.Errorf("$n: %s is not a number", Inspect(index))
	}
	if n.Value != float64(int(n.Value)) {
		return 0, fmt.Errorf("$n: %s is not an integer", n.CSSString())
	}
	i := int(n.Value)
	if i == 0 {
		return 0, fmt.Errorf("$n: List index may not be 0")
	}
	if i < 0 {
		i = length + i + 1
	}
	if i < 1 || i > length {
		return 0, fmt.Errorf("$n: Invalid index %s for a list with %d elements", n.CSSString(), length)
	}
	return i - 1, nil
}
