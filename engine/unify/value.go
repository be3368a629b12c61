package unify

// IsNumber reports whether v is one of the numeric kinds a nature may hold.
func IsNumber(v any) bool {
	_, ok := toFloat(v)
	return ok
}

// Equal is strict trait equality: numbers compare numerically across Go
// numeric types, bools and strings compare by value, and values of
// different kinds are never equal.
func Equal(a, b any) bool {
	if x, ok := toFloat(a); ok {
		y, ok := toFloat(b)
		return ok && x == y
	}
	switch av := a.(type) {
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	default:
		return false
	}
}

// Add sums two numbers. Two ints stay an int; anything else is float64.
func Add(a, b any) any {
	if x, ok := a.(int); ok {
		if y, ok := b.(int); ok {
			return x + y
		}
	}
	x, _ := toFloat(a)
	y, _ := toFloat(b)
	return x + y
}

// sameSignOrZero is true when both numbers share a sign or either is zero.
func sameSignOrZero(a, b any) bool {
	x, _ := toFloat(a)
	y, _ := toFloat(b)
	return (x > 0 && y > 0) || (x < 0 && y < 0) || x == 0 || y == 0
}

// toFloat converts the numeric kinds produced by Go literals and the Lua
// loader to float64.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case float32:
		return float64(n), true
	default:
		return 0, false
	}
}
