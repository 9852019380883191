// Package pagination resolves limit/offset query parameters.
package pagination

const (
	DefaultLimit = 50
	MaxLimit     = 100
)

// Resolve applies defaults and the upper bound to optional limit/offset values.
// A missing or zero limit becomes DefaultLimit; limits above MaxLimit are capped.
// A missing offset becomes 0. Negative values are rejected before this point.
func Resolve(limit, offset *int) (int, int) {
	l := DefaultLimit
	if limit != nil && *limit > 0 {
		l = *limit
	}
	if l > MaxLimit {
		l = MaxLimit
	}

	o := 0
	if offset != nil && *offset > 0 {
		o = *offset
	}
	return l, o
}
