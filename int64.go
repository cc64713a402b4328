package anon

// Int64Mapper anonymizes signed 64-bit integers into a caller-chosen
// inclusive range. It is a BoundedIntMapper instantiated over int64.
type Int64Mapper = BoundedIntMapper[int64]

// NewInt64Mapper constructs an Int64Mapper over [lower, upper].
func NewInt64Mapper(lower, upper int64) (*Int64Mapper, error) {
	return NewBoundedIntMapper[int64](lower, upper)
}
