package anon

// Uint64Mapper anonymizes unsigned 64-bit integers into a caller-chosen
// inclusive range. It is a BoundedIntMapper instantiated over uint64.
type Uint64Mapper = BoundedIntMapper[uint64]

// NewUint64Mapper constructs a Uint64Mapper over [lower, upper].
func NewUint64Mapper(lower, upper uint64) (*Uint64Mapper, error) {
	return NewBoundedIntMapper[uint64](lower, upper)
}
