package slip10

// Scalar is an element of a curve's scalar field, usable as a secret
// exponent. Implementations are supplied by a curve package; operands
// passed to Add and Equal must come from the same implementation.
type Scalar interface {
	// Add returns the sum of the scalar and other, reduced modulo the
	// group order. Neither operand is modified.
	Add(other Scalar) Scalar

	// IsZero returns true iff the scalar is the additive identity.
	IsZero() bool

	// Equal returns true iff the scalar equals other.
	Equal(other Scalar) bool

	// Bytes returns the fixed-width big-endian encoding of the scalar.
	Bytes() []byte

	// Zero overwrites the scalar's storage with zeroes.
	Zero()
}

// Point is an element of a curve's group, usable as a public key.
type Point interface {
	// Add returns the group sum of the point and other. Neither operand
	// is modified.
	Add(other Point) Point

	// IsIdentity returns true iff the point is the group identity.
	IsIdentity() bool

	// Equal returns true iff the point equals other.
	Equal(other Point) bool

	// Bytes returns the fixed-width compressed encoding of the point.
	Bytes() []byte
}

// Curve is the elliptic curve group capability consumed by the
// derivation routines. Concrete curves are separate packages selected
// by the caller; the routines never branch on a curve identifier.
type Curve interface {
	// Name returns the SLIP-0010 registry name of the curve.
	Name() string

	// SeedTag returns the curve's SLIP-0010 domain-separation tag, used
	// as the HMAC key for master key derivation. Using anything other
	// than the published registry value produces keys that are
	// internally consistent but incompatible with every other
	// conformant implementation.
	SeedTag() []byte

	// Order returns the big-endian encoding of the group order.
	Order() []byte

	// ScalarSize returns the size of an encoded scalar in bytes.
	ScalarSize() int

	// PointSize returns the size of an encoded compressed point in bytes.
	PointSize() int

	// ParseScalar decodes a fixed-width big-endian scalar. It returns
	// ErrInvalidScalar if b has the wrong length or encodes a value
	// greater than or equal to the group order. Zero is accepted; the
	// derivation routines reject it where the scheme requires.
	ParseScalar(b []byte) (Scalar, error)

	// ParsePoint decodes a compressed point. It returns ErrInvalidPoint
	// if b is not a valid encoding of a group element.
	ParsePoint(b []byte) (Point, error)

	// ScalarBaseMult returns s multiplied by the group generator.
	ScalarBaseMult(s Scalar) Point
}
