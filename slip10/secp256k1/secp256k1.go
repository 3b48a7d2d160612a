// Package secp256k1 implements the slip10 curve capability for the
// secp256k1 curve, backed by the decred curve arithmetic.
package secp256k1

import (
	"encoding/hex"
	"fmt"

	secp "github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/oasisprotocol/tools/unseed/slip10"
)

const (
	// ScalarSize is the size of an encoded scalar in bytes.
	ScalarSize = 32

	// PointSize is the size of an encoded compressed point in bytes.
	PointSize = 33
)

// seedTag is the curve's SLIP-0010 registry domain-separation tag.
var seedTag = []byte("Bitcoin seed")

var orderBytes = mustDecodeHex("fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141")

func mustDecodeHex(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic("secp256k1: invalid hex in source file: " + s)
	}
	return b
}

// Curve implements slip10.Curve for secp256k1.
type Curve struct{}

// New returns the secp256k1 curve capability.
func New() *Curve {
	return &Curve{}
}

// Name returns the SLIP-0010 registry name of the curve.
func (*Curve) Name() string {
	return "secp256k1"
}

// SeedTag returns the SLIP-0010 domain-separation tag of the curve.
func (*Curve) SeedTag() []byte {
	return append([]byte{}, seedTag...)
}

// Order returns the big-endian encoding of the group order.
func (*Curve) Order() []byte {
	return append([]byte{}, orderBytes...)
}

// ScalarSize returns the size of an encoded scalar in bytes.
func (*Curve) ScalarSize() int {
	return ScalarSize
}

// PointSize returns the size of an encoded compressed point in bytes.
func (*Curve) PointSize() int {
	return PointSize
}

// ParseScalar decodes a 32-byte big-endian scalar, rejecting values not
// less than the group order.
func (*Curve) ParseScalar(b []byte) (slip10.Scalar, error) {
	if len(b) != ScalarSize {
		return nil, fmt.Errorf("%w: scalar length %d", slip10.ErrInvalidScalar, len(b))
	}

	var buf [ScalarSize]byte
	copy(buf[:], b)
	defer zeroArray(&buf)

	var s Scalar
	if overflow := s.s.SetBytes(&buf); overflow != 0 {
		return nil, fmt.Errorf("%w: scalar overflows group order", slip10.ErrInvalidScalar)
	}

	return &s, nil
}

// ParsePoint decodes a 33-byte compressed point.
func (*Curve) ParsePoint(b []byte) (slip10.Point, error) {
	if len(b) != PointSize {
		return nil, fmt.Errorf("%w: point length %d", slip10.ErrInvalidPoint, len(b))
	}

	pub, err := secp.ParsePubKey(b)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", slip10.ErrInvalidPoint, err)
	}

	var p Point
	pub.AsJacobian(&p.p)

	return &p, nil
}

// ScalarBaseMult returns s multiplied by the group generator.
func (*Curve) ScalarBaseMult(s slip10.Scalar) slip10.Point {
	sc, ok := s.(*Scalar)
	if !ok {
		panic("secp256k1: scalar from a different curve")
	}

	var p Point
	secp.ScalarBaseMultNonConst(&sc.s, &p.p)
	if !p.IsIdentity() {
		p.p.ToAffine()
	}

	return &p
}

// Scalar is an element of the secp256k1 scalar field.
type Scalar struct {
	s secp.ModNScalar
}

// Add returns the sum of the scalar and other modulo the group order.
func (s *Scalar) Add(other slip10.Scalar) slip10.Scalar {
	o, ok := other.(*Scalar)
	if !ok {
		panic("secp256k1: scalar from a different curve")
	}

	var sum Scalar
	sum.s.Add2(&s.s, &o.s)
	return &sum
}

// IsZero returns true iff the scalar is zero.
func (s *Scalar) IsZero() bool {
	return s.s.IsZero()
}

// Equal returns true iff the scalar equals other.
func (s *Scalar) Equal(other slip10.Scalar) bool {
	o, ok := other.(*Scalar)
	if !ok {
		panic("secp256k1: scalar from a different curve")
	}
	return s.s.Equals(&o.s)
}

// Bytes returns the 32-byte big-endian encoding of the scalar.
func (s *Scalar) Bytes() []byte {
	b := s.s.Bytes()
	return b[:]
}

// Zero overwrites the scalar with zeroes.
func (s *Scalar) Zero() {
	s.s.Zero()
}

// Point is an element of the secp256k1 group, held in affine
// coordinates with the identity encoded as all-zero coordinates.
type Point struct {
	p secp.JacobianPoint
}

// Add returns the group sum of the point and other.
func (p *Point) Add(other slip10.Point) slip10.Point {
	o, ok := other.(*Point)
	if !ok {
		panic("secp256k1: point from a different curve")
	}

	var sum Point
	secp.AddNonConst(&p.p, &o.p, &sum.p)
	if !sum.IsIdentity() {
		sum.p.ToAffine()
	}

	return &sum
}

// IsIdentity returns true iff the point is the point at infinity.
func (p *Point) IsIdentity() bool {
	return (p.p.X.IsZero() && p.p.Y.IsZero()) || p.p.Z.IsZero()
}

// Equal returns true iff the point equals other.
func (p *Point) Equal(other slip10.Point) bool {
	o, ok := other.(*Point)
	if !ok {
		panic("secp256k1: point from a different curve")
	}
	if p.IsIdentity() || o.IsIdentity() {
		return p.IsIdentity() == o.IsIdentity()
	}
	return p.p.X.Equals(&o.p.X) && p.p.Y.Equals(&o.p.Y)
}

// Bytes returns the 33-byte compressed encoding of the point. The
// identity has no compressed encoding and yields all zeroes.
func (p *Point) Bytes() []byte {
	if p.IsIdentity() {
		return make([]byte, PointSize)
	}
	return secp.NewPublicKey(&p.p.X, &p.p.Y).SerializeCompressed()
}

func zeroArray(b *[ScalarSize]byte) {
	for i := range b {
		b[i] = 0
	}
}
