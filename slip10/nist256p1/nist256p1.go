// Package nist256p1 implements the slip10 curve capability for the
// NIST P-256 curve (secp256r1).
package nist256p1

import (
	"crypto/elliptic"
	"fmt"
	"math/big"

	"github.com/oasisprotocol/tools/unseed/slip10"
)

const (
	// ScalarSize is the size of an encoded scalar in bytes.
	ScalarSize = 32

	// PointSize is the size of an encoded compressed point in bytes.
	PointSize = 33
)

// seedTag is the curve's SLIP-0010 registry domain-separation tag.
var seedTag = []byte("Nist256p1 seed")

// Curve implements slip10.Curve for NIST P-256.
type Curve struct{}

// New returns the nist256p1 curve capability.
func New() *Curve {
	return &Curve{}
}

// Name returns the SLIP-0010 registry name of the curve.
func (*Curve) Name() string {
	return "nist256p1"
}

// SeedTag returns the SLIP-0010 domain-separation tag of the curve.
func (*Curve) SeedTag() []byte {
	return append([]byte{}, seedTag...)
}

// Order returns the big-endian encoding of the group order.
func (*Curve) Order() []byte {
	b := make([]byte, ScalarSize)
	elliptic.P256().Params().N.FillBytes(b)
	return b
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

	v := new(big.Int).SetBytes(b)
	if v.Cmp(elliptic.P256().Params().N) >= 0 {
		return nil, fmt.Errorf("%w: scalar overflows group order", slip10.ErrInvalidScalar)
	}

	return &Scalar{v: v}, nil
}

// ParsePoint decodes a 33-byte compressed point.
func (*Curve) ParsePoint(b []byte) (slip10.Point, error) {
	if len(b) != PointSize {
		return nil, fmt.Errorf("%w: point length %d", slip10.ErrInvalidPoint, len(b))
	}

	x, y := elliptic.UnmarshalCompressed(elliptic.P256(), b)
	if x == nil {
		return nil, fmt.Errorf("%w: malformed compressed point", slip10.ErrInvalidPoint)
	}

	return &Point{x: x, y: y}, nil
}

// ScalarBaseMult returns s multiplied by the group generator.
func (*Curve) ScalarBaseMult(s slip10.Scalar) slip10.Point {
	sc, ok := s.(*Scalar)
	if !ok {
		panic("nist256p1: scalar from a different curve")
	}

	if sc.v.Sign() == 0 {
		return identity()
	}

	x, y := elliptic.P256().ScalarBaseMult(sc.Bytes())
	return &Point{x: x, y: y}
}

// Scalar is an element of the P-256 scalar field.
type Scalar struct {
	v *big.Int
}

// Add returns the sum of the scalar and other modulo the group order.
func (s *Scalar) Add(other slip10.Scalar) slip10.Scalar {
	o, ok := other.(*Scalar)
	if !ok {
		panic("nist256p1: scalar from a different curve")
	}

	sum := new(big.Int).Add(s.v, o.v)
	sum.Mod(sum, elliptic.P256().Params().N)
	return &Scalar{v: sum}
}

// IsZero returns true iff the scalar is zero.
func (s *Scalar) IsZero() bool {
	return s.v.Sign() == 0
}

// Equal returns true iff the scalar equals other.
func (s *Scalar) Equal(other slip10.Scalar) bool {
	o, ok := other.(*Scalar)
	if !ok {
		panic("nist256p1: scalar from a different curve")
	}
	return s.v.Cmp(o.v) == 0
}

// Bytes returns the 32-byte big-endian encoding of the scalar.
func (s *Scalar) Bytes() []byte {
	b := make([]byte, ScalarSize)
	s.v.FillBytes(b)
	return b
}

// Zero overwrites the scalar with zero. big.Int offers no guaranteed
// storage wipe; this clears the value best effort.
func (s *Scalar) Zero() {
	s.v.SetInt64(0)
}

// Point is an element of the P-256 group in affine coordinates, with
// the identity encoded as (0, 0).
type Point struct {
	x, y *big.Int
}

func identity() *Point {
	return &Point{x: new(big.Int), y: new(big.Int)}
}

// Add returns the group sum of the point and other.
func (p *Point) Add(other slip10.Point) slip10.Point {
	o, ok := other.(*Point)
	if !ok {
		panic("nist256p1: point from a different curve")
	}

	// The stdlib curve operations reject the point at infinity as an
	// operand, so the identity cases short circuit here.
	switch {
	case p.IsIdentity():
		return &Point{x: new(big.Int).Set(o.x), y: new(big.Int).Set(o.y)}
	case o.IsIdentity():
		return &Point{x: new(big.Int).Set(p.x), y: new(big.Int).Set(p.y)}
	}

	x, y := elliptic.P256().Add(p.x, p.y, o.x, o.y)
	return &Point{x: x, y: y}
}

// IsIdentity returns true iff the point is the point at infinity.
func (p *Point) IsIdentity() bool {
	return p.x.Sign() == 0 && p.y.Sign() == 0
}

// Equal returns true iff the point equals other.
func (p *Point) Equal(other slip10.Point) bool {
	o, ok := other.(*Point)
	if !ok {
		panic("nist256p1: point from a different curve")
	}
	return p.x.Cmp(o.x) == 0 && p.y.Cmp(o.y) == 0
}

// Bytes returns the 33-byte compressed encoding of the point. The
// identity has no compressed encoding and yields all zeroes.
func (p *Point) Bytes() []byte {
	if p.IsIdentity() {
		return make([]byte, PointSize)
	}
	return elliptic.MarshalCompressed(elliptic.P256(), p.x, p.y)
}
