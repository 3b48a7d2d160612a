// Package slip10 implements the SLIP-0010 hierarchical deterministic
// key derivation scheme, generalized over any prime-order elliptic
// curve group.
//
// The package follows BIP32's derivation rules as extended by SLIP-0010
// to further curves. Curve arithmetic is supplied by implementations of
// the Curve interface (see the secp256k1 and nist256p1 sub-packages);
// the routines here are pure transforms of their explicit inputs and
// hold no global state.
//
// The ed25519-specific derivation variant defined by SLIP-0010 uses a
// different derivation rule over a non-prime-order group and is
// deliberately not supported.
package slip10

import (
	"crypto/hmac"
	"crypto/sha512"
	"fmt"
)

const (
	// SeedMinSize is the minimum seed byte sequence size in bytes.
	SeedMinSize = 16

	// SeedMaxSize is the maximum seed byte sequence size in bytes.
	SeedMaxSize = 64

	// ChainCodeSize is the size of a SLIP-0010 chain code in bytes.
	ChainCodeSize = 32
)

// ChainCode is a SLIP-0010 chain code. It carries no key material of
// its own but keys the MAC for the next derivation level, and should be
// protected accordingly.
type ChainCode [ChainCodeSize]byte

// NewMasterKey derives a master extended secret key from a seed byte
// sequence.
//
// In the negligible-probability case that the derived scalar is zero or
// not less than the curve order, ErrInvalidScalar is returned rather
// than retrying with re-hashed input; SLIP-0010 permits either policy.
func NewMasterKey(curve Curve, seed []byte) (*ExtendedSecretKey, error) {
	// Let S be a seed byte sequence of 128 to 512 bits in length.
	if sLen := len(seed); sLen < SeedMinSize || sLen > SeedMaxSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrInvalidSeed, len(seed))
	}

	// 1. Calculate I = HMAC-SHA512(Key = Curve, Data = S)
	mac := hmac.New(sha512.New, curve.SeedTag())
	_, _ = mac.Write(seed)
	I := mac.Sum(nil)

	// 2. Split I into two 32-byte sequences, IL and IR.
	// 3. Use parse256(IL) as master secret key, and IR as master chain code.
	scalar, err := curve.ParseScalar(I[:32])
	if err != nil {
		return nil, fmt.Errorf("slip10: master key: %w", err)
	}
	if scalar.IsZero() {
		return nil, fmt.Errorf("slip10: master key: %w", ErrInvalidScalar)
	}

	k := &ExtendedSecretKey{
		curve:  curve,
		scalar: scalar,
	}
	copy(k.chainCode[:], I[32:])

	return k, nil
}
