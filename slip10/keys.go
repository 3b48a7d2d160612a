package slip10

import "fmt"

// ExtendedSecretKey is a secret scalar bundled with the chain code
// needed to derive its descendants.
type ExtendedSecretKey struct {
	curve     Curve
	scalar    Scalar
	chainCode ChainCode
}

// Curve returns the curve the key belongs to.
func (k *ExtendedSecretKey) Curve() Curve {
	return k.curve
}

// Scalar returns the secret scalar.
func (k *ExtendedSecretKey) Scalar() Scalar {
	return k.scalar
}

// ChainCode returns the chain code.
func (k *ExtendedSecretKey) ChainCode() ChainCode {
	return k.chainCode
}

// PublicKey returns the corresponding extended public key. The public
// point is recomputed on each call; use KeyPair if both halves are
// needed repeatedly.
func (k *ExtendedSecretKey) PublicKey() *ExtendedPublicKey {
	return &ExtendedPublicKey{
		curve:     k.curve,
		point:     k.curve.ScalarBaseMult(k.scalar),
		chainCode: k.chainCode,
	}
}

// KeyPair returns the key paired with its public half. This is the only
// constructor of ExtendedKeyPair: the public half is always derivable
// from the secret half, never the reverse.
func (k *ExtendedSecretKey) KeyPair() *ExtendedKeyPair {
	return &ExtendedKeyPair{
		secretKey: k,
		publicKey: k.PublicKey(),
	}
}

// Bytes returns the fixed byte layout of the key: the big-endian scalar
// followed by the 32-byte chain code.
func (k *ExtendedSecretKey) Bytes() []byte {
	buf := make([]byte, 0, k.curve.ScalarSize()+ChainCodeSize)
	buf = append(buf, k.scalar.Bytes()...)
	buf = append(buf, k.chainCode[:]...)
	return buf
}

// Wipe overwrites the key material with zeroes. The key must not be
// used afterwards.
func (k *ExtendedSecretKey) Wipe() {
	k.scalar.Zero()
	for i := range k.chainCode {
		k.chainCode[i] = 0
	}
}

// ParseExtendedSecretKey decodes the layout produced by
// ExtendedSecretKey.Bytes.
func ParseExtendedSecretKey(curve Curve, b []byte) (*ExtendedSecretKey, error) {
	if len(b) != curve.ScalarSize()+ChainCodeSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrInvalidKeyEncoding, len(b))
	}

	scalar, err := curve.ParseScalar(b[:curve.ScalarSize()])
	if err != nil {
		return nil, err
	}
	if scalar.IsZero() {
		return nil, ErrInvalidScalar
	}

	k := &ExtendedSecretKey{
		curve:  curve,
		scalar: scalar,
	}
	copy(k.chainCode[:], b[curve.ScalarSize():])

	return k, nil
}

// ExtendedPublicKey is a public point bundled with the chain code
// needed to derive its non-hardened descendants. It carries no secret
// material.
type ExtendedPublicKey struct {
	curve     Curve
	point     Point
	chainCode ChainCode
}

// Curve returns the curve the key belongs to.
func (k *ExtendedPublicKey) Curve() Curve {
	return k.curve
}

// Point returns the public point.
func (k *ExtendedPublicKey) Point() Point {
	return k.point
}

// ChainCode returns the chain code.
func (k *ExtendedPublicKey) ChainCode() ChainCode {
	return k.chainCode
}

// Bytes returns the fixed byte layout of the key: the compressed point
// followed by the 32-byte chain code.
func (k *ExtendedPublicKey) Bytes() []byte {
	buf := make([]byte, 0, k.curve.PointSize()+ChainCodeSize)
	buf = append(buf, k.point.Bytes()...)
	buf = append(buf, k.chainCode[:]...)
	return buf
}

// ParseExtendedPublicKey decodes the layout produced by
// ExtendedPublicKey.Bytes.
func ParseExtendedPublicKey(curve Curve, b []byte) (*ExtendedPublicKey, error) {
	if len(b) != curve.PointSize()+ChainCodeSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrInvalidKeyEncoding, len(b))
	}

	point, err := curve.ParsePoint(b[:curve.PointSize()])
	if err != nil {
		return nil, err
	}
	if point.IsIdentity() {
		return nil, ErrInvalidPoint
	}

	k := &ExtendedPublicKey{
		curve: curve,
		point: point,
	}
	copy(k.chainCode[:], b[curve.PointSize():])

	return k, nil
}

// ExtendedKeyPair is an extended secret key together with its derived
// public half, for callers that need both simultaneously. Construct one
// with ExtendedSecretKey.KeyPair.
type ExtendedKeyPair struct {
	secretKey *ExtendedSecretKey
	publicKey *ExtendedPublicKey
}

// Curve returns the curve the pair belongs to.
func (kp *ExtendedKeyPair) Curve() Curve {
	return kp.secretKey.curve
}

// SecretKey returns the secret half.
func (kp *ExtendedKeyPair) SecretKey() *ExtendedSecretKey {
	return kp.secretKey
}

// PublicKey returns the public half.
func (kp *ExtendedKeyPair) PublicKey() *ExtendedPublicKey {
	return kp.publicKey
}

// ChainCode returns the chain code shared by both halves.
func (kp *ExtendedKeyPair) ChainCode() ChainCode {
	return kp.secretKey.chainCode
}
