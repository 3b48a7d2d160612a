package slip10

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"
	"fmt"
)

// deriveI computes I = HMAC-SHA512(Key = chain code, Data = data) for a
// single derivation step, splitting the result into the scalar shift
// and the child chain code.
func deriveI(curve Curve, chainCode *ChainCode, data []byte) (Scalar, ChainCode, error) {
	mac := hmac.New(sha512.New, chainCode[:])
	_, _ = mac.Write(data)
	I := mac.Sum(nil)

	shift, err := curve.ParseScalar(I[:32])
	if err != nil {
		return nil, ChainCode{}, err
	}

	var childChainCode ChainCode
	copy(childChainCode[:], I[32:])

	return shift, childChainCode, nil
}

// hardenedData returns 0x00 || ser256(kPar) || ser32(i).
func hardenedData(k *ExtendedSecretKey, index uint32) []byte {
	data := make([]byte, 0, 1+k.curve.ScalarSize()+4)
	data = append(data, 0x00)
	data = append(data, k.scalar.Bytes()...)
	return binary.BigEndian.AppendUint32(data, index)
}

// publicData returns serP(point(kPar)) || ser32(i).
func publicData(curve Curve, point Point, index uint32) []byte {
	data := make([]byte, 0, curve.PointSize()+4)
	data = append(data, point.Bytes()...)
	return binary.BigEndian.AppendUint32(data, index)
}

// DeriveChild derives the child extended secret key with the provided
// index. Indexes with bit 31 set select hardened derivation.
//
// Derivation is deterministic: the same parent and index always yield
// the same child. In the negligible-probability case that the child
// scalar is invalid, ErrInvalidScalar is returned.
func (k *ExtendedSecretKey) DeriveChild(index uint32) (*ExtendedSecretKey, error) {
	var data []byte
	if IsHardened(index) {
		data = hardenedData(k, index)
	} else {
		data = publicData(k.curve, k.curve.ScalarBaseMult(k.scalar), index)
	}

	shift, childChainCode, err := deriveI(k.curve, &k.chainCode, data)
	if err != nil {
		return nil, fmt.Errorf("slip10: derive child %d: %w", index, err)
	}

	childScalar := shift.Add(k.scalar)
	if childScalar.IsZero() {
		return nil, fmt.Errorf("slip10: derive child %d: %w", index, ErrInvalidScalar)
	}

	return &ExtendedSecretKey{
		curve:     k.curve,
		scalar:    childScalar,
		chainCode: childChainCode,
	}, nil
}

// DeriveChild derives the child extended public key with the provided
// index. Only non-hardened indexes are possible without the secret key;
// ErrHardenedFromPublic is returned for any index with bit 31 set.
//
// For a non-hardened index the result equals the public key of the
// child derived from the corresponding extended secret key.
func (k *ExtendedPublicKey) DeriveChild(index uint32) (*ExtendedPublicKey, error) {
	if IsHardened(index) {
		return nil, fmt.Errorf("slip10: derive child %d: %w", index, ErrHardenedFromPublic)
	}

	shift, childChainCode, err := deriveI(k.curve, &k.chainCode, publicData(k.curve, k.point, index))
	if err != nil {
		return nil, fmt.Errorf("slip10: derive child %d: %w", index, err)
	}

	childPoint := k.point.Add(k.curve.ScalarBaseMult(shift))
	if childPoint.IsIdentity() {
		return nil, fmt.Errorf("slip10: derive child %d: %w", index, ErrInvalidPoint)
	}

	return &ExtendedPublicKey{
		curve:     k.curve,
		point:     childPoint,
		chainCode: childChainCode,
	}, nil
}

// DeriveChild derives the child key pair with the provided index. The
// child public point is computed from the parent point and the scalar
// shift of the step, so deriving a pair costs the same single
// scalar-base multiplication as public-only derivation.
func (kp *ExtendedKeyPair) DeriveChild(index uint32) (*ExtendedKeyPair, error) {
	curve := kp.Curve()

	var data []byte
	if IsHardened(index) {
		data = hardenedData(kp.secretKey, index)
	} else {
		data = publicData(curve, kp.publicKey.point, index)
	}

	shift, childChainCode, err := deriveI(curve, &kp.secretKey.chainCode, data)
	if err != nil {
		return nil, fmt.Errorf("slip10: derive child %d: %w", index, err)
	}

	childScalar := shift.Add(kp.secretKey.scalar)
	childPoint := kp.publicKey.point.Add(curve.ScalarBaseMult(shift))
	if childScalar.IsZero() || childPoint.IsIdentity() {
		return nil, fmt.Errorf("slip10: derive child %d: %w", index, ErrInvalidScalar)
	}

	return &ExtendedKeyPair{
		secretKey: &ExtendedSecretKey{
			curve:     curve,
			scalar:    childScalar,
			chainCode: childChainCode,
		},
		publicKey: &ExtendedPublicKey{
			curve:     curve,
			point:     childPoint,
			chainCode: childChainCode,
		},
	}, nil
}
