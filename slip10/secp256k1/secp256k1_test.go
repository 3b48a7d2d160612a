package secp256k1

import (
	"encoding/hex"
	"testing"

	bip32 "github.com/tyler-smith/go-bip32"

	"github.com/stretchr/testify/require"

	"github.com/oasisprotocol/tools/unseed/slip10"
)

// compressedG is the compressed encoding of the secp256k1 generator.
const compressedG = "0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"

func mustScalar(t *testing.T, curve *Curve, hexStr string) slip10.Scalar {
	b, err := hex.DecodeString(hexStr)
	require.NoError(t, err)
	s, err := curve.ParseScalar(b)
	require.NoError(t, err)
	return s
}

func TestScalarArithmetic(t *testing.T) {
	curve := New()

	one := mustScalar(t, curve, "0000000000000000000000000000000000000000000000000000000000000001")
	two := mustScalar(t, curve, "0000000000000000000000000000000000000000000000000000000000000002")
	orderMinusOne := mustScalar(t, curve, "fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364140")

	// Addition wraps modulo the group order: (n - 1) + 2 = 1.
	sum := orderMinusOne.Add(two)
	require.True(t, sum.Equal(one))
	require.Equal(t, one.Bytes(), sum.Bytes())

	// The order itself is not a valid scalar.
	_, err := curve.ParseScalar(curve.Order())
	require.ErrorIs(t, err, slip10.ErrInvalidScalar)

	// Zero parses (the scheme rejects it where required).
	zero, err := curve.ParseScalar(make([]byte, ScalarSize))
	require.NoError(t, err)
	require.True(t, zero.IsZero())

	_, err = curve.ParseScalar(make([]byte, ScalarSize-1))
	require.ErrorIs(t, err, slip10.ErrInvalidScalar)
}

func TestPointEncoding(t *testing.T) {
	curve := New()

	one := mustScalar(t, curve, "0000000000000000000000000000000000000000000000000000000000000001")
	g := curve.ScalarBaseMult(one)
	require.Equal(t, compressedG, hex.EncodeToString(g.Bytes()))

	decoded, err := curve.ParsePoint(g.Bytes())
	require.NoError(t, err)
	require.True(t, decoded.Equal(g))

	_, err = curve.ParsePoint(make([]byte, PointSize))
	require.ErrorIs(t, err, slip10.ErrInvalidPoint)
	_, err = curve.ParsePoint(make([]byte, PointSize-1))
	require.ErrorIs(t, err, slip10.ErrInvalidPoint)
}

func TestPointIdentity(t *testing.T) {
	curve := New()

	one := mustScalar(t, curve, "0000000000000000000000000000000000000000000000000000000000000001")
	orderMinusOne := mustScalar(t, curve, "fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364140")

	// G + (n - 1)G = nG, the point at infinity.
	sum := curve.ScalarBaseMult(one).Add(curve.ScalarBaseMult(orderMinusOne))
	require.True(t, sum.IsIdentity())

	// Multiplying by zero also lands on the identity.
	zero, err := curve.ParseScalar(make([]byte, ScalarSize))
	require.NoError(t, err)
	require.True(t, curve.ScalarBaseMult(zero).IsIdentity())
}

// TestCrossCheckBIP32 compares derivation against an independent BIP32
// implementation; for secp256k1 the SLIP-0010 and BIP32 derivation
// rules coincide.
func TestCrossCheckBIP32(t *testing.T) {
	seed, err := hex.DecodeString("000102030405060708090a0b0c0d0e0f")
	require.NoError(t, err)

	master, err := slip10.NewMasterKey(New(), seed)
	require.NoError(t, err)
	theirMaster, err := bip32.NewMasterKey(seed)
	require.NoError(t, err)

	requireSameKey := func(ours *slip10.ExtendedSecretKey, theirs *bip32.Key) {
		t.Helper()
		chainCode := ours.ChainCode()
		require.Equal(t, hex.EncodeToString(theirs.Key), hex.EncodeToString(ours.Scalar().Bytes()))
		require.Equal(t, hex.EncodeToString(theirs.ChainCode), hex.EncodeToString(chainCode[:]))
	}
	requireSameKey(master, theirMaster)

	for _, index := range []uint32{0, 1, 474, bip32.FirstHardenedChild, bip32.FirstHardenedChild + 44} {
		ourChild, err := master.DeriveChild(index)
		require.NoError(t, err, "DeriveChild(%d)", index)
		theirChild, err := theirMaster.NewChildKey(index)
		require.NoError(t, err, "NewChildKey(%d)", index)
		requireSameKey(ourChild, theirChild)
	}
}
