package slip10_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oasisprotocol/tools/unseed/slip10"
	"github.com/oasisprotocol/tools/unseed/slip10/nist256p1"
	"github.com/oasisprotocol/tools/unseed/slip10/secp256k1"
)

var testSeed = []byte("16-64 bytes of high entropy.....")

// testCurves runs fn against every supported curve.
func testCurves(t *testing.T, fn func(t *testing.T, curve slip10.Curve)) {
	for _, curve := range []slip10.Curve{secp256k1.New(), nist256p1.New()} {
		t.Run(curve.Name(), func(t *testing.T) {
			fn(t, curve)
		})
	}
}

func TestDeterminism(t *testing.T) {
	testCurves(t, func(t *testing.T, curve slip10.Curve) {
		k1, err := slip10.NewMasterKey(curve, testSeed)
		require.NoError(t, err)
		k2, err := slip10.NewMasterKey(curve, testSeed)
		require.NoError(t, err)

		require.Equal(t, k1.Bytes(), k2.Bytes(), "identical seeds must yield identical master keys")

		c1, err := k1.DeriveChild(42)
		require.NoError(t, err)
		c2, err := k2.DeriveChild(42)
		require.NoError(t, err)
		require.Equal(t, c1.Bytes(), c2.Bytes(), "identical parents must yield identical children")
	})
}

func TestPathComposition(t *testing.T) {
	testCurves(t, func(t *testing.T, curve slip10.Curve) {
		master, err := slip10.NewMasterKey(curve, testSeed)
		require.NoError(t, err)

		a := uint32(1) + slip10.H
		b := uint32(10)

		viaPath, err := master.Derive(slip10.Path{a, b})
		require.NoError(t, err)

		step1, err := master.DeriveChild(a)
		require.NoError(t, err)
		step2, err := step1.DeriveChild(b)
		require.NoError(t, err)

		require.Equal(t, step2.Bytes(), viaPath.Bytes(), "path fold must equal stepwise derivation")

		// An empty path is the identity of the fold.
		same, err := master.Derive(slip10.Path{})
		require.NoError(t, err)
		require.Equal(t, master.Bytes(), same.Bytes())

		// Order is semantically significant.
		swapped, err := master.Derive(slip10.Path{b, a})
		require.NoError(t, err)
		require.NotEqual(t, swapped.Bytes(), viaPath.Bytes(), "[a, b] and [b, a] must differ")
	})
}

func TestPublicPrivateEquivalence(t *testing.T) {
	testCurves(t, func(t *testing.T, curve slip10.Curve) {
		master, err := slip10.NewMasterKey(curve, testSeed)
		require.NoError(t, err)
		masterPub := master.PublicKey()

		for _, index := range []uint32{0, 1, 7, 1000, slip10.H - 1} {
			childSecret, err := master.DeriveChild(index)
			require.NoError(t, err, "secret derive %d", index)
			childPub, err := masterPub.DeriveChild(index)
			require.NoError(t, err, "public derive %d", index)

			require.True(t, childSecret.PublicKey().Point().Equal(childPub.Point()),
				"index %d: secret and public derivation must agree", index)
			require.Equal(t, childSecret.ChainCode(), childPub.ChainCode(),
				"index %d: chain codes must agree", index)
		}
	})
}

func TestHardenedExclusivity(t *testing.T) {
	testCurves(t, func(t *testing.T, curve slip10.Curve) {
		master, err := slip10.NewMasterKey(curve, testSeed)
		require.NoError(t, err)
		masterPub := master.PublicKey()

		for _, index := range []uint32{slip10.H, slip10.H + 1, slip10.H + 474, math.MaxUint32} {
			_, err = masterPub.DeriveChild(index)
			require.ErrorIs(t, err, slip10.ErrHardenedFromPublic, "index %d", index)
		}

		// The same indexes work fine with the secret key.
		_, err = master.DeriveChild(slip10.H)
		require.NoError(t, err)
	})
}

func TestDistinctness(t *testing.T) {
	testCurves(t, func(t *testing.T, curve slip10.Curve) {
		master, err := slip10.NewMasterKey(curve, testSeed)
		require.NoError(t, err)

		seen := make(map[string]uint32)
		for _, index := range []uint32{0, 1, 2, 1000, slip10.H, slip10.H + 1, math.MaxUint32} {
			child, err := master.DeriveChild(index)
			require.NoError(t, err)

			encoded := string(child.Bytes())
			prev, ok := seen[encoded]
			require.False(t, ok, "indexes %d and %d derived the same child", prev, index)
			seen[encoded] = index
		}
	})
}

func TestKeyPairDerivation(t *testing.T) {
	testCurves(t, func(t *testing.T, curve slip10.Curve) {
		master, err := slip10.NewMasterKey(curve, testSeed)
		require.NoError(t, err)

		pair, err := master.KeyPair().Derive(slip10.Path{44 + slip10.H, 474 + slip10.H, 0})
		require.NoError(t, err)

		viaSecret, err := master.Derive(slip10.Path{44 + slip10.H, 474 + slip10.H, 0})
		require.NoError(t, err)

		require.Equal(t, viaSecret.Bytes(), pair.SecretKey().Bytes())
		require.True(t, pair.PublicKey().Point().Equal(viaSecret.PublicKey().Point()),
			"pair public half must match the secret key's public point")
		require.Equal(t, pair.SecretKey().ChainCode(), pair.PublicKey().ChainCode())
	})
}

func TestPathWalkerFailFast(t *testing.T) {
	testCurves(t, func(t *testing.T, curve slip10.Curve) {
		master, err := slip10.NewMasterKey(curve, testSeed)
		require.NoError(t, err)
		masterPub := master.PublicKey()

		// The walk must abort at the hardened component, not skip it.
		_, err = masterPub.Derive(slip10.Path{0, 5 + slip10.H, 1})
		require.ErrorIs(t, err, slip10.ErrHardenedFromPublic)
		require.ErrorContains(t, err, "path position 1")
	})
}
