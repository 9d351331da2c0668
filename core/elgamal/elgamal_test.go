package elgamal

import (
	"crypto/rand"
	mrand "math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/mr-shifu/ctoken-lib/core/math/curve"
	"github.com/mr-shifu/ctoken-lib/core/math/sample"
)

func testKeyPair(t *testing.T) (curve.Scalar, curve.Point) {
	t.Helper()
	return sample.ScalarPointPair(rand.Reader, curve.Secp256k1{})
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	sk, pk := testKeyPair(t)

	amounts := []int64{0, 1, 2, 3, 255, 256, 1000, 4095, 9999, 10000}
	rng := mrand.New(mrand.NewSource(1))
	for i := 0; i < 32; i++ {
		amounts = append(amounts, rng.Int63n(10001))
	}

	for _, amount := range amounts {
		ct, nonce, err := Encrypt(rand.Reader, pk, amount)
		require.NoError(t, err)
		require.NotNil(t, nonce)

		decrypted, err := Decrypt(ct, sk, 20000)
		require.NoError(t, err)
		assert.Equal(t, amount, decrypted, "amount %d", amount)
	}
}

func TestEncryptRejectsNegativeAmount(t *testing.T) {
	_, pk := testKeyPair(t)
	_, _, err := Encrypt(rand.Reader, pk, -1)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestDecryptZeroFastPath(t *testing.T) {
	sk, pk := testKeyPair(t)

	ct, _, err := Encrypt(rand.Reader, pk, 0)
	require.NoError(t, err)

	// a search range of 1 proves the zero comes from the identity fast
	// path, not from the table
	decrypted, err := Decrypt(ct, sk, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 0, decrypted)
}

func TestDecryptRangeValidation(t *testing.T) {
	sk, pk := testKeyPair(t)
	ct, _, err := Encrypt(rand.Reader, pk, 5)
	require.NoError(t, err)

	_, err = Decrypt(ct, sk, 0)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = Decrypt(ct, sk, (int64(1)<<40)+1)
	assert.ErrorIs(t, err, ErrSearchRangeTooLarge)
}

func TestDecryptNotFoundBeyondRange(t *testing.T) {
	sk, pk := testKeyPair(t)

	ct, _, err := Encrypt(rand.Reader, pk, 5000)
	require.NoError(t, err)

	_, err = Decrypt(ct, sk, 100)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDecryptWrongKey(t *testing.T) {
	sk, pk := testKeyPair(t)
	_ = sk

	const amount = int64(1234)
	var group errgroup.Group
	for i := 0; i < 16; i++ {
		group.Go(func() error {
			ct, _, err := Encrypt(rand.Reader, pk, amount)
			if err != nil {
				return err
			}
			wrongSK, _ := sample.ScalarPointPair(rand.Reader, curve.Secp256k1{})
			decrypted, err := Decrypt(ct, wrongSK, 20000)
			if err == nil {
				// a wrong key may land on some integer, but not ours
				assert.NotEqual(t, amount, decrypted)
			} else {
				assert.ErrorIs(t, err, ErrNotFound)
			}
			return nil
		})
	}
	require.NoError(t, group.Wait())
}

func TestEncryptWithNonceDeterministic(t *testing.T) {
	_, pk := testKeyPair(t)
	group := curve.Secp256k1{}

	nonce := curve.ScalarFromUint64(group, 777)
	a, err := EncryptWithNonce(pk, 42, nonce)
	require.NoError(t, err)
	b, err := EncryptWithNonce(pk, 42, nonce)
	require.NoError(t, err)

	assert.True(t, a.C1.Equal(b.C1))
	assert.True(t, a.C2.Equal(b.C2))
}

func TestEncryptWithNonceRejectsZeroNonce(t *testing.T) {
	_, pk := testKeyPair(t)
	group := curve.Secp256k1{}

	_, err := EncryptWithNonce(pk, 42, group.NewScalar())
	assert.ErrorIs(t, err, curve.ErrScalarOutOfRange)
}

func TestHomomorphicAdd(t *testing.T) {
	sk, pk := testKeyPair(t)

	for _, amounts := range [][2]int64{{0, 0}, {1, 0}, {17, 25}, {9000, 999}} {
		a, _, err := Encrypt(rand.Reader, pk, amounts[0])
		require.NoError(t, err)
		b, _, err := Encrypt(rand.Reader, pk, amounts[1])
		require.NoError(t, err)

		sum, err := Decrypt(a.Add(b), sk, 20000)
		require.NoError(t, err)
		assert.Equal(t, amounts[0]+amounts[1], sum)
	}
}

func TestHomomorphicSub(t *testing.T) {
	sk, pk := testKeyPair(t)

	for _, amounts := range [][2]int64{{5, 5}, {100, 1}, {10000, 9999}} {
		a, _, err := Encrypt(rand.Reader, pk, amounts[0])
		require.NoError(t, err)
		b, _, err := Encrypt(rand.Reader, pk, amounts[1])
		require.NoError(t, err)

		diff, err := Decrypt(a.Sub(b), sk, 20000)
		require.NoError(t, err)
		assert.Equal(t, amounts[0]-amounts[1], diff)
	}
}

func TestSubBelowZeroFailsSearch(t *testing.T) {
	sk, pk := testKeyPair(t)

	a, _, err := Encrypt(rand.Reader, pk, 10)
	require.NoError(t, err)
	b, _, err := Encrypt(rand.Reader, pk, 30)
	require.NoError(t, err)

	_, err = Decrypt(a.Sub(b), sk, 20000)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestZeroCiphertext(t *testing.T) {
	group := curve.Secp256k1{}
	zero := ZeroCiphertext(group)
	assert.True(t, zero.IsZero())

	// adding the canonical zero is the homomorphic no-op
	sk, pk := testKeyPair(t)
	ct, _, err := Encrypt(rand.Reader, pk, 321)
	require.NoError(t, err)

	decrypted, err := Decrypt(zero.Add(ct), sk, 1000)
	require.NoError(t, err)
	assert.EqualValues(t, 321, decrypted)
}

func TestSerializeZeroSentinel(t *testing.T) {
	group := curve.Secp256k1{}
	wire := ZeroCiphertext(group).Serialize()
	assert.True(t, wire.IsZero())

	restored, err := wire.Deserialize(group)
	require.NoError(t, err)
	assert.True(t, restored.IsZero())
}

func TestSerializeRoundTrip(t *testing.T) {
	group := curve.Secp256k1{}
	sk, pk := testKeyPair(t)

	ct, _, err := Encrypt(rand.Reader, pk, 12345)
	require.NoError(t, err)

	wire := ct.Serialize()
	assert.False(t, wire.IsZero())

	restored, err := wire.Deserialize(group)
	require.NoError(t, err)
	assert.True(t, restored.C1.Equal(ct.C1))
	assert.True(t, restored.C2.Equal(ct.C2))

	decrypted, err := Decrypt(restored, sk, 20000)
	require.NoError(t, err)
	assert.EqualValues(t, 12345, decrypted)
}

func TestSerializeMixedIdentityComponent(t *testing.T) {
	group := curve.Secp256k1{}
	sk, pk := testKeyPair(t)
	_ = sk

	ct, _, err := Encrypt(rand.Reader, pk, 7)
	require.NoError(t, err)

	mixed := &Ciphertext{C1: group.NewPoint(), C2: ct.C2}
	wire := mixed.Serialize()
	assert.EqualValues(t, 0, wire.C1X.Sign())
	assert.EqualValues(t, 0, wire.C1Y.Sign())
	assert.False(t, wire.IsZero())

	restored, err := wire.Deserialize(group)
	require.NoError(t, err)
	assert.True(t, restored.C1.IsIdentity())
	assert.True(t, restored.C2.Equal(ct.C2))
}

func TestSerializedMarshalRoundTrip(t *testing.T) {
	group := curve.Secp256k1{}
	_, pk := testKeyPair(t)

	ct, _, err := Encrypt(rand.Reader, pk, 99)
	require.NoError(t, err)
	wire := ct.Serialize()

	data, err := wire.MarshalBinary()
	require.NoError(t, err)

	restored := &Serialized{}
	require.NoError(t, restored.UnmarshalBinary(data))
	assert.Equal(t, 0, wire.C1X.Cmp(restored.C1X))
	assert.Equal(t, 0, wire.C1Y.Cmp(restored.C1Y))
	assert.Equal(t, 0, wire.C2X.Cmp(restored.C2X))
	assert.Equal(t, 0, wire.C2Y.Cmp(restored.C2Y))

	rt, err := restored.Deserialize(group)
	require.NoError(t, err)
	assert.True(t, rt.C1.Equal(ct.C1))
	assert.True(t, rt.C2.Equal(ct.C2))
}

func TestCiphertextBinaryRoundTrip(t *testing.T) {
	_, pk := testKeyPair(t)

	ct, _, err := Encrypt(rand.Reader, pk, 5)
	require.NoError(t, err)

	data, err := ct.MarshalBinary()
	require.NoError(t, err)

	restored := &Ciphertext{}
	require.NoError(t, restored.UnmarshalBinary(data))
	assert.True(t, restored.C1.Equal(ct.C1))
	assert.True(t, restored.C2.Equal(ct.C2))
	assert.True(t, restored.Valid())
}
