package proof

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mr-shifu/ctoken-lib/core/balance"
	"github.com/mr-shifu/ctoken-lib/core/elgamal"
	"github.com/mr-shifu/ctoken-lib/core/math/curve"
	"github.com/mr-shifu/ctoken-lib/core/math/sample"
)

func transferFixture(t *testing.T) (curve.Scalar, *balance.TransferUpdate) {
	t.Helper()
	group := curve.Secp256k1{}
	senderSK, senderPK := sample.ScalarPointPair(rand.Reader, group)
	_, recipientPK := sample.ScalarPointPair(rand.Reader, group)

	funded, err := balance.Deposit(rand.Reader, elgamal.ZeroCiphertext(group), 1000, senderPK)
	require.NoError(t, err)
	update, err := balance.Transfer(rand.Reader, funded.Ciphertext, elgamal.ZeroCiphertext(group), 300, senderPK, recipientPK)
	require.NoError(t, err)
	return senderSK, update
}

func TestGenerateTransferProofInsufficientBalance(t *testing.T) {
	sk, update := transferFixture(t)
	nullifier := curve.ScalarFromUint64(curve.Secp256k1{}, 99)

	_, err := GenerateTransferProof(sk, 100, 200, nullifier,
		update.Sender.Ciphertext, update.Recipient.Ciphertext)
	assert.ErrorIs(t, err, ErrInsufficientBalance)
}

func TestGenerateTransferProofNonPositiveAmount(t *testing.T) {
	sk, update := transferFixture(t)
	nullifier := curve.ScalarFromUint64(curve.Secp256k1{}, 99)

	_, err := GenerateTransferProof(sk, 1000, 0, nullifier,
		update.Sender.Ciphertext, update.Recipient.Ciphertext)
	assert.ErrorIs(t, err, ErrAmountNotPositive)

	_, err = GenerateTransferProof(sk, 1000, -10, nullifier,
		update.Sender.Ciphertext, update.Recipient.Ciphertext)
	assert.ErrorIs(t, err, ErrAmountNotPositive)
}

func TestGenerateTransferProofSuccess(t *testing.T) {
	sk, update := transferFixture(t)
	group := curve.Secp256k1{}
	nullifier := curve.ScalarFromUint64(group, 99)

	payload, err := GenerateTransferProof(sk, 1000, 300, nullifier,
		update.Sender.Ciphertext, update.Recipient.Ciphertext)
	require.NoError(t, err)

	assert.True(t, payload.Nullifier.Equal(nullifier))
	assert.False(t, payload.ProofHash.IsZero())
	assert.NotNil(t, payload.NewSenderBalance)
	assert.NotNil(t, payload.NewRecipientBalance)
	assert.False(t, payload.NewSenderBalance.IsZero())
}

func TestTransferProofDeterministic(t *testing.T) {
	sk, update := transferFixture(t)
	group := curve.Secp256k1{}
	nullifier := curve.ScalarFromUint64(group, 7)

	a, err := GenerateTransferProof(sk, 1000, 300, nullifier,
		update.Sender.Ciphertext, update.Recipient.Ciphertext)
	require.NoError(t, err)
	b, err := GenerateTransferProof(sk, 1000, 300, nullifier,
		update.Sender.Ciphertext, update.Recipient.Ciphertext)
	require.NoError(t, err)
	assert.True(t, a.ProofHash.Equal(b.ProofHash))

	// any parameter change moves the commitment
	c, err := GenerateTransferProof(sk, 1000, 301, nullifier,
		update.Sender.Ciphertext, update.Recipient.Ciphertext)
	require.NoError(t, err)
	assert.False(t, a.ProofHash.Equal(c.ProofHash))
}

func TestGenerateWithdrawProof(t *testing.T) {
	group := curve.Secp256k1{}
	sk, pk := sample.ScalarPointPair(rand.Reader, group)

	funded, err := balance.Deposit(rand.Reader, elgamal.ZeroCiphertext(group), 1000, pk)
	require.NoError(t, err)
	update, err := balance.Withdraw(rand.Reader, funded.Ciphertext, 400, pk)
	require.NoError(t, err)

	nullifier := curve.ScalarFromUint64(group, 5)

	_, err = GenerateWithdrawProof(sk, 100, 400, nullifier, update.Ciphertext)
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	_, err = GenerateWithdrawProof(sk, 1000, 0, nullifier, update.Ciphertext)
	assert.ErrorIs(t, err, ErrAmountNotPositive)

	payload, err := GenerateWithdrawProof(sk, 1000, 400, nullifier, update.Ciphertext)
	require.NoError(t, err)
	assert.True(t, payload.Nullifier.Equal(nullifier))
	assert.False(t, payload.ProofHash.IsZero())
	assert.NotNil(t, payload.NewBalance)
}

func TestTransferProofMarshalRoundTrip(t *testing.T) {
	sk, update := transferFixture(t)
	group := curve.Secp256k1{}
	nullifier := curve.ScalarFromUint64(group, 12)

	payload, err := GenerateTransferProof(sk, 1000, 300, nullifier,
		update.Sender.Ciphertext, update.Recipient.Ciphertext)
	require.NoError(t, err)

	data, err := payload.MarshalBinary()
	require.NoError(t, err)

	restored := &TransferProof{}
	require.NoError(t, restored.UnmarshalBinary(data))
	assert.True(t, restored.ProofHash.Equal(payload.ProofHash))
	assert.True(t, restored.Nullifier.Equal(payload.Nullifier))
	assert.Equal(t, 0, restored.NewSenderBalance.C1X.Cmp(payload.NewSenderBalance.C1X))
	assert.Equal(t, 0, restored.NewRecipientBalance.C2Y.Cmp(payload.NewRecipientBalance.C2Y))
}

func TestWithdrawProofMarshalRoundTrip(t *testing.T) {
	group := curve.Secp256k1{}
	sk, pk := sample.ScalarPointPair(rand.Reader, group)

	funded, err := balance.Deposit(rand.Reader, elgamal.ZeroCiphertext(group), 1000, pk)
	require.NoError(t, err)
	update, err := balance.Withdraw(rand.Reader, funded.Ciphertext, 400, pk)
	require.NoError(t, err)

	payload, err := GenerateWithdrawProof(sk, 1000, 400, curve.ScalarFromUint64(group, 13), update.Ciphertext)
	require.NoError(t, err)

	data, err := payload.MarshalBinary()
	require.NoError(t, err)

	restored := &WithdrawProof{}
	require.NoError(t, restored.UnmarshalBinary(data))
	assert.True(t, restored.ProofHash.Equal(payload.ProofHash))
	assert.True(t, restored.Nullifier.Equal(payload.Nullifier))
}
