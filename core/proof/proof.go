// Package proof builds the authorization payloads handed to the ledger.
//
// The "proof" here is a hash commitment chaining the transaction's economic
// parameters, NOT a zero-knowledge argument: the sender's balance is the
// caller-asserted plaintext and is never re-derived from the stored
// ciphertext. A production system replaces this builder with a succinct
// proof of "decrypt(ciphertext, sk) = balance AND balance ≥ amount"; this
// package deliberately does not claim that property.
package proof

import (
	"errors"

	"github.com/fxamacker/cbor/v2"

	"github.com/mr-shifu/ctoken-lib/core/elgamal"
	"github.com/mr-shifu/ctoken-lib/core/hash"
	"github.com/mr-shifu/ctoken-lib/core/math/curve"
)

var (
	// ErrAmountNotPositive rejects zero and negative transaction amounts.
	ErrAmountNotPositive = errors.New("proof: amount must be positive")

	// ErrInsufficientBalance rejects transactions whose caller-asserted
	// balance is below the requested amount.
	ErrInsufficientBalance = errors.New("proof: insufficient balance")
)

// TransferProof authorizes a transfer: the commitment hash, the replay
// nullifier, and both updated balances in wire form.
type TransferProof struct {
	ProofHash           curve.Scalar
	Nullifier           curve.Scalar
	NewSenderBalance    *elgamal.Serialized
	NewRecipientBalance *elgamal.Serialized
}

// WithdrawProof is the one-party analogue of TransferProof.
type WithdrawProof struct {
	ProofHash  curve.Scalar
	Nullifier  curve.Scalar
	NewBalance *elgamal.Serialized
}

// GenerateTransferProof validates the transfer's economic preconditions and
// binds them into a commitment.
//
// senderBalance is the caller-asserted plaintext of the pre-update balance;
// it is guarded against amount but not verified against the ciphertext.
// Either every precondition holds and a full payload is returned, or a
// specific failure is signaled and nothing is emitted.
func GenerateTransferProof(
	secret curve.Scalar,
	senderBalance, amount int64,
	nullifier curve.Scalar,
	newSender, newRecipient *elgamal.Ciphertext,
) (*TransferProof, error) {
	if amount <= 0 {
		return nil, ErrAmountNotPositive
	}
	if senderBalance < amount {
		return nil, ErrInsufficientBalance
	}
	proofHash, err := commit(secret, senderBalance, amount, nullifier)
	if err != nil {
		return nil, err
	}
	return &TransferProof{
		ProofHash:           proofHash,
		Nullifier:           nullifier,
		NewSenderBalance:    newSender.Serialize(),
		NewRecipientBalance: newRecipient.Serialize(),
	}, nil
}

// GenerateWithdrawProof validates a withdrawal against the caller-asserted
// balance and binds it into a commitment, with the same guard semantics as
// GenerateTransferProof.
func GenerateWithdrawProof(
	secret curve.Scalar,
	balance, amount int64,
	nullifier curve.Scalar,
	newBalance *elgamal.Ciphertext,
) (*WithdrawProof, error) {
	if amount <= 0 {
		return nil, ErrAmountNotPositive
	}
	if balance < amount {
		return nil, ErrInsufficientBalance
	}
	proofHash, err := commit(secret, balance, amount, nullifier)
	if err != nil {
		return nil, err
	}
	return &WithdrawProof{
		ProofHash:  proofHash,
		Nullifier:  nullifier,
		NewBalance: newBalance.Serialize(),
	}, nil
}

// commit chains H(H(H(secret, balance), amount), nullifier).
func commit(secret curve.Scalar, balance, amount int64, nullifier curve.Scalar) (curve.Scalar, error) {
	group := secret.Curve()
	h, err := hash.Compress(group, secret, elgamal.AmountScalar(group, balance))
	if err != nil {
		return nil, err
	}
	h, err = hash.Compress(group, h, elgamal.AmountScalar(group, amount))
	if err != nil {
		return nil, err
	}
	return hash.Compress(group, h, nullifier)
}

type rawTransferProof struct {
	ProofHash           []byte
	Nullifier           []byte
	NewSenderBalance    []byte
	NewRecipientBalance []byte
}

func (p *TransferProof) MarshalBinary() ([]byte, error) {
	proofHash, err := p.ProofHash.MarshalBinary()
	if err != nil {
		return nil, err
	}
	nf, err := p.Nullifier.MarshalBinary()
	if err != nil {
		return nil, err
	}
	sender, err := p.NewSenderBalance.MarshalBinary()
	if err != nil {
		return nil, err
	}
	recipient, err := p.NewRecipientBalance.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return cbor.Marshal(rawTransferProof{
		ProofHash:           proofHash,
		Nullifier:           nf,
		NewSenderBalance:    sender,
		NewRecipientBalance: recipient,
	})
}

func (p *TransferProof) UnmarshalBinary(data []byte) error {
	raw := rawTransferProof{}
	if err := cbor.Unmarshal(data, &raw); err != nil {
		return err
	}
	group := curve.Secp256k1{}

	proofHash := group.NewScalar()
	if err := proofHash.UnmarshalBinary(raw.ProofHash); err != nil {
		return err
	}
	nf := group.NewScalar()
	if err := nf.UnmarshalBinary(raw.Nullifier); err != nil {
		return err
	}
	sender := &elgamal.Serialized{}
	if err := sender.UnmarshalBinary(raw.NewSenderBalance); err != nil {
		return err
	}
	recipient := &elgamal.Serialized{}
	if err := recipient.UnmarshalBinary(raw.NewRecipientBalance); err != nil {
		return err
	}

	p.ProofHash = proofHash
	p.Nullifier = nf
	p.NewSenderBalance = sender
	p.NewRecipientBalance = recipient
	return nil
}

type rawWithdrawProof struct {
	ProofHash  []byte
	Nullifier  []byte
	NewBalance []byte
}

func (p *WithdrawProof) MarshalBinary() ([]byte, error) {
	proofHash, err := p.ProofHash.MarshalBinary()
	if err != nil {
		return nil, err
	}
	nf, err := p.Nullifier.MarshalBinary()
	if err != nil {
		return nil, err
	}
	nb, err := p.NewBalance.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return cbor.Marshal(rawWithdrawProof{ProofHash: proofHash, Nullifier: nf, NewBalance: nb})
}

func (p *WithdrawProof) UnmarshalBinary(data []byte) error {
	raw := rawWithdrawProof{}
	if err := cbor.Unmarshal(data, &raw); err != nil {
		return err
	}
	group := curve.Secp256k1{}

	proofHash := group.NewScalar()
	if err := proofHash.UnmarshalBinary(raw.ProofHash); err != nil {
		return err
	}
	nf := group.NewScalar()
	if err := nf.UnmarshalBinary(raw.Nullifier); err != nil {
		return err
	}
	nb := &elgamal.Serialized{}
	if err := nb.UnmarshalBinary(raw.NewBalance); err != nil {
		return err
	}

	p.ProofHash = proofHash
	p.Nullifier = nf
	p.NewBalance = nb
	return nil
}
