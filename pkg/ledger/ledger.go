// Package ledger defines the contract of the external ledger that stores
// balance ciphertexts and arbitrates replay protection.
//
// The crypto core produces payloads in exactly this shape and trusts the
// ledger for everything transactional: applying a payload exactly once,
// atomically, gated on the nullifier being previously unseen, and
// serializing concurrent updates to the same account. The in-memory
// implementation in this package is the executable form of that contract,
// used by the end-to-end tests; the production ledger lives elsewhere.
package ledger

import (
	"errors"

	"github.com/mr-shifu/ctoken-lib/core/elgamal"
	"github.com/mr-shifu/ctoken-lib/core/math/curve"
)

var (
	ErrNotRegistered     = errors.New("ledger: account not registered")
	ErrAlreadyRegistered = errors.New("ledger: account already registered")
	ErrNullifierSpent    = errors.New("ledger: nullifier already spent")
	ErrInvalidAmount     = errors.New("ledger: amount must be positive")
	ErrInvalidPayload    = errors.New("ledger: incomplete payload")
)

// Receipt acknowledges an applied state transition.
type Receipt struct {
	// TxID identifies the applied transition.
	TxID string
	// Account is the primary account the transition touched.
	Account string
}

type Ledger interface {
	// Register adds a public key to the registered-key set with the
	// canonical zero balance.
	Register(pk curve.Point) (*Receipt, error)

	// Deposit unconditionally credits amount and replaces the stored
	// balance ciphertext.
	Deposit(pk curve.Point, amount int64, newBalance *elgamal.Serialized) (*Receipt, error)

	// Transfer atomically replaces both parties' balance ciphertexts,
	// gated on the nullifier being unseen.
	Transfer(senderPK, recipientPK curve.Point, newSender, newRecipient *elgamal.Serialized, proofHash, nullifier curve.Scalar) (*Receipt, error)

	// Withdraw releases amount of locked value and replaces the stored
	// balance ciphertext, gated on the nullifier being unseen.
	Withdraw(pk curve.Point, amount int64, newBalance *elgamal.Serialized, proofHash, nullifier curve.Scalar) (*Receipt, error)

	// GetBalance returns the stored balance ciphertext for a registered key.
	GetBalance(pk curve.Point) (*elgamal.Serialized, error)

	IsRegistered(pk curve.Point) bool
	IsNullifierSpent(nullifier curve.Scalar) bool

	// TotalLocked is the aggregate plaintext value locked in the ledger,
	// maintained from the public deposit/withdraw amounts.
	TotalLocked() int64
}
