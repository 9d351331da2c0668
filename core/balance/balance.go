// Package balance derives updated balance ciphertexts for deposit,
// transfer and withdraw without ever decrypting the stored balance.
//
// Every function here is a pure, always-succeeding piece of group
// arithmetic (beyond amount-sign validation): sufficiency of the sender's
// balance is asserted separately by the proof builder, and exactly-once
// application is the ledger's contract.
package balance

import (
	"io"

	"github.com/mr-shifu/ctoken-lib/core/elgamal"
	"github.com/mr-shifu/ctoken-lib/core/math/curve"
)

// Update carries an updated balance ciphertext together with its wire form.
type Update struct {
	Ciphertext *elgamal.Ciphertext
	Wire       *elgamal.Serialized
}

func newUpdate(ct *elgamal.Ciphertext) *Update {
	return &Update{Ciphertext: ct, Wire: ct.Serialize()}
}

// Deposit credits amount to the balance: the amount is encrypted fresh
// under public and added homomorphically. Deposits are unconditional
// credits; there is nothing to check.
func Deposit(rand io.Reader, balance *elgamal.Ciphertext, amount int64, public curve.Point) (*Update, error) {
	enc, _, err := elgamal.Encrypt(rand, public, amount)
	if err != nil {
		return nil, err
	}
	return newUpdate(balance.Add(enc)), nil
}

// Withdraw debits amount from the balance by homomorphic subtraction.
// Debiting more than the balance actually holds produces a ciphertext for
// a logically negative amount, which no bounded decryption will recover;
// preventing that is the caller's invariant, enforced through the proof
// builder before submission.
func Withdraw(rand io.Reader, balance *elgamal.Ciphertext, amount int64, public curve.Point) (*Update, error) {
	enc, _, err := elgamal.Encrypt(rand, public, amount)
	if err != nil {
		return nil, err
	}
	return newUpdate(balance.Sub(enc)), nil
}

// TransferUpdate carries both updated balances of a transfer.
type TransferUpdate struct {
	Sender    *Update
	Recipient *Update
}

// Transfer debits amount from the sender's balance and credits it to the
// recipient's. The amount is encrypted twice with independent nonces, once
// per public key: a ciphertext under one key is meaningless under another,
// so the two encryptions cannot be shared.
func Transfer(
	rand io.Reader,
	senderBalance, recipientBalance *elgamal.Ciphertext,
	amount int64,
	senderPublic, recipientPublic curve.Point,
) (*TransferUpdate, error) {
	senderEnc, _, err := elgamal.Encrypt(rand, senderPublic, amount)
	if err != nil {
		return nil, err
	}
	recipientEnc, _, err := elgamal.Encrypt(rand, recipientPublic, amount)
	if err != nil {
		return nil, err
	}
	return &TransferUpdate{
		Sender:    newUpdate(senderBalance.Sub(senderEnc)),
		Recipient: newUpdate(recipientBalance.Add(recipientEnc)),
	}, nil
}
