package elgamal

import (
	"errors"
	"io"

	"github.com/mr-shifu/ctoken-lib/core/math/curve"
	"github.com/mr-shifu/ctoken-lib/core/math/sample"
)

type (
	PublicKey = curve.Point
	Nonce     = curve.Scalar
)

var (
	// ErrInvalidAmount is returned for negative amounts and non-positive
	// search ranges.
	ErrInvalidAmount = errors.New("elgamal: invalid amount")

	// ErrNotFound is the sentinel result of a bounded decryption whose
	// search range was exhausted without a match. It is the expected
	// outcome when the true amount exceeds the range or the wrong key was
	// used, not a fatal error.
	ErrNotFound = errors.New("elgamal: amount not found within search range")

	// ErrSearchRangeTooLarge rejects ranges whose baby-step table would
	// exhaust memory.
	ErrSearchRangeTooLarge = errors.New("elgamal: search range exceeds hard cap")

	// ErrInvalidCiphertext is returned for ciphertexts with missing
	// components.
	ErrInvalidCiphertext = errors.New("elgamal: malformed ciphertext")
)

// AmountScalar embeds a non-negative token amount into the scalar field.
func AmountScalar(group curve.Curve, amount int64) curve.Scalar {
	return curve.ScalarFromUint64(group, uint64(amount))
}

// Encrypt returns the encryption of amount as
// (C1 = nonce⋅G, C2 = amount⋅G + nonce⋅public), as well as the nonce.
//
// The nonce is drawn fresh from rand per call; it is returned for
// test-reproducibility paths only and never needs to be retained otherwise.
func Encrypt(rand io.Reader, public PublicKey, amount int64) (*Ciphertext, Nonce, error) {
	if amount < 0 {
		return nil, nil, ErrInvalidAmount
	}
	nonce := sample.Scalar(rand, public.Curve())
	ct := encrypt(public, amount, nonce)
	return ct, nonce, nil
}

// EncryptWithNonce encrypts amount under a caller-supplied nonce, for
// deterministic testing only. A reused or predictable nonce destroys the
// semantic security of the ciphertext, so production encryption must go
// through Encrypt.
func EncryptWithNonce(public PublicKey, amount int64, nonce Nonce) (*Ciphertext, error) {
	if amount < 0 {
		return nil, ErrInvalidAmount
	}
	if _, err := curve.SecretScalar(nonce); err != nil {
		return nil, err
	}
	return encrypt(public, amount, nonce), nil
}

func encrypt(public PublicKey, amount int64, nonce Nonce) *Ciphertext {
	group := public.Curve()
	c1 := nonce.ActOnBase()
	// amount⋅G, with the identity element standing in for a zero amount so
	// the backend never performs a degenerate scalar multiplication.
	mG := group.NewPoint()
	if amount > 0 {
		mG = AmountScalar(group, amount).ActOnBase()
	}
	c2 := mG.Add(nonce.Act(public))
	return &Ciphertext{C1: c1, C2: c2}
}

// DefaultMaxAmount is the default bound for the decryption search,
// sufficient for 32-bit token amounts at a baby-step table of roughly
// 65k entries.
const DefaultMaxAmount = int64(1) << 32

// maxSearchRange caps caller-supplied ranges; beyond it the baby-step
// table would allocate on the order of gigabytes.
const maxSearchRange = int64(1) << 40

// Decrypt recovers the amount from a ciphertext, searching the range
// [0, maxAmount].
//
// It computes M = C2 - secret⋅C1 and runs a baby-step/giant-step search for
// the smallest non-negative m with m⋅G = M, in O(√maxAmount) time and
// space. A zero amount is recognized directly from the identity element
// without entering the search.
//
// Exhausting the range yields ErrNotFound. Decryption performs no integrity
// check: with a wrong secret key it silently yields ErrNotFound or an
// unrelated amount, so a successful result is no proof of ciphertext
// origin.
func Decrypt(ct *Ciphertext, secret curve.Scalar, maxAmount int64) (int64, error) {
	if !ct.Valid() {
		return 0, ErrInvalidCiphertext
	}
	if maxAmount <= 0 {
		return 0, ErrInvalidAmount
	}
	if maxAmount > maxSearchRange {
		return 0, ErrSearchRangeTooLarge
	}

	m := ct.C2.Sub(secret.Act(ct.C1))
	if m.IsIdentity() {
		return 0, nil
	}
	return babyStepGiantStep(m, maxAmount)
}
