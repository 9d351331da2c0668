// Package nullifier derives deterministic replay tags for balance updates.
//
// A nullifier binds a secret key to a caller-managed nonce; the ledger
// rejects any payload whose nullifier it has already seen, which is what
// prevents double spends. Uniqueness is enforced there, not here.
package nullifier

import (
	"io"

	"github.com/mr-shifu/ctoken-lib/core/hash"
	"github.com/mr-shifu/ctoken-lib/core/math/curve"
	"github.com/mr-shifu/ctoken-lib/core/math/sample"
)

// Domain tags keep a single (secret, nonce) pair from colliding across
// call sites, so one shared counter can serve both transfer and withdraw.
type Domain uint64

const (
	DomainTransfer Domain = 1
	DomainWithdraw Domain = 2
)

// Generate derives the nullifier H(secret, nonce).
func Generate(secret, nonce curve.Scalar) (curve.Scalar, error) {
	return hash.Compress(secret.Curve(), secret, nonce)
}

// GenerateForDomain derives H(H(secret, nonce), domainTag), separating
// otherwise identical (secret, nonce) pairs by use-case.
func GenerateForDomain(secret, nonce curve.Scalar, domain Domain) (curve.Scalar, error) {
	group := secret.Curve()
	inner, err := Generate(secret, nonce)
	if err != nil {
		return nil, err
	}
	return hash.Compress(group, inner, curve.ScalarFromUint64(group, uint64(domain)))
}

// NonceFromCounter embeds a caller-managed, externally persisted counter
// into the scalar field.
func NonceFromCounter(group curve.Curve, counter uint64) curve.Scalar {
	return curve.ScalarFromUint64(group, counter)
}

// RandomNonce draws a fresh nonce, sized with headroom over the scalar
// field to avoid modular-wraparound bias.
func RandomNonce(rand io.Reader, group curve.Curve) curve.Scalar {
	return sample.Scalar(rand, group)
}
