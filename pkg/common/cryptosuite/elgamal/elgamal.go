package elgamal

import (
	"io"

	core_elgamal "github.com/mr-shifu/ctoken-lib/core/elgamal"
	"github.com/mr-shifu/ctoken-lib/core/math/curve"
	"github.com/mr-shifu/ctoken-lib/pkg/common/keyopts"
)

type ElgamalKey interface {
	// Bytes returns the byte representation of the key.
	Bytes() ([]byte, error)

	// SKI returns the serialized key identifier.
	SKI() []byte

	// Private returns true if the key is private.
	Private() bool

	// PublicKey returns the corresponding public key part of the key.
	PublicKey() ElgamalKey

	PublicKeyRaw() curve.Point

	// Encrypt encrypts an amount under the public key, returning the
	// ciphertext and the nonce used.
	Encrypt(rand io.Reader, amount int64) (*core_elgamal.Ciphertext, curve.Scalar, error)

	// Decrypt recovers the amount from a ciphertext, searching [0, maxAmount].
	Decrypt(ct *core_elgamal.Ciphertext, maxAmount int64) (int64, error)
}

type ElgamalKeyManager interface {
	// GenerateKey generates a new account key pair.
	GenerateKey(opts keyopts.Options) (ElgamalKey, error)

	// ImportKey imports an account key from its byte representation or from
	// a secret scalar.
	ImportKey(data interface{}, opts keyopts.Options) (ElgamalKey, error)

	// GetKey returns an account key by its account metadata.
	GetKey(opts keyopts.Options) (ElgamalKey, error)

	// Encrypt encrypts an amount under the account's public key.
	Encrypt(amount int64, opts keyopts.Options) (*core_elgamal.Ciphertext, curve.Scalar, error)

	// Decrypt recovers an amount with the account's secret key.
	Decrypt(ct *core_elgamal.Ciphertext, maxAmount int64, opts keyopts.Options) (int64, error)
}
