package elgamal

import (
	"crypto/sha256"
	"errors"
	"io"

	"github.com/fxamacker/cbor/v2"

	core_elgamal "github.com/mr-shifu/ctoken-lib/core/elgamal"
	"github.com/mr-shifu/ctoken-lib/core/math/curve"
	cs_elgamal "github.com/mr-shifu/ctoken-lib/pkg/common/cryptosuite/elgamal"
)

var (
	ErrInvalidKey = errors.New("elgamal: invalid key")
	ErrNotPrivate = errors.New("elgamal: key has no secret part")
)

// ElgamalKey is an account key pair. The public key always equals
// secretKey⋅G; a public-only key has a nil secret part.
type ElgamalKey struct {
	secretKey curve.Scalar
	publicKey curve.Point
	group     curve.Curve
}

type rawElgamalKey struct {
	Group  string
	Secret []byte
	Public []byte
}

// NewKeyFromSecret derives the account key for an externally supplied
// secret scalar, validating that it lies in [1, n-1].
func NewKeyFromSecret(secret curve.Scalar) (ElgamalKey, error) {
	if _, err := curve.SecretScalar(secret); err != nil {
		return ElgamalKey{}, err
	}
	return ElgamalKey{secret, secret.ActOnBase(), secret.Curve()}, nil
}

func (key ElgamalKey) Bytes() ([]byte, error) {
	raw := &rawElgamalKey{}

	raw.Group = key.group.Name()

	pub, err := key.publicKey.MarshalBinary()
	if err != nil {
		return nil, err
	}
	raw.Public = pub

	if key.Private() {
		priv, err := key.secretKey.MarshalBinary()
		if err != nil {
			return nil, err
		}
		raw.Secret = priv
	}
	return cbor.Marshal(raw)
}

func (key ElgamalKey) SKI() []byte {
	raw, err := key.publicKey.MarshalBinary()
	if err != nil {
		return nil
	}
	hash := sha256.New()
	hash.Write(raw)
	return hash.Sum(nil)
}

func (key ElgamalKey) Private() bool {
	return key.secretKey != nil
}

func (key ElgamalKey) PublicKey() cs_elgamal.ElgamalKey {
	return ElgamalKey{nil, key.publicKey, key.group}
}

func (key ElgamalKey) PublicKeyRaw() curve.Point {
	return key.publicKey
}

func (key ElgamalKey) Encrypt(rand io.Reader, amount int64) (*core_elgamal.Ciphertext, curve.Scalar, error) {
	return encryptAmount(rand, key.publicKey, amount)
}

func encryptAmount(rand io.Reader, public curve.Point, amount int64) (*core_elgamal.Ciphertext, curve.Scalar, error) {
	ct, nonce, err := core_elgamal.Encrypt(rand, public, amount)
	if err != nil {
		return nil, nil, err
	}
	return ct, nonce, nil
}

func (key ElgamalKey) Decrypt(ct *core_elgamal.Ciphertext, maxAmount int64) (int64, error) {
	if !key.Private() {
		return 0, ErrNotPrivate
	}
	return core_elgamal.Decrypt(ct, key.secretKey, maxAmount)
}

func fromBytes(data []byte) (ElgamalKey, error) {
	key := ElgamalKey{}

	raw := &rawElgamalKey{}
	if err := cbor.Unmarshal(data, raw); err != nil {
		return ElgamalKey{}, err
	}

	var group curve.Curve
	switch raw.Group {
	case "secp256k1":
		group = curve.Secp256k1{}
	default:
		return ElgamalKey{}, ErrInvalidKey
	}
	key.group = group

	if len(raw.Secret) > 0 {
		secret := group.NewScalar()
		if err := secret.UnmarshalBinary(raw.Secret); err != nil {
			return ElgamalKey{}, err
		}
		if _, err := curve.SecretScalar(secret); err != nil {
			return ElgamalKey{}, err
		}
		key.secretKey = secret
	}

	pub := group.NewPoint()
	if err := pub.UnmarshalBinary(raw.Public); err != nil {
		return ElgamalKey{}, err
	}
	key.publicKey = pub

	if key.Private() && !key.secretKey.ActOnBase().Equal(key.publicKey) {
		return ElgamalKey{}, ErrInvalidKey
	}

	return key, nil
}
