package elgamal

import (
	cryptorand "crypto/rand"
	"encoding/hex"
	"io"

	"github.com/pkg/errors"

	core_elgamal "github.com/mr-shifu/ctoken-lib/core/elgamal"
	"github.com/mr-shifu/ctoken-lib/core/math/curve"
	"github.com/mr-shifu/ctoken-lib/core/math/sample"
	cs_elgamal "github.com/mr-shifu/ctoken-lib/pkg/common/cryptosuite/elgamal"
	"github.com/mr-shifu/ctoken-lib/pkg/common/keyopts"
	"github.com/mr-shifu/ctoken-lib/pkg/common/keystore"
)

type Config struct {
	Group curve.Curve

	// Rand is the cryptographically secure randomness source for key
	// generation and encryption nonces. Nil selects crypto/rand; tests
	// inject a seeded reader here instead of patching call sites.
	Rand io.Reader
}

type ElgamalKeyManager struct {
	keystore keystore.Keystore
	cfg      *Config
}

func NewElgamalKeyManager(store keystore.Keystore, cfg *Config) *ElgamalKeyManager {
	if cfg.Rand == nil {
		cfg.Rand = cryptorand.Reader
	}
	return &ElgamalKeyManager{
		keystore: store,
		cfg:      cfg,
	}
}

// DerivePublicKey is the deterministic public-key derivation secret⋅G for
// an externally supplied secret scalar in [1, n-1].
func DerivePublicKey(secret curve.Scalar) (curve.Point, error) {
	if _, err := curve.SecretScalar(secret); err != nil {
		return nil, err
	}
	return secret.ActOnBase(), nil
}

func (mgr *ElgamalKeyManager) GenerateKey(opts keyopts.Options) (cs_elgamal.ElgamalKey, error) {
	// draw a uniform secret scalar in [1, n-1] with its public point
	sk, pk := sample.ScalarPointPair(mgr.cfg.Rand, mgr.cfg.Group)

	key := ElgamalKey{sk, pk, mgr.cfg.Group}
	return mgr.storeKey(key, opts)
}

func (mgr *ElgamalKeyManager) ImportKey(data interface{}, opts keyopts.Options) (cs_elgamal.ElgamalKey, error) {
	var key ElgamalKey
	var err error

	switch d := data.(type) {
	case []byte:
		key, err = fromBytes(d)
	case curve.Scalar:
		key, err = NewKeyFromSecret(d)
	default:
		return nil, ErrInvalidKey
	}
	if err != nil {
		return nil, err
	}

	return mgr.storeKey(key, opts)
}

func (mgr *ElgamalKeyManager) storeKey(key ElgamalKey, opts keyopts.Options) (cs_elgamal.ElgamalKey, error) {
	decoded, err := key.Bytes()
	if err != nil {
		return nil, err
	}

	// the hex-encoded SKI is the vault keyID
	ski := hex.EncodeToString(key.SKI())

	if err := mgr.keystore.Import(ski, decoded, opts); err != nil {
		return nil, errors.WithMessage(err, "elgamal: failed to store key")
	}
	return key, nil
}

func (mgr *ElgamalKeyManager) GetKey(opts keyopts.Options) (cs_elgamal.ElgamalKey, error) {
	decoded, err := mgr.keystore.Get(opts)
	if err != nil {
		return nil, errors.WithMessage(err, "elgamal: key not found")
	}

	key, err := fromBytes(decoded)
	if err != nil {
		return nil, err
	}
	return key, nil
}

func (mgr *ElgamalKeyManager) Encrypt(amount int64, opts keyopts.Options) (*core_elgamal.Ciphertext, curve.Scalar, error) {
	key, err := mgr.GetKey(opts)
	if err != nil {
		return nil, nil, err
	}
	return key.Encrypt(mgr.cfg.Rand, amount)
}

func (mgr *ElgamalKeyManager) Decrypt(ct *core_elgamal.Ciphertext, maxAmount int64, opts keyopts.Options) (int64, error) {
	key, err := mgr.GetKey(opts)
	if err != nil {
		return 0, err
	}
	return key.Decrypt(ct, maxAmount)
}
