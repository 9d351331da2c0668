package keystore

import (
	"errors"

	"github.com/mr-shifu/ctoken-lib/pkg/common/keyopts"
	"github.com/mr-shifu/ctoken-lib/pkg/common/vault"
)

var (
	ErrKeyNotFound = errors.New("keystore: key not found")
)

type InMemoryKeystore struct {
	v  vault.Vault
	kr keyopts.KeyOpts
}

func NewInMemoryKeystore(v vault.Vault, kr keyopts.KeyOpts) *InMemoryKeystore {
	return &InMemoryKeystore{
		v:  v,
		kr: kr,
	}
}

func (ks *InMemoryKeystore) Import(ski string, key []byte, opts keyopts.Options) error {
	// store key material to vault
	if err := ks.v.Import(ski, key); err != nil {
		return err
	}

	// import key metadata to the repository
	if err := ks.kr.Import(ski, opts); err != nil {
		return err
	}

	return nil
}

func (ks *InMemoryKeystore) Get(opts keyopts.Options) ([]byte, error) {
	kd, err := ks.kr.Get(opts)
	if err != nil {
		return nil, err
	}
	if kd.SKI == "" {
		return nil, ErrKeyNotFound
	}

	return ks.v.Get(kd.SKI)
}

func (ks *InMemoryKeystore) Delete(opts keyopts.Options) error {
	kd, err := ks.kr.Get(opts)
	if err != nil {
		return err
	}

	if err := ks.v.Delete(kd.SKI); err != nil {
		return err
	}

	return ks.kr.Delete(opts)
}
