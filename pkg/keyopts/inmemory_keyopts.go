package keyopts

import (
	"errors"
	"sync"

	"github.com/mr-shifu/ctoken-lib/pkg/common/keyopts"
)

var (
	ErrInvalidParamsAccount = errors.New("keyopts: invalid account")
	ErrKeyNotFound          = errors.New("keyopts: key not found")
)

// KeyOpts maps account IDs to key metadata (the SKI of the stored key).
type KeyOpts struct {
	lock sync.RWMutex

	keys map[string]*keyopts.KeyData
}

func NewInMemoryKeyOpts() *KeyOpts {
	return &KeyOpts{
		keys: make(map[string]*keyopts.KeyData),
	}
}

func accountFromOpts(opts keyopts.Options) (string, error) {
	v, ok := opts.Get("account")
	if !ok {
		return "", ErrInvalidParamsAccount
	}
	account, ok := v.(string)
	if !ok || account == "" {
		return "", ErrInvalidParamsAccount
	}
	return account, nil
}

func (kr *KeyOpts) Import(data interface{}, opts keyopts.Options) error {
	kr.lock.Lock()
	defer kr.lock.Unlock()

	account, err := accountFromOpts(opts)
	if err != nil {
		return err
	}

	ski, ok := data.(string)
	if !ok {
		return errors.New("keyopts: invalid data")
	}

	kr.keys[account] = &keyopts.KeyData{
		Account: account,
		SKI:     ski,
	}
	return nil
}

func (kr *KeyOpts) Get(opts keyopts.Options) (*keyopts.KeyData, error) {
	kr.lock.RLock()
	defer kr.lock.RUnlock()

	account, err := accountFromOpts(opts)
	if err != nil {
		return nil, err
	}

	kd, ok := kr.keys[account]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return kd, nil
}

func (kr *KeyOpts) Delete(opts keyopts.Options) error {
	kr.lock.Lock()
	defer kr.lock.Unlock()

	account, err := accountFromOpts(opts)
	if err != nil {
		return err
	}

	delete(kr.keys, account)
	return nil
}
