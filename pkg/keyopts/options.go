package keyopts

import (
	"errors"

	com_keyopts "github.com/mr-shifu/ctoken-lib/pkg/common/keyopts"
)

type Options map[string]interface{}

var _ com_keyopts.Options = Options{}

func (opts Options) Set(kVs ...interface{}) error {
	if len(kVs)%2 != 0 {
		return errors.New("keyopts: invalid options")
	}

	for i := 0; i < len(kVs); i += 2 {
		key, ok := kVs[i].(string)
		if !ok {
			return errors.New("keyopts: option key must be a string")
		}
		opts[key] = kVs[i+1]
	}

	return nil
}

func (opts Options) Get(key string) (interface{}, bool) {
	val, ok := opts[key]
	return val, ok
}
