package keystore

import (
	"github.com/mr-shifu/ctoken-lib/pkg/common/keyopts"
)

// Keystore combines a vault for key material with a metadata repository
// resolving account IDs to serialized key identifiers.
type Keystore interface {
	Import(ski string, key []byte, opts keyopts.Options) error
	Get(opts keyopts.Options) ([]byte, error)
	Delete(opts keyopts.Options) error
}
