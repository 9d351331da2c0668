package keyopts

// KeyData is the metadata stored for an account key: the owning account
// and the serialized key identifier under which the key material lives.
type KeyData struct {
	Account string
	SKI     string
}

type Options interface {
	Set(kVs ...interface{}) error
	Get(key string) (interface{}, bool)
}

// KeyOpts manages the storage of key metadata referred to by an account ID.
type KeyOpts interface {
	// Import imports key metadata (the SKI) for the account in opts.
	Import(data interface{}, opts Options) error

	// Get returns the key metadata for the account in opts.
	Get(opts Options) (*KeyData, error)

	// Delete deletes the key metadata for the account in opts.
	Delete(opts Options) error
}
