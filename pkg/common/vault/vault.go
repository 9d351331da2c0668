package vault

// Vault stores raw key material by serialized key identifier. Durable
// persistence of account keys belongs to the wallet; implementations here
// are session-scoped.
type Vault interface {
	Import(keyID string, key []byte) error
	Get(keyID string) ([]byte, error)
	Delete(keyID string) error
}
