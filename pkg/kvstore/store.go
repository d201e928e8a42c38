package kvstore

// Store is the persistence capability injected into whichever component owns
// the session cache. Implementations must be safe for single-process use;
// writes are synchronous and last-writer-wins.
type Store interface {
	// Get returns the raw value for key. The second return is false when the
	// key has never been written.
	Get(key string) ([]byte, bool)

	// Set persists value under key, replacing any previous value.
	Set(key string, value []byte) error

	// Delete removes key. Deleting an absent key is a no-op.
	Delete(key string) error
}
