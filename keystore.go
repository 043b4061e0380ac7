package secretbin

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// keyPrefix tags every cache entry. The full storage key is
// "sbpvk:{id}:{burnAt}", the same format the browser client uses in
// LocalStorage, so the burn deadline is recoverable from the key alone.
const keyPrefix = "sbpvk"

// KeyStore is a durable cache of private keys for end-to-end requests, one
// file per entry with the storage key as the file name (":" swapped for "."
// on disk, since NTFS forbids colons in file names). Entries expire at their
// burn deadline and are removed by Sweep. The directory may be shared by
// several processes; Sweep judges every entry independently, so it can race a
// Put from another process without removing the fresh entry.
type KeyStore struct {
	dir string
	now func() time.Time
}

// NewKeyStore opens (creating if needed) a key store backed by dir.
func NewKeyStore(dir string) (*KeyStore, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create key store dir: %w", err)
	}
	return &KeyStore{
		dir: dir,
		now: time.Now,
	}, nil
}

// DefaultKeyStoreDir returns the per-user default key store location.
func DefaultKeyStoreDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(base, "secretbin", "keys"), nil
}

// storageKey builds the composite cache key for an entry.
func storageKey(id string, burnAt time.Time) string {
	return fmt.Sprintf("%s:%s:%d", keyPrefix, id, burnAt.Unix())
}

// fileName maps a storage key to its on-disk file name and back. The mapping
// is reversible because Put rejects ids containing either separator.
func fileName(key string) string {
	return strings.ReplaceAll(key, ":", ".")
}

func keyFromFileName(name string) string {
	return strings.ReplaceAll(name, ".", ":")
}

// parseStorageKey splits a storage key into its id and burn time. Keys that
// do not parse are treated as expired by Sweep.
func parseStorageKey(key string) (id string, burnAt int64, err error) {
	parts := strings.Split(key, ":")
	if len(parts) != 3 || parts[0] != keyPrefix || parts[1] == "" {
		return "", 0, fmt.Errorf("malformed storage key %q", key)
	}
	burnAt, err = strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return "", 0, fmt.Errorf("malformed burn time in storage key %q", key)
	}
	return parts[1], burnAt, nil
}

// Put stores a PEM private key for the given secret id until burnAt. Ids are
// restricted to characters that survive the file-name mapping.
func (ks *KeyStore) Put(id, pemKey string, burnAt time.Time) error {
	if id == "" || strings.ContainsAny(id, `:./\`) {
		return &ValidationError{Fields: []string{"id"}}
	}
	path := filepath.Join(ks.dir, fileName(storageKey(id, burnAt)))
	if err := os.WriteFile(path, []byte(pemKey), 0600); err != nil {
		return fmt.Errorf("store private key: %w", err)
	}
	return nil
}

// Get returns the cached PEM private key for a secret id, or ErrNoStoredKey
// when no live entry exists. When several entries share an id, the one with
// the latest burn deadline wins; expired entries are ignored but left for
// Sweep to remove.
func (ks *KeyStore) Get(id string) (string, error) {
	entries, err := os.ReadDir(ks.dir)
	if err != nil {
		return "", fmt.Errorf("read key store: %w", err)
	}

	nowUnix := ks.now().Unix()
	var bestKey string
	var bestBurnAt int64

	for _, entry := range entries {
		entryID, burnAt, err := parseStorageKey(keyFromFileName(entry.Name()))
		if err != nil || entryID != id {
			continue
		}
		if burnAt < nowUnix {
			continue
		}
		if bestKey == "" || burnAt > bestBurnAt {
			bestKey = entry.Name()
			bestBurnAt = burnAt
		}
	}

	if bestKey == "" {
		return "", ErrNoStoredKey
	}

	pemKey, err := os.ReadFile(filepath.Join(ks.dir, bestKey))
	if err != nil {
		if os.IsNotExist(err) {
			// Removed between listing and read, e.g. by a concurrent sweep.
			return "", ErrNoStoredKey
		}
		return "", fmt.Errorf("read private key: %w", err)
	}
	return string(pemKey), nil
}

// Delete removes all cache entries for a secret id, live or expired.
func (ks *KeyStore) Delete(id string) error {
	entries, err := os.ReadDir(ks.dir)
	if err != nil {
		return fmt.Errorf("read key store: %w", err)
	}
	for _, entry := range entries {
		entryID, _, err := parseStorageKey(keyFromFileName(entry.Name()))
		if err != nil || entryID != id {
			continue
		}
		if err := os.Remove(filepath.Join(ks.dir, entry.Name())); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove private key: %w", err)
		}
	}
	return nil
}

// Sweep removes every entry whose burn deadline has passed and every entry
// whose key does not parse. It is idempotent and safe to call at any time:
// valid, unexpired entries are never touched, and each entry is judged on
// its own key rather than on any earlier snapshot.
func (ks *KeyStore) Sweep() error {
	entries, err := os.ReadDir(ks.dir)
	if err != nil {
		return fmt.Errorf("read key store: %w", err)
	}

	nowUnix := ks.now().Unix()
	for _, entry := range entries {
		if !strings.HasPrefix(entry.Name(), keyPrefix+".") {
			continue
		}
		_, burnAt, err := parseStorageKey(keyFromFileName(entry.Name()))
		if err == nil && nowUnix <= burnAt {
			continue
		}
		// Expired or malformed; a failed remove is retried on the next sweep.
		if err := os.Remove(filepath.Join(ks.dir, entry.Name())); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove expired key: %w", err)
		}
	}
	return nil
}
