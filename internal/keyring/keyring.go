// Package keyring persists named wallets' seed phrases in a single encrypted
// JSON document. Every mutation is a read-modify-write of the whole document
// performed under an exclusive file lock and finished with an atomic rename.
// Each operation opens its own lock handle, so the same lock serializes
// goroutines of this process as well as other processes.
package keyring

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"unicode/utf8"

	"github.com/AlexZinkM/dig-wallet/internal/crypto"
	"github.com/AlexZinkM/dig-wallet/internal/model"
	"github.com/AlexZinkM/dig-wallet/internal/werr"

	"github.com/gofrs/flock"
	"github.com/google/renameio/v2"
	"github.com/sasha-s/go-deadlock"
	"go.uber.org/zap"
)

// FileName is the keyring document's name inside the storage root.
const FileName = "keyring.json"

// Store is a handle on one keyring document.
type Store struct {
	path       string
	passphrase []byte
	params     crypto.Params
	log        *zap.Logger

	// guards passphrase only; never held while waiting on the file lock
	mu deadlock.RWMutex
}

type Option func(*Store)

// WithPassphrase sets the passphrase entries are encrypted under.
func WithPassphrase(passphrase []byte) Option {
	return func(s *Store) {
		s.passphrase = append([]byte(nil), passphrase...)
	}
}

// WithScryptParams overrides the KDF cost.
func WithScryptParams(params crypto.Params) Option {
	return func(s *Store) {
		s.params = params
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(s *Store) {
		s.log = log
	}
}

// Open returns a store for the document at path. The file is not touched
// until the first operation.
func Open(path string, options ...Option) *Store {
	s := &Store{
		path:       path,
		passphrase: []byte(crypto.DefaultPassphrase),
		params:     crypto.DefaultParams,
		log:        zap.NewNop(),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// Path returns the document location.
func (s *Store) Path() string {
	return s.path
}

// Close wipes the in-memory passphrase.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.passphrase)
}

// Load reads the whole document. A missing file is an empty keyring.
func (s *Store) Load() (*model.KeyringFile, error) {
	unlock, err := s.readLock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	return s.read()
}

// secret returns a copy of the passphrase for one KDF run.
func (s *Store) secret() []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]byte(nil), s.passphrase...)
}

// Get decrypts the seed phrase stored under name. ok is false when the name
// is absent.
func (s *Store) Get(name string) (phrase string, ok bool, err error) {
	doc, err := s.Load()
	if err != nil {
		return "", false, err
	}

	entry, ok := doc.Wallets[name]
	if !ok {
		return "", false, nil
	}

	passphrase := s.secret()
	defer clear(passphrase)

	plaintext, err := crypto.DecryptSecret(&entry, passphrase, s.params)
	if err != nil {
		return "", false, err
	}
	defer clear(plaintext)

	if !utf8.Valid(plaintext) {
		return "", false, werr.New(werr.KindCrypto, "decrypted data is not valid text")
	}
	return string(plaintext), true, nil
}

// Put encrypts phrase with a fresh salt and nonce and stores it under name,
// replacing any previous entry of that name.
func (s *Store) Put(name, phrase string) error {
	plaintext := []byte(phrase)
	defer clear(plaintext)

	passphrase := s.secret()
	defer clear(passphrase)

	entry, err := crypto.EncryptSecret(plaintext, passphrase, s.params)
	if err != nil {
		return err
	}

	return s.update(func(doc *model.KeyringFile) (bool, error) {
		doc.Wallets[name] = *entry
		return true, nil
	})
}

// Insert stores phrase under name unless that name is already taken, in
// which case it fails with ErrWalletExists and leaves the document alone.
func (s *Store) Insert(name, phrase string) error {
	plaintext := []byte(phrase)
	defer clear(plaintext)

	passphrase := s.secret()
	defer clear(passphrase)

	entry, err := crypto.EncryptSecret(plaintext, passphrase, s.params)
	if err != nil {
		return err
	}

	return s.update(func(doc *model.KeyringFile) (bool, error) {
		if _, ok := doc.Wallets[name]; ok {
			return false, werr.New(werr.KindWalletExists, name)
		}
		doc.Wallets[name] = *entry
		return true, nil
	})
}

// Remove deletes name. It reports false, without error, when name is absent.
func (s *Store) Remove(name string) (bool, error) {
	var removed bool
	err := s.update(func(doc *model.KeyringFile) (bool, error) {
		if _, ok := doc.Wallets[name]; !ok {
			return false, nil
		}
		delete(doc.Wallets, name)
		removed = true
		return true, nil
	})
	return removed, err
}

// List returns the stored wallet names in sorted order.
func (s *Store) List() ([]string, error) {
	doc, err := s.Load()
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(doc.Wallets))
	for name := range doc.Wallets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// ReencryptLegacy rewrites every legacy-format entry under the store's
// passphrase and returns the names it migrated.
func (s *Store) ReencryptLegacy() ([]string, error) {
	passphrase := s.secret()
	defer clear(passphrase)

	var migrated []string
	err := s.update(func(doc *model.KeyringFile) (bool, error) {
		for name, entry := range doc.Wallets {
			legacy, err := crypto.IsLegacy(&entry)
			if err != nil {
				return false, err
			}
			if !legacy {
				continue
			}

			plaintext, err := crypto.DecryptSecret(&entry, passphrase, s.params)
			if err != nil {
				return false, err
			}
			fresh, err := crypto.EncryptSecret(plaintext, passphrase, s.params)
			clear(plaintext)
			if err != nil {
				return false, err
			}

			doc.Wallets[name] = *fresh
			migrated = append(migrated, name)
		}
		sort.Strings(migrated)
		return len(migrated) > 0, nil
	})
	return migrated, err
}

// update runs fn on the current document while holding the exclusive file
// lock and persists the result when fn reports a change.
func (s *Store) update(fn func(doc *model.KeyringFile) (bool, error)) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return werr.Wrap(werr.KindFileSystem, "failed to create keyring directory", err)
	}
	lock := s.fileLock()
	if err := lock.Lock(); err != nil {
		_ = lock.Close()
		return werr.Wrap(werr.KindFileSystem, "failed to lock keyring", err)
	}
	defer s.unlock(lock)

	doc, err := s.read()
	if err != nil {
		return err
	}

	changed, err := fn(doc)
	if err != nil || !changed {
		return err
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return werr.Wrap(werr.KindSerialization, "failed to marshal keyring", err)
	}

	if err := renameio.WriteFile(s.path, data, 0600); err != nil {
		return werr.Wrap(werr.KindFileSystem, "failed to write keyring", err)
	}

	s.log.Debug("keyring written", zap.String("path", s.path), zap.Int("wallets", len(doc.Wallets)))
	return nil
}

func (s *Store) read() (*model.KeyringFile, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return emptyDocument(), nil
	}
	if err != nil {
		return nil, werr.Wrap(werr.KindFileSystem, "failed to read keyring", err)
	}

	doc := emptyDocument()
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, werr.Wrap(werr.KindSerialization, "failed to unmarshal keyring", err)
	}
	if doc.Wallets == nil {
		doc.Wallets = map[string]model.EncryptedEntry{}
	}
	return doc, nil
}

// readLock takes a shared lock when the directory exists. A missing
// directory means there is nothing to read yet.
func (s *Store) readLock() (func(), error) {
	if _, err := os.Stat(filepath.Dir(s.path)); errors.Is(err, fs.ErrNotExist) {
		return func() {}, nil
	}

	lock := s.fileLock()
	if err := lock.RLock(); err != nil {
		_ = lock.Close()
		return nil, werr.Wrap(werr.KindFileSystem, "failed to lock keyring", err)
	}
	return func() { s.unlock(lock) }, nil
}

// fileLock opens a fresh handle. flock locks held through different open
// files conflict even within one process, which a shared handle would not.
func (s *Store) fileLock() *flock.Flock {
	return flock.New(s.path + ".lock")
}

// unlock releases the lock and closes its handle.
func (s *Store) unlock(lock *flock.Flock) {
	if err := lock.Close(); err != nil {
		s.log.Warn("failed to unlock keyring", zap.String("path", s.path), zap.Error(err))
	}
}

func emptyDocument() *model.KeyringFile {
	return &model.KeyringFile{Wallets: map[string]model.EncryptedEntry{}}
}
