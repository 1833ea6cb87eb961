package wallet

import (
	"github.com/AlexZinkM/dig-wallet/internal/crypto"
	"github.com/AlexZinkM/dig-wallet/internal/keyring"
	"github.com/AlexZinkM/dig-wallet/internal/keys"
	"github.com/AlexZinkM/dig-wallet/internal/werr"

	"go.uber.org/zap"
)

// DefaultName is the wallet used when a caller does not name one.
const DefaultName = "default"

// ScryptParams tunes the keyring KDF.
type ScryptParams = crypto.Params

// Manager owns the named wallets of one keyring document.
type Manager struct {
	store *keyring.Store
	log   *zap.Logger
}

type Option func(*managerOptions)

type managerOptions struct {
	keyring []keyring.Option
	log     *zap.Logger
}

// WithPassphrase encrypts new entries under passphrase instead of the
// built-in default.
func WithPassphrase(passphrase []byte) Option {
	return func(o *managerOptions) {
		o.keyring = append(o.keyring, keyring.WithPassphrase(passphrase))
	}
}

// WithScryptParams overrides the KDF cost, mostly for tests.
func WithScryptParams(params ScryptParams) Option {
	return func(o *managerOptions) {
		o.keyring = append(o.keyring, keyring.WithScryptParams(params))
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(o *managerOptions) {
		if log != nil {
			o.log = log
		}
	}
}

// New returns a manager for the keyring at keyringPath. Nothing is read or
// written until the first call.
func New(keyringPath string, options ...Option) *Manager {
	o := &managerOptions{log: zap.NewNop()}
	for _, option := range options {
		option(o)
	}
	o.keyring = append(o.keyring, keyring.WithLogger(o.log))

	return &Manager{
		store: keyring.Open(keyringPath, o.keyring...),
		log:   o.log,
	}
}

// KeyringPath returns the keyring document location.
func (m *Manager) KeyringPath() string {
	return m.store.Path()
}

// Close wipes the passphrase held in memory.
func (m *Manager) Close() {
	m.store.Close()
}

// Load opens the wallet called name, or DefaultName when name is empty. A
// missing wallet is created when createOnUndefined is set and reported as
// ErrWalletNotFound otherwise.
func (m *Manager) Load(name string, createOnUndefined bool) (*Wallet, error) {
	if name == "" {
		name = DefaultName
	}

	phrase, ok, err := m.store.Get(name)
	if err != nil {
		return nil, err
	}
	if ok {
		return &Wallet{name: name, mnemonic: phrase}, nil
	}
	if !createOnUndefined {
		return nil, werr.WalletNotFound(name)
	}

	phrase, err = m.Create(name)
	if err != nil {
		return nil, err
	}
	return &Wallet{name: name, mnemonic: phrase}, nil
}

// Create generates a 24-word phrase, stores it under name and returns it.
// An existing name is refused with ErrWalletExists.
func (m *Manager) Create(name string) (string, error) {
	if name == "" {
		name = DefaultName
	}

	phrase, err := keys.NewMnemonic()
	if err != nil {
		return "", err
	}
	if err := m.store.Insert(name, phrase); err != nil {
		return "", err
	}

	m.log.Info("wallet created", zap.String("name", name))
	return phrase, nil
}

// Import validates phrase and stores its normalized form under name.
func (m *Manager) Import(name, phrase string) (string, error) {
	if name == "" {
		name = DefaultName
	}
	if err := keys.ValidateMnemonic(phrase); err != nil {
		return "", err
	}

	normalized := keys.NormalizeMnemonic(phrase)
	if err := m.store.Insert(name, normalized); err != nil {
		return "", err
	}

	m.log.Info("wallet imported", zap.String("name", name))
	return normalized, nil
}

// Delete removes name and reports whether it existed.
func (m *Manager) Delete(name string) (bool, error) {
	removed, err := m.store.Remove(name)
	if err != nil {
		return false, err
	}
	if removed {
		m.log.Info("wallet deleted", zap.String("name", name))
	}
	return removed, nil
}

// List returns the wallet names in sorted order.
func (m *Manager) List() ([]string, error) {
	return m.store.List()
}

// ReencryptLegacy moves entries written in the legacy format onto the
// manager's passphrase and returns their names.
func (m *Manager) ReencryptLegacy() ([]string, error) {
	names, err := m.store.ReencryptLegacy()
	if err != nil {
		return nil, err
	}
	for _, name := range names {
		m.log.Info("wallet re-encrypted", zap.String("name", name))
	}
	return names, nil
}
