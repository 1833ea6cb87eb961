package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/AlexZinkM/dig-wallet/internal/chain"
	"github.com/AlexZinkM/dig-wallet/internal/client"

	"github.com/kelseyhightower/envconfig"
	"golang.org/x/term"
)

const keyringFileName = "keyring.json"

// Config contains all configuration parameters for the application.
// Note: a prompted passphrase is stored in memory - use GetPassphraseBytes()
type Config struct {
	Port             string        `envconfig:"PORT" default:"8080"`
	Home             string        `envconfig:"DIG_HOME"`
	KeyringPath      string        `envconfig:"DIG_KEYRING_PATH"`
	TestKeyringPath  string        `envconfig:"TEST_KEYRING_PATH"`
	Network          string        `envconfig:"DIG_NETWORK" default:"mainnet"`
	RPCURL           string        `envconfig:"DIG_RPC_URL" default:"https://localhost:8555"`
	RPCCert          string        `envconfig:"DIG_RPC_CERT"`
	RPCKey           string        `envconfig:"DIG_RPC_KEY"`
	RPCCA            string        `envconfig:"DIG_RPC_CA"`
	Verbose          bool          `envconfig:"DIG_VERBOSE"`
	ScanConcurrency  int           `envconfig:"DIG_SCAN_CONCURRENCY" default:"8"`
	ReserveTTL       time.Duration `envconfig:"DIG_RESERVE_TTL" default:"5m"`
	Passphrase       string        `envconfig:"DIG_KEYRING_PASSPHRASE"`
	PromptPassphrase bool          `envconfig:"DIG_PROMPT_PASSPHRASE"`
}

// cfg is the global configuration instance
var cfg *Config

// Init loads configuration from environment variables.
func Init() error {
	c := &Config{}
	if err := envconfig.Process("", c); err != nil {
		return fmt.Errorf("failed to process config: %w", err)
	}
	if _, err := chain.NetworkByName(c.Network); err != nil {
		return fmt.Errorf("failed to process config: %w", err)
	}
	cfg = c
	return nil
}

// Get returns the global configuration instance.
// Panics if Init() was not called.
func Get() *Config {
	if cfg == nil {
		panic("config not initialized, call Init() first")
	}
	return cfg
}

// GetPort returns port from configuration
func GetPort() string {
	return Get().Port
}

// GetHomeDir returns the storage root, ~/.dig unless DIG_HOME is set
func GetHomeDir() (string, error) {
	if h := Get().Home; h != "" {
		return h, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not find home directory: %w", err)
	}
	return filepath.Join(home, ".dig"), nil
}

// GetKeyringPath returns the keyring document location. DIG_KEYRING_PATH
// wins over TEST_KEYRING_PATH, which wins over the storage root.
func GetKeyringPath() (string, error) {
	c := Get()
	switch {
	case c.KeyringPath != "":
		return c.KeyringPath, nil
	case c.TestKeyringPath != "":
		return c.TestKeyringPath, nil
	}
	home, err := GetHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, keyringFileName), nil
}

// GetReserveDir returns the directory of the reserved-coin store
func GetReserveDir() (string, error) {
	home, err := GetHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "reserved"), nil
}

// GetNetwork returns the configured network
func GetNetwork() chain.Network {
	n, _ := chain.NetworkByName(Get().Network)
	return n
}

// GetRPCURL returns the full node RPC URL from configuration
func GetRPCURL() string {
	return Get().RPCURL
}

// GetRPCTLSFiles returns the full node certificates. Unset paths default to
// the node's own private certificates when those exist.
func GetRPCTLSFiles() client.TLSFiles {
	c := Get()
	files := client.TLSFiles{CertFile: c.RPCCert, KeyFile: c.RPCKey, CAFile: c.RPCCA}
	if files.CertFile != "" {
		return files
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return files
	}
	ssl := filepath.Join(home, ".chia", GetNetwork().Name, "config", "ssl")
	cert := filepath.Join(ssl, "full_node", "private_full_node.crt")
	if _, err := os.Stat(cert); err != nil {
		return files
	}
	files.CertFile = cert
	files.KeyFile = filepath.Join(ssl, "full_node", "private_full_node.key")
	if files.CAFile == "" {
		files.CAFile = filepath.Join(ssl, "ca", "private_ca.crt")
	}
	return files
}

var passphraseBytes []byte

// PromptForPassphrase prompts the user for the keyring passphrase in the terminal.
// The passphrase is read without echoing (hidden input) and stored in memory.
// Call this at startup before the server begins handling requests.
func PromptForPassphrase() error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("stdin is not a terminal: run the app interactively to enter passphrase")
	}
	fmt.Fprint(os.Stderr, "Enter keyring passphrase: ")
	defer fmt.Fprintln(os.Stderr)

	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return fmt.Errorf("failed to read passphrase: %w", err)
	}
	if len(raw) == 0 {
		return errors.New("passphrase cannot be empty")
	}

	passphraseBytes = make([]byte, len(raw))
	copy(passphraseBytes, raw)
	clear(raw)
	return nil
}

// GetPassphraseBytes returns the keyring passphrase: the prompted one, else
// DIG_KEYRING_PASSPHRASE. ok is false when neither is set and the keyring's
// built-in default applies.
// Caller must zero the returned slice after use for security.
func GetPassphraseBytes() (passphrase []byte, ok bool) {
	if len(passphraseBytes) > 0 {
		out := make([]byte, len(passphraseBytes))
		copy(out, passphraseBytes)
		return out, true
	}
	if p := Get().Passphrase; p != "" {
		return []byte(p), true
	}
	return nil, false
}
