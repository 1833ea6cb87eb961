// One-off: rewrite keyring entries stored in the legacy fixed-key format
// under the configured passphrase. Output: names of the migrated wallets.
// Usage: go run ./cmd/reencrypt_keyring
package main

import (
	"fmt"
	"os"

	"github.com/AlexZinkM/dig-wallet/internal/app"
	"github.com/AlexZinkM/dig-wallet/internal/config"
)

func main() {
	if err := config.Init(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if config.Get().PromptPassphrase {
		if err := config.PromptForPassphrase(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	log, err := app.NewLogger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	w, err := app.OpenKeyring(log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer w.Close()

	names, err := w.Manager.ReencryptLegacy()
	if err != nil {
		fmt.Fprintln(os.Stderr, "re-encrypt failed:", err)
		os.Exit(1)
	}
	if len(names) == 0 {
		fmt.Println("no legacy entries in", w.Manager.KeyringPath())
		return
	}
	for _, name := range names {
		fmt.Println(name)
	}
}
