// digwallet manages the local keyring and queries coins from the command line.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/AlexZinkM/dig-wallet/internal/app"
	"github.com/AlexZinkM/dig-wallet/internal/config"

	"github.com/urfave/cli"
	"go.uber.org/zap"
)

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "[digwallet] %v\n", err)
	os.Exit(1)
}

func main() {
	cliApp := cli.NewApp()
	cliApp.Name = "digwallet"
	cliApp.Usage = "keyring, ownership proofs and coin selection for XCH and DIG"
	cliApp.Flags = []cli.Flag{
		cli.StringFlag{
			Name:   "keyring",
			Usage:  "Path to the keyring document.",
			EnvVar: "DIG_KEYRING_PATH",
		},
		cli.StringFlag{
			Name:   "network",
			Value:  "mainnet",
			Usage:  "The network to use (mainnet, testnet11).",
			EnvVar: "DIG_NETWORK",
		},
		cli.BoolFlag{
			Name:   "verbose",
			Usage:  "Log every token coin dropped during lineage checks.",
			EnvVar: "DIG_VERBOSE",
		},
		cli.BoolFlag{
			Name:  "prompt",
			Usage: "Prompt for the keyring passphrase.",
		},
	}
	cliApp.Before = setup
	cliApp.Commands = []cli.Command{
		createCommand,
		importCommand,
		listCommand,
		deleteCommand,
		showCommand,
		signCommand,
		verifyCommand,
		balanceCommand,
		selectCommand,
		spendableCommand,
	}

	if err := cliApp.Run(os.Args); err != nil {
		fatal(err)
	}
}

// setup lets global flags override the environment before config loads.
func setup(ctx *cli.Context) error {
	if v := ctx.GlobalString("keyring"); v != "" {
		os.Setenv("DIG_KEYRING_PATH", v)
	}
	os.Setenv("DIG_NETWORK", ctx.GlobalString("network"))
	if ctx.GlobalBool("verbose") {
		os.Setenv("DIG_VERBOSE", "true")
	}

	if err := config.Init(); err != nil {
		return err
	}
	if ctx.GlobalBool("prompt") || config.Get().PromptPassphrase {
		return config.PromptForPassphrase()
	}
	return nil
}

func newLogger() *zap.Logger {
	log, err := app.NewLogger()
	if err != nil {
		return zap.NewNop()
	}
	return log
}

// openKeyring opens the keyring only; commands that need the node use
// openWithNode.
func openKeyring() (*app.Wallet, func()) {
	log := newLogger()
	w, err := app.OpenKeyring(log)
	if err != nil {
		fatal(err)
	}
	return w, func() {
		w.Close()
		_ = log.Sync()
	}
}

func openWithNode() (*app.Wallet, func()) {
	log := newLogger()
	w, err := app.Open(log)
	if err != nil {
		fatal(err)
	}
	return w, func() {
		w.Close()
		_ = log.Sync()
	}
}

func printJSON(v any) {
	b, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		fatal(err)
	}
	fmt.Println(string(b))
}
