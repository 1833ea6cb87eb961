package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/AlexZinkM/dig-wallet/internal/chain"
	"github.com/AlexZinkM/dig-wallet/internal/common"
	"github.com/AlexZinkM/dig-wallet/internal/model"
	"github.com/AlexZinkM/dig-wallet/wallet"

	"github.com/urfave/cli"
)

var nameFlag = cli.StringFlag{
	Name:  "name",
	Value: wallet.DefaultName,
	Usage: "The wallet to use.",
}

var createCommand = cli.Command{
	Name:      "create",
	Usage:     "Generate a new wallet and store it in the keyring.",
	ArgsUsage: "[name]",
	Description: `
	Generates a 24-word seed phrase and stores it encrypted under name.
	The phrase is printed once. Write it down: it is the only backup.`,
	Action: create,
}

func create(ctx *cli.Context) error {
	w, cleanUp := openKeyring()
	defer cleanUp()

	name := ctx.Args().First()
	phrase, err := w.Manager.Create(name)
	if err != nil {
		return err
	}
	created, err := wallet.FromMnemonic(name, phrase)
	if err != nil {
		return err
	}
	address, err := created.OwnerAddress(w.Network.AddressPrefix)
	if err != nil {
		return err
	}

	printJSON(model.GenerateResponse{
		Success:  true,
		Message:  "Wallet generated successfully",
		Name:     nameOrDefault(name),
		Address:  address,
		Mnemonic: phrase,
	})
	return nil
}

var importCommand = cli.Command{
	Name:      "import",
	Usage:     "Import a wallet from its seed phrase.",
	ArgsUsage: "word1 word2 ... word24",
	Flags:     []cli.Flag{nameFlag},
	Action:    importWallet,
}

func importWallet(ctx *cli.Context) error {
	w, cleanUp := openKeyring()
	defer cleanUp()

	name := ctx.String("name")
	phrase, err := w.Manager.Import(name, strings.Join(ctx.Args(), " "))
	if err != nil {
		return err
	}
	imported, err := wallet.FromMnemonic(name, phrase)
	if err != nil {
		return err
	}
	address, err := imported.OwnerAddress(w.Network.AddressPrefix)
	if err != nil {
		return err
	}

	printJSON(model.GenerateResponse{
		Success: true,
		Message: "Wallet imported successfully",
		Name:    name,
		Address: address,
	})
	return nil
}

var listCommand = cli.Command{
	Name:   "list",
	Usage:  "List the wallets in the keyring.",
	Action: list,
}

func list(_ *cli.Context) error {
	w, cleanUp := openKeyring()
	defer cleanUp()

	names, err := w.Manager.List()
	if err != nil {
		return err
	}
	printJSON(model.ListResponse{Wallets: names})
	return nil
}

var deleteCommand = cli.Command{
	Name:      "delete",
	Usage:     "Remove a wallet from the keyring.",
	ArgsUsage: "name",
	Action:    deleteWallet,
}

func deleteWallet(ctx *cli.Context) error {
	name := ctx.Args().First()
	if name == "" {
		return cli.ShowCommandHelp(ctx, "delete")
	}

	w, cleanUp := openKeyring()
	defer cleanUp()

	removed, err := w.Manager.Delete(name)
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("%w: %s", wallet.ErrWalletNotFound, name)
	}
	printJSON(model.DeleteResponse{Success: true, Message: fmt.Sprintf("Wallet %q deleted", name)})
	return nil
}

var showCommand = cli.Command{
	Name:  "show",
	Usage: "Show a wallet's address and public key.",
	Flags: []cli.Flag{
		nameFlag,
		cli.BoolFlag{
			Name:  "mnemonic",
			Usage: "Also print the seed phrase.",
		},
	},
	Action: show,
}

func show(ctx *cli.Context) error {
	w, cleanUp := openKeyring()
	defer cleanUp()

	wl, err := w.Manager.Load(ctx.String("name"), false)
	if err != nil {
		return err
	}
	ph, err := wl.OwnerPuzzleHash()
	if err != nil {
		return err
	}
	address, err := wallet.PuzzleHashToAddress(ph, w.Network.AddressPrefix)
	if err != nil {
		return err
	}
	publicKey, err := wl.PublicSyntheticKeyHex()
	if err != nil {
		return err
	}

	out := struct {
		model.AddressResponse
		Mnemonic string `json:"mnemonic,omitempty"`
	}{
		AddressResponse: model.AddressResponse{
			Name:       wl.Name(),
			Address:    address,
			PuzzleHash: ph.String(),
			PublicKey:  publicKey,
		},
	}
	if ctx.Bool("mnemonic") {
		if out.Mnemonic, err = wl.Mnemonic(); err != nil {
			return err
		}
	}
	printJSON(out)
	return nil
}

var signCommand = cli.Command{
	Name:      "sign",
	Usage:     "Sign a nonce to prove ownership of the wallet's key.",
	ArgsUsage: "nonce",
	Flags:     []cli.Flag{nameFlag},
	Action:    sign,
}

func sign(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return cli.ShowCommandHelp(ctx, "sign")
	}

	w, cleanUp := openKeyring()
	defer cleanUp()

	wl, err := w.Manager.Load(ctx.String("name"), false)
	if err != nil {
		return err
	}
	signature, err := wl.CreateKeyOwnershipSignature(ctx.Args().First())
	if err != nil {
		return err
	}
	publicKey, err := wl.PublicSyntheticKeyHex()
	if err != nil {
		return err
	}
	printJSON(model.SignResponse{Signature: signature, PublicKey: publicKey})
	return nil
}

var verifyCommand = cli.Command{
	Name:      "verify",
	Usage:     "Check an ownership signature.",
	ArgsUsage: "nonce signature public_key",
	Action:    verify,
}

func verify(ctx *cli.Context) error {
	args := ctx.Args()
	if len(args) != 3 {
		return cli.ShowCommandHelp(ctx, "verify")
	}

	valid, err := wallet.VerifyKeyOwnershipSignature(args[0], args[1], args[2])
	if err != nil {
		return err
	}
	printJSON(model.VerifyResponse{Valid: valid})
	return nil
}

var balanceCommand = cli.Command{
	Name:   "balance",
	Usage:  "Sum the wallet's XCH and DIG coins.",
	Flags:  []cli.Flag{nameFlag},
	Action: balance,
}

func balance(ctx *cli.Context) error {
	w, cleanUp := openWithNode()
	defer cleanUp()

	wl, err := w.Manager.Load(ctx.String("name"), false)
	if err != nil {
		return err
	}
	ctxb := context.Background()

	mojos, err := wl.XCHBalance(ctxb, w.Coins)
	if err != nil {
		return err
	}
	units, err := wl.TokenBalance(ctxb, w.Coins)
	if err != nil {
		return err
	}
	address, err := wl.OwnerAddress(w.Network.AddressPrefix)
	if err != nil {
		return err
	}

	printJSON(model.BalanceResponse{
		Address: address,
		XCH:     common.MojosToXCH(mojos),
		DIG:     common.CATUnitsToAmount(units),
	})
	return nil
}

var selectCommand = cli.Command{
	Name:  "select",
	Usage: "Select coins covering an amount plus fee.",
	Description: `
	Selects XCH coins, or with --token DIG coins plus XCH coins for the fee.
	Selected coins are reserved so later selections skip them until the
	reservation expires.`,
	Flags: []cli.Flag{
		nameFlag,
		cli.StringFlag{
			Name:  "amount",
			Usage: "The amount in XCH, or DIG with --token.",
		},
		cli.StringFlag{
			Name:  "fee",
			Usage: "The fee in XCH. Defaults to 0, or the fee coin cost with --token.",
		},
		cli.BoolFlag{
			Name:  "token",
			Usage: "Select DIG coins.",
		},
	},
	Action: selectCoins,
}

type tokenSelection struct {
	Tokens   model.SelectCoinsResponse `json:"tokens"`
	FeeCoins model.SelectCoinsResponse `json:"feeCoins"`
}

func selectCoins(ctx *cli.Context) error {
	if ctx.String("amount") == "" {
		return cli.ShowCommandHelp(ctx, "select")
	}

	fee := ctx.String("fee")
	if fee == "" {
		fee = "0"
		if ctx.Bool("token") {
			fee = common.MojosToXCH(wallet.DefaultFeeCoinCost)
		}
	}
	feeMojos, err := common.XCHToMojos(fee)
	if err != nil {
		return err
	}

	w, cleanUp := openWithNode()
	defer cleanUp()

	wl, err := w.Manager.Load(ctx.String("name"), false)
	if err != nil {
		return err
	}
	ctxb := context.Background()

	if !ctx.Bool("token") {
		amount := ctx.String("amount")
		if cmp, err := common.CompareXCHAmounts(fee, amount); err == nil && cmp > 0 {
			fmt.Fprintf(os.Stderr, "warning: fee %s exceeds amount %s\n", fee, amount)
		}
		mojos, err := common.XCHToMojos(amount)
		if err != nil {
			return err
		}
		coins, err := wl.SelectUnspentCoins(ctxb, w.Coins, mojos, feeMojos, nil)
		if err != nil {
			return err
		}
		printJSON(model.SelectCoinsResponse{Coins: coins, Total: chain.SumAmounts(coins)})
		return nil
	}

	units, err := common.AmountToCATUnits(ctx.String("amount"))
	if err != nil {
		return err
	}
	tokens, err := wl.SelectUnspentTokenCoins(ctxb, w.Coins, units, 0, nil)
	if err != nil {
		return err
	}

	var feeCoins []chain.Coin
	if feeMojos > 0 {
		feeCoins, err = wl.SelectUnspentCoins(ctxb, w.Coins, 0, feeMojos, nil)
		if err != nil {
			return errors.Join(err, w.Coins.Release(tokens))
		}
	}

	printJSON(tokenSelection{
		Tokens:   model.SelectCoinsResponse{Coins: tokens, Total: chain.SumAmounts(tokens)},
		FeeCoins: model.SelectCoinsResponse{Coins: feeCoins, Total: chain.SumAmounts(feeCoins)},
	})
	return nil
}

var spendableCommand = cli.Command{
	Name:      "spendable",
	Usage:     "Check whether a coin is still unspent.",
	ArgsUsage: "coin_id",
	Action:    spendable,
}

func spendable(ctx *cli.Context) error {
	coinID, err := chain.Bytes32FromHex(ctx.Args().First())
	if err != nil {
		return err
	}

	w, cleanUp := openWithNode()
	defer cleanUp()

	ok, err := w.Coins.IsCoinSpendable(context.Background(), coinID)
	if err != nil {
		return err
	}
	printJSON(model.SpendableResponse{CoinID: coinID.String(), Spendable: ok})
	return nil
}

func nameOrDefault(name string) string {
	if name == "" {
		return wallet.DefaultName
	}
	return name
}
