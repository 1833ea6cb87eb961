// Package werr holds the wallet's error taxonomy. Every failure surfaced to a
// caller is an *Error whose Kind tells it whether to retry, abort or prompt.
package werr

import (
	"errors"
	"fmt"
)

// Kind classifies a wallet failure.
type Kind int

const (
	KindMnemonicRequired Kind = iota + 1
	KindInvalidMnemonic
	KindMnemonicNotLoaded
	KindWalletNotFound
	KindWalletExists
	KindCrypto
	KindNetwork
	KindCoinSet
	KindNoUnspentCoins
	KindFileSystem
	KindSerialization
)

var kindNames = map[Kind]string{
	KindMnemonicRequired:  "mnemonic seed phrase is required",
	KindInvalidMnemonic:   "provided mnemonic is invalid",
	KindMnemonicNotLoaded: "mnemonic seed phrase is not loaded",
	KindWalletNotFound:    "wallet not found",
	KindWalletExists:      "wallet already exists",
	KindCrypto:            "cryptographic error",
	KindNetwork:           "network error",
	KindCoinSet:           "coin set error",
	KindNoUnspentCoins:    "no unspent coins available",
	KindFileSystem:        "file system error",
	KindSerialization:     "serialization error",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is a classified wallet error.
type Error struct {
	Kind   Kind
	Detail string
	Err    error
}

func (e *Error) Error() string {
	switch {
	case e.Detail != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Detail, e.Err)
	case e.Detail != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches a bare sentinel of the same kind, so callers can write
// errors.Is(err, werr.ErrCrypto) regardless of detail.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Detail == "" && t.Err == nil {
		return t.Kind == e.Kind
	}
	return t == e
}

var (
	ErrMnemonicRequired  = &Error{Kind: KindMnemonicRequired}
	ErrInvalidMnemonic   = &Error{Kind: KindInvalidMnemonic}
	ErrMnemonicNotLoaded = &Error{Kind: KindMnemonicNotLoaded}
	ErrWalletNotFound    = &Error{Kind: KindWalletNotFound}
	ErrWalletExists      = &Error{Kind: KindWalletExists}
	ErrCrypto            = &Error{Kind: KindCrypto}
	ErrNetwork           = &Error{Kind: KindNetwork}
	ErrCoinSet           = &Error{Kind: KindCoinSet}
	ErrNoUnspentCoins    = &Error{Kind: KindNoUnspentCoins}
	ErrFileSystem        = &Error{Kind: KindFileSystem}
	ErrSerialization     = &Error{Kind: KindSerialization}
)

// New builds an error of the given kind.
func New(kind Kind, detail string) *Error {
	return &Error{Kind: kind, Detail: detail}
}

// Wrap classifies err under kind with a short description of the step.
func Wrap(kind Kind, detail string, err error) *Error {
	return &Error{Kind: kind, Detail: detail, Err: err}
}

// WalletNotFound reports a named lookup miss.
func WalletNotFound(name string) *Error {
	return &Error{Kind: KindWalletNotFound, Detail: name}
}

// KindOf extracts the kind of err, or 0 when err is not classified.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
