package wallet

import (
	"context"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
)

const PrivateKeyEnv = "MESSAGEBOARD_PRIVATE_KEY"

// InjectedWallet holds a single key handed to the process, either through
// the environment or a key file.
type InjectedWallet struct {
	keyFile string
	lookup  func(string) (string, bool)
}

func NewInjectedWallet(keyFile string) *InjectedWallet {
	return &InjectedWallet{
		keyFile: keyFile,
		lookup:  os.LookupEnv,
	}
}

func (w *InjectedWallet) Name() string {
	return "injected"
}

func (w *InjectedWallet) Connect(ctx context.Context) (Signer, error) {
	_, span := tracer.Start(ctx, "Wallet.Injected.Connect")
	defer span.End()

	raw, err := w.rawKey()
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	key, err := crypto.HexToECDSA(strings.TrimPrefix(raw, "0x"))
	if err != nil {
		span.RecordError(err)
		return nil, errors.Wrap(err, "invalid private key")
	}

	return newKeySigner(key), nil
}

func (w *InjectedWallet) rawKey() (string, error) {
	if v, ok := w.lookup(PrivateKeyEnv); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v), nil
	}
	if w.keyFile == "" {
		return "", ErrNoProvider
	}
	data, err := os.ReadFile(w.keyFile)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNoProvider
		}
		return "", errors.Wrap(err, "failed to read key file")
	}
	raw := strings.TrimSpace(string(data))
	if raw == "" {
		return "", ErrNoProvider
	}
	return raw, nil
}
