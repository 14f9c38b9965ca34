package wallet

import (
	"context"
	"strings"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

// PassphraseFunc returns the passphrase unlocking account.
type PassphraseFunc func(account common.Address) (string, error)

// SelectFunc picks one account when the keystore holds several.
type SelectFunc func(accounts []common.Address) (common.Address, error)

// KeystoreWallet offers every account of a keystore directory and connects
// to one of them.
type KeystoreWallet struct {
	ks         *keystore.KeyStore
	account    string
	passphrase PassphraseFunc
	selector   SelectFunc
	chain      *Chain
}

type KeystoreOption func(*KeystoreWallet)

// WithAccount connects to the given address without asking.
func WithAccount(address string) KeystoreOption {
	return func(w *KeystoreWallet) {
		w.account = address
	}
}

func WithPassphrase(fn PassphraseFunc) KeystoreOption {
	return func(w *KeystoreWallet) {
		w.passphrase = fn
	}
}

func WithSelector(fn SelectFunc) KeystoreOption {
	return func(w *KeystoreWallet) {
		w.selector = fn
	}
}

// WithChain makes Connect verify the RPC provider serves chain.
func WithChain(chain Chain) KeystoreOption {
	return func(w *KeystoreWallet) {
		w.chain = &chain
	}
}

func NewKeystoreWallet(dir string, opts ...KeystoreOption) *KeystoreWallet {
	ks := keystore.NewKeyStore(dir, keystore.StandardScryptN, keystore.StandardScryptP)
	return NewKeystoreWalletFromStore(ks, opts...)
}

func NewKeystoreWalletFromStore(ks *keystore.KeyStore, opts ...KeystoreOption) *KeystoreWallet {
	w := &KeystoreWallet{ks: ks}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *KeystoreWallet) Name() string {
	return "keystore"
}

// Accounts lists the addresses available in the keystore.
func (w *KeystoreWallet) Accounts() []common.Address {
	accs := w.ks.Accounts()
	addresses := make([]common.Address, len(accs))
	for i, acc := range accs {
		addresses[i] = acc.Address
	}
	return addresses
}

func (w *KeystoreWallet) Connect(ctx context.Context) (Signer, error) {
	ctx, span := tracer.Start(ctx, "Wallet.Keystore.Connect")
	defer span.End()

	if w.chain != nil {
		if err := w.chain.Check(ctx); err != nil {
			span.RecordError(err)
			return nil, err
		}
	}

	address, err := w.pick()
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	account, err := w.ks.Find(accounts.Account{Address: address})
	if err != nil {
		span.RecordError(err)
		return nil, errors.Wrap(err, "account not found in keystore")
	}

	passphrase := ""
	if w.passphrase != nil {
		passphrase, err = w.passphrase(address)
		if err != nil {
			span.RecordError(err)
			return nil, errors.Wrap(ErrRejected, err.Error())
		}
	}

	err = w.ks.Unlock(account, passphrase)
	if err != nil {
		span.RecordError(err)
		return nil, errors.Wrap(ErrRejected, err.Error())
	}

	return &keystoreSigner{ks: w.ks, account: account}, nil
}

func (w *KeystoreWallet) pick() (common.Address, error) {
	available := w.Accounts()
	if len(available) == 0 {
		return common.Address{}, ErrNoProvider
	}

	if w.account != "" {
		for _, addr := range available {
			if strings.EqualFold(addr.Hex(), w.account) {
				return addr, nil
			}
		}
		return common.Address{}, errors.Errorf("account %s not found in keystore", w.account)
	}

	if len(available) == 1 {
		return available[0], nil
	}

	if w.selector == nil {
		return common.Address{}, ErrAccountRequired
	}
	return w.selector(available)
}

type keystoreSigner struct {
	ks      *keystore.KeyStore
	account accounts.Account
}

func (s *keystoreSigner) Address() common.Address {
	return s.account.Address
}

func (s *keystoreSigner) SignMessage(ctx context.Context, message []byte) ([]byte, error) {
	_, span := tracer.Start(ctx, "Wallet.KeystoreSigner.SignMessage")
	defer span.End()

	signature, err := s.ks.SignHash(s.account, accounts.TextHash(message))
	if err != nil {
		span.RecordError(err)
		return nil, errors.Wrap(err, "failed to sign message")
	}
	return toPersonalSignature(signature), nil
}
