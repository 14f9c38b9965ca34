// Package wallet connects the board to a key holder able to sign messages.
package wallet

import (
	"context"
	"crypto/ecdsa"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("wallet")

var (
	ErrNoProvider      = errors.New("no wallet provider found")
	ErrRejected        = errors.New("request rejected by wallet")
	ErrAccountRequired = errors.New("wallet holds several accounts, select one")
)

// Signer is a capability bound to one wallet session.
type Signer interface {
	// Address returns the Ethereum address of the signer
	Address() common.Address

	// SignMessage signs an arbitrary message (EIP-191 personal sign)
	SignMessage(ctx context.Context, message []byte) ([]byte, error)
}

// Wallet yields a Signer once the user connects.
type Wallet interface {
	Name() string
	Connect(ctx context.Context) (Signer, error)
}

// EncodeSignature renders a signature the way browser wallets return it.
func EncodeSignature(signature []byte) string {
	return hexutil.Encode(signature)
}

// personal_sign signatures carry V as 27/28
func toPersonalSignature(signature []byte) []byte {
	if len(signature) == crypto.SignatureLength && signature[crypto.RecoveryIDOffset] < 27 {
		signature[crypto.RecoveryIDOffset] += 27
	}
	return signature
}

type keySigner struct {
	key     *ecdsa.PrivateKey
	address common.Address
}

func newKeySigner(key *ecdsa.PrivateKey) *keySigner {
	return &keySigner{key: key, address: crypto.PubkeyToAddress(key.PublicKey)}
}

func (s *keySigner) Address() common.Address {
	return s.address
}

func (s *keySigner) SignMessage(ctx context.Context, message []byte) ([]byte, error) {
	_, span := tracer.Start(ctx, "Wallet.KeySigner.SignMessage")
	defer span.End()

	signature, err := crypto.Sign(accounts.TextHash(message), s.key)
	if err != nil {
		span.RecordError(err)
		return nil, errors.Wrap(err, "failed to sign message")
	}
	return toPersonalSignature(signature), nil
}

// ConfirmFunc is asked before every signature, like a wallet popup.
// Returning an error rejects the request.
type ConfirmFunc func(ctx context.Context, address common.Address, message []byte) error

type confirmingSigner struct {
	Signer
	confirm ConfirmFunc
}

// WithConfirmation wraps signer so each signature needs approval first.
func WithConfirmation(signer Signer, confirm ConfirmFunc) Signer {
	if confirm == nil {
		return signer
	}
	return &confirmingSigner{Signer: signer, confirm: confirm}
}

func (s *confirmingSigner) SignMessage(ctx context.Context, message []byte) ([]byte, error) {
	if err := s.confirm(ctx, s.Address(), message); err != nil {
		return nil, errors.Wrap(ErrRejected, err.Error())
	}
	return s.Signer.SignMessage(ctx, message)
}
