package wallet

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/pkg/errors"
)

const DefaultPublicRPC = "https://cloudflare-eth.com"

// Chain is the single network the keystore wallet is configured for.
type Chain struct {
	Name   string
	ID     *big.Int
	RPCURL string
}

func Mainnet(rpcURL string) Chain {
	if rpcURL == "" {
		rpcURL = DefaultPublicRPC
	}
	return Chain{Name: "mainnet", ID: big.NewInt(1), RPCURL: rpcURL}
}

// Check dials the RPC provider and compares its chain id.
func (c Chain) Check(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "Wallet.Chain.Check")
	defer span.End()

	client, err := ethclient.DialContext(ctx, c.RPCURL)
	if err != nil {
		span.RecordError(err)
		return errors.Wrap(err, "failed to dial rpc provider")
	}
	defer client.Close()

	id, err := client.ChainID(ctx)
	if err != nil {
		span.RecordError(err)
		return errors.Wrap(err, "failed to query chain id")
	}

	if c.ID != nil && id.Cmp(c.ID) != 0 {
		return errors.Errorf("rpc provider serves chain %s, expected %s (%s)", id, c.ID, c.Name)
	}
	return nil
}
