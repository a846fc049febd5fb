package api

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// GetBalance fetches the balance of address in lamports
func (c *Client) GetBalance(ctx context.Context, address solana.PublicKey) (uint64, error) {
	out, err := c.rpc.GetBalance(ctx, address, c.commitment)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch Solana balance: %w", err)
	}
	if out == nil {
		return 0, fmt.Errorf("no result in response")
	}

	c.log.Debug().Stringer("address", address).Uint64("lamports", out.Value).Msg("balance")
	return out.Value, nil
}

// GetLatestBlockhash gets a recent blockhash for Solana transactions
func (c *Client) GetLatestBlockhash(ctx context.Context) (solana.Hash, error) {
	out, err := c.rpc.GetLatestBlockhash(ctx, c.commitment)
	if err != nil {
		return solana.Hash{}, fmt.Errorf("failed to get recent blockhash: %w", err)
	}
	if out == nil || out.Value == nil {
		return solana.Hash{}, fmt.Errorf("missing 'value' in result")
	}

	c.log.Debug().
		Stringer("blockhash", out.Value.Blockhash).
		Uint64("last_valid_block_height", out.Value.LastValidBlockHeight).
		Msg("latest blockhash")
	return out.Value.Blockhash, nil
}

// SendTransaction submits a signed transaction. The node rebroadcasts it up
// to the configured retry count.
func (c *Client) SendTransaction(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
	maxRetries := c.maxRetries
	sig, err := c.rpc.SendTransactionWithOpts(ctx, tx, rpc.TransactionOpts{
		SkipPreflight:       false,
		PreflightCommitment: c.commitment,
		MaxRetries:          &maxRetries,
	})
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to send transaction: %w", err)
	}

	c.log.Debug().Stringer("signature", sig).Uint("max_retries", maxRetries).Msg("transaction sent")
	return sig, nil
}

// WaitForConfirmation polls the signature status until the configured
// commitment is reached, the cluster reports an error, or the timeout expires.
func (c *Client) WaitForConfirmation(ctx context.Context, sig solana.Signature) error {
	timeoutCtx, cancel := context.WithTimeout(ctx, c.confirmTimeout)
	defer cancel()

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		out, err := c.rpc.GetSignatureStatuses(timeoutCtx, false, sig)
		switch {
		case err != nil:
			c.log.Debug().Err(err).Stringer("signature", sig).Msg("signature status poll failed")
		case out != nil && len(out.Value) > 0 && out.Value[0] != nil:
			status := out.Value[0]
			if status.Err != nil {
				return fmt.Errorf("%w: %s: %v", ErrTransactionFailed, sig, status.Err)
			}
			c.log.Debug().
				Stringer("signature", sig).
				Str("status", string(status.ConfirmationStatus)).
				Msg("signature status")
			if commitmentReached(status.ConfirmationStatus, c.commitment) {
				return nil
			}
		}

		select {
		case <-timeoutCtx.Done():
			if errors.Is(timeoutCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
				return fmt.Errorf("%w: %s after %s", ErrConfirmTimeout, sig, c.confirmTimeout)
			}
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// SendAndConfirm submits tx and waits for it to reach the configured commitment.
// The signature is returned even on confirmation failure so it can be followed up.
func (c *Client) SendAndConfirm(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
	sig, err := c.SendTransaction(ctx, tx)
	if err != nil {
		return solana.Signature{}, err
	}
	if err := c.WaitForConfirmation(ctx, sig); err != nil {
		return sig, err
	}
	return sig, nil
}

// GetNodeInfo queries version and health of the RPC node
func (c *Client) GetNodeInfo(ctx context.Context) (*NodeInfo, error) {
	version, err := c.rpc.GetVersion(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get node version: %w", err)
	}

	info := &NodeInfo{
		Endpoint:   c.endpoint,
		Version:    version.SolanaCore,
		FeatureSet: version.FeatureSet,
	}

	health, err := c.rpc.GetHealth(ctx)
	if err != nil {
		// unhealthy nodes answer getHealth with an RPC error
		info.Health = err.Error()
		return info, nil
	}
	info.Health = health

	return info, nil
}
