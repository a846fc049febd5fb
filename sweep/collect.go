package sweep

import (
	"context"

	solchain "github.com/chinmay1088/solcollect/chains/solana"
	"github.com/chinmay1088/solcollect/wallet"
	"github.com/gagliardetto/solana-go"
	"github.com/rs/zerolog"
)

// TransferAmount is what a sweep moves out of an account holding balance
// lamports: everything above the fee reserve. ok is false when nothing is left.
func TransferAmount(balance, feeReserve uint64) (amount uint64, ok bool) {
	if balance <= feeReserve {
		return 0, false
	}
	return balance - feeReserve, true
}

// Collector sweeps every account into one target address.
type Collector struct {
	network    Network
	target     solana.PublicKey
	feeReserve uint64
	dryRun     bool
	log        zerolog.Logger
	observe    Observer
}

type CollectorOption func(*Collector)

// WithDryRun builds and signs transfers without sending them.
func WithDryRun(dryRun bool) CollectorOption {
	return func(c *Collector) { c.dryRun = dryRun }
}

// WithObserver registers a callback run after each account.
func WithObserver(observe Observer) CollectorOption {
	return func(c *Collector) { c.observe = observe }
}

func NewCollector(network Network, target solana.PublicKey, feeReserve uint64, log zerolog.Logger, opts ...CollectorOption) *Collector {
	c := &Collector{
		network:    network,
		target:     target,
		feeReserve: feeReserve,
		log:        log.With().Str("component", "collector").Stringer("target", target).Logger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Target returns the fixed collection address.
func (c *Collector) Target() solana.PublicKey {
	return c.target
}

// Run processes accounts in order. Each transfer is independent; a failure is
// recorded and the next account is processed. The returned error is non-nil
// only if ctx was cancelled.
func (c *Collector) Run(ctx context.Context, accounts []wallet.Account) ([]Outcome, error) {
	outcomes := make([]Outcome, 0, len(accounts))

	for _, acc := range accounts {
		if err := ctx.Err(); err != nil {
			return outcomes, err
		}

		out := c.collectOne(ctx, acc)
		outcomes = append(outcomes, out)
		if c.observe != nil {
			c.observe(out)
		}
	}

	return outcomes, nil
}

func (c *Collector) collectOne(ctx context.Context, acc wallet.Account) Outcome {
	out := newOutcome(acc)
	log := c.log.With().Stringer("address", acc.Address).Logger()

	balance, err := c.network.GetBalance(ctx, acc.Address)
	if err != nil {
		log.Warn().Err(err).Msg("balance query failed")
		return out.failed(ReasonBalanceQuery, err)
	}
	out.Balance = balance

	if balance == 0 {
		return out.skipped(ReasonBalanceZero)
	}

	amount, ok := TransferAmount(balance, c.feeReserve)
	if !ok {
		return out.skipped(ReasonInsufficientFee)
	}

	blockhash, err := c.network.GetLatestBlockhash(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("blockhash query failed")
		return out.failed(ReasonBlockhash, err)
	}

	tx, err := solchain.CreateTransferTransaction(acc.PrivateKey, c.target, amount, blockhash)
	if err != nil {
		log.Warn().Err(err).Msg("transaction build failed")
		return out.failed(ReasonBuild, err)
	}
	out.Amount = amount

	if c.dryRun {
		out.Status = StatusPlanned
		out.Reason = ReasonDryRun
		out.Signature = tx.Signatures[0]
		log.Debug().Uint64("lamports", amount).Msg("dry run, transfer not sent")
		return out
	}

	sig, err := c.network.SendAndConfirm(ctx, tx)
	out.Signature = sig
	if err != nil {
		log.Warn().Err(err).Stringer("signature", sig).Msg("transfer failed")
		return out.failed(ReasonSend, err)
	}

	out.Status = StatusOK
	log.Debug().Uint64("lamports", amount).Stringer("signature", sig).Msg("transfer confirmed")
	return out
}
