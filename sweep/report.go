package sweep

import (
	"context"

	"github.com/chinmay1088/solcollect/wallet"
	"github.com/rs/zerolog"
)

// Reporter queries the balance of every account.
type Reporter struct {
	network Network
	log     zerolog.Logger
	observe Observer
}

func NewReporter(network Network, log zerolog.Logger, observe Observer) *Reporter {
	return &Reporter{
		network: network,
		log:     log.With().Str("component", "reporter").Logger(),
		observe: observe,
	}
}

// Run returns one outcome per account in input order. A failed query is
// recorded with a zero balance and the loop moves on. The returned error is
// non-nil only if ctx was cancelled; the outcomes gathered so far are returned with it.
func (r *Reporter) Run(ctx context.Context, accounts []wallet.Account) ([]Outcome, error) {
	outcomes := make([]Outcome, 0, len(accounts))

	for _, acc := range accounts {
		if err := ctx.Err(); err != nil {
			return outcomes, err
		}

		out := newOutcome(acc)
		balance, err := r.network.GetBalance(ctx, acc.Address)
		if err != nil {
			r.log.Warn().Err(err).Stringer("address", acc.Address).Msg("balance query failed")
			out = out.failed(ReasonBalanceQuery, err)
		} else {
			out.Balance = balance
			out.Status = StatusOK
		}

		outcomes = append(outcomes, out)
		if r.observe != nil {
			r.observe(out)
		}
	}

	return outcomes, nil
}
