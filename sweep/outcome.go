// Package sweep holds the per-account loops: balance reporting and fund
// collection. Both walk the accounts strictly in key file order and record
// one Outcome per account; a failure on one account never stops the run.
package sweep

import (
	"context"
	"fmt"

	solchain "github.com/chinmay1088/solcollect/chains/solana"
	"github.com/chinmay1088/solcollect/wallet"
	"github.com/gagliardetto/solana-go"
)

// Network is the subset of the RPC client the loops need.
type Network interface {
	GetBalance(ctx context.Context, address solana.PublicKey) (uint64, error)
	GetLatestBlockhash(ctx context.Context) (solana.Hash, error)
	SendAndConfirm(ctx context.Context, tx *solana.Transaction) (solana.Signature, error)
}

// Status is the result class of one account.
type Status int

const (
	StatusOK Status = iota
	StatusSkipped
	StatusFailed
	StatusPlanned
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	case StatusPlanned:
		return "planned"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Skip and failure reasons.
const (
	ReasonBalanceQuery    = "balance query failed"
	ReasonBalanceZero     = "balance zero"
	ReasonInsufficientFee = "insufficient for fee"
	ReasonBlockhash       = "blockhash query failed"
	ReasonBuild           = "transaction build failed"
	ReasonSend            = "transfer failed"
	ReasonDryRun          = "dry run"
)

// Outcome is what happened to one account.
type Outcome struct {
	Index   int
	Address solana.PublicKey
	// Balance is the observed balance in lamports, 0 when the query failed.
	Balance uint64
	// Amount is the transferred, attempted or (in a dry run) planned lamports.
	Amount    uint64
	Signature solana.Signature
	Status    Status
	Reason    string
	Err       error
}

// BalanceSOL is the observed balance in SOL.
func (o Outcome) BalanceSOL() float64 {
	return solchain.LamportsToSOLFloat(o.Balance)
}

func newOutcome(acc wallet.Account) Outcome {
	return Outcome{Index: acc.Index, Address: acc.Address}
}

func (o Outcome) skipped(reason string) Outcome {
	o.Status = StatusSkipped
	o.Reason = reason
	return o
}

func (o Outcome) failed(reason string, err error) Outcome {
	o.Status = StatusFailed
	o.Reason = reason
	o.Err = err
	return o
}

// Observer is called after each account has been processed.
type Observer func(Outcome)

// Summary counts outcomes by status.
type Summary struct {
	Total       int
	OK          int
	Skipped     int
	Failed      int
	Planned     int
	Lamports    uint64
	Transferred uint64
}

// Summarize tallies outcomes. Lamports is the sum of observed balances,
// Transferred the sum of confirmed (or planned) amounts.
func Summarize(outcomes []Outcome) Summary {
	s := Summary{Total: len(outcomes)}
	for _, o := range outcomes {
		s.Lamports += o.Balance
		switch o.Status {
		case StatusOK:
			s.OK++
			s.Transferred += o.Amount
		case StatusSkipped:
			s.Skipped++
		case StatusFailed:
			s.Failed++
		case StatusPlanned:
			s.Planned++
			s.Transferred += o.Amount
		}
	}
	return s
}
