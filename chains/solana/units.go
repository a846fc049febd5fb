package solana

import (
	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
)

// LamportsPerSOL is the fixed number of lamports in one SOL.
const LamportsPerSOL = solana.LAMPORTS_PER_SOL

// solDecimals is log10(LamportsPerSOL).
const solDecimals = 9

// LamportsToSOL converts exactly, without float rounding.
func LamportsToSOL(lamports uint64) decimal.Decimal {
	return decimal.NewFromUint64(lamports).Shift(-solDecimals)
}

// LamportsToSOLFloat is the display value used in the balance records.
func LamportsToSOLFloat(lamports uint64) float64 {
	return LamportsToSOL(lamports).InexactFloat64()
}

// FormatSOL renders lamports as SOL rounded to places decimals, e.g. "1.000000 SOL".
func FormatSOL(lamports uint64, places int32) string {
	return LamportsToSOL(lamports).StringFixed(places) + " SOL"
}

func FormatBalance(lamports uint64) string {
	return FormatSOL(lamports, solDecimals)
}
