package sweep

import (
	"encoding/json"
	"fmt"
	"os"
)

// BalanceRecord is one entry of the balance report file.
type BalanceRecord struct {
	Wallet          string  `json:"wallet"`
	BalanceLamports uint64  `json:"balanceLamports"`
	BalanceSol      float64 `json:"balanceSol"`
}

// Records derives the report entries, one per outcome, in order. Accounts
// whose query failed are reported with a zero balance.
func Records(outcomes []Outcome) []BalanceRecord {
	records := make([]BalanceRecord, 0, len(outcomes))
	for _, o := range outcomes {
		records = append(records, BalanceRecord{
			Wallet:          o.Address.String(),
			BalanceLamports: o.Balance,
			BalanceSol:      o.BalanceSOL(),
		})
	}
	return records
}

// WriteRecords writes records as indented JSON, replacing any existing file.
func WriteRecords(path string, records []BalanceRecord) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode balances: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
