package cmd

import (
	"fmt"

	"github.com/chinmay1088/solcollect/config"
	"github.com/spf13/cobra"
)

func newAddressCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "address",
		Short: "Show the address of every wallet in the key file",
		Long: `Decode the key file and print each wallet's index and address.
No network access is made.

Examples:
  solcollect address                       # Use wallets.txt
  solcollect address --keys wallets.vault  # Sealed key file`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := cfg.Validate(config.ModeOffline); err != nil {
				return err
			}

			accounts, err := loadAccounts(cmd, cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "🔑 %d wallets in %s:\n", len(accounts), cfg.KeyFile)
			fmt.Fprintln(out)
			for _, acc := range accounts {
				fmt.Fprintf(out, "%4d  %s\n", acc.Index, acc.Address)
			}
			return nil
		},
	}
}
