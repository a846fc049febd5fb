package cmd

import (
	"fmt"

	"github.com/chinmay1088/solcollect/api"
	"github.com/chinmay1088/solcollect/config"
	"github.com/chinmay1088/solcollect/sweep"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newCheckCmd(opts *globalOptions) *cobra.Command {
	var output string

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Check the balance of every wallet in the key file",
		Long: `Query the SOL balance of every wallet in the key file, in file order,
print one line per wallet and write the results to a JSON file.

A wallet whose balance cannot be fetched is reported with a zero balance
and the run continues.

Examples:
  solcollect check                          # Write balances.json
  solcollect check --output report.json     # Choose the report file
  solcollect check --network devnet -q      # Devnet, summary only`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("output") {
				cfg.OutputFile = output
			}
			return runCheck(cmd, opts, cfg)
		},
	}

	checkCmd.Flags().StringVarP(&output, "output", "o", config.DefaultOutputFile, "balance report file")
	return checkCmd
}

func runCheck(cmd *cobra.Command, opts *globalOptions, cfg *config.Config) error {
	if err := cfg.Validate(config.ModeCheck); err != nil {
		return err
	}

	accounts, err := loadAccounts(cmd, cfg)
	if err != nil {
		return err
	}

	log := opts.logger(cmd)
	client := api.NewClient(cfg, log)
	defer client.Close()

	out := newPrinter(cmd.OutOrStdout(), opts.quiet, len(accounts), "checking")
	out.println("💰 Wallet Balances")
	out.printf("🌐 Network: %s (%s)\n", networkLabel(cfg.Network), client.Endpoint())
	out.printf("🔑 Wallets: %d\n", len(accounts))
	out.println()

	reporter := sweep.NewReporter(client, log, out.balanceLine)
	outcomes, err := reporter.Run(cmd.Context(), accounts)
	out.finish()
	if err != nil {
		return fmt.Errorf("balance check interrupted: %w", err)
	}

	if err := sweep.WriteRecords(cfg.OutputFile, sweep.Records(outcomes)); err != nil {
		return err
	}

	out.summary(sweep.Summarize(outcomes))
	out.printf("💾 Balances written to %s\n", color.CyanString(cfg.OutputFile))
	return nil
}

func networkLabel(network string) string {
	if network == config.NetworkDevnet {
		return color.YellowString("Devnet")
	}
	return color.GreenString("Mainnet")
}
