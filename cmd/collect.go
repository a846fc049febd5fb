package cmd

import (
	"fmt"

	"github.com/chinmay1088/solcollect/api"
	solchain "github.com/chinmay1088/solcollect/chains/solana"
	"github.com/chinmay1088/solcollect/config"
	"github.com/chinmay1088/solcollect/sweep"
	"github.com/fatih/color"
	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"
)

func newCollectCmd(opts *globalOptions) *cobra.Command {
	copts := &collectOptions{}

	collectCmd := &cobra.Command{
		Use:   "collect",
		Short: "Send the balance of every wallet to one target address",
		Long: `Sweep every wallet in the key file into a single target address.

Each wallet sends its whole balance minus the fee reserve in one transfer,
which is confirmed before the next wallet is processed. Wallets that are
empty or cannot cover the fee are skipped; a failed wallet never stops
the run.

Examples:
  solcollect collect --target 7xKXtg2CW87d97TXJSDpbD5jBkheTqA83TZRuJosgAsU
  solcollect collect --target 7xKX...sAsU --dry-run      # Build and sign only
  solcollect collect --target 7xKX...sAsU --yes          # No confirmation prompt
  solcollect collect --target 7xKX...sAsU --fee-reserve 10000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("target") {
				cfg.TargetAddress = copts.target
			}
			if flags.Changed("fee-reserve") {
				cfg.FeeReserve = copts.feeReserve
			}
			return runCollect(cmd, opts, copts, cfg, newPrompter(cmd))
		},
	}

	flags := collectCmd.Flags()
	flags.StringVarP(&copts.target, "target", "t", "", "address that receives the funds")
	flags.Uint64Var(&copts.feeReserve, "fee-reserve", config.DefaultFeeReserve, "lamports left behind in each wallet for the fee")
	flags.BoolVar(&copts.dryRun, "dry-run", false, "build and sign transfers without sending them")
	flags.BoolVarP(&copts.yes, "yes", "y", false, "skip the confirmation prompt")
	return collectCmd
}

func runCollect(cmd *cobra.Command, opts *globalOptions, copts *collectOptions, cfg *config.Config, in *prompter) error {
	if err := cfg.Validate(config.ModeCollect); err != nil {
		return err
	}
	target, err := cfg.Target()
	if err != nil {
		return err
	}

	accounts, err := loadAccounts(cmd, cfg)
	if err != nil {
		return err
	}

	log := opts.logger(cmd)
	client := api.NewClient(cfg, log)
	defer client.Close()

	out := newPrinter(cmd.OutOrStdout(), opts.quiet, len(accounts), "collecting")
	out.network = cfg.Network
	out.println("🟣 Collecting Solana")
	out.printf("🌐 Network:     %s (%s)\n", networkLabel(cfg.Network), client.Endpoint())
	out.printf("🎯 Target:      %s\n", target)
	if !solana.IsOnCurve(target[:]) {
		out.printf("   %s\n", color.YellowString("⚠️ target is a program derived address, not a wallet"))
	}
	out.printf("🔑 Wallets:     %d\n", len(accounts))
	out.printf("⛽ Fee reserve: %s\n", solchain.FormatBalance(cfg.FeeReserve))
	if copts.dryRun {
		out.printf("📋 Mode:        %s\n", color.CyanString("dry run, nothing will be sent"))
	}
	out.println()

	if !copts.dryRun && !copts.yes && !confirmCollect(in, cfg.Network) {
		out.println("❌ Collection cancelled by user")
		return nil
	}

	collector := sweep.NewCollector(client, target, cfg.FeeReserve, log,
		sweep.WithDryRun(copts.dryRun),
		sweep.WithObserver(out.transferLine),
	)
	outcomes, err := collector.Run(cmd.Context(), accounts)
	out.finish()
	if err != nil {
		return fmt.Errorf("collection interrupted after %d of %d wallets: %w", len(outcomes), len(accounts), err)
	}

	out.summary(sweep.Summarize(outcomes))
	return nil
}

func confirmCollect(in *prompter, network string) bool {
	if network == config.NetworkDevnet {
		fmt.Fprintln(in.out, "⚠️ You are on devnet. No real funds will be moved.")
	} else {
		fmt.Fprintln(in.out, "🚨 You are on main network. Real funds will be sent to the target address.")
	}
	return in.confirm("Press y to confirm or n to stop")
}

func explorerURL(network string, sig fmt.Stringer) string {
	if network == config.NetworkDevnet {
		return fmt.Sprintf("https://solscan.io/tx/%s?cluster=devnet", sig)
	}
	return fmt.Sprintf("https://solscan.io/tx/%s", sig)
}
