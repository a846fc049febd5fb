package cmd

import (
	"fmt"

	"github.com/chinmay1088/solcollect/api"
	solchain "github.com/chinmay1088/solcollect/chains/solana"
	"github.com/chinmay1088/solcollect/config"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newNetworkCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "network",
		Short: "Show the effective configuration and RPC node",
		Long: `Show the settings a check or collect run would use and query the RPC
node's version and health.

Settings are read from the defaults, the dotenv file, SOLCOLLECT_*
environment variables and flags, in that order.

Examples:
  solcollect network                   # Mainnet public endpoint
  solcollect network --network devnet  # Devnet public endpoint
  solcollect network --rpc http://localhost:8899`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}
			if cfg.Network != config.NetworkMainnet && cfg.Network != config.NetworkDevnet {
				return fmt.Errorf("invalid network: %s. Use '%s' or '%s'", cfg.Network, config.NetworkMainnet, config.NetworkDevnet)
			}

			out := cmd.OutOrStdout()
			target := cfg.TargetAddress
			if target == "" {
				target = color.YellowString("not set")
			}

			fmt.Fprintf(out, "🌐 Current network: %s\n", networkLabel(cfg.Network))
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Configuration:")
			fmt.Fprintf(out, "   - Endpoint:        %s\n", cfg.Endpoint())
			fmt.Fprintf(out, "   - Commitment:      %s\n", cfg.Commitment)
			fmt.Fprintf(out, "   - Target:          %s\n", target)
			fmt.Fprintf(out, "   - Fee reserve:     %s\n", solchain.FormatBalance(cfg.FeeReserve))
			fmt.Fprintf(out, "   - Key file:        %s\n", cfg.KeyFile)
			fmt.Fprintf(out, "   - Output file:     %s\n", cfg.OutputFile)
			fmt.Fprintf(out, "   - Max retries:     %d\n", cfg.MaxRetries)
			fmt.Fprintf(out, "   - Confirm timeout: %s\n", cfg.ConfirmTimeout)
			fmt.Fprintln(out)

			client := api.NewClient(cfg, opts.logger(cmd))
			defer client.Close()

			info, err := client.GetNodeInfo(cmd.Context())
			if err != nil {
				fmt.Fprintf(out, "❌ Node: %s - %v\n", client.Endpoint(), err)
				return nil
			}

			health := color.GreenString(info.Health)
			if info.Health != "ok" {
				health = color.RedString(info.Health)
			}
			fmt.Fprintln(out, "Node:")
			fmt.Fprintf(out, "   - Version:         %s (feature set %d)\n", info.Version, info.FeatureSet)
			fmt.Fprintf(out, "   - Health:          %s\n", health)
			return nil
		},
	}
}
