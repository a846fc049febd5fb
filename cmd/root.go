package cmd

import (
	"context"
	"fmt"

	"github.com/chinmay1088/solcollect/config"
	"github.com/spf13/cobra"
)

var (
	version = "1.0.0"
)

// NewRootCmd builds the command tree. Running the binary without a
// subcommand starts the interactive menu.
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "solcollect",
		Short: "Check and collect SOL across many wallets",
		Long: `Solcollect reads a file of Solana private keys (one base58 key per line)
and either reports every wallet's balance or sweeps every wallet into a
single target address, leaving a fee reserve behind.

Features:
  • Balance report written to a JSON file
  • One transfer per wallet, confirmed before moving on
  • Dry runs that build and sign without sending
  • Password-sealed key files (scrypt + AES-256-GCM)
  • Mainnet and Devnet support

Examples:
  solcollect                                  # Interactive menu
  solcollect check                            # Write balances.json
  solcollect collect --target 7xKX...sAsU     # Sweep all wallets
  solcollect collect --target 7xKX...sAsU --dry-run
  solcollect seal --out wallets.vault         # Encrypt the key file
  solcollect network --network devnet         # Show the node in use`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMenu(cmd, opts)
		},
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.envFile, "env", ".env", "dotenv file to load")
	flags.StringVar(&opts.network, "network", config.NetworkMainnet, "network: mainnet or devnet")
	flags.StringVar(&opts.rpcURL, "rpc", "", "RPC endpoint (defaults to the network's public endpoint)")
	flags.StringVar(&opts.keyFile, "keys", config.DefaultKeyFile, "key file, one base58 private key per line")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output")
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, "suppress output")

	// Add subcommands
	rootCmd.AddCommand(newMenuCmd(opts))
	rootCmd.AddCommand(newCheckCmd(opts))
	rootCmd.AddCommand(newCollectCmd(opts))
	rootCmd.AddCommand(newAddressCmd(opts))
	rootCmd.AddCommand(newSealCmd(opts))
	rootCmd.AddCommand(newNetworkCmd(opts))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// Execute runs the command tree with ctx as the root context.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "Solcollect v%s\n", version)
		},
	}
}
