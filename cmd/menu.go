package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const (
	menuCheck   = "1"
	menuCollect = "2"
)

func newMenuCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Choose between checking balances and collecting funds",
		Long: `Print the two modes and read a single choice from stdin:

  1  check balances and write the report file
  2  collect every wallet into the target address

Any other answer exits without doing anything. This is also what runs
when solcollect is started without a subcommand.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMenu(cmd, opts)
		},
	}
}

func runMenu(cmd *cobra.Command, opts *globalOptions) error {
	in := newPrompter(cmd)

	fmt.Fprintln(in.out, "🚀 Solcollect")
	fmt.Fprintln(in.out)
	fmt.Fprintf(in.out, "  %s) Check balances\n", menuCheck)
	fmt.Fprintf(in.out, "  %s) Collect funds\n", menuCollect)
	fmt.Fprintln(in.out)

	choice, err := in.ask("Select an option: ")
	if err != nil {
		choice = ""
	}

	switch choice {
	case menuCheck:
		cfg, err := opts.loadConfig(cmd)
		if err != nil {
			return err
		}
		return runCheck(cmd, opts, cfg)
	case menuCollect:
		cfg, err := opts.loadConfig(cmd)
		if err != nil {
			return err
		}
		return runCollect(cmd, opts, &collectOptions{}, cfg, in)
	default:
		fmt.Fprintln(in.out, "unknown choice, nothing to do")
		return nil
	}
}
