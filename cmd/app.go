package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chinmay1088/solcollect/config"
	"github.com/chinmay1088/solcollect/logging"
	"github.com/chinmay1088/solcollect/wallet"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// EnvKeyPassword lets non-interactive runs unlock a sealed key file.
const EnvKeyPassword = "SOLCOLLECT_KEY_PASSWORD"

// globalOptions holds the persistent flags shared by every command.
type globalOptions struct {
	envFile string
	network string
	rpcURL  string
	keyFile string
	verbose bool
	quiet   bool
}

// collectOptions holds the collect-only flags.
type collectOptions struct {
	target     string
	feeReserve uint64
	dryRun     bool
	yes        bool
}

// loadConfig layers defaults, the dotenv file, the environment and the
// flags that were explicitly set.
func (o *globalOptions) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(o.envFile)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("network") {
		cfg.Network = strings.ToLower(o.network)
	}
	if flags.Changed("rpc") {
		cfg.RPCURL = o.rpcURL
	}
	if flags.Changed("keys") {
		cfg.KeyFile = o.keyFile
	}
	return cfg, nil
}

func (o *globalOptions) logger(cmd *cobra.Command) zerolog.Logger {
	return logging.New(cmd.ErrOrStderr(), o.verbose, o.quiet)
}

// prompter reads answers from the command's input. One instance must be
// shared per run so buffered input is not lost between questions.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter(cmd *cobra.Command) *prompter {
	return &prompter{
		in:  bufio.NewReader(cmd.InOrStdin()),
		out: cmd.OutOrStdout(),
	}
}

func (p *prompter) ask(question string) (string, error) {
	fmt.Fprint(p.out, question)
	line, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (p *prompter) confirm(question string) bool {
	answer, err := p.ask(question + " (y/n): ")
	if err != nil {
		return false
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes"
}

// readPassword returns SOLCOLLECT_KEY_PASSWORD when it is set and otherwise
// reads a password from the terminal without echo.
func readPassword(out io.Writer, prompt string) (string, error) {
	if pw := os.Getenv(EnvKeyPassword); pw != "" {
		return pw, nil
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", fmt.Errorf("stdin is not a terminal; set %s to provide the password", EnvKeyPassword)
	}

	fmt.Fprint(out, prompt)
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(out)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(password), nil
}

// loadAccounts reads the key file, unlocking it first if it is sealed.
func loadAccounts(cmd *cobra.Command, cfg *config.Config) ([]wallet.Account, error) {
	sealed, err := wallet.IsSealed(cfg.KeyFile)
	if err != nil {
		return nil, err
	}
	if !sealed {
		return wallet.LoadKeyFile(cfg.KeyFile)
	}

	password, err := readPassword(cmd.OutOrStdout(), "Enter the key file password: ")
	if err != nil {
		return nil, err
	}
	return wallet.LoadSealedKeyFile(cfg.KeyFile, password)
}
