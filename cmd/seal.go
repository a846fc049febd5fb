package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/chinmay1088/solcollect/config"
	"github.com/chinmay1088/solcollect/crypto"
	"github.com/chinmay1088/solcollect/wallet"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const (
	defaultSealedFile = "wallets.vault"
	minPasswordLength = 8
)

func newSealCmd(opts *globalOptions) *cobra.Command {
	var (
		outFile string
		force   bool
	)

	sealCmd := &cobra.Command{
		Use:   "seal",
		Short: "Encrypt the key file with a password",
		Long: `Encrypt a plain text key file into a sealed key file.

The keys are validated first, so a file that seals cleanly will also load
cleanly. The sealed file can be used anywhere a key file is accepted; the
password is prompted for, or taken from SOLCOLLECT_KEY_PASSWORD when that
is set.

This command will:
  - Decode and check every key in the key file
  - Derive an encryption key from your password (scrypt)
  - Write the keys encrypted with AES-256-GCM

Examples:
  solcollect seal                                   # wallets.txt -> wallets.vault
  solcollect seal --keys hot.txt --out hot.vault`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := cfg.Validate(config.ModeOffline); err != nil {
				return err
			}
			return runSeal(cmd, cfg.KeyFile, outFile, force)
		},
	}

	sealCmd.Flags().StringVar(&outFile, "out", defaultSealedFile, "sealed key file to write")
	sealCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing sealed file")
	return sealCmd
}

func runSeal(cmd *cobra.Command, keyFile, outFile string, force bool) error {
	out := cmd.OutOrStdout()

	if !force {
		if _, err := os.Stat(outFile); err == nil {
			return fmt.Errorf("%s already exists. Use --force to overwrite it", outFile)
		}
	}

	plaintext, err := os.ReadFile(keyFile)
	if err != nil {
		return fmt.Errorf("failed to read key file: %w", err)
	}
	defer crypto.ClearBytes(plaintext)

	if crypto.LooksSealed(plaintext) {
		return fmt.Errorf("%s is already sealed", keyFile)
	}

	accounts, err := wallet.ParseKeys(bytes.NewReader(plaintext))
	if err != nil {
		return err
	}
	if len(accounts) == 0 {
		return fmt.Errorf("%s contains no keys", keyFile)
	}

	fmt.Fprintf(out, "🔐 Sealing %d keys from %s\n", len(accounts), keyFile)
	fmt.Fprintln(out)

	password, err := readPassword(out, "Enter a password for the key file: ")
	if err != nil {
		return err
	}
	if len(password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters long", minPasswordLength)
	}

	confirmPassword, err := readPassword(out, "Confirm password: ")
	if err != nil {
		return fmt.Errorf("failed to read password confirmation: %w", err)
	}
	if password != confirmPassword {
		return fmt.Errorf("passwords do not match")
	}

	vault, err := crypto.Seal(plaintext, password)
	if err != nil {
		return fmt.Errorf("failed to seal key file: %w", err)
	}
	if err := vault.WriteFile(outFile); err != nil {
		return err
	}

	fmt.Fprintf(out, "✅ Sealed key file written to %s\n", color.CyanString(outFile))
	fmt.Fprintln(out)
	fmt.Fprintln(out, "⚠️  IMPORTANT:")
	fmt.Fprintln(out, "   - The plain text key file was left in place; delete it once you have checked the sealed file")
	fmt.Fprintf(out, "   - Use it with: solcollect check --keys %s\n", outFile)
	fmt.Fprintln(out, "   - There is no way to recover the keys without the password")
	return nil
}
