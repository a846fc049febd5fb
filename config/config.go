package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	solchain "github.com/chinmay1088/solcollect/chains/solana"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/joho/godotenv"
)

// network type constants
const (
	NetworkMainnet = "mainnet"
	NetworkDevnet  = "devnet"
)

// RPC endpoints
const (
	MainnetSolanaRPC = "https://api.mainnet-beta.solana.com"
	DevnetSolanaRPC  = "https://api.devnet.solana.com"
)

// Defaults used when neither the environment nor a flag overrides a value.
const (
	DefaultKeyFile        = "wallets.txt"
	DefaultOutputFile     = "balances.json"
	DefaultFeeReserve     = uint64(5000)
	DefaultMaxRetries     = uint(5)
	DefaultConfirmTimeout = 60 * time.Second
	DefaultPollInterval   = 500 * time.Millisecond
	DefaultCommitment     = rpc.CommitmentConfirmed
)

// Environment variables read by Load.
const (
	EnvNetwork        = "SOLCOLLECT_NETWORK"
	EnvRPCURL         = "SOLCOLLECT_RPC_URL"
	EnvTarget         = "SOLCOLLECT_TARGET"
	EnvFeeReserve     = "SOLCOLLECT_FEE_RESERVE"
	EnvKeyFile        = "SOLCOLLECT_KEY_FILE"
	EnvOutputFile     = "SOLCOLLECT_OUTPUT"
	EnvCommitment     = "SOLCOLLECT_COMMITMENT"
	EnvMaxRetries     = "SOLCOLLECT_MAX_RETRIES"
	EnvConfirmTimeout = "SOLCOLLECT_CONFIRM_TIMEOUT"
	EnvPollInterval   = "SOLCOLLECT_POLL_INTERVAL"
)

// Mode tells Validate which checks apply.
type Mode int

const (
	ModeCheck Mode = iota
	ModeCollect
	ModeOffline
)

var ErrMissingTarget = errors.New("target address is not set")

// Config holds everything a run needs. It is built once at startup and
// passed to each component explicitly.
type Config struct {
	Network        string
	RPCURL         string
	TargetAddress  string
	FeeReserve     uint64
	KeyFile        string
	OutputFile     string
	Commitment     rpc.CommitmentType
	MaxRetries     uint
	ConfirmTimeout time.Duration
	PollInterval   time.Duration
}

// Default returns a mainnet configuration with the compiled-in defaults.
func Default() *Config {
	return &Config{
		Network:        NetworkMainnet,
		FeeReserve:     DefaultFeeReserve,
		KeyFile:        DefaultKeyFile,
		OutputFile:     DefaultOutputFile,
		Commitment:     DefaultCommitment,
		MaxRetries:     DefaultMaxRetries,
		ConfirmTimeout: DefaultConfirmTimeout,
		PollInterval:   DefaultPollInterval,
	}
}

// Load builds a Config from defaults, the given dotenv files and the
// process environment, in that order. Missing dotenv files are ignored.
func Load(envFiles ...string) (*Config, error) {
	for _, f := range envFiles {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	cfg := Default()
	if err := cfg.applyEnv(os.Getenv); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv(EnvNetwork); v != "" {
		c.Network = strings.ToLower(strings.TrimSpace(v))
	}
	if v := getenv(EnvRPCURL); v != "" {
		c.RPCURL = strings.TrimSpace(v)
	}
	if v := getenv(EnvTarget); v != "" {
		c.TargetAddress = strings.TrimSpace(v)
	}
	if v := getenv(EnvKeyFile); v != "" {
		c.KeyFile = v
	}
	if v := getenv(EnvOutputFile); v != "" {
		c.OutputFile = v
	}
	if v := getenv(EnvCommitment); v != "" {
		c.Commitment = rpc.CommitmentType(strings.ToLower(strings.TrimSpace(v)))
	}
	if v := getenv(EnvFeeReserve); v != "" {
		n, err := strconv.ParseUint(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvFeeReserve, err)
		}
		c.FeeReserve = n
	}
	if v := getenv(EnvMaxRetries); v != "" {
		n, err := strconv.ParseUint(strings.TrimSpace(v), 10, 32)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvMaxRetries, err)
		}
		c.MaxRetries = uint(n)
	}
	if v := getenv(EnvConfirmTimeout); v != "" {
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvConfirmTimeout, err)
		}
		c.ConfirmTimeout = d
	}
	if v := getenv(EnvPollInterval); v != "" {
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvPollInterval, err)
		}
		c.PollInterval = d
	}
	return nil
}

// Endpoint returns the RPC URL, falling back to the network's public endpoint.
func (c *Config) Endpoint() string {
	if c.RPCURL != "" {
		return c.RPCURL
	}
	if c.Network == NetworkDevnet {
		return DevnetSolanaRPC
	}
	return MainnetSolanaRPC
}

// Target parses the collection address.
func (c *Config) Target() (solana.PublicKey, error) {
	if c.TargetAddress == "" {
		return solana.PublicKey{}, ErrMissingTarget
	}
	pub, err := solchain.ParseAddress(c.TargetAddress)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("invalid target address: %w", err)
	}
	return pub, nil
}

// Validate checks the configuration once before any network activity.
func (c *Config) Validate(mode Mode) error {
	if c.Network != NetworkMainnet && c.Network != NetworkDevnet {
		return fmt.Errorf("invalid network: %s. Use '%s' or '%s'", c.Network, NetworkMainnet, NetworkDevnet)
	}

	if _, err := os.Stat(c.KeyFile); err != nil {
		return fmt.Errorf("key file %s: %w", c.KeyFile, err)
	}

	if mode == ModeOffline {
		return nil
	}

	endpoint := c.Endpoint()
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		return fmt.Errorf("invalid RPC URL %q: must be an http(s) address", endpoint)
	}

	switch c.Commitment {
	case rpc.CommitmentProcessed, rpc.CommitmentConfirmed, rpc.CommitmentFinalized:
	default:
		return fmt.Errorf("invalid commitment %q", c.Commitment)
	}

	if c.ConfirmTimeout <= 0 {
		return fmt.Errorf("confirm timeout must be positive, got %s", c.ConfirmTimeout)
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("poll interval must be positive, got %s", c.PollInterval)
	}

	if mode == ModeCollect {
		if _, err := c.Target(); err != nil {
			return err
		}
	}

	if mode == ModeCheck && c.OutputFile == "" {
		return fmt.Errorf("output file is not set")
	}

	return nil
}
