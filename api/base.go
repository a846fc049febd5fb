package api

import (
	"time"

	"github.com/chinmay1088/solcollect/config"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/rs/zerolog"
)

// Client handles calls to a Solana RPC node
type Client struct {
	rpc            *rpc.Client
	endpoint       string
	commitment     rpc.CommitmentType
	maxRetries     uint
	confirmTimeout time.Duration
	pollInterval   time.Duration
	log            zerolog.Logger
}

// NewClient creates a new API client from the run configuration
func NewClient(cfg *config.Config, log zerolog.Logger) *Client {
	endpoint := cfg.Endpoint()

	return &Client{
		rpc:            rpc.New(endpoint),
		endpoint:       endpoint,
		commitment:     cfg.Commitment,
		maxRetries:     cfg.MaxRetries,
		confirmTimeout: cfg.ConfirmTimeout,
		pollInterval:   cfg.PollInterval,
		log:            log.With().Str("component", "rpc").Logger(),
	}
}

// Endpoint returns the RPC URL in use
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Close releases the underlying HTTP transport
func (c *Client) Close() error {
	return c.rpc.Close()
}

// commitmentReached reports whether status satisfies the wanted commitment level.
func commitmentReached(status rpc.ConfirmationStatusType, want rpc.CommitmentType) bool {
	switch want {
	case rpc.CommitmentProcessed:
		return status == rpc.ConfirmationStatusProcessed ||
			status == rpc.ConfirmationStatusConfirmed ||
			status == rpc.ConfirmationStatusFinalized
	case rpc.CommitmentFinalized:
		return status == rpc.ConfirmationStatusFinalized
	default:
		return status == rpc.ConfirmationStatusConfirmed ||
			status == rpc.ConfirmationStatusFinalized
	}
}
