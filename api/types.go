package api

import (
	"errors"
)

var (
	// ErrConfirmTimeout is returned when a sent transaction did not reach the
	// requested commitment before the confirmation deadline.
	ErrConfirmTimeout = errors.New("transaction was not confirmed in time")

	// ErrTransactionFailed is returned when the cluster reports an execution error.
	ErrTransactionFailed = errors.New("transaction failed")
)

// NodeInfo describes the RPC node the client talks to.
type NodeInfo struct {
	Endpoint   string `json:"endpoint"`
	Version    string `json:"version"`
	FeatureSet int64  `json:"feature_set"`
	Health     string `json:"health"`
}
