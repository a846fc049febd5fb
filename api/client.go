package api

// API Client-
//
// Files:
//   types.go     - Result types and sentinel errors
//   base.go      - Core client functionality (client struct, NewClient, helpers)
//   solana.go    - Solana RPC calls (balance, blockhash, send, confirmation, node info)
//
// Usage:
//   client := api.NewClient(cfg, logger)                 // from base.go
//   lamports, err := client.GetBalance(ctx, address)     // from solana.go
//   sig, err := client.SendAndConfirm(ctx, signedTx)     // from solana.go
