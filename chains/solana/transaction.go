package solana

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
)

// Transaction collects the pieces of a Solana transaction before it is signed.
type Transaction struct {
	Instructions    []solana.Instruction
	Signers         []solana.PrivateKey
	FeePayer        solana.PublicKey
	RecentBlockhash solana.Hash
}

func NewTransaction(feePayer solana.PublicKey) *Transaction {
	return &Transaction{
		Instructions: make([]solana.Instruction, 0),
		Signers:      make([]solana.PrivateKey, 0),
		FeePayer:     feePayer,
	}
}

func (tx *Transaction) AddTransferInstruction(from solana.PublicKey, to solana.PublicKey, amount uint64) {
	instruction := system.NewTransferInstruction(
		amount,
		from,
		to,
	).Build()
	tx.Instructions = append(tx.Instructions, instruction)
}

func (tx *Transaction) AddSigner(signer solana.PrivateKey) {
	tx.Signers = append(tx.Signers, signer)
}

func (tx *Transaction) SetRecentBlockhash(blockhash solana.Hash) {
	tx.RecentBlockhash = blockhash
}

// BuildAndSign assembles the transaction and signs it with every registered signer.
func (tx *Transaction) BuildAndSign() (*solana.Transaction, error) {
	if tx.RecentBlockhash.IsZero() {
		return nil, fmt.Errorf("blockhash is empty")
	}
	if len(tx.Instructions) == 0 {
		return nil, fmt.Errorf("no instructions in transaction")
	}
	if len(tx.Signers) == 0 {
		return nil, fmt.Errorf("no signers provided for transaction")
	}

	stx, err := solana.NewTransaction(
		tx.Instructions,
		tx.RecentBlockhash,
		solana.TransactionPayer(tx.FeePayer),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	_, err = stx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		for i := range tx.Signers {
			if key.Equals(tx.Signers[i].PublicKey()) {
				return &tx.Signers[i]
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}

	return stx, nil
}

// CreateTransferTransaction builds a single-instruction transfer signed only by from.
func CreateTransferTransaction(from solana.PrivateKey, to solana.PublicKey, amount uint64, recentBlockhash solana.Hash) (*solana.Transaction, error) {
	tx := NewTransaction(from.PublicKey())
	tx.AddTransferInstruction(from.PublicKey(), to, amount)
	tx.AddSigner(from)
	tx.SetRecentBlockhash(recentBlockhash)
	return tx.BuildAndSign()
}

// ParseAddress decodes a base58 account address.
func ParseAddress(address string) (solana.PublicKey, error) {
	// Base58 doesn't use 0, O, I, or l
	for i, c := range address {
		if c == '0' || c == 'O' || c == 'I' || c == 'l' {
			return solana.PublicKey{}, fmt.Errorf("invalid character '%c' at position %d in Solana address. Solana addresses use base58 encoding which doesn't include 0, O, I, or l characters", c, i)
		}
	}

	pubKey, err := solana.PublicKeyFromBase58(address)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("invalid Solana address (%s): %w", address, err)
	}
	return pubKey, nil
}
