package solana

import (
	"encoding/binary"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTransferTransaction(t *testing.T) {
	from, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)
	to := solana.NewWallet().PublicKey()
	blockhash := solana.Hash{1, 2, 3}

	tx, err := CreateTransferTransaction(from, to, 999_999_995, blockhash)
	require.NoError(t, err)

	require.NoError(t, tx.VerifySignatures())
	require.Len(t, tx.Signatures, 1)
	assert.Equal(t, blockhash, tx.Message.RecentBlockhash)
	assert.Equal(t, from.PublicKey(), tx.Message.AccountKeys[0], "sender pays the fee")

	require.Len(t, tx.Message.Instructions, 1)
	ins := tx.Message.Instructions[0]
	assert.Equal(t, solana.SystemProgramID, tx.Message.AccountKeys[ins.ProgramIDIndex])
	require.Len(t, ins.Accounts, 2)
	assert.Equal(t, from.PublicKey(), tx.Message.AccountKeys[ins.Accounts[0]])
	assert.Equal(t, to, tx.Message.AccountKeys[ins.Accounts[1]])

	// u32 instruction tag (2 = transfer) followed by u64 lamports
	require.Len(t, ins.Data, 12)
	assert.Equal(t, uint32(2), binary.LittleEndian.Uint32(ins.Data[:4]))
	assert.Equal(t, uint64(999_999_995), binary.LittleEndian.Uint64(ins.Data[4:]))
}

func TestBuildAndSignValidation(t *testing.T) {
	from, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)
	to := solana.NewWallet().PublicKey()

	t.Run("missing blockhash", func(t *testing.T) {
		_, err := CreateTransferTransaction(from, to, 1, solana.Hash{})
		assert.ErrorContains(t, err, "blockhash is empty")
	})

	t.Run("missing signer", func(t *testing.T) {
		tx := NewTransaction(from.PublicKey())
		tx.AddTransferInstruction(from.PublicKey(), to, 1)
		tx.SetRecentBlockhash(solana.Hash{9})
		_, err := tx.BuildAndSign()
		assert.ErrorContains(t, err, "no signers")
	})

	t.Run("missing instruction", func(t *testing.T) {
		tx := NewTransaction(from.PublicKey())
		tx.AddSigner(from)
		tx.SetRecentBlockhash(solana.Hash{9})
		_, err := tx.BuildAndSign()
		assert.ErrorContains(t, err, "no instructions")
	})
}

func TestParseAddress(t *testing.T) {
	want := solana.NewWallet().PublicKey()

	got, err := ParseAddress(want.String())
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = ParseAddress("0xdeadbeef")
	assert.ErrorContains(t, err, "invalid character '0'")

	_, err = ParseAddress("abc")
	assert.ErrorContains(t, err, "invalid Solana address")
}

func TestUnits(t *testing.T) {
	assert.Equal(t, uint64(1_000_000_000), LamportsPerSOL)
	assert.True(t, LamportsToSOL(1_000_000_000).Equal(decimal.NewFromInt(1)))
	assert.Equal(t, 1.0, LamportsToSOLFloat(1_000_000_000))
	assert.Equal(t, 0.0, LamportsToSOLFloat(0))
	assert.Equal(t, 0.000005, LamportsToSOLFloat(5000))

	assert.Equal(t, "1.000000 SOL", FormatSOL(1_000_000_000, 6))
	assert.Equal(t, "0.999999 SOL", FormatSOL(999_999_000, 6))
	assert.Equal(t, "1.000000 SOL", FormatSOL(999_999_995, 6))
	assert.Equal(t, "0.000005000 SOL", FormatBalance(5000))
}
