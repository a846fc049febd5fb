package wallet

import (
	"bufio"
	"bytes"
	"crypto/ed25519"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chinmay1088/solcollect/crypto"
	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
)

var (
	ErrKeyLength   = fmt.Errorf("secret key must be %d bytes", ed25519.PrivateKeySize)
	ErrKeyMismatch = errors.New("public half of secret key does not match its seed")
	ErrNotBase58   = errors.New("not base58")
)

// Account is a signing key loaded from the key file together with its address.
type Account struct {
	// Index is the position among the non-blank lines of the key file.
	Index      int
	PrivateKey solana.PrivateKey
	Address    solana.PublicKey
}

// DecodeError reports a key file line that is not a valid Base58 secret key.
// The key material itself is never included.
type DecodeError struct {
	Line int
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid key on line %d: %v", e.Line, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// DecodeKey turns a Base58 encoded 64-byte secret key into a solana private key.
func DecodeKey(encoded string) (solana.PrivateKey, error) {
	// the decoder's error quotes the offending input
	raw, err := base58.Decode(encoded)
	if err != nil {
		return nil, ErrNotBase58
	}
	if len(raw) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("%w, got %d", ErrKeyLength, len(raw))
	}

	derived := ed25519.NewKeyFromSeed(raw[:ed25519.SeedSize])
	if !bytes.Equal(derived[ed25519.SeedSize:], raw[ed25519.SeedSize:]) {
		return nil, ErrKeyMismatch
	}

	return solana.PrivateKey(raw), nil
}

// ParseKeys reads one key per line. Whitespace is trimmed and blank lines are
// skipped; the first bad line aborts with a *DecodeError.
func ParseKeys(r io.Reader) ([]Account, error) {
	scanner := bufio.NewScanner(r)
	accounts := make([]Account, 0)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		key, err := DecodeKey(line)
		if err != nil {
			return nil, &DecodeError{Line: lineNo, Err: err}
		}

		accounts = append(accounts, Account{
			Index:      len(accounts),
			PrivateKey: key,
			Address:    key.PublicKey(),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read keys: %w", err)
	}

	return accounts, nil
}

// LoadKeyFile parses a plain text key file.
func LoadKeyFile(path string) ([]Account, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open key file: %w", err)
	}
	defer file.Close()

	return ParseKeys(file)
}

// LoadSealedKeyFile decrypts a key file written by the seal command and parses it.
func LoadSealedKeyFile(path, password string) ([]Account, error) {
	vault, err := crypto.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sealed key file: %w", err)
	}

	plaintext, err := vault.Open(password)
	if err != nil {
		return nil, err
	}
	defer crypto.ClearBytes(plaintext)

	return ParseKeys(bytes.NewReader(plaintext))
}

// IsSealed reports whether the file at path is a sealed key file.
func IsSealed(path string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("failed to read key file: %w", err)
	}
	defer crypto.ClearBytes(data)

	return crypto.LooksSealed(data), nil
}
