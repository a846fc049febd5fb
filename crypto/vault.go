package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/crypto/scrypt"
)

const (
	ScryptN = 32768 // 2^15
	ScryptR = 8
	ScryptP = 1
	KeyLen  = 32 // AES-256 key length

	// VaultKind marks a sealed key file so it can be told apart from a plain one.
	VaultKind    = "solcollect-sealed-keys"
	VaultVersion = 1
)

var ErrWrongPassword = errors.New("wrong password or corrupted vault")

// Vault is the on-disk envelope of a sealed key file.
type Vault struct {
	Kind    string `json:"kind"`
	Version int    `json:"version"`
	Salt    []byte `json:"salt"`
	Nonce   []byte `json:"nonce"`
	Data    []byte `json:"data"`
}

// Seal encrypts the key file contents with a key derived from password.
func Seal(plaintext []byte, password string) (*Vault, error) {
	if password == "" {
		return nil, fmt.Errorf("password must not be empty")
	}

	salt := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	key, err := deriveKey(password, salt)
	if err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}
	defer ClearBytes(key)

	nonce := make([]byte, 12)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	encryptedData, err := encrypt(key, nonce, plaintext)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt data: %w", err)
	}

	return &Vault{
		Kind:    VaultKind,
		Version: VaultVersion,
		Salt:    salt,
		Nonce:   nonce,
		Data:    encryptedData,
	}, nil
}

// Open decrypts the vault. The caller should zero the result when done.
func (v *Vault) Open(password string) ([]byte, error) {
	key, err := deriveKey(password, v.Salt)
	if err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}
	defer ClearBytes(key)

	plaintext, err := decrypt(key, v.Nonce, v.Data)
	if err != nil {
		return nil, ErrWrongPassword
	}
	return plaintext, nil
}

// ParseVault decodes a vault envelope and checks its kind and version.
func ParseVault(data []byte) (*Vault, error) {
	var v Vault
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("failed to parse vault: %w", err)
	}
	if v.Kind != VaultKind {
		return nil, fmt.Errorf("not a sealed key file (kind %q)", v.Kind)
	}
	if v.Version != VaultVersion {
		return nil, fmt.Errorf("unsupported vault version %d", v.Version)
	}
	return &v, nil
}

// LooksSealed reports whether data is a vault envelope.
func LooksSealed(data []byte) bool {
	_, err := ParseVault(data)
	return err == nil
}

// WriteFile stores the vault as indented JSON with owner-only permissions.
func (v *Vault) WriteFile(path string) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize vault: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write vault: %w", err)
	}
	return nil
}

// ReadFile loads a vault from disk.
func ReadFile(path string) (*Vault, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseVault(data)
}

func deriveKey(password string, salt []byte) ([]byte, error) {
	key, err := scrypt.Key([]byte(password), salt, ScryptN, ScryptR, ScryptP, KeyLen)
	if err != nil {
		return nil, fmt.Errorf("scrypt key derivation failed: %w", err)
	}
	return key, nil
}

func encrypt(key, nonce, data []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return aesGCM.Seal(nil, nonce, data, []byte(VaultKind)), nil
}

func decrypt(key, nonce, data []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	plaintext, err := aesGCM.Open(nil, nonce, data, []byte(VaultKind))
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt: %w", err)
	}

	return plaintext, nil
}

// ClearBytes zeroes b in place.
func ClearBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
