package crypto

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSealOpen(t *testing.T) {
	plaintext := []byte("keyA\nkeyB\n")

	v, err := Seal(plaintext, "correct horse")
	require.NoError(t, err)
	assert.Equal(t, VaultKind, v.Kind)
	assert.NotEqual(t, plaintext, v.Data)

	got, err := v.Open("correct horse")
	require.NoError(t, err)
	assert.Equal(t, plaintext, got)

	_, err = v.Open("wrong")
	assert.ErrorIs(t, err, ErrWrongPassword)
}

func TestSealRejectsEmptyPassword(t *testing.T) {
	_, err := Seal([]byte("x"), "")
	assert.Error(t, err)
}

func TestVaultFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallets.vault")

	v, err := Seal([]byte("secret"), "pw")
	require.NoError(t, err)
	require.NoError(t, v.WriteFile(path))

	loaded, err := ReadFile(path)
	require.NoError(t, err)
	got, err := loaded.Open("pw")
	require.NoError(t, err)
	assert.Equal(t, "secret", string(got))
}

func TestLooksSealed(t *testing.T) {
	assert.False(t, LooksSealed([]byte("5Kd3NBUAdUnhyzenEwVLy9pBKxSwXvE9FMPyR4UKZvpe\n")))
	assert.False(t, LooksSealed([]byte(`{"kind":"something-else","version":1}`)))
	assert.True(t, LooksSealed([]byte(`{"kind":"solcollect-sealed-keys","version":1}`)))
}

func TestClearBytes(t *testing.T) {
	b := []byte{1, 2, 3}
	ClearBytes(b)
	assert.Equal(t, []byte{0, 0, 0}, b)
}
