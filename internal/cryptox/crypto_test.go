package cryptox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string `json:"name"`
	Token string `json:"token"`
}

func TestEncryptDecryptEntry_RoundTrip(t *testing.T) {
	key := DeriveMasterKey([]byte("passphrase"), []byte("0123456789abcdef"))
	require.Len(t, key, 32)

	in := sample{Name: "primary", Token: "12345:abcdef"}

	ciphertext, nonce, err := EncryptEntry(in, key)
	require.NoError(t, err)
	require.Len(t, nonce, 12)
	assert.NotContains(t, string(ciphertext), "12345:abcdef")

	var out sample
	require.NoError(t, DecryptEntry(ciphertext, nonce, key, &out))
	assert.Equal(t, in, out)
}

func TestDecryptEntry_WrongKeyFails(t *testing.T) {
	key := DeriveMasterKey([]byte("passphrase"), []byte("0123456789abcdef"))
	other := DeriveMasterKey([]byte("not-the-passphrase"), []byte("0123456789abcdef"))

	ciphertext, nonce, err := EncryptEntry(sample{Name: "x"}, key)
	require.NoError(t, err)

	var out sample
	assert.Error(t, DecryptEntry(ciphertext, nonce, other, &out))
}

func TestDeriveMasterKey_DeterministicPerSalt(t *testing.T) {
	a := DeriveMasterKey([]byte("pw"), []byte("salt-one-16bytes"))
	b := DeriveMasterKey([]byte("pw"), []byte("salt-one-16bytes"))
	c := DeriveMasterKey([]byte("pw"), []byte("salt-two-16bytes"))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestMakeVerifier_Distinguishes(t *testing.T) {
	a := MakeVerifier([]byte("key-a"))
	b := MakeVerifier([]byte("key-b"))
	assert.Len(t, a, 32)
	assert.NotEqual(t, a, b)
}
