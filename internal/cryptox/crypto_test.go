package cryptox

import (
	"testing"

	"github.com/facevault/facevault/internal/common"
	"github.com/stretchr/testify/require"
)

func TestDeriveMasterKey_Deterministic(t *testing.T) {
	salt := []byte("0123456789abcdef0123456789abcdef")

	k1 := DeriveMasterKey([]byte("correct horse"), salt)
	k2 := DeriveMasterKey([]byte("correct horse"), salt)
	require.Equal(t, k1, k2)
	require.Len(t, k1, KeySize)
}

func TestDeriveMasterKey_DiffersByPassphrase(t *testing.T) {
	salt := []byte("0123456789abcdef0123456789abcdef")

	k1 := DeriveMasterKey([]byte("passphrase one"), salt)
	k2 := DeriveMasterKey([]byte("passphrase two"), salt)
	require.NotEqual(t, k1, k2)
}

func TestMakeVerifier_DoesNotEqualKey(t *testing.T) {
	key := common.GenerateRandByteArray(KeySize)
	v := MakeVerifier(key)
	require.Len(t, v, 32)
	require.NotEqual(t, key, v)
}

func TestSealOpen_RoundTrip(t *testing.T) {
	key := common.GenerateRandByteArray(KeySize)

	tests := []struct {
		name      string
		plaintext []byte
	}{
		{"empty", []byte{}},
		{"short", []byte("hello")},
		{"json", []byte(`{"github":{"username":"u","password":"p"}}`)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			blob, err := Seal(tc.plaintext, key)
			require.NoError(t, err)

			got, err := Open(blob, key)
			require.NoError(t, err)
			require.Equal(t, tc.plaintext, got)
		})
	}
}

func TestOpen_WrongKey(t *testing.T) {
	k1 := common.GenerateRandByteArray(KeySize)
	k2 := common.GenerateRandByteArray(KeySize)

	blob, err := Seal([]byte("secret"), k1)
	require.NoError(t, err)

	_, err = Open(blob, k2)
	require.ErrorIs(t, err, common.ErrVaultCorruptOrWrongKey)
}

func TestOpen_Tampered(t *testing.T) {
	key := common.GenerateRandByteArray(KeySize)

	blob, err := Seal([]byte("secret"), key)
	require.NoError(t, err)

	blob[len(blob)-1] ^= 0x01

	_, err = Open(blob, key)
	require.ErrorIs(t, err, common.ErrVaultCorruptOrWrongKey)
}

func TestOpen_Truncated(t *testing.T) {
	key := common.GenerateRandByteArray(KeySize)

	_, err := Open([]byte{1, 2, 3}, key)
	require.ErrorIs(t, err, common.ErrVaultCorruptOrWrongKey)
}
