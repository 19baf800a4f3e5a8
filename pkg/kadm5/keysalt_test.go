package kadm5

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// EncryptionType Tests
// ============================================================================

func TestParseEncryptionType(t *testing.T) {
	t.Parallel()

	t.Run("canonical names resolve", func(t *testing.T) {
		t.Parallel()
		enc, err := ParseEncryptionType("aes256-cts-hmac-sha1-96")

		require.NoError(t, err)
		assert.Equal(t, Aes256CtsHmacSha196, enc)
	})

	t.Run("registry aliases resolve", func(t *testing.T) {
		t.Parallel()
		enc, err := ParseEncryptionType("aes256-cts")

		require.NoError(t, err)
		assert.Equal(t, Aes256CtsHmacSha196, enc)
	})

	t.Run("case and whitespace are forgiven", func(t *testing.T) {
		t.Parallel()
		enc, err := ParseEncryptionType("  AES128-CTS-HMAC-SHA1-96 ")

		require.NoError(t, err)
		assert.Equal(t, Aes128CtsHmacSha196, enc)
	})

	t.Run("unknown name is invalid argument", func(t *testing.T) {
		t.Parallel()
		_, err := ParseEncryptionType("rot13")

		assert.True(t, IsInvalidArgument(err))
	})
}

func TestEncryptionTypeString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "aes256-cts-hmac-sha1-96", Aes256CtsHmacSha196.String())
	assert.Equal(t, "camellia128-cts-cmac", Camellia128CtsCmac.String())
	assert.Equal(t, "enctype(42)", EncryptionType(42).String())
}

// ============================================================================
// SaltType Tests
// ============================================================================

func TestParseSaltType(t *testing.T) {
	t.Parallel()

	t.Run("empty string is the normal salt", func(t *testing.T) {
		t.Parallel()
		salt, err := ParseSaltType("")

		require.NoError(t, err)
		assert.Equal(t, SaltNormal, salt)
	})

	t.Run("named salts resolve", func(t *testing.T) {
		t.Parallel()
		salt, err := ParseSaltType("norealm")

		require.NoError(t, err)
		assert.Equal(t, SaltNoRealm, salt)
	})

	t.Run("unknown name is invalid argument", func(t *testing.T) {
		t.Parallel()
		_, err := ParseSaltType("celtic")

		assert.True(t, IsInvalidArgument(err))
	})
}

// ============================================================================
// KeySaltList Tests
// ============================================================================

func TestKeySaltListDeduplicates(t *testing.T) {
	t.Parallel()

	l := NewKeySaltList(
		KeySalt{Enc: Aes256CtsHmacSha196, Salt: SaltNormal},
		KeySalt{Enc: Aes128CtsHmacSha196, Salt: SaltNormal},
		KeySalt{Enc: Aes256CtsHmacSha196, Salt: SaltNormal},
	)

	assert.Equal(t, 2, l.Len())
	assert.True(t, l.Contains(KeySalt{Enc: Aes256CtsHmacSha196, Salt: SaltNormal}))
}

func TestKeySaltListSameEnctypeDifferentSaltsAreDistinct(t *testing.T) {
	t.Parallel()

	l := NewKeySaltList(
		KeySalt{Enc: Aes256CtsHmacSha196, Salt: SaltNormal},
		KeySalt{Enc: Aes256CtsHmacSha196, Salt: SaltSpecial},
	)

	assert.Equal(t, 2, l.Len())
}

func TestKeySaltListString(t *testing.T) {
	t.Parallel()

	l := NewKeySaltList(
		KeySalt{Enc: Aes256CtsHmacSha196, Salt: SaltNormal},
		KeySalt{Enc: Aes128CtsHmacSha196, Salt: SaltNormal},
	)

	assert.Equal(t, "aes256-cts-hmac-sha1-96:normal,aes128-cts-hmac-sha1-96:normal", l.String())
}

func TestParseKeySaltList(t *testing.T) {
	t.Parallel()

	t.Run("parses comma separated pairs", func(t *testing.T) {
		t.Parallel()
		l, err := ParseKeySaltList("aes256-cts-hmac-sha1-96:normal,aes128-cts-hmac-sha1-96:normal")

		require.NoError(t, err)
		assert.Equal(t, []KeySalt{
			{Enc: Aes256CtsHmacSha196, Salt: SaltNormal},
			{Enc: Aes128CtsHmacSha196, Salt: SaltNormal},
		}, l.Slice())
	})

	t.Run("bare enctype gets the normal salt", func(t *testing.T) {
		t.Parallel()
		l, err := ParseKeySaltList("aes256-cts-hmac-sha1-96")

		require.NoError(t, err)
		assert.Equal(t, []KeySalt{{Enc: Aes256CtsHmacSha196, Salt: SaltNormal}}, l.Slice())
	})

	t.Run("space and tab separators work", func(t *testing.T) {
		t.Parallel()
		l, err := ParseKeySaltList("aes256-cts-hmac-sha1-96:normal aes128-cts-hmac-sha1-96:special")

		require.NoError(t, err)
		assert.Equal(t, 2, l.Len())
	})

	t.Run("duplicates collapse", func(t *testing.T) {
		t.Parallel()
		l, err := ParseKeySaltList("aes256-cts:normal,aes256-cts-hmac-sha1-96:normal")

		require.NoError(t, err)
		assert.Equal(t, 1, l.Len())
	})

	t.Run("round-trips through String", func(t *testing.T) {
		t.Parallel()
		const in = "aes256-cts-hmac-sha1-96:normal,camellia256-cts-cmac:special"
		l, err := ParseKeySaltList(in)

		require.NoError(t, err)
		assert.Equal(t, in, l.String())
	})

	t.Run("bad enctype is invalid argument", func(t *testing.T) {
		t.Parallel()
		_, err := ParseKeySaltList("rot13:normal")

		assert.True(t, IsInvalidArgument(err))
	})
}
