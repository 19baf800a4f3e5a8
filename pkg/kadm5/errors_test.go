package kadm5

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krb5go/kadm5/internal/native"
)

// ============================================================================
// Native Code Mapping Tests
// ============================================================================

func TestFromNativeCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		code int64
		want ErrorCode
	}{
		{"unknown principal is not found", codeUnkPrinc, CodeNotFound},
		{"unknown policy is not found", codeUnkPolicy, CodeNotFound},
		{"duplicate entry is already exists", codeDup, CodeAlreadyExists},
		{"bad principal name is invalid argument", codeBadPrincipal, CodeInvalidArgument},
		{"bad policy name is invalid argument", codeBadPolicy, CodeInvalidArgument},
		{"bad mask is invalid argument", codeBadMask, CodeInvalidArgument},
		{"bad password length is invalid argument", codeBadLength, CodeInvalidArgument},
		{"rpc failure is connection", codeRPCError, CodeConnection},
		{"no admin server is connection", codeNoSrv, CodeConnection},
		{"uninitialized handle is connection", codeNotInit, CodeConnection},
		{"incorrect password is connection", codeBadPassword, CodeConnection},
		{"gss failure is connection", codeGSSError, CodeConnection},
		{"auth denial falls through to library", codeAuthGet, CodeLibrary},
		{"password quality falls through to library", codePassQDict, CodeLibrary},
		{"policy in use falls through to library", codePolicyRef, CodeLibrary},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := fromNativeCode(tt.code, "")

			assert.Equal(t, tt.want, err.Code)
			assert.Equal(t, tt.code, err.KadmCode)
			assert.NotEmpty(t, err.Message, "known codes carry the library message")
		})
	}
}

func TestFromNativeCodeUnknownCodeIsTotal(t *testing.T) {
	t.Parallel()

	err := fromNativeCode(999999, "mystery failure")

	assert.Equal(t, CodeLibrary, err.Code)
	assert.Equal(t, int64(999999), err.KadmCode)
	assert.Equal(t, "mystery failure", err.Message)
}

func TestFromNativeCodePrefersTableMessage(t *testing.T) {
	t.Parallel()

	err := fromNativeCode(codeUnkPrinc, "raw library text")

	assert.Equal(t, "Principal does not exist", err.Message)
}

// ============================================================================
// wrapNative Tests
// ============================================================================

func TestWrapNative(t *testing.T) {
	t.Parallel()

	t.Run("nil passes through", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, wrapNative(nil))
	})

	t.Run("call error is classified", func(t *testing.T) {
		t.Parallel()
		err := wrapNative(&native.CallError{Code: codeDup, Message: "exists"})

		require.Error(t, err)
		assert.True(t, IsAlreadyExists(err))
	})

	t.Run("decode error becomes conversion", func(t *testing.T) {
		t.Parallel()
		err := wrapNative(&native.DecodeError{Field: "principal name"})

		require.Error(t, err)
		assert.True(t, IsConversion(err))
	})
}

func TestWrapConnectForcesConnectionClass(t *testing.T) {
	t.Parallel()

	err := wrapConnect(&native.CallError{Code: codeAuthGet, Message: "denied"})

	require.Error(t, err)
	assert.True(t, IsConnection(err))

	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, codeAuthGet, e.KadmCode, "native code survives reclassification")
}

func TestWrapConnectKeepsConversionClass(t *testing.T) {
	t.Parallel()

	err := wrapConnect(&native.DecodeError{Field: "client name"})

	assert.True(t, IsConversion(err))
}

// ============================================================================
// Error Formatting and Helpers Tests
// ============================================================================

func TestErrorMessageIncludesNativeCode(t *testing.T) {
	t.Parallel()

	err := fromNativeCode(codeUnkPrinc, "")

	assert.Contains(t, err.Error(), "not_found")
	assert.Contains(t, err.Error(), "43787532")
}

func TestErrorMessageWithoutNativeCode(t *testing.T) {
	t.Parallel()

	err := errInvalidArgument("principal name must not be empty")

	assert.Equal(t, "kadm5: invalid_argument: principal name must not be empty", err.Error())
}

func TestIsHelpersRejectForeignErrors(t *testing.T) {
	t.Parallel()

	plain := errors.New("plain")

	assert.False(t, IsNotFound(plain))
	assert.False(t, IsAlreadyExists(plain))
	assert.False(t, IsConnection(plain))
	assert.False(t, IsInvalidArgument(plain))
	assert.False(t, IsConversion(plain))
}
