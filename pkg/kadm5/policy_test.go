package kadm5

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krb5go/kadm5/internal/native"
)

// ============================================================================
// Policy Snapshot Tests
// ============================================================================

func TestPolicyFromRecord(t *testing.T) {
	t.Parallel()

	rec := &native.PolicyRecord{
		Name:               "default",
		PwMinLife:          3600,
		PwMaxLife:          7776000,
		PwMinLength:        12,
		PwMinClasses:       3,
		PwHistoryNum:       5,
		RefCount:           0,
		PwMaxFail:          10,
		PwFailCountInt:     300,
		PwLockoutDuration:  600,
		AllowedKeysalts:    "aes256-cts-hmac-sha1-96:normal",
		HasAllowedKeysalts: true,
	}

	p, err := policyFromRecord(rec)

	require.NoError(t, err)
	assert.Equal(t, "default", p.Name())
	assert.Equal(t, time.Hour, p.PasswordMinLife())
	assert.Equal(t, 90*24*time.Hour, p.PasswordMaxLife())
	assert.Equal(t, 12, p.PasswordMinLength())
	assert.Equal(t, 3, p.PasswordMinClasses())
	assert.Equal(t, 5, p.PasswordHistoryNum())
	assert.Equal(t, uint32(10), p.MaxFailures())
	assert.Equal(t, 5*time.Minute, p.FailureResetInterval())
	assert.Equal(t, 10*time.Minute, p.LockoutDuration())

	ksl := p.AllowedKeysalts()
	require.NotNil(t, ksl)
	assert.True(t, ksl.Contains(KeySalt{Enc: Aes256CtsHmacSha196, Salt: SaltNormal}))
}

func TestPolicyFromRecordWithoutKeysaltRestriction(t *testing.T) {
	t.Parallel()

	p, err := policyFromRecord(&native.PolicyRecord{Name: "open"})

	require.NoError(t, err)
	assert.Nil(t, p.AllowedKeysalts())
}

func TestPolicyFromRecordRejectsUnparsableKeysalts(t *testing.T) {
	t.Parallel()

	_, err := policyFromRecord(&native.PolicyRecord{
		Name:               "weird",
		AllowedKeysalts:    "rot13:normal",
		HasAllowedKeysalts: true,
	})

	assert.True(t, IsConversion(err))
}

// ============================================================================
// PolicyBuilder Tests
// ============================================================================

func TestPolicyBuilderTracksMask(t *testing.T) {
	t.Parallel()

	t.Run("untouched fields stay out of the mask", func(t *testing.T) {
		t.Parallel()
		b := NewPolicy("default")

		rec, mask := b.record(b.Name())

		assert.Equal(t, native.MaskPolicy, mask)
		assert.Equal(t, "default", rec.Name)
	})

	t.Run("setting fields adds their bits", func(t *testing.T) {
		t.Parallel()
		b := NewPolicy("default")
		b.SetPasswordMinLength(12)
		b.SetMaxFailures(10)

		rec, mask := b.record(b.Name())

		assert.NotZero(t, mask&native.MaskPwMinLength)
		assert.NotZero(t, mask&native.MaskPwMaxFailure)
		assert.Equal(t, int64(12), rec.PwMinLength)
		assert.Equal(t, uint32(10), rec.PwMaxFail)
	})

	t.Run("zero lockout is an explicit update", func(t *testing.T) {
		t.Parallel()
		b := NewPolicy("default")
		b.SetLockoutDuration(0)

		rec, mask := b.record(b.Name())

		assert.NotZero(t, mask&native.MaskPwLockoutDuration)
		assert.Equal(t, int64(0), rec.PwLockoutDuration)
	})
}

func TestPolicyBuilderKeysalts(t *testing.T) {
	t.Parallel()

	t.Run("restricting serializes the list", func(t *testing.T) {
		t.Parallel()
		b := NewPolicy("default")
		b.SetAllowedKeysalts(NewKeySaltList(
			KeySalt{Enc: Aes256CtsHmacSha196, Salt: SaltNormal},
		))

		rec, mask := b.record(b.Name())

		assert.NotZero(t, mask&native.MaskPolicyAllowedKeysalts)
		assert.True(t, rec.HasAllowedKeysalts)
		assert.Equal(t, "aes256-cts-hmac-sha1-96:normal", rec.AllowedKeysalts)
	})

	t.Run("nil lifts the restriction", func(t *testing.T) {
		t.Parallel()
		b := NewPolicy("default")
		b.SetAllowedKeysalts(nil)

		rec, mask := b.record(b.Name())

		assert.NotZero(t, mask&native.MaskPolicyAllowedKeysalts)
		assert.False(t, rec.HasAllowedKeysalts)
	})
}

// ============================================================================
// PolicyModifier Tests
// ============================================================================

func TestPolicyModifierPartialUpdate(t *testing.T) {
	t.Parallel()

	m := ModifyPolicyEntry("default")
	m.SetPasswordHistoryNum(8)

	rec, mask := m.record(m.Name())

	assert.Equal(t, native.MaskPolicy|native.MaskPwHistoryNum, mask)
	assert.Equal(t, int64(8), rec.PwHistoryNum)
	assert.Zero(t, rec.PwMinLength, "untouched fields stay zero and unmasked")
}

func TestPolicyModifierFromSnapshot(t *testing.T) {
	t.Parallel()

	p, err := policyFromRecord(&native.PolicyRecord{Name: "default"})
	require.NoError(t, err)

	assert.Equal(t, "default", p.Modifier().Name())
}
