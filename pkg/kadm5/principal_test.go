package kadm5

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krb5go/kadm5/internal/native"
)

// ============================================================================
// Principal Snapshot Tests
// ============================================================================

func TestPrincipalFromRecord(t *testing.T) {
	t.Parallel()

	rec := &native.PrincipalRecord{
		Name:             "alice@EXAMPLE.ORG",
		PrincExpireTime:  1767225600,
		PwExpiration:     0,
		MaxLife:          36000,
		ModName:          "admin/admin@EXAMPLE.ORG",
		ModDate:          1735689600,
		Attributes:       int32(RequiresPreAuth | DisallowPostdated),
		Kvno:             3,
		Policy:           "default",
		HasPolicy:        true,
		MaxRenewableLife: 604800,
		FailAuthCount:    2,
		TLData:           []native.TLRecord{{Type: 300, Contents: []byte{1, 2}}},
	}

	p := principalFromRecord(rec)

	assert.Equal(t, "alice@EXAMPLE.ORG", p.Name())
	assert.Equal(t, time.Unix(1767225600, 0).UTC(), p.ExpireTime())
	assert.True(t, p.PasswordExpiration().IsZero(), "zero timestamp means never")
	assert.Equal(t, 10*time.Hour, p.MaxLife())
	assert.Equal(t, "admin/admin@EXAMPLE.ORG", p.ModifiedBy())
	assert.True(t, p.Attributes().Has(RequiresPreAuth))
	assert.False(t, p.Attributes().Has(DisallowAllTix))
	assert.Equal(t, uint32(3), p.Kvno())
	assert.Equal(t, 7*24*time.Hour, p.MaxRenewableLife())
	assert.Equal(t, uint32(2), p.FailAuthCount())

	policy, ok := p.Policy()
	assert.True(t, ok)
	assert.Equal(t, "default", policy)

	require.Len(t, p.TLData().Entries, 1)
	assert.Equal(t, int16(300), p.TLData().Entries[0].Type)
}

func TestPrincipalWithoutPolicy(t *testing.T) {
	t.Parallel()

	p := principalFromRecord(&native.PrincipalRecord{Name: "bob@EXAMPLE.ORG"})

	policy, ok := p.Policy()
	assert.False(t, ok)
	assert.Empty(t, policy)
}

// ============================================================================
// PrincipalAttributes Tests
// ============================================================================

func TestPrincipalAttributesString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "NONE", PrincipalAttributes(0).String())
	assert.Equal(t, "REQUIRES_PRE_AUTH", RequiresPreAuth.String())
	assert.Equal(t,
		"DISALLOW_ALL_TIX|REQUIRES_PRE_AUTH",
		(DisallowAllTix | RequiresPreAuth).String())
}

// ============================================================================
// PrincipalBuilder Tests
// ============================================================================

func TestPrincipalBuilderTracksMask(t *testing.T) {
	t.Parallel()

	t.Run("untouched fields stay out of the mask", func(t *testing.T) {
		t.Parallel()
		b := NewPrincipal("alice@EXAMPLE.ORG")

		rec, mask := b.record(b.Name())

		assert.Equal(t, native.MaskPrincipal, mask)
		assert.Equal(t, "alice@EXAMPLE.ORG", rec.Name)
	})

	t.Run("setting a field adds its bit", func(t *testing.T) {
		t.Parallel()
		b := NewPrincipal("alice@EXAMPLE.ORG")
		b.SetMaxLife(8 * time.Hour)
		b.SetAttributes(RequiresPreAuth)

		rec, mask := b.record(b.Name())

		assert.Equal(t, native.MaskPrincipal|native.MaskMaxLife|native.MaskAttributes, mask)
		assert.Equal(t, int64(28800), rec.MaxLife)
		assert.Equal(t, int32(RequiresPreAuth), rec.Attributes)
	})

	t.Run("setting the zero value still marks the field", func(t *testing.T) {
		t.Parallel()
		b := NewPrincipal("alice@EXAMPLE.ORG")
		b.SetExpireTime(time.Time{})

		rec, mask := b.record(b.Name())

		assert.NotZero(t, mask&native.MaskPrincExpireTime, "clearing is an explicit update")
		assert.Equal(t, int64(0), rec.PrincExpireTime)
	})
}

func TestPrincipalBuilderPolicySetAndClear(t *testing.T) {
	t.Parallel()

	t.Run("set policy", func(t *testing.T) {
		t.Parallel()
		b := NewPrincipal("alice@EXAMPLE.ORG")
		b.SetPolicy("default")

		rec, mask := b.record(b.Name())

		assert.NotZero(t, mask&native.MaskPolicy)
		assert.Zero(t, mask&native.MaskPolicyClear)
		assert.Equal(t, "default", rec.Policy)
		assert.True(t, rec.HasPolicy)
	})

	t.Run("clear policy", func(t *testing.T) {
		t.Parallel()
		b := NewPrincipal("alice@EXAMPLE.ORG")
		b.SetPolicy("default")
		b.ClearPolicy()

		rec, mask := b.record(b.Name())

		assert.Zero(t, mask&native.MaskPolicy)
		assert.NotZero(t, mask&native.MaskPolicyClear)
		assert.False(t, rec.HasPolicy)
	})
}

func TestPrincipalBuilderKeyChoiceDefaultsToRandom(t *testing.T) {
	t.Parallel()

	b := NewPrincipal("alice@EXAMPLE.ORG")

	assert.Equal(t, keyRandom, b.key)

	b.Password("hunter2")
	assert.Equal(t, keyPassword, b.key)

	b.NoKey()
	assert.Equal(t, keyNone, b.key)
	assert.Empty(t, b.password, "switching away from password drops it")
}

// ============================================================================
// PrincipalModifier Tests
// ============================================================================

func TestPrincipalModifierPartialUpdate(t *testing.T) {
	t.Parallel()

	m := ModifyPrincipalEntry("alice@EXAMPLE.ORG")
	m.SetPasswordExpiration(time.Unix(1767225600, 0))

	rec, mask := m.record(m.Name())

	assert.Equal(t, native.MaskPrincipal|native.MaskPwExpiration, mask)
	assert.Equal(t, int64(1767225600), rec.PwExpiration)
	assert.Zero(t, rec.MaxLife, "untouched fields stay zero and unmasked")
}

func TestPrincipalModifierFromSnapshot(t *testing.T) {
	t.Parallel()

	p := principalFromRecord(&native.PrincipalRecord{Name: "alice@EXAMPLE.ORG"})
	m := p.Modifier()

	assert.Equal(t, "alice@EXAMPLE.ORG", m.Name())
}
