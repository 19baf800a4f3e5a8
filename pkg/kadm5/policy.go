package kadm5

import (
	"time"

	"github.com/krb5go/kadm5/internal/native"
)

// Policy is an immutable snapshot of a password policy as read from the
// server.
type Policy struct {
	name                 string
	passwordMinLife      time.Duration
	passwordMaxLife      time.Duration
	passwordMinLength    int
	passwordMinClasses   int
	passwordHistoryNum   int
	policyRefcnt         int
	maxFailures          uint32
	failureResetInterval time.Duration
	lockoutDuration      time.Duration
	attributes           int32
	maxLife              time.Duration
	maxRenewableLife     time.Duration
	allowedKeysalts      *KeySaltList
	tlData               TLData
}

func policyFromRecord(rec *native.PolicyRecord) (*Policy, error) {
	p := &Policy{
		name:                 rec.Name,
		passwordMinLife:      deltaToDuration(rec.PwMinLife),
		passwordMaxLife:      deltaToDuration(rec.PwMaxLife),
		passwordMinLength:    int(rec.PwMinLength),
		passwordMinClasses:   int(rec.PwMinClasses),
		passwordHistoryNum:   int(rec.PwHistoryNum),
		policyRefcnt:         int(rec.RefCount),
		maxFailures:          rec.PwMaxFail,
		failureResetInterval: deltaToDuration(rec.PwFailCountInt),
		lockoutDuration:      deltaToDuration(rec.PwLockoutDuration),
		attributes:           rec.Attributes,
		maxLife:              deltaToDuration(rec.MaxLife),
		maxRenewableLife:     deltaToDuration(rec.MaxRenewableLife),
		tlData:               tlDataFromRecords(rec.TLData),
	}
	if rec.HasAllowedKeysalts {
		ksl, err := ParseKeySaltList(rec.AllowedKeysalts)
		if err != nil {
			return nil, &Error{Code: CodeConversion, Message: "policy " + rec.Name + ": " + err.Error()}
		}
		p.allowedKeysalts = ksl
	}
	return p, nil
}

// Name returns the policy name.
func (p *Policy) Name() string { return p.name }

// PasswordMinLife returns the minimum password lifetime, zero meaning none.
func (p *Policy) PasswordMinLife() time.Duration { return p.passwordMinLife }

// PasswordMaxLife returns the maximum password lifetime, zero meaning no
// limit.
func (p *Policy) PasswordMaxLife() time.Duration { return p.passwordMaxLife }

// PasswordMinLength returns the minimum password length.
func (p *Policy) PasswordMinLength() int { return p.passwordMinLength }

// PasswordMinClasses returns the minimum number of character classes.
func (p *Policy) PasswordMinClasses() int { return p.passwordMinClasses }

// PasswordHistoryNum returns how many old keys are kept to block reuse.
func (p *Policy) PasswordHistoryNum() int { return p.passwordHistoryNum }

// ReferenceCount returns the number of principals using this policy. Newer
// servers no longer maintain it and report zero.
func (p *Policy) ReferenceCount() int { return p.policyRefcnt }

// MaxFailures returns the failed-authentication lockout threshold, zero
// meaning no lockout.
func (p *Policy) MaxFailures() uint32 { return p.maxFailures }

// FailureResetInterval returns how long after a failed attempt the counter
// resets, zero meaning forever.
func (p *Policy) FailureResetInterval() time.Duration { return p.failureResetInterval }

// LockoutDuration returns how long a locked-out principal stays locked,
// zero meaning until an administrator unlocks it.
func (p *Policy) LockoutDuration() time.Duration { return p.lockoutDuration }

// Attributes returns the policy-supplied KDC flag bits.
func (p *Policy) Attributes() int32 { return p.attributes }

// MaxLife returns the policy-supplied maximum ticket life.
func (p *Policy) MaxLife() time.Duration { return p.maxLife }

// MaxRenewableLife returns the policy-supplied maximum renewable life.
func (p *Policy) MaxRenewableLife() time.Duration { return p.maxRenewableLife }

// AllowedKeysalts returns the keysalts principals under this policy may
// have, or nil when unrestricted.
func (p *Policy) AllowedKeysalts() *KeySaltList { return p.allowedKeysalts }

// TLData returns the tagged data attached to the policy.
func (p *Policy) TLData() TLData { return p.tlData }

// policyFields tracks writable policy fields with a mask of which ones were
// explicitly set, mirroring the principal builder's unset-versus-cleared
// distinction.
type policyFields struct {
	mask int64
	rec  native.PolicyRecord
}

// SetPasswordMinLife sets the minimum password lifetime.
func (f *policyFields) SetPasswordMinLife(d time.Duration) {
	f.mask |= native.MaskPwMinLife
	f.rec.PwMinLife = durationToDelta(d)
}

// SetPasswordMaxLife sets the maximum password lifetime; zero means no
// limit.
func (f *policyFields) SetPasswordMaxLife(d time.Duration) {
	f.mask |= native.MaskPwMaxLife
	f.rec.PwMaxLife = durationToDelta(d)
}

// SetPasswordMinLength sets the minimum password length.
func (f *policyFields) SetPasswordMinLength(n int) {
	f.mask |= native.MaskPwMinLength
	f.rec.PwMinLength = int64(n)
}

// SetPasswordMinClasses sets the minimum number of character classes.
func (f *policyFields) SetPasswordMinClasses(n int) {
	f.mask |= native.MaskPwMinClasses
	f.rec.PwMinClasses = int64(n)
}

// SetPasswordHistoryNum sets how many old keys are kept.
func (f *policyFields) SetPasswordHistoryNum(n int) {
	f.mask |= native.MaskPwHistoryNum
	f.rec.PwHistoryNum = int64(n)
}

// SetMaxFailures sets the lockout threshold; zero disables lockout.
func (f *policyFields) SetMaxFailures(n uint32) {
	f.mask |= native.MaskPwMaxFailure
	f.rec.PwMaxFail = n
}

// SetFailureResetInterval sets the failure counter reset interval.
func (f *policyFields) SetFailureResetInterval(d time.Duration) {
	f.mask |= native.MaskPwFailureCountInt
	f.rec.PwFailCountInt = durationToDelta(d)
}

// SetLockoutDuration sets how long lockout lasts; zero means until an
// administrator unlocks.
func (f *policyFields) SetLockoutDuration(d time.Duration) {
	f.mask |= native.MaskPwLockoutDuration
	f.rec.PwLockoutDuration = durationToDelta(d)
}

// SetAttributes sets the policy-supplied KDC flag bits.
func (f *policyFields) SetAttributes(a int32) {
	f.mask |= native.MaskPolicyAttributes
	f.rec.Attributes = a
}

// SetMaxLife sets the policy-supplied maximum ticket life.
func (f *policyFields) SetMaxLife(d time.Duration) {
	f.mask |= native.MaskPolicyMaxLife
	f.rec.MaxLife = durationToDelta(d)
}

// SetMaxRenewableLife sets the policy-supplied maximum renewable life.
func (f *policyFields) SetMaxRenewableLife(d time.Duration) {
	f.mask |= native.MaskPolicyMaxRenewable
	f.rec.MaxRenewableLife = durationToDelta(d)
}

// SetAllowedKeysalts restricts the keysalts principals under this policy
// may have; nil lifts the restriction.
func (f *policyFields) SetAllowedKeysalts(l *KeySaltList) {
	f.mask |= native.MaskPolicyAllowedKeysalts
	if l == nil {
		f.rec.AllowedKeysalts = ""
		f.rec.HasAllowedKeysalts = false
		return
	}
	f.rec.AllowedKeysalts = l.String()
	f.rec.HasAllowedKeysalts = true
}

// SetTLData attaches tagged data entries.
func (f *policyFields) SetTLData(d TLData) {
	f.mask |= native.MaskPolicyTLData
	f.rec.TLData = d.toRecords()
}

func (f *policyFields) record(name string) (*native.PolicyRecord, int64) {
	rec := f.rec
	rec.Name = name
	return &rec, f.mask | native.MaskPolicy
}

// PolicyBuilder accumulates the fields for a new password policy.
type PolicyBuilder struct {
	policyFields
	name string
}

// NewPolicy starts a builder for the named policy.
func NewPolicy(name string) *PolicyBuilder {
	return &PolicyBuilder{name: name}
}

// Name returns the policy name the builder was created with.
func (b *PolicyBuilder) Name() string { return b.name }

// PolicyModifier accumulates partial updates for an existing policy. Only
// fields explicitly set are sent.
type PolicyModifier struct {
	policyFields
	name string
}

// ModifyPolicyEntry starts a modifier for the named policy.
func ModifyPolicyEntry(name string) *PolicyModifier {
	return &PolicyModifier{name: name}
}

// Modifier starts a modifier for this policy.
func (p *Policy) Modifier() *PolicyModifier {
	return ModifyPolicyEntry(p.name)
}

// Name returns the policy name the modifier targets.
func (m *PolicyModifier) Name() string { return m.name }
