package kadm5

import (
	"strings"
	"time"

	"github.com/krb5go/kadm5/internal/native"
)

// PrincipalAttributes are the KDC flag bits on a principal entry.
type PrincipalAttributes int32

const (
	DisallowPostdated   PrincipalAttributes = 0x00000001
	DisallowForwardable PrincipalAttributes = 0x00000002
	DisallowTGTBased    PrincipalAttributes = 0x00000004
	DisallowRenewable   PrincipalAttributes = 0x00000008
	DisallowProxiable   PrincipalAttributes = 0x00000010
	DisallowDupSkey     PrincipalAttributes = 0x00000020
	DisallowAllTix      PrincipalAttributes = 0x00000040
	RequiresPreAuth     PrincipalAttributes = 0x00000080
	RequiresHwAuth      PrincipalAttributes = 0x00000100
	RequiresPwChange    PrincipalAttributes = 0x00000200
	DisallowSvr         PrincipalAttributes = 0x00001000
	PwChangeService     PrincipalAttributes = 0x00002000
	SupportDesMD5       PrincipalAttributes = 0x00004000
	NewPrinc            PrincipalAttributes = 0x00008000
	OkAsDelegate        PrincipalAttributes = 0x00100000
	OkToAuthAsDelegate  PrincipalAttributes = 0x00200000
	NoAuthDataRequired  PrincipalAttributes = 0x00400000
	LockdownKeys        PrincipalAttributes = 0x00800000
)

// Has reports whether all bits in flag are set.
func (a PrincipalAttributes) Has(flag PrincipalAttributes) bool {
	return a&flag == flag
}

func (a PrincipalAttributes) String() string {
	names := []struct {
		bit  PrincipalAttributes
		name string
	}{
		{DisallowPostdated, "DISALLOW_POSTDATED"},
		{DisallowForwardable, "DISALLOW_FORWARDABLE"},
		{DisallowTGTBased, "DISALLOW_TGT_BASED"},
		{DisallowRenewable, "DISALLOW_RENEWABLE"},
		{DisallowProxiable, "DISALLOW_PROXIABLE"},
		{DisallowDupSkey, "DISALLOW_DUP_SKEY"},
		{DisallowAllTix, "DISALLOW_ALL_TIX"},
		{RequiresPreAuth, "REQUIRES_PRE_AUTH"},
		{RequiresHwAuth, "REQUIRES_HW_AUTH"},
		{RequiresPwChange, "REQUIRES_PWCHANGE"},
		{DisallowSvr, "DISALLOW_SVR"},
		{PwChangeService, "PWCHANGE_SERVICE"},
		{SupportDesMD5, "SUPPORT_DESMD5"},
		{NewPrinc, "NEW_PRINC"},
		{OkAsDelegate, "OK_AS_DELEGATE"},
		{OkToAuthAsDelegate, "OK_TO_AUTH_AS_DELEGATE"},
		{NoAuthDataRequired, "NO_AUTH_DATA_REQUIRED"},
		{LockdownKeys, "LOCKDOWN_KEYS"},
	}
	var set []string
	for _, n := range names {
		if a.Has(n.bit) {
			set = append(set, n.name)
		}
	}
	if len(set) == 0 {
		return "NONE"
	}
	return strings.Join(set, "|")
}

// Principal is an immutable snapshot of a principal entry as read from the
// server. Zero time.Time values mean the field is unset; zero durations
// mean no limit.
type Principal struct {
	name               string
	expireTime         time.Time
	lastPasswordChange time.Time
	passwordExpiration time.Time
	maxLife            time.Duration
	modifiedBy         string
	modifiedAt         time.Time
	attributes         PrincipalAttributes
	kvno               uint32
	mkvno              uint32
	policy             string
	hasPolicy          bool
	auxAttributes      int64
	maxRenewableLife   time.Duration
	lastSuccess        time.Time
	lastFailed         time.Time
	failAuthCount      uint32
	tlData             TLData
}

func principalFromRecord(rec *native.PrincipalRecord) *Principal {
	return &Principal{
		name:               rec.Name,
		expireTime:         tsToTime(rec.PrincExpireTime),
		lastPasswordChange: tsToTime(rec.LastPwdChange),
		passwordExpiration: tsToTime(rec.PwExpiration),
		maxLife:            deltaToDuration(rec.MaxLife),
		modifiedBy:         rec.ModName,
		modifiedAt:         tsToTime(rec.ModDate),
		attributes:         PrincipalAttributes(rec.Attributes),
		kvno:               rec.Kvno,
		mkvno:              rec.Mkvno,
		policy:             rec.Policy,
		hasPolicy:          rec.HasPolicy,
		auxAttributes:      rec.AuxAttributes,
		maxRenewableLife:   deltaToDuration(rec.MaxRenewableLife),
		lastSuccess:        tsToTime(rec.LastSuccess),
		lastFailed:         tsToTime(rec.LastFailed),
		failAuthCount:      rec.FailAuthCount,
		tlData:             tlDataFromRecords(rec.TLData),
	}
}

// Name returns the canonical principal name, including the realm.
func (p *Principal) Name() string { return p.name }

// ExpireTime returns when the principal expires, or the zero time if never.
func (p *Principal) ExpireTime() time.Time { return p.expireTime }

// LastPasswordChange returns when the password last changed.
func (p *Principal) LastPasswordChange() time.Time { return p.lastPasswordChange }

// PasswordExpiration returns when the password expires, or the zero time if
// never.
func (p *Principal) PasswordExpiration() time.Time { return p.passwordExpiration }

// MaxLife returns the maximum ticket life, zero meaning no limit.
func (p *Principal) MaxLife() time.Duration { return p.maxLife }

// ModifiedBy returns the principal that last modified this entry.
func (p *Principal) ModifiedBy() string { return p.modifiedBy }

// ModifiedAt returns when this entry was last modified.
func (p *Principal) ModifiedAt() time.Time { return p.modifiedAt }

// Attributes returns the KDC flag bits.
func (p *Principal) Attributes() PrincipalAttributes { return p.attributes }

// Kvno returns the current key version number.
func (p *Principal) Kvno() uint32 { return p.kvno }

// Mkvno returns the master key version number used for the keys.
func (p *Principal) Mkvno() uint32 { return p.mkvno }

// Policy returns the password policy name and whether one is assigned.
func (p *Principal) Policy() (string, bool) { return p.policy, p.hasPolicy }

// AuxAttributes returns the auxiliary attribute bits.
func (p *Principal) AuxAttributes() int64 { return p.auxAttributes }

// MaxRenewableLife returns the maximum renewable ticket life, zero meaning
// no limit.
func (p *Principal) MaxRenewableLife() time.Duration { return p.maxRenewableLife }

// LastSuccess returns the time of the last successful authentication.
func (p *Principal) LastSuccess() time.Time { return p.lastSuccess }

// LastFailed returns the time of the last failed authentication.
func (p *Principal) LastFailed() time.Time { return p.lastFailed }

// FailAuthCount returns the failed preauthentication counter.
func (p *Principal) FailAuthCount() uint32 { return p.failAuthCount }

// TLData returns the tagged data attached to the entry.
func (p *Principal) TLData() TLData { return p.tlData }

// principalFields tracks the writable principal fields together with the
// mask of which ones were explicitly set. A field the caller never touches
// is left out of the mask and keeps its server-side value; setting a field
// to its zero value clears it.
type principalFields struct {
	mask int64
	rec  native.PrincipalRecord
}

// SetExpireTime sets the principal expiration; the zero time clears it.
func (f *principalFields) SetExpireTime(t time.Time) {
	f.mask |= native.MaskPrincExpireTime
	f.rec.PrincExpireTime = timeToTS(t)
}

// SetPasswordExpiration sets the password expiration; the zero time clears
// it.
func (f *principalFields) SetPasswordExpiration(t time.Time) {
	f.mask |= native.MaskPwExpiration
	f.rec.PwExpiration = timeToTS(t)
}

// SetMaxLife sets the maximum ticket life; zero means no limit.
func (f *principalFields) SetMaxLife(d time.Duration) {
	f.mask |= native.MaskMaxLife
	f.rec.MaxLife = durationToDelta(d)
}

// SetMaxRenewableLife sets the maximum renewable life; zero means no limit.
func (f *principalFields) SetMaxRenewableLife(d time.Duration) {
	f.mask |= native.MaskMaxRenewableLife
	f.rec.MaxRenewableLife = durationToDelta(d)
}

// SetAttributes replaces the KDC flag bits.
func (f *principalFields) SetAttributes(a PrincipalAttributes) {
	f.mask |= native.MaskAttributes
	f.rec.Attributes = int32(a)
}

// SetPolicy assigns a password policy.
func (f *principalFields) SetPolicy(name string) {
	f.mask |= native.MaskPolicy
	f.mask &^= native.MaskPolicyClear
	f.rec.Policy = name
	f.rec.HasPolicy = true
}

// ClearPolicy removes the password policy assignment.
func (f *principalFields) ClearPolicy() {
	f.mask |= native.MaskPolicyClear
	f.mask &^= native.MaskPolicy
	f.rec.Policy = ""
	f.rec.HasPolicy = false
}

// SetKvno sets the key version number.
func (f *principalFields) SetKvno(kvno uint32) {
	f.mask |= native.MaskKvno
	f.rec.Kvno = kvno
}

// SetTLData attaches tagged data entries.
func (f *principalFields) SetTLData(d TLData) {
	f.mask |= native.MaskTLData
	f.rec.TLData = d.toRecords()
}

func (f *principalFields) record(name string) (*native.PrincipalRecord, int64) {
	rec := f.rec
	rec.Name = name
	return &rec, f.mask | native.MaskPrincipal
}

// principalKeyChoice selects how a new principal gets its initial keys.
type principalKeyChoice int

const (
	// keyRandom generates random keys server-side.
	keyRandom principalKeyChoice = iota
	// keyPassword derives keys from a caller-supplied password.
	keyPassword
	// keyNone creates the principal without keys.
	keyNone
)

// PrincipalBuilder accumulates the fields for a new principal. The zero
// builder is not usable; start with NewPrincipal. Unless a key choice is
// made the principal is created with random keys.
type PrincipalBuilder struct {
	principalFields
	name     string
	key      principalKeyChoice
	password string
}

// NewPrincipal starts a builder for the named principal.
func NewPrincipal(name string) *PrincipalBuilder {
	return &PrincipalBuilder{name: name}
}

// Name returns the principal name the builder was created with.
func (b *PrincipalBuilder) Name() string { return b.name }

// Password derives the initial keys from the given password.
func (b *PrincipalBuilder) Password(password string) {
	b.key = keyPassword
	b.password = password
}

// RandKey creates the principal with random keys. This is the default.
func (b *PrincipalBuilder) RandKey() {
	b.key = keyRandom
	b.password = ""
}

// NoKey creates the principal without any keys.
func (b *PrincipalBuilder) NoKey() {
	b.key = keyNone
	b.password = ""
}

// PrincipalModifier accumulates partial updates for an existing principal.
// Only fields explicitly set are sent; the rest keep their current values.
type PrincipalModifier struct {
	principalFields
	name string
}

// ModifyPrincipalEntry starts a modifier for the named principal.
func ModifyPrincipalEntry(name string) *PrincipalModifier {
	return &PrincipalModifier{name: name}
}

// Modifier starts a modifier for this principal.
func (p *Principal) Modifier() *PrincipalModifier {
	return ModifyPrincipalEntry(p.name)
}

// Name returns the principal name the modifier targets.
func (m *PrincipalModifier) Name() string { return m.name }
