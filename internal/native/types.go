// Package native is the cgo boundary to the MIT Kerberos administration
// library (libkadm5clnt). It owns every native allocation: all C structures
// are deep-copied into the plain Go record types below before the native
// memory is released, and no raw pointer escapes this package.
//
// A Conn is not safe for concurrent use. Callers must serialize all calls
// against one Conn; the kadm5 library forbids concurrent use of a handle.
package native

import "fmt"

// Field mask bits for principal records, mirroring KADM5_* from
// <kadm5/admin.h>. The mask tells the server which fields of an update
// record are populated; a clear bit means "leave the field alone".
const (
	MaskPrincipal        int64 = 0x000001
	MaskPrincExpireTime  int64 = 0x000002
	MaskPwExpiration     int64 = 0x000004
	MaskLastPwdChange    int64 = 0x000008
	MaskAttributes       int64 = 0x000010
	MaskMaxLife          int64 = 0x000020
	MaskModTime          int64 = 0x000040
	MaskModName          int64 = 0x000080
	MaskKvno             int64 = 0x000100
	MaskMkvno            int64 = 0x000200
	MaskAuxAttributes    int64 = 0x000400
	MaskPolicy           int64 = 0x000800
	MaskPolicyClear      int64 = 0x001000
	MaskMaxRenewableLife int64 = 0x002000
	MaskLastSuccess      int64 = 0x004000
	MaskLastFailed       int64 = 0x008000
	MaskFailAuthCount    int64 = 0x010000
	MaskKeyData          int64 = 0x020000
	MaskTLData           int64 = 0x040000
)

// Field mask bits for policy records.
const (
	MaskPwMaxLife             int64 = 0x004000
	MaskPwMinLife             int64 = 0x002000
	MaskPwMinLength           int64 = 0x008000
	MaskPwMinClasses          int64 = 0x010000
	MaskPwHistoryNum          int64 = 0x020000
	MaskPwMaxFailure          int64 = 0x080000
	MaskPwFailureCountInt     int64 = 0x100000
	MaskPwLockoutDuration     int64 = 0x200000
	MaskPolicyAttributes      int64 = 0x400000
	MaskPolicyMaxLife         int64 = 0x800000
	MaskPolicyMaxRenewable    int64 = 0x1000000
	MaskPolicyAllowedKeysalts int64 = 0x2000000
	MaskPolicyTLData          int64 = 0x4000000
)

// TLRecord is one tagged data block, copied out of a krb5_tl_data node.
type TLRecord struct {
	Type     int16
	Contents []byte
}

// PrincipalRecord mirrors kadm5_principal_ent_rec with owned Go values.
// Timestamps and durations are raw seconds counts exactly as the native
// layer reports them; zero keeps the native "unset" convention.
type PrincipalRecord struct {
	Name             string
	PrincExpireTime  int64
	LastPwdChange    int64
	PwExpiration     int64
	MaxLife          int64
	ModName          string
	ModDate          int64
	Attributes       int32
	Kvno             uint32
	Mkvno            uint32
	Policy           string // valid only when HasPolicy
	HasPolicy        bool
	AuxAttributes    int64
	MaxRenewableLife int64
	LastSuccess      int64
	LastFailed       int64
	FailAuthCount    uint32
	TLData           []TLRecord
}

// PolicyRecord mirrors kadm5_policy_ent_rec with owned Go values.
type PolicyRecord struct {
	Name               string
	PwMinLife          int64
	PwMaxLife          int64
	PwMinLength        int64
	PwMinClasses       int64
	PwHistoryNum       int64
	RefCount           int64
	PwMaxFail          uint32
	PwFailCountInt     int64
	PwLockoutDuration  int64
	Attributes         int32
	MaxLife            int64
	MaxRenewableLife   int64
	AllowedKeysalts    string // kadmin "enc:salt,enc:salt" syntax, empty means unrestricted
	HasAllowedKeysalts bool
	TLData             []TLRecord
}

// Config carries connection parameters for kadm5_init_with_*. Zero values
// mean "use the library default"; set fields are copied into a
// kadm5_config_params structure with the matching KADM5_CONFIG_* mask bit.
type Config struct {
	Realm       string
	AdminServer string
	KadminPort  int
	KpasswdPort int
	DBName      string
	ACLFile     string
	DictFile    string
	StashFile   string

	// DBArgs are formatted "name=value" (or bare "name") strings passed
	// through to the database backend.
	DBArgs []string
}

// DecodeError reports a native string field that could not be decoded as
// valid UTF-8 (or was unexpectedly NULL). The whole conversion it occurred
// in is aborted and every native allocation already made is released.
type DecodeError struct {
	Field string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid native string in field %q", e.Field)
}

// CallError is a raw failure from a native call: the library status code
// plus the message fetched from the library's error-string lookup. The
// public error taxonomy is layered on top by pkg/kadm5.
type CallError struct {
	Code    int64
	Message string
}

func (e *CallError) Error() string {
	return fmt.Sprintf("kadm5 call failed: %s (code %d)", e.Message, e.Code)
}
