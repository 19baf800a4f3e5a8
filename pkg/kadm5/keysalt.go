package kadm5

import (
	"strconv"
	"strings"

	"github.com/jcmturner/gokrb5/v8/iana/etypeID"
)

// EncryptionType is a Kerberos encryption type identifier.
type EncryptionType int32

// Encryption types understood by MIT KDCs. The values are the IANA
// registrations mirrored by gokrb5.
const (
	Des3CbcRaw          = EncryptionType(etypeID.DES3_CBC_RAW)
	Des3CbcSha1         = EncryptionType(etypeID.DES3_CBC_SHA1_KD)
	ArcfourHmac         = EncryptionType(etypeID.RC4_HMAC)
	ArcfourHmacExp      = EncryptionType(etypeID.RC4_HMAC_EXP)
	Aes128CtsHmacSha196 = EncryptionType(etypeID.AES128_CTS_HMAC_SHA1_96)
	Aes256CtsHmacSha196 = EncryptionType(etypeID.AES256_CTS_HMAC_SHA1_96)
	Aes128CtsHmacSha256 = EncryptionType(etypeID.AES128_CTS_HMAC_SHA256_128)
	Aes256CtsHmacSha384 = EncryptionType(etypeID.AES256_CTS_HMAC_SHA384_192)
	Camellia128CtsCmac  = EncryptionType(etypeID.CAMELLIA128_CTS_CMAC)
	Camellia256CtsCmac  = EncryptionType(etypeID.CAMELLIA256_CTS_CMAC)
)

// String returns the canonical name for known types and a numeric form
// otherwise.
func (e EncryptionType) String() string {
	switch e {
	case Des3CbcRaw:
		return "des3-cbc-raw"
	case Des3CbcSha1:
		return "des3-cbc-sha1-kd"
	case ArcfourHmac:
		return "arcfour-hmac"
	case ArcfourHmacExp:
		return "arcfour-hmac-exp"
	case Aes128CtsHmacSha196:
		return "aes128-cts-hmac-sha1-96"
	case Aes256CtsHmacSha196:
		return "aes256-cts-hmac-sha1-96"
	case Aes128CtsHmacSha256:
		return "aes128-cts-hmac-sha256-128"
	case Aes256CtsHmacSha384:
		return "aes256-cts-hmac-sha384-192"
	case Camellia128CtsCmac:
		return "camellia128-cts-cmac"
	case Camellia256CtsCmac:
		return "camellia256-cts-cmac"
	default:
		return "enctype(" + strconv.Itoa(int(e)) + ")"
	}
}

// ParseEncryptionType resolves an encryption type name, accepting the
// aliases the gokrb5 registry knows (for example "aes256-cts" and
// "rc4-hmac" alongside the canonical names).
func ParseEncryptionType(s string) (EncryptionType, error) {
	if id, ok := etypeID.ETypesByName[strings.ToLower(strings.TrimSpace(s))]; ok {
		return EncryptionType(id), nil
	}
	return 0, errInvalidArgument("unknown encryption type %q", s)
}

// SaltType is a Kerberos key salt type identifier.
type SaltType int32

// Salt types from the MIT KDB.
const (
	SaltNormal    SaltType = 0
	SaltV4        SaltType = 1
	SaltNoRealm   SaltType = 2
	SaltOnlyRealm SaltType = 3
	SaltSpecial   SaltType = 4
	SaltAfs3      SaltType = 5
)

func (s SaltType) String() string {
	switch s {
	case SaltNormal:
		return "normal"
	case SaltV4:
		return "v4"
	case SaltNoRealm:
		return "norealm"
	case SaltOnlyRealm:
		return "onlyrealm"
	case SaltSpecial:
		return "special"
	case SaltAfs3:
		return "afs3"
	default:
		return "salttype(" + strconv.Itoa(int(s)) + ")"
	}
}

// ParseSaltType resolves a salt type name. The empty string means the
// default salt.
func ParseSaltType(s string) (SaltType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "normal":
		return SaltNormal, nil
	case "v4":
		return SaltV4, nil
	case "norealm":
		return SaltNoRealm, nil
	case "onlyrealm":
		return SaltOnlyRealm, nil
	case "special":
		return SaltSpecial, nil
	case "afs3":
		return SaltAfs3, nil
	}
	return 0, errInvalidArgument("unknown salt type %q", s)
}

// KeySalt pairs an encryption type with a salt type.
type KeySalt struct {
	Enc  EncryptionType
	Salt SaltType
}

func (k KeySalt) String() string {
	return k.Enc.String() + ":" + k.Salt.String()
}

// KeySaltList is a set of keysalt pairs with stable insertion order.
// Adding a pair already present is a no-op.
type KeySaltList struct {
	keysalts []KeySalt
}

// NewKeySaltList builds a list from the given pairs, dropping duplicates.
func NewKeySaltList(keysalts ...KeySalt) *KeySaltList {
	l := &KeySaltList{}
	for _, ks := range keysalts {
		l.Add(ks)
	}
	return l
}

// ParseKeySaltList parses the kadmin keysalt list syntax: pairs of
// "enctype:salttype" separated by comma, space, or tab. A bare enctype
// gets the normal salt.
func ParseKeySaltList(s string) (*KeySaltList, error) {
	l := &KeySaltList{}
	for _, field := range strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	}) {
		encName, saltName, _ := strings.Cut(field, ":")
		enc, err := ParseEncryptionType(encName)
		if err != nil {
			return nil, err
		}
		salt, err := ParseSaltType(saltName)
		if err != nil {
			return nil, err
		}
		l.Add(KeySalt{Enc: enc, Salt: salt})
	}
	return l, nil
}

// Add inserts a pair unless it is already present.
func (l *KeySaltList) Add(ks KeySalt) {
	if !l.Contains(ks) {
		l.keysalts = append(l.keysalts, ks)
	}
}

// Contains reports whether the pair is in the list.
func (l *KeySaltList) Contains(ks KeySalt) bool {
	for _, have := range l.keysalts {
		if have == ks {
			return true
		}
	}
	return false
}

// Len returns the number of distinct pairs.
func (l *KeySaltList) Len() int { return len(l.keysalts) }

// Slice returns the pairs in insertion order.
func (l *KeySaltList) Slice() []KeySalt {
	out := make([]KeySalt, len(l.keysalts))
	copy(out, l.keysalts)
	return out
}

// String renders the list in kadmin syntax, comma separated.
func (l *KeySaltList) String() string {
	parts := make([]string, 0, len(l.keysalts))
	for _, ks := range l.keysalts {
		parts = append(parts, ks.String())
	}
	return strings.Join(parts, ",")
}
