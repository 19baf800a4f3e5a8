package kadm5

// Native kadm5 status codes (com_err table "ovk" from the MIT
// implementation). Code zero is success. The constants below follow the
// error table order, so each value is base + offset.
const kadm5ErrorBase int64 = 43787520

const (
	codeFailure int64 = kadm5ErrorBase + iota
	codeAuthGet
	codeAuthAdd
	codeAuthModify
	codeAuthDelete
	codeAuthInsufficient
	codeBadDB
	codeDup
	codeRPCError
	codeNoSrv
	codeBadHistKey
	codeNotInit
	codeUnkPrinc
	codeUnkPolicy
	codeBadMask
	codeBadClass
	codeBadLength
	codeBadPolicy
	codeBadPrincipal
	codeBadAuxAttr
	codeBadHistory
	codeBadMinPassLife
	codePassQTooShort
	codePassQClass
	codePassQDict
	codePassReuse
	codePassTooSoon
	codePolicyRef
	codeInit
	codeBadPassword
	codeProtectPrincipal
	codeBadServerHandle
	codeBadStructVersion
	codeOldStructVersion
	codeNewStructVersion
	codeBadAPIVersion
	codeOldLibAPIVersion
	codeOldServerAPIVersion
	codeNewLibAPIVersion
	codeNewServerAPIVersion
	codeSecurePrincMissing
	codeNoRenameSalt
	codeBadClientParams
	codeBadServerParams
	codeAuthList
	codeAuthChangepw
	codeGSSError
	codeBadTLType
	codeMissingConfParams
	codeBadServerName
	codeAuthSetkey
	codeSetkeyDupEnctypes
	codeSetv4keyInvalEnctype
	codeSetkey3EtypeMismatch
	codeMissingKrb5ConfParams
	codeXDRFailure
	codeCantResolve
	codePassQGeneric
)

// kadm5Messages carries the library's message text per code, verbatim.
// The MIT client library does not expose these strings through a lookup
// function, so they are mirrored here; codes outside this table fall back
// to the message fetched from the native error-string lookup.
var kadm5Messages = map[int64]string{
	codeFailure:               "Operation failed for unspecified reason",
	codeAuthGet:               "Operation requires ``get'' privilege",
	codeAuthAdd:               "Operation requires ``add'' privilege",
	codeAuthModify:            "Operation requires ``modify'' privilege",
	codeAuthDelete:            "Operation requires ``delete'' privilege",
	codeAuthInsufficient:      "Insufficient authorization for operation",
	codeBadDB:                 "Database inconsistency detected",
	codeDup:                   "Principal or policy already exists",
	codeRPCError:              "Communication failure with server",
	codeNoSrv:                 "No administration server found for realm",
	codeBadHistKey:            "Password history principal key version mismatch",
	codeNotInit:               "Connection to server not initialized",
	codeUnkPrinc:              "Principal does not exist",
	codeUnkPolicy:             "Policy does not exist",
	codeBadMask:               "Invalid field mask for operation",
	codeBadClass:              "Invalid number of character classes",
	codeBadLength:             "Invalid password length",
	codeBadPolicy:             "Illegal policy name",
	codeBadPrincipal:          "Illegal principal name",
	codeBadAuxAttr:            "Invalid auxillary attributes",
	codeBadHistory:            "Invalid password history count",
	codeBadMinPassLife:        "Password minimum life is greater then password maximum life",
	codePassQTooShort:         "Password is too short",
	codePassQClass:            "Password does not contain enough character classes",
	codePassQDict:             "Password is in the password dictionary",
	codePassReuse:             "Cannot reuse password",
	codePassTooSoon:           "Current password's minimum life has not expired",
	codePolicyRef:             "Policy is in use",
	codeInit:                  "Connection to server already initialized",
	codeBadPassword:           "Incorrect password",
	codeProtectPrincipal:      "Cannot change protected principal",
	codeBadServerHandle:       "Programmer error! Bad Admin server handle",
	codeBadStructVersion:      "Programmer error! Bad API structure version",
	codeOldStructVersion:      "API structure version specified by application is no longer supported (to fix, recompile application against current Admin API header files and libraries)",
	codeNewStructVersion:      "API structure version specified by application is unknown to libraries (to fix, obtain current Admin API header files and libraries and recompile application)",
	codeBadAPIVersion:         "Programmer error! Bad API version",
	codeOldLibAPIVersion:      "API version specified by application is no longer supported by libraries (to fix, update application to adhere to current API version and recompile)",
	codeOldServerAPIVersion:   "API version specified by application is no longer supported by server (to fix, update application to adhere to current API version and recompile)",
	codeNewLibAPIVersion:      "API version specified by application is unknown to libraries (to fix, obtain current Admin API header files and libraries and recompile application)",
	codeNewServerAPIVersion:   "API version specified by application is unknown to server (to fix, obtain and install newest Admin Server)",
	codeSecurePrincMissing:    "Database error! Required principal missing",
	codeNoRenameSalt:          "The salt type of the specified principal does not support renaming",
	codeBadClientParams:       "Illegal configuration parameter for remote KADM5 client",
	codeBadServerParams:       "Illegal configuration parameter for local KADM5 client.",
	codeAuthList:              "Operation requires ``list'' privilege",
	codeAuthChangepw:          "Operation requires ``change-password'' privilege",
	codeGSSError:              "GSS-API (or Kerberos) error",
	codeBadTLType:             "Programmer error! Illegal tagged data list element type",
	codeMissingConfParams:     "Required parameters in kdc.conf missing",
	codeBadServerName:         "Bad krb5 admin server hostname",
	codeAuthSetkey:            "Operation requires ``set-key'' privilege",
	codeSetkeyDupEnctypes:     "Multiple values for single or folded enctype",
	codeSetv4keyInvalEnctype:  "Invalid enctype for setv4key",
	codeSetkey3EtypeMismatch:  "Mismatched enctypes for setkey3",
	codeMissingKrb5ConfParams: "Missing parameters in krb5.conf required for kadmin client",
	codeXDRFailure:            "XDR encoding error",
	codePassQGeneric:          "Database synchronization failed",
}

// classification of native codes into the public taxonomy. Codes present
// in neither set nor the special cases in fromNativeCode fall through to
// CodeLibrary, so the mapping stays total.
var (
	invalidArgumentCodes = map[int64]bool{
		codeBadMask:        true,
		codeBadClass:       true,
		codeBadLength:      true,
		codeBadPolicy:      true,
		codeBadPrincipal:   true,
		codeBadAuxAttr:     true,
		codeBadHistory:     true,
		codeBadMinPassLife: true,
		codeBadTLType:      true,
	}

	connectionCodes = map[int64]bool{
		codeRPCError:              true,
		codeNoSrv:                 true,
		codeNotInit:               true,
		codeInit:                  true,
		codeBadPassword:           true,
		codeGSSError:              true,
		codeBadClientParams:       true,
		codeBadServerParams:       true,
		codeMissingConfParams:     true,
		codeMissingKrb5ConfParams: true,
		codeBadServerName:         true,
		codeCantResolve:           true,
	}
)
