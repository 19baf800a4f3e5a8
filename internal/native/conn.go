package native

/*
#cgo LDFLAGS: -lkadm5clnt -lkrb5 -lk5crypto -lcom_err
#include <stdlib.h>
#include <string.h>
#include <krb5.h>
#include <kadm5/admin.h>
*/
import "C"

import (
	"sync"
	"unicode/utf8"
	"unsafe"
)

// adminService is the well-known service principal the kadm5 client
// authenticates to (KADM5_ADMIN_SERVICE in the native headers).
const adminService = "kadmin/admin"

// initLock serializes kadm5 handle initialization and teardown. The
// library mutates process-global state (GSSAPI, profile) during init and
// destroy, so those transitions must not overlap even across handles.
var initLock sync.Mutex

// Conn exclusively owns one krb5 context and one kadm5 server handle.
// Not safe for concurrent use; see the package comment.
type Conn struct {
	ctx    C.krb5_context
	handle unsafe.Pointer
	closed bool
}

// cString allocates a C copy of s and registers its release.
func cString(rel *releaser, s string) *C.char {
	p := C.CString(s)
	rel.add(func() { C.free(unsafe.Pointer(p)) })
	return p
}

// decodeCString deep-copies a native string, validating the encoding.
func decodeCString(field string, p *C.char) (string, error) {
	if p == nil {
		return "", &DecodeError{Field: field}
	}
	s := C.GoString(p)
	if !utf8.ValidString(s) {
		return "", &DecodeError{Field: field}
	}
	return s, nil
}

// errorMessage fetches the library's human-readable text for a status
// code. The returned message is copied before the native buffer is freed.
func (c *Conn) errorMessage(code C.krb5_error_code) string {
	msg := C.krb5_get_error_message(c.ctx, code)
	if msg == nil {
		return "unknown error"
	}
	defer C.krb5_free_error_message(c.ctx, msg)
	return C.GoString(msg)
}

// callError turns a native status code into a *CallError, or nil for
// success. Mapping to the public taxonomy happens in pkg/kadm5.
func (c *Conn) callError(code C.kadm5_ret_t) error {
	if code == 0 {
		return nil
	}
	return &CallError{
		Code:    int64(code),
		Message: c.errorMessage(C.krb5_error_code(code)),
	}
}

// parseName parses a principal name into a krb5_principal and registers
// its release.
func (c *Conn) parseName(rel *releaser, name string) (C.krb5_principal, error) {
	cname := cString(rel, name)
	var princ C.krb5_principal
	if code := C.krb5_parse_name(c.ctx, cname, &princ); code != 0 {
		return nil, c.callError(C.kadm5_ret_t(code))
	}
	rel.add(func() { C.krb5_free_principal(c.ctx, princ) })
	return princ, nil
}

// unparseName renders a krb5_principal back to text, deep-copying the
// result before freeing the native buffer.
func (c *Conn) unparseName(field string, princ C.krb5_principal) (string, error) {
	if princ == nil {
		return "", nil
	}
	var raw *C.char
	if code := C.krb5_unparse_name(c.ctx, princ, &raw); code != 0 {
		return "", c.callError(C.kadm5_ret_t(code))
	}
	defer C.krb5_free_unparsed_name(c.ctx, raw)
	return decodeCString(field, raw)
}

// buildParams copies a Config into a kadm5_config_params, setting the
// KADM5_CONFIG_* mask bit for each field the caller provided. String
// fields are C allocations owned by rel; the params struct itself lives
// on the caller's stack for the duration of the init call only.
func buildParams(rel *releaser, cfg *Config, params *C.kadm5_config_params) {
	if cfg.Realm != "" {
		params.realm = cString(rel, cfg.Realm)
		params.mask |= C.KADM5_CONFIG_REALM
	}
	if cfg.AdminServer != "" {
		params.admin_server = cString(rel, cfg.AdminServer)
		params.mask |= C.KADM5_CONFIG_ADMIN_SERVER
	}
	if cfg.KadminPort != 0 {
		params.kadmind_port = C.int(cfg.KadminPort)
		params.mask |= C.KADM5_CONFIG_KADMIND_PORT
	}
	if cfg.KpasswdPort != 0 {
		params.kpasswd_port = C.int(cfg.KpasswdPort)
		params.mask |= C.KADM5_CONFIG_KPASSWD_PORT
	}
	if cfg.DBName != "" {
		params.dbname = cString(rel, cfg.DBName)
		params.mask |= C.KADM5_CONFIG_DBNAME
	}
	if cfg.ACLFile != "" {
		params.acl_file = cString(rel, cfg.ACLFile)
		params.mask |= C.KADM5_CONFIG_ACL_FILE
	}
	if cfg.DictFile != "" {
		params.dict_file = cString(rel, cfg.DictFile)
		params.mask |= C.KADM5_CONFIG_DICT_FILE
	}
	if cfg.StashFile != "" {
		params.stash_file = cString(rel, cfg.StashFile)
		params.mask |= C.KADM5_CONFIG_STASH_FILE
	}
}

// buildDBArgs builds the NULL-terminated char** the init calls expect,
// or nil when no arguments were given.
func buildDBArgs(rel *releaser, args []string) **C.char {
	if len(args) == 0 {
		return nil
	}
	ptrSize := unsafe.Sizeof((*C.char)(nil))
	arr := (**C.char)(C.calloc(C.size_t(len(args)+1), C.size_t(ptrSize)))
	rel.add(func() { C.free(unsafe.Pointer(arr)) })
	slice := unsafe.Slice(arr, len(args)+1)
	for i, a := range args {
		slice[i] = cString(rel, a)
	}
	return arr
}

// newContext initializes a krb5 context. The caller owns the returned
// context and must free it with krb5_free_context exactly once.
func newContext() (C.krb5_context, error) {
	var ctx C.krb5_context
	if code := C.krb5_init_context(&ctx); code != 0 {
		// No context to fetch a message from.
		return nil, &CallError{Code: int64(code), Message: "failed to initialize krb5 context"}
	}
	return ctx, nil
}

// initFn issues one of the kadm5_init_with_* calls, writing the server
// handle out-param on success.
type initFn func(c *Conn, rel *releaser, params *C.kadm5_config_params, dbArgs **C.char) C.kadm5_ret_t

// connect runs the shared connect path: build the context and native
// parameter structures, issue the init call under the process-wide init
// lock, and release every partially built structure on failure so no
// native state survives an unsuccessful connect.
func connect(cfg *Config, init initFn) (*Conn, error) {
	if cfg == nil {
		cfg = &Config{}
	}

	ctx, err := newContext()
	if err != nil {
		return nil, err
	}
	c := &Conn{ctx: ctx}

	rel := &releaser{}
	defer rel.run()

	var params C.kadm5_config_params
	buildParams(rel, cfg, &params)
	dbArgs := buildDBArgs(rel, cfg.DBArgs)

	initLock.Lock()
	code := init(c, rel, &params, dbArgs)
	initLock.Unlock()

	if err := c.callError(code); err != nil {
		// Transient structures must be released while the context is
		// still alive; only then can the context itself go.
		rel.run()
		C.krb5_free_context(ctx)
		c.ctx = nil
		return nil, err
	}
	return c, nil
}

// ConnectPassword authenticates with a client principal name and password.
func ConnectPassword(clientName, password string, cfg *Config) (*Conn, error) {
	return connect(cfg, func(c *Conn, rel *releaser, params *C.kadm5_config_params, dbArgs **C.char) C.kadm5_ret_t {
		return C.kadm5_init_with_password(
			c.ctx,
			cString(rel, clientName),
			cString(rel, password),
			cString(rel, adminService),
			params,
			C.KADM5_STRUCT_VERSION,
			C.KADM5_API_VERSION_2,
			dbArgs,
			&c.handle,
		)
	})
}

// ConnectKeytab authenticates with a key from a keytab file. Both
// arguments must be resolved by the caller (pkg/kadm5 fills the defaults).
func ConnectKeytab(clientName, keytabPath string, cfg *Config) (*Conn, error) {
	return connect(cfg, func(c *Conn, rel *releaser, params *C.kadm5_config_params, dbArgs **C.char) C.kadm5_ret_t {
		return C.kadm5_init_with_skey(
			c.ctx,
			cString(rel, clientName),
			cString(rel, keytabPath),
			cString(rel, adminService),
			params,
			C.KADM5_STRUCT_VERSION,
			C.KADM5_API_VERSION_2,
			dbArgs,
			&c.handle,
		)
	})
}

// ConnectCCache authenticates with existing credentials from a credential
// cache. Empty ccacheName selects the library default cache; empty
// clientName resolves to the cache's default principal.
func ConnectCCache(clientName, ccacheName string, cfg *Config) (*Conn, error) {
	return connect(cfg, func(c *Conn, rel *releaser, params *C.kadm5_config_params, dbArgs **C.char) C.kadm5_ret_t {
		var cc C.krb5_ccache
		var code C.krb5_error_code
		if ccacheName != "" {
			code = C.krb5_cc_resolve(c.ctx, cString(rel, ccacheName), &cc)
		} else {
			code = C.krb5_cc_default(c.ctx, &cc)
		}
		if code != 0 {
			return C.kadm5_ret_t(code)
		}
		rel.add(func() { C.krb5_cc_close(c.ctx, cc) })

		cname := clientName
		if cname == "" {
			var princ C.krb5_principal
			if code := C.krb5_cc_get_principal(c.ctx, cc, &princ); code != 0 {
				return C.kadm5_ret_t(code)
			}
			rel.add(func() { C.krb5_free_principal(c.ctx, princ) })
			name, err := c.unparseName("client principal", princ)
			if err != nil {
				return C.kadm5_ret_t(C.KADM5_BAD_PRINCIPAL)
			}
			cname = name
		}

		return C.kadm5_init_with_creds(
			c.ctx,
			cString(rel, cname),
			cc,
			cString(rel, adminService),
			params,
			C.KADM5_STRUCT_VERSION,
			C.KADM5_API_VERSION_2,
			dbArgs,
			&c.handle,
		)
	})
}

// Close destroys the server handle and frees the krb5 context. Exactly
// one destroy is issued per successfully initialized handle; calling
// Close again is a no-op.
func (c *Conn) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true

	initLock.Lock()
	defer initLock.Unlock()
	var err error
	if c.handle != nil {
		err = c.callError(C.kadm5_destroy(c.handle))
		c.handle = nil
	}
	C.krb5_free_context(c.ctx)
	c.ctx = nil
	return err
}
