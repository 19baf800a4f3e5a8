package kadm5

import (
	"crypto/rand"
	"encoding/base64"
	"os"
	"strings"

	krb5config "github.com/jcmturner/gokrb5/v8/config"
	"github.com/jcmturner/gokrb5/v8/credentials"
	"github.com/jcmturner/gokrb5/v8/keytab"

	"github.com/krb5go/kadm5/internal/logger"
	"github.com/krb5go/kadm5/internal/native"
)

const (
	defaultKeytabPath = "/etc/krb5.keytab"
	defaultKrb5Conf   = "/etc/krb5.conf"

	// anonymousName is the well-known anonymous principal (RFC 8062).
	anonymousName = "WELLKNOWN/ANONYMOUS"
)

// backend is the surface the client needs from a native connection. It
// exists so the conversion and lifecycle logic above the cgo boundary can
// be exercised without a KDC.
type backend interface {
	GetPrincipal(name string) (*native.PrincipalRecord, error)
	CreatePrincipal(rec *native.PrincipalRecord, mask int64, password string) error
	ModifyPrincipal(rec *native.PrincipalRecord, mask int64) error
	RenamePrincipal(oldName, newName string) error
	DeletePrincipal(name string) error
	ChangePassword(name, password string) error
	RandKeyPrincipal(name string) error
	ListPrincipals(glob string) ([]string, error)
	GetPolicy(name string) (*native.PolicyRecord, error)
	CreatePolicy(rec *native.PolicyRecord, mask int64) error
	ModifyPolicy(rec *native.PolicyRecord, mask int64) error
	DeletePolicy(name string) error
	ListPolicies(glob string) ([]string, error)
	Close() error
}

var _ backend = (*native.Conn)(nil)

// Client is a kadm5 administration connection. A Client is not safe for
// concurrent use; wrap it in a SharedClient to share it across goroutines.
type Client struct {
	be     backend
	closed bool
}

type connectOptions struct {
	params ConnParams
	dbArgs DBArgs
}

// Option adjusts connection setup.
type Option func(*connectOptions)

// WithParams overrides profile-derived connection parameters.
func WithParams(p ConnParams) Option {
	return func(o *connectOptions) { o.params = p }
}

// WithDBArgs passes database-specific arguments to the server.
func WithDBArgs(d DBArgs) Option {
	return func(o *connectOptions) { o.dbArgs = d }
}

func buildOptions(opts []Option) *connectOptions {
	o := &connectOptions{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// ConnectWithPassword authenticates to kadmind as clientName with a
// password.
func ConnectWithPassword(clientName, password string, opts ...Option) (*Client, error) {
	if err := validName("client", clientName); err != nil {
		return nil, err
	}
	if password == "" {
		return nil, errInvalidArgument("password must not be empty")
	}
	o := buildOptions(opts)
	conn, err := native.ConnectPassword(clientName, password, o.params.toNative(o.dbArgs))
	if err != nil {
		return nil, wrapConnect(err)
	}
	logger.Debug("kadm5 connection established", "auth", "password", "client", clientName)
	return &Client{be: conn}, nil
}

// ConnectWithKeytab authenticates to kadmind with a keytab. An empty
// keytabPath uses the system default keytab; an empty clientName uses the
// first principal found in the keytab, falling back to host/<hostname>.
func ConnectWithKeytab(clientName, keytabPath string, opts ...Option) (*Client, error) {
	if keytabPath == "" {
		keytabPath = defaultKeytabPath
	}
	if clientName == "" {
		clientName = clientNameFromKeytab(keytabPath)
	}
	if err := validName("client", clientName); err != nil {
		return nil, err
	}
	o := buildOptions(opts)
	conn, err := native.ConnectKeytab(clientName, keytabPath, o.params.toNative(o.dbArgs))
	if err != nil {
		return nil, wrapConnect(err)
	}
	logger.Debug("kadm5 connection established",
		"auth", "keytab", "client", clientName, "keytab", keytabPath)
	return &Client{be: conn}, nil
}

// ConnectWithCCache authenticates to kadmind with credentials already held
// in a credential cache. An empty ccacheName uses the default cache; an
// empty clientName uses the cache's default client principal.
func ConnectWithCCache(clientName, ccacheName string, opts ...Option) (*Client, error) {
	if clientName == "" {
		if name, ok := clientNameFromCCache(ccacheName); ok {
			clientName = name
		}
	}
	o := buildOptions(opts)
	conn, err := native.ConnectCCache(clientName, ccacheName, o.params.toNative(o.dbArgs))
	if err != nil {
		return nil, wrapConnect(err)
	}
	logger.Debug("kadm5 connection established",
		"auth", "ccache", "client", clientName, "ccache", ccacheName)
	return &Client{be: conn}, nil
}

// ConnectWithAnonymous authenticates with anonymous PKINIT credentials
// previously obtained into the default credential cache. An empty
// clientName uses the well-known anonymous principal in the default realm;
// a name without a realm is qualified with the default realm.
func ConnectWithAnonymous(clientName string, opts ...Option) (*Client, error) {
	if clientName == "" {
		clientName = anonymousName
	}
	if !strings.Contains(clientName, "@") {
		if realm := defaultRealm(); realm != "" {
			clientName = clientName + "@" + realm
		}
	}
	o := buildOptions(opts)
	conn, err := native.ConnectCCache(clientName, "", o.params.toNative(o.dbArgs))
	if err != nil {
		return nil, wrapConnect(err)
	}
	logger.Debug("kadm5 connection established", "auth", "anonymous", "client", clientName)
	return &Client{be: conn}, nil
}

// clientNameFromKeytab picks the first principal in the keytab, matching
// the convention kadmin -k uses. Falls back to host/<hostname>.
func clientNameFromKeytab(path string) string {
	kt, err := keytab.Load(path)
	if err == nil {
		for _, entry := range kt.Entries {
			if len(entry.Principal.Components) == 0 {
				continue
			}
			name := strings.Join(entry.Principal.Components, "/")
			if entry.Principal.Realm != "" {
				name += "@" + entry.Principal.Realm
			}
			return name
		}
	}
	host, herr := os.Hostname()
	if herr != nil {
		return ""
	}
	return "host/" + host
}

// clientNameFromCCache reads the default client principal out of a
// file-based credential cache. Non-file cache types are resolved by the
// native library instead.
func clientNameFromCCache(name string) (string, bool) {
	path := strings.TrimPrefix(name, "FILE:")
	if path == "" {
		path = strings.TrimPrefix(os.Getenv("KRB5CCNAME"), "FILE:")
	}
	if path == "" || strings.Contains(path, ":") {
		return "", false
	}
	cc, err := credentials.LoadCCache(path)
	if err != nil {
		return "", false
	}
	principal := cc.GetClientPrincipalName().PrincipalNameString()
	if principal == "" {
		return "", false
	}
	if realm := cc.GetClientRealm(); realm != "" {
		principal += "@" + realm
	}
	return principal, true
}

// defaultRealm reads the default realm from krb5.conf.
func defaultRealm() string {
	path := os.Getenv("KRB5_CONFIG")
	if path == "" {
		path = defaultKrb5Conf
	}
	cfg, err := krb5config.Load(path)
	if err != nil {
		return ""
	}
	return cfg.LibDefaults.DefaultRealm
}

func (c *Client) guard() error {
	if c.closed {
		return errConnection("client is closed")
	}
	return nil
}

// GetPrincipal fetches a principal entry. A missing principal is not an
// error: it returns (nil, nil).
func (c *Client) GetPrincipal(name string) (*Principal, error) {
	if err := c.guard(); err != nil {
		return nil, err
	}
	if err := validName("principal", name); err != nil {
		return nil, err
	}
	rec, err := c.be.GetPrincipal(name)
	if err != nil {
		if nativeCodeIs(err, codeUnkPrinc) {
			return nil, nil
		}
		return nil, wrapNative(err)
	}
	return principalFromRecord(rec), nil
}

// PrincipalExists reports whether the named principal exists.
func (c *Client) PrincipalExists(name string) (bool, error) {
	p, err := c.GetPrincipal(name)
	if err != nil {
		return false, err
	}
	return p != nil, nil
}

// AddPrincipal creates the principal described by the builder. With the
// default random-key choice the entry is created with a throwaway password
// and immediately rekeyed server-side, so the password never leaves this
// process and the final keys are random.
func (c *Client) AddPrincipal(b *PrincipalBuilder) error {
	if err := c.guard(); err != nil {
		return err
	}
	if b == nil {
		return errInvalidArgument("principal builder must not be nil")
	}
	if err := validName("principal", b.name); err != nil {
		return err
	}
	rec, mask := b.record(b.name)

	var password string
	switch b.key {
	case keyPassword:
		if b.password == "" {
			return errInvalidArgument("principal %s: password must not be empty", b.name)
		}
		password = b.password
	case keyNone:
		mask |= native.MaskKeyData
	case keyRandom:
		dummy, err := randomPassword()
		if err != nil {
			return err
		}
		password = dummy
	}

	if err := c.be.CreatePrincipal(rec, mask, password); err != nil {
		return wrapNative(err)
	}
	if b.key == keyRandom {
		if err := c.be.RandKeyPrincipal(b.name); err != nil {
			return wrapNative(err)
		}
	}
	logger.Debug("principal created", "principal", b.name)
	return nil
}

// ModifyPrincipal applies the modifier's explicitly set fields to the
// existing entry. Untouched fields keep their current values. The update
// is sent as a single call, so concurrent readers observe either none or
// all of it.
func (c *Client) ModifyPrincipal(m *PrincipalModifier) error {
	if err := c.guard(); err != nil {
		return err
	}
	if m == nil {
		return errInvalidArgument("principal modifier must not be nil")
	}
	if err := validName("principal", m.name); err != nil {
		return err
	}
	rec, mask := m.record(m.name)
	if err := c.be.ModifyPrincipal(rec, mask); err != nil {
		return wrapNative(err)
	}
	logger.Debug("principal modified", "principal", m.name)
	return nil
}

// RenamePrincipal renames a principal, keeping its entry.
func (c *Client) RenamePrincipal(oldName, newName string) error {
	if err := c.guard(); err != nil {
		return err
	}
	if err := validName("principal", oldName); err != nil {
		return err
	}
	if err := validName("principal", newName); err != nil {
		return err
	}
	if err := c.be.RenamePrincipal(oldName, newName); err != nil {
		return wrapNative(err)
	}
	logger.Debug("principal renamed", "from", oldName, "to", newName)
	return nil
}

// DeletePrincipal removes a principal entry.
func (c *Client) DeletePrincipal(name string) error {
	if err := c.guard(); err != nil {
		return err
	}
	if err := validName("principal", name); err != nil {
		return err
	}
	if err := c.be.DeletePrincipal(name); err != nil {
		return wrapNative(err)
	}
	logger.Debug("principal deleted", "principal", name)
	return nil
}

// ChangePassword sets a new password for the principal.
func (c *Client) ChangePassword(name, password string) error {
	if err := c.guard(); err != nil {
		return err
	}
	if err := validName("principal", name); err != nil {
		return err
	}
	if password == "" {
		return errInvalidArgument("password must not be empty")
	}
	if err := c.be.ChangePassword(name, password); err != nil {
		return wrapNative(err)
	}
	logger.Debug("password changed", "principal", name)
	return nil
}

// RandKeyPrincipal replaces the principal's keys with new random keys.
func (c *Client) RandKeyPrincipal(name string) error {
	if err := c.guard(); err != nil {
		return err
	}
	if err := validName("principal", name); err != nil {
		return err
	}
	if err := c.be.RandKeyPrincipal(name); err != nil {
		return wrapNative(err)
	}
	logger.Debug("principal rekeyed", "principal", name)
	return nil
}

// ListPrincipals returns principal names matching the glob pattern. An
// empty pattern matches everything.
func (c *Client) ListPrincipals(glob string) ([]string, error) {
	if err := c.guard(); err != nil {
		return nil, err
	}
	names, err := c.be.ListPrincipals(globOrAll(glob))
	if err != nil {
		return nil, wrapNative(err)
	}
	return names, nil
}

// GetPolicy fetches a policy entry. A missing policy is not an error: it
// returns (nil, nil).
func (c *Client) GetPolicy(name string) (*Policy, error) {
	if err := c.guard(); err != nil {
		return nil, err
	}
	if err := validName("policy", name); err != nil {
		return nil, err
	}
	rec, err := c.be.GetPolicy(name)
	if err != nil {
		if nativeCodeIs(err, codeUnkPolicy) {
			return nil, nil
		}
		return nil, wrapNative(err)
	}
	return policyFromRecord(rec)
}

// PolicyExists reports whether the named policy exists.
func (c *Client) PolicyExists(name string) (bool, error) {
	p, err := c.GetPolicy(name)
	if err != nil {
		return false, err
	}
	return p != nil, nil
}

// AddPolicy creates the policy described by the builder.
func (c *Client) AddPolicy(b *PolicyBuilder) error {
	if err := c.guard(); err != nil {
		return err
	}
	if b == nil {
		return errInvalidArgument("policy builder must not be nil")
	}
	if err := validName("policy", b.name); err != nil {
		return err
	}
	rec, mask := b.record(b.name)
	if err := c.be.CreatePolicy(rec, mask); err != nil {
		return wrapNative(err)
	}
	logger.Debug("policy created", "policy", b.name)
	return nil
}

// ModifyPolicy applies the modifier's explicitly set fields to the
// existing policy.
func (c *Client) ModifyPolicy(m *PolicyModifier) error {
	if err := c.guard(); err != nil {
		return err
	}
	if m == nil {
		return errInvalidArgument("policy modifier must not be nil")
	}
	if err := validName("policy", m.name); err != nil {
		return err
	}
	rec, mask := m.record(m.name)
	if err := c.be.ModifyPolicy(rec, mask); err != nil {
		return wrapNative(err)
	}
	logger.Debug("policy modified", "policy", m.name)
	return nil
}

// DeletePolicy removes a policy. The server rejects deletion of a policy
// still referenced by principals.
func (c *Client) DeletePolicy(name string) error {
	if err := c.guard(); err != nil {
		return err
	}
	if err := validName("policy", name); err != nil {
		return err
	}
	if err := c.be.DeletePolicy(name); err != nil {
		return wrapNative(err)
	}
	logger.Debug("policy deleted", "policy", name)
	return nil
}

// ListPolicies returns policy names matching the glob pattern. An empty
// pattern matches everything.
func (c *Client) ListPolicies(glob string) ([]string, error) {
	if err := c.guard(); err != nil {
		return nil, err
	}
	names, err := c.be.ListPolicies(globOrAll(glob))
	if err != nil {
		return nil, wrapNative(err)
	}
	return names, nil
}

// Close releases the server handle. Close is idempotent; operations on a
// closed client fail with a connection error.
func (c *Client) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	if err := c.be.Close(); err != nil {
		return wrapNative(err)
	}
	logger.Debug("kadm5 connection closed")
	return nil
}

// randomPassword generates a high-entropy throwaway password for the
// create-then-rekey flow.
func randomPassword() (string, error) {
	var raw [32]byte
	if _, err := rand.Read(raw[:]); err != nil {
		return "", newError(CodeLibrary, "generating random password: %v", err)
	}
	return base64.RawStdEncoding.EncodeToString(raw[:]), nil
}
