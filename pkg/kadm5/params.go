package kadm5

import "github.com/krb5go/kadm5/internal/native"

// ConnParams overrides profile-derived configuration for a connection.
// Zero-valued fields are left to the library's normal resolution from
// krb5.conf and DNS.
type ConnParams struct {
	// Realm is the Kerberos realm to administer.
	Realm string

	// AdminServer is the kadmind host, optionally host:port.
	AdminServer string

	// KadminPort and KpasswdPort override the server ports.
	KadminPort  int
	KpasswdPort int

	// Local-database parameters, used by kadmin.local-style access.
	DBName    string
	ACLFile   string
	DictFile  string
	StashFile string
}

func (p ConnParams) toNative(dbArgs DBArgs) *native.Config {
	return &native.Config{
		Realm:       p.Realm,
		AdminServer: p.AdminServer,
		KadminPort:  p.KadminPort,
		KpasswdPort: p.KpasswdPort,
		DBName:      p.DBName,
		ACLFile:     p.ACLFile,
		DictFile:    p.DictFile,
		StashFile:   p.StashFile,
		DBArgs:      dbArgs.Strings(),
	}
}
