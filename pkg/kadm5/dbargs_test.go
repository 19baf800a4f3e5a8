package kadm5

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// ============================================================================
// DBArgs Tests
// ============================================================================

func TestDBArgs(t *testing.T) {
	t.Parallel()

	t.Run("empty args produce nil", func(t *testing.T) {
		t.Parallel()
		var d DBArgs

		assert.Equal(t, 0, d.Len())
		assert.Nil(t, d.Strings())
	})

	t.Run("values are rendered name=value", func(t *testing.T) {
		t.Parallel()
		var d DBArgs
		d.Add("binddn", "cn=admin,dc=example,dc=org")

		assert.Equal(t, []string{"binddn=cn=admin,dc=example,dc=org"}, d.Strings())
	})

	t.Run("flags are rendered bare", func(t *testing.T) {
		t.Parallel()
		var d DBArgs
		d.AddFlag("lockiter")

		assert.Equal(t, []string{"lockiter"}, d.Strings())
	})

	t.Run("insertion order is preserved", func(t *testing.T) {
		t.Parallel()
		var d DBArgs
		d.Add("host", "ldap://kdc.example.org")
		d.AddFlag("temporary")
		d.Add("binddn", "cn=admin")

		assert.Equal(t, []string{"host=ldap://kdc.example.org", "temporary", "binddn=cn=admin"}, d.Strings())
	})

	t.Run("Strings returns a copy", func(t *testing.T) {
		t.Parallel()
		var d DBArgs
		d.Add("a", "1")

		out := d.Strings()
		out[0] = "mutated"

		assert.Equal(t, []string{"a=1"}, d.Strings())
	})
}

// ============================================================================
// ConnParams Tests
// ============================================================================

func TestConnParamsToNative(t *testing.T) {
	t.Parallel()

	var d DBArgs
	d.Add("binddn", "cn=admin")

	cfg := ConnParams{
		Realm:       "EXAMPLE.ORG",
		AdminServer: "kdc.example.org",
		KadminPort:  10749,
	}.toNative(d)

	assert.Equal(t, "EXAMPLE.ORG", cfg.Realm)
	assert.Equal(t, "kdc.example.org", cfg.AdminServer)
	assert.Equal(t, 10749, cfg.KadminPort)
	assert.Equal(t, 0, cfg.KpasswdPort)
	assert.Equal(t, []string{"binddn=cn=admin"}, cfg.DBArgs)
}
