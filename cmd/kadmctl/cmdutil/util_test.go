package cmdutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krb5go/kadm5/internal/cli/output"
)

// ============================================================================
// DB Argument Parsing Tests
// ============================================================================

func TestDBArgParsing(t *testing.T) {
	t.Run("name=value pairs", func(t *testing.T) {
		f := &GlobalFlags{DBArgs: []string{"binddn=cn=admin,dc=example,dc=org"}}

		d, err := f.dbArgs()

		require.NoError(t, err)
		assert.Equal(t, []string{"binddn=cn=admin,dc=example,dc=org"}, d.Strings())
	})

	t.Run("bare flags", func(t *testing.T) {
		f := &GlobalFlags{DBArgs: []string{"lockiter"}}

		d, err := f.dbArgs()

		require.NoError(t, err)
		assert.Equal(t, []string{"lockiter"}, d.Strings())
	})

	t.Run("empty name is rejected", func(t *testing.T) {
		f := &GlobalFlags{DBArgs: []string{"=value"}}

		_, err := f.dbArgs()

		assert.Error(t, err)
	})
}

// ============================================================================
// Output Format Tests
// ============================================================================

func TestOutputFormat(t *testing.T) {
	original := Flags.Output
	defer func() { Flags.Output = original }()

	Flags.Output = "json"
	format, err := OutputFormat()
	require.NoError(t, err)
	assert.Equal(t, output.FormatJSON, format)

	Flags.Output = "starlight"
	_, err = OutputFormat()
	assert.Error(t, err)
}

// ============================================================================
// Connection Parameter Tests
// ============================================================================

func TestConnParamsFromFlags(t *testing.T) {
	f := &GlobalFlags{Realm: "EXAMPLE.ORG", Server: "kdc.example.org:749"}

	p := f.ConnParams()

	assert.Equal(t, "EXAMPLE.ORG", p.Realm)
	assert.Equal(t, "kdc.example.org:749", p.AdminServer)
}
