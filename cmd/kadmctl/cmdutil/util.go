// Package cmdutil provides shared utilities for kadmctl commands.
package cmdutil

import (
	"fmt"
	"os"
	"strings"

	"github.com/krb5go/kadm5/internal/cli/output"
	"github.com/krb5go/kadm5/internal/cli/prompt"
	"github.com/krb5go/kadm5/pkg/kadm5"
)

// Flags stores global flag values accessible by subcommands.
var Flags = &GlobalFlags{}

// GlobalFlags holds the global flag values.
type GlobalFlags struct {
	Realm     string
	Server    string
	Client    string
	Keytab    string
	UseKeytab bool
	CCache    string
	UseCCache bool
	Anonymous bool
	DBArgs    []string
	Output    string
	LogLevel  string
}

// ConnParams builds connection parameter overrides from the global flags.
func (f *GlobalFlags) ConnParams() kadm5.ConnParams {
	return kadm5.ConnParams{
		Realm:       f.Realm,
		AdminServer: f.Server,
	}
}

func (f *GlobalFlags) dbArgs() (kadm5.DBArgs, error) {
	var d kadm5.DBArgs
	for _, arg := range f.DBArgs {
		name, value, ok := strings.Cut(arg, "=")
		if name == "" {
			return d, fmt.Errorf("invalid --db-arg %q", arg)
		}
		if ok {
			d.Add(name, value)
		} else {
			d.AddFlag(name)
		}
	}
	return d, nil
}

// Connect opens an administration connection according to the global
// authentication flags. Precedence: keytab, credential cache, anonymous,
// then password (prompting when no password was given on the flag).
func Connect() (*kadm5.Client, error) {
	d, err := Flags.dbArgs()
	if err != nil {
		return nil, err
	}
	opts := []kadm5.Option{
		kadm5.WithParams(Flags.ConnParams()),
		kadm5.WithDBArgs(d),
	}

	switch {
	case Flags.Keytab != "" || Flags.UseKeytab:
		return kadm5.ConnectWithKeytab(Flags.Client, Flags.Keytab, opts...)
	case Flags.CCache != "" || Flags.UseCCache:
		return kadm5.ConnectWithCCache(Flags.Client, Flags.CCache, opts...)
	case Flags.Anonymous:
		return kadm5.ConnectWithAnonymous(Flags.Client, opts...)
	default:
		if Flags.Client == "" {
			return nil, fmt.Errorf("no client principal given; use --client (or --keytab, --ccache, --anonymous)")
		}
		password, err := prompt.Password(fmt.Sprintf("Password for %s", Flags.Client))
		if err != nil {
			return nil, err
		}
		return kadm5.ConnectWithPassword(Flags.Client, password, opts...)
	}
}

// OutputFormat resolves the requested output format.
func OutputFormat() (output.Format, error) {
	return output.ParseFormat(Flags.Output)
}

// HandleAbort converts a prompt abort into a clean exit without an error
// trace.
func HandleAbort(err error) error {
	if prompt.IsAborted(err) {
		fmt.Fprintln(os.Stderr, "Aborted.")
		return nil
	}
	return err
}

// PrintSuccess prints a confirmation message to stdout.
func PrintSuccess(format string, args ...any) {
	fmt.Printf("✓ "+format+"\n", args...)
}
