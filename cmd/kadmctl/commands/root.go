// Package commands implements the kadmctl CLI commands.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/krb5go/kadm5/cmd/kadmctl/cmdutil"
	"github.com/krb5go/kadm5/cmd/kadmctl/commands/policy"
	"github.com/krb5go/kadm5/cmd/kadmctl/commands/principal"
	"github.com/krb5go/kadm5/internal/logger"
)

// Version information injected at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "kadmctl",
	Short: "kadmctl - Kerberos administration client",
	Long: `kadmctl administers an MIT Kerberos realm through the kadm5 protocol.

It talks to kadmind with the same authentication choices as kadmin:
an admin password, a keytab, an existing credential cache, or anonymous
PKINIT credentials.

Examples:
  # List principals, authenticating with a password
  kadmctl --client admin/admin@EXAMPLE.ORG principal list

  # Show one principal, using the default credential cache
  kadmctl --ccache-default principal get alice@EXAMPLE.ORG

  # Create a service principal with random keys, using a keytab
  kadmctl --keytab /etc/krb5.keytab principal add svc/web@EXAMPLE.ORG --randkey

  # Manage password policies
  kadmctl --client admin/admin@EXAMPLE.ORG policy add default --min-length 12`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logger.Init(logger.Config{Level: cmdutil.Flags.LogLevel})
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("kadmctl %s (commit: %s, built: %s)\n", version, commit, date)
	},
}

// SetVersion records build-time version information.
func SetVersion(v, c, d string) {
	version, commit, date = v, c, d
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&cmdutil.Flags.Realm, "realm", "r", "", "Kerberos realm to administer")
	flags.StringVarP(&cmdutil.Flags.Server, "server", "s", "", "admin server host[:port]")
	flags.StringVarP(&cmdutil.Flags.Client, "client", "c", "", "client principal to authenticate as")
	flags.StringVarP(&cmdutil.Flags.Keytab, "keytab", "k", "", "authenticate with this keytab")
	flags.BoolVar(&cmdutil.Flags.UseKeytab, "keytab-default", false, "authenticate with the default keytab")
	flags.StringVar(&cmdutil.Flags.CCache, "ccache", "", "authenticate with this credential cache")
	flags.BoolVar(&cmdutil.Flags.UseCCache, "ccache-default", false, "authenticate with the default credential cache")
	flags.BoolVar(&cmdutil.Flags.Anonymous, "anonymous", false, "authenticate with anonymous PKINIT credentials")
	flags.StringArrayVar(&cmdutil.Flags.DBArgs, "db-arg", nil, "database-specific argument (name=value, repeatable)")
	flags.StringVarP(&cmdutil.Flags.Output, "output", "o", "table", "output format (table, json, yaml)")
	flags.StringVar(&cmdutil.Flags.LogLevel, "log-level", "WARN", "log level (DEBUG, INFO, WARN, ERROR)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(principal.Cmd)
	rootCmd.AddCommand(policy.Cmd)

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
