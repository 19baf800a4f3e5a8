// Package principal implements principal management commands for kadmctl.
package principal

import (
	"github.com/spf13/cobra"
)

// Cmd is the parent command for principal management.
var Cmd = &cobra.Command{
	Use:     "principal",
	Aliases: []string{"princ"},
	Short:   "Principal management",
	Long: `Manage principals in the Kerberos database.

Examples:
  # List all principals
  kadmctl principal list

  # List service principals only
  kadmctl principal list 'svc/*'

  # Show a principal
  kadmctl principal get alice@EXAMPLE.ORG

  # Create a user principal, prompting for the password
  kadmctl principal add alice@EXAMPLE.ORG

  # Create a service principal with random keys
  kadmctl principal add svc/web@EXAMPLE.ORG --randkey

  # Change attributes
  kadmctl principal modify alice@EXAMPLE.ORG --max-life 8h --policy default

  # Reset a password
  kadmctl principal password alice@EXAMPLE.ORG

  # Delete a principal
  kadmctl principal delete alice@EXAMPLE.ORG`,
}

func init() {
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(getCmd)
	Cmd.AddCommand(addCmd)
	Cmd.AddCommand(modifyCmd)
	Cmd.AddCommand(renameCmd)
	Cmd.AddCommand(deleteCmd)
	Cmd.AddCommand(passwordCmd)
	Cmd.AddCommand(randkeyCmd)
}
