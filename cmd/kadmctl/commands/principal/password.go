package principal

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/krb5go/kadm5/cmd/kadmctl/cmdutil"
	"github.com/krb5go/kadm5/internal/cli/prompt"
)

var newPassword string

var passwordCmd = &cobra.Command{
	Use:   "password <principal>",
	Short: "Change a principal's password",
	Long: `Change a principal's password.

Examples:
  # Prompt for the new password
  kadmctl principal password alice@EXAMPLE.ORG

  # Pass it on the command line (visible in the process list)
  kadmctl principal password alice@EXAMPLE.ORG --password newsecret`,
	Args: cobra.ExactArgs(1),
	RunE: runPassword,
}

func init() {
	passwordCmd.Flags().StringVarP(&newPassword, "password", "p", "", "new password (prompts if not provided)")
}

func runPassword(cmd *cobra.Command, args []string) error {
	name := args[0]

	password := newPassword
	if password == "" {
		var err error
		password, err = prompt.PasswordWithConfirmation("New password", "Confirm password", 1)
		if err != nil {
			return cmdutil.HandleAbort(err)
		}
	}

	client, err := cmdutil.Connect()
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	if err := client.ChangePassword(name, password); err != nil {
		return fmt.Errorf("failed to change password: %w", err)
	}

	cmdutil.PrintSuccess("Password changed for %q", name)
	return nil
}
