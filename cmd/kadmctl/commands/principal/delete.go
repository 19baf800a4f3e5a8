package principal

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/krb5go/kadm5/cmd/kadmctl/cmdutil"
	"github.com/krb5go/kadm5/internal/cli/prompt"
)

var deleteForce bool

var deleteCmd = &cobra.Command{
	Use:   "delete <principal>",
	Short: "Delete a principal",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "skip the confirmation prompt")
}

func runDelete(cmd *cobra.Command, args []string) error {
	name := args[0]

	if !deleteForce {
		ok, err := prompt.Confirm(fmt.Sprintf("Delete principal %q?", name))
		if err != nil {
			return cmdutil.HandleAbort(err)
		}
		if !ok {
			return nil
		}
	}

	client, err := cmdutil.Connect()
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	if err := client.DeletePrincipal(name); err != nil {
		return fmt.Errorf("failed to delete principal: %w", err)
	}

	cmdutil.PrintSuccess("Principal %q deleted", name)
	return nil
}
