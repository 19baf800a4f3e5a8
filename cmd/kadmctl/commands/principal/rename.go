package principal

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/krb5go/kadm5/cmd/kadmctl/cmdutil"
)

var renameCmd = &cobra.Command{
	Use:   "rename <old> <new>",
	Short: "Rename a principal",
	Args:  cobra.ExactArgs(2),
	RunE:  runRename,
}

func runRename(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.Connect()
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	if err := client.RenamePrincipal(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to rename principal: %w", err)
	}

	cmdutil.PrintSuccess("Principal %q renamed to %q", args[0], args[1])
	return nil
}
