package policy

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/krb5go/kadm5/cmd/kadmctl/cmdutil"
	"github.com/krb5go/kadm5/pkg/kadm5"
)

var addFlags fieldFlags

var addCmd = &cobra.Command{
	Use:   "add <policy>",
	Short: "Create a password policy",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdd,
}

func init() {
	addFlags.register(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	b := kadm5.NewPolicy(args[0])
	if _, err := addFlags.apply(cmd, b); err != nil {
		return err
	}

	client, err := cmdutil.Connect()
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	if err := client.AddPolicy(b); err != nil {
		return fmt.Errorf("failed to create policy: %w", err)
	}

	cmdutil.PrintSuccess("Policy %q created", args[0])
	return nil
}
