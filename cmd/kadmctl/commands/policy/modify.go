package policy

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/krb5go/kadm5/cmd/kadmctl/cmdutil"
	"github.com/krb5go/kadm5/pkg/kadm5"
)

var modifyFlags fieldFlags

var modifyCmd = &cobra.Command{
	Use:   "modify <policy>",
	Short: "Modify a password policy",
	Long: `Modify fields of an existing policy. Only the flags given are
changed; everything else keeps its current value.`,
	Args: cobra.ExactArgs(1),
	RunE: runModify,
}

func init() {
	modifyFlags.register(modifyCmd)
}

func runModify(cmd *cobra.Command, args []string) error {
	m := kadm5.ModifyPolicyEntry(args[0])
	changed, err := modifyFlags.apply(cmd, m)
	if err != nil {
		return err
	}
	if !changed {
		return fmt.Errorf("nothing to modify; pass at least one field flag")
	}

	client, err := cmdutil.Connect()
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	if err := client.ModifyPolicy(m); err != nil {
		return fmt.Errorf("failed to modify policy: %w", err)
	}

	cmdutil.PrintSuccess("Policy %q modified", args[0])
	return nil
}
