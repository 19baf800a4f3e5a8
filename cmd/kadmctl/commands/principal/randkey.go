package principal

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/krb5go/kadm5/cmd/kadmctl/cmdutil"
)

var randkeyCmd = &cobra.Command{
	Use:   "randkey <principal>",
	Short: "Replace a principal's keys with new random keys",
	Args:  cobra.ExactArgs(1),
	RunE:  runRandkey,
}

func runRandkey(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.Connect()
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	if err := client.RandKeyPrincipal(args[0]); err != nil {
		return fmt.Errorf("failed to randomize keys: %w", err)
	}

	cmdutil.PrintSuccess("Keys randomized for %q", args[0])
	return nil
}
