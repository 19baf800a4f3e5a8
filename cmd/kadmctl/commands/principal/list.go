package principal

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/krb5go/kadm5/cmd/kadmctl/cmdutil"
	"github.com/krb5go/kadm5/internal/cli/output"
)

var listCmd = &cobra.Command{
	Use:   "list [glob]",
	Short: "List principals",
	Long: `List principals matching a glob pattern. Without a pattern every
principal is listed.

Examples:
  kadmctl principal list
  kadmctl principal list 'host/*'`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	glob := ""
	if len(args) == 1 {
		glob = args[0]
	}

	format, err := cmdutil.OutputFormat()
	if err != nil {
		return err
	}

	client, err := cmdutil.Connect()
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	names, err := client.ListPrincipals(glob)
	if err != nil {
		return fmt.Errorf("failed to list principals: %w", err)
	}
	sort.Strings(names)

	table := output.NewTable("Principal")
	for _, name := range names {
		table.AddRow(name)
	}
	return output.Print(os.Stdout, format, table, names)
}
