package policy

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/krb5go/kadm5/cmd/kadmctl/cmdutil"
	"github.com/krb5go/kadm5/internal/cli/output"
	"github.com/krb5go/kadm5/internal/cli/timeutil"
)

var getCmd = &cobra.Command{
	Use:   "get <policy>",
	Short: "Show a password policy",
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

// policyDetails is the structured form used for json/yaml output.
type policyDetails struct {
	Name                 string `json:"name" yaml:"name"`
	PasswordMinLife      string `json:"password_min_life" yaml:"password_min_life"`
	PasswordMaxLife      string `json:"password_max_life" yaml:"password_max_life"`
	PasswordMinLength    int    `json:"password_min_length" yaml:"password_min_length"`
	PasswordMinClasses   int    `json:"password_min_classes" yaml:"password_min_classes"`
	PasswordHistoryNum   int    `json:"password_history_num" yaml:"password_history_num"`
	MaxFailures          uint32 `json:"max_failures" yaml:"max_failures"`
	FailureResetInterval string `json:"failure_reset_interval" yaml:"failure_reset_interval"`
	LockoutDuration      string `json:"lockout_duration" yaml:"lockout_duration"`
	AllowedKeysalts      string `json:"allowed_keysalts,omitempty" yaml:"allowed_keysalts,omitempty"`
}

func runGet(cmd *cobra.Command, args []string) error {
	format, err := cmdutil.OutputFormat()
	if err != nil {
		return err
	}

	client, err := cmdutil.Connect()
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	p, err := client.GetPolicy(args[0])
	if err != nil {
		return fmt.Errorf("failed to get policy: %w", err)
	}
	if p == nil {
		return fmt.Errorf("policy %q does not exist", args[0])
	}

	keysalts := ""
	if ksl := p.AllowedKeysalts(); ksl != nil {
		keysalts = ksl.String()
	}
	details := policyDetails{
		Name:                 p.Name(),
		PasswordMinLife:      p.PasswordMinLife().String(),
		PasswordMaxLife:      p.PasswordMaxLife().String(),
		PasswordMinLength:    p.PasswordMinLength(),
		PasswordMinClasses:   p.PasswordMinClasses(),
		PasswordHistoryNum:   p.PasswordHistoryNum(),
		MaxFailures:          p.MaxFailures(),
		FailureResetInterval: p.FailureResetInterval().String(),
		LockoutDuration:      p.LockoutDuration().String(),
		AllowedKeysalts:      keysalts,
	}

	restriction := "unrestricted"
	if keysalts != "" {
		restriction = keysalts
	}

	table := output.NewTable("Field", "Value")
	table.AddRow("Policy", p.Name())
	table.AddRow("Min password life", timeutil.FormatLifetime(p.PasswordMinLife()))
	table.AddRow("Max password life", timeutil.FormatLifetime(p.PasswordMaxLife()))
	table.AddRow("Min length", fmt.Sprintf("%d", p.PasswordMinLength()))
	table.AddRow("Min classes", fmt.Sprintf("%d", p.PasswordMinClasses()))
	table.AddRow("History", fmt.Sprintf("%d", p.PasswordHistoryNum()))
	table.AddRow("Max failures", fmt.Sprintf("%d", p.MaxFailures()))
	table.AddRow("Failure reset interval", timeutil.FormatLifetime(p.FailureResetInterval()))
	table.AddRow("Lockout duration", timeutil.FormatLifetime(p.LockoutDuration()))
	table.AddRow("Allowed keysalts", restriction)

	return output.Print(os.Stdout, format, table, details)
}
