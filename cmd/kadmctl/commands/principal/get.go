package principal

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/krb5go/kadm5/cmd/kadmctl/cmdutil"
	"github.com/krb5go/kadm5/internal/cli/output"
	"github.com/krb5go/kadm5/internal/cli/timeutil"
	"github.com/krb5go/kadm5/pkg/kadm5"
)

var getCmd = &cobra.Command{
	Use:   "get <principal>",
	Short: "Show a principal",
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

// principalDetails is the structured form used for json/yaml output.
type principalDetails struct {
	Name               string    `json:"name" yaml:"name"`
	ExpireTime         time.Time `json:"expire_time,omitempty" yaml:"expire_time,omitempty"`
	PasswordExpiration time.Time `json:"password_expiration,omitempty" yaml:"password_expiration,omitempty"`
	LastPasswordChange time.Time `json:"last_password_change,omitempty" yaml:"last_password_change,omitempty"`
	MaxLife            string    `json:"max_life" yaml:"max_life"`
	MaxRenewableLife   string    `json:"max_renewable_life" yaml:"max_renewable_life"`
	Kvno               uint32    `json:"kvno" yaml:"kvno"`
	Attributes         string    `json:"attributes" yaml:"attributes"`
	Policy             string    `json:"policy,omitempty" yaml:"policy,omitempty"`
	ModifiedBy         string    `json:"modified_by,omitempty" yaml:"modified_by,omitempty"`
	ModifiedAt         time.Time `json:"modified_at,omitempty" yaml:"modified_at,omitempty"`
	LastSuccess        time.Time `json:"last_success,omitempty" yaml:"last_success,omitempty"`
	LastFailed         time.Time `json:"last_failed,omitempty" yaml:"last_failed,omitempty"`
	FailAuthCount      uint32    `json:"fail_auth_count" yaml:"fail_auth_count"`
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

	p, err := client.GetPrincipal(args[0])
	if err != nil {
		return fmt.Errorf("failed to get principal: %w", err)
	}
	if p == nil {
		return fmt.Errorf("principal %q does not exist", args[0])
	}

	policy, _ := p.Policy()
	details := principalDetails{
		Name:               p.Name(),
		ExpireTime:         p.ExpireTime(),
		PasswordExpiration: p.PasswordExpiration(),
		LastPasswordChange: p.LastPasswordChange(),
		MaxLife:            p.MaxLife().String(),
		MaxRenewableLife:   p.MaxRenewableLife().String(),
		Kvno:               p.Kvno(),
		Attributes:         p.Attributes().String(),
		Policy:             policy,
		ModifiedBy:         p.ModifiedBy(),
		ModifiedAt:         p.ModifiedAt(),
		LastSuccess:        p.LastSuccess(),
		LastFailed:         p.LastFailed(),
		FailAuthCount:      p.FailAuthCount(),
	}

	table := output.NewTable("Field", "Value")
	table.AddRow("Principal", p.Name())
	table.AddRow("Expiration", timeutil.FormatTime(p.ExpireTime()))
	table.AddRow("Password expiration", timeutil.FormatTime(p.PasswordExpiration()))
	table.AddRow("Last password change", timeutil.FormatTime(p.LastPasswordChange()))
	table.AddRow("Max ticket life", timeutil.FormatLifetime(p.MaxLife()))
	table.AddRow("Max renewable life", timeutil.FormatLifetime(p.MaxRenewableLife()))
	table.AddRow("Key version", fmt.Sprintf("%d", p.Kvno()))
	table.AddRow("Attributes", p.Attributes().String())
	table.AddRow("Policy", policyOrNone(p))
	table.AddRow("Last modified", fmt.Sprintf("%s by %s",
		timeutil.FormatTime(p.ModifiedAt()), p.ModifiedBy()))
	table.AddRow("Last success", timeutil.FormatTime(p.LastSuccess()))
	table.AddRow("Last failed", timeutil.FormatTime(p.LastFailed()))
	table.AddRow("Failed attempts", fmt.Sprintf("%d", p.FailAuthCount()))

	return output.Print(os.Stdout, format, table, details)
}

func policyOrNone(p *kadm5.Principal) string {
	if policy, ok := p.Policy(); ok {
		return policy
	}
	return "none"
}
