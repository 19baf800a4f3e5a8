package principal

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/krb5go/kadm5/cmd/kadmctl/cmdutil"
	"github.com/krb5go/kadm5/pkg/kadm5"
)

var (
	modPolicy      string
	modClearPolicy bool
	modMaxLife     time.Duration
	modMaxRenew    time.Duration
	modExpire      string
	modPwExpire    string
)

var modifyCmd = &cobra.Command{
	Use:   "modify <principal>",
	Short: "Modify a principal",
	Long: `Modify fields of an existing principal. Only the flags given are
changed; everything else keeps its current value.

Examples:
  kadmctl principal modify alice@EXAMPLE.ORG --max-life 8h
  kadmctl principal modify alice@EXAMPLE.ORG --policy default
  kadmctl principal modify alice@EXAMPLE.ORG --clear-policy
  kadmctl principal modify alice@EXAMPLE.ORG --expire 2030-01-01T00:00:00Z`,
	Args: cobra.ExactArgs(1),
	RunE: runModify,
}

func init() {
	modifyCmd.Flags().StringVar(&modPolicy, "policy", "", "password policy to assign")
	modifyCmd.Flags().BoolVar(&modClearPolicy, "clear-policy", false, "remove the password policy")
	modifyCmd.Flags().DurationVar(&modMaxLife, "max-life", 0, "maximum ticket life (0 = no limit)")
	modifyCmd.Flags().DurationVar(&modMaxRenew, "max-renewable-life", 0, "maximum renewable life (0 = no limit)")
	modifyCmd.Flags().StringVar(&modExpire, "expire", "", "principal expiration (RFC 3339, empty = never)")
	modifyCmd.Flags().StringVar(&modPwExpire, "pw-expire", "", "password expiration (RFC 3339, empty = never)")
	modifyCmd.MarkFlagsMutuallyExclusive("policy", "clear-policy")
}

func runModify(cmd *cobra.Command, args []string) error {
	m := kadm5.ModifyPrincipalEntry(args[0])

	changed := false
	if cmd.Flags().Changed("policy") {
		m.SetPolicy(modPolicy)
		changed = true
	}
	if modClearPolicy {
		m.ClearPolicy()
		changed = true
	}
	if cmd.Flags().Changed("max-life") {
		m.SetMaxLife(modMaxLife)
		changed = true
	}
	if cmd.Flags().Changed("max-renewable-life") {
		m.SetMaxRenewableLife(modMaxRenew)
		changed = true
	}
	if cmd.Flags().Changed("expire") {
		expire, err := parseExpire(modExpire)
		if err != nil {
			return err
		}
		m.SetExpireTime(expire)
		changed = true
	}
	if cmd.Flags().Changed("pw-expire") {
		expire, err := parseExpire(modPwExpire)
		if err != nil {
			return err
		}
		m.SetPasswordExpiration(expire)
		changed = true
	}
	if !changed {
		return fmt.Errorf("nothing to modify; pass at least one field flag")
	}

	client, err := cmdutil.Connect()
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	if err := client.ModifyPrincipal(m); err != nil {
		return fmt.Errorf("failed to modify principal: %w", err)
	}

	cmdutil.PrintSuccess("Principal %q modified", args[0])
	return nil
}
