package principal

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/krb5go/kadm5/cmd/kadmctl/cmdutil"
	"github.com/krb5go/kadm5/internal/cli/prompt"
	"github.com/krb5go/kadm5/pkg/kadm5"
)

var (
	addRandKey    bool
	addNoKey      bool
	addPassword   string
	addPolicy     string
	addMaxLife    time.Duration
	addMaxRenew   time.Duration
	addExpire     string
	addPreAuth    bool
	addDisallowed bool
)

var addCmd = &cobra.Command{
	Use:   "add <principal>",
	Short: "Create a principal",
	Long: `Create a principal. Without --randkey or --nokey the initial
password is taken from --password or prompted for.

Examples:
  # User principal, password prompted with confirmation
  kadmctl principal add alice@EXAMPLE.ORG --policy default

  # Service principal with random keys
  kadmctl principal add svc/web@EXAMPLE.ORG --randkey

  # Disabled account requiring preauthentication once enabled
  kadmctl principal add temp@EXAMPLE.ORG --randkey --require-preauth --disallow-all-tix`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().BoolVar(&addRandKey, "randkey", false, "create with random keys")
	addCmd.Flags().BoolVar(&addNoKey, "nokey", false, "create without keys")
	addCmd.Flags().StringVarP(&addPassword, "password", "p", "", "initial password (prompts if not provided)")
	addCmd.Flags().StringVar(&addPolicy, "policy", "", "password policy to assign")
	addCmd.Flags().DurationVar(&addMaxLife, "max-life", 0, "maximum ticket life (0 = no limit)")
	addCmd.Flags().DurationVar(&addMaxRenew, "max-renewable-life", 0, "maximum renewable life (0 = no limit)")
	addCmd.Flags().StringVar(&addExpire, "expire", "", "principal expiration (RFC 3339, empty = never)")
	addCmd.Flags().BoolVar(&addPreAuth, "require-preauth", false, "require preauthentication")
	addCmd.Flags().BoolVar(&addDisallowed, "disallow-all-tix", false, "disable the principal")
	addCmd.MarkFlagsMutuallyExclusive("randkey", "nokey", "password")
}

func runAdd(cmd *cobra.Command, args []string) error {
	name := args[0]

	b := kadm5.NewPrincipal(name)
	switch {
	case addRandKey:
		b.RandKey()
	case addNoKey:
		b.NoKey()
	case addPassword != "":
		b.Password(addPassword)
	default:
		password, err := prompt.PasswordWithConfirmation("Password", "Confirm password", 1)
		if err != nil {
			return cmdutil.HandleAbort(err)
		}
		b.Password(password)
	}

	if cmd.Flags().Changed("policy") {
		b.SetPolicy(addPolicy)
	}
	if cmd.Flags().Changed("max-life") {
		b.SetMaxLife(addMaxLife)
	}
	if cmd.Flags().Changed("max-renewable-life") {
		b.SetMaxRenewableLife(addMaxRenew)
	}
	if cmd.Flags().Changed("expire") {
		expire, err := parseExpire(addExpire)
		if err != nil {
			return err
		}
		b.SetExpireTime(expire)
	}
	var attrs kadm5.PrincipalAttributes
	if addPreAuth {
		attrs |= kadm5.RequiresPreAuth
	}
	if addDisallowed {
		attrs |= kadm5.DisallowAllTix
	}
	if attrs != 0 {
		b.SetAttributes(attrs)
	}

	client, err := cmdutil.Connect()
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	if err := client.AddPrincipal(b); err != nil {
		return fmt.Errorf("failed to create principal: %w", err)
	}

	cmdutil.PrintSuccess("Principal %q created", name)
	return nil
}

// parseExpire accepts an RFC 3339 timestamp; the empty string means never.
func parseExpire(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid expiration %q: expected RFC 3339, e.g. 2030-01-01T00:00:00Z", s)
	}
	return t, nil
}
