// Package policy implements password policy management commands for kadmctl.
package policy

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/krb5go/kadm5/pkg/kadm5"
)

// Cmd is the parent command for policy management.
var Cmd = &cobra.Command{
	Use:   "policy",
	Short: "Password policy management",
	Long: `Manage password policies in the Kerberos database.

Examples:
  # List all policies
  kadmctl policy list

  # Show a policy
  kadmctl policy get default

  # Create a policy
  kadmctl policy add default --min-length 12 --min-classes 3 --history 5

  # Tighten lockout settings
  kadmctl policy modify default --max-failures 10 --lockout-duration 10m

  # Delete a policy (fails while principals still reference it)
  kadmctl policy delete default`,
}

func init() {
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(getCmd)
	Cmd.AddCommand(addCmd)
	Cmd.AddCommand(modifyCmd)
	Cmd.AddCommand(deleteCmd)
}

// fieldFlags carries the shared flag set for add and modify.
type fieldFlags struct {
	minLife     time.Duration
	maxLife     time.Duration
	minLength   int
	minClasses  int
	history     int
	maxFailures uint32
	resetInt    time.Duration
	lockout     time.Duration
	keysalts    string
}

func (f *fieldFlags) register(cmd *cobra.Command) {
	cmd.Flags().DurationVar(&f.minLife, "min-life", 0, "minimum password lifetime")
	cmd.Flags().DurationVar(&f.maxLife, "max-life", 0, "maximum password lifetime (0 = no limit)")
	cmd.Flags().IntVar(&f.minLength, "min-length", 0, "minimum password length")
	cmd.Flags().IntVar(&f.minClasses, "min-classes", 0, "minimum number of character classes")
	cmd.Flags().IntVar(&f.history, "history", 0, "number of old keys kept to block reuse")
	cmd.Flags().Uint32Var(&f.maxFailures, "max-failures", 0, "failed-authentication lockout threshold (0 = no lockout)")
	cmd.Flags().DurationVar(&f.resetInt, "failure-reset-interval", 0, "window after which the failure counter resets")
	cmd.Flags().DurationVar(&f.lockout, "lockout-duration", 0, "how long lockout lasts (0 = until unlocked)")
	cmd.Flags().StringVar(&f.keysalts, "allowed-keysalts", "", "allowed keysalts, e.g. 'aes256-cts-hmac-sha1-96:normal' (empty = unrestricted)")
}

// apply copies every changed flag into the fields, reporting whether any
// flag was set at all.
func (f *fieldFlags) apply(cmd *cobra.Command, set interface {
	SetPasswordMinLife(time.Duration)
	SetPasswordMaxLife(time.Duration)
	SetPasswordMinLength(int)
	SetPasswordMinClasses(int)
	SetPasswordHistoryNum(int)
	SetMaxFailures(uint32)
	SetFailureResetInterval(time.Duration)
	SetLockoutDuration(time.Duration)
	SetAllowedKeysalts(*kadm5.KeySaltList)
}) (bool, error) {
	changed := false
	if cmd.Flags().Changed("min-life") {
		set.SetPasswordMinLife(f.minLife)
		changed = true
	}
	if cmd.Flags().Changed("max-life") {
		set.SetPasswordMaxLife(f.maxLife)
		changed = true
	}
	if cmd.Flags().Changed("min-length") {
		set.SetPasswordMinLength(f.minLength)
		changed = true
	}
	if cmd.Flags().Changed("min-classes") {
		set.SetPasswordMinClasses(f.minClasses)
		changed = true
	}
	if cmd.Flags().Changed("history") {
		set.SetPasswordHistoryNum(f.history)
		changed = true
	}
	if cmd.Flags().Changed("max-failures") {
		set.SetMaxFailures(f.maxFailures)
		changed = true
	}
	if cmd.Flags().Changed("failure-reset-interval") {
		set.SetFailureResetInterval(f.resetInt)
		changed = true
	}
	if cmd.Flags().Changed("lockout-duration") {
		set.SetLockoutDuration(f.lockout)
		changed = true
	}
	if cmd.Flags().Changed("allowed-keysalts") {
		if f.keysalts == "" {
			set.SetAllowedKeysalts(nil)
		} else {
			ksl, err := kadm5.ParseKeySaltList(f.keysalts)
			if err != nil {
				return false, fmt.Errorf("invalid --allowed-keysalts: %w", err)
			}
			set.SetAllowedKeysalts(ksl)
		}
		changed = true
	}
	return changed, nil
}
