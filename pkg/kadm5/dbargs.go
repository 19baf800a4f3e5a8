package kadm5

// DBArgs collects database-specific arguments passed to the server at
// connection time, such as the LDAP backend's binddn. Arguments keep
// insertion order.
type DBArgs struct {
	args []string
}

// Add appends a name=value argument.
func (d *DBArgs) Add(name, value string) {
	d.args = append(d.args, name+"="+value)
}

// AddFlag appends a bare argument with no value.
func (d *DBArgs) AddFlag(name string) {
	d.args = append(d.args, name)
}

// Len returns the number of arguments.
func (d *DBArgs) Len() int { return len(d.args) }

// Strings returns the arguments in wire form, in insertion order.
func (d *DBArgs) Strings() []string {
	if len(d.args) == 0 {
		return nil
	}
	out := make([]string, len(d.args))
	copy(out, d.args)
	return out
}
