package kadm5

import (
	"sync"
	"sync/atomic"
)

// SharedClient makes a Client safe for concurrent use. All operations on
// all handles sharing the same underlying client are serialized through one
// mutex, so at most one native call is in flight at a time.
//
// Clone hands out an additional handle to the same connection. The
// underlying client is closed when the last handle is closed; closing a
// handle more than once is a no-op.
type SharedClient struct {
	state  *sharedState
	closed atomic.Bool
}

type sharedState struct {
	mu     sync.Mutex
	client *Client
	refs   atomic.Int32
}

// NewShared wraps a client for concurrent use. The caller must not use the
// wrapped client directly afterwards.
func NewShared(c *Client) *SharedClient {
	s := &sharedState{client: c}
	s.refs.Store(1)
	return &SharedClient{state: s}
}

// Clone returns a new handle to the same underlying connection.
func (s *SharedClient) Clone() *SharedClient {
	s.state.refs.Add(1)
	return &SharedClient{state: s.state}
}

// Close releases this handle. The underlying connection is closed when the
// last handle goes away.
func (s *SharedClient) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	if s.state.refs.Add(-1) > 0 {
		return nil
	}
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	return s.state.client.Close()
}

func (s *SharedClient) do(fn func(*Client) error) error {
	if s.closed.Load() {
		return errConnection("client is closed")
	}
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	return fn(s.state.client)
}

// GetPrincipal fetches a principal entry; missing principals return
// (nil, nil).
func (s *SharedClient) GetPrincipal(name string) (*Principal, error) {
	var p *Principal
	err := s.do(func(c *Client) error {
		var err error
		p, err = c.GetPrincipal(name)
		return err
	})
	return p, err
}

// PrincipalExists reports whether the named principal exists.
func (s *SharedClient) PrincipalExists(name string) (bool, error) {
	var ok bool
	err := s.do(func(c *Client) error {
		var err error
		ok, err = c.PrincipalExists(name)
		return err
	})
	return ok, err
}

// AddPrincipal creates the principal described by the builder.
func (s *SharedClient) AddPrincipal(b *PrincipalBuilder) error {
	return s.do(func(c *Client) error { return c.AddPrincipal(b) })
}

// ModifyPrincipal applies the modifier's set fields to the existing entry.
func (s *SharedClient) ModifyPrincipal(m *PrincipalModifier) error {
	return s.do(func(c *Client) error { return c.ModifyPrincipal(m) })
}

// RenamePrincipal renames a principal.
func (s *SharedClient) RenamePrincipal(oldName, newName string) error {
	return s.do(func(c *Client) error { return c.RenamePrincipal(oldName, newName) })
}

// DeletePrincipal removes a principal entry.
func (s *SharedClient) DeletePrincipal(name string) error {
	return s.do(func(c *Client) error { return c.DeletePrincipal(name) })
}

// ChangePassword sets a new password for the principal.
func (s *SharedClient) ChangePassword(name, password string) error {
	return s.do(func(c *Client) error { return c.ChangePassword(name, password) })
}

// RandKeyPrincipal replaces the principal's keys with new random keys.
func (s *SharedClient) RandKeyPrincipal(name string) error {
	return s.do(func(c *Client) error { return c.RandKeyPrincipal(name) })
}

// ListPrincipals returns principal names matching the glob pattern.
func (s *SharedClient) ListPrincipals(glob string) ([]string, error) {
	var names []string
	err := s.do(func(c *Client) error {
		var err error
		names, err = c.ListPrincipals(glob)
		return err
	})
	return names, err
}

// GetPolicy fetches a policy entry; missing policies return (nil, nil).
func (s *SharedClient) GetPolicy(name string) (*Policy, error) {
	var p *Policy
	err := s.do(func(c *Client) error {
		var err error
		p, err = c.GetPolicy(name)
		return err
	})
	return p, err
}

// PolicyExists reports whether the named policy exists.
func (s *SharedClient) PolicyExists(name string) (bool, error) {
	var ok bool
	err := s.do(func(c *Client) error {
		var err error
		ok, err = c.PolicyExists(name)
		return err
	})
	return ok, err
}

// AddPolicy creates the policy described by the builder.
func (s *SharedClient) AddPolicy(b *PolicyBuilder) error {
	return s.do(func(c *Client) error { return c.AddPolicy(b) })
}

// ModifyPolicy applies the modifier's set fields to the existing policy.
func (s *SharedClient) ModifyPolicy(m *PolicyModifier) error {
	return s.do(func(c *Client) error { return c.ModifyPolicy(m) })
}

// DeletePolicy removes a policy.
func (s *SharedClient) DeletePolicy(name string) error {
	return s.do(func(c *Client) error { return c.DeletePolicy(name) })
}

// ListPolicies returns policy names matching the glob pattern.
func (s *SharedClient) ListPolicies(glob string) ([]string, error) {
	var names []string
	err := s.do(func(c *Client) error {
		var err error
		names, err = c.ListPolicies(glob)
		return err
	})
	return names, err
}
