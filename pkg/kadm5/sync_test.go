package kadm5

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krb5go/kadm5/internal/native"
)

// countingBackend wraps fakeBackend and fails the test if two native calls
// ever overlap in time.
type countingBackend struct {
	*fakeBackend
	t        *testing.T
	inflight atomic.Int32
	calls    atomic.Int64
}

func (c *countingBackend) enter() func() {
	if c.inflight.Add(1) != 1 {
		c.t.Error("concurrent native calls detected")
	}
	c.calls.Add(1)
	return func() { c.inflight.Add(-1) }
}

func (c *countingBackend) GetPrincipal(name string) (*native.PrincipalRecord, error) {
	defer c.enter()()
	return c.fakeBackend.GetPrincipal(name)
}

func (c *countingBackend) CreatePrincipal(rec *native.PrincipalRecord, mask int64, password string) error {
	defer c.enter()()
	return c.fakeBackend.CreatePrincipal(rec, mask, password)
}

func (c *countingBackend) DeletePrincipal(name string) error {
	defer c.enter()()
	return c.fakeBackend.DeletePrincipal(name)
}

func (c *countingBackend) ListPrincipals(glob string) ([]string, error) {
	defer c.enter()()
	return c.fakeBackend.ListPrincipals(glob)
}

func (c *countingBackend) Close() error {
	defer c.enter()()
	return c.fakeBackend.Close()
}

// ============================================================================
// SharedClient Serialization Tests
// ============================================================================

func TestSharedClientSerializesCalls(t *testing.T) {
	t.Parallel()

	const goroutines = 16
	const opsPerGoroutine = 50

	be := &countingBackend{fakeBackend: newFakeBackend(), t: t}
	be.principals["alice@EXAMPLE.ORG"] = &native.PrincipalRecord{Name: "alice@EXAMPLE.ORG"}
	shared := NewShared(&Client{be: be})

	var wg sync.WaitGroup
	for range goroutines {
		handle := shared.Clone()
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer handle.Close()
			for range opsPerGoroutine {
				_, err := handle.GetPrincipal("alice@EXAMPLE.ORG")
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(goroutines*opsPerGoroutine), be.calls.Load(),
		"every operation reaches the backend exactly once")
	assert.Equal(t, 0, be.closed, "original handle still open")

	require.NoError(t, shared.Close())
	assert.Equal(t, 1, be.closed)
}

// ============================================================================
// SharedClient Lifecycle Tests
// ============================================================================

func TestSharedClientCloneKeepsConnectionAlive(t *testing.T) {
	t.Parallel()

	be := newFakeBackend()
	shared := NewShared(&Client{be: be})
	clone := shared.Clone()

	require.NoError(t, shared.Close())
	assert.Equal(t, 0, be.closed, "a live clone holds the connection open")

	_, err := clone.ListPrincipals("")
	require.NoError(t, err, "clone still works after sibling close")

	require.NoError(t, clone.Close())
	assert.Equal(t, 1, be.closed, "last close destroys the connection")
}

func TestSharedClientDoubleCloseIsNoOp(t *testing.T) {
	t.Parallel()

	be := newFakeBackend()
	shared := NewShared(&Client{be: be})
	clone := shared.Clone()

	require.NoError(t, shared.Close())
	require.NoError(t, shared.Close())
	require.NoError(t, shared.Close())

	assert.Equal(t, 0, be.closed, "repeated closes release only one reference")

	require.NoError(t, clone.Close())
	assert.Equal(t, 1, be.closed)
}

func TestSharedClientClosedHandleRejectsOperations(t *testing.T) {
	t.Parallel()

	be := newFakeBackend()
	shared := NewShared(&Client{be: be})
	clone := shared.Clone()
	require.NoError(t, shared.Close())

	_, err := shared.GetPrincipal("alice@EXAMPLE.ORG")
	assert.True(t, IsConnection(err), "closed handle stops issuing calls")

	_, err = clone.GetPrincipal("alice@EXAMPLE.ORG")
	assert.NoError(t, err, "sibling handle unaffected")

	require.NoError(t, clone.Close())
}

func TestSharedClientConcurrentClones(t *testing.T) {
	t.Parallel()

	be := newFakeBackend()
	shared := NewShared(&Client{be: be})

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			handle := shared.Clone()
			_, err := handle.ListPolicies("")
			assert.NoError(t, err)
			assert.NoError(t, handle.Close())
		}()
	}
	wg.Wait()

	assert.Equal(t, 0, be.closed)
	require.NoError(t, shared.Close())
	assert.Equal(t, 1, be.closed)
}

// ============================================================================
// SharedClient Operation Coverage Tests
// ============================================================================

func TestSharedClientFullOperationSet(t *testing.T) {
	t.Parallel()

	be := newFakeBackend()
	shared := NewShared(&Client{be: be})
	defer shared.Close()

	b := NewPrincipal("alice@EXAMPLE.ORG")
	b.Password("hunter2")
	require.NoError(t, shared.AddPrincipal(b))

	ok, err := shared.PrincipalExists("alice@EXAMPLE.ORG")
	require.NoError(t, err)
	assert.True(t, ok)

	m := ModifyPrincipalEntry("alice@EXAMPLE.ORG")
	m.SetAttributes(RequiresPreAuth)
	require.NoError(t, shared.ModifyPrincipal(m))

	require.NoError(t, shared.ChangePassword("alice@EXAMPLE.ORG", "correct horse"))
	require.NoError(t, shared.RandKeyPrincipal("alice@EXAMPLE.ORG"))
	require.NoError(t, shared.RenamePrincipal("alice@EXAMPLE.ORG", "bob@EXAMPLE.ORG"))

	names, err := shared.ListPrincipals("")
	require.NoError(t, err)
	assert.Equal(t, []string{"bob@EXAMPLE.ORG"}, names)

	require.NoError(t, shared.DeletePrincipal("bob@EXAMPLE.ORG"))

	pb := NewPolicy("default")
	require.NoError(t, shared.AddPolicy(pb))

	ok, err = shared.PolicyExists("default")
	require.NoError(t, err)
	assert.True(t, ok)

	pm := ModifyPolicyEntry("default")
	pm.SetPasswordMinLength(12)
	require.NoError(t, shared.ModifyPolicy(pm))

	policy, err := shared.GetPolicy("default")
	require.NoError(t, err)
	require.NotNil(t, policy)
	assert.Equal(t, 12, policy.PasswordMinLength())

	names, err = shared.ListPolicies("")
	require.NoError(t, err)
	assert.Equal(t, []string{"default"}, names)

	require.NoError(t, shared.DeletePolicy("default"))
}
