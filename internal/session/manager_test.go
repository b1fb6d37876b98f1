package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	mu       sync.Mutex
	sessions map[string]Session

	getErr    error
	deleteErr error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{sessions: map[string]Session{}}
}

func (m *memoryStore) Create(ctx context.Context, s Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return nil
}

func (m *memoryStore) Get(ctx context.Context, sessionID string) (*Session, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (m *memoryStore) Delete(ctx context.Context, sessionID string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
	return nil
}

type fakeIdentities struct {
	emails map[string]bool
	err    error
}

func (f *fakeIdentities) Exists(ctx context.Context, email string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.emails[email], nil
}

func newTestManager(store Store, identities *fakeIdentities, ttl time.Duration) *Manager {
	if identities == nil {
		identities = &fakeIdentities{emails: map[string]bool{"bob@test.com": true}}
	}
	return NewManager(store, identities, ttl)
}

func TestEstablishThenResolve(t *testing.T) {
	store := newMemoryStore()
	m := newTestManager(store, nil, time.Hour)
	ctx := context.Background()

	sess, err := m.Establish(ctx, "bob@test.com", "")
	require.NoError(t, err)
	require.NotEmpty(t, sess.ID)
	assert.Equal(t, "bob@test.com", sess.Subject)
	assert.WithinDuration(t, sess.CreatedAt.Add(time.Hour), sess.ExpiresAt, time.Second)

	subject, err := m.Resolve(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "bob@test.com", subject)
}

func TestEstablishReplacesPriorSession(t *testing.T) {
	store := newMemoryStore()
	m := newTestManager(store, nil, time.Hour)
	ctx := context.Background()

	prior, err := m.Establish(ctx, "bob@test.com", "")
	require.NoError(t, err)

	next, err := m.Establish(ctx, "bob@test.com", prior.ID)
	require.NoError(t, err)
	assert.NotEqual(t, prior.ID, next.ID)

	// the pre-login handle must not stay valid post-login
	subject, err := m.Resolve(ctx, prior.ID)
	require.NoError(t, err)
	assert.Empty(t, subject)

	subject, err = m.Resolve(ctx, next.ID)
	require.NoError(t, err)
	assert.Equal(t, "bob@test.com", subject)
}

func TestResolveUnknownHandle(t *testing.T) {
	m := newTestManager(newMemoryStore(), nil, time.Hour)

	subject, err := m.Resolve(context.Background(), "no-such-session")
	require.NoError(t, err)
	assert.Empty(t, subject)

	subject, err = m.Resolve(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, subject)
}

func TestResolveExpiredSession(t *testing.T) {
	store := newMemoryStore()
	m := newTestManager(store, nil, -time.Minute) // already expired at creation
	ctx := context.Background()

	sess, err := m.Establish(ctx, "bob@test.com", "")
	require.NoError(t, err)

	subject, err := m.Resolve(ctx, sess.ID)
	require.NoError(t, err)
	assert.Empty(t, subject)

	// expired sessions are removed from the store, not just ignored
	_, ok := store.sessions[sess.ID]
	assert.False(t, ok)
}

func TestResolveInvalidatesWhenIdentityGone(t *testing.T) {
	store := newMemoryStore()
	identities := &fakeIdentities{emails: map[string]bool{"bob@test.com": true}}
	m := newTestManager(store, identities, time.Hour)
	ctx := context.Background()

	sess, err := m.Establish(ctx, "bob@test.com", "")
	require.NoError(t, err)

	// identity removed out of band while the session is still unexpired
	identities.emails["bob@test.com"] = false

	subject, err := m.Resolve(ctx, sess.ID)
	require.NoError(t, err)
	assert.Empty(t, subject)

	_, ok := store.sessions[sess.ID]
	assert.False(t, ok)
}

func TestResolveFailsClosedOnStorageError(t *testing.T) {
	store := newMemoryStore()
	m := newTestManager(store, nil, time.Hour)
	ctx := context.Background()

	sess, err := m.Establish(ctx, "bob@test.com", "")
	require.NoError(t, err)

	store.getErr = errors.New("connection reset")

	subject, err := m.Resolve(ctx, sess.ID)
	assert.Error(t, err)
	assert.Empty(t, subject)
}

func TestResolveFailsClosedOnIdentityCheckError(t *testing.T) {
	store := newMemoryStore()
	identities := &fakeIdentities{emails: map[string]bool{"bob@test.com": true}}
	m := newTestManager(store, identities, time.Hour)
	ctx := context.Background()

	sess, err := m.Establish(ctx, "bob@test.com", "")
	require.NoError(t, err)

	identities.err = errors.New("connection reset")

	subject, err := m.Resolve(ctx, sess.ID)
	assert.Error(t, err)
	assert.Empty(t, subject)
}

func TestTerminateIsIdempotent(t *testing.T) {
	store := newMemoryStore()
	m := newTestManager(store, nil, time.Hour)
	ctx := context.Background()

	sess, err := m.Establish(ctx, "bob@test.com", "")
	require.NoError(t, err)

	require.NoError(t, m.Terminate(ctx, sess.ID))

	subject, err := m.Resolve(ctx, sess.ID)
	require.NoError(t, err)
	assert.Empty(t, subject)

	// terminating an already-gone session is not an error
	require.NoError(t, m.Terminate(ctx, sess.ID))
	require.NoError(t, m.Terminate(ctx, ""))
}

func TestGenerateIDIsUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id, err := GenerateID()
		require.NoError(t, err)
		require.False(t, seen[id])
		seen[id] = true
	}
}
