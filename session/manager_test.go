package session

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelgo/models"
)

type fakeAuthAPI struct {
	tokenResult string
	tokenErr    error
	user        *models.User
	userErr     error

	tokenCalls       int
	currentUserCalls int
	lastToken        string
}

func (f *fakeAuthAPI) Token(_ context.Context, _, _ string) (string, error) {
	f.tokenCalls++
	return f.tokenResult, f.tokenErr
}

func (f *fakeAuthAPI) CurrentUser(_ context.Context, token string) (*models.User, error) {
	f.currentUserCalls++
	f.lastToken = token
	return f.user, f.userErr
}

func newTestManager(t *testing.T, api *fakeAuthAPI) (*Manager, *CredentialStore) {
	t.Helper()
	store, err := NewCredentialStore(filepath.Join(t.TempDir(), "access-token"))
	require.NoError(t, err)
	return NewManager(api, store), store
}

func signedJWT(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "1",
		"exp": exp.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestRestoreWithoutCredential(t *testing.T) {
	api := &fakeAuthAPI{}
	mgr, _ := newTestManager(t, api)

	mgr.Restore(context.Background())

	assert.Nil(t, mgr.CurrentUser())
	assert.Zero(t, api.currentUserCalls)
}

func TestRestoreSuccess(t *testing.T) {
	api := &fakeAuthAPI{user: &models.User{ID: 7, Username: "an", Role: models.RoleCustomer}}
	mgr, store := newTestManager(t, api)
	require.NoError(t, store.Write("opaque-token"))

	events := mgr.Subscribe()
	mgr.Restore(context.Background())

	require.NotNil(t, mgr.CurrentUser())
	assert.Equal(t, int64(7), mgr.CurrentUser().ID)
	assert.Equal(t, "opaque-token", mgr.Token())
	assert.Equal(t, "opaque-token", api.lastToken)

	select {
	case ev := <-events:
		require.NotNil(t, ev.User)
		assert.Equal(t, "an", ev.User.Username)
	default:
		t.Fatal("expected an identity event after restore")
	}

	// Credential survives a successful restore.
	persisted, err := store.Read()
	require.NoError(t, err)
	assert.Equal(t, "opaque-token", persisted)
}

func TestRestoreVerificationFailureIsSilent(t *testing.T) {
	api := &fakeAuthAPI{userErr: errors.New("401 unauthorized")}
	mgr, store := newTestManager(t, api)
	require.NoError(t, store.Write("stale-token"))

	mgr.Restore(context.Background())

	assert.Nil(t, mgr.CurrentUser())
	assert.Empty(t, mgr.Token())

	// Soft fail: the credential is not cleared, a transient network
	// error at launch must not destroy a valid session.
	persisted, err := store.Read()
	require.NoError(t, err)
	assert.Equal(t, "stale-token", persisted)
}

func TestRestoreSkipsVerificationForExpiredJWT(t *testing.T) {
	api := &fakeAuthAPI{user: &models.User{ID: 1}}
	mgr, store := newTestManager(t, api)
	require.NoError(t, store.Write(signedJWT(t, time.Now().Add(-time.Hour))))

	mgr.Restore(context.Background())

	assert.Nil(t, mgr.CurrentUser())
	assert.Zero(t, api.currentUserCalls, "an expired JWT must not reach the verify endpoint")
}

func TestRestoreVerifiesUnexpiredJWT(t *testing.T) {
	api := &fakeAuthAPI{user: &models.User{ID: 1}}
	mgr, store := newTestManager(t, api)
	require.NoError(t, store.Write(signedJWT(t, time.Now().Add(time.Hour))))

	mgr.Restore(context.Background())

	require.NotNil(t, mgr.CurrentUser())
	assert.Equal(t, 1, api.currentUserCalls)
}

func TestLoginSuccess(t *testing.T) {
	api := &fakeAuthAPI{
		tokenResult: "fresh-token",
		user:        &models.User{ID: 3, Username: "prov", Role: models.RoleProvider},
	}
	mgr, store := newTestManager(t, api)
	events := mgr.Subscribe()

	user, err := mgr.Login(context.Background(), "prov", "secret")
	require.NoError(t, err)
	assert.Equal(t, models.RoleProvider, user.Role)
	assert.True(t, mgr.IsProvider())
	assert.Equal(t, "fresh-token", mgr.Token())

	persisted, err := store.Read()
	require.NoError(t, err)
	assert.Equal(t, "fresh-token", persisted)

	select {
	case ev := <-events:
		require.NotNil(t, ev.User)
	default:
		t.Fatal("expected an identity event after login")
	}
}

func TestLoginFailureLeavesStateUntouched(t *testing.T) {
	api := &fakeAuthAPI{tokenErr: errors.New("invalid_grant")}
	mgr, store := newTestManager(t, api)

	_, err := mgr.Login(context.Background(), "an", "wrong")
	require.Error(t, err)
	assert.Nil(t, mgr.CurrentUser())
	assert.Empty(t, mgr.Token())

	persisted, readErr := store.Read()
	require.NoError(t, readErr)
	assert.Empty(t, persisted)
}

func TestLogoutClearsEverything(t *testing.T) {
	api := &fakeAuthAPI{tokenResult: "tok", user: &models.User{ID: 2}}
	mgr, store := newTestManager(t, api)

	_, err := mgr.Login(context.Background(), "an", "pw")
	require.NoError(t, err)

	events := mgr.Subscribe()
	require.NoError(t, mgr.Logout())

	assert.Nil(t, mgr.CurrentUser())
	assert.Empty(t, mgr.Token(), "no leftover credential may be attached to outgoing requests")
	assert.False(t, mgr.IsProvider())

	persisted, err := store.Read()
	require.NoError(t, err)
	assert.Empty(t, persisted)

	select {
	case ev := <-events:
		assert.Nil(t, ev.User)
	default:
		t.Fatal("expected an identity event after logout")
	}
}

func TestSetUserRebroadcasts(t *testing.T) {
	api := &fakeAuthAPI{tokenResult: "tok", user: &models.User{ID: 2, Email: "old@x.vn"}}
	mgr, _ := newTestManager(t, api)
	_, err := mgr.Login(context.Background(), "an", "pw")
	require.NoError(t, err)

	events := mgr.Subscribe()
	mgr.SetUser(&models.User{ID: 2, Email: "new@x.vn"})

	select {
	case ev := <-events:
		require.NotNil(t, ev.User)
		assert.Equal(t, "new@x.vn", ev.User.Email)
	default:
		t.Fatal("expected an identity event after profile update")
	}
}
