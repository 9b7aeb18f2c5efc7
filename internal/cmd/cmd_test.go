package cmd

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/sprintdeck/internal/api"
	"github.com/felixgeelhaar/sprintdeck/internal/cache"
	"github.com/felixgeelhaar/sprintdeck/internal/config"
	"github.com/felixgeelhaar/sprintdeck/internal/session"
)

// setupApp wires the shared state against a stub backend, bypassing
// config files and the real session file.
func setupApp(t *testing.T, handler http.Handler, loggedIn bool) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	resetApp()
	t.Cleanup(resetApp)

	cfg := config.DefaultConfig()
	cfg.APIURL = srv.URL
	appConfig = &cfg

	apiClient = api.NewClient(srv.URL, api.WithRetryDelay(time.Millisecond))
	sessStore = session.NewMemoryStore()
	cacheStore = cache.NewStore()

	if loggedIn {
		require.NoError(t, sessStore.Save(&session.Session{
			Token: "token-abc",
			User: session.User{
				ID:    "u1",
				Name:  "Dana",
				Email: "dana@example.com",
				Role:  "admin",
			},
			ExpiresAt: time.Now().Add(time.Hour),
		}))
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func TestProjectList(t *testing.T) {
	setupApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer token-abc", r.Header.Get("Authorization"))
		w.Write([]byte(`[{"id":"p1","name":"Alpha"}]`))
	}), true)

	out, err := execute(t, "project", "list", "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, "Alpha")
}

func TestProjectList_ServedFromCache(t *testing.T) {
	var calls int
	setupApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`[{"id":"p1","name":"Alpha"}]`))
	}), true)

	_, err := execute(t, "project", "list", "-o", "json")
	require.NoError(t, err)
	_, err = execute(t, "project", "list", "-o", "json")
	require.NoError(t, err)

	assert.Equal(t, 1, calls, "second list must hit the cache")
}

func TestProjectList_RequiresSession(t *testing.T) {
	setupApp(t, http.NotFoundHandler(), false)

	_, err := execute(t, "project", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "auth login")
}

func TestProjectCreate_InvalidatesProjectCache(t *testing.T) {
	setupApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"p9","name":"Gamma"}`))
	}), true)

	key := cache.Key(api.KindProjects, "all")
	_, err := cacheStore.Prefetch(context.Background(), key, time.Minute, func(ctx context.Context) (any, error) {
		return []api.Project{{ID: "p1"}}, nil
	})
	require.NoError(t, err)

	out, err := execute(t, "project", "create", "Gamma")
	require.NoError(t, err)
	assert.Contains(t, out, "Created project Gamma")

	_, ok := cacheStore.Read(key)
	assert.False(t, ok, "create must invalidate cached project lists")
}

func TestTaskMove_RejectsUnknownStatus(t *testing.T) {
	setupApp(t, http.NotFoundHandler(), true)

	_, err := execute(t, "task", "move", "t1", "blocked")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown status")
}

func TestAuthLogin(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"access_token":"token-new","user":{"id":"u1","name":"Dana","role":"teamMember"}}`))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})
	setupApp(t, mux, false)

	out, err := execute(t, "auth", "login", "--email", "dana@example.com", "--password", "pw")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as Dana")
	assert.Contains(t, out, "My Tasks", "login prints the role navigation")

	sess, err := sessStore.Load()
	require.NoError(t, err)
	assert.Equal(t, "token-new", sess.Token)
}

func TestAuthLogin_WarmsCache(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"access_token":"token-new","user":{"id":"u1","name":"Dana","role":"teamMember"}}`))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})
	setupApp(t, mux, false)

	_, err := execute(t, "auth", "login", "--email", "dana@example.com", "--password", "pw")
	require.NoError(t, err)

	_, ok := cacheStore.Read(cache.Key(api.KindProjects, "mine"))
	assert.True(t, ok, "login warms the baseline queries")
	_, ok = cacheStore.Read(cache.Key(api.KindUsers, "all"))
	assert.False(t, ok, "non-admins do not warm the user roster")
}

func TestAuthRegister_WarmsCache(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/auth/register", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"u2","name":"Rae","email":"rae@example.com","role":"teamMember"}`))
	})
	mux.HandleFunc("/api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"access_token":"token-new","user":{"id":"u2","name":"Rae","role":"teamMember"}}`))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})
	setupApp(t, mux, false)

	out, err := execute(t, "auth", "register", "--name", "Rae", "--email", "rae@example.com", "--password", "pw")
	require.NoError(t, err)
	assert.Contains(t, out, "Registration successful!")
	assert.Contains(t, out, "My Tasks", "registration prints the role navigation like login")

	_, ok := cacheStore.Read(cache.Key(api.KindProjects, "mine"))
	assert.True(t, ok, "registration warms the baseline queries")
	_, ok = cacheStore.Read(cache.Key(api.KindUsers, "all"))
	assert.False(t, ok, "non-admins do not warm the user roster")
}

func TestAuthLogout_ClearsSessionAndCache(t *testing.T) {
	setupApp(t, http.NotFoundHandler(), true)

	_, err := cacheStore.Prefetch(context.Background(), cache.Key(api.KindProjects, "all"), time.Minute,
		func(ctx context.Context) (any, error) { return []api.Project{{ID: "p1"}}, nil })
	require.NoError(t, err)

	out, err := execute(t, "auth", "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged out.")

	_, err = sessStore.Load()
	require.Error(t, err)
	assert.Equal(t, 0, cacheStore.Len())
}

func TestAuthStatus_NotLoggedIn(t *testing.T) {
	setupApp(t, http.NotFoundHandler(), false)

	out, err := execute(t, "auth", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Not logged in.")
}

func TestNav_AdminSeesElevatedEntries(t *testing.T) {
	setupApp(t, http.NotFoundHandler(), true)

	out, err := execute(t, "nav")
	require.NoError(t, err)
	assert.Contains(t, out, "Users")
	assert.Contains(t, out, "Reports")
}
