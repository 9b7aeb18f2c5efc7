package warm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/sprintdeck/internal/access"
	"github.com/felixgeelhaar/sprintdeck/internal/api"
	"github.com/felixgeelhaar/sprintdeck/internal/cache"
	"github.com/felixgeelhaar/sprintdeck/internal/session"
)

func testSession(role string) *session.Session {
	return &session.Session{
		Token: "token-xyz",
		User: session.User{
			ID:    "u1",
			Name:  "Dana",
			Email: "dana@example.com",
			Role:  role,
		},
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

func newTestScheduler(t *testing.T, handler http.Handler) (*Scheduler, *cache.Store) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store := cache.NewStore()
	scheduler, err := NewScheduler(SchedulerConfig{
		Client: api.NewClient(srv.URL, api.WithRetryDelay(time.Millisecond)),
		Cache:  store,
	})
	require.NoError(t, err)
	return scheduler, store
}

// backendStub answers every warming endpoint with minimal valid data.
func backendStub() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/projects", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"p1","name":"Alpha"}]`))
	})
	mux.HandleFunc("/api/v1/my-projects", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"p1","name":"Alpha"}]`))
	})
	mux.HandleFunc("/api/v1/my-tasks", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"t1","title":"Task","status":"todo"}]`))
	})
	mux.HandleFunc("/api/v1/my-notifications", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"n1","read":false}]`))
	})
	mux.HandleFunc("/api/v1/users", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"u1","name":"Dana","role":"admin"}]`))
	})
	mux.HandleFunc("/api/v1/dashboard/stats", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"projects":1,"users":1,"active_sprints":0,"open_tasks":1,"meetings":0}`))
	})
	return mux
}

func taskKeys(tasks []prefetchTask) []string {
	keys := make([]string, 0, len(tasks))
	for _, task := range tasks {
		keys = append(keys, task.key)
	}
	return keys
}

func TestTasks_AdminSchedulesStrictlyMore(t *testing.T) {
	scheduler, _ := newTestScheduler(t, backendStub())

	baseline := scheduler.Tasks(access.RoleTeamMember)
	admin := scheduler.Tasks(access.RoleAdmin)

	require.Greater(t, len(admin), len(baseline))
	assert.Subset(t, taskKeys(admin), taskKeys(baseline))
	assert.Contains(t, taskKeys(admin), cache.Key(api.KindUsers, "all"))
	assert.Contains(t, taskKeys(admin), cache.Key(api.KindStats, "dashboard"))

	for _, role := range access.Roles() {
		if role == access.RoleAdmin {
			continue
		}
		assert.Len(t, scheduler.Tasks(role), len(baseline), "role %s", role)
	}
}

func TestWarm_ReturnsBeforeFetchesResolve(t *testing.T) {
	release := make(chan struct{})
	scheduler, store := newTestScheduler(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		w.Write([]byte(`[]`))
	}))

	start := time.Now()
	pass := scheduler.Warm(context.Background(), testSession("teamMember"))
	elapsed := time.Since(start)

	assert.Less(t, elapsed, 100*time.Millisecond, "warm must not wait for fetches")
	assert.Equal(t, 0, store.Len(), "nothing cached while fetches are in flight")

	close(release)
	pass.Wait()

	assert.Equal(t, 4, store.Len())
	assert.Len(t, pass.Results(), 4)
}

func TestWarm_OneFailureDoesNotBlockSiblings(t *testing.T) {
	mux := http.NewServeMux()
	mux.Handle("/", backendStub())
	mux.HandleFunc("/api/v1/users", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	scheduler, store := newTestScheduler(t, mux)

	pass := scheduler.Warm(context.Background(), testSession("admin"))
	pass.Wait()

	results := pass.Results()
	require.Len(t, results, 6)

	var failed int
	for _, result := range results {
		if result.Err != nil {
			failed++
			assert.Equal(t, cache.Key(api.KindUsers, "all"), result.Key)
		}
	}
	assert.Equal(t, 1, failed)

	assert.Equal(t, 5, store.Len(), "siblings settle despite the failure")
	_, ok := store.Read(cache.Key(api.KindUsers, "all"))
	assert.False(t, ok, "failed prefetch stores nothing")
	_, ok = store.Read(cache.Key(api.KindStats, "dashboard"))
	assert.True(t, ok)
}

func TestWarm_SecondPassReportsUnchangedData(t *testing.T) {
	scheduler, _ := newTestScheduler(t, backendStub())

	first := scheduler.Warm(context.Background(), testSession("teamMember"))
	first.Wait()
	for _, result := range first.Results() {
		assert.True(t, result.Changed, "first pass populates every key")
	}

	second := scheduler.Warm(context.Background(), testSession("teamMember"))
	second.Wait()
	for _, result := range second.Results() {
		assert.False(t, result.Changed, "identical data refreshes without change")
	}
}

func TestWarm_InvalidSessionSettlesEmpty(t *testing.T) {
	scheduler, store := newTestScheduler(t, backendStub())

	pass := scheduler.Warm(context.Background(), nil)
	pass.Wait()
	assert.Empty(t, pass.Results())

	expired := testSession("teamMember")
	expired.ExpiresAt = time.Now().Add(-time.Minute)
	pass = scheduler.Warm(context.Background(), expired)
	pass.Wait()
	assert.Empty(t, pass.Results())
	assert.Equal(t, 0, store.Len())
}

func TestDeleteInvalidatesKindAndRelistDropsEntry(t *testing.T) {
	projects := map[string]api.Project{
		"p1": {ID: "p1", Name: "Alpha"},
		"p2": {ID: "p2", Name: "Beta"},
	}

	mux := http.NewServeMux()
	mux.Handle("/", backendStub())
	mux.HandleFunc("/api/v1/projects", func(w http.ResponseWriter, r *http.Request) {
		list := make([]api.Project, 0, len(projects))
		for _, p := range projects {
			list = append(list, p)
		}
		json.NewEncoder(w).Encode(list)
	})
	mux.HandleFunc("/api/v1/projects/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			delete(projects, r.PathValue("id"))
			w.WriteHeader(http.StatusNoContent)
			return
		}
		http.NotFound(w, r)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client := api.NewClient(srv.URL, api.WithRetryDelay(time.Millisecond))
	store := cache.NewStore()
	scheduler, err := NewScheduler(SchedulerConfig{Client: client, Cache: store})
	require.NoError(t, err)

	scheduler.Warm(context.Background(), testSession("teamMember")).Wait()

	cached, ok := store.Read(cache.Key(api.KindProjects, "all"))
	require.True(t, ok)
	require.Len(t, cached.([]api.Project), 2)

	require.NoError(t, client.DeleteProject(context.Background(), "p2"))
	store.InvalidateKind(api.KindProjects)

	_, ok = store.Read(cache.Key(api.KindProjects, "all"))
	assert.False(t, ok, "mutation invalidates every scope of the kind")

	scheduler.Warm(context.Background(), testSession("teamMember")).Wait()

	cached, ok = store.Read(cache.Key(api.KindProjects, "all"))
	require.True(t, ok)
	relisted := cached.([]api.Project)
	require.Len(t, relisted, 1)
	assert.Equal(t, "p1", relisted[0].ID)
}
