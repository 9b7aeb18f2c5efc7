package warm

import (
	"context"
	"sync"
	"time"

	"github.com/felixgeelhaar/sprintdeck/internal/access"
	"github.com/felixgeelhaar/sprintdeck/internal/api"
	"github.com/felixgeelhaar/sprintdeck/internal/cache"
	"github.com/felixgeelhaar/sprintdeck/internal/config"
	"github.com/felixgeelhaar/sprintdeck/internal/errors"
	"github.com/felixgeelhaar/sprintdeck/internal/log"
	"github.com/felixgeelhaar/sprintdeck/internal/session"
)

// Scheduler eagerly populates the query cache after authentication.
//
// Warming is an optimization, never a requirement for correctness: a
// failed prefetch leaves its sibling tasks running, leaves the cache
// entry absent, and is invisible to the user. Views fall back to direct
// gateway calls on a cache miss.
type Scheduler struct {
	client    *api.Client
	cache     *cache.Store
	logger    *log.Logger
	freshness config.Freshness
}

// SchedulerConfig holds configuration for the warming scheduler.
type SchedulerConfig struct {
	Client    *api.Client
	Cache     *cache.Store
	Logger    *log.Logger
	Freshness config.Freshness
}

// NewScheduler creates a new warming scheduler.
func NewScheduler(cfg SchedulerConfig) (*Scheduler, error) {
	if cfg.Client == nil {
		return nil, errors.New(errors.ErrCodeConfigInvalid, "client is required")
	}
	if cfg.Cache == nil {
		return nil, errors.New(errors.ErrCodeConfigInvalid, "cache is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = log.DefaultLogger()
	}
	if cfg.Freshness == (config.Freshness{}) {
		cfg.Freshness = config.DefaultConfig().Freshness
	}

	return &Scheduler{
		client:    cfg.Client,
		cache:     cfg.Cache,
		logger:    cfg.Logger,
		freshness: cfg.Freshness,
	}, nil
}

// prefetchTask is one keyed fetch of a warming pass.
type prefetchTask struct {
	key   string
	ttl   time.Duration
	fetch cache.Fetcher
}

// Result records the outcome of one prefetch task, for telemetry only.
type Result struct {
	Key     string
	Changed bool
	Err     error
}

// Pass observes the settle-all join of a warming pass. Individual
// failures are tolerated; Wait never reports an error.
type Pass struct {
	mu      sync.Mutex
	results []Result
	done    chan struct{}
}

// Wait blocks until every prefetch task of the pass has settled.
func (p *Pass) Wait() {
	<-p.done
}

// WaitContext blocks until the pass settles or the context ends.
func (p *Pass) WaitContext(ctx context.Context) {
	select {
	case <-p.done:
	case <-ctx.Done():
	}
}

// Results returns the settled task outcomes. Call after Wait.
func (p *Pass) Results() []Result {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Result, len(p.results))
	copy(out, p.results)
	return out
}

func (p *Pass) record(result Result) {
	p.mu.Lock()
	p.results = append(p.results, result)
	p.mu.Unlock()
}

// Tasks returns the prefetch tasks scheduled for a role: a baseline
// set for everyone plus an elevated set for admins.
func (s *Scheduler) Tasks(role access.Role) []prefetchTask {
	tasks := []prefetchTask{
		{
			key: cache.Key(api.KindProjects, "all"),
			ttl: s.freshness.Projects,
			fetch: func(ctx context.Context) (any, error) {
				return s.client.ListProjects(ctx)
			},
		},
		{
			key: cache.Key(api.KindProjects, "mine"),
			ttl: s.freshness.Projects,
			fetch: func(ctx context.Context) (any, error) {
				return s.client.ListMyProjects(ctx)
			},
		},
		{
			key: cache.Key(api.KindTasks, "mine"),
			ttl: s.freshness.Tasks,
			fetch: func(ctx context.Context) (any, error) {
				return s.client.ListMyTasks(ctx)
			},
		},
		{
			key: cache.Key(api.KindNotifications, "mine"),
			ttl: s.freshness.Notifications,
			fetch: func(ctx context.Context) (any, error) {
				return s.client.ListMyNotifications(ctx)
			},
		},
	}

	if role == access.RoleAdmin {
		tasks = append(tasks,
			prefetchTask{
				key: cache.Key(api.KindUsers, "all"),
				ttl: s.freshness.Users,
				fetch: func(ctx context.Context) (any, error) {
					return s.client.ListUsers(ctx)
				},
			},
			prefetchTask{
				key: cache.Key(api.KindStats, "dashboard"),
				ttl: s.freshness.Stats,
				fetch: func(ctx context.Context) (any, error) {
					stats, err := s.client.GetDashboardStats(ctx)
					if err != nil {
						return nil, err
					}
					return *stats, nil
				},
			},
		)
	}

	return tasks
}

// Warm launches one warming pass for the session and returns without
// waiting for any fetch to resolve. All tasks run concurrently with no
// ordering between them; a second pass racing this one simply
// overwrites per key, which freshness windows make acceptable.
//
// The returned Pass is for tests and telemetry; callers of the login
// flow are free to ignore it.
func (s *Scheduler) Warm(ctx context.Context, sess *session.Session) *Pass {
	pass := &Pass{done: make(chan struct{})}

	if sess == nil || !sess.IsValid() {
		close(pass.done)
		return pass
	}

	role := access.ParseRole(sess.User.Role)
	tasks := s.Tasks(role)

	var wg sync.WaitGroup
	for _, task := range tasks {
		wg.Add(1)
		go func(task prefetchTask) {
			defer wg.Done()

			changed, err := s.cache.Prefetch(ctx, task.key, task.ttl, task.fetch)
			if err != nil {
				// Absorbed: warming failures never reach the login flow
				s.logger.Debug("prefetch failed", "key", task.key, "error", err.Error())
			}
			pass.record(Result{Key: task.key, Changed: changed, Err: err})
		}(task)
	}

	go func() {
		wg.Wait()
		s.logger.Debug("warming pass settled", "tasks", len(tasks), "role", string(role))
		close(pass.done)
	}()

	return pass
}
