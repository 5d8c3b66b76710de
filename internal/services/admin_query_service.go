package services

import (
	"context"
	"log"
	"sync"

	"trading-admin-backend/internal/cache"
	"trading-admin-backend/internal/metrics"
	"trading-admin-backend/internal/models"
	"trading-admin-backend/internal/nats"
	"trading-admin-backend/internal/repositories"
	"trading-admin-backend/internal/scope"
)

// AdminQueryService serves the six dashboard queries through the query
// cache. Every method takes the caller's access scope explicitly; nothing
// is read from ambient state.
type AdminQueryService struct {
	repos     *repositories.Repositories
	cache     *cache.QueryCache
	metrics   *metrics.Metrics
	publisher *nats.Publisher
}

// NewAdminQueryService creates a new admin query service
func NewAdminQueryService(repos *repositories.Repositories, qc *cache.QueryCache, m *metrics.Metrics, publisher *nats.Publisher) *AdminQueryService {
	return &AdminQueryService{
		repos:     repos,
		cache:     qc,
		metrics:   m,
		publisher: publisher,
	}
}

// cachedQuery runs one dashboard query through the cache. An unresolved
// scope disables the query: no fetch happens, and a cached value of any
// age is returned when one exists.
func cachedQuery[T any](ctx context.Context, s *AdminQueryService, resource string, sc scope.AccessScope, fetch func(context.Context) (T, error)) (T, error) {
	key := cache.Key(resource, sc)

	if !sc.Ready() {
		if value, ok := cache.Lookup[T](ctx, s.cache, key); ok {
			return value, nil
		}
		var zero T
		return zero, repositories.ErrScopeNotResolved
	}

	if sc.Empty() && s.metrics != nil {
		s.metrics.ScopeEmptyShortcut.WithLabelValues(resource).Inc()
	}

	value, err := cache.Fetch(ctx, s.cache, key, fetch)
	if s.metrics != nil {
		outcome := "success"
		if err != nil {
			outcome = "error"
		}
		s.metrics.AdminQueriesTotal.WithLabelValues(resource, outcome).Inc()
	}
	return value, err
}

// DashboardStats returns the scoped landing-page aggregates.
func (s *AdminQueryService) DashboardStats(ctx context.Context, sc scope.AccessScope) (*models.DashboardStats, error) {
	return cachedQuery(ctx, s, cache.ResourceStats, sc, func(ctx context.Context) (*models.DashboardStats, error) {
		return s.repos.Stats.DashboardStats(ctx, sc)
	})
}

// ListUsers returns the users visible under the scope.
func (s *AdminQueryService) ListUsers(ctx context.Context, sc scope.AccessScope) ([]*models.User, error) {
	return cachedQuery(ctx, s, cache.ResourceUsers, sc, func(ctx context.Context) ([]*models.User, error) {
		return s.repos.User.ListVisible(ctx, sc)
	})
}

// ListTrades returns the most recent trades visible under the scope.
func (s *AdminQueryService) ListTrades(ctx context.Context, sc scope.AccessScope) ([]*models.Trade, error) {
	return cachedQuery(ctx, s, cache.ResourceTrades, sc, func(ctx context.Context) ([]*models.Trade, error) {
		return s.repos.Trade.ListVisible(ctx, sc)
	})
}

// ListRechargeCodes returns the recharge codes visible under the scope.
func (s *AdminQueryService) ListRechargeCodes(ctx context.Context, sc scope.AccessScope) ([]*models.RechargeCode, error) {
	return cachedQuery(ctx, s, cache.ResourceRechargeCodes, sc, func(ctx context.Context) ([]*models.RechargeCode, error) {
		return s.repos.RechargeCode.ListVisible(ctx, sc)
	})
}

// ListBalances returns the user balances visible under the scope.
func (s *AdminQueryService) ListBalances(ctx context.Context, sc scope.AccessScope) ([]*models.UserBalance, error) {
	return cachedQuery(ctx, s, cache.ResourceBalances, sc, func(ctx context.Context) ([]*models.UserBalance, error) {
		return s.repos.Balance.ListVisible(ctx, sc)
	})
}

// ListWithdrawRequests returns the withdraw requests visible under the scope.
func (s *AdminQueryService) ListWithdrawRequests(ctx context.Context, sc scope.AccessScope) ([]*models.WithdrawRequest, error) {
	return cachedQuery(ctx, s, cache.ResourceWithdrawals, sc, func(ctx context.Context) ([]*models.WithdrawRequest, error) {
		return s.repos.Withdraw.ListVisible(ctx, sc)
	})
}

// PrefetchAll warms all six cache entries concurrently with the same keys
// the individual queries use. A no-op when the actor is unknown or scope
// resolution is pending. Sibling fetches are independent: a failing fetch
// is logged and swallowed, never cancelling the others.
func (s *AdminQueryService) PrefetchAll(ctx context.Context, sc scope.AccessScope) {
	if !sc.ActorKnown() || !sc.Ready() {
		if s.metrics != nil {
			s.metrics.PrefetchRunsTotal.WithLabelValues("skipped").Inc()
		}
		return
	}

	warmers := map[string]func(context.Context) error{
		cache.ResourceStats: func(ctx context.Context) error {
			_, err := s.DashboardStats(ctx, sc)
			return err
		},
		cache.ResourceUsers: func(ctx context.Context) error {
			_, err := s.ListUsers(ctx, sc)
			return err
		},
		cache.ResourceTrades: func(ctx context.Context) error {
			_, err := s.ListTrades(ctx, sc)
			return err
		},
		cache.ResourceRechargeCodes: func(ctx context.Context) error {
			_, err := s.ListRechargeCodes(ctx, sc)
			return err
		},
		cache.ResourceBalances: func(ctx context.Context) error {
			_, err := s.ListBalances(ctx, sc)
			return err
		},
		cache.ResourceWithdrawals: func(ctx context.Context) error {
			_, err := s.ListWithdrawRequests(ctx, sc)
			return err
		},
	}

	var wg sync.WaitGroup
	var failed int64
	var mu sync.Mutex
	resources := make([]string, 0, len(warmers))

	for resource, warm := range warmers {
		resources = append(resources, resource)
		wg.Add(1)
		go func(resource string, warm func(context.Context) error) {
			defer wg.Done()
			if err := warm(ctx); err != nil {
				log.Printf("prefetch of %s failed: %v", resource, err)
				mu.Lock()
				failed++
				mu.Unlock()
			}
		}(resource, warm)
	}
	wg.Wait()

	if s.metrics != nil {
		s.metrics.PrefetchRunsTotal.WithLabelValues("completed").Inc()
	}
	if err := s.publisher.CacheWarmed(ctx, *sc.ActorID, resources, int(failed)); err != nil {
		log.Printf("failed to publish cache warmed event: %v", err)
	}
}
