package services

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"trading-admin-backend/internal/cache"
	"trading-admin-backend/internal/models"
	"trading-admin-backend/internal/repositories"
	"trading-admin-backend/internal/scope"
	"trading-admin-backend/test/fixtures"
	"trading-admin-backend/test/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// memStore is an in-memory cache.Store for service tests.
type memStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string][]byte)}
}

func (s *memStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.data[key]
	return data, ok, nil
}

func (s *memStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

func (s *memStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

type AdminQueryServiceTestSuite struct {
	suite.Suite
	repos   *repositories.Repositories
	store   *memStore
	service *AdminQueryService
	ctx     context.Context
}

func (suite *AdminQueryServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.store = newMemStore()
	suite.repos = &repositories.Repositories{
		User:         &mocks.MockUserRepository{},
		Trade:        &mocks.MockTradeRepository{},
		RechargeCode: &mocks.MockRechargeCodeRepository{},
		Balance:      &mocks.MockBalanceRepository{},
		Withdraw:     &mocks.MockWithdrawRepository{},
		Stats:        &mocks.MockStatsRepository{},
		AdminAccess:  &mocks.MockAdminAccessRepository{},
	}
	suite.service = NewAdminQueryService(suite.repos, cache.New(suite.store, nil), nil, nil)
}

func (suite *AdminQueryServiceTestSuite) userRepo() *mocks.MockUserRepository {
	return suite.repos.User.(*mocks.MockUserRepository)
}

// seedCacheEntry plants a cache envelope under the exact key the service
// derives for the given resource and scope.
func (suite *AdminQueryServiceTestSuite) seedCacheEntry(resource string, sc scope.AccessScope, value interface{}, fetchedAt time.Time) {
	payload, err := json.Marshal(value)
	require.NoError(suite.T(), err)
	env := struct {
		FetchedAt time.Time       `json:"fetched_at"`
		Payload   json.RawMessage `json:"payload"`
	}{FetchedAt: fetchedAt, Payload: payload}
	data, err := json.Marshal(&env)
	require.NoError(suite.T(), err)
	require.NoError(suite.T(), suite.store.Set(suite.ctx, cache.Key(resource, sc), data, cache.RetentionTime))
}

func (suite *AdminQueryServiceTestSuite) TestListUsers_FetchesAndCaches() {
	sc := scope.FullAccessScope(fixtures.SuperAdminID)
	expected := fixtures.Users()

	suite.userRepo().On("ListVisible", mock.Anything, sc).Return(expected, nil).Once()

	users, err := suite.service.ListUsers(suite.ctx, sc)
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), users, 3)

	// Second call is served from the cache; the mock's Once() would fail
	// on a second backend hit.
	users, err = suite.service.ListUsers(suite.ctx, sc)
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), users, 3)

	suite.userRepo().AssertExpectations(suite.T())
}

func (suite *AdminQueryServiceTestSuite) TestListUsers_UnresolvedScopeNoCache() {
	sc := scope.PendingScope(&fixtures.AdminID)

	_, err := suite.service.ListUsers(suite.ctx, sc)

	assert.ErrorIs(suite.T(), err, repositories.ErrScopeNotResolved)
	suite.userRepo().AssertNotCalled(suite.T(), "ListVisible", mock.Anything, mock.Anything)
}

func (suite *AdminQueryServiceTestSuite) TestListUsers_UnresolvedScopeServesStaleCache() {
	sc := scope.PendingScope(&fixtures.AdminID)
	stale := fixtures.Users()[:1]

	// Even an entry far past its freshness window is served while the
	// scope resolves.
	suite.seedCacheEntry(cache.ResourceUsers, sc, stale, time.Now().Add(-2*time.Hour))

	users, err := suite.service.ListUsers(suite.ctx, sc)

	require.NoError(suite.T(), err)
	assert.Len(suite.T(), users, 1)
	suite.userRepo().AssertNotCalled(suite.T(), "ListVisible", mock.Anything, mock.Anything)
}

func (suite *AdminQueryServiceTestSuite) TestListUsers_BackendErrorPropagates() {
	sc := scope.FullAccessScope(fixtures.SuperAdminID)
	backendErr := errors.New("connection refused")

	suite.userRepo().On("ListVisible", mock.Anything, sc).Return(nil, backendErr).Once()

	_, err := suite.service.ListUsers(suite.ctx, sc)

	assert.ErrorIs(suite.T(), err, backendErr)
}

func (suite *AdminQueryServiceTestSuite) TestDashboardStats() {
	sc := scope.FullAccessScope(fixtures.SuperAdminID)
	expected := &models.DashboardStats{TotalUsers: 10, ActiveTrades: 3, TotalBalance: 5000, PendingWithdrawals: 2}

	suite.repos.Stats.(*mocks.MockStatsRepository).On("DashboardStats", mock.Anything, sc).Return(expected, nil).Once()

	stats, err := suite.service.DashboardStats(suite.ctx, sc)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), expected, stats)
}

func (suite *AdminQueryServiceTestSuite) TestScopeIsolation_DifferentAdminsDifferentEntries() {
	scA := scope.RestrictedScope(fixtures.AdminID, []uuid.UUID{fixtures.UserAliceID})
	scB := scope.RestrictedScope(fixtures.SuperAdminID, []uuid.UUID{fixtures.UserBobID})

	usersA := fixtures.Users()[:1]
	usersB := fixtures.Users()[1:2]

	suite.userRepo().On("ListVisible", mock.Anything, scA).Return(usersA, nil).Once()
	suite.userRepo().On("ListVisible", mock.Anything, scB).Return(usersB, nil).Once()

	gotA, err := suite.service.ListUsers(suite.ctx, scA)
	require.NoError(suite.T(), err)
	gotB, err := suite.service.ListUsers(suite.ctx, scB)
	require.NoError(suite.T(), err)

	assert.Equal(suite.T(), "alice", gotA[0].Username)
	assert.Equal(suite.T(), "bob", gotB[0].Username)
}

func (suite *AdminQueryServiceTestSuite) TestPrefetchAll_WarmsEveryResource() {
	sc := scope.FullAccessScope(fixtures.SuperAdminID)

	suite.repos.Stats.(*mocks.MockStatsRepository).On("DashboardStats", mock.Anything, sc).Return(&models.DashboardStats{}, nil).Once()
	suite.userRepo().On("ListVisible", mock.Anything, sc).Return([]*models.User{}, nil).Once()
	suite.repos.Trade.(*mocks.MockTradeRepository).On("ListVisible", mock.Anything, sc).Return([]*models.Trade{}, nil).Once()
	suite.repos.RechargeCode.(*mocks.MockRechargeCodeRepository).On("ListVisible", mock.Anything, sc).Return([]*models.RechargeCode{}, nil).Once()
	suite.repos.Balance.(*mocks.MockBalanceRepository).On("ListVisible", mock.Anything, sc).Return([]*models.UserBalance{}, nil).Once()
	suite.repos.Withdraw.(*mocks.MockWithdrawRepository).On("ListVisible", mock.Anything, sc).Return([]*models.WithdrawRequest{}, nil).Once()

	suite.service.PrefetchAll(suite.ctx, sc)

	// All six entries are warm; the individual queries are now cache hits
	// and the Once() expectations above stay satisfied.
	_, err := suite.service.DashboardStats(suite.ctx, sc)
	require.NoError(suite.T(), err)
	_, err = suite.service.ListUsers(suite.ctx, sc)
	require.NoError(suite.T(), err)
	_, err = suite.service.ListTrades(suite.ctx, sc)
	require.NoError(suite.T(), err)
	_, err = suite.service.ListRechargeCodes(suite.ctx, sc)
	require.NoError(suite.T(), err)
	_, err = suite.service.ListBalances(suite.ctx, sc)
	require.NoError(suite.T(), err)
	_, err = suite.service.ListWithdrawRequests(suite.ctx, sc)
	require.NoError(suite.T(), err)

	suite.userRepo().AssertExpectations(suite.T())
	suite.repos.Stats.(*mocks.MockStatsRepository).AssertExpectations(suite.T())
}

func (suite *AdminQueryServiceTestSuite) TestPrefetchAll_NoopWhenActorUnknown() {
	suite.service.PrefetchAll(suite.ctx, scope.AccessScope{FullAccess: true})

	suite.userRepo().AssertNotCalled(suite.T(), "ListVisible", mock.Anything, mock.Anything)
}

func (suite *AdminQueryServiceTestSuite) TestPrefetchAll_NoopWhenResolving() {
	suite.service.PrefetchAll(suite.ctx, scope.PendingScope(&fixtures.AdminID))

	suite.userRepo().AssertNotCalled(suite.T(), "ListVisible", mock.Anything, mock.Anything)
}

func (suite *AdminQueryServiceTestSuite) TestPrefetchAll_FailuresDoNotCancelSiblings() {
	sc := scope.FullAccessScope(fixtures.SuperAdminID)

	suite.repos.Stats.(*mocks.MockStatsRepository).On("DashboardStats", mock.Anything, sc).Return(nil, errors.New("stats down")).Once()
	suite.userRepo().On("ListVisible", mock.Anything, sc).Return(fixtures.Users(), nil).Once()
	suite.repos.Trade.(*mocks.MockTradeRepository).On("ListVisible", mock.Anything, sc).Return([]*models.Trade{}, nil).Once()
	suite.repos.RechargeCode.(*mocks.MockRechargeCodeRepository).On("ListVisible", mock.Anything, sc).Return([]*models.RechargeCode{}, nil).Once()
	suite.repos.Balance.(*mocks.MockBalanceRepository).On("ListVisible", mock.Anything, sc).Return([]*models.UserBalance{}, nil).Once()
	suite.repos.Withdraw.(*mocks.MockWithdrawRepository).On("ListVisible", mock.Anything, sc).Return([]*models.WithdrawRequest{}, nil).Once()

	suite.service.PrefetchAll(suite.ctx, sc)

	// The users entry was warmed despite the stats failure.
	users, err := suite.service.ListUsers(suite.ctx, sc)
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), users, 3)
	suite.userRepo().AssertExpectations(suite.T())
}

func TestAdminQueryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AdminQueryServiceTestSuite))
}
