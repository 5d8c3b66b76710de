package cache

import (
	"fmt"
	"testing"

	"trading-admin-backend/internal/scope"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestKey_FullAccess(t *testing.T) {
	actorID := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	sc := scope.FullAccessScope(actorID)

	key := Key(ResourceUsers, sc)

	assert.Equal(t, "admin:users:11111111-1111-1111-1111-111111111111:full=true:ids=", key)
}

func TestKey_RestrictedScope(t *testing.T) {
	actorID := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	ids := []uuid.UUID{
		uuid.MustParse("aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa"),
		uuid.MustParse("bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb"),
	}
	sc := scope.RestrictedScope(actorID, ids)

	key := Key(ResourceTrades, sc)

	expected := fmt.Sprintf(
		"admin:trades:%s:full=false:ids=%s,%s",
		actorID, ids[0], ids[1],
	)
	assert.Equal(t, expected, key)
}

func TestKey_UnknownActor(t *testing.T) {
	key := Key(ResourceStats, scope.PendingScope(nil))

	assert.Equal(t, "admin:stats:anon:full=false:ids=", key)
}

func TestKey_ChangesWithScope(t *testing.T) {
	actorID := uuid.New()
	full := Key(ResourceBalances, scope.FullAccessScope(actorID))
	restricted := Key(ResourceBalances, scope.RestrictedScope(actorID, []uuid.UUID{uuid.New()}))

	assert.NotEqual(t, full, restricted)
}

func TestKeyResource(t *testing.T) {
	actorID := uuid.New()
	key := Key(ResourceRechargeCodes, scope.FullAccessScope(actorID))

	assert.Equal(t, ResourceRechargeCodes, keyResource(key))
	assert.Equal(t, "unknown", keyResource("malformed"))
}
