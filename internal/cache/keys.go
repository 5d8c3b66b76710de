package cache

import (
	"strings"

	"trading-admin-backend/internal/scope"
)

// Namespace prefixes every admin dashboard cache key.
const Namespace = "admin"

// Resource names used in cache keys. These are a stable contract shared
// with dashboard consumers; renaming one invalidates warm caches.
const (
	ResourceStats         = "stats"
	ResourceUsers         = "users"
	ResourceTrades        = "trades"
	ResourceRechargeCodes = "recharge-codes"
	ResourceBalances      = "balances"
	ResourceWithdrawals   = "withdrawals"
)

// Key renders the cache key tuple for a resource under a scope:
//
//	admin:<resource>:<actor-id|anon>:full=<true|false>:ids=<id,id,...>
//
// The key changes whenever the actor or the scope changes, which forces a
// fresh fetch instead of serving another admin's rows.
func Key(resource string, sc scope.AccessScope) string {
	var b strings.Builder
	b.WriteString(Namespace)
	b.WriteByte(':')
	b.WriteString(resource)
	b.WriteByte(':')
	if sc.ActorKnown() {
		b.WriteString(sc.ActorID.String())
	} else {
		b.WriteString("anon")
	}
	b.WriteString(":full=")
	if sc.FullAccess {
		b.WriteString("true")
	} else {
		b.WriteString("false")
	}
	b.WriteString(":ids=")
	for i, id := range sc.AccessibleIDs {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(id.String())
	}
	return b.String()
}

// keyResource extracts the resource segment of a cache key for metric
// labels. Returns "unknown" for keys that do not follow the tuple layout.
func keyResource(key string) string {
	parts := strings.SplitN(key, ":", 3)
	if len(parts) < 2 {
		return "unknown"
	}
	return parts[1]
}
