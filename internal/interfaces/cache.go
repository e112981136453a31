package interfaces

// Cache is a bounded key/value cache with LRU eviction, owned by the
// market-data service for per-process memoization. Injectable so tests can
// substitute a fake or pre-seeded cache. Implementations must support
// concurrent readers with atomic insert-or-reuse per key if callers ever
// fan out (the hashicorp/golang-lru implementation does).
type Cache[K comparable, V any] interface {
	Get(key K) (V, bool)
	Add(key K, value V) bool
	Len() int
	Purge()
}
