// Package cache provides the two-tier result cache for governed catalog
// calls.
//
// Lookups hit a fast in-process tier first (bounded capacity, per-entry TTL,
// LRU eviction) and fall through to an optional shared Redis tier; a shared
// hit back-fills the fast tier. Writes go to both tiers, with the shared tier
// best-effort: its unavailability never fails a Set. Keys are namespaced and
// content-addressed, so identical logical requests collide to the same entry
// regardless of how the caller ordered its arguments.
//
// The tier topology is fixed at construction: NewLocal builds a local-only
// cache and NewWithShared adds the shared layer. Call sites never branch on
// transport availability.
package cache
