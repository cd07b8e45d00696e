package visa

import (
	"context"
	"fmt"
	"time"

	"github.com/turtacn/VisaPath-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/VisaPath-Intelligence/pkg/errors"
	"github.com/turtacn/VisaPath-Intelligence/pkg/types/common"
)

// ─────────────────────────────────────────────────────────────────────────────
// Cache port
// ─────────────────────────────────────────────────────────────────────────────

// Cache is the narrow read-through cache port the resolver needs.  The Redis
// implementation in internal/infrastructure/database/redis satisfies it; tests
// use an in-memory map.
type Cache interface {
	// Get unmarshals the cached value for key into dest.  A miss is signalled
	// with an ErrCodeNotFound coded error.
	Get(ctx context.Context, key string, dest interface{}) error

	// Set stores value under key for ttl.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// cachedResolution is the cache envelope.  Found=false entries are negative
// cache records for triples with no requirement row, so that repeated lookups
// of visa-free corridors do not hammer the database.
type cachedResolution struct {
	Found       bool         `json:"found"`
	Requirement *Requirement `json:"requirement,omitempty"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Resolver
// ─────────────────────────────────────────────────────────────────────────────

// Resolver looks up visa requirements by the exact
// (passport, destination, purpose) triple.
//
// "Not found" is a valid steady-state answer, not a failure: the traveler is
// either visa-free or the corridor is not yet curated.  Resolve therefore
// returns (nil, nil) in that case and reserves non-nil errors for
// infrastructure problems.
//
// Bloc metadata on the requirement row is intentionally ignored here; regional
// exemption logic is a deferred feature.
type Resolver struct {
	repo   Repository
	cache  Cache
	ttl    time.Duration
	negTTL time.Duration
	logger logging.Logger
}

// ResolverOption customizes a Resolver.
type ResolverOption func(*Resolver)

// WithCacheTTL overrides the positive cache TTL.
func WithCacheTTL(ttl time.Duration) ResolverOption {
	return func(r *Resolver) { r.ttl = ttl }
}

// WithNegativeCacheTTL overrides the not-found cache TTL.
func WithNegativeCacheTTL(ttl time.Duration) ResolverOption {
	return func(r *Resolver) { r.negTTL = ttl }
}

// NewResolver constructs a Resolver.  cache may be nil, in which case every
// lookup goes to the repository.
func NewResolver(repo Repository, cache Cache, logger logging.Logger, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		repo:   repo,
		cache:  cache,
		ttl:    12 * time.Hour,
		negTTL: 15 * time.Minute,
		logger: logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve performs the exact-triple lookup.  The returned requirement is nil
// when no record exists for the triple; callers treat that as "visa-free or
// unknown".
func (r *Resolver) Resolve(ctx context.Context, passport, destination common.CountryCode, purpose Purpose) (*Requirement, error) {
	if err := passport.Validate(); err != nil {
		return nil, errors.InvalidParam("passport country: " + err.Error())
	}
	if err := destination.Validate(); err != nil {
		return nil, errors.InvalidParam("destination country: " + err.Error())
	}
	if !purpose.Valid() {
		return nil, errors.InvalidParam("unknown travel purpose " + string(purpose))
	}

	key := resolutionKey(passport, destination, purpose)

	if r.cache != nil {
		var cached cachedResolution
		if err := r.cache.Get(ctx, key, &cached); err == nil {
			if !cached.Found {
				return nil, nil
			}
			return cached.Requirement, nil
		} else if !errors.IsNotFound(err) {
			// Cache trouble must never fail a resolution; fall through to the
			// repository and leave a trace for the operator.
			r.logger.Warn("requirement cache read failed", logging.String("key", key), logging.Err(err))
		}
	}

	req, err := r.repo.FindByTriple(ctx, passport, destination, purpose)
	if err != nil {
		if errors.IsCode(err, errors.ErrCodeRequirementNotFound) {
			r.storeCache(ctx, key, cachedResolution{Found: false}, r.negTTL)
			return nil, nil
		}
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "requirement lookup failed")
	}

	r.storeCache(ctx, key, cachedResolution{Found: true, Requirement: req}, r.ttl)
	return req, nil
}

func (r *Resolver) storeCache(ctx context.Context, key string, value cachedResolution, ttl time.Duration) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Set(ctx, key, value, ttl); err != nil {
		r.logger.Warn("requirement cache write failed", logging.String("key", key), logging.Err(err))
	}
}

func resolutionKey(passport, destination common.CountryCode, purpose Purpose) string {
	return fmt.Sprintf("visa:req:%s:%s:%s", passport, destination, purpose)
}

//Personal.AI order the ending
