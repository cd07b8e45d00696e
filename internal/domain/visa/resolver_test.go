package visa

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/VisaPath-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/VisaPath-Intelligence/pkg/errors"
	"github.com/turtacn/VisaPath-Intelligence/pkg/types/common"
)

// ─────────────────────────────────────────────────────────────────────────────
// Fakes
// ─────────────────────────────────────────────────────────────────────────────

type fakeRequirementRepo struct {
	byTriple map[string]*Requirement
	calls    int
	failWith error
}

func newFakeRequirementRepo() *fakeRequirementRepo {
	return &fakeRequirementRepo{byTriple: make(map[string]*Requirement)}
}

func (r *fakeRequirementRepo) add(req *Requirement) {
	r.byTriple[resolutionKey(req.PassportCountry, req.DestinationCountry, req.TravelPurpose)] = req
}

func (r *fakeRequirementRepo) FindByTriple(_ context.Context, passport, destination common.CountryCode, purpose Purpose) (*Requirement, error) {
	r.calls++
	if r.failWith != nil {
		return nil, r.failWith
	}
	req, ok := r.byTriple[resolutionKey(passport, destination, purpose)]
	if !ok {
		return nil, errors.New(errors.ErrCodeRequirementNotFound, "no requirement for triple")
	}
	return req, nil
}

func (r *fakeRequirementRepo) FindByID(_ context.Context, id common.ID) (*Requirement, error) {
	for _, req := range r.byTriple {
		if req.ID == id {
			return req, nil
		}
	}
	return nil, errors.New(errors.ErrCodeRequirementNotFound, "no requirement with id")
}

type memCacheEntry struct {
	payload []byte
	ttl     time.Duration
}

type memCache struct {
	entries map[string]memCacheEntry
	getErr  error
	setErr  error
}

func newMemCache() *memCache {
	return &memCache{entries: make(map[string]memCacheEntry)}
}

func (c *memCache) Get(_ context.Context, key string, dest interface{}) error {
	if c.getErr != nil {
		return c.getErr
	}
	entry, ok := c.entries[key]
	if !ok {
		return errors.NotFound("cache miss")
	}
	return json.Unmarshal(entry.payload, dest)
}

func (c *memCache) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	if c.setErr != nil {
		return c.setErr
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = memCacheEntry{payload: payload, ttl: ttl}
	return nil
}

func embassyRequirement() *Requirement {
	return &Requirement{
		ID:                    common.NewID(),
		PassportCountry:       "CN",
		DestinationCountry:    "DE",
		TravelPurpose:         PurposeTourism,
		VisaType:              TypeEmbassyVisa,
		ProcessingTimeMinDays: 5,
		ProcessingTimeMaxDays: 15,
		AllowedStayDays:       90,
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Tests
// ─────────────────────────────────────────────────────────────────────────────

func TestResolveMissPopulatesCache(t *testing.T) {
	repo := newFakeRequirementRepo()
	req := embassyRequirement()
	repo.add(req)
	cache := newMemCache()
	resolver := NewResolver(repo, cache, logging.NewNopLogger())

	got, err := resolver.Resolve(context.Background(), "CN", "DE", PurposeTourism)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, req.ID, got.ID)
	assert.Equal(t, 1, repo.calls)

	entry, ok := cache.entries[resolutionKey("CN", "DE", PurposeTourism)]
	require.True(t, ok)
	assert.Equal(t, 12*time.Hour, entry.ttl)
}

func TestResolveServesFromCacheWithoutRepoHit(t *testing.T) {
	repo := newFakeRequirementRepo()
	repo.add(embassyRequirement())
	cache := newMemCache()
	resolver := NewResolver(repo, cache, logging.NewNopLogger())

	_, err := resolver.Resolve(context.Background(), "CN", "DE", PurposeTourism)
	require.NoError(t, err)

	got, err := resolver.Resolve(context.Background(), "CN", "DE", PurposeTourism)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 1, repo.calls, "second lookup must be served from cache")
}

func TestResolveUnknownTripleIsNotAnError(t *testing.T) {
	repo := newFakeRequirementRepo()
	cache := newMemCache()
	resolver := NewResolver(repo, cache, logging.NewNopLogger())

	got, err := resolver.Resolve(context.Background(), "DE", "FR", PurposeTourism)
	require.NoError(t, err)
	assert.Nil(t, got, "an uncurated corridor resolves to nil, not an error")

	// The absence itself is cached, with the shorter negative TTL.
	entry, ok := cache.entries[resolutionKey("DE", "FR", PurposeTourism)]
	require.True(t, ok)
	assert.Equal(t, 15*time.Minute, entry.ttl)

	got, err = resolver.Resolve(context.Background(), "DE", "FR", PurposeTourism)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Equal(t, 1, repo.calls, "the negative entry must absorb repeat lookups")
}

func TestResolveCacheTTLOverrides(t *testing.T) {
	repo := newFakeRequirementRepo()
	repo.add(embassyRequirement())
	cache := newMemCache()
	resolver := NewResolver(repo, cache, logging.NewNopLogger(),
		WithCacheTTL(time.Hour), WithNegativeCacheTTL(time.Minute))

	_, err := resolver.Resolve(context.Background(), "CN", "DE", PurposeTourism)
	require.NoError(t, err)
	assert.Equal(t, time.Hour, cache.entries[resolutionKey("CN", "DE", PurposeTourism)].ttl)

	_, err = resolver.Resolve(context.Background(), "DE", "FR", PurposeTourism)
	require.NoError(t, err)
	assert.Equal(t, time.Minute, cache.entries[resolutionKey("DE", "FR", PurposeTourism)].ttl)
}

func TestResolveCacheFailureFallsThroughToRepo(t *testing.T) {
	repo := newFakeRequirementRepo()
	repo.add(embassyRequirement())
	cache := newMemCache()
	cache.getErr = errors.New(errors.ErrCodeCacheError, "connection refused")
	cache.setErr = cache.getErr
	resolver := NewResolver(repo, cache, logging.NewNopLogger())

	got, err := resolver.Resolve(context.Background(), "CN", "DE", PurposeTourism)
	require.NoError(t, err, "cache trouble must never fail a resolution")
	require.NotNil(t, got)
	assert.Equal(t, 1, repo.calls)
}

func TestResolveWithoutCache(t *testing.T) {
	repo := newFakeRequirementRepo()
	repo.add(embassyRequirement())
	resolver := NewResolver(repo, nil, logging.NewNopLogger())

	for i := 0; i < 3; i++ {
		got, err := resolver.Resolve(context.Background(), "CN", "DE", PurposeTourism)
		require.NoError(t, err)
		require.NotNil(t, got)
	}
	assert.Equal(t, 3, repo.calls)
}

func TestResolveRepoFailureIsWrapped(t *testing.T) {
	repo := newFakeRequirementRepo()
	repo.failWith = errors.New(errors.ErrCodeDatabaseError, "connection reset")
	resolver := NewResolver(repo, nil, logging.NewNopLogger())

	_, err := resolver.Resolve(context.Background(), "CN", "DE", PurposeTourism)
	assert.True(t, errors.IsCode(err, errors.ErrCodeDatabaseError))
}

func TestResolveInputValidation(t *testing.T) {
	resolver := NewResolver(newFakeRequirementRepo(), nil, logging.NewNopLogger())

	_, err := resolver.Resolve(context.Background(), "China", "DE", PurposeTourism)
	assert.True(t, errors.IsCode(err, errors.CodeInvalidParam))

	_, err = resolver.Resolve(context.Background(), "CN", "de", PurposeTourism)
	assert.True(t, errors.IsCode(err, errors.CodeInvalidParam))

	_, err = resolver.Resolve(context.Background(), "CN", "DE", Purpose("HOLIDAY"))
	assert.True(t, errors.IsCode(err, errors.CodeInvalidParam))
}

func TestRequirementBounds(t *testing.T) {
	req := embassyRequirement()
	bounds, ok := req.Bounds()
	require.True(t, ok)
	assert.Equal(t, ProcessingBounds{MinBusinessDays: 5, MaxBusinessDays: 15}, bounds)

	req.ProcessingTimeMaxDays = 0
	_, ok = req.Bounds()
	assert.False(t, ok)

	var nilReq *Requirement
	_, ok = nilReq.Bounds()
	assert.False(t, ok)
}

//Personal.AI order the ending
