package usecase

import (
	"context"
	"time"

	"github.com/nielsbergsma/blimpco/internal/platform/cache"
	"github.com/nielsbergsma/blimpco/internal/reservation/repository"
	"github.com/nielsbergsma/blimpco/internal/scheduling/domain"
)

// airshipCacheTTL keeps airship lookups warm across the handful of flights
// scheduled against the same airship in a single planning session.
const airshipCacheTTL = 5 * time.Minute

// CachedAirshipRepository fronts an AirshipRepository with an in-process
// TTL cache. Airships change rarely relative to how often ScheduleFlight
// resolves their seat count, so this turns a per-schedule Redis round trip
// into a process-local lookup on the common path.
type CachedAirshipRepository struct {
	inner AirshipRepository
	cache *cache.Cache
}

func NewCachedAirshipRepository(inner AirshipRepository) *CachedAirshipRepository {
	return &CachedAirshipRepository{inner: inner, cache: cache.New(airshipCacheTTL)}
}

func (r *CachedAirshipRepository) Get(ctx context.Context, id string) (*domain.Airship, error) {
	if cached, ok := r.cache.Get(id); ok {
		airship, _ := cached.(domain.Airship)
		return &airship, nil
	}

	airship, err := r.inner.Get(ctx, id)
	if err != nil || airship == nil {
		return airship, err
	}
	r.cache.Set(id, *airship)
	return airship, nil
}

func (r *CachedAirshipRepository) SetBegin(ctx context.Context, id string) (repository.Transaction[domain.Airship], error) {
	return r.inner.SetBegin(ctx, id)
}

// SetCommit writes through to the underlying repository and invalidates the
// cached entry; registration is rare enough that a cold next read is cheap.
func (r *CachedAirshipRepository) SetCommit(ctx context.Context, tx repository.Transaction[domain.Airship]) error {
	if err := r.inner.SetCommit(ctx, tx); err != nil {
		return err
	}
	r.cache.Delete(tx.ID)
	return nil
}
