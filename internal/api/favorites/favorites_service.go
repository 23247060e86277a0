package favorites

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/wanderke/wanderke-api/app/observability/metrics"
	"github.com/wanderke/wanderke-api/internal/types"
)

// resolveConcurrency caps concurrent lookups during a listing.
const resolveConcurrency = 8

var _ FavoritesService = (*FavoritesServiceImpl)(nil)

// FavoritesService defines the business logic contract for the
// favourites ledger.
type FavoritesService interface {
	// Add resolves the target and appends a reference carrying the
	// denormalised owning-county ID. Returns types.ErrNotFound when
	// the user or the target does not exist. Duplicate references are
	// allowed; two concurrent adds both succeed.
	Add(ctx context.Context, userID uuid.UUID, targetID uuid.UUID, targetType types.TargetType) error

	// Remove deletes every matching reference. Removing something
	// that was never favourited still succeeds. Returns
	// types.ErrNotFound only when the user does not exist.
	Remove(ctx context.Context, userID uuid.UUID, targetID uuid.UUID, targetType types.TargetType) error

	// List resolves each stored reference. A reference whose target
	// has been deleted keeps its slot with nil details; one broken
	// reference never aborts the listing.
	List(ctx context.Context, userID uuid.UUID) ([]types.ResolvedFavorite, error)
}

type FavoritesServiceImpl struct {
	logger   *slog.Logger
	repo     FavoritesRepo
	resolver Resolver
	metrics  *metrics.AppMetrics
}

// NewFavoritesService creates a new favourites service instance. The
// metrics instance may be nil in tests.
func NewFavoritesService(repo FavoritesRepo, resolver Resolver, appMetrics *metrics.AppMetrics, logger *slog.Logger) *FavoritesServiceImpl {
	return &FavoritesServiceImpl{
		logger:   logger,
		repo:     repo,
		resolver: resolver,
		metrics:  appMetrics,
	}
}

func (s *FavoritesServiceImpl) Add(ctx context.Context, userID uuid.UUID, targetID uuid.UUID, targetType types.TargetType) error {
	l := s.logger.With(slog.String("method", "Add"),
		slog.String("userID", userID.String()),
		slog.String("targetID", targetID.String()),
		slog.String("targetType", string(targetType)))

	exists, err := s.repo.UserExists(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to check user: %w", err)
	}
	if !exists {
		l.WarnContext(ctx, "Add favorite for unknown user")
		return fmt.Errorf("user %s: %w", userID, types.ErrNotFound)
	}

	_, countyID, err := s.resolver.Resolve(ctx, targetID, targetType)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			l.WarnContext(ctx, "Favorite target does not exist")
		}
		return err
	}

	ref := types.FavoriteRef{
		TargetID:   targetID,
		TargetType: targetType,
		CountyID:   countyID,
	}
	if err := s.repo.Add(ctx, userID, ref); err != nil {
		return err
	}

	if s.metrics != nil {
		s.metrics.FavoriteWritesTotal.Add(ctx, 1)
	}
	l.InfoContext(ctx, "Favorite added")
	return nil
}

func (s *FavoritesServiceImpl) Remove(ctx context.Context, userID uuid.UUID, targetID uuid.UUID, targetType types.TargetType) error {
	l := s.logger.With(slog.String("method", "Remove"),
		slog.String("userID", userID.String()),
		slog.String("targetID", targetID.String()),
		slog.String("targetType", string(targetType)))

	exists, err := s.repo.UserExists(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to check user: %w", err)
	}
	if !exists {
		l.WarnContext(ctx, "Remove favorite for unknown user")
		return fmt.Errorf("user %s: %w", userID, types.ErrNotFound)
	}

	removed, err := s.repo.Remove(ctx, userID, targetID, targetType)
	if err != nil {
		return err
	}

	if s.metrics != nil {
		s.metrics.FavoriteWritesTotal.Add(ctx, 1)
	}
	l.InfoContext(ctx, "Favorite removed", slog.Int64("removed", removed))
	return nil
}

func (s *FavoritesServiceImpl) List(ctx context.Context, userID uuid.UUID) ([]types.ResolvedFavorite, error) {
	l := s.logger.With(slog.String("method", "List"), slog.String("userID", userID.String()))
	start := time.Now()

	exists, err := s.repo.UserExists(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check user: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("user %s: %w", userID, types.ErrNotFound)
	}

	refs, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	resolved := make([]types.ResolvedFavorite, len(refs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(resolveConcurrency)
	for i, ref := range refs {
		g.Go(func() error {
			details, _, err := s.resolver.Resolve(gctx, ref.TargetID, ref.TargetType)
			if err != nil {
				// Dangling references keep their slot with nil
				// details; a lookup failure must not abort the batch.
				l.WarnContext(gctx, "Failed to resolve favorite target",
					slog.String("targetID", ref.TargetID.String()),
					slog.String("targetType", string(ref.TargetType)),
					slog.Any("error", err))
				details = nil
			}
			resolved[i] = types.ResolvedFavorite{
				TargetID:   ref.TargetID,
				TargetType: ref.TargetType,
				CountyID:   ref.CountyID,
				Details:    details,
			}
			return nil
		})
	}
	// Workers never return an error, so Wait only synchronises.
	_ = g.Wait()

	if s.metrics != nil {
		s.metrics.FavoriteResolveSeconds.Record(ctx, time.Since(start).Seconds())
	}
	return resolved, nil
}
