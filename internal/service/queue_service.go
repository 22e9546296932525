package service

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/eserbisyo/brgy-docs-api/internal/dto"
	"github.com/eserbisyo/brgy-docs-api/internal/models"
	"github.com/eserbisyo/brgy-docs-api/internal/registry"
	appErrors "github.com/eserbisyo/brgy-docs-api/pkg/errors"
)

// QueueService aggregates the four document request sources into the unified
// staff work queue.
type QueueService struct {
	registry        *registry.Registry
	cache           *CacheService
	logger          *zap.Logger
	defaultPageSize int
	maxPageSize     int
}

// NewQueueService builds a QueueService.
func NewQueueService(reg *registry.Registry, cache *CacheService, defaultPageSize, maxPageSize int, logger *zap.Logger) *QueueService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if defaultPageSize <= 0 {
		defaultPageSize = 20
	}
	if maxPageSize <= 0 {
		maxPageSize = 100
	}
	return &QueueService{
		registry:        reg,
		cache:           cache,
		logger:          logger,
		defaultPageSize: defaultPageSize,
		maxPageSize:     maxPageSize,
	}
}

func queueCacheKey(barangay string) string {
	return fmt.Sprintf("queue:%s", barangay)
}

// ListAll fans out across every registered store scoped to the barangay,
// projects each record into the common summary shape and merges the results
// newest first. Any single source failure fails the whole aggregation.
func (s *QueueService) ListAll(ctx context.Context, barangay string) ([]dto.RequestSummary, error) {
	if barangay == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "barangay scope is required")
	}

	var cached []dto.RequestSummary
	if hit, _ := s.cache.Get(ctx, queueCacheKey(barangay), &cached); hit {
		return cached, nil
	}

	entries := s.registry.Entries()
	buckets := make([][]dto.RequestSummary, len(entries))

	g, gctx := errgroup.WithContext(ctx)
	for i, entry := range entries {
		i, entry := i, entry
		g.Go(func() error {
			records, err := entry.Store.FindByBarangay(gctx, barangay)
			if err != nil {
				return fmt.Errorf("%s: %w", entry.Slug, err)
			}
			summaries := make([]dto.RequestSummary, 0, len(records))
			for _, rec := range records {
				summaries = append(summaries, entry.Project(rec))
			}
			buckets[i] = summaries
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrAggregation.Code, appErrors.ErrAggregation.Status, "failed to aggregate document requests")
	}

	var merged []dto.RequestSummary
	for _, bucket := range buckets {
		merged = append(merged, bucket...)
	}

	sort.SliceStable(merged, func(a, b int) bool {
		return merged[a].RequestDate.After(merged[b].RequestDate)
	})

	if err := s.cache.Set(ctx, queueCacheKey(barangay), merged, 0); err != nil {
		s.logger.Warn("queue cache write failed", zap.String("barangay", barangay), zap.Error(err))
	}

	return merged, nil
}

// List returns one page of the aggregated queue. The aggregation itself is
// always full; slicing happens after the merge.
func (s *QueueService) List(ctx context.Context, barangay string, filter dto.QueueFilter) ([]dto.RequestSummary, *models.Pagination, error) {
	all, err := s.ListAll(ctx, barangay)
	if err != nil {
		return nil, nil, err
	}

	page := filter.Page
	if page <= 0 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = s.defaultPageSize
	}
	if pageSize > s.maxPageSize {
		pageSize = s.maxPageSize
	}

	pagination := &models.Pagination{Page: page, PageSize: pageSize, TotalCount: len(all)}

	start := (page - 1) * pageSize
	if start >= len(all) {
		return []dto.RequestSummary{}, pagination, nil
	}
	end := start + pageSize
	if end > len(all) {
		end = len(all)
	}

	return all[start:end], pagination, nil
}

// Invalidate drops the cached queue for a barangay after a mutation.
func (s *QueueService) Invalidate(ctx context.Context, barangay string) {
	if err := s.cache.Invalidate(ctx, queueCacheKey(barangay)); err != nil {
		s.logger.Warn("queue cache invalidate failed", zap.String("barangay", barangay), zap.Error(err))
	}
}
