package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/eserbisyo/brgy-docs-api/internal/dto"
	"github.com/eserbisyo/brgy-docs-api/internal/models"
	"github.com/eserbisyo/brgy-docs-api/internal/registry"
	appErrors "github.com/eserbisyo/brgy-docs-api/pkg/errors"
)

type memCacheRepo struct {
	entries map[string][]byte
	sets    int
	deletes int
}

func newMemCacheRepo() *memCacheRepo {
	return &memCacheRepo{entries: make(map[string][]byte)}
}

func (m *memCacheRepo) Get(ctx context.Context, key string, dest interface{}) error {
	raw, ok := m.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *memCacheRepo) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.entries[key] = raw
	m.sets++
	return nil
}

func (m *memCacheRepo) Delete(ctx context.Context, key string) error {
	delete(m.entries, key)
	m.deletes++
	return nil
}

type countingStore struct {
	*stubStore
	calls int
}

func (s *countingStore) FindByBarangay(ctx context.Context, barangay string) ([]models.DocumentRecord, error) {
	s.calls++
	return s.stubStore.FindByBarangay(ctx, barangay)
}

func clearanceAt(id, barangay string, at time.Time) *models.BarangayClearance {
	rec := &models.BarangayClearance{Name: "Resident " + id, Purpose: "Employment"}
	rec.ID = id
	rec.Barangay = barangay
	rec.Status = models.StatusPending
	rec.CreatedAt = at
	return rec
}

func cedulaAt(id, barangay string, at time.Time) *models.Cedula {
	rec := &models.Cedula{Name: "Resident " + id}
	rec.ID = id
	rec.Barangay = barangay
	rec.CreatedAt = at
	return rec
}

func TestListAllMergesAllTypesNewestFirst(t *testing.T) {
	base := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)

	clearances := newStubStore()
	indigencies := newStubStore()
	businesses := newStubStore()
	cedulas := newStubStore()

	clearances.listByScope = map[string][]models.DocumentRecord{
		"San Isidro": {clearanceAt("c1", "San Isidro", base.Add(1 * time.Hour))},
	}
	indigency := &models.BarangayIndigency{Name: "Maria"}
	indigency.ID = "i1"
	indigency.CreatedAt = base.Add(3 * time.Hour)
	indigencies.listByScope = map[string][]models.DocumentRecord{"San Isidro": {indigency}}

	business := &models.BusinessClearance{OwnerName: "Pedro"}
	business.ID = "b1"
	business.CreatedAt = base.Add(2 * time.Hour)
	businesses.listByScope = map[string][]models.DocumentRecord{"San Isidro": {business}}

	cedulas.listByScope = map[string][]models.DocumentRecord{
		"San Isidro": {cedulaAt("d1", "San Isidro", base.Add(4 * time.Hour))},
	}

	reg := registry.NewDefault(clearances, indigencies, businesses, cedulas)
	svc := NewQueueService(reg, nil, 20, 100, zap.NewNop())

	summaries, err := svc.ListAll(context.Background(), "San Isidro")
	require.NoError(t, err)
	require.Len(t, summaries, 4)

	assert.Equal(t, "d1", summaries[0].ID)
	assert.Equal(t, "i1", summaries[1].ID)
	assert.Equal(t, "b1", summaries[2].ID)
	assert.Equal(t, "c1", summaries[3].ID)

	assert.Equal(t, "Cedula", summaries[0].Type)
	assert.Equal(t, "Certificate of Indigency", summaries[1].Type)
	assert.Equal(t, "Business Clearance", summaries[2].Type)
	assert.Equal(t, "Barangay Clearance", summaries[3].Type)
}

func TestListAllScopesToBarangay(t *testing.T) {
	base := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)
	clearances := newStubStore()
	clearances.listByScope = map[string][]models.DocumentRecord{
		"San Isidro": {clearanceAt("c1", "San Isidro", base)},
		"Poblacion":  {clearanceAt("c2", "Poblacion", base)},
	}

	reg := registry.NewDefault(clearances, newStubStore(), newStubStore(), newStubStore())
	svc := NewQueueService(reg, nil, 20, 100, zap.NewNop())

	summaries, err := svc.ListAll(context.Background(), "Poblacion")
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "c2", summaries[0].ID)
}

func TestListAllRequiresScope(t *testing.T) {
	reg := registry.NewDefault(newStubStore(), newStubStore(), newStubStore(), newStubStore())
	svc := NewQueueService(reg, nil, 20, 100, zap.NewNop())

	_, err := svc.ListAll(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestListAllSingleSourceFailureFailsAggregation(t *testing.T) {
	clearances := newStubStore()
	cedulas := newStubStore()
	cedulas.listErr = errors.New("relation does not exist")

	reg := registry.NewDefault(clearances, newStubStore(), newStubStore(), cedulas)
	svc := NewQueueService(reg, nil, 20, 100, zap.NewNop())

	_, err := svc.ListAll(context.Background(), "San Isidro")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrAggregation.Code, appErr.Code)
}

func TestListPagination(t *testing.T) {
	base := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)
	clearances := newStubStore()
	var records []models.DocumentRecord
	for i := 0; i < 5; i++ {
		records = append(records, clearanceAt(string(rune('a'+i)), "San Isidro", base.Add(time.Duration(i)*time.Hour)))
	}
	clearances.listByScope = map[string][]models.DocumentRecord{"San Isidro": records}

	reg := registry.NewDefault(clearances, newStubStore(), newStubStore(), newStubStore())
	svc := NewQueueService(reg, nil, 20, 100, zap.NewNop())

	page1, pagination, err := svc.List(context.Background(), "San Isidro", dto.QueueFilter{Page: 1, PageSize: 2})
	require.NoError(t, err)
	require.Len(t, page1, 2)
	assert.Equal(t, 5, pagination.TotalCount)
	assert.Equal(t, "e", page1[0].ID)

	page3, pagination, err := svc.List(context.Background(), "San Isidro", dto.QueueFilter{Page: 3, PageSize: 2})
	require.NoError(t, err)
	require.Len(t, page3, 1)
	assert.Equal(t, "a", page3[0].ID)

	empty, pagination, err := svc.List(context.Background(), "San Isidro", dto.QueueFilter{Page: 9, PageSize: 2})
	require.NoError(t, err)
	assert.Empty(t, empty)
	assert.Equal(t, 5, pagination.TotalCount)
}

func TestListDefaultsAndCapsPageSize(t *testing.T) {
	clearances := newStubStore()
	reg := registry.NewDefault(clearances, newStubStore(), newStubStore(), newStubStore())
	svc := NewQueueService(reg, nil, 20, 50, zap.NewNop())

	_, pagination, err := svc.List(context.Background(), "San Isidro", dto.QueueFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, pagination.Page)
	assert.Equal(t, 20, pagination.PageSize)

	_, pagination, err = svc.List(context.Background(), "San Isidro", dto.QueueFilter{PageSize: 500})
	require.NoError(t, err)
	assert.Equal(t, 50, pagination.PageSize)
}

func TestListAllUsesCache(t *testing.T) {
	base := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)
	clearances := &countingStore{stubStore: newStubStore()}
	clearances.listByScope = map[string][]models.DocumentRecord{
		"San Isidro": {clearanceAt("c1", "San Isidro", base)},
	}

	cacheRepo := newMemCacheRepo()
	cacheSvc := NewCacheService(cacheRepo, nil, time.Minute, zap.NewNop(), true)

	reg := registry.NewDefault(clearances, newStubStore(), newStubStore(), newStubStore())
	svc := NewQueueService(reg, cacheSvc, 20, 100, zap.NewNop())

	first, err := svc.ListAll(context.Background(), "San Isidro")
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, 1, clearances.calls)
	assert.Equal(t, 1, cacheRepo.sets)

	second, err := svc.ListAll(context.Background(), "San Isidro")
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, 1, clearances.calls)

	svc.Invalidate(context.Background(), "San Isidro")
	assert.Equal(t, 1, cacheRepo.deletes)

	third, err := svc.ListAll(context.Background(), "San Isidro")
	require.NoError(t, err)
	require.Len(t, third, 1)
	assert.Equal(t, 2, clearances.calls)
}
