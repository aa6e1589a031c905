package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/containerd/errdefs"
	"github.com/restaurantapp/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockRestaurantRepository is a mock implementation of RestaurantRepository
type mockRestaurantRepository struct {
	restaurants []models.Restaurant
	total       int
	restaurant  *models.Restaurant
	existing    map[string]bool
	listErr     error
	getErr      error
	existsErr   error
	createErr   error
	updateErr   error
	deleteErr   error

	created      []models.Restaurant
	updatedID    int
	updatedPhoto string
	deletedID    int
	nextID       int
}

func (m *mockRestaurantRepository) List(ctx context.Context, q models.ListQuery) ([]models.Restaurant, int, error) {
	if m.listErr != nil {
		return nil, 0, m.listErr
	}
	return m.restaurants, m.total, nil
}

func (m *mockRestaurantRepository) ListAll(ctx context.Context) ([]models.Restaurant, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.restaurants, nil
}

func (m *mockRestaurantRepository) GetByPlaceID(ctx context.Context, placeID string) (*models.Restaurant, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.restaurant, nil
}

func (m *mockRestaurantRepository) GetByID(ctx context.Context, id int) (*models.Restaurant, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.restaurant, nil
}

func (m *mockRestaurantRepository) ExistsByPlaceID(ctx context.Context, placeID string) (bool, error) {
	if m.existsErr != nil {
		return false, m.existsErr
	}
	return m.existing[placeID], nil
}

func (m *mockRestaurantRepository) Create(ctx context.Context, restaurant *models.Restaurant) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.nextID++
	restaurant.ID = m.nextID
	m.created = append(m.created, *restaurant)
	return nil
}

func (m *mockRestaurantRepository) Update(ctx context.Context, id int, req *models.UpdateRestaurantRequest) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.updatedID = id
	return nil
}

func (m *mockRestaurantRepository) UpdatePhoto(ctx context.Context, id int, photoPath string) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.updatedID = id
	m.updatedPhoto = photoPath
	return nil
}

func (m *mockRestaurantRepository) DeleteWithComments(ctx context.Context, id int) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deletedID = id
	return nil
}

// mockCityResolver is a mock implementation of CityResolver
type mockCityResolver struct {
	city string
	err  error

	calls int
}

func (m *mockCityResolver) ResolveCity(ctx context.Context, lat, lng float64) (string, error) {
	m.calls++
	if m.err != nil {
		return "", m.err
	}
	return m.city, nil
}

// mockPhotoStorage is a mock implementation of PhotoStorage
type mockPhotoStorage struct {
	filename string
	err      error

	savedOriginal string
}

func (m *mockPhotoStorage) Save(r io.Reader, originalFilename string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.savedOriginal = originalFilename
	return m.filename, nil
}

func newTestRestaurantService(repo *mockRestaurantRepository, cities *mockCityResolver, photos *mockPhotoStorage) *RestaurantService {
	return NewRestaurantService(repo, cities, photos, "/uploads", zap.NewNop())
}

func TestRestaurantService_List(t *testing.T) {
	tests := []struct {
		name          string
		query         models.ListQuery
		repo          *mockRestaurantRepository
		expectedData  int
		expectedTotal int
	}{
		{
			name:  "defaults applied",
			query: models.ListQuery{},
			repo: &mockRestaurantRepository{
				restaurants: []models.Restaurant{{ID: 1}},
				total:       1,
			},
			expectedData:  1,
			expectedTotal: 1,
		},
		{
			name:          "empty result is an empty slice",
			query:         models.ListQuery{Page: 1, Limit: 10},
			repo:          &mockRestaurantRepository{},
			expectedData:  0,
			expectedTotal: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestRestaurantService(tt.repo, &mockCityResolver{}, &mockPhotoStorage{})

			list, err := svc.List(context.Background(), tt.query)

			require.NoError(t, err)
			require.NotNil(t, list.Data)
			assert.Len(t, list.Data, tt.expectedData)
			assert.Equal(t, tt.expectedTotal, list.Total)
		})
	}
}

func TestRestaurantService_IngestBatch(t *testing.T) {
	req := &models.IngestRequest{
		SearchPoint: models.Point{Lat: 48.85, Lng: 2.35},
		Restaurants: []models.RestaurantCandidate{
			{PlaceID: "place-1", Name: "Chez Anna", Address: "1 Main St, Paris, France", Rating: 4.5, TotalRatings: 100},
			{PlaceID: "place-2", Name: "Le Bistro", Address: "2 Side St, Paris, France", Rating: 4.1, TotalRatings: 40},
			{PlaceID: "place-3", Name: "Trattoria", Address: "No Comma Street 5", Rating: 3.9, TotalRatings: 12},
		},
	}

	t.Run("mixed saved and exists in input order", func(t *testing.T) {
		repo := &mockRestaurantRepository{existing: map[string]bool{"place-2": true}}
		cities := &mockCityResolver{city: "Paris"}
		svc := newTestRestaurantService(repo, cities, &mockPhotoStorage{})

		statuses, err := svc.IngestBatch(context.Background(), req)
		require.NoError(t, err)

		require.Len(t, statuses, 3)
		assert.Equal(t, models.IngestStatus{PlaceID: "place-1", Status: models.IngestStatusSaved, ID: 1}, statuses[0])
		assert.Equal(t, models.IngestStatus{PlaceID: "place-2", Status: models.IngestStatusExists}, statuses[1])
		assert.Equal(t, models.IngestStatus{PlaceID: "place-3", Status: models.IngestStatusSaved, ID: 2}, statuses[2])

		// One geocoder call for the whole batch
		assert.Equal(t, 1, cities.calls)

		require.Len(t, repo.created, 2)
		first := repo.created[0]
		assert.Equal(t, "Paris", first.City)
		assert.Equal(t, models.NoPhoto, first.Photo)
		// Trailing country segment dropped
		assert.Equal(t, "1 Main St, Paris", first.Address)
		// Address without a comma kept unchanged
		assert.Equal(t, "No Comma Street 5", repo.created[1].Address)
	})

	t.Run("geocoder failure falls back to placeholder city", func(t *testing.T) {
		repo := &mockRestaurantRepository{}
		cities := &mockCityResolver{err: errors.New("geocoder down")}
		svc := newTestRestaurantService(repo, cities, &mockPhotoStorage{})

		statuses, err := svc.IngestBatch(context.Background(), req)
		require.NoError(t, err)
		require.Len(t, statuses, 3)

		for _, created := range repo.created {
			assert.Equal(t, "Unknown City", created.City)
		}
	})

	t.Run("create conflict collapses into exists", func(t *testing.T) {
		repo := &mockRestaurantRepository{
			createErr: fmt.Errorf("%w: place identifier already exists", errdefs.ErrConflict),
		}
		svc := newTestRestaurantService(repo, &mockCityResolver{city: "Paris"}, &mockPhotoStorage{})

		statuses, err := svc.IngestBatch(context.Background(), req)
		require.NoError(t, err)

		for _, status := range statuses {
			assert.Equal(t, models.IngestStatusExists, status.Status)
		}
	})

	t.Run("repository error aborts the batch", func(t *testing.T) {
		repo := &mockRestaurantRepository{existsErr: errors.New("database error")}
		svc := newTestRestaurantService(repo, &mockCityResolver{city: "Paris"}, &mockPhotoStorage{})

		statuses, err := svc.IngestBatch(context.Background(), req)
		assert.Error(t, err)
		assert.Nil(t, statuses)
	})
}

func TestRestaurantService_Create(t *testing.T) {
	tests := []struct {
		name          string
		req           *models.CreateRestaurantRequest
		expectedError bool
		errorContains string
	}{
		{
			name: "success",
			req:  &models.CreateRestaurantRequest{PlaceID: "place-1", Name: "Chez Anna"},
		},
		{
			name:          "missing place id",
			req:           &models.CreateRestaurantRequest{Name: "Chez Anna"},
			expectedError: true,
			errorContains: "place_id is required",
		},
		{
			name:          "missing name",
			req:           &models.CreateRestaurantRequest{PlaceID: "place-1"},
			expectedError: true,
			errorContains: "name is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockRestaurantRepository{}
			svc := newTestRestaurantService(repo, &mockCityResolver{}, &mockPhotoStorage{})

			restaurant, err := svc.Create(context.Background(), tt.req)

			if tt.expectedError {
				assert.Error(t, err)
				assert.True(t, errdefs.IsInvalidArgument(err))
				assert.Contains(t, err.Error(), tt.errorContains)
			} else {
				require.NoError(t, err)
				assert.Equal(t, 1, restaurant.ID)
				assert.Equal(t, models.NoPhoto, restaurant.Photo)
			}
		})
	}
}

func TestRestaurantService_Update(t *testing.T) {
	name := "New Name"

	t.Run("success", func(t *testing.T) {
		repo := &mockRestaurantRepository{restaurant: &models.Restaurant{ID: 1}}
		svc := newTestRestaurantService(repo, &mockCityResolver{}, &mockPhotoStorage{})

		err := svc.Update(context.Background(), 1, &models.UpdateRestaurantRequest{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, 1, repo.updatedID)
	})

	t.Run("empty update rejected", func(t *testing.T) {
		svc := newTestRestaurantService(&mockRestaurantRepository{}, &mockCityResolver{}, &mockPhotoStorage{})

		err := svc.Update(context.Background(), 1, &models.UpdateRestaurantRequest{})
		assert.Error(t, err)
		assert.True(t, errdefs.IsInvalidArgument(err))
	})

	t.Run("missing restaurant", func(t *testing.T) {
		repo := &mockRestaurantRepository{
			getErr: fmt.Errorf("%w: restaurant not found", errdefs.ErrNotFound),
		}
		svc := newTestRestaurantService(repo, &mockCityResolver{}, &mockPhotoStorage{})

		err := svc.Update(context.Background(), 99, &models.UpdateRestaurantRequest{Name: &name})
		assert.Error(t, err)
		assert.True(t, errdefs.IsNotFound(err))
	})
}

func TestRestaurantService_AttachPhoto(t *testing.T) {
	t.Run("stores photo and records served path", func(t *testing.T) {
		repo := &mockRestaurantRepository{restaurant: &models.Restaurant{ID: 1}}
		photos := &mockPhotoStorage{filename: "1693000000-abc.jpg"}
		svc := newTestRestaurantService(repo, &mockCityResolver{}, photos)

		path, err := svc.AttachPhoto(context.Background(), 1, bytes.NewBufferString("image-bytes"), "dinner.jpg", "image/jpeg")
		require.NoError(t, err)
		assert.Equal(t, "/uploads/1693000000-abc.jpg", path)
		assert.Equal(t, "dinner.jpg", photos.savedOriginal)
		assert.Equal(t, path, repo.updatedPhoto)
	})

	t.Run("rejects non-image uploads", func(t *testing.T) {
		svc := newTestRestaurantService(&mockRestaurantRepository{}, &mockCityResolver{}, &mockPhotoStorage{})

		_, err := svc.AttachPhoto(context.Background(), 1, bytes.NewBufferString("data"), "notes.txt", "text/plain")
		assert.Error(t, err)
		assert.True(t, errdefs.IsInvalidArgument(err))
	})

	t.Run("missing restaurant", func(t *testing.T) {
		repo := &mockRestaurantRepository{
			getErr: fmt.Errorf("%w: restaurant not found", errdefs.ErrNotFound),
		}
		svc := newTestRestaurantService(repo, &mockCityResolver{}, &mockPhotoStorage{})

		_, err := svc.AttachPhoto(context.Background(), 99, bytes.NewBufferString("image"), "dinner.jpg", "image/jpeg")
		assert.Error(t, err)
		assert.True(t, errdefs.IsNotFound(err))
	})
}

func TestRestaurantService_Delete(t *testing.T) {
	repo := &mockRestaurantRepository{}
	svc := newTestRestaurantService(repo, &mockCityResolver{}, &mockPhotoStorage{})

	err := svc.Delete(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, 5, repo.deletedID)
}

func TestNormalizeAddress(t *testing.T) {
	tests := []struct {
		name     string
		address  string
		expected string
	}{
		{"drops trailing country", "1 Main St, Paris, France", "1 Main St, Paris"},
		{"single comma", "1 Main St, France", "1 Main St"},
		{"no comma kept as is", "No Comma Street 5", "No Comma Street 5"},
		{"whitespace trimmed", "  1 Main St , France", "1 Main St"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, normalizeAddress(tt.address))
		})
	}
}
