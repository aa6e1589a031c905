package services

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/containerd/errdefs"
	"github.com/restaurantapp/backend/internal/models"
	"go.uber.org/zap"
)

// unknownCity is stored when the reverse geocoder cannot be reached.
// Enrichment is best-effort; ingestion must survive a dead geocoder.
const unknownCity = "Unknown City"

// Listing defaults and bounds
const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// RestaurantRepository defines the restaurant data access operations the service needs
type RestaurantRepository interface {
	List(ctx context.Context, q models.ListQuery) ([]models.Restaurant, int, error)
	ListAll(ctx context.Context) ([]models.Restaurant, error)
	GetByPlaceID(ctx context.Context, placeID string) (*models.Restaurant, error)
	GetByID(ctx context.Context, id int) (*models.Restaurant, error)
	ExistsByPlaceID(ctx context.Context, placeID string) (bool, error)
	Create(ctx context.Context, restaurant *models.Restaurant) error
	Update(ctx context.Context, id int, req *models.UpdateRestaurantRequest) error
	UpdatePhoto(ctx context.Context, id int, photoPath string) error
	DeleteWithComments(ctx context.Context, id int) error
}

// CityResolver reverse-geocodes a coordinate into a city name
type CityResolver interface {
	ResolveCity(ctx context.Context, lat, lng float64) (string, error)
}

// PhotoStorage persists uploaded photo files
type PhotoStorage interface {
	Save(r io.Reader, originalFilename string) (string, error)
}

// RestaurantService handles the restaurant catalog: listing, batch
// ingestion with geocoding enrichment, and the admin CRUD surface
type RestaurantService struct {
	repo           RestaurantRepository
	cities         CityResolver
	photos         PhotoStorage
	uploadsBaseURL string
	logger         *zap.Logger
}

// NewRestaurantService creates a new restaurant service
func NewRestaurantService(repo RestaurantRepository, cities CityResolver, photos PhotoStorage, uploadsBaseURL string, logger *zap.Logger) *RestaurantService {
	return &RestaurantService{
		repo:           repo,
		cities:         cities,
		photos:         photos,
		uploadsBaseURL: uploadsBaseURL,
		logger:         logger,
	}
}

// List returns one page of restaurants with the filtered total
func (s *RestaurantService) List(ctx context.Context, q models.ListQuery) (*models.RestaurantList, error) {
	if q.Page < 1 {
		q.Page = defaultPage
	}
	if q.Limit < 1 {
		q.Limit = defaultLimit
	}
	if q.Limit > maxLimit {
		q.Limit = maxLimit
	}

	restaurants, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, err
	}

	if restaurants == nil {
		restaurants = []models.Restaurant{}
	}

	return &models.RestaurantList{Data: restaurants, Total: total}, nil
}

// Get retrieves a single restaurant by place identifier
func (s *RestaurantService) Get(ctx context.Context, placeID string) (*models.Restaurant, error) {
	return s.repo.GetByPlaceID(ctx, placeID)
}

// AdminList returns the whole catalog for the admin table
func (s *RestaurantService) AdminList(ctx context.Context) ([]models.Restaurant, error) {
	restaurants, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if restaurants == nil {
		restaurants = []models.Restaurant{}
	}
	return restaurants, nil
}

// IngestBatch stores the candidates that are not already in the catalog and
// reports a per-candidate outcome in input order. The whole batch shares
// one city, resolved from the search point; a geocoder failure degrades the
// city to a placeholder instead of failing the ingestion.
func (s *RestaurantService) IngestBatch(ctx context.Context, req *models.IngestRequest) ([]models.IngestStatus, error) {
	city, err := s.cities.ResolveCity(ctx, req.SearchPoint.Lat, req.SearchPoint.Lng)
	if err != nil {
		s.logger.Warn("reverse geocoding failed, storing placeholder city",
			zap.Error(err),
			zap.Float64("lat", req.SearchPoint.Lat),
			zap.Float64("lng", req.SearchPoint.Lng))
		city = unknownCity
	}

	statuses := make([]models.IngestStatus, 0, len(req.Restaurants))
	for _, candidate := range req.Restaurants {
		exists, err := s.repo.ExistsByPlaceID(ctx, candidate.PlaceID)
		if err != nil {
			return nil, err
		}
		if exists {
			statuses = append(statuses, models.IngestStatus{
				PlaceID: candidate.PlaceID,
				Status:  models.IngestStatusExists,
			})
			continue
		}

		restaurant := &models.Restaurant{
			PlaceID:      candidate.PlaceID,
			Name:         candidate.Name,
			Lat:          candidate.Lat,
			Lng:          candidate.Lng,
			Address:      normalizeAddress(candidate.Address),
			City:         city,
			Rating:       candidate.Rating,
			TotalRatings: candidate.TotalRatings,
			Photo:        models.NoPhoto,
		}

		err = s.repo.Create(ctx, restaurant)
		if errdefs.IsConflict(err) {
			// Raced with a concurrent batch; the row is there either way.
			statuses = append(statuses, models.IngestStatus{
				PlaceID: candidate.PlaceID,
				Status:  models.IngestStatusExists,
			})
			continue
		}
		if err != nil {
			return nil, err
		}

		statuses = append(statuses, models.IngestStatus{
			PlaceID: candidate.PlaceID,
			Status:  models.IngestStatusSaved,
			ID:      restaurant.ID,
		})
	}

	return statuses, nil
}

// normalizeAddress drops the trailing segment of a comma-separated address,
// which map providers use for the country. An address without a comma is
// kept as is.
func normalizeAddress(address string) string {
	if idx := strings.LastIndex(address, ","); idx >= 0 {
		return strings.TrimSpace(address[:idx])
	}
	return strings.TrimSpace(address)
}

// Create adds a single restaurant through the admin surface
func (s *RestaurantService) Create(ctx context.Context, req *models.CreateRestaurantRequest) (*models.Restaurant, error) {
	if strings.TrimSpace(req.PlaceID) == "" {
		return nil, fmt.Errorf("%w: place_id is required", errdefs.ErrInvalidArgument)
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", errdefs.ErrInvalidArgument)
	}

	restaurant := &models.Restaurant{
		PlaceID:      req.PlaceID,
		Name:         req.Name,
		Lat:          req.Lat,
		Lng:          req.Lng,
		Address:      req.Address,
		City:         req.City,
		Rating:       req.Rating,
		TotalRatings: req.TotalRatings,
		Photo:        models.NoPhoto,
	}

	if err := s.repo.Create(ctx, restaurant); err != nil {
		return nil, err
	}

	return restaurant, nil
}

// Update applies a partial update to a restaurant
func (s *RestaurantService) Update(ctx context.Context, id int, req *models.UpdateRestaurantRequest) error {
	if req.Empty() {
		return fmt.Errorf("%w: no fields to update", errdefs.ErrInvalidArgument)
	}

	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	return s.repo.Update(ctx, id, req)
}

// Delete removes a restaurant and all of its comments
func (s *RestaurantService) Delete(ctx context.Context, id int) error {
	return s.repo.DeleteWithComments(ctx, id)
}

// AttachPhoto stores an uploaded photo and records its served path on the
// restaurant. Returns the path the photo is reachable at.
func (s *RestaurantService) AttachPhoto(ctx context.Context, id int, file io.Reader, filename, contentType string) (string, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("%w: only image uploads are allowed", errdefs.ErrInvalidArgument)
	}

	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return "", err
	}

	stored, err := s.photos.Save(file, filename)
	if err != nil {
		return "", fmt.Errorf("failed to store photo: %w", err)
	}

	photoPath := s.uploadsBaseURL + "/" + stored
	if err := s.repo.UpdatePhoto(ctx, id, photoPath); err != nil {
		return "", err
	}

	return photoPath, nil
}
