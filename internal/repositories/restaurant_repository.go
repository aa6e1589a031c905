package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/containerd/errdefs"
	"github.com/restaurantapp/backend/internal/models"
	"go.uber.org/zap"
)

// sortColumns is the allow-list for the listing sort field. Anything else
// falls back to the table's natural order.
var sortColumns = map[string]string{
	"name":          "name",
	"rating":        "rating",
	"total_ratings": "total_ratings",
}

const restaurantColumns = `id, place_id, name, lat, lng, address, city, rating, total_ratings, photos, created_at`

// restaurantRepository implements restaurant data access over the restaurants table
type restaurantRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewRestaurantRepository creates a new restaurant repository
func NewRestaurantRepository(db *sql.DB, logger *zap.Logger) *restaurantRepository {
	return &restaurantRepository{
		db:     db,
		logger: logger,
	}
}

func scanRestaurant(row interface{ Scan(dest ...any) error }, r *models.Restaurant) error {
	return row.Scan(
		&r.ID,
		&r.PlaceID,
		&r.Name,
		&r.Lat,
		&r.Lng,
		&r.Address,
		&r.City,
		&r.Rating,
		&r.TotalRatings,
		&r.Photo,
		&r.CreatedAt,
	)
}

// List returns one page of restaurants matching the query together with the
// total count of matching rows. The count reflects the search filter only,
// never the pagination.
func (r *restaurantRepository) List(ctx context.Context, q models.ListQuery) ([]models.Restaurant, int, error) {
	where := ""
	var args []any
	if q.Search != "" {
		where = ` WHERE name LIKE ? OR city LIKE ? OR address LIKE ?`
		pattern := "%" + q.Search + "%"
		args = append(args, pattern, pattern, pattern)
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM restaurants` + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		r.logger.Error("failed to count restaurants", zap.Error(err))
		return nil, 0, fmt.Errorf("failed to count restaurants: %w", err)
	}

	orderBy := ""
	if column, ok := sortColumns[q.Sort]; ok {
		direction := "ASC"
		if q.Order == "desc" {
			direction = "DESC"
		}
		orderBy = fmt.Sprintf(" ORDER BY %s %s", column, direction)
	}

	offset := (q.Page - 1) * q.Limit
	query := `SELECT ` + restaurantColumns + ` FROM restaurants` + where + orderBy + ` LIMIT ? OFFSET ?`
	args = append(args, q.Limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to query restaurants", zap.Error(err))
		return nil, 0, fmt.Errorf("failed to query restaurants: %w", err)
	}
	defer rows.Close()

	var restaurants []models.Restaurant
	for rows.Next() {
		var restaurant models.Restaurant
		if err := scanRestaurant(rows, &restaurant); err != nil {
			return nil, 0, fmt.Errorf("failed to scan restaurant: %w", err)
		}
		restaurants = append(restaurants, restaurant)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating rows: %w", err)
	}

	return restaurants, total, nil
}

// ListAll returns every restaurant, for the admin table
func (r *restaurantRepository) ListAll(ctx context.Context) ([]models.Restaurant, error) {
	query := `SELECT ` + restaurantColumns + ` FROM restaurants ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("failed to query restaurants", zap.Error(err))
		return nil, fmt.Errorf("failed to query restaurants: %w", err)
	}
	defer rows.Close()

	var restaurants []models.Restaurant
	for rows.Next() {
		var restaurant models.Restaurant
		if err := scanRestaurant(rows, &restaurant); err != nil {
			return nil, fmt.Errorf("failed to scan restaurant: %w", err)
		}
		restaurants = append(restaurants, restaurant)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return restaurants, nil
}

// GetByPlaceID retrieves a restaurant by its external place identifier
func (r *restaurantRepository) GetByPlaceID(ctx context.Context, placeID string) (*models.Restaurant, error) {
	query := `SELECT ` + restaurantColumns + ` FROM restaurants WHERE place_id = ? LIMIT 1`

	restaurant := &models.Restaurant{}
	err := scanRestaurant(r.db.QueryRowContext(ctx, query, placeID), restaurant)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: restaurant not found", errdefs.ErrNotFound)
	}
	if err != nil {
		r.logger.Error("failed to get restaurant by place id", zap.Error(err), zap.String("place_id", placeID))
		return nil, fmt.Errorf("failed to get restaurant by place id: %w", err)
	}

	return restaurant, nil
}

// GetByID retrieves a restaurant by its internal id
func (r *restaurantRepository) GetByID(ctx context.Context, id int) (*models.Restaurant, error) {
	query := `SELECT ` + restaurantColumns + ` FROM restaurants WHERE id = ? LIMIT 1`

	restaurant := &models.Restaurant{}
	err := scanRestaurant(r.db.QueryRowContext(ctx, query, id), restaurant)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: restaurant not found", errdefs.ErrNotFound)
	}
	if err != nil {
		r.logger.Error("failed to get restaurant by id", zap.Error(err), zap.Int("id", id))
		return nil, fmt.Errorf("failed to get restaurant by id: %w", err)
	}

	return restaurant, nil
}

// ExistsByPlaceID checks if a restaurant exists with the given place identifier
func (r *restaurantRepository) ExistsByPlaceID(ctx context.Context, placeID string) (bool, error) {
	query := `SELECT EXISTS(SELECT * FROM restaurants WHERE place_id = ?)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, placeID).Scan(&exists); err != nil {
		r.logger.Error("failed to check place id existence", zap.Error(err), zap.String("place_id", placeID))
		return false, fmt.Errorf("failed to check place id existence: %w", err)
	}

	return exists, nil
}

// Create inserts a new restaurant. A duplicate place identifier is reported
// as a conflict so concurrent ingestion races collapse into the "exists"
// outcome instead of creating duplicate rows.
func (r *restaurantRepository) Create(ctx context.Context, restaurant *models.Restaurant) error {
	query := `
		INSERT INTO restaurants (place_id, name, lat, lng, address, city, rating, total_ratings, photos)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		restaurant.PlaceID,
		restaurant.Name,
		restaurant.Lat,
		restaurant.Lng,
		restaurant.Address,
		restaurant.City,
		restaurant.Rating,
		restaurant.TotalRatings,
		restaurant.Photo,
	)
	if err != nil {
		if isDuplicateEntry(err) {
			return fmt.Errorf("%w: place identifier already exists", errdefs.ErrConflict)
		}
		r.logger.Error("failed to create restaurant", zap.Error(err), zap.String("place_id", restaurant.PlaceID))
		return fmt.Errorf("failed to create restaurant: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	restaurant.ID = int(id)
	return nil
}

// Update applies the non-nil fields of req to the restaurant row
func (r *restaurantRepository) Update(ctx context.Context, id int, req *models.UpdateRestaurantRequest) error {
	var sets []string
	var args []any

	if req.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *req.Name)
	}
	if req.Address != nil {
		sets = append(sets, "address = ?")
		args = append(args, *req.Address)
	}
	if req.City != nil {
		sets = append(sets, "city = ?")
		args = append(args, *req.City)
	}
	if req.Lat != nil {
		sets = append(sets, "lat = ?")
		args = append(args, *req.Lat)
	}
	if req.Lng != nil {
		sets = append(sets, "lng = ?")
		args = append(args, *req.Lng)
	}
	if req.Rating != nil {
		sets = append(sets, "rating = ?")
		args = append(args, *req.Rating)
	}
	if req.TotalRatings != nil {
		sets = append(sets, "total_ratings = ?")
		args = append(args, *req.TotalRatings)
	}

	if len(sets) == 0 {
		return fmt.Errorf("%w: no fields to update", errdefs.ErrInvalidArgument)
	}

	query := "UPDATE restaurants SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	args = append(args, id)

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.Error("failed to update restaurant", zap.Error(err), zap.Int("id", id))
		return fmt.Errorf("failed to update restaurant: %w", err)
	}

	return nil
}

// UpdatePhoto records the served path of the uploaded photo
func (r *restaurantRepository) UpdatePhoto(ctx context.Context, id int, photoPath string) error {
	query := `UPDATE restaurants SET photos = ? WHERE id = ?`

	if _, err := r.db.ExecContext(ctx, query, photoPath, id); err != nil {
		r.logger.Error("failed to update restaurant photo", zap.Error(err), zap.Int("id", id))
		return fmt.Errorf("failed to update restaurant photo: %w", err)
	}

	return nil
}

// DeleteWithComments deletes a restaurant together with every comment
// referencing its place identifier, inside a single transaction so a
// partial failure cannot leave orphan comments behind.
func (r *restaurantRepository) DeleteWithComments(ctx context.Context, id int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var placeID string
	err = tx.QueryRowContext(ctx, `SELECT place_id FROM restaurants WHERE id = ? LIMIT 1`, id).Scan(&placeID)
	if err == sql.ErrNoRows {
		return fmt.Errorf("%w: restaurant not found", errdefs.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to get restaurant place id: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM comments WHERE place_id = ?`, placeID); err != nil {
		r.logger.Error("failed to delete restaurant comments", zap.Error(err), zap.Int("id", id))
		return fmt.Errorf("failed to delete restaurant comments: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM restaurants WHERE id = ?`, id); err != nil {
		r.logger.Error("failed to delete restaurant", zap.Error(err), zap.Int("id", id))
		return fmt.Errorf("failed to delete restaurant: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
