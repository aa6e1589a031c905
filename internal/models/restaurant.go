package models

import "time"

// NoPhoto is the sentinel stored when a restaurant has no uploaded photo
const NoPhoto = "no photo"

// Ingestion outcome per candidate
const (
	IngestStatusSaved  = "saved"
	IngestStatusExists = "exists"
)

// Restaurant represents a venue in the catalog. PlaceID is the external
// place identifier and the natural key for deduplication; ID is internal.
type Restaurant struct {
	ID           int       `json:"id"`
	PlaceID      string    `json:"place_id"`
	Name         string    `json:"name"`
	Lat          float64   `json:"lat"`
	Lng          float64   `json:"lng"`
	Address      string    `json:"address"`
	City         string    `json:"city"`
	Rating       float64   `json:"rating"`
	TotalRatings int       `json:"total_ratings"`
	Photo        string    `json:"photos"`
	CreatedAt    time.Time `json:"created_at"`
}

// Point is a WGS84 coordinate
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// RestaurantCandidate is one entry of an ingestion batch
type RestaurantCandidate struct {
	PlaceID      string  `json:"place_id"`
	Name         string  `json:"name"`
	Lat          float64 `json:"lat"`
	Lng          float64 `json:"lng"`
	Address      string  `json:"address"`
	Rating       float64 `json:"rating"`
	TotalRatings int     `json:"total_ratings"`
}

// IngestRequest is the payload for POST /restaurants
type IngestRequest struct {
	SearchPoint Point                 `json:"searchPoint"`
	Restaurants []RestaurantCandidate `json:"restaurants"`
}

// IngestStatus reports the outcome for one candidate, in input order
type IngestStatus struct {
	PlaceID string `json:"place_id"`
	Status  string `json:"status"`
	ID      int    `json:"id,omitempty"`
}

// ListQuery holds the listing parameters of GET /restaurants
type ListQuery struct {
	Search string
	Sort   string
	Order  string
	Page   int
	Limit  int
}

// RestaurantList is the paginated listing envelope
type RestaurantList struct {
	Data  []Restaurant `json:"data"`
	Total int          `json:"total"`
}

// CreateRestaurantRequest is the payload for POST /admin/restaurants
type CreateRestaurantRequest struct {
	PlaceID      string  `json:"place_id"`
	Name         string  `json:"name"`
	Lat          float64 `json:"lat"`
	Lng          float64 `json:"lng"`
	Address      string  `json:"address"`
	City         string  `json:"city"`
	Rating       float64 `json:"rating"`
	TotalRatings int     `json:"total_ratings"`
}

// UpdateRestaurantRequest is the payload for PUT /admin/restaurants/{id}.
// Nil fields are left untouched.
type UpdateRestaurantRequest struct {
	Name         *string  `json:"name"`
	Address      *string  `json:"address"`
	City         *string  `json:"city"`
	Lat          *float64 `json:"lat"`
	Lng          *float64 `json:"lng"`
	Rating       *float64 `json:"rating"`
	TotalRatings *int     `json:"total_ratings"`
}

// Empty reports whether no field is set
func (r *UpdateRestaurantRequest) Empty() bool {
	return r.Name == nil && r.Address == nil && r.City == nil &&
		r.Lat == nil && r.Lng == nil && r.Rating == nil && r.TotalRatings == nil
}
