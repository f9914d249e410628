package models

import (
	"time"
)

const (
	MinRating = 1
	MaxRating = 5
)

type Review struct {
	ID        int64     `json:"id"`
	AccountID int64     `json:"account_id"`
	ClientID  int64     `json:"client_id"`
	ServiceID int64     `json:"service_id"`
	Rating    int       `json:"rating"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateReviewRequest struct {
	Rating int    `json:"rating"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

type UpdateReviewRequest struct {
	Rating *int    `json:"rating,omitempty"`
	Title  *string `json:"title,omitempty"`
	Body   *string `json:"body,omitempty"`
}

type RatingResponse struct {
	AverageRating float64 `json:"average_rating"`
}

// RatingUpdate is pushed to websocket subscribers after a review write.
type RatingUpdate struct {
	ServiceID     int64   `json:"service_id"`
	AverageRating float64 `json:"average_rating"`
}

// ValidRating reports whether r is inside [MinRating, MaxRating].
func ValidRating(r int) bool {
	return r >= MinRating && r <= MaxRating
}
