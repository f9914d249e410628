package search

import "servicehub/internal/models"

// AverageRating returns the arithmetic mean of the ratings, or exactly 0
// for an empty set. Pass the reviews of a single target only.
func AverageRating(reviews []models.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	var sum int
	for _, r := range reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(len(reviews))
}
