package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"servicehub/internal/models"
	"servicehub/internal/search"
)

type ReviewStore interface {
	CreateReview(ctx context.Context, rev models.Review) (models.Review, error)
	GetReviewByID(ctx context.Context, id int64) (models.Review, error)
	GetReviewsByServiceID(ctx context.Context, serviceID int64) ([]models.Review, error)
	GetReviewsByAccountID(ctx context.Context, accountID int64) ([]models.Review, error)
	UpdateReview(ctx context.Context, rev models.Review) (models.Review, error)
	DeleteReview(ctx context.Context, id int64) error
}

type ServiceReader interface {
	GetServiceByID(ctx context.Context, id int64) (models.Service, error)
}

// RatingNotifier receives the fresh average after every review write.
type RatingNotifier interface {
	RatingChanged(update models.RatingUpdate)
}

type ReviewService struct {
	ReviewRepo  ReviewStore
	ServiceRepo ServiceReader
	Notifier    RatingNotifier
	Log         zerolog.Logger
}

func (s *ReviewService) CreateReview(ctx context.Context, clientID, serviceID int64, req models.CreateReviewRequest) (models.Review, error) {
	if !models.ValidRating(req.Rating) {
		return models.Review{}, models.ErrInvalidRating
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return models.Review{}, fmt.Errorf("%w: title is required", models.ErrInvalidArgument)
	}

	svc, err := s.ServiceRepo.GetServiceByID(ctx, serviceID)
	if err != nil {
		return models.Review{}, err
	}
	if svc.AccountID == clientID {
		return models.Review{}, models.ErrSelfReview
	}

	rev, err := s.ReviewRepo.CreateReview(ctx, models.Review{
		AccountID: svc.AccountID,
		ClientID:  clientID,
		ServiceID: serviceID,
		Rating:    req.Rating,
		Title:     title,
		Body:      req.Body,
	})
	if err != nil {
		return models.Review{}, err
	}
	s.notify(ctx, serviceID)
	return rev, nil
}

func (s *ReviewService) GetReviewsByServiceID(ctx context.Context, serviceID int64) ([]models.Review, error) {
	if _, err := s.ServiceRepo.GetServiceByID(ctx, serviceID); err != nil {
		return nil, err
	}
	return s.ReviewRepo.GetReviewsByServiceID(ctx, serviceID)
}

func (s *ReviewService) GetReviewsByAccountID(ctx context.Context, accountID int64) ([]models.Review, error) {
	return s.ReviewRepo.GetReviewsByAccountID(ctx, accountID)
}

func (s *ReviewService) UpdateReview(ctx context.Context, callerID, id int64, req models.UpdateReviewRequest) (models.Review, error) {
	rev, err := s.ReviewRepo.GetReviewByID(ctx, id)
	if err != nil {
		return models.Review{}, err
	}
	if rev.ClientID != callerID {
		return models.Review{}, models.ErrNotOwner
	}

	if req.Rating != nil {
		if !models.ValidRating(*req.Rating) {
			return models.Review{}, models.ErrInvalidRating
		}
		rev.Rating = *req.Rating
	}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return models.Review{}, fmt.Errorf("%w: title is required", models.ErrInvalidArgument)
		}
		rev.Title = title
	}
	if req.Body != nil {
		rev.Body = *req.Body
	}

	updated, err := s.ReviewRepo.UpdateReview(ctx, rev)
	if err != nil {
		return models.Review{}, err
	}
	s.notify(ctx, rev.ServiceID)
	return updated, nil
}

func (s *ReviewService) DeleteReview(ctx context.Context, callerID, id int64) error {
	rev, err := s.ReviewRepo.GetReviewByID(ctx, id)
	if err != nil {
		return err
	}
	if rev.ClientID != callerID {
		return models.ErrNotOwner
	}
	if err := s.ReviewRepo.DeleteReview(ctx, id); err != nil {
		return err
	}
	s.notify(ctx, rev.ServiceID)
	return nil
}

// ServiceRating is the mean rating of the service's reviews, 0 when none.
func (s *ReviewService) ServiceRating(ctx context.Context, serviceID int64) (float64, error) {
	if _, err := s.ServiceRepo.GetServiceByID(ctx, serviceID); err != nil {
		return 0, err
	}
	reviews, err := s.ReviewRepo.GetReviewsByServiceID(ctx, serviceID)
	if err != nil {
		return 0, fmt.Errorf("reviews for service %d: %w", serviceID, err)
	}
	return search.AverageRating(reviews), nil
}

// AccountRating is the mean over every review the account's services got.
func (s *ReviewService) AccountRating(ctx context.Context, accountID int64) (float64, error) {
	reviews, err := s.ReviewRepo.GetReviewsByAccountID(ctx, accountID)
	if err != nil {
		return 0, fmt.Errorf("reviews for account %d: %w", accountID, err)
	}
	return search.AverageRating(reviews), nil
}

func (s *ReviewService) notify(ctx context.Context, serviceID int64) {
	if s.Notifier == nil {
		return
	}
	reviews, err := s.ReviewRepo.GetReviewsByServiceID(ctx, serviceID)
	if err != nil {
		s.Log.Warn().Err(err).Int64("service_id", serviceID).Msg("rating refresh failed")
		return
	}
	s.Notifier.RatingChanged(models.RatingUpdate{
		ServiceID:     serviceID,
		AverageRating: search.AverageRating(reviews),
	})
}
