package service

import (
	"nakshatra/internal/domain"
	"nakshatra/internal/models"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type reviewStore interface {
	Upsert(review *models.Review) error
	GetByID(id uint) (*models.Review, error)
	UpdateStatus(id uint, status string) error
	ApprovedRatings(astrologerID uint) ([]int, error)
}

type ratingSink interface {
	SetRating(id uint, rating decimal.Decimal, totalReviews int) error
}

// ReviewService stores post-session feedback and keeps the
// astrologer's aggregate rating in sync. The aggregate is recomputed
// from scratch on every write; at this scale that beats maintaining a
// running average.
type ReviewService struct {
	reviews     reviewStore
	astrologers ratingSink
	log         zerolog.Logger
}

func NewReviewService(reviews reviewStore, astrologers ratingSink, log zerolog.Logger) *ReviewService {
	return &ReviewService{
		reviews:     reviews,
		astrologers: astrologers,
		log:         log.With().Str("component", "review").Logger(),
	}
}

// Submit creates or overwrites the session's review and refreshes the
// astrologer aggregate. Reviews are auto-approved; admin moderation can
// reject them later.
func (s *ReviewService) Submit(sessionID, userID, astrologerID uint, rating int, comment, tags string) error {
	review := &models.Review{
		SessionID:    sessionID,
		UserID:       userID,
		AstrologerID: astrologerID,
		Rating:       rating,
		Comment:      comment,
		Tags:         tags,
		Status:       domain.ReviewStatusApproved,
	}
	if err := s.reviews.Upsert(review); err != nil {
		return err
	}
	s.refreshAggregate(astrologerID)
	return nil
}

// Moderate sets a review's status and refreshes the affected aggregate.
func (s *ReviewService) Moderate(reviewID uint, status string) error {
	review, err := s.reviews.GetByID(reviewID)
	if err != nil {
		return err
	}
	if err := s.reviews.UpdateStatus(reviewID, status); err != nil {
		return err
	}
	s.refreshAggregate(review.AstrologerID)
	return nil
}

// refreshAggregate recomputes rating and review count. Failures are
// logged only: a stale aggregate never fails the primary request.
func (s *ReviewService) refreshAggregate(astrologerID uint) {
	ratings, err := s.reviews.ApprovedRatings(astrologerID)
	if err != nil {
		s.log.Warn().Err(err).Uint("astrologer_id", astrologerID).Msg("rating recompute read failed")
		return
	}
	avg := AverageRating(ratings)
	if err := s.astrologers.SetRating(astrologerID, avg, len(ratings)); err != nil {
		s.log.Warn().Err(err).Uint("astrologer_id", astrologerID).Msg("rating recompute write failed")
	}
}

// AverageRating is the arithmetic mean rounded to one decimal place;
// zero when there are no approved reviews.
func AverageRating(ratings []int) decimal.Decimal {
	if len(ratings) == 0 {
		return decimal.Zero
	}
	sum := decimal.Zero
	for _, r := range ratings {
		sum = sum.Add(decimal.NewFromInt(int64(r)))
	}
	return sum.Div(decimal.NewFromInt(int64(len(ratings)))).Round(1)
}
