package service

import (
	"testing"

	"nakshatra/internal/domain"
	"nakshatra/internal/models"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type stubReviewStore struct {
	reviews  map[uint]*models.Review
	ratings  map[uint][]int
	upserted []*models.Review
}

func newStubReviewStore() *stubReviewStore {
	return &stubReviewStore{
		reviews: make(map[uint]*models.Review),
		ratings: make(map[uint][]int),
	}
}

func (s *stubReviewStore) Upsert(review *models.Review) error {
	s.upserted = append(s.upserted, review)
	s.ratings[review.AstrologerID] = append(s.ratings[review.AstrologerID], review.Rating)
	return nil
}

func (s *stubReviewStore) GetByID(id uint) (*models.Review, error) {
	r, ok := s.reviews[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return r, nil
}

func (s *stubReviewStore) UpdateStatus(id uint, status string) error {
	if r, ok := s.reviews[id]; ok {
		r.Status = status
	}
	return nil
}

func (s *stubReviewStore) ApprovedRatings(astrologerID uint) ([]int, error) {
	return s.ratings[astrologerID], nil
}

type ratingWrite struct {
	astrologerID uint
	rating       decimal.Decimal
	totalReviews int
}

type stubRatingSink struct {
	writes []ratingWrite
}

func (s *stubRatingSink) SetRating(id uint, rating decimal.Decimal, totalReviews int) error {
	s.writes = append(s.writes, ratingWrite{astrologerID: id, rating: rating, totalReviews: totalReviews})
	return nil
}

func TestSubmitRefreshesAggregate(t *testing.T) {
	store := newStubReviewStore()
	sink := &stubRatingSink{}
	svc := NewReviewService(store, sink, zerolog.Nop())

	if err := svc.Submit(1, 10, 7, 3, "ok", ""); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if err := svc.Submit(2, 11, 7, 5, "great", "accurate"); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if len(store.upserted) != 2 {
		t.Fatalf("upserted %d reviews, want 2", len(store.upserted))
	}
	if store.upserted[0].Status != domain.ReviewStatusApproved {
		t.Errorf("status = %q, want APPROVED", store.upserted[0].Status)
	}
	if len(sink.writes) != 2 {
		t.Fatalf("rating writes = %d, want 2", len(sink.writes))
	}
	last := sink.writes[1]
	if !last.rating.Equal(decimal.RequireFromString("4")) {
		t.Errorf("aggregate = %s, want 4 (mean of 3 and 5)", last.rating)
	}
	if last.totalReviews != 2 {
		t.Errorf("totalReviews = %d, want 2", last.totalReviews)
	}
}

func TestModerateRefreshesAggregate(t *testing.T) {
	store := newStubReviewStore()
	store.reviews[9] = &models.Review{ID: 9, AstrologerID: 7, Rating: 1, Status: domain.ReviewStatusApproved}
	sink := &stubRatingSink{}
	svc := NewReviewService(store, sink, zerolog.Nop())

	if err := svc.Moderate(9, domain.ReviewStatusRejected); err != nil {
		t.Fatalf("Moderate: %v", err)
	}
	if store.reviews[9].Status != domain.ReviewStatusRejected {
		t.Errorf("status = %q, want REJECTED", store.reviews[9].Status)
	}
	if len(sink.writes) != 1 {
		t.Errorf("rating writes = %d, want 1", len(sink.writes))
	}
}

func TestAverageRating(t *testing.T) {
	cases := []struct {
		ratings []int
		want    string
	}{
		{nil, "0"},
		{[]int{5}, "5"},
		{[]int{3, 5}, "4"},
		{[]int{5, 4, 4}, "4.3"},
		{[]int{1, 2}, "1.5"},
	}
	for _, tc := range cases {
		got := AverageRating(tc.ratings)
		if !got.Equal(decimal.RequireFromString(tc.want)) {
			t.Errorf("AverageRating(%v) = %s, want %s", tc.ratings, got, tc.want)
		}
	}
}
