package donation

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"donorlink/internal/api"
)

// Doer is the slice of the API client this package uses.
type Doer interface {
	Do(ctx context.Context, method, path string, body, out interface{}) error
}

type Service interface {
	Get(ctx context.Context, requestID uint) (*DonationRequest, error)
	ListByPatient(ctx context.Context) ([]DonationRequest, error)
	SetDefaultPrice(ctx context.Context, requestID uint, price float64) (*DonationRequest, error)
}

type service struct {
	api Doer
}

func NewService(api Doer) Service {
	return &service{api: api}
}

func (s *service) Get(ctx context.Context, requestID uint) (*DonationRequest, error) {
	var req DonationRequest
	err := s.api.Do(ctx, http.MethodGet, fmt.Sprintf("/donation-requests/%d", requestID), nil, &req)
	if err != nil {
		var apiErr *api.APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	return &req, nil
}

func (s *service) ListByPatient(ctx context.Context) ([]DonationRequest, error) {
	var reqs []DonationRequest
	if err := s.api.Do(ctx, http.MethodGet, "/donation-requests", nil, &reqs); err != nil {
		return nil, err
	}
	return reqs, nil
}

// SetDefaultPrice records the discounted total of an accepted quotation
// on the request.
func (s *service) SetDefaultPrice(ctx context.Context, requestID uint, price float64) (*DonationRequest, error) {
	var req DonationRequest
	path := fmt.Sprintf("/donation-requests/%d/default-price", requestID)
	if err := s.api.Do(ctx, http.MethodPut, path, price, &req); err != nil {
		return nil, fmt.Errorf("failed to set default price: %w", err)
	}
	return &req, nil
}
