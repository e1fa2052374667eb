package quotation

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
	ListByRequest(ctx context.Context, requestID uint) ([]Quotation, error)
	Update(ctx context.Context, q Quotation) (*Quotation, error)
	RejectPending(ctx context.Context, requestID uint) error
}

type service struct {
	api Doer
}

func NewService(api Doer) Service {
	return &service{api: api}
}

func (s *service) ListByRequest(ctx context.Context, requestID uint) ([]Quotation, error) {
	var quotes []Quotation
	path := fmt.Sprintf("/quotations/request/%d", requestID)
	if err := s.api.Do(ctx, http.MethodGet, path, nil, &quotes); err != nil {
		return nil, err
	}
	return quotes, nil
}

func (s *service) Update(ctx context.Context, q Quotation) (*Quotation, error) {
	var updated Quotation
	path := fmt.Sprintf("/quotations/%d", q.ID)
	err := s.api.Do(ctx, http.MethodPut, path, q, &updated)
	if err != nil {
		var apiErr *api.APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			return nil, ErrQuotationNotFound
		}
		return nil, err
	}
	return &updated, nil
}

// RejectPending flips every still-pending quotation on the request to
// REJECTED server-side.
func (s *service) RejectPending(ctx context.Context, requestID uint) error {
	path := fmt.Sprintf("/quotations/request/%d/reject-pending", requestID)
	return s.api.Do(ctx, http.MethodPut, path, nil, nil)
}
