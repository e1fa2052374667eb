package importer

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"donorlink/internal/api"
)

var ErrImporterNotFound = errors.New("drug importer not found")

type Doer interface {
	Do(ctx context.Context, method, path string, body, out interface{}) error
}

type Service interface {
	Get(ctx context.Context, id uint) (*DrugImporter, error)
}

type service struct {
	api Doer
}

func NewService(api Doer) Service {
	return &service{api: api}
}

func (s *service) Get(ctx context.Context, id uint) (*DrugImporter, error) {
	var imp DrugImporter
	err := s.api.Do(ctx, http.MethodGet, fmt.Sprintf("/drug-importer/%d", id), nil, &imp)
	if err != nil {
		var apiErr *api.APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			return nil, ErrImporterNotFound
		}
		return nil, err
	}
	return &imp, nil
}
