package importer

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"donorlink/internal/api"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockDoer struct {
	mock.Mock
}

func (m *MockDoer) Do(ctx context.Context, method, path string, body, out interface{}) error {
	args := m.Called(ctx, method, path, body, out)
	return args.Error(0)
}

func TestService_Get(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		doer := &MockDoer{}
		doer.On("Do", mock.Anything, http.MethodGet, "/drug-importer/4", nil, mock.Anything).
			Run(func(args mock.Arguments) {
				_ = json.Unmarshal([]byte(`{"id":4,"name":"MediCo Imports","licenseNumber":"DI-2231"}`), args.Get(4))
			}).Return(nil)

		svc := NewService(doer)
		imp, err := svc.Get(context.Background(), 4)

		assert.NoError(t, err)
		assert.Equal(t, "MediCo Imports", imp.Name)
		assert.Equal(t, "DI-2231", imp.LicenseNumber)
	})

	t.Run("NotFound", func(t *testing.T) {
		doer := &MockDoer{}
		doer.On("Do", mock.Anything, http.MethodGet, "/drug-importer/9", nil, mock.Anything).
			Return(&api.APIError{Status: http.StatusNotFound})

		svc := NewService(doer)
		_, err := svc.Get(context.Background(), 9)
		assert.ErrorIs(t, err, ErrImporterNotFound)
	})
}
