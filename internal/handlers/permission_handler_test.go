package handlers_test

import (
	"context"
	"github.com/dudsmessias/new-automacao-esp-seedf/internal/handlers"
	"github.com/dudsmessias/new-automacao-esp-seedf/internal/model"
	"github.com/dudsmessias/new-automacao-esp-seedf/internal/rbac"
	"github.com/dudsmessias/new-automacao-esp-seedf/internal/repo"
	"github.com/dudsmessias/new-automacao-esp-seedf/internal/service"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// Mocks: любой вызов хранилища из запрещённого запроса — ошибка теста.
type mockEspRepo struct{ mock.Mock }

func (m *mockEspRepo) List(ctx context.Context, f repo.EspFilter) ([]model.Esp, error) {
	args := m.Called(ctx, f)
	if v, ok := args.Get(0).([]model.Esp); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockEspRepo) GetByID(ctx context.Context, id string) (*model.Esp, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*model.Esp); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockEspRepo) Create(ctx context.Context, e *model.Esp) error {
	return m.Called(ctx, e).Error(0)
}
func (m *mockEspRepo) Save(ctx context.Context, e *model.Esp) error {
	return m.Called(ctx, e).Error(0)
}
func (m *mockEspRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

var _ repo.EspRepository = (*mockEspRepo)(nil)

type mockCadernoRepo struct{ mock.Mock }

func (m *mockCadernoRepo) List(ctx context.Context, f repo.CadernoFilter) ([]model.Caderno, error) {
	args := m.Called(ctx, f)
	if v, ok := args.Get(0).([]model.Caderno); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockCadernoRepo) GetByID(ctx context.Context, id string) (*model.Caderno, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*model.Caderno); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockCadernoRepo) GetByIDs(ctx context.Context, ids []string) ([]model.Caderno, error) {
	args := m.Called(ctx, ids)
	if v, ok := args.Get(0).([]model.Caderno); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockCadernoRepo) Create(ctx context.Context, c *model.Caderno) error {
	return m.Called(ctx, c).Error(0)
}
func (m *mockCadernoRepo) Save(ctx context.Context, c *model.Caderno) error {
	return m.Called(ctx, c).Error(0)
}
func (m *mockCadernoRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockCadernoRepo) CountEsps(ctx context.Context, id string) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

var _ repo.CadernoRepository = (*mockCadernoRepo)(nil)

func newMockRouter(t *testing.T, esps *mockEspRepo, cadernos *mockCadernoRepo) http.Handler {
	t.Helper()
	cfg := testConfig()
	logger := zap.NewNop().Sugar()
	svc := handlers.Services{
		Users:    service.NewUserService(nil, nil, cfg.EmailPattern),
		Cadernos: service.NewCadernoService(cadernos, nil, logger, false),
		Esps:     service.NewEspService(esps, cadernos, nil, logger),
		Arquivos: service.NewArquivoService(nil, esps, nil, logger, 1<<20),
		Items:    service.NewItemService(nil, nil),
	}
	return handlers.NewHandler(svc, rbac.DefaultPolicy(), logger, cfg).Router
}

func mockToken(t *testing.T, perfil model.Perfil) string {
	t.Helper()
	return bearer(t, testConfig(), &model.User{ID: "u-" + string(perfil), Email: "x@seedf.df.gov.br", Perfil: perfil})
}

func TestPermissions_StorageNotReached(t *testing.T) {
	esps := &mockEspRepo{}
	cadernos := &mockCadernoRepo{}
	router := newMockRouter(t, esps, cadernos)

	cases := []struct {
		name   string
		perfil model.Perfil
		method string
		path   string
		body   any
	}{
		{"gerente creates esp", model.PerfilGerente, http.MethodPost, "/api/esp", espBody("ESP-999", "c1")},
		{"gerente quick-creates esp", model.PerfilGerente, http.MethodPost, "/api/esp/nova", map[string]any{"cadernosIds": []string{"c1"}}},
		{"gerente edits esp", model.PerfilGerente, http.MethodPatch, "/api/esp/e1", map[string]any{"titulo": "Novo título"}},
		{"arquiteto deletes esp", model.PerfilArquiteto, http.MethodDelete, "/api/esp/e1", nil},
		{"chefe deletes esp", model.PerfilChefeDeNucleo, http.MethodDelete, "/api/esp/e1", nil},
		{"gerente creates caderno", model.PerfilGerente, http.MethodPost, "/api/cadernos", map[string]any{"titulo": "Caderno"}},
		{"arquiteto deletes caderno", model.PerfilArquiteto, http.MethodDelete, "/api/cadernos/c1", nil},
		{"gerente uploads file", model.PerfilGerente, http.MethodPost, "/api/files/upload", nil},
		{"gerente deletes file", model.PerfilGerente, http.MethodDelete, "/api/files/f1", nil},
		{"arquiteto views logs", model.PerfilArquiteto, http.MethodGet, "/api/logs", nil},
		{"gerente lists users", model.PerfilGerente, http.MethodGet, "/api/users", nil},
		{"chefe runs seed", model.PerfilChefeDeNucleo, http.MethodPost, "/api/admin/seed", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := doRequest(t, router, tc.method, tc.path, tc.body, mockToken(t, tc.perfil))
			assert.Equal(t, http.StatusForbidden, rr.Code)
			assert.Equal(t, "insufficient permissions", errorOf(t, rr))
		})
	}

	// ни одного обращения к хранилищу
	assert.Empty(t, esps.Calls)
	assert.Empty(t, cadernos.Calls)
}

func TestPermissions_AllowedRolesReachStorage(t *testing.T) {
	for _, perfil := range rbac.DefaultPolicy().Roles(rbac.EspDelete) {
		t.Run(string(perfil), func(t *testing.T) {
			esps := &mockEspRepo{}
			esps.On("GetByID", mock.Anything, "e1").Return((*model.Esp)(nil), repo.ErrNotFound).Once()
			router := newMockRouter(t, esps, &mockCadernoRepo{})

			rr := doRequest(t, router, http.MethodDelete, "/api/esp/e1", nil, mockToken(t, perfil))
			assert.Equal(t, http.StatusNotFound, rr.Code)
			esps.AssertExpectations(t)
			esps.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
		})
	}
}

func TestPermissions_InternalErrorHidden(t *testing.T) {
	esps := &mockEspRepo{}
	esps.On("List", mock.Anything, mock.Anything).Return(nil, assert.AnError)
	router := newMockRouter(t, esps, &mockCadernoRepo{})

	rr := doRequest(t, router, http.MethodGet, "/api/esp", nil, mockToken(t, model.PerfilArquiteto))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "internal error", errorOf(t, rr))
}
