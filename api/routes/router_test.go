package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/de-energymain/buy-electricity-sub000/internal/purchases"
	"github.com/de-energymain/buy-electricity-sub000/internal/users"
	"github.com/de-energymain/buy-electricity-sub000/pkg/config"
	"github.com/de-energymain/buy-electricity-sub000/pkg/db/models"
	"github.com/de-energymain/buy-electricity-sub000/pkg/logger"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error { return nil }

type stubUsersService struct{}

func (stubUsersService) Register(ctx context.Context, params users.RegisterParams) (*models.User, bool, error) {
	return &models.User{WalletID: params.WalletID}, true, nil
}

func (stubUsersService) Get(ctx context.Context, walletID string) (*models.User, error) {
	return &models.User{WalletID: walletID}, nil
}

func (stubUsersService) List(ctx context.Context) ([]models.User, error) { return nil, nil }

func (stubUsersService) AddPanels(ctx context.Context, params users.AddPanelsParams) (*models.User, error) {
	return &models.User{WalletID: params.WalletID}, nil
}

func (stubUsersService) UpdateProfile(ctx context.Context, params users.ProfileParams) (*models.User, error) {
	return &models.User{WalletID: params.WalletID}, nil
}

func (stubUsersService) UpdateNotifications(ctx context.Context, params users.NotificationParams) (*models.User, error) {
	return &models.User{WalletID: params.WalletID}, nil
}

func (stubUsersService) Delete(ctx context.Context, walletID string) error { return nil }

type stubPurchasesService struct{}

func (stubPurchasesService) Record(ctx context.Context, params purchases.RecordParams) (*models.Purchase, error) {
	return &models.Purchase{TxHash: params.TxHash}, nil
}

func (stubPurchasesService) List(ctx context.Context, walletID string) ([]models.Purchase, error) {
	return nil, nil
}

func (stubPurchasesService) Delete(ctx context.Context, txHash string) error { return nil }

type stubEnergyService struct{}

func (stubEnergyService) Ingest(ctx context.Context) (int, int64, error) { return 0, 0, nil }

func (stubEnergyService) Latest(ctx context.Context) ([]models.EnergyReading, error) {
	return nil, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	cfg := &config.Config{}
	cfg.App.Env = "test"
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	return NewRouter(cfg, logg, stubPinger{}, stubPinger{}, nil,
		stubUsersService{}, stubPurchasesService{}, stubEnergyService{})
}

func TestRouterServesHealth(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/health/live", "/health/ready"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("%s returned %d", path, resp.Code)
		}
	}
}

func TestRouterServesMetrics(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("/metrics returned %d", resp.Code)
	}
}

func TestRouterRoutesAPIEndpoints(t *testing.T) {
	router := newTestRouter(t)

	cases := []struct {
		method string
		path   string
		body   string
		want   int
	}{
		{http.MethodPost, "/api/v1/users", `{"walletId":"0xabc"}`, http.StatusCreated},
		{http.MethodGet, "/api/v1/users", "", http.StatusOK},
		{http.MethodGet, "/api/v1/users/0xabc", "", http.StatusOK},
		{http.MethodPatch, "/api/v1/users/0xabc/panels", `{"panels":1,"cost":"500"}`, http.StatusOK},
		{http.MethodPatch, "/api/v1/users/0xabc/notifications", `{"email":false}`, http.StatusOK},
		{http.MethodDelete, "/api/v1/users/0xabc", "", http.StatusOK},
		{http.MethodPost, "/api/v1/purchases", `{"txHash":"0x1","walletId":"0xabc","panels":1}`, http.StatusCreated},
		{http.MethodGet, "/api/v1/purchases", "", http.StatusOK},
		{http.MethodDelete, "/api/v1/purchases/0x1", "", http.StatusOK},
		{http.MethodGet, "/api/v1/energy/latest", "", http.StatusOK},
	}

	for _, tc := range cases {
		var req *http.Request
		if tc.body != "" {
			req = httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
		} else {
			req = httptest.NewRequest(tc.method, tc.path, nil)
		}
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != tc.want {
			t.Fatalf("%s %s returned %d, want %d: %s", tc.method, tc.path, resp.Code, tc.want, resp.Body.String())
		}
	}
}
