package handler

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/createx/registration/internal/config"
	"github.com/createx/registration/internal/settings/model"
	"github.com/createx/registration/internal/settings/repository"
)

// stubStore returns fixed references.
type stubStore struct{}

func (stubStore) StoreProvisional(ctx context.Context, r io.Reader, contentTypeHint string) (string, error) {
	return "provisional-qr.png", nil
}

func (stubStore) Finalize(ctx context.Context, ref, nameHint string) (string, error) {
	return nameHint + ".png", nil
}

func (stubStore) Open(ctx context.Context, ref string) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader("")), nil
}

func setupHandler(t *testing.T) (*gin.Engine, repository.Repository) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Setting{}))

	repo := repository.New(db, zap.NewNop().Sugar())
	h := New(repo, stubStore{}, config.RegistrationConfig{EntryFee: 1750}, zap.NewNop().Sugar())

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/payment-settings", h.PaymentSettings)
	r.GET("/admin/limit", h.Limit)
	r.PUT("/admin/limit", h.UpdateLimit)
	r.PUT("/admin/settings/payment", h.UpdatePaymentSettings)
	return r, repo
}

func TestHandler_PaymentSettings(t *testing.T) {
	t.Run("empty defaults", func(t *testing.T) {
		router, _ := setupHandler(t)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/payment-settings", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"qr_asset_ref":"","upi_id":"","amount":1750}`, w.Body.String())
	})

	t.Run("configured values", func(t *testing.T) {
		router, repo := setupHandler(t)
		ctx := context.Background()
		require.NoError(t, repo.Set(ctx, model.KeyPaymentQR, "payment-qr.png"))
		require.NoError(t, repo.Set(ctx, model.KeyUPIID, "createx@upi"))

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/payment-settings", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "payment-qr.png")
		assert.Contains(t, w.Body.String(), "createx@upi")
	})
}

func TestHandler_Limit(t *testing.T) {
	t.Run("default limit", func(t *testing.T) {
		router, _ := setupHandler(t)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/admin/limit", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"limit":75}`, w.Body.String())
	})

	t.Run("update limit", func(t *testing.T) {
		router, repo := setupHandler(t)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("PUT", "/admin/limit", strings.NewReader(`{"limit":120}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		value, err := repo.GetInt(context.Background(), model.KeyRegistrationLimit, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(120), value)
	})

	t.Run("rejects non-positive limit", func(t *testing.T) {
		router, _ := setupHandler(t)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("PUT", "/admin/limit", strings.NewReader(`{"limit":0}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_UpdatePaymentSettings(t *testing.T) {
	t.Run("updates UPI ID", func(t *testing.T) {
		router, repo := setupHandler(t)

		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		require.NoError(t, mw.WriteField("upi_id", "createx@upi"))
		require.NoError(t, mw.Close())

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("PUT", "/admin/settings/payment", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		value, err := repo.Get(context.Background(), model.KeyUPIID)
		require.NoError(t, err)
		assert.Equal(t, "createx@upi", value)
	})

	t.Run("updates QR image", func(t *testing.T) {
		router, repo := setupHandler(t)

		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		fw, err := mw.CreateFormFile("qr_code", "qr.png")
		require.NoError(t, err)
		_, err = fw.Write([]byte("qr-bytes"))
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("PUT", "/admin/settings/payment", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		value, err := repo.Get(context.Background(), model.KeyPaymentQR)
		require.NoError(t, err)
		assert.Equal(t, "payment-qr.png", value)
	})

	t.Run("empty form is rejected", func(t *testing.T) {
		router, _ := setupHandler(t)

		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		require.NoError(t, mw.Close())

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("PUT", "/admin/settings/payment", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
