package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/createx/registration/internal/settings/model"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&model.Setting{})
	require.NoError(t, err)

	return db
}

func TestRepository_GetSet(t *testing.T) {
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		repo := New(setupTestDB(t), zap.NewNop().Sugar())

		_, err := repo.Get(ctx, model.KeyUPIID)

		assert.ErrorIs(t, err, model.ErrSettingNotFound)
	})

	t.Run("set then get", func(t *testing.T) {
		repo := New(setupTestDB(t), zap.NewNop().Sugar())

		require.NoError(t, repo.Set(ctx, model.KeyUPIID, "createx@upi"))

		value, err := repo.Get(ctx, model.KeyUPIID)
		require.NoError(t, err)
		assert.Equal(t, "createx@upi", value)
	})

	t.Run("set overwrites", func(t *testing.T) {
		repo := New(setupTestDB(t), zap.NewNop().Sugar())

		require.NoError(t, repo.Set(ctx, model.KeyPaymentQR, "qr-v1.png"))
		require.NoError(t, repo.Set(ctx, model.KeyPaymentQR, "qr-v2.png"))

		value, err := repo.Get(ctx, model.KeyPaymentQR)
		require.NoError(t, err)
		assert.Equal(t, "qr-v2.png", value)
	})
}

func TestRepository_GetInt(t *testing.T) {
	ctx := context.Background()

	t.Run("unset key falls back", func(t *testing.T) {
		repo := New(setupTestDB(t), zap.NewNop().Sugar())

		value, err := repo.GetInt(ctx, model.KeyRegistrationLimit, model.DefaultRegistrationLimit)

		require.NoError(t, err)
		assert.Equal(t, int64(model.DefaultRegistrationLimit), value)
	})

	t.Run("stored value", func(t *testing.T) {
		repo := New(setupTestDB(t), zap.NewNop().Sugar())
		require.NoError(t, repo.Set(ctx, model.KeyRegistrationLimit, "120"))

		value, err := repo.GetInt(ctx, model.KeyRegistrationLimit, model.DefaultRegistrationLimit)

		require.NoError(t, err)
		assert.Equal(t, int64(120), value)
	})

	t.Run("garbage value falls back", func(t *testing.T) {
		repo := New(setupTestDB(t), zap.NewNop().Sugar())
		require.NoError(t, repo.Set(ctx, model.KeyRegistrationLimit, "plenty"))

		value, err := repo.GetInt(ctx, model.KeyRegistrationLimit, model.DefaultRegistrationLimit)

		require.NoError(t, err)
		assert.Equal(t, int64(model.DefaultRegistrationLimit), value)
	})
}
