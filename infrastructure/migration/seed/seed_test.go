package seed

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/kenlo-pricing-api/infrastructure/repository"
	"github.com/vfg2006/kenlo-pricing-api/infrastructure/repository/mocks"
	"github.com/vfg2006/kenlo-pricing-api/internal/domain"
	"github.com/vfg2006/kenlo-pricing-api/internal/usecases/quoting"
	"go.uber.org/mock/gomock"
)

const seedPath = "../../../configs/pricing.json"

func TestPricingConfig(t *testing.T) {
	ctx := context.Background()

	t.Run("Origem com versão não é alterada", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockPricingConfigRepository(ctrl)
		repo.EXPECT().Latest(gomock.Any()).Return(&domain.PricingConfigVersion{Version: "v1"}, nil)
		repo.EXPECT().Save(gomock.Any(), gomock.Any()).Times(0)

		seeded, err := PricingConfig(ctx, repo, seedPath)
		require.NoError(t, err)
		assert.False(t, seeded)
	})

	t.Run("Origem vazia recebe o documento inicial", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockPricingConfigRepository(ctrl)
		repo.EXPECT().Latest(gomock.Any()).Return(nil, repository.ErrVersionNotFound)
		repo.EXPECT().
			Save(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, version *domain.PricingConfigVersion) error {
				assert.Equal(t, "2026.01.05-seed01", version.Version)
				assert.Equal(t, "seed", version.CreatedBy)
				assert.NotEmpty(t, version.Document)
				return nil
			})

		seeded, err := PricingConfig(ctx, repo, seedPath)
		require.NoError(t, err)
		assert.True(t, seeded)
	})

	t.Run("Documento inicial inválido não é gravado", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "pricing.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"version":"x"}`), 0o644))

		ctrl := gomock.NewController(t)
		repo := mocks.NewMockPricingConfigRepository(ctrl)
		repo.EXPECT().Latest(gomock.Any()).Return(nil, repository.ErrVersionNotFound)

		_, err := PricingConfig(ctx, repo, path)
		require.Error(t, err)
		assert.True(t, quoting.IsConfigError(err))
	})

	t.Run("Falha da origem é propagada", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockPricingConfigRepository(ctrl)
		repo.EXPECT().Latest(gomock.Any()).Return(nil, errors.New("connection refused"))

		_, err := PricingConfig(ctx, repo, seedPath)
		assert.Error(t, err)
	})
}
