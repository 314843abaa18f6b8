package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tramitefacil-api/internal/application/dto"
	"github.com/jhoicas/tramitefacil-api/internal/application/usecase"
	"github.com/jhoicas/tramitefacil-api/internal/domain"
	"github.com/jhoicas/tramitefacil-api/internal/infrastructure/memstore"
)

func TestCompanyCreate_YListPorDueno(t *testing.T) {
	store := memstore.New()
	uc := usecase.NewCompanyUseCase(store.Companies())
	ctx := context.Background()

	out, err := uc.Create(ctx, ownerA, dto.CreateCompanyRequest{
		TradeName: " Panadería Sol ", LegalName: "Sol y Trigo S.A.", TaxID: "3-101-555555", Phone: strPtr("2222-3333"),
	})
	require.NoError(t, err)
	assert.NotZero(t, out.ID)
	assert.Equal(t, "Panadería Sol", out.TradeName)
	assert.Equal(t, ownerA, out.OwnerID)

	_, err = uc.Create(ctx, ownerB, dto.CreateCompanyRequest{TradeName: "B", LegalName: "B", TaxID: "1"})
	require.NoError(t, err)

	list, err := uc.List(ctx, ownerA)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, out.ID, list[0].ID)

	empty, err := uc.List(ctx, "cccccccc-0000-0000-0000-000000000003")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestCompanyCreate_CamposRequeridos(t *testing.T) {
	uc := usecase.NewCompanyUseCase(memstore.New().Companies())
	_, err := uc.Create(context.Background(), ownerA, dto.CreateCompanyRequest{TradeName: "   ", LegalName: "X", TaxID: "1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
