package postgres

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/tramitefacil-api/internal/domain/calendar"
	"github.com/jhoicas/tramitefacil-api/internal/domain/entity"
)

func TestBuildWhere_SinFiltros(t *testing.T) {
	where, args := buildWhere(entity.ObligationFilter{Limit: 10})
	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestBuildWhere_Dashboard(t *testing.T) {
	pending := false
	today := calendar.Date(2024, 2, 15)
	to := calendar.AddDays(today, 30)

	where, args := buildWhere(entity.ObligationFilter{
		OwnerID: "u1", Completed: &pending, DueFrom: &today, DueTo: &to,
	})
	assert.Equal(t,
		" WHERE o.user_id = $1 AND o.completada = $2 AND o.fecha_vencimiento >= $3 AND o.fecha_vencimiento <= $4",
		where)
	assert.Equal(t, []any{"u1", false, today, to}, args)
}

func TestBuildWhere_Sucesora(t *testing.T) {
	before := calendar.Date(2024, 3, 1)
	where, args := buildWhere(entity.ObligationFilter{
		OwnerID: "u1", CompanyID: 7, Title: "IVA", DueBefore: &before,
	})
	assert.Equal(t,
		" WHERE o.user_id = $1 AND o.empresa_id = $2 AND o.titulo = $3 AND o.fecha_vencimiento < $4",
		where)
	assert.Equal(t, []any{"u1", int64(7), "IVA", before}, args)
}

func TestBuildSet_SoloCamposPresentes(t *testing.T) {
	done := true
	amount := decimal.RequireFromString("12.50")
	set, args := buildSet(entity.ObligationPatch{Completed: &done, EstimatedAmount: &amount})
	assert.Equal(t, "monto_estimado = $1, completada = $2", set)
	assert.Equal(t, []any{amount, true}, args)
}

func TestNullDecimal(t *testing.T) {
	assert.False(t, nullDecimal(nil).Valid)
	assert.Nil(t, fromNullDecimal(decimal.NullDecimal{}))

	d := decimal.NewFromInt(5)
	got := fromNullDecimal(nullDecimal(&d))
	if assert.NotNil(t, got) {
		assert.True(t, d.Equal(*got))
	}
}
