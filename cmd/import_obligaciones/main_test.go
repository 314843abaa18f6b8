package main

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tramitefacil-api/internal/domain/calendar"
	"github.com/jhoicas/tramitefacil-api/internal/domain/entity"
)

const owner = "6f1c2b9e-8a43-4c55-9d1e-0b7f3a2c4d10"

func TestDecodeInput_Latin1Auto(t *testing.T) {
	// "Declaración" en ISO-8859-1: ó = 0xF3
	data := []byte("titulo;fecha\nDeclaraci\xf3n;2024-01-31\n")
	r, err := decodeInput(data, "auto")
	require.NoError(t, err)
	b, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Contains(t, string(b), "Declaración")
}

func TestDecodeInput_UTF8ConBOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("Patente;2024-03-15\n")...)
	r, err := decodeInput(data, "auto")
	require.NoError(t, err)
	b, _ := io.ReadAll(r)
	assert.Equal(t, "Patente;2024-03-15\n", string(b))

	_, err = decodeInput(data, "ebcdic")
	assert.Error(t, err)
}

func TestParseRecords(t *testing.T) {
	in := strings.NewReader(strings.Join([]string{
		"Título;Fecha;Monto;Frecuencia",
		"IVA mensual;31/01/2024;150.000,50;Mensual",
		"Patente municipal;2024-03-15;;",
		"",
		"CCSS; 2024-02-10 ;85000;unica",
	}, "\n"))

	recs, err := parseRecords(in)
	require.NoError(t, err)
	require.Len(t, recs, 3)

	assert.Equal(t, "IVA mensual", recs[0].Title)
	assert.Equal(t, calendar.Date(2024, 1, 31), recs[0].DueDate)
	require.NotNil(t, recs[0].Amount)
	assert.Equal(t, "150000.5", recs[0].Amount.String())
	assert.Equal(t, entity.FrequencyMonthly, recs[0].Frequency)

	assert.Nil(t, recs[1].Amount)
	assert.Equal(t, entity.FrequencyUnique, recs[1].Frequency)

	assert.Equal(t, calendar.Date(2024, 2, 10), recs[2].DueDate)
	assert.Equal(t, "85000", recs[2].Amount.String())
}

func TestParseRecords_Errores(t *testing.T) {
	cases := map[string]string{
		"titulo vacío":    ";2024-01-01",
		"fecha inválida":  "IVA;2024-13-40",
		"monto negativo":  "IVA;2024-01-01;-5",
		"monto inválido":  "IVA;2024-01-01;abc",
		"frecuencia":      "IVA;2024-01-01;10;Anual",
		"al menos titulo": "IVA",
	}
	for want, input := range cases {
		t.Run(want, func(t *testing.T) {
			_, err := parseRecords(strings.NewReader(input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "línea 1")
			assert.Contains(t, err.Error(), want)
		})
	}
}

func TestWriteSQL(t *testing.T) {
	recs, err := parseRecords(strings.NewReader("Permiso d'Salud;2024-05-01;1000;Mensual\nRótulo;2024-06-01\n"))
	require.NoError(t, err)

	var b strings.Builder
	require.NoError(t, writeSQL(&b, 12, owner, recs))
	sql := b.String()

	assert.True(t, strings.HasPrefix(sql, "-- Obligaciones importadas"))
	assert.Contains(t, sql, "BEGIN;")
	assert.Contains(t, sql, "COMMIT;")
	assert.Equal(t, 2, strings.Count(sql, `INSERT INTO "Obligacion"`))
	assert.Equal(t, 2, strings.Count(sql, "WHERE NOT EXISTS"))
	assert.Contains(t, sql, "SELECT 12, '"+owner+"', 'Permiso d''Salud', DATE '2024-05-01', 1000.00, 'Mensual', false")
	assert.Contains(t, sql, "'Rótulo', DATE '2024-06-01', NULL, 'Única', false")
}
