// Package pdf genera el reporte imprimible de obligaciones de una empresa.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre comercial + Cédula  │  Título + Fecha        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  EMPRESA: Razón social / Teléfono                            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Obligación | Vence | Frecuencia | Monto | Estado     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Pendiente / Completado / Total estimado            │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tramitefacil-api/internal/application/ports"
	"github.com/jhoicas/tramitefacil-api/internal/domain/calendar"
	"github.com/jhoicas/tramitefacil-api/internal/domain/entity"
)

var _ ports.ObligationReportGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRed     = &props.Color{Red: 180, Green: 30, Blue: 30}
	colorGreen   = &props.Color{Red: 20, Green: 120, Blue: 60}
)

// Estados mostrados en la tabla.
const (
	statusPending   = "Pendiente"
	statusOverdue   = "Vencida"
	statusCompleted = "Completada"
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa ports.ObligationReportGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateObligationReport genera el PDF y devuelve sus bytes. generatedOn es la fecha de
// referencia para marcar vencidas.
func (g *MarotoPDFGenerator) GenerateObligationReport(
	_ context.Context,
	company *entity.Company,
	obligations []entity.ObligationView,
	generatedOn time.Time,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de obligaciones", true).
		WithAuthor(company.DisplayName(), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(company, generatedOn))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(companyRow(company))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	if len(obligations) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("La empresa no tiene obligaciones registradas.", props.Text{
				Size: 8, Align: align.Center, Color: colorGray, Top: 2,
			}),
		)))
	}
	m.AddRows(tableDetailRows(obligations, generatedOn)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(Totals(obligations)))

	m.AddRows(row.New(8).Add(col.New(12).Add(
		text.New("Generado por TrámiteFácil. Los montos son estimaciones registradas por el usuario.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ReportTotals sumas del reporte; los montos ausentes cuentan 0.
type ReportTotals struct {
	Pending   decimal.Decimal
	Completed decimal.Decimal
	Total     decimal.Decimal
}

// Totals calcula los totales por estado.
func Totals(obligations []entity.ObligationView) ReportTotals {
	t := ReportTotals{Pending: decimal.Zero, Completed: decimal.Zero}
	for i := range obligations {
		amount := obligations[i].AmountOrZero()
		if obligations[i].Completed {
			t.Completed = t.Completed.Add(amount)
		} else {
			t.Pending = t.Pending.Add(amount)
		}
	}
	t.Total = t.Pending.Add(t.Completed)
	return t
}

// Status estado de la obligación respecto a today.
func Status(o *entity.Obligation, today time.Time) string {
	switch {
	case o.Completed:
		return statusCompleted
	case o.DueDate.Before(today):
		return statusOverdue
	default:
		return statusPending
	}
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre comercial + cédula (izq) y título + fecha (der).
func headerRow(company *entity.Company, generatedOn time.Time) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(company.DisplayName(), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Cédula jurídica: "+nonEmpty(company.TaxID, "—"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("REPORTE DE OBLIGACIONES", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Fecha: "+generatedOn.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

// companyRow: datos legales de la empresa.
func companyRow(company *entity.Company) core.Row {
	phone := "—"
	if company.Phone != nil && *company.Phone != "" {
		phone = *company.Phone
	}
	return row.New(12).Add(
		col.New(12).Add(
			text.New("DATOS DE LA EMPRESA", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Razón social: %s   |   Tel: %s",
				nonEmpty(company.LegalName, "—"), phone,
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de obligaciones.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Obligación", 5, align.Left),
		h("Vence", 2, align.Center),
		h("Frecuencia", 1, align.Center),
		h("Monto est.", 2, align.Right),
		h("Estado", 2, align.Center),
	)
}

// tableDetailRows: una fila por obligación.
func tableDetailRows(obligations []entity.ObligationView, today time.Time) []core.Row {
	result := make([]core.Row, 0, len(obligations))
	for i := range obligations {
		o := &obligations[i].Obligation
		status := Status(o, today)
		statusColor := colorGray
		switch status {
		case statusOverdue:
			statusColor = colorRed
		case statusCompleted:
			statusColor = colorGreen
		}
		amount := "—"
		if o.EstimatedAmount != nil {
			amount = "CRC " + formatMoney(*o.EstimatedAmount)
		}
		result = append(result, row.New(7).Add(
			col.New(5).Add(text.New(o.Title, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(2).Add(text.New(calendar.Format(o.DueDate), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(1).Add(text.New(string(o.Frequency), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(amount, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(status, props.Text{Size: 8, Align: align.Center, Top: 1, Color: statusColor})),
		))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(t ReportTotals) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2})
	}

	return row.New(20).Add(
		col.New(4),
		col.New(4).Add(
			label("Pendiente:"),
			label("Completado:"),
			grandLabel("TOTAL ESTIMADO:"),
		),
		col.New(4).Add(
			text.New("CRC "+formatMoney(t.Pending), props.Text{Size: 9, Align: align.Right, Right: 1}),
			text.New("CRC "+formatMoney(t.Completed), props.Text{Size: 9, Align: align.Right, Right: 1, Top: 5}),
			text.New("CRC "+formatMoney(t.Total), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 10,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney formatea con puntos de miles y coma decimal.
// Ej: 25000 → "25.000,00", 1234567.5 → "1.234.567,50"
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	intPart, frac, _ := strings.Cut(s, ".")

	n := len(intPart)
	buf := make([]byte, 0, n+n/3+4)
	if neg {
		buf = append(buf, '-')
	}
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	buf = append(buf, ',')
	buf = append(buf, frac...)
	return string(buf)
}
