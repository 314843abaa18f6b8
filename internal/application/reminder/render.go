package reminder

import (
	"bytes"
	"fmt"
	"html/template"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/jhoicas/tramitefacil-api/internal/domain/calendar"
	"github.com/jhoicas/tramitefacil-api/internal/domain/entity"
)

// Subject asunto de los correos de recordatorio.
const Subject = "Recordatorio de Obligaciones Pendientes"

var mailTemplate = template.Must(template.New("recordatorio").Parse(`<h3>Hola,</h3>
<p>Tienes las siguientes obligaciones a punto de vencer:</p>
<ul>
{{- range .}}
<li><strong>{{.Title}}</strong> ({{.Company}}) - Vence el <strong>{{.Due}}</strong>{{if .Amount}} - Monto estimado: {{.Amount}}{{end}}</li>
{{- end}}
</ul>
<p>Inicia sesión en TrámiteFácil para gestionarlas.</p>
`))

type mailLine struct {
	Title   string
	Company string
	Due     string
	Amount  string
}

var printer = message.NewPrinter(language.Spanish)

// FormatAmount formatea un monto en colones con separadores en español (₡150.000,50).
func FormatAmount(o *entity.Obligation) string {
	if o.EstimatedAmount == nil {
		return ""
	}
	return "₡" + printer.Sprint(number.Decimal(o.EstimatedAmount.InexactFloat64(), number.Scale(2)))
}

// RenderHTML genera el cuerpo del correo para las obligaciones de un usuario.
// El template escapa títulos y nombres de empresa.
func RenderHTML(rows []entity.ObligationView) (string, error) {
	lines := make([]mailLine, 0, len(rows))
	for i := range rows {
		r := &rows[i]
		lines = append(lines, mailLine{
			Title:   r.Title,
			Company: r.CompanyDisplayName,
			Due:     calendar.LongES(r.DueDate),
			Amount:  FormatAmount(&r.Obligation),
		})
	}
	var buf bytes.Buffer
	if err := mailTemplate.Execute(&buf, lines); err != nil {
		return "", fmt.Errorf("render recordatorio: %w", err)
	}
	return buf.String(), nil
}
