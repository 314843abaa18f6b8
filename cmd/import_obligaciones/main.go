// import_obligaciones genera un script SQL que carga obligaciones desde un CSV exportado de una
// hoja de cálculo (separador ";", columnas titulo;fecha;monto;frecuencia).
//
// Uso: go run ./cmd/import_obligaciones -empresa 12 -user <uuid> [-encoding auto|utf8|latin1] [-out archivo.sql] obligaciones.csv
//
// El CSV puede venir en UTF-8 o ISO-8859-1 (Excel en Windows). La fecha acepta 2006-01-02 o
// 02/01/2006; el monto acepta "150000", "150000.50" o "150.000,50". El script es idempotente:
// no vuelve a insertar una obligación con el mismo título y vencimiento para la empresa.
package main

import (
	"bytes"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/tramitefacil-api/internal/domain/calendar"
	"github.com/jhoicas/tramitefacil-api/internal/domain/entity"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// record fila válida del CSV.
type record struct {
	Title     string
	DueDate   time.Time
	Amount    *decimal.Decimal
	Frequency entity.Frequency
}

func main() {
	companyID := flag.Int64("empresa", 0, "ID de la empresa destino")
	owner := flag.String("user", "", "UUID del usuario dueño de la empresa")
	encoding := flag.String("encoding", "auto", "codificación del CSV: auto, utf8 o latin1")
	outPath := flag.String("out", "", "archivo de salida (por defecto stdout)")
	flag.Parse()

	if *companyID <= 0 || flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Uso: import_obligaciones -empresa ID -user UUID [-encoding auto|utf8|latin1] [-out archivo.sql] archivo.csv")
		os.Exit(2)
	}
	if _, err := uuid.Parse(*owner); err != nil {
		fmt.Fprintf(os.Stderr, "UUID de usuario inválido: %v\n", err)
		os.Exit(2)
	}

	data, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}
	in, err := decodeInput(data, *encoding)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}
	records, err := parseRecords(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Procesar CSV: %v\n", err)
		os.Exit(1)
	}

	out := io.Writer(os.Stdout)
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}
	if err := writeSQL(out, *companyID, strings.ToLower(*owner), records); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "Generadas %d obligaciones para la empresa %d\n", len(records), *companyID)
}

// decodeInput devuelve el contenido como UTF-8. En modo auto, un archivo que no es UTF-8 válido
// se interpreta como ISO-8859-1.
func decodeInput(data []byte, encoding string) (io.Reader, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	switch strings.ToLower(encoding) {
	case "utf8", "utf-8":
		return bytes.NewReader(data), nil
	case "latin1", "iso-8859-1", "iso8859-1":
		return transform.NewReader(bytes.NewReader(data), charmap.ISO8859_1.NewDecoder()), nil
	case "auto", "":
		if utf8.Valid(data) {
			return bytes.NewReader(data), nil
		}
		return transform.NewReader(bytes.NewReader(data), charmap.ISO8859_1.NewDecoder()), nil
	}
	return nil, fmt.Errorf("codificación no soportada: %q", encoding)
}

// parseRecords lee las filas; la cabecera es opcional. Un error indica el número de línea.
func parseRecords(r io.Reader) ([]record, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var out []record
	line := 0
	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		if line == 1 && isHeader(fields) {
			continue
		}
		if len(fields) == 1 && strings.TrimSpace(fields[0]) == "" {
			continue
		}
		rec, err := parseRecord(fields)
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func isHeader(fields []string) bool {
	first := strings.ToLower(strings.TrimSpace(fields[0]))
	return first == "titulo" || first == "título"
}

func parseRecord(fields []string) (record, error) {
	if len(fields) < 2 {
		return record{}, errors.New("se esperan al menos titulo y fecha")
	}
	get := func(i int) string {
		if i < len(fields) {
			return strings.TrimSpace(fields[i])
		}
		return ""
	}

	rec := record{Title: get(0), Frequency: entity.FrequencyUnique}
	if rec.Title == "" {
		return record{}, errors.New("titulo vacío")
	}
	due, err := parseDate(get(1))
	if err != nil {
		return record{}, err
	}
	rec.DueDate = due

	if s := get(2); s != "" {
		amount, err := parseAmount(s)
		if err != nil {
			return record{}, err
		}
		rec.Amount = &amount
	}
	if s := get(3); s != "" {
		f, ok := entity.ParseFrequency(s)
		if !ok {
			return record{}, fmt.Errorf("frecuencia inválida: %q", s)
		}
		rec.Frequency = f
	}
	return rec, nil
}

func parseDate(s string) (time.Time, error) {
	if d, err := calendar.Parse(s); err == nil {
		return d, nil
	}
	t, err := time.Parse("02/01/2006", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("fecha inválida: %q", s)
	}
	return calendar.DateOf(t), nil
}

// parseAmount acepta punto o coma decimal; si hay coma, los puntos son separadores de miles.
func parseAmount(s string) (decimal.Decimal, error) {
	norm := strings.ReplaceAll(s, " ", "")
	if strings.Contains(norm, ",") {
		norm = strings.ReplaceAll(norm, ".", "")
		norm = strings.Replace(norm, ",", ".", 1)
	}
	d, err := decimal.NewFromString(norm)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("monto inválido: %q", s)
	}
	if d.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("monto negativo: %q", s)
	}
	return d, nil
}

func writeSQL(w io.Writer, companyID int64, owner string, records []record) error {
	var b strings.Builder
	b.WriteString("-- Obligaciones importadas desde CSV\n")
	fmt.Fprintf(&b, "-- Empresa %d, usuario %s\n\n", companyID, owner)
	b.WriteString("BEGIN;\n\n")
	for _, r := range records {
		amount := "NULL"
		if r.Amount != nil {
			amount = r.Amount.StringFixed(2)
		}
		title := escapeSQL(r.Title)
		due := calendar.Format(r.DueDate)
		b.WriteString(`INSERT INTO "Obligacion" (empresa_id, user_id, titulo, fecha_vencimiento, monto_estimado, frecuencia, completada)` + "\n")
		fmt.Fprintf(&b, "SELECT %d, '%s', '%s', DATE '%s', %s, '%s', false\n",
			companyID, owner, title, due, amount, r.Frequency)
		fmt.Fprintf(&b, `WHERE NOT EXISTS (SELECT 1 FROM "Obligacion" WHERE empresa_id = %d AND titulo = '%s' AND fecha_vencimiento = DATE '%s');`+"\n",
			companyID, title, due)
	}
	b.WriteString("\nCOMMIT;\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
