package report

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/san-kum/cnconv/internal/analysis"
)

const (
	Header      = "h\tE_h\tr"
	Rule        = "----------------------"
	Placeholder = "***"
)

// WriteTable writes the tab-separated error table. The finest resolution
// carries the placeholder in place of a rate.
func WriteTable(w io.Writer, t *analysis.Table) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, Header)
	fmt.Fprintln(bw, Rule)
	for _, row := range t.Rows {
		fmt.Fprintf(bw, "%s\t%s\t%s\n", FormatFloat(row.H), FormatFloat(row.MaxError), rateCell(row))
	}
	return bw.Flush()
}

func rateCell(row analysis.Row) string {
	if !row.HasRate {
		return Placeholder
	}
	return FormatFloat(row.Rate)
}

type jsonRow struct {
	N        int      `json:"n"`
	H        float64  `json:"h"`
	MaxError float64  `json:"e_h"`
	Rate     *float64 `json:"r"`
}

type jsonTable struct {
	Integrator    string    `json:"integrator"`
	Order         int       `json:"order"`
	EndTime       float64   `json:"end_time"`
	Coefficient   float64   `json:"coefficient"`
	Initial       float64   `json:"initial"`
	ObservedOrder *float64  `json:"observed_order"`
	Rows          []jsonRow `json:"rows"`
}

// WriteJSON encodes the table with a null rate on the finest row.
// encoding/json cannot represent NaN or Inf; such tables return an error.
func WriteJSON(w io.Writer, t *analysis.Table) error {
	out := jsonTable{
		Integrator:  t.Integrator,
		Order:       t.Order,
		EndTime:     t.Params.T,
		Coefficient: t.Params.A,
		Initial:     t.Params.X0,
		Rows:        make([]jsonRow, len(t.Rows)),
	}
	if order, ok := t.ObservedOrder(); ok {
		out.ObservedOrder = &order
	}
	for i, row := range t.Rows {
		out.Rows[i] = jsonRow{N: row.N, H: row.H, MaxError: row.MaxError}
		if row.HasRate {
			r := row.Rate
			out.Rows[i].Rate = &r
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// WriteCSV writes n,h,e_h,r rows; the finest row has an empty rate.
func WriteCSV(w io.Writer, t *analysis.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"n", "h", "e_h", "r"}); err != nil {
		return err
	}
	for _, row := range t.Rows {
		rate := ""
		if row.HasRate {
			rate = strconv.FormatFloat(row.Rate, 'g', -1, 64)
		}
		rec := []string{
			strconv.Itoa(row.N),
			strconv.FormatFloat(row.H, 'g', -1, 64),
			strconv.FormatFloat(row.MaxError, 'g', -1, 64),
			rate,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func WritePretty(w io.Writer, t *analysis.Table) error {
	_, err := io.WriteString(w, Pretty(t)+"\n")
	return err
}

// Formats lists the names accepted by Write.
var Formats = []string{"table", "pretty", "json", "csv"}

func ValidFormat(name string) bool {
	for _, f := range Formats {
		if f == name {
			return true
		}
	}
	return false
}

// Write dispatches on the output format name.
func Write(w io.Writer, format string, t *analysis.Table) error {
	switch strings.ToLower(format) {
	case "", "table":
		return WriteTable(w, t)
	case "pretty":
		return WritePretty(w, t)
	case "json":
		return WriteJSON(w, t)
	case "csv":
		return WriteCSV(w, t)
	default:
		return fmt.Errorf("unknown format: %s (available: %v)", format, Formats)
	}
}
