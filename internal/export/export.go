// Package export writes the reconciled tables to disk as a CSV book,
// one file per sheet.
package export

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"balanz_export/internal/reconcile"
)

// Sheet is one named table of rows, header first.
type Sheet struct {
	Name string
	Rows [][]string
}

// Book is an ordered collection of sheets.
type Book []Sheet

// TitulosSheet builds the resolved-quotes sheet.
func TitulosSheet(rows []reconcile.QuoteRow) Sheet {
	out := [][]string{{"Ticker", "Fecha", "Valor", "Compra", "Venta"}}
	for _, r := range rows {
		out = append(out, []string{r.Ticker, r.Date, r.Value.String(), r.Buy.String(), r.Sell.String()})
	}
	return Sheet{Name: "Titulos", Rows: out}
}

// FlujosSheet builds the projected cash-flow sheet.
func FlujosSheet(rows []reconcile.CashFlowRow) Sheet {
	out := [][]string{{"Especie", "Fecha", "Residual", "Renta", "Amortizacion", "Renta/Amortizacion", "Total", "Moneda"}}
	for _, r := range rows {
		out = append(out, []string{
			r.Instrument,
			r.Date,
			r.Residual.String(),
			r.Income.String(),
			r.Amortization.String(),
			r.IncomeAmortization.String(),
			r.Total.String(),
			r.Currency,
		})
	}
	return Sheet{Name: "Flujos", Rows: out}
}

// WriteCSV writes every sheet of the book as <dir>/<name>.csv.
func WriteCSV(dir string, book Book) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	for _, sheet := range book {
		path := filepath.Join(dir, sheet.Name+".csv")
		if err := writeSheet(path, sheet); err != nil {
			return err
		}
		log.Printf("[Export] Wrote %d rows to %s", len(sheet.Rows), path)
	}

	return nil
}

func writeSheet(path string, sheet Sheet) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.WriteAll(sheet.Rows); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}

	return f.Close()
}
