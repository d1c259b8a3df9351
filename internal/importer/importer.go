package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"storefront-backend/internal/domain"
	"github.com/shopspring/decimal"
)

type ProductWriter interface {
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}

// CSVImporter reads catalog CSV exports and inserts/updates products.
type CSVImporter struct {
	reader      *csv.Reader
	productRepo ProductWriter
}

func NewCSVImporter(r io.Reader, repo ProductWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{
		reader:      csvr,
		productRepo: repo,
	}
}

// Run parses CSV rows and upserts one product per row. Rows without a name
// are skipped. Returns the number of imported products.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)

	imported := 0
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}

		product := parseRow(record, index)
		if product == nil {
			continue
		}
		if _, err := i.productRepo.Upsert(ctx, *product); err != nil {
			return imported, fmt.Errorf("upsert product %s: %w", product.Name, err)
		}
		imported++
	}

	return imported, nil
}

func headerIndex(headers []string) map[string]int {
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return index
}

func parseRow(record []string, index map[string]int) *domain.Product {
	name := field(record, index, "name")
	if name == "" {
		return nil
	}

	price, err := decimal.NewFromString(field(record, index, "price"))
	if err != nil {
		price = decimal.Zero
	}

	return &domain.Product{
		Name:        name,
		Description: field(record, index, "description"),
		Price:       price,
		Stock:       intField(record, index, "stock"),
		ImageURL:    field(record, index, "image_url"),
		Height:      floatField(record, index, "height"),
		Width:       floatField(record, index, "width"),
		Length:      floatField(record, index, "length"),
		Weight:      floatField(record, index, "weight"),
	}
}

func field(record []string, index map[string]int, name string) string {
	i, ok := index[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func intField(record []string, index map[string]int, name string) int {
	v, err := strconv.Atoi(field(record, index, name))
	if err != nil {
		return 0
	}
	return v
}

func floatField(record []string, index map[string]int, name string) float64 {
	v, err := strconv.ParseFloat(field(record, index, name), 64)
	if err != nil {
		return 0
	}
	return v
}
