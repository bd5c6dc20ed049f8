package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"restaurant-pos/internal/domain"
)

// ImportCSV parses the positional bulk format
// (name, category, subCategory, tax, packagingCharge, productCost),
// skips the header row, silently drops rows with fewer than six columns or
// without name/category/subCategory, and appends the rest to the catalog.
// Returns the imported items.
func (s *Service) ImportCSV(r io.Reader) ([]domain.MenuItem, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // short rows are skipped, not errors

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	var items []domain.MenuItem
	for _, row := range rows[1:] { // skip header
		if len(row) < 6 {
			continue
		}
		item := domain.MenuItem{
			ID:              uuid.NewString(),
			Name:            strings.TrimSpace(row[0]),
			Category:        strings.TrimSpace(row[1]),
			SubCategory:     strings.TrimSpace(row[2]),
			Tax:             parseFloat(row[3]),
			PackagingCharge: parseFloat(row[4]),
			ProductCost:     parseFloat(row[5]),
		}
		if item.Name == "" || item.Category == "" || item.SubCategory == "" {
			continue
		}
		items = append(items, item)
	}
	if len(items) == 0 {
		return nil, nil
	}
	if err := s.db.Create(&items).Error; err != nil {
		return nil, fmt.Errorf("import csv: %w", err)
	}
	return items, nil
}

func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}
