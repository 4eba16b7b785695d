package trafficgen

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"credscore/internal/models"
	"credscore/internal/schema"
)

// LoadReferenceCSV reads the labeled reference dataset. The file must carry a
// header row with a TARGET column and all ten feature columns; extra columns
// are ignored.
func LoadReferenceCSV(path string) ([]models.ReferenceRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open reference data %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read reference header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}
	if _, ok := index["TARGET"]; !ok {
		return nil, fmt.Errorf("reference data missing TARGET column")
	}
	for _, name := range schema.FeatureOrder {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("reference data missing feature column %s", name)
		}
	}

	var rows []models.ReferenceRow
	for line := 2; ; line++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read reference data line %d: %w", line, err)
		}

		var row models.ReferenceRow
		target, err := strconv.Atoi(record[index["TARGET"]])
		if err != nil {
			return nil, fmt.Errorf("reference data line %d: bad TARGET: %w", line, err)
		}
		row.Target = target

		for _, name := range schema.FeatureOrder {
			v, err := strconv.ParseFloat(record[index[name]], 64)
			if err != nil {
				return nil, fmt.Errorf("reference data line %d: bad %s: %w", line, name, err)
			}
			row.Features.Set(name, v)
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("reference data %s has no rows", path)
	}
	return rows, nil
}
