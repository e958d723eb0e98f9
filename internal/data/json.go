package data

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"demand-profile/internal/targets"
)

// TargetsFile is the JSON shape for externally supplied annual energy
// targets.
//
// Example:
//
//	{
//	  "targets": [
//	    {"year": 2025, "energy_mwh": 912000, "enabled": true}
//	  ]
//	}
type TargetsFile struct {
	Targets []TargetEntry `json:"targets"`
}

// TargetEntry is one forecast year. Enabled defaults to true when omitted.
type TargetEntry struct {
	Year      int      `json:"year"`
	EnergyMWh float64  `json:"energy_mwh"`
	Enabled   *bool    `json:"enabled,omitempty"`
	Source    string   `json:"source,omitempty"`
	Notes     []string `json:"notes,omitempty"`
}

// LoadTargetsJSON reads annual targets from a JSON file, skipping disabled
// entries and non-positive energies.
func LoadTargetsJSON(path string) (targets.Annual, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file TargetsFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	out := targets.Annual{}
	for _, t := range file.Targets {
		if t.Enabled != nil && !*t.Enabled {
			continue
		}
		if t.Year <= 0 || t.EnergyMWh <= 0 {
			continue
		}
		out[t.Year] = t.EnergyMWh
	}
	return out, nil
}

// LoadTargetsCSV reads a fixed-format two-column table: year, energy_mwh.
func LoadTargetsCSV(path string) (targets.Annual, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	out := targets.Annual{}
	for i, row := range rows {
		if len(row) < 2 {
			continue
		}
		year, yerr := strconv.Atoi(strings.TrimSpace(row[0]))
		energy, eerr := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
		if yerr != nil || eerr != nil {
			if i == 0 {
				continue // header
			}
			return nil, fmt.Errorf("%s row %d: expected year,energy_mwh", path, i+1)
		}
		if year > 0 && energy > 0 {
			out[year] = energy
		}
	}
	return out, nil
}
