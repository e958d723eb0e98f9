package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"demand-profile/internal/data"
)

func main() {
	var (
		scanDir    = flag.String("dir", "./data", "Directory to scan for historical demand CSVs")
		outputPath = flag.String("output", "", "Output file path (default: ./data/sources.json)")
		seedFile   = flag.String("seed", "", "Path to existing sources file to use as seed")
	)
	flag.Parse()

	if *outputPath == "" {
		*outputPath = data.GetDefaultSourcesPath()
	}

	// Load existing sources as seed if provided
	var existing []data.Source
	if *seedFile != "" {
		if list, err := data.LoadSources(*seedFile); err == nil {
			existing = list.Sources
			fmt.Printf("Loaded %d existing sources from seed file\n", len(existing))
		}
	} else {
		if list, err := data.LoadSources(*outputPath); err == nil {
			existing = list.Sources
			fmt.Printf("Loaded %d existing sources from %s\n", len(existing), *outputPath)
		}
	}

	sources, err := scanForSources(*scanDir, existing)
	if err != nil {
		log.Fatalf("Failed to scan for sources: %v", err)
	}
	fmt.Printf("Found %d total sources\n", len(sources))

	list := &data.SourceList{
		UpdatedAt: time.Now().Format(time.RFC3339),
		Sources:   sources,
	}
	if err := data.SaveSources(list, *outputPath); err != nil {
		log.Fatalf("Failed to save sources: %v", err)
	}

	fmt.Printf("Saved %d sources to %s\n", len(sources), *outputPath)
}

// scanForSources probes every CSV under dir as an hourly demand series and
// registers the ones that parse. Seed entries survive even when their file
// is missing from the scan.
func scanForSources(dir string, seed []data.Source) ([]data.Source, error) {
	byID := make(map[string]data.Source)
	for _, s := range seed {
		byID[s.ID] = s
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".csv") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		records, err := data.LoadHistoryCSV(path)
		if err != nil {
			fmt.Printf("Skipping %s: %v\n", e.Name(), err)
			continue
		}

		id := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		src := data.Source{
			ID:         id,
			Name:       id,
			Path:       path,
			Resolution: "hourly",
			Description: fmt.Sprintf("%d hourly records, %s to %s",
				len(records),
				records[0].Timestamp.Format("2006-01-02"),
				records[len(records)-1].Timestamp.Format("2006-01-02")),
		}
		if prev, ok := byID[id]; ok && prev.Name != "" {
			src.Name = prev.Name
		}
		byID[id] = src
		fmt.Printf("Registered %s (%d records)\n", id, len(records))
	}

	out := make([]data.Source, 0, len(byID))
	for _, s := range byID {
		out = append(out, s)
	}
	return out, nil
}
