package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"sedash/internal/config"
	"sedash/internal/infrastructure"
	"sedash/internal/store"
	"sedash/pkg/contracts/domain"
)

// seed loads indicator observations from a CSV file into the store.
//
// Expected columns:
//
//	indicator_id,indicator_name,unit,geo_code,geo_name,parent_geo,year,value
//
// An empty value column records the year as present-but-unmeasured, which
// the analytics engine skips but the charts still render as a gap.
func main() {
	file := flag.String("file", "", "CSV file to load")
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "usage: seed -file observations.csv")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("failed to initialize logger", slog.String("error", err.Error()))
		os.Exit(1)
	}

	st, err := store.Open(cfg.Store.Path, logger)
	if err != nil {
		logger.Error("failed to open store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer st.Close()

	f, err := os.Open(*file)
	if err != nil {
		logger.Error("failed to open input", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer f.Close()

	loaded, err := loadCSV(context.Background(), st, f, logger)
	if err != nil {
		logger.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("seed complete",
		slog.String("file", *file),
		slog.Int("observations", loaded))
}

// loadCSV reads observation rows and upserts catalog entries and
// observations. It returns the number of observations written.
func loadCSV(ctx context.Context, st *store.Store, r io.Reader, logger *slog.Logger) (int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 8

	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read header: %w", err)
	}
	if strings.TrimSpace(strings.TrimPrefix(header[0], "\uFEFF")) != "indicator_id" {
		return 0, fmt.Errorf("unexpected header %q, want indicator_id first", header[0])
	}

	seenIndicators := make(map[string]bool)
	seenGeographies := make(map[string]bool)
	loaded := 0

	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return loaded, fmt.Errorf("line %d: %w", line, err)
		}

		indicatorID := strings.TrimSpace(record[0])
		geoCode := strings.ToUpper(strings.TrimSpace(record[3]))
		if indicatorID == "" || geoCode == "" {
			return loaded, fmt.Errorf("line %d: indicator_id and geo_code are required", line)
		}

		if !seenIndicators[indicatorID] {
			err := st.UpsertIndicator(ctx, domain.Indicator{
				ID:   indicatorID,
				Name: strings.TrimSpace(record[1]),
				Unit: strings.TrimSpace(record[2]),
			})
			if err != nil {
				return loaded, fmt.Errorf("line %d: upsert indicator: %w", line, err)
			}
			seenIndicators[indicatorID] = true
		}

		if !seenGeographies[geoCode] {
			err := st.UpsertGeography(ctx, domain.Geography{
				Code:   geoCode,
				Name:   strings.TrimSpace(record[4]),
				Parent: strings.ToUpper(strings.TrimSpace(record[5])),
			})
			if err != nil {
				return loaded, fmt.Errorf("line %d: upsert geography: %w", line, err)
			}
			seenGeographies[geoCode] = true
		}

		year, err := strconv.Atoi(strings.TrimSpace(record[6]))
		if err != nil {
			return loaded, fmt.Errorf("line %d: bad year %q", line, record[6])
		}

		var value *float64
		if raw := strings.TrimSpace(record[7]); raw != "" {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return loaded, fmt.Errorf("line %d: bad value %q", line, record[7])
			}
			value = &v
		}

		if err := st.PutObservation(ctx, indicatorID, geoCode, year, value); err != nil {
			return loaded, fmt.Errorf("line %d: put observation: %w", line, err)
		}
		loaded++

		if loaded%1000 == 0 {
			logger.Info("seeding", slog.Int("observations", loaded))
		}
	}

	return loaded, nil
}
