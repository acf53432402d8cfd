// Package main imports the guest list CSV into the database.
//
// Expected columns: Code, Salutation, Full Name, Title / Position,
// Organization / Company. Rows without a code get a generated one.
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/qr-checkin/backend/config"
	"github.com/qr-checkin/backend/internal/guests"
	"github.com/qr-checkin/backend/internal/models"
	"github.com/qr-checkin/backend/pkg/database"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	csvPath := flag.String("csv", cfg.Event.GuestListCSV, "guest list CSV path")
	reset := flag.Bool("reset", false, "clear guests and checkins before importing")
	flag.Parse()

	ctx := context.Background()
	pool, err := database.NewPostgresPool(ctx, cfg.Database.DSN(), logger)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	if *reset {
		if _, err := pool.Exec(ctx, `TRUNCATE guests, checkins`); err != nil {
			logger.Fatal("reset tables", zap.Error(err))
		}
		logger.Info("cleared guests and checkins")
	}

	list, err := readGuests(*csvPath)
	if err != nil {
		logger.Fatal("read guest list", zap.String("path", *csvPath), zap.Error(err))
	}

	repo := guests.NewRepository(pool)
	for _, g := range list {
		if err := repo.Upsert(ctx, g); err != nil {
			logger.Fatal("import guest", zap.String("guest_id", g.ID), zap.Error(err))
		}
	}
	logger.Info("guest list imported", zap.Int("count", len(list)))
}

func readGuests(path string) ([]models.Guest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if err != nil {
		return nil, err
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var list []models.Guest
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		g := models.Guest{
			ID:         field(row, "Code"),
			Salutation: field(row, "Salutation"),
			Name:       field(row, "Full Name"),
			Position:   field(row, "Title / Position"),
			Company:    field(row, "Organization / Company"),
		}
		if g.Name == "" {
			continue
		}
		if g.ID == "" {
			g.ID = strings.ToUpper(uuid.NewString()[:8])
		}
		list = append(list, g)
	}
	return list, nil
}
