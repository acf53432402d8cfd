// Package main generates one QR code PNG per guest, encoding the guest's
// personal check-in URL.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
	"go.uber.org/zap"

	"github.com/qr-checkin/backend/config"
	"github.com/qr-checkin/backend/internal/guests"
	"github.com/qr-checkin/backend/pkg/database"
)

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9 ]`)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	outDir := flag.String("out", cfg.Event.QROutputDir, "output directory for QR PNGs")
	baseURL := flag.String("base", cfg.Server.BaseURL, "public base URL of the check-in server")
	size := flag.Int("size", 300, "QR image size in pixels")
	flag.Parse()

	ctx := context.Background()
	pool, err := database.NewPostgresPool(ctx, cfg.Database.DSN(), logger)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	list, err := guests.NewRepository(pool).List(ctx)
	if err != nil {
		logger.Fatal("list guests", zap.Error(err))
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		logger.Fatal("create output dir", zap.String("dir", *outDir), zap.Error(err))
	}

	for _, g := range list {
		url := fmt.Sprintf("%s/checkin/%s", strings.TrimRight(*baseURL, "/"), g.ID)
		path := filepath.Join(*outDir, fileName(g.ID, g.Name))
		if err := qrcode.WriteFile(url, qrcode.Medium, *size, path); err != nil {
			logger.Error("write qr", zap.String("guest_id", g.ID), zap.Error(err))
			continue
		}
	}
	logger.Info("qr codes generated", zap.Int("count", len(list)), zap.String("dir", *outDir))
}

// fileName builds a filesystem-safe name like CODE_Full_Name.png.
func fileName(id, name string) string {
	safe := unsafeChars.ReplaceAllString(name, "")
	safe = strings.Join(strings.Fields(safe), "_")
	return fmt.Sprintf("%s_%s.png", id, safe)
}
