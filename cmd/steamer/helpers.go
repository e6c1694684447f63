package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"steamer/internal/config"
	"steamer/internal/logging"
)

// workflowLogger builds the logger for commands that run a workflow and
// render a result. Progress goes to stderr and the log file so stdout stays
// clean for tables and JSON.
func workflowLogger(cfg *config.Config) *slog.Logger {
	logger, err := logging.NewWorker(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warn: logger unavailable: %v\n", err)
		return logging.NewNop()
	}
	return logger
}

func formatAppID(appID int64) string {
	if appID <= 0 {
		return "-"
	}
	return strconv.FormatInt(appID, 10)
}

func formatDepots(depots []int64) string {
	if len(depots) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(depots))
	for _, depot := range depots {
		parts = append(parts, strconv.FormatInt(depot, 10))
	}
	return strings.Join(parts, ", ")
}

// formatMovedAt renders a registry timestamp as a relative age.
func formatMovedAt(movedAt time.Time) string {
	if movedAt.IsZero() {
		return "-"
	}
	return humanize.Time(movedAt)
}
