package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/marketway"
	"github.com/fwojciec/marketway/gin"
	"github.com/fwojciec/marketway/sqlite"
	"github.com/prometheus/client_golang/prometheus"
)

// LineStore is the persistent catalog used by import and export.
type LineStore interface {
	marketway.LineService
	ImportLines(ctx context.Context, lines []*marketway.Line) (*sqlite.ImportStats, error)
}

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Locator   marketway.Locator
	Navigator marketway.Navigator
	Reloader  marketway.Reloader
	Lines     gin.LineFinder
	Assistant marketway.Assistant
	Store     LineStore
	Gatherer  prometheus.Gatherer

	// WatchPath is the catalog file serve watches; empty when the
	// catalog comes from the database.
	WatchPath string
}

// Catalog source names.
const (
	SourceFile = "file"
	SourceDB   = "db"
)

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Data   string `short:"d" default:"lines.json" env:"MARKETWAY_DATA" help:"Catalog file (JSON or YAML)"`
	DB     string `name:"db" help:"SQLite database path (default $MARKETWAY_DB or ~/.marketway/marketway.db)"`
	Source string `enum:"file,db" default:"file" env:"MARKETWAY_SOURCE" help:"Where the catalog is loaded from (file, db)"`
	Debug  bool   `help:"Enable debug logging"`

	Locate     LocateCmd     `cmd:"" help:"Find the line that sells a product"`
	Directions DirectionsCmd `cmd:"" help:"Print walking directions to a line"`
	Aisle      AisleCmd      `cmd:"" help:"List the lines of an aisle"`
	Import     ImportCmd     `cmd:"" help:"Import a catalog file into the database"`
	Export     ExportCmd     `cmd:"" help:"Export the database catalog to a file"`
	Chat       ChatCmd       `cmd:"" help:"Ask the market assistant a question"`
	Serve      ServeCmd      `cmd:"" help:"Run the HTTP server"`
}

// LocateCmd is the "locate" subcommand.
type LocateCmd struct {
	Keyword string `arg:"" help:"Product or line name"`
	All     bool   `short:"a" help:"Show every matching line"`
}

// DirectionsCmd is the "directions" subcommand.
type DirectionsCmd struct {
	Name string `arg:"" help:"Line name"`
	ID   bool   `help:"Treat the argument as a line ID"`
}

// AisleCmd is the "aisle" subcommand.
type AisleCmd struct {
	Aisle int `arg:"" help:"Aisle number"`
}

// ImportCmd is the "import" subcommand.
type ImportCmd struct {
	File string `arg:"" help:"Catalog file (JSON or YAML)"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	File string `arg:"" help:"Destination file (JSON or YAML)"`
}

// ChatCmd is the "chat" subcommand.
type ChatCmd struct {
	Message string `arg:"" help:"Message for the assistant"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr  string `default:":8080" env:"MARKETWAY_ADDR" help:"Listen address"`
	Watch bool   `short:"w" help:"Reload the catalog when the file changes"`
}
