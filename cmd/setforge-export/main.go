package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/claude/setforge/internal/catalog"
	"github.com/claude/setforge/internal/export"
	"github.com/claude/setforge/internal/mapcache"
	"github.com/claude/setforge/internal/match"
	"github.com/claude/setforge/internal/models"
	"github.com/claude/setforge/internal/pipeline"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	input := flag.String("in", "", "path to workout JSON file (- for stdin)")
	output := flag.String("out", "", "output file (default: stdout)")
	targetName := flag.String("target", "wearable", "export target: schedule, wearable, xml")
	catalogPath := flag.String("catalog", "", "catalog YAML file (default: embedded catalog)")
	force := flag.Bool("force", false, "export even when exercises remain unmapped")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("setforge-export", Version)
		return
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *input == "" {
		fmt.Fprintf(os.Stderr, "Usage: setforge-export -in <workout.json> [-target schedule|wearable|xml] [-out FILE]\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	target, err := export.ParseTarget(*targetName)
	if err != nil {
		log.Error("invalid target", "error", err)
		os.Exit(1)
	}

	workout, err := readWorkout(*input)
	if err != nil {
		log.Error("failed to read workout", "error", err)
		os.Exit(1)
	}

	index, err := loadCatalog(*catalogPath)
	if err != nil {
		log.Error("failed to load catalog", "error", err)
		os.Exit(1)
	}

	// Local mapping cache keeps confirmed overrides between runs.
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Error("failed to get home directory", "error", err)
		os.Exit(1)
	}
	cache, err := mapcache.Open(filepath.Join(homeDir, ".setforge"))
	if err != nil {
		log.Error("failed to open mapping cache", "error", err)
		os.Exit(1)
	}
	defer cache.Close()

	ctx := context.Background()
	pipe := pipeline.New(match.New(index, match.DefaultOptions()), cache, log)

	matches := pipe.NormalizeAndMatch(ctx, pipeline.ExtractNames(workout))
	if ok, unmapped := pipeline.CanProceed(matches); !ok {
		for _, name := range unmapped {
			log.Warn("unmapped exercise", "name", name)
		}
		if !*force {
			log.Error("export refused: unmapped exercises remain (use -force to override)")
			os.Exit(1)
		}
	}

	plan := pipe.BuildPlan(workout, matches)
	rendered, err := export.Export(plan, target)
	if err != nil {
		log.Error("export failed", "target", target, "error", err)
		os.Exit(1)
	}

	if *output == "" {
		os.Stdout.Write(rendered)
		return
	}
	if err := os.WriteFile(*output, rendered, 0o644); err != nil {
		log.Error("failed to write output", "path", *output, "error", err)
		os.Exit(1)
	}
	log.Info("export written", "path", *output, "target", target)
}

func readWorkout(path string) (models.Workout, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return models.Workout{}, fmt.Errorf("reading workout: %w", err)
	}

	var w models.Workout
	if err := json.Unmarshal(data, &w); err != nil {
		return models.Workout{}, fmt.Errorf("parsing workout JSON: %w", err)
	}
	return w, nil
}

func loadCatalog(path string) (*catalog.Index, error) {
	if path == "" {
		return catalog.Default()
	}
	return catalog.Load(path)
}
