package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/Locietta/distance-field-playground/pkg/config"
	"github.com/Locietta/distance-field-playground/pkg/mesh"
	"github.com/Locietta/distance-field-playground/pkg/observability"
	"github.com/Locietta/distance-field-playground/pkg/sdf"
	"github.com/Locietta/distance-field-playground/pkg/telemetry"
)

var (
	version = "1.0.0"
	commit  = "dev"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		showVersion  = flag.Bool("version", false, "show version and exit")
		inputPath    = flag.String("i", "", "input mesh file (required)")
		outputPath   = flag.String("o", "", "output prefix for .bin and PLY dumps (required)")
		voxelDensity = flag.Float64("v", 0, "voxel density (overrides config/env default 0.2)")
		scale        = flag.Float64("scale", 0, "per-mesh resolution scale (overrides config/env default 1.0)")
		noParallel   = flag.Bool("no-parallel", false, "disable parallel brick execution")
		dumpBricks   = flag.Bool("brick", false, "dump per-mip valid/invalid brick visualization PLY")
		metricsAddr  = flag.String("metrics-addr", "", "enable /metrics and /healthz on this address (overrides config/env)")
		logLevel     = flag.String("log-level", "", "override the configured log level")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("sdfbake version %s (commit: %s)\n", version, commit)
		return 0
	}

	cfg := config.LoadFromEnv()
	if *voxelDensity > 0 {
		cfg.Build.VoxelDensity = *voxelDensity
	}
	if *scale > 0 {
		cfg.Build.ResolutionScale = *scale
	}
	if *noParallel {
		cfg.Build.Parallel = false
	}
	if *metricsAddr != "" {
		cfg.Telemetry.Enabled = true
		cfg.Telemetry.Addr = *metricsAddr
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "sdfbake: invalid configuration: %v\n", err)
		return 1
	}

	logger := observability.NewLogger(observability.ParseLogLevel(cfg.Logging.Level), os.Stderr)

	if *inputPath == "" || *outputPath == "" {
		fmt.Fprintln(os.Stderr, "sdfbake: -i and -o are required")
		flag.Usage()
		return 1
	}

	metrics := observability.NewMetrics()
	throttle := observability.NewDiagnosticThrottle(logger, metrics, cfg.Logging.DiagnosticRatePerSec, cfg.Logging.DiagnosticBurst)
	throttle.Install()

	var telemetryServer *telemetry.Server
	if cfg.Telemetry.Enabled {
		telemetryServer = telemetry.NewServer(telemetry.Config{
			Addr:            cfg.Telemetry.Addr,
			ShutdownTimeout: cfg.Telemetry.ShutdownTimeout,
		})
		go func() {
			if err := telemetryServer.Start(); err != nil {
				logger.Error("telemetry server failed", map[string]interface{}{"error": err.Error()})
			}
		}()
		logger.Info("telemetry listening", map[string]interface{}{"addr": cfg.Telemetry.Addr})
	}

	exit := bake(logger, metrics, cfg, *inputPath, *outputPath, *dumpBricks)

	if telemetryServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Telemetry.ShutdownTimeout)
		defer cancel()
		if err := telemetryServer.Stop(ctx); err != nil {
			logger.Warn("telemetry server shutdown error", map[string]interface{}{"error": err.Error()})
		}
	}

	if throttle.Suppressed() > 0 {
		logger.Info("degenerate triangle diagnostics suppressed by rate limit", map[string]interface{}{
			"suppressed": throttle.Suppressed(),
		})
	}

	return exit
}

func bake(logger *observability.Logger, metrics *observability.Metrics, cfg *config.Config, inputPath, outputPath string, dumpBricks bool) int {
	start := time.Now()
	var bakeErr error
	defer func() { metrics.RecordBake(time.Since(start), bakeErr) }()

	m, err := mesh.LoadPLY(inputPath)
	if err != nil {
		bakeErr = err
		fmt.Fprintf(os.Stderr, "sdfbake: %v\n", err)
		return 1
	}

	buildCfg := sdf.Config{
		VoxelDensity:    cfg.Build.VoxelDensity,
		ResolutionScale: cfg.Build.ResolutionScale,
		Parallel:        cfg.Build.Parallel,
		Seed:            cfg.Build.Seed,
		NumWorkers:      cfg.Build.NumWorkers,
	}

	var volume *sdf.VolumeData
	logErr := logger.LogStageWithFields("bake", map[string]interface{}{
		"input":     inputPath,
		"vertices":  len(m.Vertices),
		"triangles": len(m.Triangles),
	}, func() error {
		volume, err = sdf.Generate(m, m.Bounds(), buildCfg)
		return err
	})
	if logErr != nil {
		bakeErr = logErr
		fmt.Fprintf(os.Stderr, "sdfbake: bake failed: %v\n", logErr)
		return 1
	}

	for k := range volume.Mips {
		metrics.RecordMip(k, int(volume.Mips[k].IndirectionDimensions.Prod()), int(volume.Mips[k].NumDistanceFieldBricks))
	}
	metrics.RecordOutputBytes(len(volume.AlwaysLoadedMip), len(volume.StreamableMips))

	binPath := outputPath + ".bin"
	f, err := os.Create(binPath)
	if err != nil {
		bakeErr = err
		fmt.Fprintf(os.Stderr, "sdfbake: %v\n", err)
		return 1
	}
	defer f.Close()

	if err := sdf.Serialize(f, volume); err != nil {
		bakeErr = err
		fmt.Fprintf(os.Stderr, "sdfbake: serialize failed: %v\n", err)
		return 1
	}
	logger.Info("wrote distance field", map[string]interface{}{"path": binPath})

	if dumpBricks {
		if err := sdf.DumpBricksPLY(volume, outputPath); err != nil {
			logger.Warn("brick dump failed", map[string]interface{}{"error": err.Error()})
		}
	}

	return 0
}
