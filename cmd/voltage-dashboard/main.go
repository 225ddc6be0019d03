package main

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	arg "github.com/alexflint/go-arg"
	"github.com/joho/godotenv"
	"github.com/uyouii/voltage-analytics/config"
	"github.com/uyouii/voltage-analytics/server"
	"github.com/uyouii/voltage-analytics/utils"
	"go.uber.org/zap"
)

var version = "No version provided"

type argSpec struct {
	Config    string `arg:"-c, --config" help:"Path to a config file (yaml, json or toml)"`
	Data      string `arg:"-d, --data" help:"Voltage log to analyze (.csv or .xlsx), overrides data.path"`
	Port      int    `arg:"-p, --port" help:"HTTP port, overrides server.port"`
	ExportDir string `arg:"--export-dir" help:"Write result tables here after every analysis"`
	LogLevel  string `arg:"-l, --log-level" help:"Set the logging level (debug, info, warn, error)"`
}

func (argSpec) Version() string {
	return version
}

func procArgs() argSpec {
	args := argSpec{}
	arg.MustParse(&args)
	return args
}

func applyArgs(cfg *config.Config, args argSpec) {
	if args.Data != "" {
		cfg.Data.Path = args.Data
	}
	if args.Port != 0 {
		cfg.Server.Port = args.Port
	}
	if args.ExportDir != "" {
		cfg.Export.Enabled = true
		cfg.Export.Dir = args.ExportDir
	}
	if args.LogLevel != "" {
		cfg.Logging.Level = args.LogLevel
	}
}

func main() {
	if err := runMain(); err != nil {
		zap.L().Fatal("voltage dashboard failed", zap.Error(err))
	}
}

func runMain() (err error) {
	defer utils.RecoverToError(context.Background(), "voltage dashboard", &err)

	args := procArgs()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	cfg, err := config.Load(args.Config)
	if err != nil {
		return err
	}
	applyArgs(cfg, args)
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := utils.InitLogger(cfg.Logging.Level); err != nil {
		return err
	}
	defer zap.L().Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	utils.GetLogger(ctx).Info("running version", zap.String("version", version))
	return server.NewServer(cfg).Start(ctx)
}
