package main

import (
	"context"

	arg "github.com/alexflint/go-arg"
	"github.com/uyouii/voltage-analytics/analyzer"
	"github.com/uyouii/voltage-analytics/export"
	"github.com/uyouii/voltage-analytics/loader"
	"github.com/uyouii/voltage-analytics/render"
	"github.com/uyouii/voltage-analytics/utils"
	"go.uber.org/zap"
)

var version = "No version provided"

type argSpec struct {
	Data     string `arg:"positional" default:"Sample_Data.csv" help:"Voltage log to analyze (.csv or .xlsx)"`
	Out      string `arg:"-o, --out" default:"." help:"Directory for extrema.csv, below_20.csv and accel_down.csv"`
	LogLevel string `arg:"-l, --log-level" default:"info" help:"Set the logging level (debug, info, warn, error)"`
}

func (argSpec) Version() string {
	return version
}

func main() {
	if err := runMain(); err != nil {
		zap.L().Fatal("voltage analyze failed", zap.Error(err))
	}
}

func runMain() (err error) {
	defer utils.RecoverToError(context.Background(), "voltage analyze", &err)

	args := argSpec{}
	arg.MustParse(&args)

	if err := utils.InitLogger(args.LogLevel); err != nil {
		return err
	}
	defer zap.L().Sync()

	ctx := context.Background()
	logger := utils.GetLogger(ctx)

	raw, err := loader.Load(ctx, args.Data)
	if err != nil {
		return err
	}
	res, err := analyzer.Analyze(ctx, raw)
	if err != nil {
		return err
	}
	if err := export.WriteTables(ctx, args.Out, res); err != nil {
		return err
	}

	summary, err := render.Summarize(res.Series)
	if err != nil {
		return err
	}
	logger.Info("analysis completed", zap.Any("summary", summary),
		zap.Int("extremaCnt", len(res.Extrema)), zap.Int("belowThresholdCnt", len(res.BelowThreshold)),
		zap.Int("accelerationCnt", len(res.Acceleration)))
	return nil
}
