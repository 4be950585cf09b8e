package main

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/limaJavier/lessonplanner/pkg/config"
	"github.com/limaJavier/lessonplanner/pkg/logger"
	"github.com/limaJavier/lessonplanner/pkg/metrics"
	"github.com/limaJavier/lessonplanner/pkg/model"
	"github.com/limaJavier/lessonplanner/pkg/report"
	"github.com/limaJavier/lessonplanner/pkg/server"
)

var (
	configFile  string
	verifyBuild bool
	reportFile  string
)

func main() {
	cmdTimetable := &cobra.Command{
		Use:   "timetable",
		Short: "Weekly class timetable builder",
		Long: "Builds a weekly timetable for every group from a list of lessons (group, subject, teacher),\n" +
			"avoiding teacher double-booking and repeating a subject on the same day.\n" +
			"Without a subcommand it behaves like \"build\".",
		Run: CommandBuild,
	}
	cmdTimetable.PersistentFlags().StringVar(&configFile, "config", "", "config file (defaults to config.{json,yaml} in the working directory or next to the executable)")
	cmdTimetable.PersistentFlags().String("log", "", "log level: debug, info, warn or error")
	cmdTimetable.PersistentFlags().StringSlice("days", nil, "day labels, in order")
	cmdTimetable.PersistentFlags().StringSlice("times", nil, "time slot labels, in order")
	addBuildFlags(cmdTimetable)

	cmdBuild := &cobra.Command{
		Use:   "build",
		Short: "build a timetable and write the report",
		Run:   CommandBuild,
	}
	addBuildFlags(cmdBuild)
	cmdTimetable.AddCommand(cmdBuild)

	cmdVerify := &cobra.Command{
		Use:   "verify",
		Short: "check a json report against the input lessons",
		Run:   CommandVerify,
	}
	cmdVerify.Flags().StringP("file", "f", "", "input file with the lessons (csv, or json by extension)")
	cmdVerify.Flags().StringVarP(&reportFile, "report", "r", "", "json report to verify")
	cmdTimetable.AddCommand(cmdVerify)

	cmdServe := &cobra.Command{
		Use:   "serve",
		Short: "serve the timetable builder over HTTP",
		Run:   CommandServe,
	}
	addSearchFlags(cmdServe)
	cmdServe.Flags().String("addr", "", "address to listen on")
	cmdTimetable.AddCommand(cmdServe)

	if err := cmdTimetable.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSearchFlags(cmd *cobra.Command) {
	cmd.Flags().Uint64("attempts", 0, "attempts per group")
	cmd.Flags().Uint64("probes", 0, "time slot probes per day (jitter strategy)")
	cmd.Flags().String("strategy", "", "time slot probing: \"jitter\" (random draws with replacement) or \"exhaustive\"")
	cmd.Flags().Uint64("seed", 0, "random seed; 0 picks a time-based seed")
}

func addBuildFlags(cmd *cobra.Command) {
	addSearchFlags(cmd)
	cmd.Flags().StringP("file", "f", "", "input file with the lessons (csv, or json by extension)")
	cmd.Flags().StringP("out", "o", "", "report file; \"-\" writes to the standard output")
	cmd.Flags().String("format", "", "report format: text, csv, json or pdf")
	cmd.Flags().String("font", "", "UTF-8 TrueType font used by the pdf report")
	cmd.Flags().String("metrics", "", "file where Prometheus metrics are written after the build")
	cmd.Flags().BoolVar(&verifyBuild, "verify", false, "verify the timetable before writing the report")
}

// setup loads the configuration and the logger; nothing can be logged before this
func setup(cmd *cobra.Command, args []string) (*config.Config, *zap.Logger) {
	if len(args) > 0 {
		log.Fatalf("unknown option: %s", strings.Join(args, " "))
	}

	cfg, err := config.Load(configFile, cmd.Flags())
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	return cfg, logr
}

func CommandBuild(cmd *cobra.Command, args []string) {
	cfg, logr := setup(cmd, args)
	defer logr.Sync() //nolint:errcheck

	requirements := readInput(cfg.Input.File, logr)
	logr.Info("input read", zap.String("file", cfg.Input.File), zap.Int("lessons", len(requirements)))

	timetabler := model.NewRandomizedTimetabler(cfg.Options(), model.NewRandomizer(cfg.Search.Seed), logr)
	start := time.Now()
	timetable, err := timetabler.Build(requirements)
	if err != nil {
		logr.Fatal("an error occurred during timetable construction", zap.Error(err))
	}
	duration := time.Since(start)

	if verifyBuild && !timetabler.Verify(timetable, requirements) {
		logr.Fatal("timetable failed verification", zap.String("run_id", timetable.RunId))
	}

	reporter, err := report.New(cfg.Output.Format, cfg.Output.Font)
	if err != nil {
		logr.Fatal("invalid report", zap.Error(err))
	}
	if err := writeReport(cfg.Output.File, reporter, timetable); err != nil {
		logr.Fatal("an error occurred while writing the report", zap.Error(err))
	}

	if cfg.Metrics.File != "" {
		recorder := metrics.NewRecorder(true)
		recorder.ObserveBuild(timetable, duration)
		if err := recorder.WriteToTextfile(cfg.Metrics.File); err != nil {
			logr.Fatal("an error occurred while writing metrics", zap.Error(err))
		}
	}

	stats := timetable.TotalStats()
	logr.Info("timetable saved",
		zap.String("run_id", timetable.RunId),
		zap.String("file", cfg.Output.File),
		zap.Uint64("placed", stats.Placed),
		zap.Uint64("abandoned", stats.Abandoned),
		zap.Duration("duration", duration),
	)
}

func CommandVerify(cmd *cobra.Command, args []string) {
	cfg, logr := setup(cmd, args)
	defer logr.Sync() //nolint:errcheck

	if reportFile == "" {
		logr.Fatal("a json report must be specified with --report")
	}
	requirements := readInput(cfg.Input.File, logr)

	handle, err := os.Open(reportFile)
	if err != nil {
		logr.Fatal("cannot open report", zap.String("file", reportFile), zap.Error(err))
	}
	defer handle.Close()

	document, err := report.ReadDocument(handle)
	if err != nil {
		logr.Fatal("cannot read report", zap.Error(err))
	}
	timetable, err := document.Timetable()
	if err != nil {
		logr.Fatal("report is not a valid timetable", zap.Error(err))
	}

	options := cfg.Options()
	options.Catalog = timetable.Catalog
	if !model.NewRandomizedTimetabler(options, nil, logr).Verify(timetable, requirements) {
		logr.Fatal("timetable failed verification", zap.String("run_id", timetable.RunId))
	}
	logr.Info("timetable is valid", zap.String("run_id", timetable.RunId))
}

func CommandServe(cmd *cobra.Command, args []string) {
	cfg, logr := setup(cmd, args)
	defer logr.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.New(cfg, metrics.NewRecorder(false), logr).Run(ctx); err != nil {
		logr.Fatal("server failed", zap.Error(err))
	}
}

func readInput(file string, logr *zap.Logger) []model.LessonRequirement {
	requirements, err := model.InputFromFile(file)
	if errors.Is(err, fs.ErrNotExist) {
		logr.Fatal("input file not found", zap.String("file", file))
	} else if err != nil {
		logr.Fatal("cannot parse input file", zap.String("file", file), zap.Error(err))
	}
	return requirements
}

func writeReport(file string, reporter report.Reporter, timetable *model.Timetable) error {
	var writer io.Writer = os.Stdout
	if file != "" && file != "-" {
		handle, err := os.Create(file)
		if err != nil {
			return err
		}
		defer handle.Close()
		writer = handle
	}
	return reporter.Render(writer, timetable)
}
