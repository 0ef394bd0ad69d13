package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/targodan/go-errors"
	"github.com/urfave/cli/v2"

	"electrorustogram/config"
	"electrorustogram/daemon"
	"electrorustogram/monitor"
	"electrorustogram/ui"
)

var version = "dev"

func main() {
	if err := newApp(&application{}).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		os.Exit(1)
	}
}

type application struct {
	cfg        *config.Config
	configPath string
	logPath    string
	onExit     func()

	// headless commands log here when no --log-path is given
	stderr io.Writer
}

func newApp(a *application) *cli.App {
	return &cli.App{
		Name:    "electrorustogram",
		Usage:   "watch CPU load as a scrolling ECG trace",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to the JSON config file (default ~/.electrorustogram/config.json)",
				EnvVars: []string{config.EnvConfig},
			},
			&cli.IntFlag{
				Name:  "fps",
				Usage: "initial frame rate, clamped to 10-60",
			},
			&cli.StringFlag{
				Name:  "source",
				Usage: "cpu load source: auto, gopsutil or procstat",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "one of panic, fatal, error, warn, info, debug, trace",
			},
			&cli.StringFlag{
				Name:  "log-path",
				Usage: "log file; \"-\" for stdout, \"--\" for stderr, empty discards logs in the TUI and uses stderr otherwise",
			},
		},
		Before: a.init,
		After:  a.close,
		Action: a.runTUI,
		Commands: []*cli.Command{
			{
				Name:  "sample",
				Usage: "print a single colored load reading and exit",
				Flags: []cli.Flag{
					&cli.DurationFlag{
						Name:  "interval",
						Usage: "measurement window",
						Value: time.Second,
					},
				},
				Action: a.runSample,
			},
			{
				Name:  "watch",
				Usage: "sample without a terminal UI and log band changes",
				Flags: []cli.Flag{
					&cli.DurationFlag{
						Name:  "interval",
						Usage: "time between samples",
						Value: time.Second,
					},
					&cli.BoolFlag{
						Name:  "print",
						Usage: "also print every sample to stdout",
					},
				},
				Action: a.runWatch,
			},
		},
	}
}

func (a *application) init(c *cli.Context) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	a.configPath = c.String("config")
	if a.configPath == "" {
		a.configPath = config.DefaultPath()
	}
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	if c.IsSet("fps") {
		cfg.FPS = c.Int("fps")
	}
	if c.IsSet("source") {
		cfg.Source = c.String("source")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	a.logPath = c.String("log-path")
	if err := a.initLogging(a.logPath); err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"arguments": os.Args,
		"config":    a.configPath,
		"fps":       cfg.FPS,
		"source":    cfg.Source,
	}).Debug("Program started.")
	return nil
}

func (a *application) initLogging(path string) error {
	lvl, err := logrus.ParseLevel(a.cfg.LogLevel)
	if err != nil {
		return err
	}
	logrus.SetLevel(lvl)

	switch path {
	case "":
		// the TUI owns the screen, headless commands call logHeadless
		logrus.SetOutput(io.Discard)
	case "-":
		logrus.SetOutput(os.Stdout)
	case "--":
		logrus.SetOutput(os.Stderr)
	default:
		logfile, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			return errors.Errorf("could not open logfile for writing, reason: %w", err)
		}
		logrus.SetOutput(logfile)
		a.onExit = func() {
			logfile.Close()
		}
	}
	return nil
}

// logHeadless sends logs to stderr unless --log-path chose a destination.
func (a *application) logHeadless() {
	if a.logPath != "" {
		return
	}
	if a.stderr == nil {
		a.stderr = os.Stderr
	}
	logrus.SetOutput(a.stderr)
}

func (a *application) close(c *cli.Context) error {
	if a.onExit != nil {
		a.onExit()
		a.onExit = nil
	}
	return nil
}

func (a *application) runTUI(c *cli.Context) error {
	ctx, cancel := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logger := logrus.StandardLogger()
	sampler, err := monitor.NewSampler(a.cfg.Source, logger)
	if err != nil {
		return err
	}
	engine := monitor.NewEngine(sampler, a.cfg.TraceConfig(), logger)

	go func() {
		err := config.Watch(ctx, a.configPath, logger, func(cfg *config.Config) {
			engine.Reconfigure(cfg.Thresholds(), cfg.FPSStep)
		})
		if err != nil {
			logger.WithError(err).Info("Config hot reload disabled.")
		}
	}()

	if err := engine.Run(ctx); err != nil {
		logger.WithError(err).Error("Render loop stopped.")
		return err
	}
	logger.Debug("Render loop finished.")
	return nil
}

func (a *application) runSample(c *cli.Context) error {
	a.logHeadless()
	sampler, err := monitor.NewSampler(a.cfg.Source, logrus.StandardLogger())
	if err != nil {
		return err
	}
	// the first reading only primes delta based sources
	if _, err := sampler.Sample(); err != nil {
		return err
	}

	select {
	case <-time.After(c.Duration("interval")):
	case <-c.Context.Done():
		return c.Context.Err()
	}

	load, err := sampler.Sample()
	if err != nil {
		return err
	}
	return ui.PrintSample(c.App.Writer, load, a.cfg.Thresholds(), monitor.ReadSystemInfo())
}

func (a *application) runWatch(c *cli.Context) error {
	a.logHeadless()
	ctx, cancel := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logger := logrus.StandardLogger()
	sampler, err := monitor.NewSampler(a.cfg.Source, logger)
	if err != nil {
		return err
	}

	var opts []daemon.Option
	if c.Bool("print") {
		opts = append(opts, daemon.WithOutput(c.App.Writer, monitor.ReadSystemInfo))
	}
	d := daemon.New(sampler, a.cfg.Thresholds(), c.Duration("interval"), logger, opts...)

	go func() {
		err := config.Watch(ctx, a.configPath, logger, func(cfg *config.Config) {
			d.SetThresholds(cfg.Thresholds())
		})
		if err != nil {
			logger.WithError(err).Info("Config hot reload disabled.")
		}
	}()

	logger.WithField("interval", c.Duration("interval")).Info("Watching cpu load.")
	return d.Run(ctx)
}
