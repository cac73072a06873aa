package main

import (
	"bufio"
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/flavioheleno/statusscreen"
	"github.com/flavioheleno/statusscreen/canvas"
	"github.com/flavioheleno/statusscreen/internal/config"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// cmdline arguments
var (
	configPath string
	backend    string
	layout     string
	bus        string
	dcPin      string
	rstPin     string
	capacity   int
	verbose    bool
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Drive the display from stdin until EOF or interrupt.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cfg.Display.Backend == config.BackendTerminal && isTerminal(cmd.InOrStdin()) {
				log.Warn("The terminal preview owns the tty, pipe the input instead of typing it")
			}
			return run(cmd.Context(), cfg, cmd.InOrStdin())
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to a YAML configuration file")
	cmd.Flags().StringVarP(&backend, "backend", "b", config.BackendI2C, "Display backend: i2c, spi or terminal (terminal needs piped stdin)")
	cmd.Flags().StringVarP(&layout, "layout", "l", "default", "Screen layout: default or labelled")
	cmd.Flags().StringVar(&bus, "bus", "", "I²C or SPI bus name (empty for default)")
	cmd.Flags().StringVar(&dcPin, "dc", "GPIO25", "Data/Command pin name (SPI only)")
	cmd.Flags().StringVar(&rstPin, "rst", "", "Reset pin name (optional)")
	cmd.Flags().IntVarP(&capacity, "capacity", "n", 0, "Log lines kept on screen (0 for the layout's default)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output.")
	return cmd
}

// loadConfig merges the configuration file with the flags set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("backend") {
		cfg.Display.Backend = backend
	}
	if flags.Changed("layout") {
		cfg.Screen.Layout = layout
	}
	if flags.Changed("bus") {
		cfg.Display.Bus = bus
	}
	if flags.Changed("dc") || (cfg.Display.DC == "" && cfg.Display.Backend == config.BackendSPI) {
		cfg.Display.DC = dcPin
	}
	if flags.Changed("rst") {
		cfg.Display.RST = rstPin
	}
	if flags.Changed("capacity") {
		cfg.Screen.Capacity = capacity
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(ctx context.Context, cfg *config.Config, in io.Reader) error {
	level, err := log.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return err
	}
	log.SetLevel(level)
	logger := log.StandardLogger()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	drawer, closer, err := openDisplay(cfg.Display, stop)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}
	defer drawer.Halt()
	log.Debugf("Display initialized: %v", drawer)

	cv, err := canvas.New(drawer, &canvas.Opts{Logger: logger})
	if err != nil {
		return err
	}
	opts, err := cfg.ScreenOpts()
	if err != nil {
		return err
	}
	opts.Logger = logger
	opts.Status = startStatus(time.Now())
	screen, err := statusscreen.New(cv, opts)
	if err != nil {
		return errors.Wrap(err, "failed to draw initial screen")
	}
	ctl := newController(screen, opts.Status, logger)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	return loop(ctx, ctl, readLines(ctx, in), ticker.C)
}

// loop serializes input lines and clock ticks onto the screen until ctx is
// done or input ends.
func loop(ctx context.Context, ctl *controller, lines <-chan string, ticks <-chan time.Time) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticks:
			if err := ctl.tick(now); err != nil {
				return err
			}
		case line, ok := <-lines:
			if !ok {
				log.Debug("Input closed")
				return nil
			}
			if err := ctl.handle(line); err != nil {
				return err
			}
		}
	}
}

// readLines sends the lines of in until EOF or until ctx is done. A read
// already blocked on in returns only when in does.
func readLines(ctx context.Context, in io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			if ctx.Err() != nil {
				return
			}
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		if err := sc.Err(); err != nil {
			log.Warnf("Reading input: %v", err)
		}
	}()
	return lines
}

// isTerminal reports whether in is a character device such as a tty.
func isTerminal(in io.Reader) bool {
	f, ok := in.(*os.File)
	if !ok {
		return false
	}
	fi, err := f.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}
