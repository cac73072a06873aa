package main

import (
	"context"
	"io"
	"time"

	"github.com/flavioheleno/statusscreen/internal/config"
	"github.com/flavioheleno/statusscreen/termdisplay"
	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/host/v3"
)

// openDisplay opens the configured display. The returned closer, if not nil,
// releases the bus and must be called after halting the display. stop is
// called when the user quits the terminal preview.
func openDisplay(cfg config.DisplayConfig, stop context.CancelFunc) (display.Drawer, io.Closer, error) {
	if cfg.Backend == config.BackendTerminal {
		d, err := openTerminal(cfg, stop)
		return d, nil, err
	}

	if _, err := host.Init(); err != nil {
		return nil, nil, errors.Wrap(err, "failed to initialize periph.io")
	}
	opts := &ssd1306.Opts{W: cfg.Width, H: cfg.Height, Rotated: cfg.Rotated}

	switch cfg.Backend {
	case config.BackendI2C:
		b, err := i2creg.Open(cfg.Bus)
		if err != nil {
			return nil, nil, errors.Wrap(err, "failed to open I²C bus")
		}
		if err := reset(cfg.RST); err != nil {
			b.Close()
			return nil, nil, err
		}
		dev, err := ssd1306.NewI2C(b, opts)
		if err != nil {
			b.Close()
			return nil, nil, errors.Wrap(err, "failed to create display")
		}
		return dev, b, nil

	case config.BackendSPI:
		p, err := spireg.Open(cfg.Bus)
		if err != nil {
			return nil, nil, errors.Wrap(err, "failed to open SPI port")
		}
		dc := gpioreg.ByName(cfg.DC)
		if dc == nil {
			p.Close()
			return nil, nil, errors.Errorf("GPIO pin %s not found", cfg.DC)
		}
		if err := reset(cfg.RST); err != nil {
			p.Close()
			return nil, nil, err
		}
		dev, err := ssd1306.NewSPI(p, dc, opts)
		if err != nil {
			p.Close()
			return nil, nil, errors.Wrap(err, "failed to create display")
		}
		return dev, p, nil
	}
	return nil, nil, errors.Errorf("unknown backend %q", cfg.Backend)
}

// reset pulses the reset pin low, if one is configured.
func reset(name string) error {
	if name == "" {
		return nil
	}
	rst := gpioreg.ByName(name)
	if rst == nil {
		return errors.Errorf("GPIO pin %s not found", name)
	}
	if err := rst.Out(gpio.Low); err != nil {
		return errors.Wrap(err, "failed to pull RST low")
	}
	time.Sleep(200 * time.Millisecond)
	if err := rst.Out(gpio.High); err != nil {
		return errors.Wrap(err, "failed to pull RST high")
	}
	time.Sleep(200 * time.Millisecond)
	return nil
}

func openTerminal(cfg config.DisplayConfig, stop context.CancelFunc) (display.Drawer, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, errors.Wrap(err, "failed to open terminal")
	}
	if err := s.Init(); err != nil {
		return nil, errors.Wrap(err, "failed to initialize terminal")
	}
	d, err := termdisplay.New(s, &termdisplay.Opts{W: cfg.Width, H: cfg.Height})
	if err != nil {
		s.Fini()
		return nil, err
	}

	// The terminal is in raw mode, so Ctrl-C arrives as a key event.
	go func() {
		for {
			switch ev := s.PollEvent().(type) {
			case nil:
				return
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyCtrlC || ev.Key() == tcell.KeyEscape || ev.Rune() == 'q' {
					stop()
					return
				}
			}
		}
	}()
	return d, nil
}
