// SPDX-License-Identifier: EPL-2.0

// Command audtempo plays, renders and inspects audio with tempo, rate and
// pitch changes.
//
// Usage:
//
//	audtempo play   [flags] FILE
//	audtempo render [flags] -o DIR FILE...
//	audtempo probe  FILE...
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ik5/audtempo/internal/config"
)

var errUsage = errors.New("usage: audtempo play|render|probe [flags] FILE...")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "audtempo:", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}

	name, args := args[0], args[1:]
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	common := addCommonFlags(fs)

	switch name {
	case "play":
		seek := fs.Float64("seek", 0, "start position in seconds")
		if err := fs.Parse(args); err != nil {
			return err
		}
		if fs.NArg() != 1 {
			return errUsage
		}
		cfg, logger, err := common.setup(fs, stderr)
		if err != nil {
			return err
		}
		return play(ctx, cfg, logger, fs.Arg(0), *seek)

	case "render":
		outDir := fs.String("o", ".", "output directory")
		if err := fs.Parse(args); err != nil {
			return err
		}
		if fs.NArg() == 0 {
			return errUsage
		}
		cfg, logger, err := common.setup(fs, stderr)
		if err != nil {
			return err
		}
		return renderFiles(ctx, cfg, logger, *outDir, fs.Args())

	case "probe":
		if err := fs.Parse(args); err != nil {
			return err
		}
		if fs.NArg() == 0 {
			return errUsage
		}
		if _, _, err := common.setup(fs, stderr); err != nil {
			return err
		}
		return probe(stdout, fs.Args())

	default:
		return fmt.Errorf("unknown command %q: %w", name, errUsage)
	}
}

type commonFlags struct {
	config   *string
	tempo    *float64
	rate     *float64
	pitch    *float64
	logLevel *string
}

func addCommonFlags(fs *flag.FlagSet) *commonFlags {
	return &commonFlags{
		config:   fs.String("config", "", "path to a YAML configuration file"),
		tempo:    fs.Float64("tempo", 1, "tempo factor; 2 plays twice as fast at the same pitch"),
		rate:     fs.Float64("rate", 1, "rate factor; changes tempo and pitch together"),
		pitch:    fs.Float64("pitch", 0, "pitch shift in semitones"),
		logLevel: fs.String("log-level", "", "debug, info, warn or error"),
	}
}

// setup layers configuration: defaults, then the file, then .env and
// AUDTEMPO_* variables, then flags set on the command line. It installs
// the resulting logger as the slog default.
func (c *commonFlags) setup(fs *flag.FlagSet, stderr io.Writer) (*config.Config, *slog.Logger, error) {
	cfg := config.Default()
	if *c.config != "" {
		var err error
		if cfg, err = config.Load(*c.config); err != nil {
			return nil, nil, err
		}
	}

	if err := config.LoadDotEnv(".env"); err != nil {
		return nil, nil, err
	}
	if err := config.ApplyEnv(cfg, os.LookupEnv); err != nil {
		return nil, nil, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "tempo":
			cfg.Pipeline.Tempo = *c.tempo
		case "rate":
			cfg.Pipeline.Rate = *c.rate
		case "pitch":
			cfg.Pipeline.PitchSemitones = *c.pitch
		case "log-level":
			cfg.LogLevel = config.LogLevel(*c.logLevel)
		}
	})
	if err := config.Validate(cfg); err != nil {
		return nil, nil, err
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: cfg.LogLevel.SlogLevel()}))
	slog.SetDefault(logger)
	return cfg, logger, nil
}
