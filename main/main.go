// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/consensusnode/admission/config"
	"github.com/consensusnode/admission/utils/logging"
)

const snapshotFilePerms = 0o600

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout))
}

// run executes throttlesim and returns its exit code.
func run(args []string, stdin io.Reader, stdout io.Writer) int {
	v, err := config.BuildViper(config.BuildFlagSet(), args)
	if errors.Is(err, pflag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "couldn't configure flags: %s\n", err)
		return 1
	}

	cfg, err := config.GetConfig(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "couldn't load config: %s\n", err)
		return 1
	}

	log := logging.New(cfg.Logging)
	defer log.Stop()

	registry := prometheus.NewRegistry()
	sim, err := newSimulator(log, cfg, registry, stdout)
	if err != nil {
		log.Error("couldn't create simulator", zap.Error(err))
		return 1
	}

	if cfg.SnapshotFile != "" {
		if err := restoreState(log, sim, cfg.SnapshotFile); err != nil {
			log.Error("couldn't restore state",
				zap.String("path", cfg.SnapshotFile),
				zap.Error(err),
			)
			return 1
		}
	}

	input := stdin
	if cfg.InputFile != "" {
		f, err := os.Open(cfg.InputFile)
		if err != nil {
			log.Error("couldn't open input", zap.Error(err))
			return 1
		}
		defer f.Close()
		input = f
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	exitCode := 0
	if err := sim.replay(ctx, input); err != nil {
		log.Error("replay failed", zap.Error(err))
		exitCode = 1
	}

	if cfg.SnapshotFile != "" {
		if err := saveState(sim, cfg.SnapshotFile); err != nil {
			log.Error("couldn't save state",
				zap.String("path", cfg.SnapshotFile),
				zap.Error(err),
			)
			exitCode = 1
		}
	}

	if cfg.PrintMetrics {
		if err := writeMetrics(stdout, registry); err != nil {
			log.Error("couldn't write metrics", zap.Error(err))
			exitCode = 1
		}
	}
	return exitCode
}

func restoreState(log logging.Logger, sim *simulator, path string) error {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Info("no saved state",
			zap.String("path", path),
		)
		return nil
	}
	if err != nil {
		return err
	}
	st, err := parseState(b)
	if err != nil {
		return err
	}
	return sim.restore(st)
}

func saveState(sim *simulator, path string) error {
	b, err := sim.state().Bytes()
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, snapshotFilePerms)
}

func writeMetrics(w io.Writer, gatherer prometheus.Gatherer) error {
	families, err := gatherer.Gather()
	if err != nil {
		return err
	}
	for _, family := range families {
		if _, err := expfmt.MetricFamilyToText(w, family); err != nil {
			return err
		}
	}
	return nil
}
