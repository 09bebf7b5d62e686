package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/go-tangra/go-tangra-hwscore/internal/convert"
	"github.com/go-tangra/go-tangra-hwscore/internal/inventory"
	"github.com/go-tangra/go-tangra-hwscore/internal/logger"
	"github.com/go-tangra/go-tangra-hwscore/internal/source"
	"github.com/go-tangra/go-tangra-hwscore/internal/store"
)

var domainShort = map[string]string{
	inventory.DomainCPU:         "Probe and score processors",
	inventory.DomainGPU:         "Probe and score video controllers",
	inventory.DomainMemory:      "Probe and score installed memory",
	inventory.DomainDisks:       "Probe and score disk drives",
	inventory.DomainMotherboard: "Probe the motherboard, chipset and slots",
	inventory.DomainMonitors:    "List attached monitors",
	inventory.DomainNetwork:     "List network adapters",
	inventory.DomainSound:       "List sound devices",
	inventory.DomainPeripherals: "List USB, camera and Bluetooth devices",
}

var (
	saveSnapshot  bool
	watchInterval time.Duration
)

func addProbeCommands(root *cobra.Command) {
	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Collect and score a full hardware snapshot",
		RunE:  runSnapshot,
	}
	snapshotCmd.Flags().BoolVar(&saveSnapshot, "save", false, "store the snapshot in the history database")
	root.AddCommand(snapshotCmd)

	for _, name := range inventory.Domains {
		root.AddCommand(&cobra.Command{
			Use:   name,
			Short: domainShort[name],
			Args:  cobra.NoArgs,
			RunE: func(*cobra.Command, []string) error {
				return runDomain(name)
			},
		})
	}

	usageCmd := &cobra.Command{
		Use:   "usage",
		Short: "Sample CPU and memory utilization",
		RunE:  runUsage,
	}
	usageCmd.Flags().DurationVar(&watchInterval, "watch", 0, "keep sampling at this interval until interrupted")
	root.AddCommand(usageCmd)
}

func runSnapshot(_ *cobra.Command, _ []string) error {
	ctx, stop := signalContext()
	defer stop()

	snap, err := newEngine().Snapshot(ctx)
	if err != nil {
		return err
	}

	if saveSnapshot {
		if err := saveToHistory(ctx, snap); err != nil {
			return err
		}
	}

	return emit(snap)
}

func saveToHistory(ctx context.Context, snap *inventory.FullHardwareInfo) error {
	db, err := store.New(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	rec, err := convert.SnapshotToRecord(snap)
	if err != nil {
		return err
	}
	if _, err := db.Insert(ctx, rec); err != nil {
		return err
	}

	logger.Info().Str("snapshot", snap.ID).Str("database", cfg.DatabasePath).Msg("Snapshot saved")
	return nil
}

func runDomain(name string) error {
	ctx, stop := signalContext()
	defer stop()

	v, err := newEngine().Domain(ctx, name)
	if err != nil {
		return err
	}
	return emit(v)
}

func runUsage(_ *cobra.Command, _ []string) error {
	ctx, stop := signalContext()
	defer stop()

	monitor := source.NewUsageMonitor(source.DefaultFactory().NewFast())

	for {
		u, err := monitor.Sample(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		if err := emit(u); err != nil {
			return err
		}

		if watchInterval <= 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(watchInterval):
		}
	}
}
