package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/go-tangra/go-tangra-hwscore/internal/convert"
	"github.com/go-tangra/go-tangra-hwscore/internal/errors"
	"github.com/go-tangra/go-tangra-hwscore/internal/store"
)

var (
	listHostname string
	listPageSize int
	listPage     int
	purgeDays    int
)

func addHistoryCommands(root *cobra.Command) {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect stored snapshots",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List stored snapshots, newest first",
		Args:  cobra.NoArgs,
		RunE:  runHistoryList,
	}
	listCmd.Flags().StringVar(&listHostname, "hostname", "", "only snapshots of this host")
	listCmd.Flags().IntVar(&listPageSize, "limit", 20, "page size")
	listCmd.Flags().IntVar(&listPage, "page", 1, "page number")

	showCmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print a stored snapshot",
		Args:  cobra.ExactArgs(1),
		RunE:  runHistoryShow,
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a stored snapshot",
		Args:  cobra.ExactArgs(1),
		RunE:  runHistoryDelete,
	}

	purgeCmd := &cobra.Command{
		Use:   "purge",
		Short: "Purge snapshots older than the specified number of days",
		Args:  cobra.NoArgs,
		RunE:  runHistoryPurge,
	}
	purgeCmd.Flags().IntVar(&purgeDays, "days", 90, "purge snapshots older than this many days")

	historyCmd.AddCommand(listCmd, showCmd, deleteCmd, purgeCmd)
	root.AddCommand(historyCmd)
}

func withStore(fn func(ctx context.Context, db *store.Store) error) error {
	db, err := store.New(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	return fn(context.Background(), db)
}

func runHistoryList(_ *cobra.Command, _ []string) error {
	return withStore(func(ctx context.Context, db *store.Store) error {
		records, _, err := db.List(ctx, store.ListFilter{
			Hostname: listHostname,
			PageSize: listPageSize,
			Page:     listPage,
		})
		if err != nil {
			return err
		}
		if records == nil {
			records = []store.SnapshotRecord{}
		}
		return emit(records)
	})
}

func runHistoryShow(_ *cobra.Command, args []string) error {
	return withStore(func(ctx context.Context, db *store.Store) error {
		rec, err := db.Get(ctx, args[0])
		if err != nil {
			return err
		}
		snap, err := convert.RecordToSnapshot(rec)
		if err != nil {
			return err
		}
		return emit(snap)
	})
}

func runHistoryDelete(_ *cobra.Command, args []string) error {
	return withStore(func(ctx context.Context, db *store.Store) error {
		if err := db.Delete(ctx, args[0]); err != nil {
			return err
		}
		return emit(map[string]string{"deleted": args[0]})
	})
}

func runHistoryPurge(_ *cobra.Command, _ []string) error {
	if purgeDays <= 0 {
		return errors.New().WithData(errors.ErrInvalidConfig, "--days must be positive")
	}
	return withStore(func(ctx context.Context, db *store.Store) error {
		n, err := db.Purge(ctx, time.Duration(purgeDays)*24*time.Hour)
		if err != nil {
			return err
		}
		return emit(map[string]int64{"purged": n})
	})
}
