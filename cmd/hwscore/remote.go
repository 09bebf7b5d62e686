package main

import (
	"context"

	"github.com/spf13/cobra"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/go-tangra/go-tangra-hwscore/internal/remote"
)

var (
	remoteAddr   string
	remoteSecret string
)

func addRemoteCommands(root *cobra.Command) {
	remoteCmd := &cobra.Command{
		Use:   "remote",
		Short: "Query another machine's hwscore daemon",
	}
	remoteCmd.PersistentFlags().StringVar(&remoteAddr, "addr", "localhost:9650", "daemon gRPC address")
	remoteCmd.PersistentFlags().StringVar(&remoteSecret, "secret", "", "x-client-secret for the daemon")

	remoteCmd.AddCommand(
		&cobra.Command{
			Use:   "snapshot",
			Short: "Fetch a full scored snapshot",
			Args:  cobra.NoArgs,
			RunE: func(*cobra.Command, []string) error {
				return withRemote(func(ctx context.Context, c *remote.Client) (*structpb.Struct, error) {
					return c.Snapshot(ctx)
				})
			},
		},
		&cobra.Command{
			Use:   "domain <name>",
			Short: "Fetch one domain",
			Args:  cobra.ExactArgs(1),
			RunE: func(_ *cobra.Command, args []string) error {
				return withRemote(func(ctx context.Context, c *remote.Client) (*structpb.Struct, error) {
					return c.Domain(ctx, args[0])
				})
			},
		},
		&cobra.Command{
			Use:   "usage",
			Short: "Fetch one utilization reading",
			Args:  cobra.NoArgs,
			RunE: func(*cobra.Command, []string) error {
				return withRemote(func(ctx context.Context, c *remote.Client) (*structpb.Struct, error) {
					return c.Usage(ctx)
				})
			},
		},
		&cobra.Command{
			Use:   "watch",
			Short: "Stream utilization readings until interrupted",
			Args:  cobra.NoArgs,
			RunE:  runRemoteWatch,
		},
	)

	root.AddCommand(remoteCmd)
}

func withRemote(fn func(context.Context, *remote.Client) (*structpb.Struct, error)) error {
	ctx, stop := signalContext()
	defer stop()

	c, err := remote.Dial(remoteAddr, remoteSecret)
	if err != nil {
		return err
	}
	defer c.Close()

	out, err := fn(ctx, c)
	if err != nil {
		return err
	}
	return emit(out.AsMap())
}

func runRemoteWatch(_ *cobra.Command, _ []string) error {
	ctx, stop := signalContext()
	defer stop()

	c, err := remote.Dial(remoteAddr, remoteSecret)
	if err != nil {
		return err
	}
	defer c.Close()

	return c.Watch(ctx, func(s *structpb.Struct) error {
		return emit(s.AsMap())
	})
}
