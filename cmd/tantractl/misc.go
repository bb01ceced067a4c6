package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	eventstore "github.com/tantrafest/tantra/internal/app/store/events"
	"github.com/tantrafest/tantra/internal/app/store/queries/overview"
	"github.com/tantrafest/tantra/internal/app/system/timeouts"
)

func newNextEventIDCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "next-event-id",
		Short: "Print the id the next created event will receive",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmdContext(cmd), timeouts.Short())
			defer cancel()
			store, closeStore, err := openStore(ctx, newLogger())
			if err != nil {
				return err
			}
			defer closeStore()

			id, err := eventstore.New(store).NextEventID(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
}

func newSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Print department, event and registration totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmdContext(cmd), timeouts.Medium())
			defer cancel()
			store, closeStore, err := openStore(ctx, newLogger())
			if err != nil {
				return err
			}
			defer closeStore()

			sum, err := overview.Load(ctx, store)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "departments:         %d\n", sum.TotalDepartments)
			fmt.Fprintf(w, "events:              %d\n", sum.TotalEvents)
			fmt.Fprintf(w, "registrations:       %d\n", sum.TotalRegistrations)
			fmt.Fprintf(w, "unique participants: %d\n", sum.UniqueParticipants)
			return nil
		},
	}
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
