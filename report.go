// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/danielhkuo/sociogram/cliparse"
	"github.com/danielhkuo/sociogram/sociogram"
)

func newReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:                "report [flags]",
		Short:              "Print popularity, matches and name collisions",
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cliparse.ParseFlags(args, cliparse.ModeReport)
			if err != nil {
				return fmt.Errorf("parsing flags: %w", err)
			}
			cache, _, err := buildCache(cfg)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			snap, err := cache.Snapshot(ctx)
			if err != nil {
				return err
			}
			return writeReport(cmd.OutOrStdout(), snap)
		},
	}
}

func writeReport(out io.Writer, snap *sociogram.Snapshot) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "%s participants, %s selections\n\n",
		humanize.Comma(int64(snap.Index.Len())), humanize.Comma(int64(snap.Stats.Total())))

	fmt.Fprintln(tw, "NAME\tCOHORT\tSELECTED")
	for _, e := range sociogram.Popularity(snap.Index, snap.Stats, snap.Names) {
		fmt.Fprintf(tw, "%s\t%s\t%d\n", e.Name, e.Cohort, e.Count)
	}

	if pairs := sociogram.MutualPairs(snap.Index); len(pairs) > 0 {
		fmt.Fprintln(tw, "\nMUTUAL\t\tRANKS")
		for _, p := range pairs {
			fmt.Fprintf(tw, "%s ↔ %s\t\t#%d / #%d\n", p.A, p.B, p.RankA, p.RankB)
		}
	}

	if phantoms := sociogram.Phantoms(snap.Index, snap.Stats); len(phantoms) > 0 {
		fmt.Fprintln(tw, "\nNO RECORD\t\tSELECTED")
		for _, p := range phantoms {
			fmt.Fprintf(tw, "%s\t\t%d\n", p.Key, p.Count)
		}
	}

	collisions := snap.Index.Collisions()
	if len(collisions) > 0 {
		keys := make([]string, 0, len(collisions))
		for k := range collisions {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fmt.Fprintln(tw, "\nCOLLISION\tNAMES")
		for _, k := range keys {
			fmt.Fprintf(tw, "%s\t%v\n", k, collisions[k])
		}
	}

	return tw.Flush()
}
