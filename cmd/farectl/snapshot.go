package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"faregrid.ticketconsole.org/internal/logging"
	"faregrid.ticketconsole.org/internal/models"
	"faregrid.ticketconsole.org/internal/store"
	"faregrid.ticketconsole.org/internal/utils"
	"github.com/spf13/cobra"
)

func newExportCmd(opts *rootOptions) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the whole network as a JSON snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, logger, err := opts.openStore(cmd)
			if err != nil {
				return err
			}
			defer logging.SafeCloseWithLogging(client, logger, "fare_store")

			snap, err := client.Snapshot(commandContext(cmd))
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("create %s: %w", outPath, err)
				}
				defer logging.SafeCloseWithLogging(f, logger, "snapshot_file")
				w = f
			}

			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(snap)
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write to this file instead of stdout")
	return cmd
}

func newImportCmd(opts *rootOptions) *cobra.Command {
	var modeName string

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Load a JSON snapshot into the database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := store.ParseImportMode(modeName)
			if err != nil {
				return err
			}

			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var snap models.Snapshot
			if err := json.Unmarshal(raw, &snap); err != nil {
				return fmt.Errorf("parse %s: %w", args[0], err)
			}
			if fieldErrors := utils.ValidateSnapshot(&snap); len(fieldErrors) > 0 {
				printFieldErrors(cmd.ErrOrStderr(), fieldErrors)
				return fmt.Errorf("%s: %d invalid fields", args[0], len(fieldErrors))
			}

			client, logger, err := opts.openStore(cmd)
			if err != nil {
				return err
			}
			defer logging.SafeCloseWithLogging(client, logger, "fare_store")

			if err := client.ImportSnapshot(commandContext(cmd), snap, mode); err != nil {
				return err
			}
			counts := snap.Counts()
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d stations, %d lines, %d fares (%s)\n",
				counts["stations"], counts["lines"], counts["fares"], modeName)
			return nil
		},
	}

	cmd.Flags().StringVar(&modeName, "mode", "merge", "merge keeps existing data, replace clears it first")
	return cmd
}

func printFieldErrors(w io.Writer, fieldErrors map[string][]string) {
	keys := make([]string, 0, len(fieldErrors))
	for k := range fieldErrors {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		for _, msg := range fieldErrors[k] {
			fmt.Fprintf(w, "%s: %s\n", k, msg)
		}
	}
}
