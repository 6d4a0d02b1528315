package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/five82/lunchtray/internal/menu"
)

func newDumpCmd(root *rootOptions) *cobra.Command {
	var flagFormat string

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print the normalized menu snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			format := strings.ToLower(strings.TrimSpace(flagFormat))
			if format != "json" && format != "yaml" {
				return fmt.Errorf("unknown format %q (valid: json, yaml)", flagFormat)
			}

			rt, err := openRuntime(cmd, root)
			if err != nil {
				return err
			}
			defer rt.Close()

			snap, _, err := rt.Current(cmd.Context())
			if err != nil {
				return err
			}
			return writeSnapshot(cmd.OutOrStdout(), snap, format)
		},
	}

	cmd.Flags().StringVar(&flagFormat, "format", "json", "output format: json or yaml")
	return cmd
}

func writeSnapshot(w io.Writer, snap menu.Snapshot, format string) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(snap); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
