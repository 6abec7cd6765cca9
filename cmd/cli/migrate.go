package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/wadjakorntonsri/go-linkmaker/pkg/core/domain"
)

var (
	exportFile string
	importFile string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Dump links, history and dashboard as JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		snapshot, err := service.Export(cmd.Context())
		if err != nil {
			return err
		}

		var out io.Writer = os.Stdout
		if exportFile != "" {
			f, err := os.Create(exportFile)
			if err != nil {
				return err
			}
			defer f.Close()
			out = f
		}

		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(snapshot); err != nil {
			return err
		}
		if exportFile != "" {
			fmt.Fprintf(os.Stderr, "Exported %d links to %s\n", len(snapshot.LinksHistory), exportFile)
		}
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Load links from a JSON export, skipping codes that already exist",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(importFile)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		var snapshot domain.Snapshot
		if err := json.Unmarshal(data, &snapshot); err != nil {
			return fmt.Errorf("failed to parse JSON: %w", err)
		}

		count, err := service.Import(cmd.Context(), &snapshot)
		if err != nil {
			return err
		}
		fmt.Printf("Imported %d links\n", count)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFile, "file", "f", "", "write to this file instead of stdout")
	importCmd.Flags().StringVarP(&importFile, "file", "f", "", "JSON file to import")
	_ = importCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(exportCmd, importCmd)
}
