package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/curalinkai/curalink/internal"
	"github.com/curalinkai/curalink/internal/export"
	"github.com/spf13/cobra"
)

var (
	format    string
	outputDir string
	sessionID string
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export sessions to files",
	Long: `Export chat sessions, including answer sources, to jsonl, md, yaml or json.

Every session is written to its own file in the output directory. Use
--session-id to export a single session; 'curalink list' shows the IDs.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		exporter, err := export.NewExporter(format)
		if err != nil {
			return err
		}

		chat, kv, _, err := openChat()
		if err != nil {
			return err
		}
		defer kv.Close()

		sessions := chat.Store().Sessions()
		if sessionID != "" {
			session, ok := chat.Store().Session(sessionID)
			if !ok {
				return fmt.Errorf("session not found: %s (use 'curalink list' to see available sessions)", sessionID)
			}
			sessions = []internal.Session{session}
		}

		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return &internal.ExportError{Format: format, Path: outputDir, Err: err}
		}

		written := 0
		ctx := context.Background()
		err = internal.ShowProgress(ctx, fmt.Sprintf("Exporting %d session(s) to %s", len(sessions), outputDir), func() error {
			for i := range sessions {
				if err := exportSession(exporter, &sessions[i], outputDir); err != nil {
					internal.LogError("%v", err)
					continue
				}
				written++
			}
			return nil
		})
		if err != nil {
			return err
		}

		if written < len(sessions) {
			return fmt.Errorf("exported %d of %d session(s) to %s", written, len(sessions), outputDir)
		}
		internal.PrintSuccess(fmt.Sprintf("Export complete: %d session(s) exported to %s", written, outputDir))
		return nil
	},
}

func exportSession(exporter export.Exporter, session *internal.Session, dir string) error {
	filename := fmt.Sprintf("session_%s.%s", session.ID, exporter.Extension())
	path := filepath.Join(dir, filename)

	file, err := os.Create(path)
	if err != nil {
		return &internal.ExportError{Format: format, Path: path, Err: err}
	}

	if err := exporter.Export(session, file); err != nil {
		_ = file.Close()
		return &internal.ExportError{Format: format, Path: path, Err: err}
	}

	if err := file.Close(); err != nil {
		return &internal.ExportError{Format: format, Path: path, Err: err}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&format, "format", "f", "jsonl", "Export format (jsonl, md, yaml, json)")
	exportCmd.Flags().StringVarP(&outputDir, "out", "o", "./exports", "Output directory")
	exportCmd.Flags().StringVar(&sessionID, "session-id", "", "Export a specific session by ID")
}
