package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/curalinkai/curalink/internal"
	"github.com/spf13/cobra"
)

var (
	healthcheckDetails bool
	probeTimeout       time.Duration
)

var (
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true).
			Underline(true)
)

// healthcheckCmd represents the healthcheck command
var healthcheckCmd = &cobra.Command{
	Use:   "healthcheck",
	Short: "Check that sessions can be stored and the answering service is reachable",
	Long: `Check the health of curalink by verifying:
  • Configuration and data path resolution
  • Session database access
  • Stored session count
  • Answering service reachability`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, sectionStyle.Render("🔍 CuraLink Health Check"))
		fmt.Fprintln(out)

		// Step 1: Configuration
		fmt.Fprintln(out, infoStyle.Render("Step 1: Resolving configuration..."))
		cfg, paths, err := loadConfig()
		if err != nil {
			fmt.Fprintln(out, errorStyle.Render("❌ Failed to load configuration:"), err)
			return fmt.Errorf("health check failed: %w", err)
		}
		fmt.Fprintln(out, successStyle.Render("✅ Configuration loaded"))
		if healthcheckDetails {
			fmt.Fprintf(out, "   Config file: %s\n", paths.ConfigFile)
			fmt.Fprintf(out, "   Database: %s\n", cfg.Database)
			fmt.Fprintf(out, "   Endpoint: %s\n", cfg.Endpoint)
		}
		fmt.Fprintln(out)

		// Step 2: Storage
		fmt.Fprintln(out, infoStyle.Render("Step 2: Opening session database..."))
		kv, err := internal.OpenSQLiteKV(cfg.Database)
		if err != nil {
			fmt.Fprintln(out, errorStyle.Render("❌ Failed to open database:"), err)
			return fmt.Errorf("health check failed: %w", &internal.StorageError{Key: cfg.Database, Op: "open", Err: err})
		}
		defer kv.Close()
		fmt.Fprintln(out, successStyle.Render("✅ Database accessible"))
		if healthcheckDetails {
			if keys, err := kv.Keys(); err == nil {
				fmt.Fprintf(out, "   Keys: %v\n", keys)
			}
		}
		fmt.Fprintln(out)

		// Step 3: Sessions
		fmt.Fprintln(out, infoStyle.Render("Step 3: Loading stored sessions..."))
		sessions, ok := internal.NewPersistence(kv).Load()
		if ok {
			fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("✅ Found %d session(s)", len(sessions))))
			if healthcheckDetails {
				for i, item := range internal.ListSessions(sessions, "") {
					if i == 5 {
						fmt.Fprintf(out, "   ... and %d more\n", len(sessions)-5)
						break
					}
					fmt.Fprintf(out, "   [%d] %s (ID: %s, %d message(s))\n", i+1, item.Label, item.ID, item.MessageCount)
				}
			}
		} else {
			fmt.Fprintln(out, warningStyle.Render("⚠️  No saved sessions"))
			fmt.Fprintln(out, "   A default session is created on first use")
		}
		fmt.Fprintln(out)

		// Step 4: Endpoint
		fmt.Fprintln(out, infoStyle.Render("Step 4: Probing answering service..."))
		status, probeErr := internal.ProbeEndpoint(context.Background(), cfg.Endpoint, probeTimeout)
		if probeErr != nil {
			fmt.Fprintln(out, errorStyle.Render("❌ Answering service unreachable:"), probeErr)
		} else {
			fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("✅ Answering service responded (HTTP %d)", status)))
		}
		fmt.Fprintln(out)

		// Summary
		fmt.Fprintln(out, sectionStyle.Render("📊 Summary"))
		fmt.Fprintln(out)
		if probeErr != nil {
			fmt.Fprintln(out, errorStyle.Render("❌ Health check failed"))
			fmt.Fprintln(out, "   • Storage: Available")
			fmt.Fprintf(out, "   • Endpoint: %s is not reachable\n", cfg.Endpoint)
			return fmt.Errorf("health check failed: %w", probeErr)
		}
		fmt.Fprintln(out, successStyle.Render("✅ Health check passed!"))
		fmt.Fprintln(out, successStyle.Render("   • Storage: Available"))
		fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("   • Sessions: %d found", len(sessions))))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(healthcheckCmd)
	healthcheckCmd.Flags().BoolVarP(&healthcheckDetails, "details", "d", false, "Show detailed diagnostic information")
	healthcheckCmd.Flags().DurationVar(&probeTimeout, "timeout", 5*time.Second, "Answering service probe timeout")
}
