package cmd

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/curalinkai/curalink/internal"
	"github.com/curalinkai/curalink/testutil"
	"github.com/spf13/cobra"
)

// isolate points every data path at a temp dir and clears flag state left
// over from earlier runs of rootCmd
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_DATA_HOME", filepath.Join(home, "data"))
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, "config"))
	t.Setenv(internal.EnvEndpoint, "")
	t.Setenv(internal.EnvDatabase, "")

	verbose, storagePath, endpointURL, configPath = false, "", "", ""
	limit = 0
	format, outputDir, sessionID = "jsonl", "./exports", ""
	askSession, askNewSession = "", false
	healthcheckDetails, probeTimeout = false, 5*time.Second
	resetHelp(rootCmd)

	return filepath.Join(home, "chats.db")
}

func resetHelp(c *cobra.Command) {
	for _, name := range []string{"help", "version"} {
		if f := c.Flags().Lookup(name); f != nil {
			_ = f.Value.Set("false")
		}
	}
	for _, sub := range c.Commands() {
		resetHelp(sub)
	}
}

// seedDatabase writes the snapshot fixture to a database at path
func seedDatabase(t *testing.T, path string) {
	t.Helper()
	kv, err := internal.OpenSQLiteKV(path)
	if err != nil {
		t.Fatalf("OpenSQLiteKV() error = %v", err)
	}
	defer kv.Close()
	if err := kv.Set(internal.SnapshotKey, testutil.SnapshotFixture); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
}

// loadSessions reads back what a command persisted
func loadSessions(t *testing.T, path string) []internal.Session {
	t.Helper()
	kv, err := internal.OpenSQLiteKV(path)
	if err != nil {
		t.Fatalf("OpenSQLiteKV() error = %v", err)
	}
	defer kv.Close()
	sessions, _ := internal.NewPersistence(kv).Load()
	return sessions
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	err := rootCmd.Execute()
	return stdout.String(), err
}
