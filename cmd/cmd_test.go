package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramanasai/fitlog/internal/utils"
)

const seedYAML = `activities:
  - name: Running
    duration: 30 mins
  - name: Walking
    duration: 1 hr
`

// execute runs the root command with a clean home directory and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("FITLOG_NO_REMINDER", "1")

	prev := isInteractive
	isInteractive = func() bool { return false }
	t.Cleanup(func() { isInteractive = prev })

	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// resetFlags puts every flag back to its default so tests do not leak
// settings into each other through the package-level command tree.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.PersistentFlags().VisitAll(reset)
	c.Flags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func writeSeed(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(p, []byte(seedYAML), 0o644))
	return p
}

func TestParseCommand(t *testing.T) {
	out, err := execute(t, "parse", "--explain=false", "1 hr 15 mins", "45 mins", "2 hours", "45", "")
	require.NoError(t, err)
	assert.Equal(t, "75\n45\n120\n45\n0\n", out)

	out, err = execute(t, "parse", "--no-bare-minutes", "--explain=false", "45")
	require.NoError(t, err)
	assert.Equal(t, "0\n", out)
}

func TestSummaryCommand_Quiet(t *testing.T) {
	out, err := execute(t, "summary", "--seed", writeSeed(t), "--format", "quiet")
	require.NoError(t, err)
	assert.Equal(t, "90 609 9900\n", out)
}

func TestSummaryCommand_JSON(t *testing.T) {
	out, err := execute(t, "summary", "--seed", writeSeed(t), "--format", "json")
	require.NoError(t, err)

	var rep utils.Report
	require.NoError(t, sonic.Unmarshal([]byte(out), &rep))
	require.Len(t, rep.Rows, 2)
	assert.True(t, strings.HasSuffix(rep.Rows[0].Label, " Running"))
	assert.Equal(t, 609, rep.Totals.Calories)
}

func TestSummaryCommand_BadFormat(t *testing.T) {
	_, err := execute(t, "summary", "--format", "xml")
	assert.Error(t, err)
}

func TestAddCommand(t *testing.T) {
	out, err := execute(t, "add", "--seed", writeSeed(t), "--format", "quiet", "Yoga", "45 mins")
	require.NoError(t, err)
	// 90 + 45 minutes, 609 + 158 kcal
	assert.Equal(t, "135 767 9900\n", out)
}

func TestAddCommand_WeightFlag(t *testing.T) {
	out, err := execute(t, "add", "--weight", "80", "--format", "quiet", "Running", "1 hr")
	require.NoError(t, err)
	assert.Equal(t, "60 784 7800\n", out)
}

func TestAddCommand_NeedsArgsOffTerminal(t *testing.T) {
	_, err := execute(t, "add", "Yoga")
	assert.Error(t, err)
}

func TestAddCommand_BlankRejected(t *testing.T) {
	_, err := execute(t, "add", "--format", "quiet", "  ", "45 mins")
	assert.Error(t, err)
}

func TestRootCommand_PrintsSummaryOffTerminal(t *testing.T) {
	out, err := execute(t, "--seed", writeSeed(t))
	require.NoError(t, err)
	assert.Contains(t, out, "Total time (min)")
	assert.Contains(t, out, "609")
}

func TestConfigFile_SqliteStore(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("store:\n  driver: sqlite\nweight_kg: 70\n"), 0o644))

	out, err := execute(t, "summary", "--config", cfgPath, "--seed", writeSeed(t), "--format", "quiet")
	require.NoError(t, err)
	assert.Equal(t, "90 609 9900\n", out)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, "fitlog dev\n", out)
}
