package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetKoanf creates a fresh koanf instance for each test.
func resetKoanf() {
	k = koanf.New(".")
}

// resetFlags restores scalar flags of cmd and its subcommands to their
// defaults so state does not leak between Execute calls.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		switch f.Value.Type() {
		case "bool", "string":
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		}
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func TestConfigFileLoading(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".cssurl.yaml")
	configContent := `
verbose: true
source: custom/css
output-dir: custom/output
check: true
include:
  - "**/*.pcss"
filter:
  all: true
  exclude:
    - "**/*.svg"
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))
	require.NoError(t, loadConfigFromPath(configPath))

	assert.True(t, k.Bool("verbose"))
	assert.Equal(t, "custom/css", k.String("source"))
	assert.Equal(t, "custom/output", k.String("output-dir"))
	assert.True(t, k.Bool("check"))
	assert.Equal(t, []string{"**/*.pcss"}, k.Strings("include"))
	assert.True(t, k.Bool("filter.all"))
	assert.Equal(t, []string{"**/*.svg"}, k.Strings("filter.exclude"))
}

func TestConfigFileNotFound_UsesDefaults(t *testing.T) {
	resetKoanf()

	// Point to non-existent config, should not error
	require.NoError(t, loadConfigFromPath("/nonexistent/.cssurl.yaml"))

	config := buildConfig()
	assert.Equal(t, ".", config.SourceDir)
	assert.Equal(t, []string{"**/*.css"}, config.Includes)
	assert.Empty(t, config.OutputDir)
}

func TestEnvVarOverridesConfigFile(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".cssurl.yaml")
	configContent := `
source: from-file
output-dir: from-file
filter:
  all: false
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

	// Set env vars that should override config file
	t.Setenv("CSSURL_SOURCE", "from-env")
	t.Setenv("CSSURL_OUTPUT_DIR", "dist")
	t.Setenv("CSSURL_FILTER__ALL", "true")

	require.NoError(t, loadConfigFromPath(configPath))

	config := buildConfig()
	assert.Equal(t, "from-env", config.SourceDir)
	assert.Equal(t, "dist", config.OutputDir)
	assert.True(t, config.Filter.All)
}

func TestEnvKey(t *testing.T) {
	tests := []struct {
		env  string
		want string
	}{
		{env: "CSSURL_VERBOSE", want: "verbose"},
		{env: "CSSURL_OUTPUT_DIR", want: "output-dir"},
		{env: "CSSURL_RESPECT_GITIGNORE", want: "respect-gitignore"},
		{env: "CSSURL_FILTER__ALL", want: "filter.all"},
		{env: "CSSURL_FILTER__INCLUDE", want: "filter.include"},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			assert.Equal(t, tt.want, envKey(tt.env))
		})
	}
}

func TestFlagKey(t *testing.T) {
	assert.Equal(t, "filter.all", flagKey("filter-all"))
	assert.Equal(t, "filter.exclude", flagKey("filter-exclude"))
	assert.Equal(t, "output-dir", flagKey("output-dir"))
}

func TestBuildConfig_Defaults(t *testing.T) {
	resetKoanf()

	config := buildConfig()
	assert.Equal(t, ".", config.SourceDir)
	assert.Equal(t, []string{"**/*.css"}, config.Includes)
	assert.Empty(t, config.OutputDir)
	assert.False(t, config.Stdout)
	assert.False(t, config.Check)
	assert.True(t, config.RespectGitignore)
	assert.False(t, config.Verbose)
	assert.False(t, config.Filter.All)
	assert.Empty(t, config.Filter.Include)
	assert.Empty(t, config.Filter.Exclude)
}

func TestBuildConfig_FromConfigFile(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".cssurl.yaml")
	configContent := `
source: src/css
output-dir: gen/out
respect-gitignore: false
include:
  - "**/*.css"
  - "vendor/*.css"
filter:
  include:
    - "img/**"
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))
	require.NoError(t, loadConfigFromPath(configPath))

	config := buildConfig()
	assert.Equal(t, "src/css", config.SourceDir)
	assert.Equal(t, "gen/out", config.OutputDir)
	assert.False(t, config.RespectGitignore)
	assert.Equal(t, []string{"**/*.css", "vendor/*.css"}, config.Includes)
	assert.Equal(t, []string{"img/**"}, config.Filter.Include)
}

func TestLoadConfig_FlagsOverrideFile(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".cssurl.yaml")
	configContent := `
source: from-file
check: false
respect-gitignore: false
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

	cmd := &cobra.Command{Use: "test"}
	addRewriteFlags(cmd)
	cmd.Flags().String("config", configPath, "")
	require.NoError(t, cmd.Flags().Parse([]string{"--check", "--filter-include", "img/**"}))

	require.NoError(t, loadConfig(cmd))

	config := buildConfig()
	assert.True(t, config.Check, "changed flag wins over file")
	assert.Equal(t, "from-file", config.SourceDir, "unchanged flag default does not shadow file")
	assert.False(t, config.RespectGitignore, "unchanged bool default does not shadow file")
	assert.Equal(t, []string{"img/**"}, config.Filter.Include)
	assert.False(t, k.Exists("config"))
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(origDir)
	})
}

func TestInitCommand_CreatesConfigFile(t *testing.T) {
	chdir(t, t.TempDir())
	resetFlags(rootCmd)

	cmd := rootCmd
	cmd.SetArgs([]string{"init"})
	require.NoError(t, cmd.Execute())

	// Verify file was created and loads cleanly
	data, err := os.ReadFile(".cssurl.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "include:")
	assert.Contains(t, string(data), "filter:")

	resetKoanf()
	require.NoError(t, loadConfigFromPath(".cssurl.yaml"))
	config := buildConfig()
	assert.Equal(t, ".", config.SourceDir)
	assert.Equal(t, []string{"**/*.css"}, config.Includes)
	assert.True(t, config.RespectGitignore)
}

func TestInitCommand_RefusesOverwrite(t *testing.T) {
	chdir(t, t.TempDir())
	resetFlags(rootCmd)

	// Create existing file
	require.NoError(t, os.WriteFile(".cssurl.yaml", []byte("existing"), 0644))

	cmd := rootCmd
	cmd.SetArgs([]string{"init"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestInitCommand_ForceOverwrite(t *testing.T) {
	chdir(t, t.TempDir())
	resetFlags(rootCmd)

	// Create existing file
	require.NoError(t, os.WriteFile(".cssurl.yaml", []byte("existing"), 0644))

	cmd := rootCmd
	cmd.SetArgs([]string{"init", "--force"})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(".cssurl.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "output-format: text")
}

func TestVersionCommand(t *testing.T) {
	resetFlags(rootCmd)

	var out bytes.Buffer
	cmd := rootCmd
	cmd.SetOut(&out)
	t.Cleanup(func() { cmd.SetOut(nil) })
	cmd.SetArgs([]string{"version"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "cssurl dev\n", out.String())
}

// rewriteFixture creates a source dir with one stylesheet that has a url to
// externalize and one that has none
func rewriteFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.css"), []byte(".a { background: url(./a.png) }"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.css"), []byte(".b { color: red }"), 0644))
	return dir
}

func executeRewrite(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("FORCE_COLOR", "")
	t.Setenv("GITHUB_ACTIONS", "")
	resetKoanf()
	resetFlags(rootCmd)

	var out, errOut bytes.Buffer
	cmd := rootCmd
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	t.Cleanup(func() {
		cmd.SetOut(nil)
		cmd.SetErr(nil)
	})

	// A config path that never exists keeps the working directory out of it
	args = append([]string{"rewrite", "--config", filepath.Join(t.TempDir(), "none.yaml")}, args...)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRewriteCommand_InPlace(t *testing.T) {
	dir := rewriteFixture(t)

	out, _, err := executeRewrite(t, "--source", dir)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "a.css"))
	require.NoError(t, err)
	assert.Equal(t, ":import(\"./a.png\") {\n  __url_0: default\n}\n.a { background: url(__url_0) }", string(data))

	assert.Contains(t, out, "rewrote 1 url")
	assert.Contains(t, out, "2 files scanned, 1 changed")
}

func TestRewriteCommand_CheckFailsWhenFilesWouldChange(t *testing.T) {
	dir := rewriteFixture(t)

	out, _, err := executeRewrite(t, "--source", dir, "--check")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 files need rewriting")
	assert.Contains(t, out, "would rewrite")

	data, err := os.ReadFile(filepath.Join(dir, "a.css"))
	require.NoError(t, err)
	assert.Equal(t, ".a { background: url(./a.png) }", string(data))
}

func TestRewriteCommand_Stdout(t *testing.T) {
	dir := rewriteFixture(t)

	out, errOut, err := executeRewrite(t, "--source", dir, "--stdout")
	require.NoError(t, err)
	assert.Contains(t, out, ":import(\"./a.png\")")
	assert.Contains(t, out, ".b { color: red }")
	assert.Contains(t, errOut, "files scanned")
}

func TestRewriteCommand_JSON(t *testing.T) {
	dir := rewriteFixture(t)

	out, _, err := executeRewrite(t, "--source", dir, "--check", "--output-format", "json")
	require.Error(t, err)

	var report struct {
		Summary struct {
			FilesScanned int `json:"files_scanned"`
			FilesChanged int `json:"files_changed"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 2, report.Summary.FilesScanned)
	assert.Equal(t, 1, report.Summary.FilesChanged)
}

func TestRewriteCommand_ReportsFailedFiles(t *testing.T) {
	dir := rewriteFixture(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c.css"), []byte(".c {"), 0644))

	out, _, err := executeRewrite(t, "--source", dir, "--quiet")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 3 files failed")
	assert.Empty(t, out)
}
