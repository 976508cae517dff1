package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"img2gif/internal/testsupport"
)

type cliTestEnv struct {
	baseDir    string
	configPath string
	workDir    string
	historyDB  string
	logDir     string
	ffmpeg     string
}

type cliEnvOption func(*cliTestEnv, *strings.Builder)

func withFFmpeg(path string) cliEnvOption {
	return func(env *cliTestEnv, _ *strings.Builder) {
		env.ffmpeg = path
	}
}

func withLogDir(dir string) cliEnvOption {
	return func(env *cliTestEnv, _ *strings.Builder) {
		env.logDir = dir
	}
}

func withConfigSection(body string) cliEnvOption {
	return func(_ *cliTestEnv, extra *strings.Builder) {
		extra.WriteString(body)
		extra.WriteString("\n")
	}
}

func setupCLITestEnv(t *testing.T, opts ...cliEnvOption) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("IMG2GIF_FFMPEG", "")
	t.Setenv("IMG2GIF_WORK_DIR", "")

	env := &cliTestEnv{
		baseDir:    base,
		configPath: filepath.Join(base, "config.toml"),
		workDir:    filepath.Join(base, "work"),
		historyDB:  filepath.Join(base, "data", "history.db"),
	}
	var extra strings.Builder
	for _, opt := range opts {
		opt(env, &extra)
	}
	if env.ffmpeg == "" {
		env.ffmpeg = testsupport.WriteStubFFmpeg(t)
	}

	content := fmt.Sprintf(`[paths]
work_dir = %q
history_db = %q
log_dir = %q

[engine]
ffmpeg_binary = %q
lock_timeout_seconds = 1

[logging]
level = "error"

%s`, env.workDir, env.historyDB, env.logDir, env.ffmpeg, extra.String())
	if err := os.WriteFile(env.configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return env
}

func (env *cliTestEnv) run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	return runCLI(t, append([]string{"--config", env.configPath}, args...))
}

func runCLI(t *testing.T, args []string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func writeInputs(t *testing.T, dir string, names ...string) []string {
	t.Helper()
	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = filepath.Join(dir, name)
		testsupport.WritePNG(t, paths[i], 20+i*10, 20)
	}
	return paths
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
