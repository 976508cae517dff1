package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"img2gif/internal/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("XDG_CACHE_HOME", "")
	t.Setenv("IMG2GIF_WORK_DIR", "")
	t.Setenv("IMG2GIF_FFMPEG", "")
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	if resolved != filepath.Join(tempHome, ".config", "img2gif", "config.toml") {
		t.Fatalf("unexpected resolved path %q", resolved)
	}
	if want := filepath.Join(tempHome, ".cache", "img2gif", "work"); cfg.Paths.WorkDir != want {
		t.Fatalf("work dir = %q, want %q", cfg.Paths.WorkDir, want)
	}
	if want := filepath.Join(tempHome, ".local", "share", "img2gif", "history.db"); cfg.Paths.HistoryDB != want {
		t.Fatalf("history db = %q, want %q", cfg.Paths.HistoryDB, want)
	}
	if cfg.Engine.FFmpegBinary != "ffmpeg" || cfg.Engine.FFprobeBinary != "ffprobe" {
		t.Fatalf("unexpected binaries %q %q", cfg.Engine.FFmpegBinary, cfg.Engine.FFprobeBinary)
	}
	if cfg.Engine.IntermediateName != "temp.mp4" || cfg.Engine.IntermediateCodec != "png" {
		t.Fatalf("unexpected intermediate settings %+v", cfg.Engine)
	}
	if cfg.Engine.PadColor != "ffffff00" {
		t.Fatalf("unexpected pad color %q", cfg.Engine.PadColor)
	}
	if cfg.Conversion.DefaultFormat != "gif" || cfg.MaxFileSizeBytes() != 2000*1024*1024 {
		t.Fatalf("unexpected conversion settings %+v", cfg.Conversion)
	}
	if cfg.LockTimeout().Seconds() != 30 {
		t.Fatalf("unexpected lock timeout %v", cfg.LockTimeout())
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.WorkDir, cfg.Paths.LogDir, filepath.Dir(cfg.Paths.HistoryDB)} {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Fatalf("expected directory %q to exist", dir)
		}
	}
}

func TestLoadEnvironmentFallbacks(t *testing.T) {
	work := t.TempDir()
	t.Setenv("IMG2GIF_WORK_DIR", work)
	t.Setenv("IMG2GIF_FFMPEG", "/opt/ffmpeg/bin/ffmpeg")

	cfg, _, _, err := config.Load(writeConfig(t, "[logging]\nlevel = \"debug\"\n"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Paths.WorkDir != work {
		t.Fatalf("work dir = %q, want %q", cfg.Paths.WorkDir, work)
	}
	if cfg.Engine.FFmpegBinary != "/opt/ffmpeg/bin/ffmpeg" {
		t.Fatalf("ffmpeg = %q", cfg.Engine.FFmpegBinary)
	}

	cfg, _, _, err = config.Load(writeConfig(t, "[engine]\nffmpeg_binary = \"ffmpeg7\"\n"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Engine.FFmpegBinary != "ffmpeg7" {
		t.Fatalf("explicit binary should win over env, got %q", cfg.Engine.FFmpegBinary)
	}
}

func TestLoadPresetsExtendCatalog(t *testing.T) {
	t.Setenv("IMG2GIF_WORK_DIR", t.TempDir())
	body := `
[conversion]
default_format = "tiny"

[[presets]]
id = "tiny"
label = "Tiny loop"
ext = "gif"
[presets.settings]
filter_complex = "filter_complex-64"
scale = { id = "gif-scale-custom", value = 120 }
loop = "gif-loop-1"
`
	cfg, _, exists, err := config.Load(writeConfig(t, body))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to exist")
	}
	catalog, err := cfg.Catalog()
	if err != nil {
		t.Fatalf("Catalog: %v", err)
	}
	tiny, err := catalog.Format("tiny")
	if err != nil {
		t.Fatalf("lookup tiny: %v", err)
	}
	if !tiny.IsCustomPreset || tiny.MIMEType != "image/gif" {
		t.Fatalf("unexpected preset %+v", tiny)
	}
	if got := tiny.Settings["scale"]; got.OptionID != "gif-scale-custom" || got.Value != "120" {
		t.Fatalf("unexpected scale choice %+v", got)
	}
	if sel := catalog.Resolve(tiny); sel.Value("scale") != "120" {
		t.Fatalf("resolved scale = %q", sel.Value("scale"))
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	t.Setenv("IMG2GIF_WORK_DIR", t.TempDir())
	cases := map[string]string{
		"pad color":         "[engine]\npad_color = \"zzzzzz\"\n",
		"intermediate path": "[engine]\nintermediate_name = \"../temp.mp4\"\n",
		"intermediate ext":  "[engine]\nintermediate_name = \"temp\"\n",
		"log level":         "[logging]\nlevel = \"loud\"\n",
		"unknown format":    "[conversion]\ndefault_format = \"webm\"\n",
		"lock timeout":      "[engine]\nlock_timeout_seconds = -1\n",
		"unknown key":       "[engine]\nthreads = 4\n",
		"bad preset":        "[[presets]]\nid = \"x\"\nlabel = \"X\"\next = \"gif\"\n[presets.settings]\nfps = \"10\"\n",
		"ntfy scheme":       "[notifications]\nntfy_topic = \"ntfy.sh/topic\"\n",
		"ntfy timeout":      "[notifications]\nrequest_timeout_seconds = -5\n",
		"preset value type": "[[presets]]\nid = \"x\"\nlabel = \"X\"\next = \"gif\"\n[presets.settings]\nscale = 5\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			if _, _, _, err := config.Load(writeConfig(t, body)); err == nil {
				t.Fatalf("expected error for %s", name)
			}
		})
	}
}

func TestSampleConfigParses(t *testing.T) {
	var cfg config.Config
	if err := toml.Unmarshal([]byte(config.SampleConfig()), &cfg); err != nil {
		t.Fatalf("sample config does not parse: %v", err)
	}
	if cfg.Engine.IntermediateName != "temp.mp4" {
		t.Fatalf("unexpected intermediate name %q", cfg.Engine.IntermediateName)
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(content), "[engine]") {
		t.Fatal("sample config missing engine section")
	}
	t.Setenv("IMG2GIF_WORK_DIR", t.TempDir())
	if _, _, _, err := config.Load(path); err != nil {
		t.Fatalf("sample config should load: %v", err)
	}
}
