package preflight

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"img2gif/internal/config"
	"img2gif/internal/deps"
)

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	if path == "" {
		return Result{Name: name, Detail: "not configured"}
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckSystemDeps evaluates ffmpeg and ffprobe for the given config. When
// ffprobe is left at its default name, the binary next to ffmpeg wins.
func CheckSystemDeps(cfg *config.Config) []deps.Status {
	statuses := deps.CheckBinaries(deps.Requirements(cfg.Engine.FFmpegBinary, cfg.Engine.FFprobeBinary))
	if !usesDefaultFFprobe(cfg) {
		return statuses
	}
	for i := range statuses {
		if statuses[i].Name == "FFprobe" {
			statuses[i] = deps.CheckFFprobeForFFmpeg(cfg.Engine.FFmpegBinary)
		}
	}
	return statuses
}

// ResolveFFprobe returns the ffprobe command to run for cfg.
func ResolveFFprobe(cfg *config.Config) string {
	if !usesDefaultFFprobe(cfg) {
		return cfg.Engine.FFprobeBinary
	}
	if status := deps.CheckFFprobeForFFmpeg(cfg.Engine.FFmpegBinary); status.Available {
		return status.Command
	}
	return cfg.Engine.FFprobeBinary
}

func usesDefaultFFprobe(cfg *config.Config) bool {
	return cfg.Engine.FFprobeBinary == "" || cfg.Engine.FFprobeBinary == "ffprobe"
}
