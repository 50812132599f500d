package ffmpegsource

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// findBinary locates name ("ffmpeg" or "ffprobe"). A non-empty custom path
// must exist; otherwise PATH and common install locations are searched.
func findBinary(name, custom string, notFound error) (string, error) {
	if custom != "" {
		if _, err := os.Stat(custom); err == nil {
			return custom, nil
		}
		if p, err := exec.LookPath(custom); err == nil {
			return p, nil
		}
		return "", fmt.Errorf("%w: custom path %s not found", notFound, custom)
	}

	execName := name
	if runtime.GOOS == "windows" {
		execName += ".exe"
	}
	if p, err := exec.LookPath(execName); err == nil {
		return p, nil
	}

	var dirs []string
	if runtime.GOOS == "windows" {
		dirs = []string{
			`C:\ffmpeg\bin`,
			`C:\Program Files\ffmpeg\bin`,
			`C:\Program Files (x86)\ffmpeg\bin`,
		}
	} else {
		dirs = []string{
			"/usr/bin",
			"/usr/local/bin",
			"/opt/homebrew/bin",
			"/snap/bin",
		}
	}
	for _, dir := range dirs {
		p := filepath.Join(dir, execName)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", notFound
}

// FindFFmpeg returns the ffmpeg executable to use.
func FindFFmpeg(custom string) (string, error) {
	return findBinary("ffmpeg", custom, ErrFFmpegNotFound)
}

// FindFFprobe returns the ffprobe executable to use.
func FindFFprobe(custom string) (string, error) {
	return findBinary("ffprobe", custom, ErrFFprobeNotFound)
}
