package ui

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"aula/config"
)

// ComposerMode is the state of the input area. At most one outbound
// operation is in flight at a time; starting another while one is active
// is rejected in the update loop.
type ComposerMode int

const (
	ComposerIdle ComposerMode = iota
	ComposerSubmittingText
	ComposerUploadingImage
	ComposerRecordingAudio
)

// Busy reports whether an outbound operation is in flight. Recording
// itself counts: the composer must be stopped before anything else runs.
func (m ComposerMode) Busy() bool {
	return m != ComposerIdle
}

func (m ComposerMode) String() string {
	switch m {
	case ComposerSubmittingText:
		return "enviando"
	case ComposerUploadingImage:
		return "analizando imagen"
	case ComposerRecordingAudio:
		return "grabando"
	default:
		return "listo"
	}
}

var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".webp": true,
}

// IsImagePath reports whether path has a recognized image extension.
func IsImagePath(path string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(path))]
}

// Recorder captures microphone audio by running the configured recorder
// command with a temp WAV path appended as its last argument. The capture
// file outlives the recorder until the next recording starts.
type Recorder struct {
	cmd  *exec.Cmd
	path string
}

// StartRecorder launches the recorder process. command is a plain
// space-separated command line, e.g. "arecord -q -f cd".
func StartRecorder(command string) (*Recorder, error) {
	parts := strings.Fields(command)
	if len(parts) == 0 {
		return nil, fmt.Errorf("recorder command is empty")
	}

	f, err := os.CreateTemp("", "aula-captura-*.wav")
	if err != nil {
		return nil, fmt.Errorf("failed to create capture file: %w", err)
	}
	path := f.Name()
	f.Close()

	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	if err := cmd.Start(); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("failed to start recorder %q: %w", parts[0], err)
	}

	if config.DebugLog != nil {
		config.DebugLog.Printf("[Recorder] started %q -> %s (pid %d)", command, path, cmd.Process.Pid)
	}

	return &Recorder{cmd: cmd, path: path}, nil
}

// Stop interrupts the recorder process and waits for it to flush the
// capture. Returns the capture path.
func (r *Recorder) Stop() (string, error) {
	if r.cmd.Process != nil {
		// SIGINT lets arecord close the WAV header cleanly
		_ = r.cmd.Process.Signal(os.Interrupt)
	}

	// The recorder exits non-zero on interrupt; only a missing capture is
	// treated as a failure.
	_ = r.cmd.Wait()

	info, err := os.Stat(r.path)
	if err != nil || info.Size() == 0 {
		os.Remove(r.path)
		return "", fmt.Errorf("recorder produced no capture")
	}

	if config.DebugLog != nil {
		config.DebugLog.Printf("[Recorder] stopped, capture %s (%d bytes)", r.path, info.Size())
	}

	return r.path, nil
}
