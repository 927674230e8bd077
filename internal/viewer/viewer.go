// Package viewer hands files and URLs to the desktop's default application.
package viewer

import (
	"fmt"
	"log"
	"os/exec"
	"runtime"
)

// Opener opens a local file path or URL outside the process.
type Opener interface {
	Open(target string) error
}

// System opens targets with the platform's default handler.
type System struct {
	goos string
}

// NewSystem returns an opener for the running platform.
func NewSystem() *System {
	return &System{goos: runtime.GOOS}
}

// Command returns the command System runs for target.
func (s *System) Command(target string) *exec.Cmd {
	switch s.goos {
	case "darwin":
		return exec.Command("open", target)
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", target)
	default: // Linux and others
		return exec.Command("xdg-open", target)
	}
}

// Open starts the handler and does not wait for it to exit.
func (s *System) Open(target string) error {
	cmd := s.Command(target)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open %s: %w", target, err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

// Noop logs the target instead of opening it. Used when OPEN_VIEWER or
// OPEN_BROWSER is off and in tests.
type Noop struct{}

// Open implements Opener.
func (Noop) Open(target string) error {
	log.Printf("viewer disabled, not opening %s", target)
	return nil
}

// Recorder remembers every target it was asked to open.
type Recorder struct {
	Opened []string
	Err    error
}

// Open implements Opener.
func (r *Recorder) Open(target string) error {
	r.Opened = append(r.Opened, target)
	return r.Err
}
