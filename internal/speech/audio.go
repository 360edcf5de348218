package speech

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// Recorder captures one utterance by running an external command that
// writes audio to stdout.
type Recorder struct {
	Command []string
}

// NewRecorder splits command on whitespace.
func NewRecorder(command string) *Recorder {
	return &Recorder{Command: strings.Fields(command)}
}

// Available reports whether the record command is installed.
func (r *Recorder) Available() error {
	return lookCommand(r.Command)
}

// Record runs the command and returns its stdout.
func (r *Recorder) Record(ctx context.Context) ([]byte, error) {
	if err := r.Available(); err != nil {
		return nil, err
	}
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, r.Command[0], r.Command[1:]...)
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("record audio: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("record audio: no audio captured")
	}
	return out, nil
}

// Player plays audio by piping it into an external command.
type Player struct {
	Command []string
}

// NewPlayer splits command on whitespace.
func NewPlayer(command string) *Player {
	return &Player{Command: strings.Fields(command)}
}

// Available reports whether the play command is installed.
func (p *Player) Available() error {
	return lookCommand(p.Command)
}

// Play blocks until the command has consumed and played audio.
func (p *Player) Play(ctx context.Context, audio io.Reader) error {
	if err := p.Available(); err != nil {
		return err
	}
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, p.Command[0], p.Command[1:]...)
	cmd.Stdin = audio
	cmd.Stdout = io.Discard
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("play audio: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return nil
}

func lookCommand(command []string) error {
	if len(command) == 0 {
		return fmt.Errorf("%w: no audio command configured", ErrUnavailable)
	}
	if _, err := exec.LookPath(command[0]); err != nil {
		return fmt.Errorf("%w: %s not found", ErrUnavailable, command[0])
	}
	return nil
}
