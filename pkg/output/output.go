// Package output publishes result variables to the orchestrating CI caller.
//
// Two formats are supported: the append-line key=value file named by the
// GITHUB_OUTPUT environment variable, and the legacy ::set-output marker
// printed to stdout when the variable is absent.
package output

import (
	"fmt"
	"io"
	"os"
	"strconv"
)

// Sink writes result variables in whichever format the environment selects.
type Sink struct {
	// FilePath is the append-line output file. Empty selects the legacy
	// stdout markers.
	FilePath string

	// Stdout receives legacy markers. Defaults to os.Stdout.
	Stdout io.Writer
}

// NewSinkFromEnv builds a sink from the GITHUB_OUTPUT environment variable.
func NewSinkFromEnv() *Sink {
	return &Sink{
		FilePath: os.Getenv("GITHUB_OUTPUT"),
		Stdout:   os.Stdout,
	}
}

// Set emits one key=value pair.
func (s *Sink) Set(key, value string) error {
	if s.FilePath == "" {
		out := s.Stdout
		if out == nil {
			out = os.Stdout
		}
		_, err := fmt.Fprintf(out, "::set-output name=%s::%s\n", key, value)
		return err
	}

	f, err := os.OpenFile(s.FilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open output file %s: %w", s.FilePath, err)
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "%s=%s\n", key, value); err != nil {
		return fmt.Errorf("failed to append to output file %s: %w", s.FilePath, err)
	}
	return nil
}

// SetBool emits a boolean result variable.
func (s *Sink) SetBool(key string, value bool) error {
	return s.Set(key, strconv.FormatBool(value))
}
