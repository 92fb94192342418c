// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package dotenv keeps a .env file in step with a variable manifest. The
// file is only ever created or appended to; existing lines are never
// rewritten.
package dotenv

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/stacklok/nvar/logging"
	"github.com/stacklok/nvar/resolve"
)

// Header is written when the file is created. Shell-style loaders require
// the '#' to be the first byte of a comment line, so no space follows it.
const Header = `#Environment variables are managed through this file (.env). Scripts and
#tooling load the environment from here, and the application warns on startup
#if any required environment variables are missing. The list of variables the
#application reads is kept in config/environment_variables.yml.
`

const filePerm fs.FileMode = 0o600

// Reconciler appends missing assignments to a .env file.
type Reconciler struct {
	path   string
	logger *slog.Logger
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithLogger sets the logger. The default is [logging.New].
func WithLogger(l *slog.Logger) Option {
	return func(r *Reconciler) {
		r.logger = l
	}
}

// NewReconciler returns a Reconciler for the file at path.
func NewReconciler(path string, opts ...Option) *Reconciler {
	r := &Reconciler{path: path}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = logging.New()
	}
	return r
}

// Path returns the file the reconciler manages.
func (r *Reconciler) Path() string {
	return r.path
}

// Touch creates the file with [Header] if it does not exist. It reports
// whether the file was created.
func (r *Reconciler) Touch() (bool, error) {
	f, err := os.OpenFile(r.path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, filePerm)
	if errors.Is(err, fs.ErrExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("creating %s: %w", r.path, err)
	}
	defer f.Close()

	if _, err := io.WriteString(f, Header); err != nil {
		return true, fmt.Errorf("writing header to %s: %w", r.path, err)
	}
	r.logger.Debug("created env file", "path", r.path)
	return true, nil
}

// Reconcile touches the file and appends NAME=value for every variable in
// unset that has no NAME= line yet. The value written is the one carried by
// the variable; the environment is not consulted again. It returns true
// only if every variable in unset carries a non-blank value.
func (r *Reconciler) Reconcile(unset []resolve.Variable) (bool, error) {
	if _, err := r.Touch(); err != nil {
		return false, err
	}

	recorded, endsWithNewline, err := r.scan()
	if err != nil {
		return false, err
	}

	var b strings.Builder
	for _, v := range unset {
		if _, ok := recorded[v.Name()]; ok {
			continue
		}
		recorded[v.Name()] = struct{}{}
		b.WriteString(assignment(v))
	}

	if b.Len() > 0 {
		out := b.String()
		if !endsWithNewline {
			out = "\n" + out
		}
		if err := r.append(out); err != nil {
			return false, err
		}
	}

	complete := true
	for _, v := range unset {
		if !v.HasValue() {
			complete = false
			break
		}
	}
	return complete, nil
}

func assignment(v resolve.Variable) string {
	value := ""
	if v.Present {
		value = v.Value
	}
	return v.Name() + "=" + value + "\n"
}

// scan collects the names of NAME= lines and reports whether the file is
// empty or ends with a newline.
func (r *Reconciler) scan() (map[string]struct{}, bool, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, false, fmt.Errorf("opening %s: %w", r.path, err)
	}
	defer f.Close()

	names := make(map[string]struct{})
	reader := bufio.NewReader(f)
	endsWithNewline := true
	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			endsWithNewline = strings.HasSuffix(line, "\n")
			if name, _, ok := strings.Cut(line, "="); ok && name != "" && !strings.HasPrefix(name, "#") {
				names[name] = struct{}{}
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, false, fmt.Errorf("reading %s: %w", r.path, err)
		}
	}
	return names, endsWithNewline, nil
}

func (r *Reconciler) append(s string) error {
	f, err := os.OpenFile(r.path, os.O_WRONLY|os.O_APPEND, filePerm)
	if err != nil {
		return fmt.Errorf("opening %s for append: %w", r.path, err)
	}
	if _, err := io.WriteString(f, s); err != nil {
		_ = f.Close()
		return fmt.Errorf("appending to %s: %w", r.path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", r.path, err)
	}
	r.logger.Debug("appended env assignments", "path", r.path, "bytes", len(s))
	return nil
}
