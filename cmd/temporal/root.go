// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.starlark.net/starlark"
	"golang.org/x/term"

	"github.com/startemporal/temporal"
	startemporal "github.com/startemporal/temporal/lib/temporal"
	"github.com/startemporal/temporal/repl"
)

// session is the state shared by the subcommands.
type session struct {
	configPath string
	timeZone   string
	now        string
	showenv    bool

	cfg config
}

func newRootCmd() *cobra.Command {
	s := &session{}
	cmd := &cobra.Command{
		Use:           "temporal [file]",
		Short:         "Evaluate Starlark programs with calendar and time values",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.MaximumNArgs(1),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return s.load(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return s.run(cmd, args[0], nil)
			}
			if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
				return s.repl(cmd)
			}
			src, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return err
			}
			return s.run(cmd, "<stdin>", src)
		},
	}
	flags := cmd.PersistentFlags()
	flags.StringVar(&s.configPath, "config", "", "read configuration from this YAML file (default "+defaultConfigPath()+")")
	flags.StringVar(&s.timeZone, "time-zone", "", "host time zone reported by temporal.now")
	flags.StringVar(&s.now, "now", "", "fix temporal.now at this instant, e.g. 2024-01-01T00:00Z")
	cmd.Flags().BoolVar(&s.showenv, "showenv", false, "on success, print final global environment")

	cmd.AddCommand(
		newRunCmd(s),
		newReplCmd(s),
		newEvalCmd(s),
		newParseCmd(),
		newNowCmd(s),
	)
	return cmd
}

// load reads the configuration, lets flags override it, and installs
// the resulting clock.
func (s *session) load(cmd *cobra.Command) error {
	path, required := s.configPath, true
	if path == "" {
		path, required = defaultConfigPath(), false
	}
	cfg, err := loadConfig(path, required)
	if err != nil {
		return err
	}
	if s.timeZone != "" {
		cfg.TimeZone = s.timeZone
	}
	if s.now != "" {
		cfg.Now = s.now
	}
	cfg.Dialect.apply()
	s.cfg = cfg
	return nil
}

func (s *session) predeclared() starlark.StringDict {
	return starlark.StringDict{startemporal.ModuleName: startemporal.Module}
}

// thread returns a thread whose output and clock follow the session.
func (s *session) thread(cmd *cobra.Command, name string) (*starlark.Thread, error) {
	c, err := s.cfg.clock()
	if err != nil {
		return nil, err
	}
	out := cmd.OutOrStdout()
	thread := &starlark.Thread{
		Name:  name,
		Print: func(_ *starlark.Thread, msg string) { fmt.Fprintln(out, msg) },
		Load:  repl.MakeLoad(s.predeclared()),
	}
	startemporal.SetClock(thread, c)
	return thread, nil
}

// run executes a file, or src if non-nil.
func (s *session) run(cmd *cobra.Command, filename string, src any) error {
	thread, err := s.thread(cmd, "exec "+filename)
	if err != nil {
		return err
	}
	if b, ok := src.([]byte); ok {
		src = string(b)
	}
	globals, err := starlark.ExecFile(thread, filename, src, s.predeclared())
	if err != nil {
		return describe(err)
	}
	if s.showenv {
		names := make([]string, 0, len(globals))
		for name := range globals {
			if !strings.HasPrefix(name, "_") {
				names = append(names, name)
			}
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s = %s\n", name, globals[name])
		}
	}
	return nil
}

func (s *session) repl(cmd *cobra.Command) error {
	thread, err := s.thread(cmd, "REPL")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Welcome to temporal (Starlark)")
	globals := s.predeclared()
	repl.REPL(thread, globals, repl.Options{Prompt: s.cfg.Prompt, HistoryFile: s.cfg.HistoryFile})
	return nil
}

// describe returns the backtrace of a Starlark evaluation error.
func describe(err error) error {
	if evalErr, ok := err.(*starlark.EvalError); ok {
		return fmt.Errorf("%s", evalErr.Backtrace())
	}
	return err
}

// parsers maps each parse kind to the parser of its canonical text.
var parsers = map[string]func(string) (fmt.Stringer, error){
	"instant": func(s string) (fmt.Stringer, error) { return temporal.ParseInstant(s) },
	"zoned": func(s string) (fmt.Stringer, error) {
		return temporal.ParseZonedDateTime(s, temporal.ZonedOptions{})
	},
	"date":      func(s string) (fmt.Stringer, error) { return temporal.ParsePlainDate(s) },
	"time":      func(s string) (fmt.Stringer, error) { return temporal.ParsePlainTime(s) },
	"datetime":  func(s string) (fmt.Stringer, error) { return temporal.ParsePlainDateTime(s) },
	"yearmonth": func(s string) (fmt.Stringer, error) { return temporal.ParsePlainYearMonth(s) },
	"monthday":  func(s string) (fmt.Stringer, error) { return temporal.ParsePlainMonthDay(s) },
	"duration":  func(s string) (fmt.Stringer, error) { return temporal.ParseDuration(s) },
}

func parseKinds() []string {
	kinds := make([]string, 0, len(parsers))
	for k := range parsers {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}
