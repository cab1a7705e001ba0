// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.starlark.net/starlark"

	"github.com/startemporal/temporal"
)

func newRunCmd(s *session) *cobra.Command {
	c := &cobra.Command{
		Use:   "run file",
		Short: "Execute a Starlark file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.run(cmd, args[0], nil)
		},
	}
	c.Flags().BoolVar(&s.showenv, "showenv", false, "on success, print final global environment")
	return c
}

func newReplCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive read-eval-print loop",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return s.repl(cmd)
		},
	}
}

func newEvalCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "eval expr",
		Short: "Evaluate a Starlark expression and print its value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			thread, err := s.thread(cmd, "eval")
			if err != nil {
				return err
			}
			v, err := starlark.Eval(thread, "<expr>", args[0], s.predeclared())
			if err != nil {
				return describe(err)
			}
			if v != starlark.None {
				fmt.Fprintln(cmd.OutOrStdout(), v)
			}
			return nil
		},
	}
}

func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "parse kind text",
		Short:     "Parse ISO 8601 text and print its canonical form",
		Long:      "Parse ISO 8601 text and print its canonical form.\nKinds: " + strings.Join(parseKinds(), ", ") + ".\nFlags must precede the kind, so text such as --02-29 is taken literally.",
		Args:      cobra.ExactArgs(2),
		ValidArgs: parseKinds(),
		RunE: func(cmd *cobra.Command, args []string) error {
			parse, ok := parsers[args[0]]
			if !ok {
				return fmt.Errorf("unknown kind %q (want one of %s)", args[0], strings.Join(parseKinds(), ", "))
			}
			v, err := parse(args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), v)
			return nil
		},
	}
	// Month-day text begins with "--".
	cmd.Flags().SetInterspersed(false)
	return cmd
}

func newNowCmd(s *session) *cobra.Command {
	var zone string
	c := &cobra.Command{
		Use:   "now",
		Short: "Print the current date and time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			clock, err := s.cfg.clock()
			if err != nil {
				return err
			}
			z, err := temporal.ClockZonedDateTimeISO(clock, zone)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), z)
			return nil
		},
	}
	c.Flags().StringVar(&zone, "zone", "", "time zone (default the host zone)")
	return c
}
