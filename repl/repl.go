// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package repl provides a read/eval/print loop over the temporal
// Starlark module.
//
// It supports readline-style command editing, tab completion of
// globals and attributes, and interrupts through Control-C.
//
// If an input line can be parsed as an expression,
// the REPL parses and evaluates it and prints its result.
// Otherwise the REPL reads lines until a blank line,
// then tries again to parse the multi-line input as an
// expression. If the input still cannot be parsed as an expression,
// the REPL parses and executes it as a file (a list of statements),
// for side effects.
package repl // import "github.com/startemporal/temporal/repl"

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"

	"github.com/chzyer/readline"
	"go.starlark.net/resolve"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

var interrupted = make(chan os.Signal, 1)

// Options configures the REPL.
type Options struct {
	// Prompt defaults to ">>> ".
	Prompt string
	// HistoryFile, if set, persists input lines across sessions.
	HistoryFile string
}

// REPL executes a read, eval, print loop.
//
// Before evaluating each expression, it sets the Starlark thread local
// variable named "context" to a context.Context that is cancelled by a
// SIGINT (Control-C). Client-supplied global functions may use this
// context to make long-running operations interruptable.
func REPL(thread *starlark.Thread, globals starlark.StringDict, opts Options) {
	signal.Notify(interrupted, os.Interrupt)
	defer signal.Stop(interrupted)

	if opts.Prompt == "" {
		opts.Prompt = ">>> "
	}
	rl, err := readline.NewEx(&readline.Config{
		Prompt:       opts.Prompt,
		HistoryFile:  opts.HistoryFile,
		AutoComplete: &completer{globals},
	})
	if err != nil {
		PrintError(err)
		return
	}
	defer rl.Close()
	for {
		if err := rep(rl, opts.Prompt, thread, globals); err != nil {
			if err == readline.ErrInterrupt {
				fmt.Println(err)
				continue
			}
			break
		}
	}
	fmt.Println()
}

// rep reads, evaluates, and prints one item.
//
// It returns an error (possibly readline.ErrInterrupt)
// only if readline failed. Starlark errors are printed.
func rep(rl *readline.Instance, prompt string, thread *starlark.Thread, globals starlark.StringDict) error {
	// Each item gets its own context,
	// which is cancelled by a SIGINT.
	//
	// Note: during Readline calls, Control-C causes Readline to return
	// ErrInterrupt but does not generate a SIGINT.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		select {
		case <-interrupted:
			cancel()
		case <-ctx.Done():
		}
	}()

	thread.SetLocal("context", ctx)

	eof := false

	// readline returns EOF, ErrInterrupted, or a line including "\n".
	rl.SetPrompt(prompt)
	readline := func() ([]byte, error) {
		line, err := rl.Readline()
		rl.SetPrompt("... ")
		if err != nil {
			if err == io.EOF {
				eof = true
			}
			return nil, err
		}
		return []byte(line + "\n"), nil
	}

	// parse
	f, err := syntax.ParseCompoundStmt("<stdin>", readline)
	if err != nil {
		if eof {
			return io.EOF
		}
		PrintError(err)
		return nil
	}

	// Treat load bindings as global in the REPL.
	defer func(prev bool) { resolve.LoadBindsGlobally = prev }(resolve.LoadBindsGlobally)
	resolve.LoadBindsGlobally = true

	if expr := soleExpr(f); expr != nil {
		// eval
		v, err := starlark.EvalExpr(thread, expr, globals)
		if err != nil {
			PrintError(err)
			return nil
		}

		// print
		if v != starlark.None {
			fmt.Println(v)
		}
	} else if err := execChunk(f, thread, globals); err != nil {
		PrintError(err)
		return nil
	}

	return nil
}

// execChunk executes the statements of f, adding its bindings to globals.
func execChunk(f *syntax.File, thread *starlark.Thread, globals starlark.StringDict) error {
	prog, err := starlark.FileProgram(f, globals.Has)
	if err != nil {
		return err
	}
	g, err := prog.Init(thread, globals)
	for k, v := range g {
		globals[k] = v
	}
	return err
}

func soleExpr(f *syntax.File) syntax.Expr {
	if len(f.Stmts) == 1 {
		if stmt, ok := f.Stmts[0].(*syntax.ExprStmt); ok {
			return stmt.X
		}
	}
	return nil
}

// PrintError prints the error to stderr,
// or its backtrace if it is a Starlark evaluation error.
func PrintError(err error) {
	if evalErr, ok := err.(*starlark.EvalError); ok {
		fmt.Fprintln(os.Stderr, evalErr.Backtrace())
	} else {
		fmt.Fprintln(os.Stderr, err)
	}
}

// completer completes a dotted name such as "temporal.plain_d" against
// the globals and the attributes of the values they name.
type completer struct {
	globals starlark.StringDict
}

// Do implements readline.AutoCompleter.
func (c *completer) Do(line []rune, pos int) ([][]rune, int) {
	start := pos
	for start > 0 && isNameRune(line[start-1]) {
		start--
	}
	word := string(line[start:pos])
	candidates := Complete(c.globals, word)
	last := word[strings.LastIndexByte(word, '.')+1:]
	out := make([][]rune, len(candidates))
	for i, cand := range candidates {
		out[i] = []rune(strings.TrimPrefix(cand, word))
	}
	return out, len(last)
}

func isNameRune(r rune) bool {
	return r == '_' || r == '.' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9'
}

// Complete returns the sorted completions of a possibly dotted prefix.
func Complete(globals starlark.StringDict, prefix string) []string {
	parts := strings.Split(prefix, ".")
	var names []string
	if len(parts) == 1 {
		names = globals.Keys()
		for name := range starlark.Universe {
			names = append(names, name)
		}
	} else {
		v, ok := globals[parts[0]]
		if !ok {
			return nil
		}
		for _, p := range parts[1 : len(parts)-1] {
			x, ok := v.(starlark.HasAttrs)
			if !ok {
				return nil
			}
			attr, err := x.Attr(p)
			if err != nil || attr == nil {
				return nil
			}
			v = attr
		}
		x, ok := v.(starlark.HasAttrs)
		if !ok {
			return nil
		}
		names = x.AttrNames()
	}
	base := strings.Join(parts[:len(parts)-1], ".")
	if base != "" {
		base += "."
	}
	last := parts[len(parts)-1]
	var out []string
	for _, name := range names {
		if strings.HasPrefix(name, last) {
			out = append(out, base+name)
		}
	}
	sort.Strings(out)
	return out
}

// MakeLoad returns a simple sequential implementation of module loading
// suitable for use in the REPL.
// Each function returned by MakeLoad accesses a distinct private cache.
// The predeclared environment is visible to loaded modules.
func MakeLoad(predeclared starlark.StringDict) func(thread *starlark.Thread, module string) (starlark.StringDict, error) {
	type entry struct {
		globals starlark.StringDict
		err     error
	}

	var cache = make(map[string]*entry)

	return func(thread *starlark.Thread, module string) (starlark.StringDict, error) {
		e, ok := cache[module]
		if e == nil {
			if ok {
				// request for package whose loading is in progress
				return nil, fmt.Errorf("cycle in load graph")
			}

			// Add a placeholder to indicate "load in progress".
			cache[module] = nil

			// Load it.
			thread := &starlark.Thread{Name: "exec " + module, Load: thread.Load}
			globals, err := starlark.ExecFile(thread, module, nil, predeclared)
			e = &entry{globals, err}

			// Update the cache.
			cache[module] = e
		}
		return e.globals, e.err
	}
}
