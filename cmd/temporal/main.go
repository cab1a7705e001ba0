// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The temporal command evaluates Starlark programs with the temporal
// module predeclared. With no arguments and an interactive terminal, it
// starts a read-eval-print loop (REPL); otherwise it reads the program
// from standard input.
package main // import "github.com/startemporal/temporal/cmd/temporal"

import (
	"log"
	"os"
)

func main() {
	log.SetPrefix("temporal: ")
	log.SetFlags(0)
	if err := newRootCmd().Execute(); err != nil {
		log.Print(err)
		os.Exit(1)
	}
}
