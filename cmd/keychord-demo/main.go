// Package main is a terminal demonstration of the keychord engine:
// two scratch panes, Emacs-style bindings, and raw pass-through
// typing for everything unbound.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/dshills/keychord/engine"
	"github.com/dshills/keychord/script"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		rcPath       string
		bindingsPath string
		logPath      string
		showVersion  bool
	)
	flag.StringVar(&rcPath, "rc", "", "Lua rc file to run at startup")
	flag.StringVar(&bindingsPath, "bindings", "", "JSON bindings file to load")
	flag.StringVar(&logPath, "log", "", "append engine logs to this file")
	flag.BoolVar(&showVersion, "version", false, "print version and exit")
	flag.Parse()

	if showVersion {
		fmt.Printf("keychord-demo %s (%s, built %s)\n", version, commit, date)
		return 0
	}

	// The screen owns the terminal, so logs go to a file or nowhere.
	log := logrus.New()
	log.SetOutput(io.Discard)
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: open log file: %v\n", err)
			return 1
		}
		defer f.Close()
		log.SetOutput(f)
	}

	eng, err := engine.New(engine.Config{Logger: log})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	d, err := newDemo(eng)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	defer d.shutdown()

	if bindingsPath != "" {
		if err := eng.LoadBindings(bindingsPath); err != nil {
			d.shutdown()
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}
	if rcPath != "" {
		runner := script.NewRunner(eng, log)
		defer runner.Close()
		if err := runner.RunFile(rcPath); err != nil {
			d.shutdown()
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	d.loop()
	return 0
}
