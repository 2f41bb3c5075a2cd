// Alchemy is a timed element-combination game for the terminal.
// Usage: alchemy [--version] [--plain] [--trace] [--script <file>] [--time-limit <seconds>] [--seed <n>]
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/nathoo/alchemy/cli"
	"github.com/nathoo/alchemy/config"
	"github.com/nathoo/alchemy/engine"
	"github.com/nathoo/alchemy/loader"
	"github.com/nathoo/alchemy/tui"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cfg, err := config.Load(os.Args[1:], nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n%s\n", err, config.Usage)
		os.Exit(1)
	}

	if cfg.Version {
		fmt.Printf("alchemy %s (commit %s, built %s)\n", version, commit, date)
		return
	}

	// Load and validate the built-in recipe table.
	defs, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading recipes: %v\n", err)
		os.Exit(1)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	eng := engine.New(defs, engine.Options{
		Seed:      seed,
		TimeLimit: cfg.TimeLimit,
		TimeBonus: cfg.TimeBonus,
	})

	// Script mode: open file, force plain, echo commands.
	if cfg.Script != "" {
		f, err := os.Open(cfg.Script)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening script: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		fmt.Printf("%s v%s by %s\n\n", defs.Game.Title, defs.Game.Version, defs.Game.Author)
		c := cli.New(eng)
		c.In = f
		c.EchoInput = true
		c.Trace = cfg.Trace
		c.Run()
		return
	}

	// Use plain CLI if --plain flag or stdout is not a terminal.
	if cfg.Plain || !isTerminal() {
		fmt.Printf("%s v%s by %s\n\n", defs.Game.Title, defs.Game.Version, defs.Game.Author)
		c := cli.New(eng)
		c.Trace = cfg.Trace
		c.Run()
		return
	}

	if err := tui.Run(eng, cfg.Trace); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
