// Command tictactoe plays Tic-Tac-Toe against the computer in the terminal.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/muesli/termenv"

	"github.com/jaminalder/tictactoe-minimax/internal/config"
	"github.com/jaminalder/tictactoe-minimax/internal/console"
	"github.com/jaminalder/tictactoe-minimax/internal/minimax"
)

func main() {
	cfg, err := config.Load("tictactoe", os.Args[1:], os.Getenv, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	log, err := cfg.Logger(os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	var opts []termenv.OutputOption
	if cfg.NoColor {
		opts = append(opts, termenv.WithProfile(termenv.Ascii))
	}
	out := termenv.NewOutput(os.Stdout, opts...)

	session := console.NewSession(os.Stdin, out, minimax.NewEngine(log))
	if err := session.Run(); err != nil {
		log.Error("session ended", "err", err)
		os.Exit(1)
	}
}
