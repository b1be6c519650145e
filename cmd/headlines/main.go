package main

import (
	"flag"
	"os"
	"strings"

	"github.com/Makepad-fr/headlines/internal/cli"
	"github.com/Makepad-fr/headlines/internal/config"
	"github.com/Makepad-fr/headlines/internal/ui"
)

func main() {
	// Root flags (apply to every subcommand); they win over env and file.
	theme := flag.String("theme", "", "colour theme: classic, neon or mono")
	country := flag.String("country", "", "two-letter country code")
	color := flag.String("color", "auto", "colour output: auto, always or never")
	flag.Parse()

	if err := ui.SetColorMode(*color); err != nil {
		ui.Fail(os.Stderr, "-color: "+err.Error())
		cli.PrintHelp(os.Stderr)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		ui.Fail(os.Stderr, "config: "+err.Error())
		os.Exit(1)
	}
	if *theme != "" {
		cfg.Theme = *theme
	}
	if *country != "" {
		cfg.Country = strings.ToLower(*country)
	}

	// Hand the remaining args to the CLI runner.
	os.Exit(cli.Run(flag.Args(), cli.Options{Config: cfg}))
}
