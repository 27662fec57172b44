package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/justyntemme/vista/internal/app"
	"github.com/justyntemme/vista/internal/config"
	"github.com/justyntemme/vista/internal/debug"
)

func main() {
	debugFlag := flag.Bool("debug", false, "Enable verbose debug logging")
	generate := flag.Bool("generate-config", false, "Write a default config file (backing up any existing one) and exit")
	configPath := flag.String("config", "", "Path to the config file")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: vista [flags] [directory]\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *generate {
		backup, err := config.GenerateConfig(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		if backup != "" {
			fmt.Println("Backed up existing config to", backup)
		}
		fmt.Println("Wrote default config")
		return
	}

	var start string
	if flag.NArg() > 0 {
		abs, err := filepath.Abs(flag.Arg(0))
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		start = abs
	}

	manageConsole(*debugFlag)
	debug.SetAll(*debugFlag)

	app.Main(app.Options{
		Debug:      *debugFlag,
		ConfigPath: *configPath,
		StartPath:  start,
	})
}
