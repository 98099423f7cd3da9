// Command wifisurvey reads WiFi link state and records site-survey samples.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/HerbHall/wifisurvey/internal/version"
)

const usage = `usage: wifisurvey <command> [flags]

commands:
  scan        print the current link state
  candidates  list visible networks, strongest first (macOS)
  profiles    list saved WLAN profiles (Windows)
  record      take a survey sample at a floor plan position
  samples     list recorded samples
  serve       run the HTTP API
  version     print version information

Run "wifisurvey <command> -h" for the flags of a command.
`

type command func(ctx context.Context, args []string, stdout io.Writer) error

var commands = map[string]command{
	"scan":       runScan,
	"candidates": runCandidates,
	"profiles":   runProfiles,
	"record":     runRecord,
	"samples":    runSamples,
	"serve":      runServe,
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	name, args := os.Args[1], os.Args[2:]
	switch name {
	case "version", "-version", "--version":
		fmt.Println(version.Info())
		return
	case "help", "-h", "-help", "--help":
		fmt.Print(usage)
		return
	}

	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", name, usage)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cmd(ctx, args, os.Stdout)
	stop()
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "wifisurvey %s: %v\n", name, err)
		os.Exit(1)
	}
}
