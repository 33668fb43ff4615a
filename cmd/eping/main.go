package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"github.com/icmptools/eping/internal/config"
	"github.com/icmptools/eping/internal/output"
	"github.com/icmptools/eping/internal/probe"
	"github.com/icmptools/eping/internal/shared"
	"github.com/icmptools/eping/pkg/rdns"
	"github.com/icmptools/eping/pkg/route"
)

func main() {
	args, err := config.ParseArgs()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Setup logging
	log, logFile, err := config.SetupLogging(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to setup logging: %v\n", err)
		os.Exit(1)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	manager, stopResolver, err := buildOutputs(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer manager.Close()
	defer stopResolver()

	pinger, err := probe.New(args, log, manager)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	info := pinger.Info()
	log.WithFields(logrus.Fields{
		"destination": info.Target,
		"address":     info.Addr,
		"interval":    args.Interval,
		"size":        info.DataBytes,
	}).Debug("starting ping session")

	reportRoute(info, log)

	// Set up signal handling for Ctrl+C
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	done := make(chan error)
	go func() {
		done <- pinger.Run(ctx)
	}()

	select {
	case err = <-done:
		if err != nil {
			log.WithError(err).Error("probe session failed")
			os.Exit(1)
		}
	case <-sigChan:
		log.Debug("received interrupt, shutting down")
		cancel()
		if err = <-done; err != nil {
			log.WithError(err).Error("error during shutdown")
			os.Exit(1)
		}
	}
}

// buildOutputs picks the sinks for measurement data. An interactive
// terminal gets the classic text lines, a pipe gets JSON records unless
// --plain insists on text. The returned stop function tears down the
// reverse DNS cache when one was started.
func buildOutputs(args config.Args) (*output.Manager, func(), error) {
	manager := output.NewManager()
	stop := func() {}

	textMode := args.Plain || term.IsTerminal(int(os.Stdout.Fd()))
	if args.Json {
		textMode = false
	}

	if textMode {
		resolver := output.Resolver(rdns.Literal{})
		if !args.NoResolve {
			cache := rdns.NewCache(5*time.Minute, time.Second)
			resolver = cache
			stop = cache.Stop
		}
		manager.Register(output.NewTextOutput(os.Stdout, resolver))
	} else {
		jsonOutput, err := output.NewJSONOutput("")
		if err != nil {
			return nil, stop, err
		}
		manager.Register(jsonOutput)
	}

	if args.JsonFile != "" {
		jsonOutput, err := output.NewJSONOutput(args.JsonFile)
		if err != nil {
			return nil, stop, err
		}
		manager.Register(jsonOutput)
	}

	return manager, stop, nil
}

// reportRoute logs which kernel route the probes will take and warns
// when the configured packet will not fit the outgoing interface.
func reportRoute(info shared.SessionInfo, log *logrus.Logger) {
	r, err := route.Get(info.Addr)
	if err != nil {
		log.WithError(err).Debug("unable to determine route to destination")
		return
	}

	log.WithFields(logrus.Fields{
		"interface": r.Interface.Name,
		"mtu":       r.Interface.MTU,
		"source":    r.Source,
		"gateway":   r.Gateway,
	}).Debug("route to destination")

	if r.Interface.MTU > 0 && info.WireBytes > r.Interface.MTU {
		log.WithFields(logrus.Fields{
			"wire_bytes": info.WireBytes,
			"mtu":        r.Interface.MTU,
		}).Warn("packet exceeds interface MTU and will be fragmented")
	}
}
