// Command ailscvrp runs the anytime adaptive iterated local search solver
// against a TSPLIB-style CVRP instance file and writes the best solution
// found to disk (spec.md §6).
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/routewise/ails-cvrp/config"
	"github.com/routewise/ails-cvrp/multistart"
	"github.com/routewise/ails-cvrp/vrpio"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	pre := flag.NewFlagSet("ailscvrp", flag.ContinueOnError)
	paramFile := pre.String("params", "", "Parameter file (flat key=value or .yaml)")
	verbose := pre.Bool("verbose", false, "Enable debug logging")
	if err := pre.Parse(args); err != nil {
		return 2
	}
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	settings, err := config.Load(*paramFile, pre.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "ailscvrp: config: %v\n", err)
		return 2
	}
	if settings.InstancePath == "" {
		fmt.Fprintln(os.Stderr, "ailscvrp: -file is required")
		return 2
	}

	inst, err := vrpio.ReadInstance(settings.InstancePath, vrpio.Overrides{
		Rounded:  settings.Rounded,
		KNNLimit: settings.KNNLimit,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "ailscvrp: reading instance: %v\n", err)
		return 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			log.Warn("[ailscvrp] signal received, stopping")
			cancel()
		case <-ctx.Done():
		}
	}()

	coord, err := multistart.New(inst, settings.MultiStart, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ailscvrp: %v\n", err)
		return 1
	}

	log.WithFields(logrus.Fields{
		"instance": inst.Name,
		"n":        inst.N,
		"capacity": inst.Capacity,
		"workers":  settings.MultiStart.NumWorkers,
	}).Info("[ailscvrp] starting search")

	best, f, err := coord.Run(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ailscvrp: search failed: %v\n", err)
		return 1
	}
	if best == nil {
		fmt.Fprintln(os.Stderr, "ailscvrp: no feasible solution found")
		return 1
	}

	if err := vrpio.WriteSolution(settings.SolutionDir, inst.Name, best); err != nil {
		fmt.Fprintf(os.Stderr, "ailscvrp: writing solution: %v\n", err)
		return 1
	}

	log.WithFields(logrus.Fields{
		"cost":   f,
		"routes": best.NumRoutes(),
		"elite":  coord.Elite().Size(),
	}).Info("[ailscvrp] done")

	return 0
}
