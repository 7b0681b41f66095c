// Command uibench measures model change fan-out through an element tree.
//
// It mounts populations of watching elements in several shapes, drives
// flag commits through a register and a model, and reports per-commit
// latency percentiles alongside rebuild counts.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v3"

	"github.com/ohir/uimodel/cmd/uibench/internal/scenario"
	"github.com/ohir/uimodel/pkg/errors"
	"github.com/ohir/uimodel/pkg/uimodel"
)

const (
	configKey   = "config"
	shapeKey    = "shape"
	elementsKey = "elements"
	flagsKey    = "flags"
	roundsKey   = "rounds"
	verboseKey  = "verbose"
)

func main() {
	cmd := &cli.Command{
		Name:  "uibench",
		Usage: "Benchmark model change fan-out through the element tree",
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Run the benchmark scenario",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  configKey,
						Usage: "Scenario file (default: uibench.yaml if present)",
					},
					&cli.StringFlag{
						Name:  shapeKey,
						Usage: "Run a single shape instead of the scenario's list",
					},
					&cli.UintFlag{
						Name:  elementsKey,
						Usage: "Run a single population size instead of the scenario's grid",
					},
					&cli.UintFlag{
						Name:  flagsKey,
						Usage: "Override the number of flags in play",
					},
					&cli.UintFlag{
						Name:  roundsKey,
						Usage: "Override the number of measured rounds",
					},
					&cli.BoolFlag{
						Name:  verboseKey,
						Usage: "Include stack traces in violation reports",
					},
				},
				Action: runBench,
			},
			{
				Name:   "shapes",
				Usage:  "List the available population shapes",
				Action: listShapes,
			},
		},
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func runBench(ctx context.Context, cmd *cli.Command) error {
	// Benchmarks measure release behavior; violations log instead of panic.
	uimodel.SetDebugMode(false)
	errors.SetHandler(&errors.LogHandler{Verbose: cmd.Bool(verboseKey)})

	s, err := loadScenario(cmd)
	if err != nil {
		return err
	}
	applyOverrides(s, cmd)
	if err := s.Validate(); err != nil {
		return err
	}

	selected := make([]shape, 0, len(s.Shapes))
	for _, name := range s.Shapes {
		sh, ok := shapeByName(name)
		if !ok {
			return fmt.Errorf("unknown shape %q (see: uibench shapes)", name)
		}
		selected = append(selected, sh)
	}

	start := time.Now()
	log.Printf("running %d shapes x %d population sizes, %d rounds each",
		len(selected), len(s.Elements), s.Rounds)

	tbl := table.NewWriter()
	tbl.SetTitle(benchTitle())
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"shape", "elements", "rebuilds", "avg", "min", "p75", "p99", "max"})

	for _, sh := range selected {
		for _, n := range s.Elements {
			res := runShape(sh, n, s.Flags, s.Rounds, s.Warmup)
			tbl.AppendRows([]table.Row{
				{
					res.shape,
					humanize.Comma(int64(res.elements)),
					humanize.Comma(int64(res.rebuilds)),
					res.metrics.Time.Avg,
					res.metrics.Time.Min,
					res.metrics.Time.P75,
					res.metrics.Time.P99,
					res.metrics.Time.Max,
				},
			})
		}
	}

	tbl.Render()
	log.Printf("done in %v", time.Since(start))
	return nil
}

func listShapes(ctx context.Context, cmd *cli.Command) error {
	tbl := table.NewWriter()
	tbl.SetTitle("population shapes")
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"name", "fan-out"})
	for _, sh := range shapes {
		tbl.AppendRows([]table.Row{{sh.name, sh.desc}})
	}
	tbl.Render()
	return nil
}

func loadScenario(cmd *cli.Command) (*scenario.Scenario, error) {
	if path := cmd.String(configKey); path != "" {
		return scenario.LoadFile(path)
	}
	dir, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return scenario.LoadOptional(dir)
}

func applyOverrides(s *scenario.Scenario, cmd *cli.Command) {
	if name := cmd.String(shapeKey); name != "" {
		s.Shapes = []string{name}
	}
	if n := int(cmd.Uint(elementsKey)); n != 0 {
		s.Elements = []int{n}
	}
	if n := int(cmd.Uint(flagsKey)); n != 0 {
		s.Flags = n
	}
	if n := int(cmd.Uint(roundsKey)); n != 0 {
		s.Rounds = n
	}
}

func benchTitle() string {
	const title = "uibench"
	root, err := scenario.FindProjectRoot()
	if err != nil {
		return title
	}
	path, err := scenario.ModulePath(root)
	if err != nil {
		return title
	}
	return title + " · " + path
}
