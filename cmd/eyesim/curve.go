package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/dixieflatline76/EyeSim/pkg/codec"
	"github.com/dixieflatline76/EyeSim/pkg/filter"
	"github.com/dixieflatline76/EyeSim/pkg/illness"
	"github.com/dixieflatline76/EyeSim/pkg/report"
	"github.com/dixieflatline76/EyeSim/util/log"
)

// monotonicTolerance is half an 8-bit step, the rounding noise floor.
const monotonicTolerance = 0.5 / 255

func runCurve(args []string) error {
	fs := flag.NewFlagSet("curve", flag.ExitOnError)
	var c common
	c.register(fs)
	in := fs.String("in", "", "input image")
	out := fs.String("out", "curve.png", "plot file (.png, .svg, .pdf)")
	steps := fs.Int("steps", 10, "intensity steps between 0 and 1")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		fs.Usage()
		return errors.New("-in is required")
	}

	all := strings.EqualFold(c.illness, "all")
	if all {
		c.illness = ""
	}
	p, err := c.resolve(fs)
	if err != nil {
		return err
	}
	kinds := []illness.Kind{p.Illness}
	if all {
		kinds = illness.All()
	}

	src, err := codec.ReadFile(context.Background(), *in)
	if err != nil {
		return err
	}
	engine := filter.NewEngine(tuningStore(p), filter.Options{SpeckleSeed: c.seed, FrozenSpeckle: true})

	curves := make([]report.Curve, 0, len(kinds))
	for _, k := range kinds {
		req := p.Request()
		req.Illness, req.Settings = k, p.Presets.Get(k)
		samples, err := report.SeverityCurve(engine, src, req, *steps)
		if err != nil {
			return err
		}
		_, slope := report.Trend(samples)
		log.Printf("%-20s slope=%.4f monotonic=%t", k, slope, report.Monotonic(samples, monotonicTolerance))
		curves = append(curves, report.Curve{Illness: k, Samples: samples})
	}

	title := fmt.Sprintf("%s severity", p.Illness)
	if all {
		title = "Severity by illness"
	}
	return report.SavePlot(title, *out, curves...)
}
