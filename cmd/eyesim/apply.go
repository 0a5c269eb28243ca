package main

import (
	"context"
	"errors"
	"flag"
	"time"

	"github.com/dixieflatline76/EyeSim/pkg/codec"
	"github.com/dixieflatline76/EyeSim/pkg/stream"
	"github.com/dixieflatline76/EyeSim/util/log"
)

func runApply(args []string) error {
	fs := flag.NewFlagSet("apply", flag.ExitOnError)
	var c common
	c.register(fs)
	in := fs.String("in", "", "input image")
	out := fs.String("out", "", "output image (.png, .jpg, .bmp)")
	mode := fs.String("mode", "", "mono or stereo (defaults to the profile's)")
	display := fs.String("display", "", "output size WIDTHxHEIGHT (defaults to the input size)")
	quality := fs.Int("quality", codec.DefaultQuality, "JPEG quality")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" || *out == "" {
		fs.Usage()
		return errors.New("-in and -out are required")
	}

	p, err := c.resolve(fs)
	if err != nil {
		return err
	}
	if *mode != "" {
		if p.Mode, err = stream.ParseMode(*mode); err != nil {
			return err
		}
	}

	ctx := context.Background()
	src, err := codec.ReadFile(ctx, *in)
	if err != nil {
		return err
	}
	size := src.Bounds().Size()
	if *display != "" {
		if size, err = parseDisplay(*display); err != nil {
			return err
		}
	}

	renderer := stream.NewRenderer(newEngine(tuningStore(p), c.seed), p.Fit.Fitter(), p.VR)
	start := time.Now()
	img, err := renderer.Render(ctx, src, p.Mode, size, p.Params())
	if err != nil {
		return err
	}
	log.Printf("Applied %s in %v (%dx%d)", profileSummary(p), time.Since(start), size.X, size.Y)
	return codec.WriteFile(ctx, *out, img, *quality)
}
