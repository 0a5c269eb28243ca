package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/dixieflatline76/EyeSim/pkg/codec"
	"github.com/dixieflatline76/EyeSim/pkg/profile"
	"github.com/dixieflatline76/EyeSim/pkg/stream"
	"github.com/dixieflatline76/EyeSim/pkg/tuning"
	"github.com/dixieflatline76/EyeSim/util/log"
)

func runStream(args []string) error {
	fs := flag.NewFlagSet("stream", flag.ExitOnError)
	var c common
	c.register(fs)
	dir := fs.String("dir", "", "directory of input frames, processed in name order")
	out := fs.String("out", "", "directory for delivered frames")
	mode := fs.String("mode", "", "mono or stereo (defaults to the profile's)")
	display := fs.String("display", "1280x720", "output size WIDTHxHEIGHT")
	fps := fs.Float64("fps", 30, "simulated camera frame rate")
	maxFPS := fs.Float64("max-fps", -1, "worker frame cap (defaults to the profile's)")
	watch := fs.Bool("watch", false, "reload the tuning file when it changes")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *dir == "" || *out == "" {
		fs.Usage()
		return errors.New("-dir and -out are required")
	}
	if *fps <= 0 {
		return fmt.Errorf("-fps must be positive, got %v", *fps)
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
	if *maxFPS >= 0 {
		p.MaxFPS = *maxFPS
	}
	size, err := parseDisplay(*display)
	if err != nil {
		return err
	}
	frames, err := listFrames(*dir)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no image files in %s", *dir)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	store := tuningStore(p)
	if *watch && p.TuningFile != "" {
		go func() {
			if err := tuning.Watch(ctx, p.TuningFile, store); err != nil {
				log.Printf("Tuning watcher stopped: %v", err)
			}
		}()
	}

	renderer := stream.NewRenderer(newEngine(store, c.seed), p.Fit.Fitter(), p.VR)
	params := func() stream.Params { return p.Params() }
	w := stream.NewWorker(renderer.ProcessFunc(p.Mode, size, params), stream.WorkerOptions{MaxFPS: p.MaxFPS})
	log.Printf("Streaming %d frames through worker %s: %s", len(frames), w.ID(), profileSummary(p))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		writeResults(ctx, w.Results(), *out)
	}()
	w.Start()

	pushFrames(ctx, w, frames, *fps)
	waitIdle(ctx, w)
	w.Stop()
	wg.Wait()
	return ctx.Err()
}

func listFrames(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading frame directory: %w", err)
	}
	var frames []string
	for _, e := range entries {
		if !e.IsDir() && codec.IsImageFile(e.Name()) {
			frames = append(frames, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(frames)
	return frames, nil
}

// pushFrames submits frames at the camera rate. Decoding happens on the
// camera side so slow frames are dropped by the worker, not queued.
func pushFrames(ctx context.Context, w *stream.Worker, frames []string, fps float64) {
	ticker := time.NewTicker(time.Duration(float64(time.Second) / fps))
	defer ticker.Stop()
	for i, path := range frames {
		img, err := codec.ReadFile(ctx, path)
		if err != nil {
			log.Printf("Skipping %s: %v", filepath.Base(path), err)
			continue
		}
		w.Submit(stream.Frame{Seq: uint64(i), Image: img, Captured: time.Now()})
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// waitIdle blocks until every accepted frame has been processed or thrown
// away.
func waitIdle(ctx context.Context, w *stream.Worker) {
	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()
	for {
		s := w.Stats()
		if s.Processed+s.Dropped+s.Discarded >= s.Submitted {
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func writeResults(ctx context.Context, results <-chan stream.Result, dir string) {
	for res := range results {
		if res.Err != nil {
			log.Printf("Frame %d failed: %v", res.Seq, res.Err)
			continue
		}
		path := filepath.Join(dir, fmt.Sprintf("frame_%05d.png", res.Seq))
		if err := codec.WriteFile(ctx, path, res.Image, 0); err != nil {
			log.Printf("Writing frame %d: %v", res.Seq, err)
			continue
		}
		log.Debugf("Frame %d rendered in %v", res.Seq, res.Elapsed)
	}
}

// profileSummary is logged once so runs can be told apart.
func profileSummary(p profile.Profile) string {
	return fmt.Sprintf("%s intensity=%.2f enabled=%t mode=%s fit=%s", p.Illness, p.Intensity, p.Enabled, p.Mode, p.Fit)
}
