// Command eyesim runs the illness simulation on image files.
//
//	eyesim apply  -in photo.jpg -out sim.png -illness glaucoma -intensity 0.8
//	eyesim stream -dir frames/ -out out/ -mode stereo -fps 30
//	eyesim curve  -in photo.jpg -out curve.png -illness all
//	eyesim init
package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"strconv"
	"strings"

	"github.com/dixieflatline76/EyeSim/config"
	"github.com/dixieflatline76/EyeSim/pkg/filter"
	"github.com/dixieflatline76/EyeSim/pkg/illness"
	"github.com/dixieflatline76/EyeSim/pkg/profile"
	"github.com/dixieflatline76/EyeSim/pkg/tuning"
	"github.com/dixieflatline76/EyeSim/util/log"
)

func usage() {
	fmt.Fprintf(os.Stderr, "%s %s\n\n", config.AppName, config.AppVersion)
	fmt.Fprintln(os.Stderr, "Usage: eyesim <command> [flags]")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  apply   filter a single image")
	fmt.Fprintln(os.Stderr, "  stream  push a directory of frames through the live frame worker")
	fmt.Fprintln(os.Stderr, "  curve   plot effect magnitude against intensity")
	fmt.Fprintln(os.Stderr, "  init    write the default profile and tuning files")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Run 'eyesim <command> -h' for the flags of a command.")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "apply":
		err = runApply(os.Args[2:])
	case "stream":
		err = runStream(os.Args[2:])
	case "curve":
		err = runCurve(os.Args[2:])
	case "init":
		err = runInit(os.Args[2:])
	case "-h", "-help", "--help", "help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("%s: %v", os.Args[1], err)
	}
}

// common holds the flags every command shares.
type common struct {
	profilePath string
	tuningPath  string
	illness     string
	intensity   float64
	disabled    bool
	offsetX     float64
	offsetY     float64
	seed        uint64
}

func (c *common) register(fs *flag.FlagSet) {
	defaultProfile, err := config.GetProfileFilename()
	if err != nil {
		defaultProfile = ""
	}
	fs.StringVar(&c.profilePath, "profile", defaultProfile, "profile file (.json, .yaml)")
	fs.StringVar(&c.tuningPath, "tuning", "", "tuning file overriding the profile's (defaults to the one written by init)")
	fs.StringVar(&c.illness, "illness", "", "illness to simulate (defaults to the profile's)")
	fs.Float64Var(&c.intensity, "intensity", -1, "intensity 0..1 (defaults to the profile's)")
	fs.BoolVar(&c.disabled, "disabled", false, "pass frames through unfiltered")
	fs.Float64Var(&c.offsetX, "offset-x", 0, "horizontal effect center offset, -1..1")
	fs.Float64Var(&c.offsetY, "offset-y", 0, "vertical effect center offset, -1..1")
	fs.Uint64Var(&c.seed, "seed", 1, "speckle seed")
}

// resolve loads the profile and applies flag overrides.
func (c *common) resolve(fs *flag.FlagSet) (profile.Profile, error) {
	p := profile.Default()
	if c.profilePath != "" {
		p = profile.LoadOrDefault(c.profilePath)
	}
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if c.illness != "" {
		k, err := parseIllness(c.illness)
		if err != nil {
			return p, err
		}
		p.Illness = k
	}
	if c.intensity >= 0 {
		p.Intensity = c.intensity
	}
	if c.disabled {
		p.Enabled = false
	}
	if set["offset-x"] {
		p.CenterOffset.X = c.offsetX
	}
	if set["offset-y"] {
		p.CenterOffset.Y = c.offsetY
	}
	if c.tuningPath != "" {
		p.TuningFile = c.tuningPath
	}
	if p.TuningFile == "" {
		p.TuningFile = userTuningFile()
	}
	return p.Normalized(), nil
}

// userTuningFile returns the tuning file in the config directory, or "" when
// the user has not created one.
func userTuningFile() string {
	path, err := config.GetTuningFilename()
	if err != nil {
		return ""
	}
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

// tuningStore loads the profile's tuning file into a store. A missing file
// leaves the defaults in place.
func tuningStore(p profile.Profile) *tuning.Store {
	if p.TuningFile == "" {
		return tuning.NewStore(tuning.DefaultTuningConfig())
	}
	cfg, err := tuning.LoadFile(p.TuningFile)
	if err != nil {
		log.Printf("Using default tuning: %v", err)
	}
	return tuning.NewStore(cfg)
}

func newEngine(store *tuning.Store, seed uint64) *filter.Engine {
	return filter.NewEngine(store, filter.Options{SpeckleSeed: seed})
}

func parseIllness(s string) (illness.Kind, error) {
	k, err := illness.ParseKind(s)
	if err != nil {
		return illness.None, fmt.Errorf("%w (known: %s)", err, knownIllnesses())
	}
	return k, nil
}

func knownIllnesses() string {
	names := make([]string, 0, len(illness.All()))
	for _, k := range illness.All() {
		names = append(names, k.String())
	}
	return strings.Join(names, ", ")
}

// parseDisplay parses "WIDTHxHEIGHT".
func parseDisplay(s string) (image.Point, error) {
	w, h, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return image.Point{}, fmt.Errorf("display %q is not WIDTHxHEIGHT", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(w))
	if err != nil {
		return image.Point{}, fmt.Errorf("display width: %w", err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(h))
	if err != nil {
		return image.Point{}, fmt.Errorf("display height: %w", err)
	}
	if x <= 0 || y <= 0 {
		return image.Point{}, fmt.Errorf("display %q must be positive", s)
	}
	return image.Pt(x, y), nil
}
