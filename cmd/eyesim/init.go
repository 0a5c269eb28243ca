package main

import (
	"flag"
	"os"

	"github.com/dixieflatline76/EyeSim/config"
	"github.com/dixieflatline76/EyeSim/pkg/profile"
	"github.com/dixieflatline76/EyeSim/pkg/tuning"
	"github.com/dixieflatline76/EyeSim/util/log"
)

// runInit seeds the config directory with editable defaults. Existing files
// are kept unless -force is given.
func runInit(args []string) error {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	force := fs.Bool("force", false, "overwrite existing files")
	if err := fs.Parse(args); err != nil {
		return err
	}

	dir, err := config.EnsurePath()
	if err != nil {
		return err
	}
	profilePath, err := config.GetProfileFilename()
	if err != nil {
		return err
	}
	tuningPath, err := config.GetTuningFilename()
	if err != nil {
		return err
	}

	if err := writeDefault(tuningPath, *force, func(path string) error {
		return tuning.SaveFile(path, tuning.DefaultTuningConfig())
	}); err != nil {
		return err
	}
	if err := writeDefault(profilePath, *force, func(path string) error {
		p := profile.Default()
		p.TuningFile = tuningPath
		return p.Save(path)
	}); err != nil {
		return err
	}
	log.Printf("Defaults are in %s", dir)
	return nil
}

func writeDefault(path string, force bool, save func(string) error) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			log.Printf("Keeping %s", path)
			return nil
		}
	}
	if err := save(path); err != nil {
		return err
	}
	log.Printf("Wrote %s", path)
	return nil
}
