package tuning

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/dixieflatline76/EyeSim/util/log"
	"github.com/fsnotify/fsnotify"
)

// Watch reloads path into store whenever the file is written or recreated,
// until ctx is done. The directory is watched so editors that replace the
// file on save are still seen. A file that fails to parse leaves the
// previous snapshot in place.
func Watch(ctx context.Context, path string, store *Store) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating tuning watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return fmt.Errorf("watching %s: %w", filepath.Dir(path), err)
	}

	target := filepath.Clean(path)
	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				cfg, err := LoadFile(path)
				if err != nil {
					log.Printf("Tuning reload skipped: %v", err)
					continue
				}
				store.Store(cfg)
				log.Debugf("Tuning reloaded from %s", path)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("Tuning watcher error: %v", err)
			}
		}
	}()
	return nil
}
