package config

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watch reloads the config at path whenever it is written and sends each
// valid result on the returned channel. Files that fail to parse or validate
// are logged and skipped. The channel holds only the newest config and is
// closed when ctx is done.
func Watch(ctx context.Context, path string, log *zap.Logger) (<-chan *Config, error) {
	path = filepath.Clean(path)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating config watcher: %w", err)
	}

	// Editors replace files on save; watch the directory, not the inode
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(path), err)
	}

	out := make(chan *Config, 1)
	go func() {
		defer close(out)
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != path || !(event.Has(fsnotify.Write) || event.Has(fsnotify.Create)) {
					continue
				}
				cfg, err := LoadFile(path)
				if err != nil {
					log.Warn("config reload skipped", zap.String("path", path), zap.Error(err))
					continue
				}
				log.Info("config reloaded", zap.String("path", path))
				publish(out, cfg)

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Error("config watcher error", zap.Error(err))
			}
		}
	}()
	return out, nil
}

// publish replaces any config the reader has not taken yet.
func publish(out chan *Config, cfg *Config) {
	for {
		select {
		case out <- cfg:
			return
		default:
		}
		select {
		case <-out:
		default:
		}
	}
}
