package config

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
	"github.com/targodan/go-errors"
)

// Watch calls onChange with the reloaded config whenever the file at path
// is written or replaced. Invalid configs are logged and skipped. It returns
// when ctx is done.
func Watch(ctx context.Context, path string, logger logrus.FieldLogger, onChange func(*Config)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Errorf("could not create config watcher, reason: %w", err)
	}
	defer w.Close()

	// Editors replace files instead of writing them, so watch the directory.
	dir := filepath.Dir(path)
	if err := w.Add(dir); err != nil {
		return errors.Errorf("could not watch %s, reason: %w", dir, err)
	}
	name := filepath.Clean(path)

	for {
		select {
		case <-ctx.Done():
			return nil

		case e, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(e.Name) != name || e.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			cfg, err := Load(path)
			if err != nil {
				logger.WithError(err).Warn("Ignoring invalid config change.")
				continue
			}
			logger.WithField("path", path).Info("Config reloaded.")
			onChange(cfg)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.WithError(err).Warn("Config watcher error.")
		}
	}
}
