package preset

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/HaokunYang123/routine-craft-bot-sub002/internal/reconcile"
	"github.com/HaokunYang123/routine-craft-bot-sub002/pkg/log"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Registry holds named reconciliation sets read from a config file.
// Names are case-insensitive.
type Registry struct {
	l    log.Logger
	path string

	mu   sync.RWMutex
	sets map[string]reconcile.Set
}

// Load reads path (yaml, json or toml, picked by extension) and validates
// every set under the surfaces key.
func Load(l log.Logger, path string) (*Registry, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("preset: resolve %q: %w", path, err)
	}

	r := &Registry{l: l, path: abs}
	if err := r.Reload(); err != nil {
		return nil, err
	}
	return r, nil
}

// Reload re-reads the file. The previous sets are kept when the new file
// fails to parse or validate.
func (r *Registry) Reload() error {
	sets, err := read(r.path)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.sets = sets
	r.mu.Unlock()
	return nil
}

func read(path string) (map[string]reconcile.Set, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("preset: read %s: %w", path, err)
	}

	raw := map[string][][]string{}
	if err := v.UnmarshalKey(surfacesKey, &raw); err != nil {
		return nil, fmt.Errorf("preset: decode %s: %w", path, err)
	}

	sets := make(map[string]reconcile.Set, len(raw))
	for name, keys := range raw {
		set := make(reconcile.Set, 0, len(keys))
		for _, k := range keys {
			set = append(set, reconcile.QueryKey(k))
		}
		if err := set.Validate(); err != nil {
			return nil, fmt.Errorf("%w %q: %w", ErrInvalidPreset, name, err)
		}
		sets[strings.ToLower(name)] = set
	}
	return sets, nil
}

// Lookup returns a copy of the named set.
func (r *Registry) Lookup(name string) (reconcile.Set, error) {
	r.mu.RLock()
	set, ok := r.sets[strings.ToLower(name)]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrPresetNotFound, name)
	}
	return set.Clone(), nil
}

// Names lists the preset names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.sets))
	for name := range r.sets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Watch reloads the registry whenever the file changes, until ctx is done.
// The parent directory is watched so editors that replace the file
// through a rename are picked up.
func (r *Registry) Watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("preset: watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(r.path)); err != nil {
		return fmt.Errorf("preset: watch %s: %w", r.path, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != r.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if err := r.Reload(); err != nil {
				r.l.Warnf(ctx, "preset.Watch: reload failed, keeping previous presets: %v", err)
				continue
			}
			r.l.Infof(ctx, "preset.Watch: reloaded %d presets from %s", len(r.Names()), r.path)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			r.l.Errorf(ctx, "preset.Watch: %v", err)
		}
	}
}
