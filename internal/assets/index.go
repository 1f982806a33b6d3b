// Package assets tracks which static files exist under the asset root, so
// templates can fall back to text for a logo that is not there.
package assets

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Index is a set of asset paths relative to the root, in slash form.
type Index struct {
	root  string
	mu    sync.RWMutex
	files map[string]struct{}
}

// NewIndex scans root. A missing root yields an empty index.
func NewIndex(root string) (*Index, error) {
	idx := &Index{root: root, files: make(map[string]struct{})}
	if err := idx.Rescan(); err != nil {
		return nil, err
	}
	return idx, nil
}

// Root is the directory the index covers.
func (idx *Index) Root() string {
	return idx.root
}

// Rescan rebuilds the index from disk.
func (idx *Index) Rescan() error {
	files := make(map[string]struct{})
	if idx.root != "" {
		err := filepath.WalkDir(idx.root, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				if os.IsNotExist(err) && p == idx.root {
					return fs.SkipDir
				}
				return err
			}
			if d.IsDir() {
				return nil
			}
			if rel, ok := idx.rel(p); ok {
				files[rel] = struct{}{}
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("scanning assets in %s: %w", idx.root, err)
		}
	}

	idx.mu.Lock()
	idx.files = files
	idx.mu.Unlock()
	return nil
}

// Exists reports whether a site path such as "/logos/adp.png" is present.
func (idx *Index) Exists(sitePath string) bool {
	key := normalize(sitePath)
	if key == "" {
		return false
	}
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	_, ok := idx.files[key]
	return ok
}

// Len is the number of indexed files.
func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.files)
}

// Watch keeps the index in step with the filesystem until ctx is done.
// Directories created after Watch starts are watched as well.
func (idx *Index) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating asset watcher: %w", err)
	}
	defer func() {
		if err := watcher.Close(); err != nil {
			log.Printf("Assets: closing watcher: %v", err)
		}
	}()

	if err := idx.addDirs(watcher, idx.root); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("asset watcher events channel closed")
			}
			idx.apply(watcher, event)
		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("asset watcher errors channel closed")
			}
			log.Printf("Assets: watcher error: %v", err)
		}
	}
}

func (idx *Index) apply(watcher *fsnotify.Watcher, event fsnotify.Event) {
	switch {
	case event.Has(fsnotify.Create), event.Has(fsnotify.Write):
		info, err := os.Stat(event.Name)
		if err != nil {
			return
		}
		if info.IsDir() {
			if !event.Has(fsnotify.Create) {
				return
			}
			if err := idx.addDirs(watcher, event.Name); err != nil {
				log.Printf("Assets: %v", err)
			}
			if err := idx.Rescan(); err != nil {
				log.Printf("Assets: %v", err)
			}
			return
		}
		idx.set(event.Name, true)
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		idx.set(event.Name, false)
		idx.dropPrefix(event.Name)
	}
}

func (idx *Index) set(p string, present bool) {
	rel, ok := idx.rel(p)
	if !ok {
		return
	}
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if present {
		idx.files[rel] = struct{}{}
	} else {
		delete(idx.files, rel)
	}
}

// dropPrefix forgets every file below a removed directory.
func (idx *Index) dropPrefix(p string) {
	rel, ok := idx.rel(p)
	if !ok {
		return
	}
	prefix := rel + "/"
	idx.mu.Lock()
	defer idx.mu.Unlock()
	for k := range idx.files {
		if strings.HasPrefix(k, prefix) {
			delete(idx.files, k)
		}
	}
}

func (idx *Index) addDirs(watcher *fsnotify.Watcher, dir string) error {
	if dir == "" {
		return nil
	}
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if err := watcher.Add(p); err != nil {
				return fmt.Errorf("watching %s: %w", p, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("watching assets in %s: %w", dir, err)
	}
	return nil
}

func (idx *Index) rel(p string) (string, bool) {
	rel, err := filepath.Rel(idx.root, p)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

func normalize(sitePath string) string {
	if sitePath == "" {
		return ""
	}
	clean := path.Clean("/" + sitePath)
	return strings.TrimPrefix(clean, "/")
}
