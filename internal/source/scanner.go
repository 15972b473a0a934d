package source

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/theirongolddev/messbook/internal/records"
	"github.com/theirongolddev/messbook/internal/store"
)

// DiscoveredFile is a dump file found by ScanDir.
type DiscoveredFile struct {
	Path    string
	ModTime time.Time
	Size    int64
}

// ScanDir lists the *.json files directly inside dir, newest first.
// A missing directory yields no files and no error.
func ScanDir(dir string) ([]DiscoveredFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var files []DiscoveredFile
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".json") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, DiscoveredFile{
			Path:    filepath.Join(dir, e.Name()),
			ModTime: info.ModTime(),
			Size:    info.Size(),
		})
	}
	sort.Slice(files, func(i, j int) bool {
		if files[i].ModTime.Equal(files[j].ModTime) {
			return files[i].Path < files[j].Path
		}
		return files[i].ModTime.After(files[j].ModTime)
	})
	return files, nil
}

// Export reads every messbook key present in s. Values that are not valid
// JSON are left out; the repositories already read them as empty.
func Export(ctx context.Context, s store.Store) (Dump, error) {
	d := Dump{}
	for _, k := range records.AllKeys {
		v, ok, err := s.Get(ctx, k)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", k, err)
		}
		if !ok {
			continue
		}
		if !json.Valid(v) {
			slog.Debug("leaving unparsable value out of export", "key", k)
			continue
		}
		d[k] = append([]byte(nil), v...)
	}
	return d, nil
}

// Apply writes d into s and returns the keys written in sorted order.
// With replace set, every messbook key is cleared first so keys absent
// from the dump end up empty.
func Apply(ctx context.Context, s store.Store, d Dump, replace bool) ([]string, error) {
	if replace {
		for _, k := range records.AllKeys {
			if err := s.Remove(ctx, k); err != nil {
				return nil, fmt.Errorf("clearing %s: %w", k, err)
			}
		}
	}
	keys := d.Keys()
	for _, k := range keys {
		if err := s.Set(ctx, k, d[k]); err != nil {
			return nil, fmt.Errorf("writing %s: %w", k, err)
		}
	}
	return keys, nil
}
