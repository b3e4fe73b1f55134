// Package store persists per-nickname session snapshots as JSON files.
// The files stand in for browser local storage: plain client-side text that
// may be stale or hand-edited, so loads never trust the contents.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"

	"sixmax-holdem/pkg/holdem"
)

const lastNickFile = "lastnick"

var unsafeRx = regexp.MustCompile(`[^a-z0-9_-]+`)

// FileStore stores one snapshot file per nickname, keyed case-insensitively
type FileStore struct {
	dir string
	log logrus.FieldLogger
}

// New returns a FileStore rooted at dir, creating it if needed
func New(log logrus.FieldLogger, dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("could not create data dir: %w", err)
	}

	return &FileStore{
		dir: dir,
		log: log.WithField("dir", dir),
	}, nil
}

// keyForNick lower-cases the nickname and strips anything unsafe for a
// filename. Distinct nicknames may collide after sanitizing; that mirrors
// the case-insensitive key behavior and is acceptable for a local store
func keyForNick(nick string) string {
	key := unsafeRx.ReplaceAllString(strings.ToLower(nick), "_")
	if key == "" {
		key = "_"
	}

	return key
}

func (f *FileStore) pathForNick(nick string) string {
	return filepath.Join(f.dir, keyForNick(nick)+".json")
}

// Save writes the snapshot for its nickname and records the nickname as the
// most recent one
func (f *FileStore) Save(snap holdem.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}

	if err := os.WriteFile(f.pathForNick(snap.Nickname), data, 0644); err != nil {
		return err
	}

	if err := os.WriteFile(filepath.Join(f.dir, lastNickFile), []byte(snap.Nickname), 0644); err != nil {
		f.log.WithError(err).Warn("could not record last nickname")
	}

	return nil
}

// Load reads the snapshot for the nickname. A missing or unreadable file
// returns ok=false; a corrupt file is treated the same way and the player
// simply starts fresh
func (f *FileStore) Load(nick string) (*holdem.Snapshot, bool) {
	data, err := os.ReadFile(f.pathForNick(nick))
	if err != nil {
		if !os.IsNotExist(err) {
			f.log.WithError(err).Warn("could not read snapshot")
		}

		return nil, false
	}

	var snap holdem.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		f.log.WithError(err).Warn("discarding corrupt snapshot")
		return nil, false
	}

	return &snap, true
}

// LastNick returns the most recently saved nickname, if any
func (f *FileStore) LastNick() (string, bool) {
	data, err := os.ReadFile(filepath.Join(f.dir, lastNickFile))
	if err != nil || len(data) == 0 {
		return "", false
	}

	return string(data), true
}
