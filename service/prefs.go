package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sync"

	"github.com/puzpuzpuz/xsync/v3"
)

// PlayerPrefs are per-player settings applied whenever that player starts a
// new game. Changing them never touches a running game.
type PlayerPrefs struct {
	Variant     string `json:"variant"`
	Difficulty  string `json:"difficulty"`
	PlayerShape string `json:"player_shape"`
	PlayerFirst bool   `json:"player_first"`
}

// DefaultPrefs returns the settings used before a player configures
// anything.
func DefaultPrefs() PlayerPrefs {
	return PlayerPrefs{
		Variant:     "classic",
		Difficulty:  "normal",
		PlayerShape: "x",
		PlayerFirst: true,
	}
}

// PrefsStore keeps every player's preferences, optionally mirrored to a JSON
// file that survives restarts. An empty path keeps everything in memory.
type PrefsStore struct {
	prefs  *xsync.MapOf[string, PlayerPrefs]
	logger *slog.Logger
	path   string
	saveMu sync.Mutex // serializes file writes
}

func NewPrefsStore(path string, logger *slog.Logger) *PrefsStore {
	s := &PrefsStore{
		prefs:  xsync.NewMapOf[string, PlayerPrefs](),
		logger: logger,
		path:   path,
	}
	if path != "" {
		if err := s.load(); err != nil {
			logger.Warn(
				"could not load preferences, starting fresh",
				"path", path,
				"err", err)
		}
	}
	return s
}

// Get returns the stored preferences for key, or the defaults.
func (s *PrefsStore) Get(key string) PlayerPrefs {
	p, ok := s.prefs.Load(key)
	if !ok {
		return DefaultPrefs()
	}
	return p
}

// Put stores the preferences for key and persists them.
func (s *PrefsStore) Put(key string, p PlayerPrefs) {
	s.prefs.Store(key, p)
	if s.path == "" {
		return
	}
	if err := s.save(); err != nil {
		s.logger.Error(
			"could not save preferences",
			"path", s.path,
			"err", err)
	}
}

func (s *PrefsStore) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	var prefs map[string]PlayerPrefs
	if err := json.Unmarshal(data, &prefs); err != nil {
		return fmt.Errorf("unmarshal %s: %w", s.path, err)
	}
	for k, v := range prefs {
		s.prefs.Store(k, v)
	}
	return nil
}

func (s *PrefsStore) save() error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	snapshot := make(map[string]PlayerPrefs, s.prefs.Size())
	s.prefs.Range(func(k string, v PlayerPrefs) bool {
		snapshot[k] = v
		return true
	})

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
