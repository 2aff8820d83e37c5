package session

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/edgard/agrobot/internal/i18n"
)

// FileStore persists sessions under <dir>/<userID>/user.json, matching the
// on-disk layout consumed by other tooling. Writes go through a temp file
// and rename so a crashed write never leaves a half-written session; a
// half-written session would only degrade to defaults anyway.
type FileStore struct {
	dir         string
	defaultLang i18n.Lang
	logger      *slog.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewFileStore creates a session store rooted at dir. defaultLang is used
// for sessions that do not exist yet or cannot be read.
func NewFileStore(dir string, defaultLang i18n.Lang, logger *slog.Logger) *FileStore {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if !i18n.Valid(defaultLang) {
		defaultLang = i18n.Default
	}
	return &FileStore{
		dir:         dir,
		defaultLang: defaultLang,
		logger:      logger.With("component", "session_store"),
		locks:       make(map[string]*sync.Mutex),
	}
}

// lockFor returns the mutex serializing access to one user's session,
// creating it on first use. The registry itself is only held long enough
// to look up the entry, so users never contend with each other.
func (s *FileStore) lockFor(userID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[userID] = l
	}
	return l
}

func (s *FileStore) path(userID string) string {
	return filepath.Join(s.dir, userID, "user.json")
}

// defaults returns a fresh session with the configured default language.
func (s *FileStore) defaults() Session {
	return Session{Language: s.defaultLang}
}

// load reads the session file. Absence, IO failure, and corrupt content
// are all treated the same way: a default session. Session loss is
// recoverable (the user restarts the dialogue); failing the request is not.
func (s *FileStore) load(userID string) Session {
	data, err := os.ReadFile(s.path(userID))
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("failed to read session file, using defaults", "user_id", userID, "error", err)
		}
		return s.defaults()
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		s.logger.Warn("corrupt session file, using defaults", "user_id", userID, "error", err)
		return s.defaults()
	}
	if !i18n.Valid(sess.Language) {
		sess.Language = s.defaultLang
	}
	return sess
}

// Get returns the user's session, or a default session if none exists.
func (s *FileStore) Get(userID string) Session {
	l := s.lockFor(userID)
	l.Lock()
	defer l.Unlock()
	return s.load(userID)
}

// Update performs a read-modify-write of one user's session under that
// user's lock and returns the resulting session. Persistence failures are
// logged and swallowed: the mutated session is still returned so the
// current request proceeds.
func (s *FileStore) Update(userID string, fn func(*Session)) Session {
	l := s.lockFor(userID)
	l.Lock()
	defer l.Unlock()

	sess := s.load(userID)
	fn(&sess)

	if err := s.write(userID, sess); err != nil {
		s.logger.Error("failed to persist session", "user_id", userID, "error", err)
	}
	return sess
}

func (s *FileStore) write(userID string, sess Session) error {
	dir := filepath.Dir(s.path(userID))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "user-*.json.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.path(userID))
}
