// Package client keeps a practitioner's journey on the local disk and mirrors it to their account.
package client

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/trezcool/dailysutra/core"
	"github.com/trezcool/dailysutra/core/progress"
)

const (
	// StorageKey names the local journey file.
	StorageKey = "raja-yoga-progress-v1"

	sessionFile = "session.json"
)

// Session is the account the local journey is mirrored to.
type Session struct {
	APIURL string `json:"api_url"`
	Email  string `json:"email,omitempty"`
	Token  string `json:"token,omitempty"`
}

// LocalStore persists the journey & the session as JSON files in a directory.
type LocalStore struct {
	dir    string
	logger core.Logger
}

func NewLocalStore(dir string, logger core.Logger) *LocalStore {
	return &LocalStore{dir: dir, logger: logger}
}

// Path returns the location of the journey file.
func (s *LocalStore) Path() string {
	return filepath.Join(s.dir, StorageKey+".json")
}

// Load returns the stored journey. A missing file yields the initial state;
// so does an unreadable or corrupt one, after a warning.
func (s *LocalStore) Load() progress.State {
	data, err := os.ReadFile(s.Path())
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("failed to read the local journey, starting fresh", err)
		}
		return progress.Initial()
	}

	var state progress.State
	if err = json.Unmarshal(data, &state); err != nil {
		s.logger.Warn("failed to parse the local journey, starting fresh", err)
		return progress.Initial()
	}
	return state.Clone()
}

// Save replaces the stored journey.
func (s *LocalStore) Save(state progress.State) error {
	data, err := json.Marshal(state.Clone())
	if err != nil {
		return errors.Wrap(err, "marshalling journey")
	}
	return s.write(s.Path(), data)
}

// LoadSession returns the stored session, or an empty one.
func (s *LocalStore) LoadSession() Session {
	var sess Session
	data, err := os.ReadFile(filepath.Join(s.dir, sessionFile))
	if err != nil {
		return sess
	}
	if err = json.Unmarshal(data, &sess); err != nil {
		s.logger.Warn("failed to parse the session, signing out", err)
		return Session{}
	}
	return sess
}

func (s *LocalStore) SaveSession(sess Session) error {
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshalling session")
	}
	return s.write(filepath.Join(s.dir, sessionFile), data)
}

// write replaces the file at path atomically.
func (s *LocalStore) write(path string, data []byte) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return errors.Wrap(err, "creating data directory")
	}
	tmp, err := os.CreateTemp(s.dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, "writing temp file")
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrap(err, "closing temp file")
	}
	return errors.Wrap(os.Rename(tmp.Name(), path), "replacing file")
}
