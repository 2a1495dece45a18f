// Package auth supplies the bearer token attached to every backend call.
// The token lives in ~/.magacin/credentials.json and is read at call time;
// there is no refresh flow in the client, operators re-login with the
// backoffice tooling when a token expires.
package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// CredentialsFileName is the token file inside the dot directory.
const CredentialsFileName = "credentials.json"

// EnvToken overrides the credentials file when set; handy for scripted use.
const EnvToken = "MAGACIN_TOKEN"

// ErrNoToken is returned when neither the environment nor the credentials
// file yields a token.
var ErrNoToken = errors.New("auth: no bearer token configured")

// Credentials is the on-disk token format.
type Credentials struct {
	Token    string `json:"token"`
	Username string `json:"username,omitempty"`
}

// Store reads the bearer token on demand, caching the file contents until
// the file changes. A watcher keeps the cache honest when the operator
// re-logs in from another terminal while the TUI runs.
type Store struct {
	path string

	mu     sync.Mutex
	cached string
	valid  bool

	watcher *fsnotify.Watcher
	done    chan struct{}
}

// NewStore creates a store over the given credentials file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultPath returns the credentials path inside the user's dot directory.
func DefaultPath(dotDir string) string {
	return filepath.Join(dotDir, CredentialsFileName)
}

// Token returns the current bearer token. The environment override wins;
// otherwise the cached file contents are used, re-read after any change.
func (s *Store) Token() (string, error) {
	if tok := os.Getenv(EnvToken); tok != "" {
		return tok, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.valid {
		return s.cached, nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNoToken
		}
		return "", fmt.Errorf("reading credentials: %w", err)
	}

	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return "", fmt.Errorf("parsing credentials: %w", err)
	}
	if creds.Token == "" {
		return "", ErrNoToken
	}

	s.cached = creds.Token
	s.valid = true
	return s.cached, nil
}

// Invalidate drops the cached token so the next Token call re-reads the
// file.
func (s *Store) Invalidate() {
	s.mu.Lock()
	s.valid = false
	s.mu.Unlock()
}

// Watch invalidates the cache whenever the credentials file (or its
// directory, to catch atomic replaces) changes. Safe to skip; Token still
// works, it just keeps serving the cached value.
func (s *Store) Watch() error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting credentials watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(s.path)); err != nil {
		w.Close()
		return fmt.Errorf("watching credentials dir: %w", err)
	}

	s.watcher = w
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if ev.Name == s.path {
					s.Invalidate()
				}
			case _, ok := <-w.Errors:
				if !ok {
					return
				}
			}
		}
	}()
	return nil
}

// Close stops the watcher if one is running.
func (s *Store) Close() {
	if s.watcher != nil {
		s.watcher.Close()
		<-s.done
		s.watcher = nil
	}
}
