package session

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/crypto/pbkdf2"

	"github.com/felixgeelhaar/sprintdeck/internal/errors"
)

// Store defines the interface for session persistence.
//
// Implementations must be safe for concurrent use. There is at most one
// session at a time; Save replaces any previous one.
type Store interface {
	// Save persists the session, replacing any existing one.
	Save(session *Session) error

	// Load retrieves the persisted session.
	// Returns a SESSION-001 error if none exists and a SESSION-003
	// error if the persisted session has expired.
	Load() (*Session, error)

	// Clear removes the persisted session.
	// Clearing an absent session is not an error.
	Clear() error
}

// FileStore persists the session as a JSON file surviving restarts.
//
// When a passphrase is set, the token is encrypted at rest with AES-GCM
// under a pbkdf2-derived key; the rest of the session stays readable.
type FileStore struct {
	mu         sync.Mutex
	path       string
	passphrase string
}

// fileSession is the on-disk representation.
type fileSession struct {
	Session
	EncryptedToken string `json:"encrypted_token,omitempty"`
}

// NewFileStore creates a file-backed session store at dir/session.json.
// An empty passphrase disables token encryption.
func NewFileStore(dir, passphrase string) *FileStore {
	return &FileStore{
		path:       filepath.Join(dir, "session.json"),
		passphrase: passphrase,
	}
}

// Save persists the session, replacing any existing one.
func (s *FileStore) Save(session *Session) error {
	if session == nil || session.Token == "" {
		return errors.New(errors.ErrCodeSessionInvalid, "session must carry a token")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return errors.Wrap(errors.ErrCodeFileWriteFailed, "failed to create session directory", err)
	}

	record := fileSession{Session: *session}
	if s.passphrase != "" {
		encrypted, err := encryptToken(session.Token, s.passphrase)
		if err != nil {
			return errors.Wrap(errors.ErrCodeSessionInvalid, "failed to encrypt token", err)
		}
		record.EncryptedToken = encrypted
		record.Token = ""
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeSessionInvalid, "failed to marshal session", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return errors.Wrap(errors.ErrCodeFileWriteFailed, "failed to write session file", err)
	}

	return nil
}

// Load retrieves the persisted session.
func (s *FileStore) Load() (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewSessionNotFoundError()
		}
		return nil, errors.Wrap(errors.ErrCodeFileReadFailed, "failed to read session file", err)
	}

	var record fileSession
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, errors.Wrap(errors.ErrCodeSessionInvalid, "failed to parse session file", err)
	}

	if record.EncryptedToken != "" {
		token, err := decryptToken(record.EncryptedToken, s.passphrase)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeSessionDecrypt, "failed to decrypt token", err).
				WithSuggestion("Check the SPRINTDECK_PASSPHRASE environment variable").
				WithSuggestion("Run 'sprintdeck auth login' to create a fresh session")
		}
		record.Token = token
	}

	session := record.Session
	if session.IsExpired() {
		return nil, errors.NewSessionExpiredError()
	}

	return &session, nil
}

// Clear removes the persisted session.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeFileWriteFailed, "failed to remove session file", err)
	}
	return nil
}

// MemoryStore implements in-memory session storage for tests.
type MemoryStore struct {
	mu      sync.Mutex
	session *Session
}

// NewMemoryStore creates a new in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Save persists the session, replacing any existing one.
func (m *MemoryStore) Save(session *Session) error {
	if session == nil || session.Token == "" {
		return errors.New(errors.ErrCodeSessionInvalid, "session must carry a token")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *session
	m.session = &copied
	return nil
}

// Load retrieves the stored session.
func (m *MemoryStore) Load() (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session == nil {
		return nil, errors.NewSessionNotFoundError()
	}
	if m.session.IsExpired() {
		return nil, errors.NewSessionExpiredError()
	}

	copied := *m.session
	return &copied, nil
}

// Clear removes the stored session.
func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = nil
	return nil
}

// Key derivation parameters for token encryption at rest.
const (
	keyIterations = 100000
	keyLength     = 32
)

var keySalt = []byte("sprintdeck-session-store")

func deriveKey(passphrase string) []byte {
	return pbkdf2.Key([]byte(passphrase), keySalt, keyIterations, keyLength, sha256.New)
}

func encryptToken(token, passphrase string) (string, error) {
	block, err := aes.NewCipher(deriveKey(passphrase))
	if err != nil {
		return "", err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	ciphertext := gcm.Seal(nonce, nonce, []byte(token), nil)
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

func decryptToken(encrypted, passphrase string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(encrypted)
	if err != nil {
		return "", err
	}

	block, err := aes.NewCipher(deriveKey(passphrase))
	if err != nil {
		return "", err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	if len(data) < gcm.NonceSize() {
		return "", errors.New(errors.ErrCodeSessionDecrypt, "ciphertext too short")
	}

	nonce, ciphertext := data[:gcm.NonceSize()], data[gcm.NonceSize():]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", err
	}

	return string(plaintext), nil
}
