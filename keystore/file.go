package keystore

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ruteri/signature-registry/cryptoutils"
	"github.com/ruteri/signature-registry/interfaces"
)

// File names used inside the key directory.
const (
	PrivateKeyFile = "private_key.pem"
	PublicKeyFile  = "public_key.pem"
)

const (
	privateKeyMode fs.FileMode = 0600
	publicKeyMode  fs.FileMode = 0644
	dirMode        fs.FileMode = 0755
)

// ErrKeyNotFound is returned when a key file does not exist.
var ErrKeyNotFound = errors.New("key file not found")

// FileStore implements interfaces.KeyStore in a single directory.
type FileStore struct {
	dir string
	log *slog.Logger
}

var _ interfaces.KeyStore = (*FileStore)(nil)

// NewFileStore creates a store rooted at dir. The directory is created on
// the first save, not here, so read-only commands do not touch the disk.
func NewFileStore(dir string, log *slog.Logger) *FileStore {
	if dir == "" {
		dir = "."
	}
	return &FileStore{dir: dir, log: log}
}

// Dir returns the directory holding the key files.
func (s *FileStore) Dir() string {
	return s.dir
}

// SaveKeyPair writes both halves of kp, replacing any existing files. The
// private key is written first and is readable by the owner only.
func (s *FileStore) SaveKeyPair(kp *cryptoutils.KeyPair) error {
	if kp == nil {
		return fmt.Errorf("%w: nil key pair", cryptoutils.ErrMissingInput)
	}

	if err := os.MkdirAll(s.dir, dirMode); err != nil {
		return fmt.Errorf("failed to create key directory: %w", err)
	}

	privPath := filepath.Join(s.dir, PrivateKeyFile)
	if err := writeFile(privPath, []byte(kp.PrivateKey), privateKeyMode); err != nil {
		return fmt.Errorf("failed to write private key: %w", err)
	}

	pubPath := filepath.Join(s.dir, PublicKeyFile)
	if err := writeFile(pubPath, []byte(kp.PublicKey), publicKeyMode); err != nil {
		return fmt.Errorf("failed to write public key: %w", err)
	}

	s.log.Debug("Stored key pair",
		slog.String("privateKey", privPath),
		slog.String("publicKey", pubPath))

	return nil
}

// LoadPrivateKey reads the private key file. The content is returned as is;
// parsing happens when it is used for signing.
func (s *FileStore) LoadPrivateKey() (cryptoutils.PrivateKeyPEM, error) {
	data, err := s.read(PrivateKeyFile)
	if err != nil {
		return "", err
	}
	return cryptoutils.PrivateKeyPEM(data), nil
}

// LoadPublicKey reads the public key file as is.
func (s *FileStore) LoadPublicKey() (cryptoutils.PublicKeyPEM, error) {
	data, err := s.read(PublicKeyFile)
	if err != nil {
		return "", err
	}
	return cryptoutils.PublicKeyPEM(data), nil
}

func (s *FileStore) read(name string) ([]byte, error) {
	path := filepath.Join(s.dir, name)

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	s.log.Debug("Loaded key file", slog.String("path", path), slog.Int("size", len(data)))
	return data, nil
}

// writeFile writes data and forces mode even when the file already existed
// with looser permissions.
func writeFile(path string, data []byte, mode fs.FileMode) error {
	if err := os.WriteFile(path, data, mode); err != nil {
		return err
	}
	return os.Chmod(path, mode)
}
