package backup

import (
	"bufio"
	"bytes"
	"crypto/cipher"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/yndnr/connectus-go/internal/core/domain"
)

var magicBytes = []byte("CUBACKUP")

const (
	filePrefix    = "backup-"
	fileExtension = ".cub"
	checksumSize  = 32
	headerVersion = 1

	DefaultRetentionCount = 10
	DefaultRetentionDays  = 30
)

type header struct {
	Version     int    `json:"version"`
	CreatedAt   int64  `json:"created_at"`
	PersonCount uint64 `json:"person_count"`

	// Cipher and Salt are set for encrypted backups.
	Cipher string `json:"cipher,omitempty"`
	Salt   []byte `json:"salt,omitempty"`
}

var (
	ErrInvalidMagic     = errors.New("backup: invalid magic bytes")
	ErrChecksumMismatch = errors.New("backup: checksum mismatch")
	ErrNotFound         = errors.New("backup: not found")
	ErrNoBackups        = errors.New("backup: no backups available")
	ErrTruncated        = errors.New("backup: block length exceeds file size")
)

// Config configures the backup manager.
type Config struct {
	Dir string

	// RetentionCount keeps at least the newest N backups.
	RetentionCount int

	// RetentionDays keeps every backup younger than N days.
	RetentionDays int

	// Passphrase, when set, encrypts new backups and decrypts
	// encrypted ones.
	Passphrase []byte

	// Cipher selects the algorithm for new encrypted backups.
	// Default: aes-gcm.
	Cipher string
}

// DefaultConfig returns the default configuration for dir.
func DefaultConfig(dir string) Config {
	return Config{
		Dir:            dir,
		RetentionCount: DefaultRetentionCount,
		RetentionDays:  DefaultRetentionDays,
	}
}

// Manager creates, lists and reads backups in one directory.
type Manager struct {
	cfg Config
	now func() time.Time
}

// NewManager creates a Manager, creating the directory if needed.
func NewManager(cfg Config) (*Manager, error) {
	if cfg.Dir == "" {
		return nil, fmt.Errorf("backup: dir is required")
	}
	if err := os.MkdirAll(cfg.Dir, 0o700); err != nil {
		return nil, fmt.Errorf("backup: create dir: %w", err)
	}
	if cfg.RetentionCount == 0 {
		cfg.RetentionCount = DefaultRetentionCount
	}
	if cfg.RetentionDays == 0 {
		cfg.RetentionDays = DefaultRetentionDays
	}
	if err := ValidatePassphrase(cfg.Passphrase); err != nil {
		return nil, err
	}
	if cfg.Cipher == "" {
		cfg.Cipher = CipherAESGCM
	}
	if _, err := newAEAD(cfg.Cipher, make([]byte, argon2KeyLen)); err != nil {
		return nil, err
	}

	return &Manager{cfg: cfg, now: time.Now}, nil
}

// Info contains metadata about a backup.
type Info struct {
	ID          string `json:"id" yaml:"id"`
	PersonCount int    `json:"person_count" yaml:"person_count"`
	Encrypted   bool   `json:"encrypted" yaml:"encrypted"`
	CreatedAt   int64  `json:"created_at" yaml:"created_at"`
	Size        int64  `json:"size" yaml:"size"`
	Path        string `json:"path" yaml:"path"`
	Checksum    string `json:"checksum,omitempty" yaml:"checksum,omitempty"`
}

// Create writes persons to a new backup file.
func (m *Manager) Create(persons []*domain.Person) (*Info, error) {
	now := m.now()
	id := m.generateID(now)

	tempPath := filepath.Join(m.cfg.Dir, id+".tmp")
	file, err := os.OpenFile(tempPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return nil, fmt.Errorf("backup: create temp file: %w", err)
	}
	defer os.Remove(tempPath)

	sum, err := m.writeBackup(file, now, persons)
	if err != nil {
		file.Close()
		return nil, err
	}
	if err := file.Sync(); err != nil {
		file.Close()
		return nil, fmt.Errorf("backup: sync: %w", err)
	}
	if err := file.Close(); err != nil {
		return nil, fmt.Errorf("backup: close: %w", err)
	}

	stat, err := os.Stat(tempPath)
	if err != nil {
		return nil, err
	}

	finalPath := filepath.Join(m.cfg.Dir, id+fileExtension)
	if err := os.Rename(tempPath, finalPath); err != nil {
		return nil, fmt.Errorf("backup: rename: %w", err)
	}

	return &Info{
		ID:          id,
		PersonCount: len(persons),
		Encrypted:   len(m.cfg.Passphrase) > 0,
		CreatedAt:   now.UnixMilli(),
		Size:        stat.Size(),
		Path:        finalPath,
		Checksum:    hex.EncodeToString(sum),
	}, nil
}

func (m *Manager) writeBackup(file io.Writer, now time.Time, persons []*domain.Person) ([]byte, error) {
	hash := sha256.New()
	writer := io.MultiWriter(file, hash)

	if _, err := writer.Write(magicBytes); err != nil {
		return nil, err
	}

	hdr := header{
		Version:     headerVersion,
		CreatedAt:   now.UnixMilli(),
		PersonCount: uint64(len(persons)),
	}
	var aead cipher.AEAD
	if len(m.cfg.Passphrase) > 0 {
		salt, err := newSalt()
		if err != nil {
			return nil, err
		}
		key := deriveKey(m.cfg.Passphrase, salt)
		aead, err = newAEAD(m.cfg.Cipher, key)
		zero(key)
		if err != nil {
			return nil, err
		}
		hdr.Cipher = m.cfg.Cipher
		hdr.Salt = salt
	}

	hdrJSON, err := json.Marshal(hdr)
	if err != nil {
		return nil, fmt.Errorf("backup: marshal header: %w", err)
	}
	if err := writeBlock(writer, hdrJSON); err != nil {
		return nil, fmt.Errorf("backup: write header: %w", err)
	}

	if persons == nil {
		persons = []*domain.Person{}
	}
	data, err := json.Marshal(persons)
	if err != nil {
		return nil, fmt.Errorf("backup: marshal persons: %w", err)
	}
	if aead != nil {
		// The header is authenticated with the data.
		if data, err = seal(aead, data, hdrJSON); err != nil {
			return nil, fmt.Errorf("backup: encrypt: %w", err)
		}
	}
	if err := writeBlock(writer, data); err != nil {
		return nil, fmt.Errorf("backup: write data: %w", err)
	}

	// The checksum trailer is not part of the hash.
	sum := hash.Sum(nil)
	if _, err := file.Write(sum); err != nil {
		return nil, fmt.Errorf("backup: write checksum: %w", err)
	}
	return sum, nil
}

func writeBlock(w io.Writer, block []byte) error {
	var n [4]byte
	binary.BigEndian.PutUint32(n[:], uint32(len(block)))
	if _, err := w.Write(n[:]); err != nil {
		return err
	}
	_, err := w.Write(block)
	return err
}

// readBlock reads one length-prefixed block. remaining holds the bytes
// left in the file and bounds the length before anything is allocated.
func readBlock(r io.Reader, remaining *int64) ([]byte, error) {
	var n [4]byte
	if _, err := io.ReadFull(r, n[:]); err != nil {
		return nil, err
	}
	*remaining -= int64(len(n))
	size := int64(binary.BigEndian.Uint32(n[:]))
	if size > *remaining {
		return nil, fmt.Errorf("%w: %d > %d", ErrTruncated, size, *remaining)
	}
	*remaining -= size
	block := make([]byte, size)
	if _, err := io.ReadFull(r, block); err != nil {
		return nil, err
	}
	return block, nil
}

// Load reads the backup with the given ID.
func (m *Manager) Load(id string) ([]*domain.Person, *Info, error) {
	if !strings.HasPrefix(id, filePrefix) || strings.ContainsAny(id, `/\`) {
		return nil, nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	path := filepath.Join(m.cfg.Dir, id+fileExtension)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return m.loadFile(path)
}

// Latest reads the newest valid backup.
// If the newest backup is corrupted, it falls back to older backups.
func (m *Manager) Latest() ([]*domain.Person, *Info, error) {
	backups, err := m.List()
	if err != nil {
		return nil, nil, err
	}

	for i := len(backups) - 1; i >= 0; i-- {
		persons, info, err := m.loadFile(backups[i].Path)
		if err == nil {
			return persons, info, nil
		}
		if errors.Is(err, ErrChecksumMismatch) || errors.Is(err, ErrInvalidMagic) || errors.Is(err, ErrTruncated) {
			continue
		}
		return nil, nil, err
	}

	return nil, nil, ErrNoBackups
}

func (m *Manager) loadFile(path string) ([]*domain.Person, *Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, nil, err
	}
	if stat.Size() < int64(len(magicBytes))+checksumSize {
		return nil, nil, ErrChecksumMismatch
	}

	dataLen := stat.Size() - checksumSize
	expected := make([]byte, checksumSize)
	if _, err := io.ReadFull(io.NewSectionReader(f, dataLen, checksumSize), expected); err != nil {
		return nil, nil, err
	}
	h := sha256.New()
	if _, err := io.CopyN(h, io.NewSectionReader(f, 0, dataLen), dataLen); err != nil {
		return nil, nil, err
	}
	if !bytes.Equal(h.Sum(nil), expected) {
		return nil, nil, ErrChecksumMismatch
	}

	br := bufio.NewReader(io.NewSectionReader(f, 0, dataLen))

	magic := make([]byte, len(magicBytes))
	if _, err := io.ReadFull(br, magic); err != nil {
		return nil, nil, err
	}
	if !bytes.Equal(magic, magicBytes) {
		return nil, nil, ErrInvalidMagic
	}

	remaining := dataLen - int64(len(magicBytes))
	hdrJSON, err := readBlock(br, &remaining)
	if err != nil {
		return nil, nil, fmt.Errorf("backup: read header: %w", err)
	}
	var hdr header
	if err := json.Unmarshal(hdrJSON, &hdr); err != nil {
		return nil, nil, fmt.Errorf("backup: unmarshal header: %w", err)
	}
	if hdr.Version != headerVersion {
		return nil, nil, fmt.Errorf("backup: unsupported version %d", hdr.Version)
	}

	data, err := readBlock(br, &remaining)
	if err != nil {
		return nil, nil, fmt.Errorf("backup: read data: %w", err)
	}
	if hdr.Cipher != "" {
		if len(m.cfg.Passphrase) == 0 {
			return nil, nil, ErrPassphraseRequired
		}
		key := deriveKey(m.cfg.Passphrase, hdr.Salt)
		aead, err := newAEAD(hdr.Cipher, key)
		zero(key)
		if err != nil {
			return nil, nil, err
		}
		if data, err = open(aead, data, hdrJSON); err != nil {
			return nil, nil, err
		}
	}
	var persons []*domain.Person
	if err := json.Unmarshal(data, &persons); err != nil {
		return nil, nil, fmt.Errorf("backup: unmarshal persons: %w", err)
	}

	info := &Info{
		ID:          strings.TrimSuffix(filepath.Base(path), fileExtension),
		PersonCount: int(hdr.PersonCount),
		Encrypted:   hdr.Cipher != "",
		CreatedAt:   hdr.CreatedAt,
		Size:        stat.Size(),
		Path:        path,
		Checksum:    hex.EncodeToString(expected),
	}
	return persons, info, nil
}

// List lists backup files, oldest first (metadata only).
func (m *Manager) List() ([]*Info, error) {
	entries, err := os.ReadDir(m.cfg.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var infos []*Info
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, fileExtension) {
			continue
		}
		fi, err := e.Info()
		if err != nil {
			continue
		}
		infos = append(infos, &Info{
			ID:        strings.TrimSuffix(name, fileExtension),
			Path:      filepath.Join(m.cfg.Dir, name),
			Size:      fi.Size(),
			CreatedAt: fi.ModTime().UnixMilli(),
		})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].ID < infos[j].ID })
	return infos, nil
}

// Prune applies the retention policy and deletes old backups.
// The newest backup is always kept. It returns the number removed.
func (m *Manager) Prune() (int, error) {
	infos, err := m.List()
	if err != nil {
		return 0, err
	}
	if len(infos) <= 1 {
		return 0, nil
	}

	keep := make(map[string]struct{}, len(infos))

	if m.cfg.RetentionCount > 0 {
		start := max(len(infos)-m.cfg.RetentionCount, 0)
		for _, info := range infos[start:] {
			keep[info.Path] = struct{}{}
		}
	}

	if m.cfg.RetentionDays > 0 {
		cutoff := m.now().Add(-time.Duration(m.cfg.RetentionDays) * 24 * time.Hour)
		for _, info := range infos {
			if time.UnixMilli(info.CreatedAt).After(cutoff) {
				keep[info.Path] = struct{}{}
			}
		}
	}

	keep[infos[len(infos)-1].Path] = struct{}{}

	removed := 0
	for _, info := range infos {
		if _, ok := keep[info.Path]; ok {
			continue
		}
		if err := os.Remove(info.Path); err == nil {
			removed++
		}
	}
	return removed, nil
}

func (m *Manager) generateID(t time.Time) string {
	ts := t.Format("20060102150405")
	seq := 1

	entries, _ := os.ReadDir(m.cfg.Dir)
	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, filePrefix+ts+"-") && strings.HasSuffix(name, fileExtension) {
			seq++
		}
	}

	return fmt.Sprintf("%s%s-%04d", filePrefix, ts, seq)
}
