// Package localfs stores the official dependencies reference document on
// local disk: the extracted text plus a small metadata sidecar. The store
// survives restarts and is reloaded at startup.
package localfs

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/radicado-io/petition-classifier/internal/core/domain"
	"github.com/radicado-io/petition-classifier/internal/core/ports"
)

const (
	infoFile          = "dependencies_info.json"
	referenceTextFile = "reference_text.txt"

	DefaultMaxContextChars = 8000
)

type Store struct {
	dir             string
	acquirer        ports.TextAcquirer
	maxContextChars int

	mu            sync.RWMutex
	info          domain.KnowledgeBaseInfo
	referenceText string
}

func New(dir string, acquirer ports.TextAcquirer, maxContextChars int) (*Store, error) {
	if dir == "" {
		dir = "./data/knowledge_base"
	}
	if maxContextChars <= 0 {
		maxContextChars = DefaultMaxContextChars
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create knowledge base dir: %w", err)
	}

	s := &Store{dir: dir, acquirer: acquirer, maxContextChars: maxContextChars}
	s.load()
	return s, nil
}

func (s *Store) load() {
	if raw, err := os.ReadFile(filepath.Join(s.dir, infoFile)); err == nil {
		_ = json.Unmarshal(raw, &s.info)
	}
	if raw, err := os.ReadFile(filepath.Join(s.dir, referenceTextFile)); err == nil {
		s.referenceText = string(raw)
	}
	s.info.HasReferenceDocument = s.referenceText != ""
	s.info.TextLength = len(s.referenceText)
}

// Upload extracts the reference document through the regular acquisition
// pipeline and persists the result. Re-uploading identical bytes is detected
// by content hash and is a no-op.
func (s *Store) Upload(ctx context.Context, filename, description string, pdfData []byte) (domain.KnowledgeBaseInfo, error) {
	sum := md5.Sum(pdfData)
	hash := hex.EncodeToString(sum[:])

	s.mu.RLock()
	if s.info.FileHash == hash && s.referenceText != "" {
		info := s.info
		s.mu.RUnlock()
		return info, nil
	}
	s.mu.RUnlock()

	acquired, err := s.acquirer.Acquire(ctx, pdfData)
	if err != nil {
		return domain.KnowledgeBaseInfo{}, fmt.Errorf("extract reference document: %w", err)
	}

	info := domain.KnowledgeBaseInfo{
		HasReferenceDocument: true,
		Filename:             filepath.Base(filename),
		FileHash:             hash,
		Description:          description,
		TextLength:           len(acquired.Text),
		UploadDate:           time.Now().UTC().Format(time.RFC3339),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.persist(info, acquired.Text); err != nil {
		return domain.KnowledgeBaseInfo{}, err
	}
	s.info = info
	s.referenceText = acquired.Text
	return info, nil
}

func (s *Store) persist(info domain.KnowledgeBaseInfo, text string) error {
	raw, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal knowledge base info: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, infoFile), raw, 0o644); err != nil {
		return fmt.Errorf("write knowledge base info: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, referenceTextFile), []byte(text), 0o644); err != nil {
		return fmt.Errorf("write reference text: %w", err)
	}
	return nil
}

// ReferenceContext returns the stored text bounded for prompt inclusion,
// preferring a sentence boundary in the last fifth of the window.
func (s *Store) ReferenceContext() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	text := s.referenceText
	if len(text) <= s.maxContextChars {
		return text
	}
	window := text[:s.maxContextChars]
	if period := strings.LastIndex(window, "."); period > s.maxContextChars*4/5 {
		return window[:period+1]
	}
	return window + "..."
}

func (s *Store) Info() domain.KnowledgeBaseInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.info
}

func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, name := range []string{infoFile, referenceTextFile} {
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove %s: %w", name, err)
		}
	}
	s.info = domain.KnowledgeBaseInfo{}
	s.referenceText = ""
	return nil
}
