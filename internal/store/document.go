package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/pbaille/planner/internal/domain"
	"github.com/pbaille/planner/internal/logger"
)

// DefaultKey is the storage key holding the planner document
const DefaultKey = "school-planner"

// ErrDecode is returned when bytes are not a planner document
var ErrDecode = errors.New("decode document")

// DocumentStore loads and saves the planner document under one fixed key
type DocumentStore struct {
	storage Storage
	key     string
	log     *logger.Logger
}

// NewDocumentStore binds a document store to storage under key
func NewDocumentStore(storage Storage, key string, log *logger.Logger) *DocumentStore {
	if key == "" {
		key = DefaultKey
	}
	if log == nil {
		log = logger.Nop()
	}
	return &DocumentStore{storage: storage, key: key, log: log.With("key", key)}
}

// Load returns the persisted document, or the default document when nothing
// is stored or the stored bytes cannot be read. It never fails.
func (s *DocumentStore) Load(ctx context.Context) domain.Document {
	data, err := s.storage.Get(ctx, s.key)
	if errors.Is(err, ErrNotFound) {
		s.log.Debug("no stored document, starting fresh")
		return domain.Default()
	}
	if err != nil {
		s.log.Warn("read stored document failed, starting fresh", "error", err)
		return domain.Default()
	}

	doc, err := Decode(data)
	if err != nil {
		s.log.Warn("stored document is corrupt, starting fresh", "error", err, "bytes", len(data))
		return domain.Default()
	}
	return doc
}

// Save serializes doc and overwrites the stored value wholesale. Imports go
// through the same path: nothing is merged with what was stored before.
func (s *DocumentStore) Save(ctx context.Context, doc domain.Document) error {
	data, err := Encode(doc)
	if err != nil {
		return err
	}
	if err := s.storage.Set(ctx, s.key, data); err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	return nil
}

// Close releases the underlying storage
func (s *DocumentStore) Close() error {
	return s.storage.Close()
}

// Encode serializes doc as indented JSON, the export format
func Encode(doc domain.Document) ([]byte, error) {
	data, err := json.MarshalIndent(domain.Normalize(doc), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return data, nil
}

// Decode parses a JSON object into a document. There is no schema check:
// unknown fields are ignored, missing fields take zero values and a field of
// the wrong type decodes as its zero value. Only malformed JSON or a
// non-object value fails.
func Decode(data []byte) (domain.Document, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return domain.Document{}, fmt.Errorf("%w: not a JSON object", ErrDecode)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return domain.Document{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	var doc domain.Document
	decodeFields(fields, reflect.ValueOf(&doc).Elem())
	return domain.Normalize(doc), nil
}

// ExportFileName is the download name of an export made at now
func ExportFileName(now time.Time) string {
	return "school-planner-" + domain.DateOf(now) + ".json"
}
