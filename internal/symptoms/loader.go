package symptoms

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/swasthyasetu/health-assistant/internal/language"
	"github.com/swasthyasetu/health-assistant/pkg/logging"
)

// Loader reads per-language symptom files from a data directory. Missing or
// malformed files are logged and the compiled-in table for that language is
// used instead; loading never fails startup.
type Loader struct {
	dir    string
	logger *logging.Logger
}

// NewLoader creates a loader over dir.
func NewLoader(dir string, logger *logging.Logger) *Loader {
	if logger == nil {
		logger = logging.Default()
	}
	return &Loader{dir: dir, logger: logger}
}

// Load builds a catalog from symptoms_<lang>.json files, falling back per
// language to the built-in table. Call again for an on-demand reload; the
// returned catalog is an independent snapshot.
func (l *Loader) Load() *Catalog {
	builtin := BuiltinCatalog()
	tables := make(map[language.Language]*Table)
	for _, lang := range language.Supported() {
		path := filepath.Join(l.dir, fmt.Sprintf("symptoms_%s.json", lang))
		table, err := loadTableFile(path)
		if err != nil {
			l.logger.Warn("symptom table load failed, using built-in data",
				"language", string(lang), "path", path, "error", err)
			tables[lang] = builtin.Table(lang)
			continue
		}
		l.logger.Info("symptom table loaded", "language", string(lang), "entries", table.Len())
		tables[lang] = table
	}
	return NewCatalog(tables)
}

// loadTableFile parses a {phrase: {response, emergency, cultural_advice}}
// object. A streaming decoder preserves the file's key order, which the
// matcher's tie-break depends on; a plain map would shuffle it.
func loadTableFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("symptoms: open: %w", err)
	}
	defer func() { _ = f.Close() }()
	return decodeTable(f)
}

func decodeTable(r io.Reader) (*Table, error) {
	dec := json.NewDecoder(r)
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("symptoms: decode: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("symptoms: expected top-level object, got %v", tok)
	}

	table := NewTable()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("symptoms: decode key: %w", err)
		}
		phrase, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("symptoms: non-string key %v", keyTok)
		}
		var entry Entry
		if err := dec.Decode(&entry); err != nil {
			return nil, fmt.Errorf("symptoms: decode entry %q: %w", phrase, err)
		}
		entry.Phrase = phrase
		table.Add(entry)
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("symptoms: decode close: %w", err)
	}
	if table.Len() == 0 {
		return nil, fmt.Errorf("symptoms: empty table")
	}
	return table, nil
}
