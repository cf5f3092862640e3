package responders

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/swasthyasetu/health-assistant/pkg/logging"
)

// Load reads responders.json from dir, falling back to the built-in roster
// when the file is missing or malformed.
func Load(dir string, logger *logging.Logger) *Directory {
	if logger == nil {
		logger = logging.Default()
	}
	path := filepath.Join(dir, "responders.json")
	list, err := loadFile(path)
	if err != nil {
		logger.Warn("responder roster load failed, using built-in data", "path", path, "error", err)
		return NewDirectory(nil)
	}
	logger.Info("responder roster loaded", "count", len(list))
	return NewDirectory(list)
}

func loadFile(path string) ([]Responder, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("responders: read: %w", err)
	}
	var list []Responder
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("responders: decode: %w", err)
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("responders: empty roster")
	}
	for i, r := range list {
		if r.Name == "" || r.Phone == "" {
			return nil, fmt.Errorf("responders: entry %d missing name or phone", i)
		}
	}
	return list, nil
}
