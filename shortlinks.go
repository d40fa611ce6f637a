package ofcrse

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/sirupsen/logrus"
)

// LoadShortlinks reads a JSON object mapping shortlink names to URLs. A
// missing file is not an error: it yields an empty table.
func LoadShortlinks(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		logrus.WithField("file", path).Info("no shortlinks file; shortlinks disabled")
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read shortlinks: %w", err)
	}
	links := make(map[string]string)
	if err := json.Unmarshal(data, &links); err != nil {
		return nil, fmt.Errorf("parse shortlinks %s: %w", path, err)
	}
	return links, nil
}
