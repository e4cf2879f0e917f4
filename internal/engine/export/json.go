package export

import (
	"encoding/json"
	"fmt"
)

// JSON renders the résumé as indented JSON.
func JSON(r Resume) ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export json: %w", err)
	}
	return data, nil
}
