package layout

import (
	"encoding/json"
	"os"
)

// WriteDebugJSON 将各尺寸的场景输出为 JSON，便于调试拆行与字号。
func WriteDebugJSON(scenes []*Scene, path string) error {
	if len(scenes) == 0 {
		return nil
	}
	data, err := json.MarshalIndent(scenes, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
