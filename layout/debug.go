package layout

import (
	"encoding/json"
	"fmt"
	"os"
)

// DebugJSON 把布局结果编码为带缩进的 JSON，便于调试或可视化折行结果。
func DebugJSON(res *Result) ([]byte, error) {
	if res == nil {
		return nil, fmt.Errorf("布局结果为空")
	}
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// WriteDebugJSON 将布局结果写入指定路径，res 为 nil 时不产生文件。
func WriteDebugJSON(res *Result, path string) error {
	if res == nil {
		return nil
	}
	data, err := DebugJSON(res)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
