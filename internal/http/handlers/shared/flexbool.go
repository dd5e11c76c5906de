package shared

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// FlexBool 兼容 true/false、"true"/"false"、1/0 等写法的布尔字段。
// 前端历史上混用布尔与字符串，解码边界统一收敛成 bool。
type FlexBool struct {
	Value bool
	Set   bool
}

// UnmarshalJSON 实现 json.Unmarshaler
func (f *FlexBool) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	var b bool
	if err := json.Unmarshal(trimmed, &b); err == nil {
		f.Value = b
		f.Set = true
		return nil
	}

	var s string
	if err := json.Unmarshal(trimmed, &s); err == nil {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "true", "1", "yes", "on":
			f.Value = true
		case "false", "0", "no", "off", "":
			f.Value = false
		default:
			return fmt.Errorf("无法识别的布尔值: %q", s)
		}
		f.Set = true
		return nil
	}

	var n float64
	if err := json.Unmarshal(trimmed, &n); err == nil {
		f.Value = n != 0
		f.Set = true
		return nil
	}

	return fmt.Errorf("无法识别的布尔值: %s", string(trimmed))
}

// MarshalJSON 实现 json.Marshaler
func (f FlexBool) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.Value)
}

// Ptr 未设置时返回 nil，用于可选更新字段
func (f FlexBool) Ptr() *bool {
	if !f.Set {
		return nil
	}
	v := f.Value
	return &v
}
