package handler

import (
	"encoding/json"
	"strings"
)

// StringList accepts list-valued request fields in three shapes:
//
//	["a", "b"]        – a plain JSON array
//	"[\"a\",\"b\"]"   – a JSON array encoded inside a string
//	"a, b"            – a comma-separated string
//
// Clients built on form libraries tend to double-encode arrays or flatten
// them into comma lists; all three decode to the same []string.
type StringList []string

func (s *StringList) UnmarshalJSON(data []byte) error {
	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		*s = cleanList(arr)
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}

	trimmed := strings.TrimSpace(str)
	if strings.HasPrefix(trimmed, "[") {
		if err := json.Unmarshal([]byte(trimmed), &arr); err == nil {
			*s = cleanList(arr)
			return nil
		}
	}

	*s = cleanList(strings.Split(str, ","))
	return nil
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
