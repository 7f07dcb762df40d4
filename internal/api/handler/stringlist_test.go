package handler

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestStringList_UnmarshalJSON(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []string
	}{
		{"plain array", `["go", "mongodb"]`, []string{"go", "mongodb"}},
		{"array with padding", `[" go ", "", " redis"]`, []string{"go", "redis"}},
		{"stringified array", `"[\"go\",\"mongodb\"]"`, []string{"go", "mongodb"}},
		{"comma separated", `"go, mongodb, redis"`, []string{"go", "mongodb", "redis"}},
		{"single value", `"go"`, []string{"go"}},
		{"empty string", `""`, []string{}},
		{"empty array", `[]`, []string{}},
		{"only commas", `",,,"`, []string{}},
		{"malformed bracket falls back to comma split", `"[go, mongodb"`, []string{"[go", "mongodb"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got StringList
			if err := json.Unmarshal([]byte(tc.in), &got); err != nil {
				t.Fatalf("unmarshal %q: %v", tc.in, err)
			}
			if !reflect.DeepEqual([]string(got), tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestStringList_RejectsNonString(t *testing.T) {
	var got StringList
	if err := json.Unmarshal([]byte(`42`), &got); err == nil {
		t.Fatal("expected error for numeric input")
	}
}
