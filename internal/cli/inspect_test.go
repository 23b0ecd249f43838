package cli

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestInspectCommandPrintsModel(t *testing.T) {
	dir := t.TempDir()
	source := writeFixture(t, dir, "pet.ts", strings.Join([]string{
		"interface Pet {",
		"    id: number;",
		"    tag?: string;",
		"}",
		"",
		"interface Owner {",
		"    pet: Pet;",
		"}",
	}, "\n"))

	out := runCommand(t, "inspect", source)

	type field struct {
		Name     string `json:"name"`
		Optional bool   `json:"optional"`
		Type     string `json:"type"`
	}
	type typeEntry struct {
		Name   string  `json:"name"`
		Fields []field `json:"fields"`
	}

	var got []typeEntry
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("unmarshal output: %v\n%s", err, out)
	}

	want := []typeEntry{
		{Name: "Pet", Fields: []field{
			{Name: "id", Type: "number"},
			{Name: "tag", Optional: true, Type: "string"},
		}},
		{Name: "Owner", Fields: []field{
			{Name: "pet", Type: "Pet"},
		}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("model mismatch (-want +got):\n%s", diff)
	}
}

func TestInspectCommandMissingFile(t *testing.T) {
	err := runCommandErr(t, "inspect", filepath.Join(t.TempDir(), "absent.ts"))
	if err == nil || !strings.Contains(err.Error(), "absent.ts") {
		t.Fatalf("err = %v, want read failure naming the file", err)
	}
}
