package synthflow

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func Test_Builtin_WriteThenReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "note.txt")
	src := `
write_file("` + path + `", "hello file")
print(read_file("` + path + `"))
`
	wantLines(t, src, "hello file")
}

func Test_Builtin_WriteFile_FormatsNonStringContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nums.txt")
	evalSrc(t, `write_file("`+path+`", [1, 2, 3])`)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "[1, 2, 3]" {
		t.Fatalf("content: %q", data)
	}
}

func Test_Builtin_ReadFile_MissingRaises(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent.txt")
	wantRuntimeError(t, `read_file("`+missing+`")`, "cannot open file")
}

func Test_Builtin_ReadFile_ErrorIsCatchable(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent.txt")
	out := runSrc(t, `
try { read_file("`+missing+`") } catch (e) { print("recovered") }
`)
	if !strings.Contains(out, "recovered") {
		t.Fatalf("output: %q", out)
	}
}

func Test_Builtin_ReadFile_RequiresStringPath(t *testing.T) {
	wantRuntimeError(t, `read_file(42)`, "requires a string path")
}
