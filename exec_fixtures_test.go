// exec_fixtures_test.go — end-to-end programs driven by a YAML manifest.
//
// Each fixture in testdata/programs.yaml carries a program and either its
// expected stdout or a substring of the expected runtime error.
package synthflow

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

type programFixture struct {
	Name   string `yaml:"name"`
	Source string `yaml:"source"`
	Stdout string `yaml:"stdout"`
	Error  string `yaml:"error"`
}

type fixtureManifest struct {
	Programs []programFixture `yaml:"programs"`
}

func loadFixtures(t *testing.T) []programFixture {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "programs.yaml"))
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	var m fixtureManifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		t.Fatalf("decode manifest: %v", err)
	}
	if len(m.Programs) == 0 {
		t.Fatal("manifest has no programs")
	}
	return m.Programs
}

func Test_ExecFixtures(t *testing.T) {
	for _, fx := range loadFixtures(t) {
		fx := fx
		t.Run(fx.Name, func(t *testing.T) {
			ip := NewInterpreter()
			var out bytes.Buffer
			ip.Stdout = &out

			_, err := ip.EvalSource(fx.Source)
			if fx.Error != "" {
				if err == nil {
					t.Fatalf("want error containing %q, got none", fx.Error)
				}
				if !strings.Contains(err.Error(), fx.Error) {
					t.Fatalf("want error containing %q, got:\n%s", fx.Error, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("eval: %v", err)
			}
			if got := out.String(); got != fx.Stdout {
				t.Fatalf("stdout mismatch\nwant:\n%q\ngot:\n%q", fx.Stdout, got)
			}
		})
	}
}
