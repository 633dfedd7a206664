package manifest

import (
	"bytes"
	"strings"
	"testing"

	"github.com/me/cwl2man/internal/extract"
	"github.com/spf13/afero"
)

func samtools() extract.Command {
	return extract.Command{
		Command:       "samtools",
		DockerImage:   "biocontainers/samtools:1.9",
		DockerCommand: "samtools",
	}
}

func TestEncode_Shape(t *testing.T) {
	m := New("tools")
	m.Add(samtools())

	data, err := Marshal(m)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	out := string(data)

	if !strings.HasPrefix(out, "manifest:\n") {
		t.Errorf("output should start with manifest key:\n%s", out)
	}
	order := []string{"name: tools", "commands:", "- command: samtools", "docker_image: biocontainers/samtools:1.9", "docker_command: samtools"}
	last := -1
	for _, want := range order {
		idx := strings.Index(out, want)
		if idx < 0 {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
		if idx < last {
			t.Errorf("%q out of order:\n%s", want, out)
		}
		last = idx
	}
	if strings.Contains(out, "version:") {
		t.Errorf("empty version should be omitted:\n%s", out)
	}
}

func TestEncode_EmptyCommands(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, &Manifest{Name: DefaultName}); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !strings.Contains(buf.String(), "commands: []") {
		t.Errorf("expected empty command list, got:\n%s", buf.String())
	}
}

func TestEncode_Version(t *testing.T) {
	m := New("tools")
	m.Version = "1.0.0"
	data, err := Marshal(m)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "version: 1.0.0") {
		t.Errorf("expected version line:\n%s", out)
	}
	if strings.Index(out, "version:") > strings.Index(out, "commands:") {
		t.Errorf("version should precede commands:\n%s", out)
	}
}

func TestWriteLoad_RoundTrip(t *testing.T) {
	fsys := afero.NewMemMapFs()
	m := New("bio")
	m.Add(samtools())
	m.Add(extract.Command{Command: "bwa", DockerImage: "quay.io/biocontainers/bwa:0.7.17", DockerCommand: "bwa"})

	if err := Write(fsys, "/out/manifest.yaml", m); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := Load(fsys, "/out/manifest.yaml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Name != "bio" {
		t.Errorf("Name = %q, want bio", got.Name)
	}
	if len(got.Commands) != 2 {
		t.Fatalf("Commands len = %d, want 2", len(got.Commands))
	}
	if got.Commands[0] != samtools() {
		t.Errorf("Commands[0] = %+v, want %+v", got.Commands[0], samtools())
	}
	if got.Commands[1].Command != "bwa" {
		t.Errorf("Commands[1].Command = %q, want bwa", got.Commands[1].Command)
	}
}

func TestLoad_NullCommands(t *testing.T) {
	fsys := afero.NewMemMapFs()
	src := "manifest:\n  name: x\n  commands:\n  host_commands:\n    - ls\n"
	if err := afero.WriteFile(fsys, "/m.yaml", []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	m, err := Load(fsys, "/m.yaml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m.Commands == nil || len(m.Commands) != 0 {
		t.Errorf("Commands = %#v, want empty non-nil slice", m.Commands)
	}
}

func TestLoad_Errors(t *testing.T) {
	fsys := afero.NewMemMapFs()
	if err := afero.WriteFile(fsys, "/bad.yaml", []byte("manifest: [\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(fsys, "/bad.yaml"); err == nil {
		t.Error("expected parse error")
	}
	if _, err := Load(fsys, "/missing.yaml"); err == nil {
		t.Error("expected read error")
	}
}
