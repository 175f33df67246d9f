package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// captureStdout runs fn with os.Stdout redirected to a pipe and returns
// whatever was written to it, in the style of the teacher's CLI tests
// that assert on captured process output.
func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	orig := os.Stdout
	os.Stdout = w

	runErr := fn()

	w.Close()
	os.Stdout = orig

	buf := make([]byte, 64*1024)
	n, _ := r.Read(buf)
	return string(buf[:n]), runErr
}

func writeSource(t *testing.T, src string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "program.asl")
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatalf("failed to write fixture source: %v", err)
	}
	return path
}

func TestCompileEmitsTACForWellTypedProgram(t *testing.T) {
	outputFile, emitTAC = "", true
	path := writeSource(t, `func main()
var x:int
x=3;
write x;
endfunc`)

	out, err := captureStdout(t, func() error {
		return runCompile(compileCmd, []string{path})
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "sub main()") {
		t.Errorf("expected a rendered 'sub main()' subroutine header, got %q", out)
	}
	if !strings.Contains(out, "WRITEI x") {
		t.Errorf("expected a WRITEI instruction, got %q", out)
	}
}

func TestCompileReportsSemanticErrors(t *testing.T) {
	outputFile, emitTAC = "", true
	path := writeSource(t, `func main()
var x:int
var y:bool
x=y;
endfunc`)

	err := runCompile(compileCmd, []string{path})
	if err == nil {
		t.Fatal("expected an error for an incompatible assignment")
	}
	if !strings.Contains(err.Error(), "semantic analysis failed") {
		t.Errorf("expected a semantic analysis error, got %v", err)
	}
}

func TestCompileReportsParseErrors(t *testing.T) {
	outputFile, emitTAC = "", true
	path := writeSource(t, `func main(
endfunc`)

	err := runCompile(compileCmd, []string{path})
	if err == nil {
		t.Fatal("expected an error for a malformed program")
	}
	if !strings.Contains(err.Error(), "parsing failed") {
		t.Errorf("expected a parsing error, got %v", err)
	}
}

func TestCompileWritesOutputFile(t *testing.T) {
	dir := t.TempDir()
	outPath := filepath.Join(dir, "out.tac")
	outputFile, emitTAC = outPath, true
	defer func() { outputFile = "" }()

	path := writeSource(t, `func main()
endfunc`)

	if err := runCompile(compileCmd, []string{path}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	content, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("expected output file to exist: %v", err)
	}
	if !strings.Contains(string(content), "sub main()") {
		t.Errorf("expected TAC listing in output file, got %q", content)
	}
}

func TestCompileRejectsMissingFile(t *testing.T) {
	outputFile, emitTAC = "", true
	err := runCompile(compileCmd, []string{filepath.Join(t.TempDir(), "missing.asl")})
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
	if !strings.Contains(err.Error(), "failed to read file") {
		t.Errorf("expected a read-file error, got %v", err)
	}
}
