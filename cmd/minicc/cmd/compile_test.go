package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestCompileEndToEndScenarios drives compileFile over each of the six
// reference Mini-C programs and checks the emitted IR contains the
// function definitions and extern declarations the scenario exercises.
// Running the resulting IR requires an external LLVM backend and linker,
// both out of scope for this front end; these assertions instead pin the
// shape of what the front end handed that backend.
func TestCompileEndToEndScenarios(t *testing.T) {
	tests := []struct {
		name       string
		file       string
		wantDefine []string
		wantDecl   []string
	}{
		{
			name:       "factorial",
			file:       "factorial.mc",
			wantDefine: []string{"define i32 @factorial", "define void @run"},
			wantDecl:   []string{"declare void @print_int"},
		},
		{
			name:       "fibonacci",
			file:       "fibonacci.mc",
			wantDefine: []string{"define i32 @fibonacci", "define void @run"},
			wantDecl:   []string{"declare void @print_int"},
		},
		{
			name:       "cosine",
			file:       "cosine.mc",
			wantDefine: []string{"define float @cosine", "define void @run"},
			wantDecl:   []string{"declare void @print_float"},
		},
		{
			name:       "palindrome",
			file:       "palindrome.mc",
			wantDefine: []string{"define i1 @palindrome", "define void @run"},
			wantDecl:   []string{"declare void @print_bool"},
		},
		{
			name:       "recurse",
			file:       "recurse.mc",
			wantDefine: []string{"define i32 @addNumbers", "define i32 @recursionDriver", "define void @run"},
			wantDecl:   []string{"declare void @print_int"},
		},
		{
			name:       "rfact",
			file:       "rfact.mc",
			wantDefine: []string{"define i32 @multiplyNumbers", "define i32 @rfact", "define void @run"},
			wantDecl:   []string{"declare void @print_int"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := runCompile(t, filepath.Join("testdata", tt.file))
			for _, want := range tt.wantDefine {
				if !strings.Contains(out, want) {
					t.Errorf("expected IR to contain %q, got:\n%s", want, out)
				}
			}
			for _, want := range tt.wantDecl {
				if !strings.Contains(out, want) {
					t.Errorf("expected IR to contain %q, got:\n%s", want, out)
				}
			}
		})
	}
}

// TestCompileNegativeScenarios checks that each invalid program below
// fails compilation and leaves no output file behind.
func TestCompileNegativeScenarios(t *testing.T) {
	tests := []string{
		"negative_narrowing.mc",
		"negative_argcount.mc",
		"negative_dupglobal.mc",
		"negative_voidreturn.mc",
	}
	for _, file := range tests {
		t.Run(file, func(t *testing.T) {
			dir := t.TempDir()
			restoreOutput := setOutputFile(filepath.Join(dir, "output.ll"))
			defer restoreOutput()

			err := compileFile(compileCmd, []string{filepath.Join("testdata", file)})
			if err == nil {
				t.Fatalf("expected compilation of %s to fail", file)
			}
			if _, statErr := os.Stat(outputFile); statErr == nil {
				t.Errorf("output file must not be written when compilation fails")
			}
		})
	}
}

func runCompile(t *testing.T, path string) string {
	t.Helper()
	dir := t.TempDir()
	restoreOutput := setOutputFile(filepath.Join(dir, "output.ll"))
	defer restoreOutput()

	if err := compileFile(compileCmd, []string{path}); err != nil {
		t.Fatalf("compileFile(%s) failed: %v", path, err)
	}
	content, err := os.ReadFile(outputFile)
	if err != nil {
		t.Fatalf("failed to read emitted IR: %v", err)
	}
	return string(content)
}

// setOutputFile overrides the package-level -o flag default for the
// duration of one test and returns a function restoring it, so in-process
// CLI tests don't leak flag state into each other.
func setOutputFile(path string) func() {
	old := outputFile
	outputFile = path
	return func() { outputFile = old }
}
