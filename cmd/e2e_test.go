package main

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

type TestCase struct {
	Name       string
	Source     string
	Expected   string
	JsRunnable bool // expected output checked by running node
}

const runtimePath = "../runtime/py.js"

var e2eTestCases = []TestCase{
	{"basics", "../tests/programs/basics.py", "../tests/programs/basics.out", true},
	{"loops", "../tests/programs/loops.py", "../tests/programs/loops.out", true},
}

func TestE2E(t *testing.T) {
	buildDir := t.TempDir()
	for _, tc := range e2eTestCases {
		t.Run(tc.Name, func(t *testing.T) {
			runE2ETest(t, buildDir, tc)
		})
	}
}

func runE2ETest(t *testing.T, buildDir string, tc TestCase) {
	// Step 1: translate
	jsFile := filepath.Join(buildDir, tc.Name+".js")
	var stdout, stderr bytes.Buffer
	if code := run([]string{"-source", tc.Source, "-output", jsFile}, &stdout, &stderr); code != 0 {
		t.Fatalf("Translation failed with status %d\nOutput: %s%s", code, stdout.String(), stderr.String())
	}
	generated, err := os.ReadFile(jsFile)
	if err != nil {
		t.Fatalf("Failed to read generated code: %v", err)
	}
	if len(generated) == 0 {
		t.Fatal("Generated code is empty")
	}

	// Step 2: run with node, the runtime and the program in one script
	if !tc.JsRunnable {
		return
	}
	if testing.Short() {
		t.Skip("Skipping JavaScript execution in short mode")
	}
	node, err := exec.LookPath("node")
	if err != nil {
		t.Skip("node not found, skipping JavaScript execution")
	}
	runtime, err := os.ReadFile(runtimePath)
	if err != nil {
		t.Fatalf("Failed to read runtime: %v", err)
	}
	script := filepath.Join(buildDir, tc.Name+".run.js")
	if err := os.WriteFile(script, append(append(runtime, '\n'), generated...), 0644); err != nil {
		t.Fatalf("Failed to write script: %v", err)
	}
	output, err := exec.Command(node, script).CombinedOutput()
	if err != nil {
		t.Fatalf("JavaScript execution failed: %v\nOutput: %s\nCode:\n%s", err, output, generated)
	}
	expected, err := os.ReadFile(tc.Expected)
	if err != nil {
		t.Fatalf("Failed to read expected output: %v", err)
	}
	if string(output) != string(expected) {
		t.Errorf("Output mismatch\n got:\n%s\nwant:\n%s\nCode:\n%s", output, expected, generated)
	}
}

func TestE2EStdout(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"-source", e2eTestCases[0].Source}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit status %d: %s%s", code, stdout.String(), stderr.String())
	}
	if !strings.HasPrefix(stdout.String(), "var total, xs;\ntotal = 0;\nfunction add_all(xs) {\n") {
		t.Errorf("unexpected output:\n%s", stdout.String())
	}
}
