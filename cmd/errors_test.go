package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestTranslationErrors verifies that each program in tests/errors/ fails to
// translate and that nothing is written for it.
func TestTranslationErrors(t *testing.T) {
	testsDir := filepath.Join("..", "tests", "errors")
	entries, err := os.ReadDir(testsDir)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", testsDir, err)
	}

	// Programs that translate once unsupported constructs may be dropped
	omittable := map[string]bool{
		"class.py": true,
		"slice.py": true,
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ".py" {
			continue
		}
		t.Run(name, func(t *testing.T) {
			source := filepath.Join(testsDir, name)
			outputFile := filepath.Join(t.TempDir(), "out.js")

			var stdout, stderr bytes.Buffer
			code := run([]string{"-source", source, "-output", outputFile}, &stdout, &stderr)
			outputStr := stdout.String()
			if code == 0 {
				t.Fatalf("Expected error for %s, but translation succeeded", name)
			}
			if !strings.Contains(outputStr, "Error:") {
				t.Errorf("Expected error message for %s, got: %s", name, outputStr)
			}
			if !strings.Contains(outputStr, source) {
				t.Errorf("Error for %s does not name the file: %s", name, outputStr)
			}
			if _, err := os.Stat(outputFile); !os.IsNotExist(err) {
				t.Errorf("Output written despite error")
			}
			t.Logf("%s: %s", name, strings.Split(outputStr, "\n")[0])

			stdout.Reset()
			code = run([]string{"-source", source, "-output", outputFile, "-allow-omission"}, &stdout, &stderr)
			if omittable[name] && code != 0 {
				t.Errorf("Expected %s to translate with -allow-omission, got: %s", name, stdout.String())
			}
			if !omittable[name] && code == 0 {
				t.Errorf("Expected %s to fail even with -allow-omission", name)
			}
		})
	}
}
