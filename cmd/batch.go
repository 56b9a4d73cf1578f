package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"pyjs/compiler"
)

// job is one file to translate. An empty dst means standard output.
type job struct {
	src string
	dst string
}

// collectJobs lists the Python files to translate. source is a file or a
// directory; directories are walked recursively and their .py files mirrored
// under output (or written next to the sources when output is empty).
func collectJobs(source, output string, exclude []string) ([]job, error) {
	info, err := os.Stat(source)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []job{{src: source, dst: output}}, nil
	}

	root := output
	if root == "" {
		root = source
	}
	var jobs []job
	err = filepath.WalkDir(source, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(source, path)
		if err != nil {
			return err
		}
		if rel != "." && excluded(rel, exclude) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || filepath.Ext(path) != ".py" {
			return nil
		}
		dst := filepath.Join(root, strings.TrimSuffix(rel, ".py")+".js")
		jobs = append(jobs, job{src: path, dst: dst})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return jobs, nil
}

// excluded matches rel against the patterns, both as a whole relative path
// and by its base name.
func excluded(rel string, patterns []string) bool {
	rel = filepath.ToSlash(rel)
	base := filepath.Base(rel)
	for _, p := range patterns {
		if ok, _ := filepath.Match(p, rel); ok {
			return true
		}
		if ok, _ := filepath.Match(p, base); ok {
			return true
		}
	}
	return false
}

// translateAll runs the jobs on at most cfg.Jobs goroutines. Each job gets
// its own Translator. The first failure cancels the jobs not yet started.
func translateAll(ctx context.Context, jobs []job, cfg Config, stdout io.Writer) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Jobs)

	var mu sync.Mutex
	for _, j := range jobs {
		j := j
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out, err := translateFile(j.src, cfg)
			if err != nil {
				return err
			}
			if j.dst == "" {
				mu.Lock()
				defer mu.Unlock()
				_, err := io.WriteString(stdout, out)
				return err
			}
			if err := os.MkdirAll(filepath.Dir(j.dst), 0755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
			if err := os.WriteFile(j.dst, []byte(out), 0644); err != nil {
				return err
			}
			compiler.DebugLogPrintf("%s -> %s", j.src, j.dst)
			return nil
		})
	}
	return g.Wait()
}

// translateFile reads and translates one source file.
func translateFile(path string, cfg Config) (string, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	out, err := compiler.TranslateSource(string(src), path, cfg.options()...)
	if err != nil {
		var terr *compiler.Error
		if errors.As(err, &terr) {
			return "", fmt.Errorf("%s:%w", path, err)
		}
		return "", err
	}
	return out, nil
}
