// Command preprocess rewrites Kubernetes Swagger v2 spec files into the
// normalized form the code generator consumes. It accepts a single spec file
// or a directory tree of them; processed copies are written next to the
// sources (or under -dst) with the configured name prefix.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/kubespec/preprocess/internal/config"
	"github.com/kubespec/preprocess/internal/document"
	"github.com/kubespec/preprocess/internal/pipeline"
)

func main() {
	var src string
	var dst string
	var cfgPath string
	var debug bool

	flag.StringVar(&src, "src", "", "path to a swagger spec file or a directory of them")
	flag.StringVar(&dst, "dst", "", "optional destination directory")
	flag.StringVar(&cfgPath, "config", "", "optional path to a yaml config file")
	flag.BoolVar(&debug, "debug", false, "log every model rewrite")
	flag.Parse()

	// positional shorthand: preprocess <src> [<dst>]
	args := flag.Args()
	if src == "" && len(args) > 0 {
		src = args[0]
		if dst == "" && len(args) > 1 {
			dst = args[1]
		}
	}

	cfg := config.MustConfig(cfgPath)
	if debug {
		cfg.Debug = true
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if src == "" {
		fmt.Fprintln(os.Stderr, "usage: preprocess [-config path] [-debug] -src <spec path> [-dst <dir>]")
		os.Exit(2)
	}

	fileInfo, err := os.Stat(src)
	if err != nil {
		slog.Error("cannot stat source", "src", src, "error", err)
		os.Exit(1)
	}

	// process single file
	if !fileInfo.IsDir() {
		dstPath := destPath(filepath.Dir(src), filepath.Base(src), dst, cfg.OutputPrefix)
		if err := processFile(src, dstPath, cfg, logger); err != nil {
			slog.Error("preprocessing failed", "src", src, "error", err)
			os.Exit(1)
		}
		return
	}

	sources, err := collectSources(src, cfg.OutputPrefix)
	if err != nil {
		slog.Error("collecting sources failed", "src", src, "error", err)
		os.Exit(1)
	}

	if failed := run(src, sources, dst, cfg, logger); failed > 0 {
		slog.Error("preprocessing finished with failures", "failed", failed, "total", len(sources))
		os.Exit(1)
	}
}

// collectSources walks a directory and returns the relative paths of every
// spec candidate, skipping already processed outputs.
func collectSources(src, outputPrefix string) ([]string, error) {
	var specs []string

	err := filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if strings.HasPrefix(info.Name(), outputPrefix) {
			return nil
		}
		if filepath.Ext(info.Name()) != ".json" {
			return nil
		}
		rel, _ := filepath.Rel(src, path)
		specs = append(specs, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return specs, nil
}

// run processes the collected files concurrently, at most cfg.Workers at a
// time, and returns the number of failures.
func run(baseSrcPath string, sources []string, dst string, cfg *config.Config, logger *slog.Logger) int {
	type result struct {
		src string
		err error
	}

	var wg sync.WaitGroup
	ch := make(chan result)
	sem := make(chan struct{}, cfg.Workers)

	for _, src := range sources {
		wg.Add(1)

		go func(src string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			// mirror the source layout under dst when one is given
			dstDir := ""
			if dst != "" {
				dstDir = filepath.Join(dst, filepath.Dir(src))
			}
			dstPath := destPath(filepath.Join(baseSrcPath, filepath.Dir(src)), filepath.Base(src), dstDir, cfg.OutputPrefix)
			err := processFile(filepath.Join(baseSrcPath, src), dstPath, cfg, logger)
			ch <- result{src: src, err: err}
		}(src)
	}

	go func() {
		wg.Wait()
		close(ch)
	}()

	failed := 0
	for res := range ch {
		if res.err != nil {
			failed++
			logger.Error("failed", "src", res.src, "error", res.err)
			continue
		}
		logger.Info("done", "src", res.src)
	}

	return failed
}

// destPath derives the output path: the input base name gains the output
// prefix and lands next to the source unless a destination dir is given.
func destPath(srcDir, fileName, dst, outputPrefix string) string {
	dir := srcDir
	if dst != "" {
		dir = dst
	}
	return filepath.Join(dir, outputPrefix+fileName)
}

// processFile runs the whole pipeline over one spec file. The output file is
// written only after every pass succeeded.
func processFile(src, dst string, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("0. load the spec file to json", "src", src)
	doc, err := document.Load(src)
	if err != nil {
		return err
	}

	p := pipeline.New(cfg, logger)
	if err := p.Run(doc); err != nil {
		return err
	}

	logger.Info("6. save the processed spec to file", "dst", dst)
	if err := doc.Save(dst); err != nil {
		return err
	}

	logger.Info("completed preprocessing", "output", dst)
	return nil
}
