package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/scalpel-ui/scalpel/cmd/scalpel/internal/config"
	"github.com/scalpel-ui/scalpel/internal/cache"
	"github.com/scalpel-ui/scalpel/pkg/expand"
	"github.com/scalpel-ui/scalpel/pkg/syntax"
)

func newExpandCommand() *cobra.Command {
	var write bool
	var noCache bool

	cmd := &cobra.Command{
		Use:   "expand [files...]",
		Short: "Expand SX source files",
		Long: `Expands SX source files into their reactive view form. With no
arguments, expands every source file under the configured source
directory. Output goes to stdout unless --write is given, in which
case each file is written alongside its source with a .sxc extension.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExpand(args, write, noCache)
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "Write expanded output next to each source file")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Skip the expansion cache")

	return cmd
}

func runExpand(args []string, write, noCache bool) error {
	cfg, err := config.Load(".")
	if err != nil {
		log.Printf("⚠️  Failed to load scalpel.yaml: %v (using defaults)\n", err)
		cfg = config.DefaultConfig()
	}

	files := args
	if len(files) == 0 {
		files, err = findSources(cfg)
		if err != nil {
			return err
		}
	}
	if len(files) == 0 {
		return fmt.Errorf("no source files found under %s", cfg.Source.Dir)
	}

	var expCache *cache.Cache
	if cfg.Cache.Enabled && !noCache {
		cacheCfg := cache.DefaultConfig()
		if cfg.Cache.Dir != "" {
			cacheCfg.Dir = cfg.Cache.Dir
		}
		expCache, err = cache.New(cacheCfg)
		if err != nil {
			log.Printf("⚠️  Failed to initialize expansion cache: %v", err)
		}
	}

	for _, file := range files {
		out, err := expandFile(file, expCache)
		if err != nil {
			return err
		}

		if write {
			dest := strings.TrimSuffix(file, filepath.Ext(file)) + ".sxc"
			if err := os.WriteFile(dest, []byte(out), 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", dest, err)
			}
			fmt.Printf("✅ %s → %s\n", file, dest)
		} else {
			if len(files) > 1 {
				fmt.Printf(";; %s\n", file)
			}
			fmt.Println(out)
		}
	}

	return nil
}

// expandFile expands a single source file, consulting the cache when
// its content hash matches a prior expansion.
func expandFile(path string, expCache *cache.Cache) (string, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	hash := cache.HashSource(src)
	if expCache != nil {
		if data, ok := expCache.Get(path, hash); ok {
			return string(data), nil
		}
	}

	forms, err := syntax.NewReader(path, string(src)).ReadAll()
	if err != nil {
		return "", err
	}
	expanded, err := expand.Forms(forms)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for i, form := range expanded {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(form.String())
	}
	b.WriteString("\n")
	out := b.String()

	if expCache != nil {
		if err := expCache.Put(path, hash, []byte(out)); err != nil {
			log.Printf("⚠️  Failed to cache %s: %v", path, err)
		}
	}
	return out, nil
}

// findSources walks the configured source directory for source files.
func findSources(cfg *config.Config) ([]string, error) {
	var files []string
	err := filepath.Walk(cfg.Source.Dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if strings.HasPrefix(info.Name(), ".") || info.Name() == "node_modules" {
				return filepath.SkipDir
			}
			return nil
		}
		if cfg.IsSource(path) {
			files = append(files, path)
		}
		return nil
	})
	if os.IsNotExist(err) {
		return nil, nil
	}
	return files, err
}
