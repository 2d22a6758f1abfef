package jxa

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"sync"
)

//go:embed helpers/*.js
var helperFiles embed.FS

var (
	helpersOnce sync.Once
	helpersSrc  string
	helpersErr  error
)

// Helpers concatenates the embedded JXA helper fragments in lexical
// order. The fragments only declare functions, so ordering never affects
// behavior, but a stable order keeps synthesized scripts reproducible.
func Helpers() (string, error) {
	helpersOnce.Do(func() {
		helpersSrc, helpersErr = loadHelpers()
	})
	return helpersSrc, helpersErr
}

func loadHelpers() (string, error) {
	entries, err := fs.ReadDir(helperFiles, "helpers")
	if err != nil {
		return "", fmt.Errorf("failed to read embedded helper scripts: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".js") {
			continue
		}
		names = append(names, entry.Name())
	}
	if len(names) == 0 {
		return "", fmt.Errorf("no helper scripts found in embedded set")
	}
	sort.Strings(names)

	var builder strings.Builder
	for _, name := range names {
		data, err := helperFiles.ReadFile("helpers/" + name)
		if err != nil {
			return "", fmt.Errorf("failed to read helper script %q: %w", name, err)
		}
		builder.Write(data)
		if !strings.HasSuffix(builder.String(), "\n") {
			builder.WriteString("\n")
		}
	}
	return builder.String(), nil
}
