package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/cognicore/rhetor/internal/textclean"
)

func main() {
	var (
		inDir  = flag.String("in", "", "Directory with raw transcripts (required)")
		outDir = flag.String("out", "", "Output directory (required)")
		suffix = flag.String("suffix", "_cleaned", "Suffix appended to cleaned filenames")
	)
	flag.Parse()

	if *inDir == "" {
		log.Fatal("--in required")
	}
	if *outDir == "" {
		log.Fatal("--out required")
	}

	cleaned, err := cleanDir(*inDir, *outDir, *suffix)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("✓ Cleaned %d transcripts to %s", cleaned, *outDir)
}

// cleanDir cleans every raw .txt transcript in inDir into outDir. Files
// already carrying the cleaned suffix are left alone, so running over a
// half-processed directory is safe.
func cleanDir(inDir, outDir, suffix string) (int, error) {
	entries, err := os.ReadDir(inDir)
	if err != nil {
		return 0, fmt.Errorf("read input directory: %w", err)
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return 0, fmt.Errorf("create output directory: %w", err)
	}

	cleaned := 0
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".txt") {
			continue
		}
		if strings.HasSuffix(name, suffix+".txt") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(inDir, name))
		if err != nil {
			log.Printf("Warning: skipping %s: %v", name, err)
			continue
		}
		text := textclean.Clean(string(data))
		outName := outputName(name, suffix)
		if err := os.WriteFile(filepath.Join(outDir, outName), []byte(text), 0644); err != nil {
			return cleaned, fmt.Errorf("write %s: %w", outName, err)
		}
		cleaned++
		log.Printf("Cleaned %s (%d bytes)", outName, len(text))
	}
	if cleaned == 0 {
		return 0, fmt.Errorf("no raw .txt transcripts in %s", inDir)
	}
	return cleaned, nil
}

// outputName appends the cleaned suffix before the .txt extension.
func outputName(name, suffix string) string {
	return strings.TrimSuffix(name, ".txt") + suffix + ".txt"
}
