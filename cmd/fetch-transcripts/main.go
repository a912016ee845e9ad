package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cognicore/rhetor/internal/textclean"
)

func main() {
	var (
		listPath = flag.String("list", "", "CSV with filename and url columns (required)")
		outDir   = flag.String("out", "transcripts", "Output directory")
		delay    = flag.Duration("delay", 500*time.Millisecond, "Pause between requests")
		timeout  = flag.Duration("timeout", 30*time.Second, "Per-request timeout")
	)
	flag.Parse()

	if *listPath == "" {
		log.Fatal("--list required")
	}

	targets, err := loadTargets(*listPath)
	if err != nil {
		log.Fatal("Failed to load download list: ", err)
	}
	log.Printf("Fetching %d transcripts from %s", len(targets), *listPath)

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		log.Fatal("Failed to create output directory: ", err)
	}

	client := &http.Client{Timeout: *timeout}
	downloaded := 0
	for i, tgt := range targets {
		text, err := fetch(client, tgt.URL)
		if err != nil {
			log.Printf("Failed to fetch %s: %v", tgt.URL, err)
			continue
		}

		path := filepath.Join(*outDir, tgt.Filename)
		if err := os.WriteFile(path, []byte(text), 0644); err != nil {
			log.Fatal("Failed to write ", path, ": ", err)
		}
		downloaded++

		if (i+1)%10 == 0 {
			log.Printf("Fetched %d/%d transcripts", i+1, len(targets))
		}

		// Be nice to the archive
		time.Sleep(*delay)
	}

	log.Printf("✓ Downloaded %d transcripts to %s", downloaded, *outDir)
}

// target is one row of the download list.
type target struct {
	Filename string
	URL      string
}

// loadTargets reads the download list: a CSV with filename and url
// columns, header case-insensitive, extra columns ignored. Rows without
// both values are skipped.
func loadTargets(path string) ([]target, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimPrefix(h, "\uFEFF")
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	fileCol, haveFile := cols["filename"]
	urlCol, haveURL := cols["url"]
	if !haveFile || !haveURL {
		return nil, fmt.Errorf("download list needs filename and url columns, got %v", header)
	}

	var targets []target
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Printf("Warning: skipping malformed row: %v", err)
			continue
		}
		if fileCol >= len(record) || urlCol >= len(record) {
			continue
		}
		name := strings.TrimSpace(record[fileCol])
		u := strings.TrimSpace(record[urlCol])
		if name == "" || u == "" {
			continue
		}
		if !strings.HasSuffix(name, ".txt") {
			name += ".txt"
		}
		targets = append(targets, target{Filename: name, URL: u})
	}
	if len(targets) == 0 {
		return nil, fmt.Errorf("no download targets in %s", path)
	}
	return targets, nil
}

// fetch downloads one transcript page and strips its markup.
func fetch(client *http.Client, url string) (string, error) {
	resp, err := client.Get(url)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return textclean.StripHTML(string(body)), nil
}
