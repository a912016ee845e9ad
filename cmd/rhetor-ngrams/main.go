package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/cognicore/rhetor/pkg/rhetor"
	"github.com/cognicore/rhetor/pkg/rhetor/report"
	"github.com/cognicore/rhetor/pkg/rhetor/stoplist"
)

func main() {
	var (
		dirA         = flag.String("a", "", "First corpus directory (required)")
		dirB         = flag.String("b", "", "Second corpus directory (required)")
		n            = flag.Int("n", 2, "Gram size")
		minFreq      = flag.Int("min-freq", 0, "Minimum n-gram frequency")
		topK         = flag.Int("top-k", 0, "Result list cap")
		labelA       = flag.String("label-a", "", "First group label (default: directory name)")
		labelB       = flag.String("label-b", "", "Second group label (default: directory name)")
		asJSON       = flag.Bool("json", false, "Emit JSON instead of CSV")
		suggestStops = flag.Bool("suggest-stops", false, "Print stoplist candidates from the common list")
	)
	flag.Parse()

	if *dirA == "" {
		log.Fatal("--a required")
	}
	if *dirB == "" {
		log.Fatal("--b required")
	}
	if *labelA == "" {
		*labelA = filepath.Base(*dirA)
	}
	if *labelB == "" {
		*labelB = filepath.Base(*dirB)
	}

	// The gate is shared with the engine so candidate suggestions skip
	// phrases already stopped.
	gate := stoplist.NewGate()
	engine, err := rhetor.New(rhetor.Options{MinFrequency: *minFreq, TopK: *topK, Gate: gate})
	if err != nil {
		log.Fatal(err)
	}

	corpusA, err := loadCorpus(*dirA)
	if err != nil {
		log.Fatal("Failed to load corpus A: ", err)
	}
	corpusB, err := loadCorpus(*dirB)
	if err != nil {
		log.Fatal("Failed to load corpus B: ", err)
	}
	log.Printf("Comparing %d-grams: %d documents (%s) vs %d documents (%s)",
		*n, len(corpusA), *labelA, len(corpusB), *labelB)

	comp, err := engine.CompareCorpora(corpusA, corpusB, *n)
	if err != nil {
		log.Fatal("Comparison failed: ", err)
	}

	if *suggestStops {
		printCandidates(gate.SuggestCandidates(comp.StoplistStats(), stoplist.Thresholds{}))
		return
	}

	if *asJSON {
		out, err := json.MarshalIndent(comp, "", "  ")
		if err != nil {
			log.Fatal("Failed to marshal comparison: ", err)
		}
		fmt.Println(string(out))
		return
	}

	if err := report.WriteComparisonCSV(os.Stdout, comp, *labelA, *labelB); err != nil {
		log.Fatal("Failed to write comparison: ", err)
	}
}

// loadCorpus reads every .txt file in a directory, one document per file.
func loadCorpus(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var texts []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			log.Printf("Warning: skipping %s: %v", entry.Name(), err)
			continue
		}
		texts = append(texts, string(data))
	}
	if len(texts) == 0 {
		return nil, fmt.Errorf("no .txt files in %s", dir)
	}
	return texts, nil
}

func printCandidates(candidates []stoplist.Candidate) {
	if len(candidates) == 0 {
		fmt.Println("No stoplist candidates found.")
		return
	}
	fmt.Printf("%-35s %9s %7s %7s\n", "PHRASE", "COMBINED", "RATIO", "SCORE")
	for _, c := range candidates {
		fmt.Printf("%-35s %9d %7.2f %7.2f\n", c.Phrase, c.Reason.Combined, c.Reason.Ratio, c.Score)
	}
}
