package speeches

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/abadojack/whatlanggo"

	"github.com/cognicore/rhetor/pkg/rhetor/internalerr"
)

// Speech is one corpus entry: the metadata row plus, once loaded, the
// speech text itself.
type Speech struct {
	ID               string `json:"text_id"`
	Filename         string `json:"filename"`
	OriginalFilename string `json:"original_filename"`
	Speaker          string `json:"speaker"`
	Party            string `json:"party"`
	Country          string `json:"country"`
	Date             string `json:"date"`
	Year             string `json:"year"`
	Category         string `json:"category"`
	Language         string `json:"language,omitempty"`
	Text             string `json:"-"`
}

// LoadOptions controls how LoadTexts reads speech files.
type LoadOptions struct {
	// DetectLanguage runs language detection on each loaded text and
	// tags speeches that are reliably not English.
	DetectLanguage bool
}

// LoadMetadata reads the corpus metadata CSV. Header names are matched
// case-insensitively; columns a row does not carry come back as "Unknown".
func LoadMetadata(path string) ([]Speech, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open metadata %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("metadata %s is empty: %w", path, internalerr.ErrInvalidInput)
	}
	if err != nil {
		return nil, fmt.Errorf("read metadata header %s: %w", path, err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimPrefix(h, "\uFEFF")
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := cols["filename"]; !ok {
		return nil, fmt.Errorf("metadata %s has no filename column: %w", path, internalerr.ErrInvalidInput)
	}

	var out []Speech
	for line := 2; ; line++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Printf("Warning: skipping malformed row at line %d in %s: %v", line, path, err)
			continue
		}

		original := field(record, cols, "filename")
		out = append(out, Speech{
			ID:               field(record, cols, "text_id"),
			Filename:         CleanedFilename(original),
			OriginalFilename: original,
			Speaker:          field(record, cols, "speaker"),
			Party:            field(record, cols, "party"),
			Country:          field(record, cols, "country"),
			Date:             field(record, cols, "date"),
			Year:             YearFromDate(field(record, cols, "date")),
			Category:         field(record, cols, "category"),
		})
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("metadata %s has no rows: %w", path, internalerr.ErrInvalidInput)
	}
	return out, nil
}

// CleanedFilename maps a raw filename onto the preprocessed variant the
// corpus directory holds. Already-cleaned names pass through unchanged.
func CleanedFilename(name string) string {
	if strings.HasSuffix(name, "_cleaned.txt") {
		return name
	}
	if strings.HasSuffix(name, ".txt") {
		return strings.TrimSuffix(name, ".txt") + "_cleaned.txt"
	}
	return name + "_cleaned.txt"
}

// YearFromDate pulls the year out of a DD/MM/YYYY date string.
func YearFromDate(date string) string {
	parts := strings.Split(date, "/")
	if len(parts) == 3 && parts[2] != "" {
		return parts[2]
	}
	return "Unknown"
}

// LoadTexts fills in the Text field of each speech from its file under
// dir. Speeches whose file is missing are skipped with a warning; the
// returned slice holds only the speeches that loaded. It is an error
// for the whole corpus to come up empty.
func LoadTexts(dir string, metadata []Speech, opts LoadOptions) ([]Speech, error) {
	var out []Speech
	for _, sp := range metadata {
		path := filepath.Join(dir, sp.Filename)
		data, err := os.ReadFile(path)
		if err != nil {
			log.Printf("Warning: skipping %s (%s): %v", sp.Filename, sp.Speaker, err)
			continue
		}
		sp.Text = string(data)
		if opts.DetectLanguage {
			sp.Language = detectLanguage(sp.Text)
			if sp.Language != "" {
				log.Printf("Warning: %s looks like %s, not English", sp.Filename, sp.Language)
			}
		}
		out = append(out, sp)
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("no speech texts found in %s: %w", dir, internalerr.ErrNotFound)
	}
	return out, nil
}

// SplitByCategory partitions loaded speech texts into two groups by
// category label, preserving metadata order within each group.
func SplitByCategory(loaded []Speech, labelA, labelB string) (groupA, groupB []string) {
	for _, sp := range loaded {
		switch sp.Category {
		case labelA:
			groupA = append(groupA, sp.Text)
		case labelB:
			groupB = append(groupB, sp.Text)
		}
	}
	return groupA, groupB
}

// detectLanguage returns the detected language name when the text is
// reliably something other than English, and "" otherwise.
func detectLanguage(text string) string {
	info := whatlanggo.Detect(text)
	if info.Lang != whatlanggo.Eng && info.IsReliable() {
		return info.Lang.String()
	}
	return ""
}

func field(record []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(record) {
		return "Unknown"
	}
	v := strings.TrimSpace(record[i])
	if v == "" {
		return "Unknown"
	}
	return v
}
