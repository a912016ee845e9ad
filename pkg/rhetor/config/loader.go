package config

import (
	"fmt"

	"github.com/cognicore/rhetor/pkg/rhetor/detect"
	"github.com/cognicore/rhetor/pkg/rhetor/ingest"
	"github.com/cognicore/rhetor/pkg/rhetor/stoplist"
)

// Loader loads the configuration files and constructs components.
type Loader struct {
	ConfigPath   string
	StoplistPath string
}

// Components holds everything built from configuration.
type Components struct {
	Config    Config
	Tokenizer *ingest.Tokenizer
	Gate      *stoplist.Gate
	AntiElite *detect.AntiElite
	Crisis    *detect.Crisis
	Certainty *detect.Certainty
}

// Load reads the configured files and returns initialized components.
// Every path is optional; what is absent falls back to built-ins.
func (l *Loader) Load() (*Components, error) {
	comp := &Components{}

	if l.ConfigPath != "" {
		cfg, err := Load(l.ConfigPath)
		if err != nil {
			return nil, err
		}
		comp.Config = cfg
	} else {
		comp.Config = Default()
	}

	if len(comp.Config.Tokenizer.Blacklist) > 0 {
		comp.Tokenizer = ingest.NewTokenizerWithBlacklist(comp.Config.Tokenizer.Blacklist)
	} else {
		comp.Tokenizer = ingest.NewTokenizer()
	}

	comp.Gate = stoplist.NewGate()
	addStops(comp.Gate, comp.Config.Stoplist.Bigrams, comp.Config.Stoplist.Trigrams, comp.Config.FunctionWords)
	if l.StoplistPath != "" {
		sl, err := LoadStoplistFile(l.StoplistPath)
		if err != nil {
			return nil, err
		}
		addStops(comp.Gate, sl.Bigrams, sl.Trigrams, sl.FunctionWords)
	}

	var err error
	if comp.AntiElite, err = antiEliteFor(comp.Config.Lexicons.AntiElite); err != nil {
		return nil, err
	}
	if comp.Crisis, err = crisisFor(comp.Config.Lexicons.Crisis); err != nil {
		return nil, err
	}
	if comp.Certainty, err = certaintyFor(comp.Config.Lexicons.Certainty); err != nil {
		return nil, err
	}

	return comp, nil
}

func addStops(gate *stoplist.Gate, bigrams, trigrams, functionWords []string) {
	for _, p := range bigrams {
		gate.AddStop(2, p)
	}
	for _, p := range trigrams {
		gate.AddStop(3, p)
	}
	for _, w := range functionWords {
		gate.AddFunctionWord(w)
	}
}

func antiEliteFor(path string) (*detect.AntiElite, error) {
	if path == "" {
		return detect.NewAntiElite(), nil
	}
	lex, err := detect.LoadLexicon(path)
	if err != nil {
		return nil, fmt.Errorf("load anti-elite lexicon: %w", err)
	}
	return detect.NewAntiEliteWithLexicon(lex), nil
}

func crisisFor(path string) (*detect.Crisis, error) {
	if path == "" {
		return detect.NewCrisis(), nil
	}
	lex, err := detect.LoadLexicon(path)
	if err != nil {
		return nil, fmt.Errorf("load crisis lexicon: %w", err)
	}
	return detect.NewCrisisWithLexicon(lex), nil
}

func certaintyFor(path string) (*detect.Certainty, error) {
	if path == "" {
		return detect.NewCertainty(), nil
	}
	lex, err := detect.LoadLexicon(path)
	if err != nil {
		return nil, fmt.Errorf("load certainty lexicon: %w", err)
	}
	return detect.NewCertaintyWithLexicon(lex), nil
}
