package services

import (
	"regexp"
	"strings"
	"unicode"
)

// FilterConfig is the immutable pattern set a ContentFilter is built from.
// Injected at construction so tests can swap in a fixture list.
type FilterConfig struct {
	// BannedPhrases are matched as case-insensitive substrings.
	BannedPhrases []string
	// BannedPatterns are structural regexes (personal data, digit runs).
	BannedPatterns []string
	// MaxSymbolRatio is the allowed share of characters outside letters,
	// digits, whitespace and the punctuation allowlist.
	MaxSymbolRatio float64
}

// DefaultFilterConfig carries the production pattern set.
func DefaultFilterConfig() FilterConfig {
	return FilterConfig{
		BannedPhrases: []string{
			// Profanity and slurs
			"fuck", "shit", "ass", "bitch", "cunt", "dick", "cock", "pussy",
			"nigger", "nigga", "faggot", "fag", "retard", "spic", "kike",
			// Spam
			"buy now", "click here", "free money", "make money fast",
			"casino", "lottery", "prize winner",
		},
		BannedPatterns: []string{
			`\b\d{3}-\d{2}-\d{4}\b`,                              // SSN
			`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`, // email
			`\b(?:\d{4}[-\s]?){3}\d{4}\b`,                        // credit card
			`\b\d{10,11}\b`,                                      // phone number
		},
		MaxSymbolRatio: 0.3,
	}
}

// ContentFilter rejects banned phrases and structural patterns. Pure and
// deterministic; the pattern set is compiled once at construction.
type ContentFilter struct {
	phrases        []string
	patterns       []*regexp.Regexp
	maxSymbolRatio float64
}

func NewContentFilter(cfg FilterConfig) (*ContentFilter, error) {
	patterns := make([]*regexp.Regexp, 0, len(cfg.BannedPatterns))
	for _, p := range cfg.BannedPatterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, re)
	}

	phrases := make([]string, 0, len(cfg.BannedPhrases))
	for _, w := range cfg.BannedPhrases {
		phrases = append(phrases, strings.ToLower(w))
	}

	return &ContentFilter{
		phrases:        phrases,
		patterns:       patterns,
		maxSymbolRatio: cfg.MaxSymbolRatio,
	}, nil
}

// IsProhibited reports whether the text matches any banned phrase or
// structural pattern.
func (f *ContentFilter) IsProhibited(text string) bool {
	lower := strings.ToLower(text)
	for _, phrase := range f.phrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	for _, re := range f.patterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// ExceedsSymbolRatio reports whether characters outside letters, digits,
// whitespace and the allowlist .,!?'"()- make up more than the configured
// share of the text. Evaluated independently of IsProhibited.
func (f *ContentFilter) ExceedsSymbolRatio(text string) bool {
	if len(text) == 0 {
		return false
	}
	special := 0
	total := 0
	for _, r := range text {
		total++
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			continue
		}
		switch r {
		case '.', ',', '!', '?', '\'', '"', '(', ')', '-':
			continue
		}
		special++
	}
	return float64(special)/float64(total) > f.maxSymbolRatio
}
