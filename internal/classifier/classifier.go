// Package classifier decides whether a question asks about a document as a
// whole or about a specific fact inside it.
package classifier

import (
	"regexp"
	"strings"
)

// Intent controls how broadly retrieval searches.
type Intent int

const (
	Specific Intent = iota
	General
)

func (i Intent) String() string {
	if i == General {
		return "general"
	}
	return "specific"
}

// generalPatterns match summarize/overview phrasings. Order is irrelevant: any
// match classifies the question as General.
var generalPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(summari[sz]e|summary|summarization|summarisation)\b`),
	regexp.MustCompile(`\b(overview|outline|gist|synopsis|recap|tl;?dr)\b`),
	regexp.MustCompile(`\bwhat (is|are) (this|these|the|that) (document|documents|file|files|text|paper|report)s? (about|for)\b`),
	regexp.MustCompile(`\bwhat does (this|the|that) (document|file|text|paper|report) (say|contain|cover|describe|discuss)\b`),
	regexp.MustCompile(`\bwhat do (these|the) (documents|files) (say|contain|cover|describe|discuss)\b`),
	regexp.MustCompile(`\b(describe|explain) (this|these|the|that) (document|documents|file|files|text|paper|report)\b`),
	regexp.MustCompile(`\b(main|key) (points|ideas|topics|takeaways|themes|findings)\b`),
	regexp.MustCompile(`\b(tell me|talk) about (this|these|the) (document|documents|file|files)\b`),
	regexp.MustCompile(`\bwhat('s| is) in (this|these|the) (document|documents|file|files)\b`),
	regexp.MustCompile(`\b(high[- ]level|brief|short|quick) (description|introduction|explanation)\b`),
	regexp.MustCompile(`^(summari[sz]e|describe|overview)\b`),
}

// Classify returns General when the trimmed, lower-cased question matches any
// summarization pattern and Specific otherwise.
func Classify(question string) Intent {
	q := strings.ToLower(strings.TrimSpace(question))
	if q == "" {
		return Specific
	}
	for _, p := range generalPatterns {
		if p.MatchString(q) {
			return General
		}
	}
	return Specific
}
