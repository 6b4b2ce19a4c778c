// Package analysis computes the per-title text statistics and amendment age
// buckets stored in the metrics table.
package analysis

import (
	"math"
	"regexp"
	"strings"
	"unicode"

	"github.com/thoas/go-funk"
)

var (
	sentenceEnd = regexp.MustCompile(`[.!?]+(\s|$)`)
	vowelGroups = regexp.MustCompile(`[aeiouy]+`)
)

type TextMetrics struct {
	WordCount             int
	SentenceCount         int
	AverageSentenceLength float64
	ReadabilityScore      float64
	KeywordFrequency      map[string]int
}

// Words splits text on anything that is not a letter, digit or apostrophe.
func Words(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
}

// CountSentences counts terminal punctuation runs. Non-empty text without
// terminal punctuation is one sentence.
func CountSentences(text string) int {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0
	}
	n := len(sentenceEnd.FindAllStringIndex(text, -1))
	if n == 0 || !strings.ContainsAny(text[len(text)-1:], ".!?") {
		n++
	}
	return n
}

// Syllables is a vowel-group estimate, good enough for readability scoring.
func Syllables(word string) int {
	w := strings.ToLower(word)
	if len(w) > 2 && strings.HasSuffix(w, "e") && !strings.HasSuffix(w, "le") {
		w = w[:len(w)-1]
	}
	n := len(vowelGroups.FindAllString(w, -1))
	if n == 0 {
		return 1
	}
	return n
}

// FleschReadingEase returns the Flesch reading ease score rounded to two
// decimals. Zero words or sentences score 0.
func FleschReadingEase(words []string, sentences int) float64 {
	if len(words) == 0 || sentences == 0 {
		return 0
	}
	syllables := 0
	for _, w := range words {
		syllables += Syllables(w)
	}
	score := 206.835 -
		1.015*(float64(len(words))/float64(sentences)) -
		84.6*(float64(syllables)/float64(len(words)))
	return round2(score)
}

// KeywordFrequency counts case-insensitive, whole-phrase occurrences of each
// keyword. Duplicate and blank keywords are dropped.
func KeywordFrequency(text string, keywords []string) map[string]int {
	cleaned := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			cleaned = append(cleaned, k)
		}
	}
	normalized := funk.UniqString(cleaned)
	lowered := " " + strings.Join(Words(strings.ToLower(text)), " ") + " "
	freq := make(map[string]int, len(normalized))
	for _, k := range normalized {
		freq[k] = strings.Count(lowered, " "+strings.Join(Words(k), " ")+" ")
	}
	return freq
}

func ComputeTextMetrics(text string, keywords []string) TextMetrics {
	words := Words(text)
	sentences := CountSentences(text)
	m := TextMetrics{
		WordCount:        len(words),
		SentenceCount:    sentences,
		ReadabilityScore: FleschReadingEase(words, sentences),
		KeywordFrequency: KeywordFrequency(text, keywords),
	}
	if sentences > 0 {
		m.AverageSentenceLength = round2(float64(len(words)) / float64(sentences))
	}
	return m
}

// Merge adds the counts of o into m and recomputes the derived averages
// from the combined counts. Readability is weighted by word count.
func (m TextMetrics) Merge(o TextMetrics) TextMetrics {
	out := TextMetrics{
		WordCount:        m.WordCount + o.WordCount,
		SentenceCount:    m.SentenceCount + o.SentenceCount,
		KeywordFrequency: make(map[string]int, len(m.KeywordFrequency)),
	}
	for k, v := range m.KeywordFrequency {
		out.KeywordFrequency[k] += v
	}
	for k, v := range o.KeywordFrequency {
		out.KeywordFrequency[k] += v
	}
	if out.SentenceCount > 0 {
		out.AverageSentenceLength = round2(float64(out.WordCount) / float64(out.SentenceCount))
	}
	if out.WordCount > 0 {
		out.ReadabilityScore = round2((m.ReadabilityScore*float64(m.WordCount) + o.ReadabilityScore*float64(o.WordCount)) / float64(out.WordCount))
	}
	return out
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
