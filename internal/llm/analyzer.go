package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ecfr-analyzer/ecfr-analyzer/internal/config"
	"github.com/ecfr-analyzer/ecfr-analyzer/internal/store/model"
)

const DefaultSystemPrompt = `You are an expert in U.S. federal regulations. You review one section of the
Code of Federal Regulations at a time and respond with a single JSON object:
{
  "summary": "<two or three plain-language sentences>",
  "antiquatedScore": <integer 1-100, how outdated the language, references or requirements are>,
  "antiquatedExplanation": "<why>",
  "businessUnfriendlyScore": <integer 1-100, how burdensome the section is for businesses>,
  "businessUnfriendlyExplanation": "<why>"
}
Use the full 1-100 range. Respond with JSON only.`

// ErrInvalidAnalysis is returned when the model output cannot be used.
type ErrInvalidAnalysis struct {
	error
}

func NewErrInvalidAnalysis(format string, args ...any) *ErrInvalidAnalysis {
	return &ErrInvalidAnalysis{fmt.Errorf(format, args...)}
}

type SectionResult struct {
	Summary                       string `json:"summary"`
	AntiquatedScore               int    `json:"antiquatedScore"`
	AntiquatedExplanation         string `json:"antiquatedExplanation"`
	BusinessUnfriendlyScore       int    `json:"businessUnfriendlyScore"`
	BusinessUnfriendlyExplanation string `json:"businessUnfriendlyExplanation"`

	Model       string  `json:"-"`
	Temperature float64 `json:"-"`
}

// Analyzer scores one section document.
type Analyzer interface {
	AnalyzeSection(ctx context.Context, doc model.Document) (*SectionResult, error)
}

type SectionAnalyzer struct {
	completer   Completer
	truncator   *Truncator
	system      string
	model       string
	temperature float64
}

// Make sure we conform to Analyzer interface
var _ Analyzer = (*SectionAnalyzer)(nil)

func NewSectionAnalyzer(completer Completer, cfg *config.Config) *SectionAnalyzer {
	system := cfg.Analysis.SystemPrompt
	if strings.TrimSpace(system) == "" {
		system = DefaultSystemPrompt
	}
	return &SectionAnalyzer{
		completer:   completer,
		truncator:   NewTruncator(cfg.LLM.MaxInputTokens),
		system:      system,
		model:       cfg.LLM.DefaultModel,
		temperature: cfg.LLM.Temperature,
	}
}

func (a *SectionAnalyzer) AnalyzeSection(ctx context.Context, doc model.Document) (*SectionResult, error) {
	prompt := fmt.Sprintf("Title %d, Section %s: %s\n\n%s",
		doc.TitleNumber, doc.SectionIdentifier, doc.Heading, a.truncator.Truncate(doc.Content))

	resp, err := a.completer.Complete(ctx, CompletionRequest{
		System:      a.system,
		Prompt:      prompt,
		Model:       a.model,
		Temperature: a.temperature,
		JSON:        true,
	})
	if err != nil {
		return nil, err
	}

	result, err := ParseSectionResult(resp.Content)
	if err != nil {
		return nil, err
	}
	result.Model = a.model
	if resp.Model != "" {
		result.Model = resp.Model
	}
	result.Temperature = a.temperature
	return result, nil
}

// ParseSectionResult decodes the model output. Code fences around the JSON
// are tolerated; scores must be integers on the 1-100 scale.
func ParseSectionResult(content string) (*SectionResult, error) {
	content = stripFences(content)
	var raw struct {
		Summary                       string      `json:"summary"`
		AntiquatedScore               json.Number `json:"antiquatedScore"`
		AntiquatedExplanation         string      `json:"antiquatedExplanation"`
		BusinessUnfriendlyScore       json.Number `json:"businessUnfriendlyScore"`
		BusinessUnfriendlyExplanation string      `json:"businessUnfriendlyExplanation"`
	}
	dec := json.NewDecoder(strings.NewReader(content))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, NewErrInvalidAnalysis("malformed analysis JSON: %v", err)
	}

	antiquated, err := parseScore("antiquatedScore", raw.AntiquatedScore)
	if err != nil {
		return nil, err
	}
	unfriendly, err := parseScore("businessUnfriendlyScore", raw.BusinessUnfriendlyScore)
	if err != nil {
		return nil, err
	}
	return &SectionResult{
		Summary:                       raw.Summary,
		AntiquatedScore:               antiquated,
		AntiquatedExplanation:         raw.AntiquatedExplanation,
		BusinessUnfriendlyScore:       unfriendly,
		BusinessUnfriendlyExplanation: raw.BusinessUnfriendlyExplanation,
	}, nil
}

func parseScore(field string, n json.Number) (int, error) {
	if n == "" {
		return 0, NewErrInvalidAnalysis("%s missing", field)
	}
	v, err := n.Int64()
	if err != nil {
		return 0, NewErrInvalidAnalysis("%s is not an integer: %s", field, n)
	}
	if !model.ValidScore(int(v)) {
		return 0, NewErrInvalidAnalysis("%s out of range: %d", field, v)
	}
	return int(v), nil
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
