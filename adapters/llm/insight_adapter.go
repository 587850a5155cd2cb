package llm

import (
	"context"
	"log"
	"time"

	"flarelog/ai"
	"flarelog/internal/errors"
	"flarelog/ports"
)

// Config holds LLM adapter configuration
type Config struct {
	Model               string        // e.g., "gpt-4o-mini"
	APIKey              string        // OpenAI API key
	BaseURL             string        // Optional override (default: https://api.openai.com/v1)
	SystemContext       string        // Optional override of the built-in system string
	Temperature         float64       // 0.0-1.0, lower = more deterministic
	MaxTokens           int           // Max tokens in response
	Timeout             time.Duration // Request timeout
	FallbackToHeuristic bool          // Degrade to local synthesis on error
}

// InsightAdapter implements ports.InsightGeneratorPort using an LLM, with
// the fallback synthesizer behind it. One request runs the whole sequence:
// prompt build, generation call, extraction cascade, typed decode. Transport
// failures and extraction failures both funnel into the fallback; the
// adapter never returns a partial result in their place.
type InsightAdapter struct {
	config      Config
	llmClient   ports.LLMClient
	fallbackGen ports.InsightGeneratorPort
}

// NewInsightAdapter creates the LLM-backed generator
func NewInsightAdapter(config Config, fallbackGen ports.InsightGeneratorPort) (*InsightAdapter, error) {
	client, err := newLLMClient(config)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create LLM client")
	}

	return &InsightAdapter{
		config:      config,
		llmClient:   client,
		fallbackGen: fallbackGen,
	}, nil
}

// GenerateInsights implements ports.InsightGeneratorPort
func (a *InsightAdapter) GenerateInsights(ctx context.Context, req ports.InsightRequest) (*ports.InsightGeneration, error) {
	ctx, cancel := context.WithTimeout(ctx, a.config.Timeout)
	defer cancel()

	system, prompt := ai.BuildInsightPrompt(req.Symptoms, req.Medications, req.SymptomNames)
	if a.config.SystemContext != "" {
		system = a.config.SystemContext
	}

	response, err := a.llmClient.ChatCompletion(ctx, system, prompt, a.config.MaxTokens)
	if err != nil {
		log.Printf("[InsightAdapter] Generation call failed: %v", err)
		return a.insightFallback(ctx, req, "transport_error", errors.TransportError("generation", err))
	}

	extraction, err := ai.ExtractArray(response)
	if err != nil {
		log.Printf("[InsightAdapter] Extraction failed for %d-byte response", len(response))
		return a.insightFallback(ctx, req, "extraction_failed", err)
	}

	insights := ai.DecodeInsights(extraction.Elements)
	if len(insights) == 0 {
		// Syntactically valid but useless; local synthesis beats an empty panel
		log.Printf("[InsightAdapter] Extracted array decoded to zero insights (strategy=%s)", extraction.Strategy)
		return a.insightFallback(ctx, req, "empty_result", errors.ExtractionFailed("extracted array contained no usable insights"))
	}
	if len(insights) > ai.InsightCount {
		insights = insights[:ai.InsightCount]
	}

	log.Printf("[InsightAdapter] ✓ %d insights via %s strategy", len(insights), extraction.Strategy)
	return &ports.InsightGeneration{
		Insights: insights,
		Audit: ports.GenerationAudit{
			GeneratorType: ports.GeneratorLLM,
			Model:         a.config.Model,
			Strategy:      extraction.Strategy,
		},
	}, nil
}

// GeneratePatterns implements ports.InsightGeneratorPort
func (a *InsightAdapter) GeneratePatterns(ctx context.Context, req ports.PatternRequest) (*ports.PatternGeneration, error) {
	ctx, cancel := context.WithTimeout(ctx, a.config.Timeout)
	defer cancel()

	system, prompt := ai.BuildPatternPrompt(req.Symptoms, req.Medications, req.SymptomNames, req.TimeRangeMonths)
	if a.config.SystemContext != "" {
		system = a.config.SystemContext
	}

	response, err := a.llmClient.ChatCompletion(ctx, system, prompt, a.config.MaxTokens)
	if err != nil {
		log.Printf("[InsightAdapter] Generation call failed: %v", err)
		return a.patternFallback(ctx, req, "transport_error", errors.TransportError("generation", err))
	}

	extraction, err := ai.ExtractArray(response)
	if err != nil {
		log.Printf("[InsightAdapter] Extraction failed for %d-byte response", len(response))
		return a.patternFallback(ctx, req, "extraction_failed", err)
	}

	patterns := ai.DecodePatterns(extraction.Elements)
	if len(patterns) == 0 {
		log.Printf("[InsightAdapter] Extracted array decoded to zero patterns (strategy=%s)", extraction.Strategy)
		return a.patternFallback(ctx, req, "empty_result", errors.ExtractionFailed("extracted array contained no usable patterns"))
	}
	if len(patterns) > ai.PatternCount {
		patterns = patterns[:ai.PatternCount]
	}

	log.Printf("[InsightAdapter] ✓ %d patterns via %s strategy", len(patterns), extraction.Strategy)
	return &ports.PatternGeneration{
		Patterns: patterns,
		Audit: ports.GenerationAudit{
			GeneratorType: ports.GeneratorLLM,
			Model:         a.config.Model,
			Strategy:      extraction.Strategy,
		},
	}, nil
}

// insightFallback degrades to local synthesis when configured, otherwise
// surfaces the coded error
func (a *InsightAdapter) insightFallback(ctx context.Context, req ports.InsightRequest, cause string, err error) (*ports.InsightGeneration, error) {
	if !a.config.FallbackToHeuristic || a.fallbackGen == nil {
		return nil, err
	}
	gen, fbErr := a.fallbackGen.GenerateInsights(ctx, req)
	if fbErr != nil {
		return nil, fbErr
	}
	gen.Audit.FallbackCause = cause
	return gen, nil
}

func (a *InsightAdapter) patternFallback(ctx context.Context, req ports.PatternRequest, cause string, err error) (*ports.PatternGeneration, error) {
	if !a.config.FallbackToHeuristic || a.fallbackGen == nil {
		return nil, err
	}
	gen, fbErr := a.fallbackGen.GeneratePatterns(ctx, req)
	if fbErr != nil {
		return nil, fbErr
	}
	gen.Audit.FallbackCause = cause
	return gen, nil
}
