package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/20uf/rexpress/internal/pattern/domain"
)

// Source tells where an artifact came from.
type Source string

const (
	SourceAI       Source = "ai"
	SourceFallback Source = "fallback"
)

const samplePatternLabel = "Pattern detected from sample"

// Request is one generation request. Sample takes precedence for prompting.
type Request struct {
	Description string
	Sample      string
}

// Input is the text stored in history: the description, else the sample.
func (r Request) Input() string {
	if r.Description != "" {
		return r.Description
	}
	return r.Sample
}

func (r Request) normalized() Request {
	return Request{
		Description: strings.TrimSpace(r.Description),
		Sample:      strings.TrimSpace(r.Sample),
	}
}

// Resolution is a validated pattern ready for testing.
type Resolution struct {
	Regex       string
	Description string
	Category    domain.Category
	Source      Source
	Matcher     domain.Matcher
}

// Result is the outcome of a full generation.
type Result struct {
	Resolution
	Tests             []domain.TestResult
	TestSource        Source
	ExplanationHTML   string
	ExplanationSource Source
}

// Options configures a Generator.
type Options struct {
	Engine    domain.Engine
	ProbeWait time.Duration
}

// Generator resolves patterns through the AI collaborator and falls back
// to the offline catalog when it is unavailable or returns garbage.
type Generator struct {
	ai        Collaborator
	log       Logger
	engine    domain.Engine
	probeWait time.Duration
}

// NewGenerator creates a generator. A nil collaborator means the AI is unavailable.
func NewGenerator(ai Collaborator, log Logger, opts Options) *Generator {
	if opts.Engine == "" {
		opts.Engine = domain.EngineRE2
	}
	return &Generator{
		ai:        ai,
		log:       log,
		engine:    opts.Engine,
		probeWait: opts.ProbeWait,
	}
}

// Engine returns the regex dialect patterns are compiled with.
func (g *Generator) Engine() domain.Engine {
	return g.engine
}

func (g *Generator) chat(ctx context.Context, system, prompt string) (string, error) {
	if g.ai == nil {
		return "", domain.ErrCollaboratorUnavailable
	}

	var messages []Message
	if system != "" {
		messages = append(messages, Message{Role: RoleSystem, Content: system})
	}
	messages = append(messages, Message{Role: RoleUser, Content: prompt})

	reply, err := g.ai.Chat(ctx, messages)
	if err != nil {
		if errors.Is(err, domain.ErrCollaboratorUnavailable) {
			return "", err
		}
		return "", fmt.Errorf("%w: %w", domain.ErrCollaboratorUnavailable, err)
	}
	return strings.TrimSpace(reply), nil
}

// Resolve obtains a validated pattern for req, from the collaborator when possible.
func (g *Generator) Resolve(ctx context.Context, req Request) (*Resolution, error) {
	req = req.normalized()
	if req.Description == "" && req.Sample == "" {
		return nil, domain.ErrEmptyInput
	}

	g.log.Record("Pattern hunt started", fmt.Sprintf("T-Rex is stalking: %q", req.Input()))

	prompt := descriptionPrompt(req.Description)
	if req.Sample != "" {
		prompt = samplePrompt(req.Sample)
	}
	g.log.Record("AI request", "Sending prompt: "+truncate(prompt, 100))

	res, err := g.resolveWithAI(ctx, req, prompt)
	if err == nil {
		return res, nil
	}

	g.log.Record("AI error", err.Error())
	return g.resolveOffline(req)
}

func (g *Generator) resolveWithAI(ctx context.Context, req Request, prompt string) (*Resolution, error) {
	raw, err := g.chat(ctx, regexSystemPrompt, prompt)
	if err != nil {
		return nil, err
	}
	g.log.Record("AI response", "Raw response: "+raw)

	pattern := domain.CleanPattern(raw)
	if pattern == "" {
		return nil, domain.ErrEmptyPattern
	}

	m, err := domain.Compile(pattern, g.engine)
	if err != nil {
		return nil, err
	}
	g.log.Record("Regex validation", "✓ Valid regex: "+pattern)

	description := req.Description
	if description == "" {
		description = samplePatternLabel
	}
	category := domain.Classify(req.Description)
	if req.Description == "" {
		category, _ = domain.AnalyzeSample(req.Sample)
	}

	return &Resolution{
		Regex:       pattern,
		Description: description,
		Category:    category,
		Source:      SourceAI,
		Matcher:     m,
	}, nil
}

func (g *Generator) resolveOffline(req Request) (*Resolution, error) {
	var art domain.Artifacts
	if req.Sample != "" {
		art = domain.GenerateFromSample(req.Sample)
	} else {
		art = domain.Generate(domain.Classify(req.Description), req.Description)
	}

	m, err := domain.Compile(art.Regex, g.engine)
	if err != nil {
		g.log.Record("Hunt failed", err.Error())
		return nil, err
	}

	description := req.Description
	if description == "" {
		description = art.Label
	}
	g.log.Record("Fallback pattern", fmt.Sprintf("%s (%s)", art.Regex, art.Category))

	return &Resolution{
		Regex:       art.Regex,
		Description: description,
		Category:    art.Category,
		Source:      SourceFallback,
		Matcher:     m,
	}, nil
}

// Load rebuilds a resolution for a stored pattern without contacting the collaborator.
func (g *Generator) Load(regex, description string) (*Resolution, error) {
	m, err := domain.Compile(regex, g.engine)
	if err != nil {
		return nil, err
	}
	return &Resolution{
		Regex:       regex,
		Description: description,
		Category:    domain.Classify(description),
		Source:      SourceFallback,
		Matcher:     m,
	}, nil
}

// Test synthesizes test strings for res and runs them.
func (g *Generator) Test(ctx context.Context, res *Resolution) ([]domain.TestResult, Source) {
	cases, source := g.testCases(ctx, res)

	results := domain.Evaluate(res.Matcher, cases)
	for _, r := range results {
		g.log.Record("Test case", fmt.Sprintf("Input: %q, Result: %s", r.Input, r.Summary()))
	}
	return results, source
}

func (g *Generator) testCases(ctx context.Context, res *Resolution) ([]string, Source) {
	raw, err := g.chat(ctx, testCaseSystemPrompt, testCasePrompt(res.Regex, res.Description))
	if err != nil {
		g.log.Record("AI test generation failed", err.Error())
		return domain.TestCases(res.Category), SourceFallback
	}
	g.log.Record("AI test response", "Raw test cases: "+truncate(raw, 200))

	cases := domain.ParseTestCases(raw)
	if len(cases) == 0 {
		g.log.Record("AI test generation failed", "empty reply")
		return domain.TestCases(res.Category), SourceFallback
	}
	g.log.Record("AI test cases", fmt.Sprintf("Generated %d test cases", len(cases)))
	return cases, SourceAI
}

// Explain produces explanation HTML for res.
func (g *Generator) Explain(ctx context.Context, res *Resolution) (string, Source) {
	raw, err := g.chat(ctx, explanationSystemPrompt, explanationPrompt(res.Regex, res.Description))
	if err == nil {
		if explanation := domain.SanitizeExplanation(raw); explanation != "" {
			g.log.Record("Explanation generated", "AI-powered explanation created")
			return explanation, SourceAI
		}
		err = errors.New("empty explanation")
	}

	g.log.Record("Explanation error", "Fallback used: "+err.Error())
	return domain.Explain(res.Regex, res.Description, res.Category), SourceFallback
}

// Generate runs resolve, test and explain in sequence.
func (g *Generator) Generate(ctx context.Context, req Request) (*Result, error) {
	res, err := g.Resolve(ctx, req)
	if err != nil {
		return nil, err
	}

	tests, testSource := g.Test(ctx, res)
	explanation, explanationSource := g.Explain(ctx, res)

	return &Result{
		Resolution:        *res,
		Tests:             tests,
		TestSource:        testSource,
		ExplanationHTML:   explanation,
		ExplanationSource: explanationSource,
	}, nil
}

// Probe checks that the collaborator answers. When the first attempt
// fails it waits ProbeWait and tries once more.
func (g *Generator) Probe(ctx context.Context) (string, error) {
	reply, err := g.chat(ctx, "", probePrompt)
	if err != nil && g.probeWait > 0 {
		g.log.Record("AI status", "AI not yet available, waiting...")
		timer := time.NewTimer(g.probeWait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return "", ctx.Err()
		case <-timer.C:
		}
		reply, err = g.chat(ctx, "", probePrompt)
	}

	if err != nil {
		g.log.Record("AI status", "✗ Connection failed: "+err.Error())
		return "", err
	}
	g.log.Record("AI status", "✓ Connected successfully. Response: "+reply)
	return reply, nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
