// Package assistant proxies the community chat assistant to the Gemini API,
// grounding the model in the approved glossary so answers stay on-topic.
package assistant

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/PrismarisTech/vine-lingo/internal/model"
	"github.com/PrismarisTech/vine-lingo/internal/store"
	"github.com/PrismarisTech/vine-lingo/pkg/config"
	"github.com/PrismarisTech/vine-lingo/prometheus"
)

const systemInstructionTemplate = `You are an expert assistant for the Amazon Vine program community.
Your goal is to help Vine Voices understand terms, rules, and strategies based on the community glossary.
Always be concise, friendly, and helpful.

Here is the context of the glossary terms available in the app:
---
%s
---

If a user asks about a specific term in the glossary, define it and provide extra context if possible.
If they ask about tax (ETV), remind them you are not a tax professional but explain the general concept of Estimated Tax Value on the 1099-NEC.
If they ask about "Jail", explain the metric requirements to get out.
Keep answers relatively short (under 150 words) unless complex detailed explanation is needed.`

// FallbackReply is returned to the user when the upstream model cannot be
// reached; the chat surface degrades, it does not error out.
const FallbackReply = "Sorry, I encountered an error connecting to the AI service. Please try again later."

// Assistant wraps a Gemini client configured for glossary Q&A.
type Assistant struct {
	client *genai.Client
	model  string
	store  store.TermStore
	logger *zap.Logger
}

// New creates an assistant. A missing API key is reported here so the caller
// can disable the surface instead of failing requests later.
func New(ctx context.Context, cfg *config.AssistantConfig, st store.TermStore, logger *zap.Logger) (*Assistant, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("assistant API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &Assistant{
		client: client,
		model:  cfg.Model,
		store:  st,
		logger: logger,
	}, nil
}

// SendMessage asks the model one question and returns its reply. Upstream
// failures come back as errors; the handler maps them to FallbackReply.
func (a *Assistant) SendMessage(ctx context.Context, message string) (string, error) {
	prometheus.AssistantRequestsCounter.Inc()

	result, err := a.client.Models.GenerateContent(ctx,
		a.model,
		genai.Text(message),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(a.systemInstruction(ctx), genai.RoleUser),
		},
	)
	if err != nil {
		prometheus.AssistantErrorsCounter.Inc()
		a.logger.Error("Assistant generation failed", zap.Error(err))
		return "", fmt.Errorf("generate content: %w", err)
	}

	reply := result.Text()
	if reply == "" {
		return "I couldn't generate a response at this time.", nil
	}
	return reply, nil
}

// systemInstruction grounds the prompt in the live approved glossary, falling
// back to the packaged seed terms when the store is unreachable.
func (a *Assistant) systemInstruction(ctx context.Context) string {
	terms, err := a.store.ListApproved(ctx)
	if err != nil || len(terms) == 0 {
		if err != nil {
			a.logger.Warn("Assistant grounding fetch failed, using packaged glossary", zap.Error(err))
		}
		terms = model.SeedTerms
	}
	return fmt.Sprintf(systemInstructionTemplate, glossaryContext(terms))
}

func glossaryContext(terms []model.Term) string {
	lines := make([]string, 0, len(terms))
	for _, t := range terms {
		lines = append(lines, fmt.Sprintf("%s: %s", t.Term, t.Definition))
	}
	return strings.Join(lines, "\n")
}
