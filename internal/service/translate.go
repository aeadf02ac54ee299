package service

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	translate "google.golang.org/api/translate/v2"

	"spendly-backend/internal/domain"
)

// googleTranslator translates category names through the Google Translate
// v2 REST API. It satisfies Translator; callers fall back to the original
// text on any error, so this implementation never needs to.
type googleTranslator struct {
	apiKey string
}

func NewGoogleTranslator(apiKey string) Translator {
	return &googleTranslator{apiKey: apiKey}
}

func (t *googleTranslator) Translate(ctx context.Context, text string, from, to domain.Lang) (string, error) {
	svc, err := translate.NewService(ctx, option.WithAPIKey(t.apiKey))
	if err != nil {
		return "", fmt.Errorf("failed to create translate client: %w", err)
	}

	call := svc.Translations.List([]string{text}, string(to)).
		Source(string(from)).
		Format("text").
		Context(ctx)
	resp, err := call.Do()
	if err != nil {
		return "", fmt.Errorf("translation request failed: %w", err)
	}
	if len(resp.Translations) == 0 {
		return "", fmt.Errorf("translation returned no result")
	}
	return resp.Translations[0].TranslatedText, nil
}

// noopTranslator is used when the translator is disabled in configuration.
// It reports an error so callers keep the original text for both languages.
type noopTranslator struct{}

func NewNoopTranslator() Translator {
	return noopTranslator{}
}

func (noopTranslator) Translate(ctx context.Context, text string, from, to domain.Lang) (string, error) {
	return "", fmt.Errorf("translator is disabled")
}
