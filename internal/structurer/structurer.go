// Package structurer turns normalized marksheet text into a schema-shaped
// record by prompting an external language model and validating its output.
package structurer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/google/uuid"

	"github.com/SaiAbhiramBussa/AI-Marksheet-Extraction-API/internal/schema"
	"github.com/SaiAbhiramBussa/AI-Marksheet-Extraction-API/internal/types"
)

// Config tunes the structuring call.
type Config struct {
	Temperature float64
	MaxTokens   int
	// MaxAttempts bounds transport retries for transient failures.
	MaxAttempts uint
	// RetryDelay is the base backoff delay; retry-go adds jitter on top.
	RetryDelay time.Duration
}

func (c Config) withDefaults() Config {
	if c.Temperature == 0 {
		c.Temperature = 0.1
	}
	if c.MaxTokens == 0 {
		c.MaxTokens = 4000
	}
	if c.MaxAttempts == 0 {
		c.MaxAttempts = 3
	}
	if c.RetryDelay == 0 {
		c.RetryDelay = 2 * time.Second
	}
	return c
}

// Structurer drives the model conversation for one document at a time.
type Structurer struct {
	cfg       Config
	transport ChatTransport
	limiter   *RateLimiter
	logger    *slog.Logger
}

// New builds a Structurer. transport must not be nil.
func New(cfg Config, transport ChatTransport, limiter *RateLimiter, logger *slog.Logger) *Structurer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Structurer{
		cfg:       cfg.withDefaults(),
		transport: transport,
		limiter:   limiter,
		logger:    logger,
	}
}

// Structure extracts a schema-shaped draft from normalized marksheet text.
// Transient transport failures are retried up to the configured attempt
// budget. Output that fails schema validation gets exactly one corrective
// follow-up turn before the document is rejected.
func (s *Structurer) Structure(ctx context.Context, text string) (*types.StructuredDraft, error) {
	if s.transport == nil {
		return nil, fmt.Errorf("%w: no model transport configured", types.ErrConfiguration)
	}

	requestID := uuid.NewString()
	logger := s.logger.With("request_id", requestID, "transport", s.transport.Name())

	messages := []string{extractionPrompt(text)}
	output, err := s.converse(ctx, logger, requestID, messages)
	if err != nil {
		return nil, err
	}

	raw, vErr := parseAndValidate(output)
	if vErr != nil {
		logger.Warn("model output failed validation, requesting repair", "error", vErr)
		messages = append(messages, output, repairPrompt(output, vErr))
		output, err = s.converse(ctx, logger, requestID, messages)
		if err != nil {
			return nil, err
		}
		raw, vErr = parseAndValidate(output)
		if vErr != nil {
			return nil, fmt.Errorf("%w: %v", types.ErrSchemaViolation, vErr)
		}
	}

	var draft types.StructuredDraft
	if err := json.Unmarshal(raw, &draft); err != nil {
		return nil, fmt.Errorf("%w: decoding validated output: %v", types.ErrStructuringFailed, err)
	}

	logger.Info("structured marksheet", "subjects", len(draft.Subjects))
	return &draft, nil
}

// parseAndValidate recovers JSON from model output and checks it against
// the marksheet schema.
func parseAndValidate(output string) (json.RawMessage, error) {
	raw, err := parseModelJSON(output)
	if err != nil {
		return nil, err
	}
	if err := schema.ValidateMarksheet(raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// converse performs one logical model turn with bounded transport retries.
func (s *Structurer) converse(ctx context.Context, logger *slog.Logger, requestID string, messages []string) (string, error) {
	var output string
	err := retry.Do(
		func() error {
			if s.limiter != nil {
				if err := s.limiter.Wait(ctx); err != nil {
					return retry.Unrecoverable(err)
				}
			}
			resp, err := s.transport.Complete(ctx, ChatRequest{
				System:      systemPrompt,
				Messages:    messages,
				Temperature: s.cfg.Temperature,
				MaxTokens:   s.cfg.MaxTokens,
				RequestID:   requestID,
			})
			if err != nil {
				if IsTransient(err) {
					return err
				}
				return retry.Unrecoverable(err)
			}
			output = resp
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(s.cfg.MaxAttempts),
		retry.Delay(s.cfg.RetryDelay),
		retry.DelayType(retry.CombineDelay(retry.BackOffDelay, retry.RandomDelay)),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			logger.Warn("model call failed, retrying", "attempt", n+1, "error", err)
		}),
	)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("%w: %v", types.ErrStructuringFailed, err)
	}
	return output, nil
}
