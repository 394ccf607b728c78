package pipeline

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/api/googleapi"
	"google.golang.org/genai"
)

// RetryPolicy bounds the automatic retries on the transient
// resource-exhaustion condition. Anything else fails fast.
type RetryPolicy struct {
	MaxAttempts int
	Delay       time.Duration
}

// IsResourceExhausted classifies an error as the upstream rate/quota limit.
// Only this condition is worth retrying: the quota window passes on its own.
func IsResourceExhausted(err error) bool {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && gerr.Code == http.StatusTooManyRequests {
		return true
	}
	var aerr genai.APIError
	if errors.As(err, &aerr) {
		return aerr.Code == http.StatusTooManyRequests || aerr.Status == "RESOURCE_EXHAUSTED"
	}
	var aperr *genai.APIError
	if errors.As(err, &aperr) {
		return aperr.Code == http.StatusTooManyRequests || aperr.Status == "RESOURCE_EXHAUSTED"
	}
	return false
}

// GenerateWithRetry invokes the generator under the retry policy. Transient
// exhaustion is retried up to policy.MaxAttempts with a fixed delay between
// attempts; any other error returns immediately and is fatal for the item.
// The final transient error is returned wrapped, so the caller can still
// recognize the condition with IsResourceExhausted.
func GenerateWithRetry(ctx context.Context, gen Generator, videoURI string, policy RetryPolicy, clock Clock, log zerolog.Logger) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= policy.MaxAttempts; attempt++ {
		text, err := gen.Generate(ctx, videoURI)
		if err == nil {
			return text, nil
		}
		if !IsResourceExhausted(err) {
			return "", err
		}

		lastErr = err
		log.Warn().
			Str("video_uri", videoURI).
			Int("attempt", attempt).
			Int("max_attempts", policy.MaxAttempts).
			Err(err).
			Msg("Resource exhausted, will retry after delay")

		if attempt < policy.MaxAttempts {
			clock.Sleep(policy.Delay)
		}
	}

	return "", fmt.Errorf("GenerateWithRetry: giving up on %s after %d attempts: %w",
		videoURI, policy.MaxAttempts, lastErr)
}
