package retry

import (
	"context"
	"math"
	"time"
)

// Config holds the configuration for retry logic
type Config struct {
	MaxRetries      int
	BaseDelay       time.Duration
	MaxDelay        time.Duration
	BackoffMultiple float64
}

// DefaultConfig returns a backoff configuration for callers that opt into retries
func DefaultConfig() Config {
	return Config{
		MaxRetries:      3,
		BaseDelay:       200 * time.Millisecond,
		MaxDelay:        5 * time.Second,
		BackoffMultiple: 2.0,
	}
}

// NoRetry returns a configuration that performs exactly one attempt
func NoRetry() Config {
	cfg := DefaultConfig()
	cfg.MaxRetries = 0
	return cfg
}

// ErrorChecker decides whether an attempt's outcome should trigger a retry
type ErrorChecker func(err error, statusCode int, responseBody []byte) bool

// RetryableFunc is a single attempt of the operation being retried
type RetryableFunc[T any] func(attempt int) (result T, statusCode int, responseBody []byte, err error)

// Logger receives printf-style retry progress messages
type Logger func(message string, args ...any)

// Options configures retry behavior
type Options struct {
	Config       Config
	ErrorChecker ErrorChecker
	Logger       Logger
	APIName      string
}

// delay computes the exponential backoff for the given retry number, capped at MaxDelay
func (c Config) delay(retryNumber int) time.Duration {
	multiple := c.BackoffMultiple
	if multiple <= 0 {
		multiple = 1
	}
	d := time.Duration(float64(c.BaseDelay) * math.Pow(multiple, float64(retryNumber)))
	if c.MaxDelay > 0 && d > c.MaxDelay {
		d = c.MaxDelay
	}
	return d
}

func (o Options) logf(message string, args ...any) {
	if o.Logger != nil {
		o.Logger(message, args...)
	}
}

// Execute runs fn until it succeeds, returns a non-retryable error, or retries run out
func Execute[T any](ctx context.Context, opts Options, fn RetryableFunc[T]) (T, error) {
	var zero T
	var lastErr error
	var lastStatusCode int
	var lastResponseBody []byte
	attempts := opts.Config.MaxRetries + 1

	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			d := opts.Config.delay(attempt - 1)
			opts.logf("%s API retry attempt %d/%d after %v delay", opts.APIName, attempt+1, attempts, d)

			timer := time.NewTimer(d)
			select {
			case <-ctx.Done():
				timer.Stop()
				return zero, ctx.Err()
			case <-timer.C:
			}
		}

		result, statusCode, responseBody, err := fn(attempt)
		lastErr = err
		lastStatusCode = statusCode
		lastResponseBody = responseBody

		retryable := opts.ErrorChecker != nil && opts.ErrorChecker(err, statusCode, responseBody)
		if retryable && attempt < attempts-1 {
			if err != nil {
				opts.logf("%s API error (attempt %d/%d): %v", opts.APIName, attempt+1, attempts, err)
			} else {
				opts.logf("%s API retryable response (attempt %d/%d): status %d", opts.APIName, attempt+1, attempts, statusCode)
			}
			continue
		}

		if err == nil && !retryable {
			if attempt > 0 {
				opts.logf("%s API request succeeded on attempt %d/%d", opts.APIName, attempt+1, attempts)
			}
			return result, nil
		}

		if err != nil {
			return zero, err
		}
		break
	}

	if lastErr != nil {
		return zero, lastErr
	}

	return zero, &RetryExhaustedError{
		APIName:        opts.APIName,
		MaxAttempts:    attempts,
		LastStatusCode: lastStatusCode,
		LastResponse:   lastResponseBody,
	}
}

// RetryExhaustedError is returned when every attempt produced a retryable response
type RetryExhaustedError struct {
	APIName        string
	MaxAttempts    int
	LastStatusCode int
	LastResponse   []byte
}

func (e *RetryExhaustedError) Error() string {
	return "retry attempts exhausted for " + e.APIName + " API"
}
