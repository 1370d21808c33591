package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/FrenchMajesty/geo-compliance/internal/retry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// isRetryableError determines if an attempt should be retried
func (c *OpenAIClient) isRetryableError(err error, statusCode int, responseBody []byte) bool {
	// Network errors
	if err != nil && statusCode == 0 {
		return true
	}

	if statusCode >= 500 || statusCode == http.StatusTooManyRequests {
		return true
	}

	// Some OpenAI-compatible providers report generation failures inside a 200
	if statusCode == http.StatusOK && responseBody != nil {
		var errorResp ChatCompletionResponseError
		if json.Unmarshal(responseBody, &errorResp) == nil {
			if errorResp.Error.FailedGeneration != "" ||
				strings.Contains(errorResp.Error.Message, "failed_generation") {
				return true
			}
		}

		if bytes.Contains(responseBody, []byte("failed_generation")) {
			return true
		}
	}

	return false
}

// createAndRunRetryableRequest executes an HTTP request under the client's retry policy
func (c *OpenAIClient) createAndRunRetryableRequest(ctx context.Context, url string, requestBody any, apiName string) ([]byte, error) {
	opts := retry.Options{
		Config:       c.RetryConfig,
		ErrorChecker: c.isRetryableError,
		Logger:       c.logger().Sugar().Infof,
		APIName:      "OpenAI " + apiName,
	}

	return retry.Execute(ctx, opts, c.buildRetryableFn(ctx, url, requestBody, apiName))
}

// buildRetryableFn builds a single HTTP attempt for the given request body
func (c *OpenAIClient) buildRetryableFn(ctx context.Context, url string, requestBody any, apiName string) retry.RetryableFunc[[]byte] {
	return func(attempt int) ([]byte, int, []byte, error) {
		body, err := json.Marshal(requestBody)
		if err != nil {
			return nil, 0, nil, fmt.Errorf("failed to marshal %s request: %w", apiName, err)
		}

		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
		if err != nil {
			return nil, 0, nil, fmt.Errorf("failed to create HTTP request: %w", err)
		}
		httpReq.Header.Set("Authorization", "Bearer "+c.APIKey)
		httpReq.Header.Set("Content-Type", "application/json")

		httpClient := c.HTTPClient
		if httpClient == nil {
			httpClient = http.DefaultClient
		}

		resp, err := httpClient.Do(httpReq)
		if err != nil {
			return nil, 0, nil, err
		}
		defer resp.Body.Close()

		bodyBytes, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, resp.StatusCode, nil, fmt.Errorf("failed to read %s response body: %w", apiName, err)
		}

		if chatReq, ok := requestBody.(ChatCompletionRequest); ok && c.DumpRequests {
			c.saveResponseToFile(chatReq, bodyBytes, resp.StatusCode)
		}

		if resp.StatusCode != http.StatusOK {
			return nil, resp.StatusCode, bodyBytes, &ChatCompletionError{
				Message:    fmt.Sprintf("openai %s API error %d", apiName, resp.StatusCode),
				StatusCode: resp.StatusCode,
				RawBody:    json.RawMessage(bodyBytes),
			}
		}

		return bodyBytes, resp.StatusCode, bodyBytes, nil
	}
}

// saveResponseToFile writes the request/response pair under DumpDir/<model>/ for debugging
func (c *OpenAIClient) saveResponseToFile(req ChatCompletionRequest, bodyBytes []byte, statusCode int) string {
	log := c.logger()

	dir := c.DumpDir
	if dir == "" {
		dir = defaultDumpDir
	}
	modelDir := filepath.Join(dir, req.Model)
	if err := os.MkdirAll(modelDir, 0755); err != nil {
		log.Warn("failed to create dump directory", zap.String("dir", modelDir), zap.Error(err))
		return ""
	}

	var responseBody any
	if err := json.Unmarshal(bodyBytes, &responseBody); err != nil {
		responseBody = string(bodyBytes)
	}

	jsonData, err := json.MarshalIndent(map[string]any{
		"request":  req,
		"response": responseBody,
		"status":   statusCode,
	}, "", "  ")
	if err != nil {
		log.Warn("failed to marshal dump", zap.Error(err))
		return ""
	}

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("openai_req_%s_%s.json", timestamp, uuid.New().String()[:8])
	path := filepath.Join(modelDir, filename)
	if err := os.WriteFile(path, jsonData, 0644); err != nil {
		log.Warn("failed to write dump", zap.String("path", path), zap.Error(err))
		return ""
	}

	return path
}
