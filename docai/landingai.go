package docai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/healthspectrum/healthspectrum-api/models"
)

const defaultLandingAIURL = "https://api.va.landing.ai"

// analysis of a large PDF can take a while; no retry, a failed vendor call
// fails the request
const vendorTimeout = 90 * time.Second

type landingAIResponse struct {
	Data struct {
		Markdown        string          `json:"markdown"`
		ExtractedSchema json.RawMessage `json:"extracted_schema"`
		Chunks          json.RawMessage `json:"chunks"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// LandingAIClient calls the LandingAI agentic document analysis endpoint.
type LandingAIClient struct {
	httpClient *resty.Client
	apiKey     string
}

// NewLandingAIClient creates a LandingAI client. baseURL is overridable for
// tests; empty selects the production endpoint.
func NewLandingAIClient(baseURL, apiKey string) *LandingAIClient {
	if baseURL == "" {
		baseURL = defaultLandingAIURL
	}
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(vendorTimeout).
		SetHeader("Accept", "application/json")

	return &LandingAIClient{
		httpClient: client,
		apiKey:     apiKey,
	}
}

// Vendor returns the gateway identifier for this client.
func (c *LandingAIClient) Vendor() string { return models.VendorLandingAI }

// Analyze forwards the file as multipart form data and returns the markdown
// plus extracted schema.
func (c *LandingAIClient) Analyze(ctx context.Context, req AnalyzeRequest) (*AnalyzeResult, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("landingai api key is not set")
	}

	r := c.httpClient.R().
		SetContext(ctx).
		SetHeader("Authorization", "Basic "+c.apiKey).
		SetFileReader("pdf", req.FileName, bytes.NewReader(req.Data)).
		SetFormData(map[string]string{
			"include_marginalia":           strconv.FormatBool(req.IncludeMarginalia),
			"include_metadata_in_markdown": strconv.FormatBool(req.IncludeMetadataInMarkdown),
		})
	if len(req.FieldsSchema) > 0 {
		r.SetFormData(map[string]string{"fields_schema": string(req.FieldsSchema)})
	}
	if req.Pages != "" {
		r.SetFormData(map[string]string{"pages": req.Pages})
	}

	resp, err := r.Post("/v1/tools/agentic-document-analysis")
	if err != nil {
		return nil, fmt.Errorf("failed to call landingai: %w", err)
	}
	if resp.IsError() {
		zap.S().Errorw("landingai returned non-2xx",
			"status", resp.StatusCode(),
			"body", resp.String())
		return nil, fmt.Errorf("landingai error (%d): %s", resp.StatusCode(), resp.String())
	}

	var parsed landingAIResponse
	if err := json.Unmarshal(resp.Body(), &parsed); err != nil {
		return nil, fmt.Errorf("failed to unmarshal landingai response: %w", err)
	}
	if len(parsed.Errors) > 0 {
		return nil, fmt.Errorf("landingai error: %s", parsed.Errors[0].Message)
	}

	return &AnalyzeResult{
		Markdown:        parsed.Data.Markdown,
		ExtractedSchema: parsed.Data.ExtractedSchema,
		Raw:             json.RawMessage(resp.Body()),
	}, nil
}
