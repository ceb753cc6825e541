package docai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/healthspectrum/healthspectrum-api/models"
)

const defaultGeminiURL = "https://generativelanguage.googleapis.com"
const defaultGeminiModel = "gemini-1.5-flash"

const geminiPrompt = `You are a medical document analysis assistant. Read the attached medical document and respond with a single JSON object of the form {"markdown": "<full document content as markdown>", "summary": "<short plain-language summary>"}. Do not include any other text.`

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inline_data,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// GeminiClient calls the Google Gemini generateContent endpoint with the
// file inlined as base64 plus a natural-language extraction prompt.
type GeminiClient struct {
	httpClient *resty.Client
	apiKey     string
	model      string
}

// NewGeminiClient creates a Gemini client. baseURL and model are
// overridable; empty selects the production endpoint and default model.
func NewGeminiClient(baseURL, apiKey, model string) *GeminiClient {
	if baseURL == "" {
		baseURL = defaultGeminiURL
	}
	if model == "" {
		model = defaultGeminiModel
	}
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(vendorTimeout).
		SetHeader("Content-Type", "application/json")

	return &GeminiClient{
		httpClient: client,
		apiKey:     apiKey,
		model:      model,
	}
}

// Vendor returns the gateway identifier for this client.
func (c *GeminiClient) Vendor() string { return models.VendorGemini }

// Analyze sends the file to Gemini and parses the free-text completion. A
// malformed completion does not fail the call: the raw text becomes the
// markdown and a labeled stub summary is substituted.
func (c *GeminiClient) Analyze(ctx context.Context, req AnalyzeRequest) (*AnalyzeResult, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("gemini api key is not set")
	}

	body := geminiRequest{
		Contents: []geminiContent{{
			Parts: []geminiPart{
				{InlineData: &geminiInlineData{
					MimeType: req.ContentType,
					Data:     base64.StdEncoding.EncodeToString(req.Data),
				}},
				{Text: geminiPrompt},
			},
		}},
	}

	var parsed geminiResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParam("key", c.apiKey).
		SetBody(body).
		SetResult(&parsed).
		Post(fmt.Sprintf("/v1beta/models/%s:generateContent", c.model))
	if err != nil {
		return nil, fmt.Errorf("failed to call gemini: %w", err)
	}
	if resp.IsError() {
		zap.S().Errorw("gemini returned non-2xx",
			"status", resp.StatusCode(),
			"body", resp.String())
		return nil, fmt.Errorf("gemini error (%d): %s", resp.StatusCode(), resp.String())
	}
	if parsed.Error != nil {
		return nil, fmt.Errorf("gemini error: %s", parsed.Error.Message)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("gemini returned no candidates")
	}

	text := parsed.Candidates[0].Content.Parts[0].Text
	markdown, schema := parseGeminiCompletion(text)

	return &AnalyzeResult{
		Markdown:        markdown,
		ExtractedSchema: schema,
		Raw:             json.RawMessage(resp.Body()),
	}, nil
}

// parseGeminiCompletion strips markdown code fences and unmarshals the
// JSON-shaped completion. On parse failure the raw text is preserved as the
// markdown and a labeled stub schema is returned.
func parseGeminiCompletion(text string) (string, json.RawMessage) {
	cleaned := StripMarkdownFences(text)

	var shaped struct {
		Markdown string `json:"markdown"`
		Summary  string `json:"summary"`
	}
	if err := json.Unmarshal([]byte(cleaned), &shaped); err == nil && shaped.Markdown != "" {
		schema, _ := json.Marshal(map[string]string{"summary": shaped.Summary})
		return shaped.Markdown, schema
	}

	zap.S().Warn("gemini completion was not valid JSON, falling back to raw text")
	schema, _ := json.Marshal(map[string]string{"summary": "Automatic parsing failed; raw vendor output preserved."})
	return text, schema
}

// StripMarkdownFences removes a surrounding ```json ... ``` (or bare ```)
// fence from a completion.
func StripMarkdownFences(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
