// Package docai wraps the third-party document-understanding vendors
// (LandingAI agentic document analysis, Google Gemini). The vendors do the
// actual OCR/extraction; this package forwards the uploaded file and
// normalizes the response.
package docai

import (
	"context"
	"encoding/json"
)

// AnalyzeRequest carries one uploaded file plus the optional extraction
// flags through to a vendor.
type AnalyzeRequest struct {
	FileName                  string
	ContentType               string
	Data                      []byte
	FieldsSchema              json.RawMessage
	IncludeMarginalia         bool
	IncludeMetadataInMarkdown bool
	Pages                     string
}

// AnalyzeResult is the vendor-neutral extraction result.
type AnalyzeResult struct {
	Markdown        string
	ExtractedSchema json.RawMessage
	Raw             json.RawMessage
}

// Analyzer is a document-analysis vendor. Implementations hold no state
// between calls; retrying a failed analysis simply re-sends the file.
type Analyzer interface {
	Analyze(ctx context.Context, req AnalyzeRequest) (*AnalyzeResult, error)
	Vendor() string
}
