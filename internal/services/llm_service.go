package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/justsurfingit/job-seeker-api/internal/models"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
)

// maxRawContent bounds what we send to the model.
const maxRawContent = 20000

var ErrEmptyContent = errors.New("raw content is empty")

const jobExtractionPrompt = `
You are an expert Job Data Extraction Agent. Your task is to analyze the provided raw HTML/Text from a job posting and extract structured data.

### INSTRUCTIONS:
1. **Analyze** the text to identify the core job details.
2. **Ignore** navigation menus, footers, "similar jobs" lists, and site advertisements.
3. **Extract** the following fields strictly.
4. **Format** the output as valid JSON only. Do not wrap the output in markdown code blocks.

### OUTPUT SCHEMA:
{
    "title": "Job title (e.g., Senior Backend Engineer)",
    "company": "Name of the company (e.g., Google, StartupInc)",
    "location": "Job location or 'Remote'",
    "company_logo": "Absolute URL of the company logo if present, otherwise null",
    "description": "A clean summary of the job. Focus on Responsibilities and Requirements. Remove HTML tags.",
    "job_type": "Full-time, Part-time, Contract or Internship",
    "salary_range": "The salary string if explicitly mentioned (e.g., '$100k - $150k'), otherwise null",
    "requirements": ["Array", "of", "requirements", "or", "technologies"]
}

### CONSTRAINT:
If a piece of information is missing, set the value to null. Do not hallucinate or guess.

### RAW CONTENT:
%s
`

// LLMService turns raw job postings into job documents.
type LLMService struct {
	Client llms.Model
}

// NewLLMService builds the Google AI backed client.
func NewLLMService(ctx context.Context, apiKey, model string) (*LLMService, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is empty")
	}

	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &LLMService{
		Client: llm,
	}, nil
}

// ExtractJob asks the model for the posting's fields and returns them as a
// job ready to be posted to /addJob. Fields the model left null are dropped.
func (s *LLMService) ExtractJob(ctx context.Context, rawHTML, sourceURL string) (models.Job, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return models.Job{}, ErrEmptyContent
	}
	if len(rawHTML) > maxRawContent {
		rawHTML = rawHTML[:maxRawContent]
	}

	resp, err := llms.GenerateFromSinglePrompt(ctx, s.Client, fmt.Sprintf(jobExtractionPrompt, rawHTML))
	if err != nil {
		return models.Job{}, fmt.Errorf("generate extraction: %w", err)
	}

	var doc map[string]any
	if err := json.Unmarshal([]byte(stripCodeFence(resp)), &doc); err != nil {
		return models.Job{}, fmt.Errorf("parse extraction output: %w", err)
	}
	for k, v := range doc {
		if v == nil {
			delete(doc, k)
		}
	}
	if _, ok := doc["job_link"]; !ok && sourceURL != "" {
		doc["job_link"] = sourceURL
	}

	return models.JobFromDocument(doc), nil
}

// stripCodeFence removes a ```json ... ``` wrapper models add despite being told not to.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
