package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"finboard/internal/models"
)

// DefaultOpenAIURL is the chat completions API root.
const DefaultOpenAIURL = "https://api.openai.com/v1"

const analysisPrompt = `You are a personal finance analyst for users in India. Amounts are in INR.
Given a JSON object {"expenses": [...], "income": number}, respond with a JSON object only:
{"spendingSummary": string, "categoryBreakdown": [{"category": string, "amount": number, "percentage": number}],
"areasForImprovement": [string], "potentialSavings": number}.`

const advicePrompt = `You are a friendly financial advisor for users in India. Using the user's salary,
tax regime (new or old), needs/wants/savings budget split and spending analysis, give concise,
practical advice in plain text. Mention tax-saving options only when they apply to the regime.`

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatChoice struct {
	Message chatMessage `json:"message"`
}

type chatResponse struct {
	Choices []chatChoice `json:"choices"`
}

// OpenAIClient implements Analyzer with an OpenAI-compatible chat
// completions endpoint.
type OpenAIClient struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

var _ Analyzer = (*OpenAIClient)(nil)

// NewOpenAIClient returns a chat completions client. An empty baseURL uses
// DefaultOpenAIURL.
func NewOpenAIClient(baseURL, apiKey, model string, timeout time.Duration) *OpenAIClient {
	if baseURL == "" {
		baseURL = DefaultOpenAIURL
	}
	return &OpenAIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		client:  newHTTPClient(timeout),
	}
}

func (c *OpenAIClient) complete(ctx context.Context, system string, input interface{}, jsonOutput bool) (string, error) {
	userContent, err := json.Marshal(input)
	if err != nil {
		return "", fmt.Errorf("failed to encode prompt input: %w", err)
	}

	req := chatRequest{
		Model:       c.model,
		Temperature: 0.3,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: string(userContent)},
		},
	}
	if jsonOutput {
		req.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	var resp chatResponse
	if err := postJSON(ctx, c.client, c.baseURL+"/chat/completions", c.apiKey, req, &resp); err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", ErrEmptyResponse
	}
	return resp.Choices[0].Message.Content, nil
}

// AnalyzeSpending asks the model for a structured analysis.
func (c *OpenAIClient) AnalyzeSpending(ctx context.Context, req models.AnalysisRequest) (*models.AnalysisResult, error) {
	content, err := c.complete(ctx, analysisPrompt, req, true)
	if err != nil {
		return nil, err
	}
	var result models.AnalysisResult
	if err := json.Unmarshal([]byte(stripFence(content)), &result); err != nil {
		return nil, fmt.Errorf("failed to parse analysis: %w", err)
	}
	return &result, nil
}

// GenerateAdvice asks the model for advice text.
func (c *OpenAIClient) GenerateAdvice(ctx context.Context, req models.AdviceRequest) (*models.Advice, error) {
	content, err := c.complete(ctx, advicePrompt, req, false)
	if err != nil {
		return nil, err
	}
	return &models.Advice{Advice: strings.TrimSpace(content)}, nil
}

// stripFence removes a ```json ... ``` wrapper some models add.
func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
