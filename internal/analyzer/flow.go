package analyzer

import (
	"context"
	"net/http"
	"strings"
	"time"

	"finboard/internal/models"
)

// Flow names served by the analysis service.
const (
	analyzeFlow = "analyzeSpendingBehavior"
	adviceFlow  = "generatePersonalizedAdvice"
)

// FlowClient calls flows exposed over HTTP. Each flow accepts {"data": input}
// and answers {"result": output}.
type FlowClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

var _ Analyzer = (*FlowClient)(nil)

// NewFlowClient returns a client for the flow server at baseURL.
func NewFlowClient(baseURL, apiKey string, timeout time.Duration) *FlowClient {
	return &FlowClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  newHTTPClient(timeout),
	}
}

type flowRequest[T any] struct {
	Data T `json:"data"`
}

type flowResponse[T any] struct {
	Result *T `json:"result"`
}

func runFlow[In, Out any](ctx context.Context, c *FlowClient, flow string, in In) (*Out, error) {
	var resp flowResponse[Out]
	if err := postJSON(ctx, c.client, c.baseURL+"/"+flow, c.apiKey, flowRequest[In]{Data: in}, &resp); err != nil {
		return nil, err
	}
	if resp.Result == nil {
		return nil, ErrEmptyResponse
	}
	return resp.Result, nil
}

// AnalyzeSpending runs the spending analysis flow.
func (c *FlowClient) AnalyzeSpending(ctx context.Context, req models.AnalysisRequest) (*models.AnalysisResult, error) {
	return runFlow[models.AnalysisRequest, models.AnalysisResult](ctx, c, analyzeFlow, req)
}

// GenerateAdvice runs the personalised advice flow.
func (c *FlowClient) GenerateAdvice(ctx context.Context, req models.AdviceRequest) (*models.Advice, error) {
	advice, err := runFlow[models.AdviceRequest, models.Advice](ctx, c, adviceFlow, req)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(advice.Advice) == "" {
		return nil, ErrEmptyResponse
	}
	return advice, nil
}
