package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/anuntech/racaforte-backend-sub000/models"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
	ProviderGrok   = "grok"

	openAIBaseURL = "https://api.openai.com/v1"
	grokBaseURL   = "https://api.x.ai/v1"
	geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"
)

var ErrLLMEmptyResponse = errors.New("llm returned an empty response")

// LLMConfig selects the provider and its credentials. BaseURL overrides the
// provider's public endpoint.
type LLMConfig struct {
	Provider string
	APIKey   string
	Model    string
	BaseURL  string
	Timeout  time.Duration
}

// LLMService sends fixed prompts to a chat model and expects JSON back.
type LLMService struct {
	cfg        LLMConfig
	httpClient *http.Client
}

func NewLLMService(cfg LLMConfig) (*LLMService, error) {
	switch cfg.Provider {
	case ProviderOpenAI, ProviderGrok, ProviderGemini:
	default:
		return nil, fmt.Errorf("unsupported llm provider %q", cfg.Provider)
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("missing api key for llm provider %q", cfg.Provider)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL(cfg.Provider)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	return &LLMService{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

func defaultBaseURL(provider string) string {
	switch provider {
	case ProviderGrok:
		return grokBaseURL
	case ProviderGemini:
		return geminiBaseURL
	}
	return openAIBaseURL
}

// ════════════════════════════════════════════════════════════
// Provider wire formats
// ════════════════════════════════════════════════════════════

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string            `json:"model"`
	Messages       []chatMessage     `json:"messages"`
	Temperature    float64           `json:"temperature"`
	ResponseFormat map[string]string `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig struct {
		Temperature      float64 `json:"temperature"`
		ResponseMimeType string  `json:"responseMimeType"`
	} `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

const systemPrompt = "Você é um especialista em autopeças usadas no mercado brasileiro. Responda apenas com JSON válido, sem texto extra."

// Complete sends prompt and returns the model's JSON text with any
// markdown code fence removed.
func (s *LLMService) Complete(ctx context.Context, prompt string) (string, error) {
	var (
		text string
		err  error
	)
	if s.cfg.Provider == ProviderGemini {
		text, err = s.completeGemini(ctx, prompt)
	} else {
		text, err = s.completeChat(ctx, prompt)
	}
	if err != nil {
		return "", err
	}

	text = stripCodeFence(text)
	if text == "" {
		return "", ErrLLMEmptyResponse
	}
	return text, nil
}

func (s *LLMService) completeChat(ctx context.Context, prompt string) (string, error) {
	body := chatRequest{
		Model: s.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature:    0.2,
		ResponseFormat: map[string]string{"type": "json_object"},
	}

	var out chatResponse
	headers := map[string]string{"Authorization": "Bearer " + s.cfg.APIKey}
	if err := s.postJSON(ctx, s.cfg.BaseURL+"/chat/completions", headers, body, &out); err != nil {
		return "", err
	}
	if len(out.Choices) == 0 {
		return "", ErrLLMEmptyResponse
	}
	return out.Choices[0].Message.Content, nil
}

func (s *LLMService) completeGemini(ctx context.Context, prompt string) (string, error) {
	var body geminiRequest
	body.Contents = []geminiContent{{Role: "user", Parts: []geminiPart{{Text: systemPrompt + "\n\n" + prompt}}}}
	body.GenerationConfig.Temperature = 0.2
	body.GenerationConfig.ResponseMimeType = "application/json"

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		s.cfg.BaseURL, url.PathEscape(s.cfg.Model), url.QueryEscape(s.cfg.APIKey))

	var out geminiResponse
	if err := s.postJSON(ctx, endpoint, nil, body, &out); err != nil {
		return "", err
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", ErrLLMEmptyResponse
	}

	var sb strings.Builder
	for _, p := range out.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String(), nil
}

func (s *LLMService) postJSON(ctx context.Context, endpoint string, headers map[string]string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to marshal llm request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", s.cfg.Provider, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read %s response: %w", s.cfg.Provider, err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s returned status %d: %s", s.cfg.Provider, resp.StatusCode, truncate(string(data), 200))
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", s.cfg.Provider, err)
	}
	return nil
}

func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	if nl := strings.IndexByte(text, '\n'); nl >= 0 {
		text = text[nl+1:]
	} else {
		text = strings.TrimPrefix(text, "json")
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// ════════════════════════════════════════════════════════════
// Typed prompts
// ════════════════════════════════════════════════════════════

// PartContext is what the model is told about a part.
type PartContext struct {
	Name         string
	Description  string
	Condition    string
	VehicleBrand string
	VehicleModel string
	VehicleYear  int
}

func (p PartContext) String() string {
	var sb strings.Builder
	sb.WriteString("Peça: " + p.Name)
	if p.Description != "" {
		sb.WriteString("\nDescrição informada: " + p.Description)
	}
	if p.Condition != "" {
		sb.WriteString("\nEstado: " + p.Condition)
	}
	if p.VehicleBrand != "" || p.VehicleModel != "" {
		sb.WriteString("\nVeículo: " + strings.TrimSpace(p.VehicleBrand+" "+p.VehicleModel))
		if p.VehicleYear > 0 {
			sb.WriteString(" " + strconv.Itoa(p.VehicleYear))
		}
	}
	return sb.String()
}

func (s *LLMService) completeInto(ctx context.Context, prompt string, out any) error {
	text, err := s.Complete(ctx, prompt)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(text), out); err != nil {
		return fmt.Errorf("llm returned invalid json: %w", err)
	}
	return nil
}

// GenerateDescription writes a short marketplace description.
func (s *LLMService) GenerateDescription(ctx context.Context, part PartContext) (string, error) {
	prompt := part.String() + `

Escreva uma descrição comercial curta (até 400 caracteres) para anunciar esta peça usada.
Formato: {"description": "..."}`

	var out struct {
		Description string `json:"description"`
	}
	if err := s.completeInto(ctx, prompt, &out); err != nil {
		return "", err
	}
	out.Description = strings.TrimSpace(out.Description)
	if out.Description == "" {
		return "", ErrLLMEmptyResponse
	}
	return out.Description, nil
}

// EstimateDimensions asks for the packed size of the part in centimeters.
func (s *LLMService) EstimateDimensions(ctx context.Context, part PartContext) (models.Dimensions, error) {
	prompt := part.String() + `

Estime as dimensões da peça em centímetros.
Formato: {"width": 0, "height": 0, "depth": 0, "unit": "cm"}`

	var out models.Dimensions
	if err := s.completeInto(ctx, prompt, &out); err != nil {
		return models.Dimensions{}, err
	}
	if out.Width <= 0 || out.Height <= 0 || out.Depth <= 0 {
		return models.Dimensions{}, fmt.Errorf("llm returned non-positive dimensions %+v", out)
	}
	if out.Unit == "" {
		out.Unit = "cm"
	}
	return out, nil
}

// EstimateWeight asks for the part weight in kilograms.
func (s *LLMService) EstimateWeight(ctx context.Context, part PartContext) (float64, error) {
	prompt := part.String() + `

Estime o peso da peça em quilogramas.
Formato: {"weight": 0}`

	var out struct {
		Weight float64 `json:"weight"`
	}
	if err := s.completeInto(ctx, prompt, &out); err != nil {
		return 0, err
	}
	if out.Weight <= 0 {
		return 0, fmt.Errorf("llm returned non-positive weight %v", out.Weight)
	}
	return out.Weight, nil
}

// FindCompatibility lists other vehicles the part fits.
func (s *LLMService) FindCompatibility(ctx context.Context, part PartContext) ([]models.Compatibility, error) {
	prompt := part.String() + `

Liste os veículos compatíveis com esta peça (marca, modelo e faixa de anos).
Formato: {"compatibility": [{"brand": "", "model": "", "year": ""}]}`

	var out struct {
		Compatibility []models.Compatibility `json:"compatibility"`
	}
	if err := s.completeInto(ctx, prompt, &out); err != nil {
		return nil, err
	}

	list := make([]models.Compatibility, 0, len(out.Compatibility))
	for _, c := range out.Compatibility {
		if strings.TrimSpace(c.Brand) == "" || strings.TrimSpace(c.Model) == "" {
			continue
		}
		list = append(list, c)
	}
	return list, nil
}
