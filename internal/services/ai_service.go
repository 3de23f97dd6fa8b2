package services

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/sashabaranov/go-openai"
	"google.golang.org/api/option"

	"github.com/nutritrack/nutritrack/internal/domain"
	apperrors "github.com/nutritrack/nutritrack/internal/errors"
	"github.com/nutritrack/nutritrack/internal/logger"
)

const geminiModel = "gemini-1.5-flash"

// AIService estimates nutrient values for food descriptions and meal photos.
// Gemini is the primary provider; when an OpenAI key is configured it is
// used as a fallback after a Gemini failure.
type AIService struct {
	geminiClient *genai.Client
	openaiClient *openai.Client
	hasOpenAI    bool
}

// foodEstimate mirrors the JSON shape both providers are asked to return.
type foodEstimate struct {
	Name     string  `json:"name"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
}

func NewAIService(geminiAPIKey, openaiAPIKey string) *AIService {
	geminiClient, err := genai.NewClient(context.Background(), option.WithAPIKey(geminiAPIKey))
	if err != nil {
		panic(fmt.Sprintf("Failed to create Gemini client: %v", err))
	}

	s := &AIService{geminiClient: geminiClient}
	if openaiAPIKey != "" {
		s.openaiClient = openai.NewClient(openaiAPIKey)
		s.hasOpenAI = true
	}
	return s
}

// EstimateFromText analyzes a free-text food description and returns
// candidate food items with estimated nutrients. Items carry no ids.
func (s *AIService) EstimateFromText(ctx context.Context, description string) ([]domain.FoodItem, error) {
	prompt := fmt.Sprintf(`Analyze the following food description for an average serving: "%s".
Provide a list of food items with their estimated nutritional information.

CRITICAL JSON FORMAT REQUIREMENTS:
- Your response MUST be a valid JSON array, nothing else
- Do not include markdown formatting or explanatory text
- Each element must have these exact fields:
  {"name": "string", "calories": 0, "protein": 0, "carbs": 0, "fats": 0}
- calories in kcal, protein/carbs/fats in grams`, description)

	items, err := s.estimateWithGemini(ctx, prompt, nil, "")
	if err != nil && s.hasOpenAI {
		logger.Warningf("Gemini text estimation failed, falling back to OpenAI: %v", err)
		items, err = s.estimateWithOpenAI(ctx, prompt, nil, "")
	}
	if err != nil {
		return nil, err
	}
	return items, nil
}

// EstimateFromImage analyzes a meal photo and returns candidate food items
// with estimated nutrients for standard serving sizes.
func (s *AIService) EstimateFromImage(ctx context.Context, imageData []byte, mimeType string) ([]domain.FoodItem, error) {
	prompt := `Analyze this image of a meal. Identify each food item present.
For each item, estimate its nutritional information for a standard serving size.

CRITICAL JSON FORMAT REQUIREMENTS:
- Your response MUST be a valid JSON array, nothing else
- Do not include markdown formatting or explanatory text
- Each element must have these exact fields:
  {"name": "string", "calories": 0, "protein": 0, "carbs": 0, "fats": 0}
- calories in kcal, protein/carbs/fats in grams
- If you cannot identify any food, return an empty array []`

	items, err := s.estimateWithGemini(ctx, prompt, imageData, mimeType)
	if err != nil && s.hasOpenAI {
		logger.Warningf("Gemini image estimation failed, falling back to OpenAI: %v", err)
		items, err = s.estimateWithOpenAI(ctx, prompt, imageData, mimeType)
	}
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *AIService) estimateWithGemini(ctx context.Context, prompt string, imageData []byte, mimeType string) ([]domain.FoodItem, error) {
	model := s.geminiClient.GenerativeModel(geminiModel)

	parts := []genai.Part{genai.Text(prompt)}
	if imageData != nil {
		format := strings.TrimPrefix(mimeType, "image/")
		if format == "" {
			format = "jpeg"
		}
		parts = append([]genai.Part{genai.ImageData(format, imageData)}, parts...)
	}

	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		return nil, apperrors.NewEstimationError(err, "gemini")
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, apperrors.NewEstimationError(fmt.Errorf("empty response"), "gemini")
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return nil, apperrors.NewEstimationError(fmt.Errorf("unexpected response part type"), "gemini")
	}

	items, err := parseEstimates(string(text))
	if err != nil {
		return nil, apperrors.NewEstimationError(err, "gemini")
	}
	return items, nil
}

func (s *AIService) estimateWithOpenAI(ctx context.Context, prompt string, imageData []byte, mimeType string) ([]domain.FoodItem, error) {
	message := openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: prompt}
	model := openai.GPT4o

	if imageData != nil {
		if mimeType == "" {
			mimeType = "image/jpeg"
		}
		dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(imageData))
		message = openai.ChatCompletionMessage{
			Role: openai.ChatMessageRoleUser,
			MultiContent: []openai.ChatMessagePart{
				{
					Type: openai.ChatMessagePartTypeText,
					Text: prompt,
				},
				{
					Type: openai.ChatMessagePartTypeImageURL,
					ImageURL: &openai.ChatMessageImageURL{
						URL: dataURL,
					},
				},
			},
		}
	}

	resp, err := s.openaiClient.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model:    model,
			Messages: []openai.ChatCompletionMessage{message},
		},
	)
	if err != nil {
		return nil, apperrors.NewEstimationError(err, "openai")
	}
	if len(resp.Choices) == 0 {
		return nil, apperrors.NewEstimationError(fmt.Errorf("empty response"), "openai")
	}

	items, err := parseEstimates(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, apperrors.NewEstimationError(err, "openai")
	}
	return items, nil
}

// parseEstimates decodes the provider response into food items. Responses
// wrapped in code fences or surrounding text are tolerated; an empty or
// unparseable result is an error so callers never log partial data.
func parseEstimates(response string) ([]domain.FoodItem, error) {
	jsonStr := extractJSONArray(response)
	if jsonStr == "" {
		return nil, fmt.Errorf("no valid JSON array found in response")
	}

	var estimates []foodEstimate
	if err := json.Unmarshal([]byte(jsonStr), &estimates); err != nil {
		// Some models return a single object instead of an array.
		var single foodEstimate
		if err2 := json.Unmarshal([]byte(extractJSONObject(response)), &single); err2 != nil {
			return nil, fmt.Errorf("failed to parse response: %w", err)
		}
		estimates = []foodEstimate{single}
	}

	if len(estimates) == 0 {
		return nil, fmt.Errorf("no food items recognized")
	}

	items := make([]domain.FoodItem, 0, len(estimates))
	for _, e := range estimates {
		if e.Name == "" {
			continue
		}
		items = append(items, domain.FoodItem{
			Name:     e.Name,
			Calories: e.Calories,
			Protein:  e.Protein,
			Carbs:    e.Carbs,
			Fats:     e.Fats,
		})
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("no food items recognized")
	}
	return items, nil
}

// extractJSONArray attempts to extract a JSON array from the given string,
// handling code blocks (```json ... ```) or other text wrapping.
func extractJSONArray(s string) string {
	start := strings.Index(s, "[")
	if start == -1 {
		return ""
	}
	end := strings.LastIndex(s, "]")
	if end == -1 || end <= start {
		return ""
	}
	return s[start : end+1]
}

// extractJSONObject extracts a single JSON object the same way.
func extractJSONObject(s string) string {
	start := strings.Index(s, "{")
	if start == -1 {
		return ""
	}
	end := strings.LastIndex(s, "}")
	if end == -1 || end <= start {
		return ""
	}
	return s[start : end+1]
}
