package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"google.golang.org/genai"
)

// LLMModelName is the GenAI model to use for outfit composition calls.
type LLMModelName int32

const (
	Pro25 LLMModelName = iota
	Flash25
	FlashLite25
	Flash20
)

func (t LLMModelName) String() string {
	switch t {
	case Pro25:
		return "gemini-2.5-pro"
	case Flash25:
		return "gemini-2.5-flash"
	case FlashLite25:
		return "gemini-2.5-flash-lite-preview-06-17"
	case Flash20:
		return "gemini-2.0-flash"
	default:
		return "gemini-2.0-flash"
	}
}

func floatPointer(f float32) *float32 {
	return &f
}

type LLMUsage struct {
	InputTokenCount  int32 `json:"input_token_count"`
	OutputTokenCount int32 `json:"output_token_count"`
	TotalTokenCount  int32 `json:"total_token_count"`
}

// OutfitComposeItem is the wardrobe line the model sees for one item.
type OutfitComposeItem struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	ClothingType string `json:"clothing_type"`
	Color        string `json:"color"`
	Material     string `json:"material,omitempty"`
}

type OutfitComposeRequest struct {
	Occasion         string              `json:"occasion"`
	Style            string              `json:"style"`
	Mood             string              `json:"mood"`
	TemperatureF     float64             `json:"temperature_f"`
	WeatherCondition string              `json:"weather_condition"`
	BaseItemID       *uint               `json:"base_item_id,omitempty"`
	Items            []OutfitComposeItem `json:"items"`
}

type OutfitComposeResponse struct {
	ItemIDs   []uint `json:"item_ids"`
	Reasoning string `json:"reasoning"`
}

type OutfitReviewRequest struct {
	Occasion string              `json:"occasion"`
	Style    string              `json:"style"`
	Mood     string              `json:"mood"`
	Items    []OutfitComposeItem `json:"items"`
}

type OutfitReviewResponse struct {
	Valid    bool     `json:"valid"`
	Problems []string `json:"problems"`
}

// LLMOutfitProvider is the model-facing surface: propose an outfit from a
// wardrobe, and review a composed outfit for style coherence.
type LLMOutfitProvider interface {
	ComposeOutfit(ctx context.Context, req OutfitComposeRequest, modelName LLMModelName) (*OutfitComposeResponse, *LLMUsage, error)
	ReviewOutfit(ctx context.Context, req OutfitReviewRequest, modelName LLMModelName) (*OutfitReviewResponse, *LLMUsage, error)
}

type GoogleLLMOutfitComposer struct{}

const composeSystemInstruction = `You are a fashion stylist. You receive a wardrobe as JSON and must pick item ids that form one coherent outfit for the requested occasion, style, mood and weather. Use only ids that exist in the wardrobe. Respond with JSON only, no markdown, following exactly: {"item_ids": [1, 2, 3], "reasoning": "short explanation"}`

const reviewSystemInstruction = `You are a fashion reviewer. You receive a composed outfit as JSON and judge whether the pieces work together for the requested occasion, style and mood. Respond with JSON only, no markdown, following exactly: {"valid": true, "problems": []}. List concrete problems when valid is false.`

func newGenAIClient(ctx context.Context) (*genai.Client, error) {
	return genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  os.Getenv("GOOGLE_API_KEY"),
		Backend: genai.BackendGeminiAPI,
	})
}

func (GoogleLLMOutfitComposer) ComposeOutfit(ctx context.Context, req OutfitComposeRequest, modelName LLMModelName) (*OutfitComposeResponse, *LLMUsage, error) {
	client, err := newGenAIClient(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("error creating genai client: %v", err)
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, nil, fmt.Errorf("error marshaling compose request: %v", err)
	}

	result, err := client.Models.GenerateContent(ctx, modelName.String(), []*genai.Content{
		{Parts: []*genai.Part{{Text: string(payload)}}},
	}, &genai.GenerateContentConfig{
		MaxOutputTokens: 2000,
		Temperature:     floatPointer(0.7),
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: composeSystemInstruction}},
		},
	})
	if err != nil {
		fmt.Println("Error in GenerateContent:", err)
		return nil, nil, fmt.Errorf("%v", err)
	}
	usage := usageFromResult(result)
	fmt.Println("Input token count:", usage.InputTokenCount)
	fmt.Println("Output token count:", usage.OutputTokenCount)
	fmt.Println("Total token count:", usage.TotalTokenCount)

	if result.PromptFeedback != nil {
		fmt.Println(result.PromptFeedback.BlockReason)
		fmt.Println(result.PromptFeedback.BlockReasonMessage)
		return nil, usage, fmt.Errorf("content violation: %s", result.PromptFeedback.BlockReasonMessage)
	}

	var composed OutfitComposeResponse
	cleaned := cleanAIResponseText(result.Text())
	if err := json.Unmarshal([]byte(cleaned), &composed); err != nil {
		fmt.Println("Error parsing compose response:", err, cleaned)
		return nil, usage, fmt.Errorf("error parsing compose response: %v", err)
	}
	if len(composed.ItemIDs) == 0 {
		return nil, usage, fmt.Errorf("model returned no item ids")
	}
	return &composed, usage, nil
}

func (GoogleLLMOutfitComposer) ReviewOutfit(ctx context.Context, req OutfitReviewRequest, modelName LLMModelName) (*OutfitReviewResponse, *LLMUsage, error) {
	client, err := newGenAIClient(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("error creating genai client: %v", err)
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, nil, fmt.Errorf("error marshaling review request: %v", err)
	}

	result, err := client.Models.GenerateContent(ctx, modelName.String(), []*genai.Content{
		{Parts: []*genai.Part{{Text: string(payload)}}},
	}, &genai.GenerateContentConfig{
		MaxOutputTokens: 1000,
		Temperature:     floatPointer(0.2),
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: reviewSystemInstruction}},
		},
	})
	if err != nil {
		fmt.Println("Error in GenerateContent:", err)
		return nil, nil, fmt.Errorf("%v", err)
	}
	usage := usageFromResult(result)

	var review OutfitReviewResponse
	cleaned := cleanAIResponseText(result.Text())
	if err := json.Unmarshal([]byte(cleaned), &review); err != nil {
		fmt.Println("Error parsing review response:", err, cleaned)
		return nil, usage, fmt.Errorf("error parsing review response: %v", err)
	}
	return &review, usage, nil
}

func usageFromResult(result *genai.GenerateContentResponse) *LLMUsage {
	if result == nil || result.UsageMetadata == nil {
		return &LLMUsage{}
	}
	return &LLMUsage{
		InputTokenCount:  result.UsageMetadata.PromptTokenCount,
		OutputTokenCount: result.UsageMetadata.CandidatesTokenCount,
		TotalTokenCount:  result.UsageMetadata.TotalTokenCount,
	}
}

// models tend to wrap JSON in markdown fences even when told not to
func cleanAIResponseText(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
