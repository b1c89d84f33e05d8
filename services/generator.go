package services

import (
	"context"
	"fmt"

	"outfitapi/outfit"
)

const (
	StrategyLLM       = "llm"
	StrategyRuleBased = "rule_based"
)

// LLMOutfitGenerator adapts the GenAI composer to the engine's base-generation
// interface. The model proposes candidate items; classification and every
// validation stage stay on our side.
type LLMOutfitGenerator struct {
	Provider LLMOutfitProvider
	Model    LLMModelName
}

func (g *LLMOutfitGenerator) Generate(ctx context.Context, genCtx outfit.Context) ([]outfit.Item, outfit.GenerationUsage, error) {
	req := OutfitComposeRequest{
		Occasion:         genCtx.Occasion,
		Style:            genCtx.Style,
		Mood:             genCtx.Mood,
		TemperatureF:     genCtx.Weather.TemperatureF,
		WeatherCondition: genCtx.Weather.Condition,
		BaseItemID:       genCtx.BaseItemID,
	}
	for _, item := range genCtx.Wardrobe {
		req.Items = append(req.Items, OutfitComposeItem{
			ID:           item.ID,
			Name:         item.Name,
			ClothingType: item.Type,
			Color:        item.Color,
			Material:     item.Material,
		})
	}

	composed, llmUsage, err := g.Provider.ComposeOutfit(ctx, req, g.Model)
	usage := outfit.GenerationUsage{Strategy: StrategyLLM, Model: g.Model.String()}
	if llmUsage != nil {
		usage.InputTokenCount = llmUsage.InputTokenCount
		usage.OutputTokenCount = llmUsage.OutputTokenCount
		usage.TotalTokenCount = llmUsage.TotalTokenCount
	}
	if err != nil {
		return nil, usage, err
	}

	byID := make(map[uint]outfit.Item, len(genCtx.Wardrobe))
	for _, item := range genCtx.Wardrobe {
		byID[item.ID] = item
	}
	var items []outfit.Item
	for _, id := range composed.ItemIDs {
		if item, ok := byID[id]; ok {
			items = append(items, item)
		} else {
			fmt.Printf("[Compose] Model proposed unknown item id %d, skipping\n", id)
		}
	}
	if len(items) == 0 {
		return nil, usage, fmt.Errorf("model proposed no usable items")
	}
	return items, usage, nil
}

// RuleBasedOutfitGenerator is the deterministic fallback: walk the wardrobe in
// listing order and take the first piece that fills each slot the occasion and
// temperature call for. No model, no tokens, always available.
type RuleBasedOutfitGenerator struct{}

func (RuleBasedOutfitGenerator) Generate(_ context.Context, genCtx outfit.Context) ([]outfit.Item, outfit.GenerationUsage, error) {
	usage := outfit.GenerationUsage{Strategy: StrategyRuleBased}
	band := outfit.BandFor(genCtx.Weather.TemperatureF)

	var picked []outfit.Item
	alreadyPicked := func(id uint) bool {
		for _, existing := range picked {
			if existing.ID == id {
				return true
			}
		}
		return false
	}
	pickFirst := func(match func(outfit.Item) bool) {
		for _, item := range genCtx.Wardrobe {
			if alreadyPicked(item.ID) {
				continue
			}
			if match(item) {
				picked = append(picked, item)
				return
			}
		}
	}

	pickFirst(func(i outfit.Item) bool { return i.Category == outfit.CategoryTop })
	pickFirst(func(i outfit.Item) bool { return i.Category == outfit.CategoryBottom })
	pickFirst(func(i outfit.Item) bool { return i.Category == outfit.CategoryFootwear })

	// cold bands need extra stackable pieces
	if band.MinLayers >= 2 {
		pickFirst(func(i outfit.Item) bool {
			return i.Category == outfit.CategoryTop && i.Layer == outfit.LayerMid
		})
	}
	if band.MinLayers >= 2 || genCtx.Weather.TemperatureF < 65 {
		pickFirst(func(i outfit.Item) bool { return i.Category == outfit.CategoryJacket })
	}

	if len(picked) == 0 {
		return nil, usage, fmt.Errorf("wardrobe has no usable items")
	}
	return picked, usage, nil
}

// FallbackOutfitGenerator tries the primary generator and falls back when it
// errors. A failed validation is not an error, only a failed generation is.
type FallbackOutfitGenerator struct {
	Primary  outfit.BaseGenerator
	Fallback outfit.BaseGenerator
}

func (g *FallbackOutfitGenerator) Generate(ctx context.Context, genCtx outfit.Context) ([]outfit.Item, outfit.GenerationUsage, error) {
	items, usage, err := g.Primary.Generate(ctx, genCtx)
	if err == nil {
		return items, usage, nil
	}
	fmt.Printf("[Compose] Primary generator failed, using fallback: %v\n", err)
	return g.Fallback.Generate(ctx, genCtx)
}

// LLMSemanticValidator adapts the review call to the engine's semantic gate.
type LLMSemanticValidator struct {
	Provider LLMOutfitProvider
	Model    LLMModelName
}

func (v *LLMSemanticValidator) Validate(ctx context.Context, composed *outfit.GeneratedOutfit, genCtx outfit.Context) (bool, []string, error) {
	req := OutfitReviewRequest{
		Occasion: genCtx.Occasion,
		Style:    genCtx.Style,
		Mood:     genCtx.Mood,
	}
	for _, item := range composed.Items {
		req.Items = append(req.Items, OutfitComposeItem{
			ID:           item.ID,
			Name:         item.Name,
			ClothingType: item.Type,
			Color:        item.Color,
			Material:     item.Material,
		})
	}

	review, _, err := v.Provider.ReviewOutfit(ctx, req, v.Model)
	if err != nil {
		return false, nil, err
	}
	return review.Valid, review.Problems, nil
}
