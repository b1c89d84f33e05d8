package models

import "github.com/lib/pq"

type ClothingItem struct {
	JsonModel
	Name        string  `json:"name"`
	Description *string `gorm:"type:text" json:"description"`
	// raw type token, e.g. shirt, t-shirt, jeans, sneakers
	ClothingType string      `json:"clothing_type"`
	Subtype      *string     `json:"subtype"`
	Color        string      `json:"color"`
	Material     string      `json:"material"`
	Owner        UserAccount `json:"-"`
	OwnerID      uint        `json:"-"`
	Status       string      `json:"status"`       // temporary, in_closet
	ImageStatus  string      `json:"image_status"` // draft, uploaded
	ImageURL     *string     `json:"image_url"`
}

type OutfitGeneration struct {
	JsonModel
	UserAccountID uint        `json:"-"`
	UserAccount   UserAccount `json:"user_account"`

	Occasion         string  `json:"occasion"`
	Style            string  `json:"style"`
	Mood             string  `json:"mood"`
	TemperatureF     float64 `json:"temperature_f"`
	WeatherCondition string  `json:"weather_condition"`
	BaseItemID       *uint   `json:"base_item_id"`

	// ids of the composed items, in outfit order
	ItemIDs pq.Int64Array `gorm:"type:integer[]" json:"item_ids"`

	Status                 string   `json:"status"` // pending, completed, failed
	Confidence             *float64 `json:"confidence"`
	ValidationPassed       bool     `json:"validation_passed"`
	RelaxedRetry           bool     `json:"relaxed_retry"`
	CacheHit               bool     `json:"cache_hit"`
	AttemptsUsed           int      `json:"attempts_used"`
	Duration               *float64 `json:"duration"` // in seconds
	Strategy               *string  `json:"strategy"`
	GenerationRetryTimes   int      `json:"generation_retry_times"`
	GenerationErrorMessage *string  `json:"generation_error_message"`

	LLMModel            *string `json:"llm_model"`
	LLMInputTokenCount  *int32  `json:"llm_input_token_count"`
	LLMOutputTokenCount *int32  `json:"llm_output_token_count"`
	LLMTotalTokenCount  *int32  `json:"llm_total_token_count"`
}
