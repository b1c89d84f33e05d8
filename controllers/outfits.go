package controllers

import (
	"fmt"
	"net/http"
	"time"

	"outfitapi/models"
	"outfitapi/tasks"

	"github.com/getsentry/sentry-go"
	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

const freePlanDailyGenerationLimit = 5

type GenerateOutfitIn struct {
	Occasion         string  `json:"occasion" validate:"required,oneof=casual business formal athletic date party"`
	Style            string  `json:"style" validate:"required,max=50"`
	Mood             string  `json:"mood" validate:"required,max=50"`
	TemperatureF     float64 `json:"temperature_f" validate:"gte=-60,lte=140"`
	WeatherCondition string  `json:"weather_condition" validate:"omitempty,max=50"`
	BaseItemID       *uint   `json:"base_item_id"`
}

type OutfitGenerationCreatedResponse struct {
	GenerationID uint   `json:"generation_id"`
	Status       string `json:"status"`
}

type OutfitsController struct {
}

func (controller *OutfitsController) OutfitRoutes(g *echo.Group) {
	g.POST("/generate", controller.GenerateOutfit)
	g.GET("/list", controller.ListGenerations)
	g.GET("/:id", controller.GetGeneration)
}

func (controller *OutfitsController) GenerateOutfit(c echo.Context) error {
	var req GenerateOutfitIn
	if err := c.Bind(&req); err != nil {
		fmt.Println(err)
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	user, ok := c.Get("currentUser").(models.UserAccount)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}
	db, ok := c.Get("__db").(*gorm.DB)
	if !ok {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Database connection error"})
	}
	asynqClient, ok := c.Get("__asynqclient").(*asynq.Client)
	if !ok {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Service is not available, please try again a bit later"})
	}

	var closetCount int64
	if err := db.Model(&models.ClothingItem{}).Where("owner_id = ? AND status = ?", user.ID, "in_closet").Count(&closetCount).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to get wardrobe data"})
	}
	if closetCount == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Your closet is empty, add some clothes first"})
	}

	if string(user.Subscription) == "free" {
		var dailyGenerationCount int64
		today := time.Now().UTC().Format("2006-01-02")
		if err := db.Model(&models.OutfitGeneration{}).Where("user_account_id = ? AND DATE(created_at) = ?", user.ID, today).Count(&dailyGenerationCount).Error; err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to get generation data"})
		}
		fmt.Printf("[User %v] Free plan, daily generation count: %v\n", user.ID, dailyGenerationCount)
		if dailyGenerationCount >= freePlanDailyGenerationLimit {
			return c.JSON(http.StatusForbidden, map[string]string{"error": fmt.Sprintf("You have reached the limit of %v daily outfits, please subscribe", freePlanDailyGenerationLimit)})
		}
	}

	if req.BaseItemID != nil {
		var baseItem models.ClothingItem
		r := db.Where("id = ? AND owner_id = ? AND status = ?", *req.BaseItemID, user.ID, "in_closet").Limit(1).Find(&baseItem)
		if r.Error != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to get wardrobe data"})
		}
		if r.RowsAffected == 0 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Base item is not in your closet"})
		}
	}

	generation := models.OutfitGeneration{
		UserAccountID:    user.ID,
		Occasion:         req.Occasion,
		Style:            req.Style,
		Mood:             req.Mood,
		TemperatureF:     req.TemperatureF,
		WeatherCondition: req.WeatherCondition,
		BaseItemID:       req.BaseItemID,
		Status:           "pending",
	}
	if err := db.Create(&generation).Error; err != nil {
		sentry.CaptureException(err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to start generation, please try again"})
	}

	task, err := tasks.NewOutfitGenerationTask(generation.ID)
	if err != nil {
		sentry.CaptureException(err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Sorry, could not start generation, please try again"})
	}
	info, err := asynqClient.Enqueue(task, asynq.MaxRetry(3), asynq.Queue("generate"))
	if err != nil {
		sentry.CaptureException(err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Sorry, could not start generation, please try again"})
	}
	fmt.Println("[Queue] Outfit generation task submitted, Generation ID: ", generation.ID, " Task ID: ", info.ID)

	return c.JSON(http.StatusCreated, OutfitGenerationCreatedResponse{
		GenerationID: generation.ID,
		Status:       generation.Status,
	})
}

func (controller *OutfitsController) GetGeneration(c echo.Context) error {
	user, ok := c.Get("currentUser").(models.UserAccount)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}
	db, ok := c.Get("__db").(*gorm.DB)
	if !ok {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Database connection error"})
	}

	var generationId uint
	if err := echo.PathParamsBinder(c).Uint("id", &generationId).BindError(); err != nil {
		return echo.ErrBadRequest
	}

	var generation models.OutfitGeneration
	r := db.Where("id = ? AND user_account_id = ?", generationId, user.ID).Limit(1).Find(&generation)
	if r.Error != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch generation"})
	}
	if r.RowsAffected == 0 {
		return echo.ErrNotFound
	}
	return c.JSON(http.StatusOK, generation)
}

func (controller *OutfitsController) ListGenerations(c echo.Context) error {
	user, ok := c.Get("currentUser").(models.UserAccount)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}
	db, ok := c.Get("__db").(*gorm.DB)
	if !ok {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Database connection error"})
	}

	var generations []models.OutfitGeneration
	if err := db.Where("user_account_id = ?", user.ID).Order("id desc").Limit(50).Find(&generations).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch generations"})
	}
	return c.JSON(http.StatusOK, echo.Map{"generations": generations})
}
