package rest

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"ecommerceRecommender/domain"

	"github.com/labstack/echo/v4"
)

type RecommendationService interface {
	Recommend(ctx context.Context, userID uint) domain.Recommendation
}

type RecommendationHandler struct {
	recommendationService RecommendationService
	timeout               time.Duration
}

func NewRecommendationHandler(recommendationService RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{
		recommendationService: recommendationService,
		timeout:               30 * time.Second,
	}
}

// GetRecommendations serves GET /recommendations/:id. Access control is done
// by the SelfOrAdmin middleware.
func (h *RecommendationHandler) GetRecommendations(c echo.Context) error {
	userID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "Invalid user id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	rec := h.recommendationService.Recommend(ctx, uint(userID))

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":              fmt.Sprintf("Recommendations generated successfully! Source: %s", rec.Source),
		"user_id":              rec.UserID,
		"source":               rec.Source,
		"recommended_products": rec.Products,
	})
}
