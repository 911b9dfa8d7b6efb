package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gcbaptista/go-case-predictor/services"
)

// API holds dependencies for API handlers, primarily the predictor.
type API struct {
	predictor services.Predictor
	logger    *zap.Logger
}

// NewAPI creates a new API handler structure.
func NewAPI(predictor services.Predictor, logger *zap.Logger) *API {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &API{
		predictor: predictor,
		logger:    logger,
	}
}

// SetupRoutes defines all the API routes for the case predictor.
func SetupRoutes(router *gin.Engine, predictor services.Predictor, logger *zap.Logger) {
	apiHandler := NewAPI(predictor, logger)

	// Health check route
	router.GET("/health", apiHandler.HealthCheckHandler)

	// Read-only views of the loaded configuration and corpus
	router.GET("/settings", apiHandler.GetSettingsHandler)
	router.GET("/records", apiHandler.ListRecordsHandler)

	// Prediction pipeline
	router.POST("/rank", apiHandler.RankHandler)       // Ranked past cases only
	router.POST("/prompt", apiHandler.PromptHandler)   // Ranked cases plus the assembled prompt
	router.POST("/predict", apiHandler.PredictHandler) // Full pipeline including generation
}

// HealthCheckHandler provides a simple health check endpoint
func (api *API) HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "go-case-predictor",
		"records":   api.predictor.Len(),
		"timestamp": fmt.Sprintf("%d", time.Now().Unix()),
	})
}

// GetSettingsHandler returns the settings the predictor was built with
func (api *API) GetSettingsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, api.predictor.Settings())
}

// ListRecordsHandler lists the corpus with pagination.
// Query: ?page=1&page_size=10
func (api *API) ListRecordsHandler(c *gin.Context) {
	var req RecordListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		SendInvalidQueryError(c, err)
		return
	}

	if validation := ValidateRecordListRequest(&req); validation.HasErrors() {
		SendStructuredValidationError(c, validation)
		return
	}

	c.JSON(http.StatusOK, services.Paginate(api.predictor.Records(), req.Page, req.PageSize))
}
