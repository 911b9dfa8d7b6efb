package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gcbaptista/go-case-predictor/services"
)

// bindPredictionRequest decodes and validates the request body. It writes the error response
// itself and reports whether the handler should continue.
func bindPredictionRequest(c *gin.Context) (*services.PredictionRequest, bool) {
	var req services.PredictionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return nil, false
	}

	if validation := ValidatePredictionRequest(&req); validation.HasErrors() {
		SendStructuredValidationError(c, validation)
		return nil, false
	}
	return &req, true
}

// RankHandler returns the past cases most similar to the query.
// Request Body: services.PredictionRequest
func (api *API) RankHandler(c *gin.Context) {
	req, ok := bindPredictionRequest(c)
	if !ok {
		return
	}

	hits := api.predictor.Rank(req.Query, req.TopN)
	c.JSON(http.StatusOK, services.RankResult{
		Hits:  hits,
		Total: api.predictor.Len(),
	})
}

// PromptHandler ranks past cases and returns the assembled prompt without generating an answer.
// Request Body: services.PredictionRequest
func (api *API) PromptHandler(c *gin.Context) {
	req, ok := bindPredictionRequest(c)
	if !ok {
		return
	}

	prediction, err := api.predictor.Prompt(req.Query, req.TopN)
	if err != nil {
		SendEngineError(c, "prompt assembly", err)
		return
	}
	c.JSON(http.StatusOK, prediction)
}

// PredictHandler runs the full pipeline and returns the generated answer with its context.
// Request Body: services.PredictionRequest
func (api *API) PredictHandler(c *gin.Context) {
	req, ok := bindPredictionRequest(c)
	if !ok {
		return
	}

	prediction, err := api.predictor.Predict(c.Request.Context(), req.Query, req.TopN)
	if err != nil {
		api.logger.Error("Prediction failed",
			zap.String(requestIDKey, c.GetString(requestIDKey)),
			zap.Error(err))
		SendEngineError(c, "prediction", err)
		return
	}
	c.JSON(http.StatusOK, prediction)
}
