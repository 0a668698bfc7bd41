package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/dealer-voicebot/internal/httperr"
	"github.com/BruksfildServices01/dealer-voicebot/internal/httpresp"
	"github.com/BruksfildServices01/dealer-voicebot/internal/tools"
)

// ======================================================
// HANDLER
// ======================================================

type ToolsHandler struct {
	dispatcher *tools.Dispatcher
}

func NewToolsHandler(dispatcher *tools.Dispatcher) *ToolsHandler {
	return &ToolsHandler{dispatcher: dispatcher}
}

// Invoke handles POST /api/tools/:name. The body is the tool's argument
// object; an empty body means no arguments.
func (h *ToolsHandler) Invoke(c *gin.Context) {
	tool := c.Param("name")

	args := map[string]any{}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&args); err != nil {
			httperr.BadRequest(c, httperr.CodeInvalidArguments, "Request body must be a JSON object.")
			return
		}
	}

	result, err := h.dispatcher.Dispatch(c.Request.Context(), tool, args)
	if err != nil {
		httperr.WriteBusiness(c, err)
		return
	}

	httpresp.Tool(c, tool, result)
}
