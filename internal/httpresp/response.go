package httpresp

import "github.com/gin-gonic/gin"

// ToolResponse wraps every successful tool invocation so the caller can
// tell results apart from error envelopes without sniffing fields.
type ToolResponse struct {
	Tool   string `json:"tool"`
	Result any    `json:"result"`
}

func OK(c *gin.Context, data any) {
	c.JSON(200, data)
}

func Tool(c *gin.Context, tool string, result any) {
	c.JSON(200, ToolResponse{
		Tool:   tool,
		Result: result,
	})
}
