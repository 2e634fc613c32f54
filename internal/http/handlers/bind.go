package handlers

import "github.com/gin-gonic/gin"

// BindJSON parses the request body into out. Malformed JSON and failed
// binding validations both collapse into the route's own 400 message; the
// contract carries no field-level detail.
func BindJSON(ctx *gin.Context, out interface{}, message string) bool {
	if err := ctx.ShouldBindJSON(out); err != nil {
		RespondBadRequest(ctx, message)
		return false
	}

	return true
}
