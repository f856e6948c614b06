package handlers

import "github.com/labstack/echo/v4"

// currentUID returns the authenticated user's id placed in the context by
// the auth middleware, or "" when the request is unauthenticated.
func currentUID(c echo.Context) string {
	if uid, ok := c.Get("uid").(string); ok {
		return uid
	}
	return ""
}
