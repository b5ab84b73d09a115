package server

// Route path constants
const (
	RouteLogin    = "/login"
	RouteCallback = "/callback"
)
