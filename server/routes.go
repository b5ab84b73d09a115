package server

func (s *Server) initRoutes() {
	mw := s.StdMiddleware()

	s.RegisterRouteFunc("GET "+RouteLogin, ChainMiddleware(s.LoginHandler(), mw...))
	s.RegisterRouteFunc("GET "+RouteCallback, ChainMiddleware(s.OAuthCallbackHandler(), mw...))
	s.RegisterRouteFunc("POST "+RouteCallback, ChainMiddleware(s.OAuthCallbackHandler(), mw...)) // For form_post response mode
}
