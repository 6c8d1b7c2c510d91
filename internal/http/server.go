package http

import (
	"net/http"

	"github.com/mauv0809/scrim-manager/internal/http/handlers"
	"github.com/rs/cors"
)

func NewServer(deps Deps) *Server {
	server := &Server{
		Deps:   deps,
		Router: http.NewServeMux(),
	}
	server.routes()

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
	})
	server.handler = c.Handler(requestIDMiddleware(server.Router))
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	if s.MetricsHandler != nil {
		s.Router.Handle("GET /metrics", s.MetricsHandler)
	}
	s.Router.Handle("GET /health", Chain(handlers.HealthCheckHandler(s.DB), paramsMiddleware))

	s.Router.Handle("POST /sync", Chain(handlers.SyncRosterHandler(s.Roster), paramsMiddleware))
	s.Router.Handle("GET /members", Chain(handlers.ListMembersHandler(s.Store), paramsMiddleware))

	s.Router.Handle("GET /leaderboard", Chain(handlers.LeaderboardHandler(s.Store), paramsMiddleware))
	s.Router.Handle("GET /leaderboard.xlsx", Chain(handlers.LeaderboardExcelHandler(s.Store), paramsMiddleware))
	s.Router.Handle("POST /leaderboard/sheet", Chain(handlers.LeaderboardSheetHandler(s.Store, s.Sheets), paramsMiddleware))
	s.Router.Handle("POST /leaderboard/announce", Chain(handlers.AnnounceLeaderboardHandler(s.Store, s.Notifier), paramsMiddleware))

	s.Router.Handle("POST /matches", Chain(handlers.RecordMatchHandler(s.Scrims), paramsMiddleware))
	s.Router.Handle("GET /matches", Chain(handlers.ListMatchesHandler(s.Scrims), paramsMiddleware))
	s.Router.Handle("DELETE /matches/{id}", Chain(handlers.DeleteMatchHandler(s.Scrims), paramsMiddleware))

	s.Router.Handle("GET /maps", Chain(handlers.ListMapsHandler(s.Store), paramsMiddleware))
	s.Router.Handle("POST /maps", Chain(handlers.AddMapHandler(s.Store), paramsMiddleware))
	s.Router.Handle("GET /maps/random", Chain(handlers.RandomMapHandler(s.Store), paramsMiddleware))
	s.Router.Handle("DELETE /maps/{id}", Chain(handlers.DeleteMapHandler(s.Store), paramsMiddleware))

	s.Router.Handle("POST /sessions", Chain(handlers.CreateSessionHandler(s.Sessions), paramsMiddleware))
	s.Router.Handle("GET /sessions/{id}", Chain(handlers.GetSessionHandler(s.Sessions), paramsMiddleware))
	s.Router.Handle("POST /sessions/{id}/teams/{team}/{userID}", Chain(handlers.AddPlayerHandler(s.Sessions), paramsMiddleware))
	s.Router.Handle("DELETE /sessions/{id}/teams/{team}/{userID}", Chain(handlers.RemovePlayerHandler(s.Sessions), paramsMiddleware))
	s.Router.Handle("PUT /sessions/{id}/map", Chain(handlers.SetMapHandler(s.Sessions), paramsMiddleware))
	s.Router.Handle("POST /sessions/{id}/reset", Chain(handlers.ResetSessionHandler(s.Sessions), paramsMiddleware))
	s.Router.Handle("POST /sessions/{id}/spin", Chain(handlers.SpinMapHandler(s.Sessions), paramsMiddleware))
	s.Router.Handle("PUT /sessions/{id}/columns", Chain(handlers.SetColumnsHandler(s.Sessions), paramsMiddleware))
	s.Router.Handle("POST /sessions/{id}/submit", Chain(handlers.SubmitSessionHandler(s.Sessions), paramsMiddleware))

	slackAuth := slackVerificationMiddleware(s.Cfg.Slack.SigningSecret)
	s.Router.Handle("POST /slack/command/leaderboard", Chain(handlers.LeaderboardCommandHandler(s.Store, s.Notifier), paramsMiddleware, slackAuth))
	s.Router.Handle("POST /slack/command/player-stats", Chain(handlers.PlayerStatsCommandHandler(s.Store, s.Notifier), paramsMiddleware, slackAuth))

	if s.Events != nil {
		s.Router.Handle("POST /pubsub/push", Chain(handlers.PubSubPushHandler(s.Events), paramsMiddleware))
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}
