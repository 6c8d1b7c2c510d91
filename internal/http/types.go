package http

import (
	"net/http"

	"github.com/mauv0809/scrim-manager/internal/club"
	"github.com/mauv0809/scrim-manager/internal/config"
	"github.com/mauv0809/scrim-manager/internal/export"
	"github.com/mauv0809/scrim-manager/internal/http/handlers"
	"github.com/mauv0809/scrim-manager/internal/notifier"
	"github.com/mauv0809/scrim-manager/internal/pubsub"
	"github.com/mauv0809/scrim-manager/internal/roster"
	"github.com/mauv0809/scrim-manager/internal/scrim"
	"github.com/mauv0809/scrim-manager/internal/session"
)

// Deps are the services the HTTP layer routes to.
type Deps struct {
	DB             handlers.Pinger
	Store          club.ClubStore
	Scrims         *scrim.Service
	Roster         *roster.Service
	Sessions       *session.Store
	Notifier       notifier.Notifier
	Sheets         export.Publisher
	Events         pubsub.Handler
	MetricsHandler http.Handler
	Cfg            config.Config
}

type Server struct {
	Deps
	Router  *http.ServeMux
	handler http.Handler
}
