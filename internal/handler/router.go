package handler

import (
	"net/http"
	"regexp"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/forgo/clubhub/api/internal/middleware"
	"github.com/forgo/clubhub/api/internal/model"
)

// APIPrefix is accepted in front of every route and stripped before matching.
const APIPrefix = "/api"

// MsgNoRoute answers unknown paths, method mismatches and malformed ids.
const MsgNoRoute = "Endpoint not found"

// Params holds the numeric path identifiers of a matched route.
type Params map[string]int64

// ID returns the named identifier, 0 when the route declares none.
func (p Params) ID(name string) int64 {
	return p[name]
}

// HandlerFunc is an endpoint with its path identifiers already parsed.
type HandlerFunc func(w http.ResponseWriter, r *http.Request, p Params)

// Route binds a method and pattern to an endpoint. Every {name} segment
// in Pattern only matches digits.
type Route struct {
	Method  string
	Pattern string
	Handle  HandlerFunc
}

// Handlers groups the endpoint handlers the route table dispatches to.
type Handlers struct {
	Auth          *AuthHandler
	Clubs         *ClubHandler
	Memberships   *MembershipHandler
	Announcements *AnnouncementHandler
	Events        *EventHandler
	Users         *UserHandler
	Stats         *StatsHandler
	Health        *HealthHandler
}

// Routes returns the route table.
func (h *Handlers) Routes() []Route {
	return []Route{
		{http.MethodGet, "/", h.Health.Check},
		{http.MethodGet, "/health", h.Health.Check},

		{http.MethodPost, "/auth/login", h.Auth.Login},
		{http.MethodPost, "/auth/register", h.Auth.Register},

		{http.MethodGet, "/clubs", h.Clubs.List},
		{http.MethodPost, "/clubs", h.Clubs.Create},
		{http.MethodGet, "/clubs/{id}", h.Clubs.Get},
		{http.MethodPut, "/clubs/{id}", h.Clubs.Update},
		{http.MethodDelete, "/clubs/{id}", h.Clubs.Delete},
		{http.MethodPost, "/clubs/{id}/join", h.Memberships.Join},
		{http.MethodPost, "/clubs/{id}/leave", h.Memberships.Leave},
		{http.MethodGet, "/clubs/{id}/announcements", h.Announcements.ListForClub},
		{http.MethodPost, "/clubs/{id}/announcements", h.Announcements.CreateForClub},
		{http.MethodDelete, "/clubs/{id}/announcements/{aid}", h.Announcements.DeleteForClub},

		{http.MethodGet, "/announcements", h.Announcements.List},
		{http.MethodPost, "/announcements", h.Announcements.Create},
		{http.MethodDelete, "/announcements/{id}", h.Announcements.Delete},

		{http.MethodGet, "/events", h.Events.List},
		{http.MethodPost, "/events", h.Events.Create},
		{http.MethodGet, "/events/{id}", h.Events.Get},
		{http.MethodPut, "/events/{id}", h.Events.Update},
		{http.MethodDelete, "/events/{id}", h.Events.Delete},

		{http.MethodGet, "/users", h.Users.List},
		{http.MethodGet, "/users/{id}", h.Users.Get},
		{http.MethodPut, "/users/{id}", h.Users.Update},
		{http.MethodDelete, "/users/{id}", h.Users.Delete},

		{http.MethodGet, "/stats", h.Stats.Get},
	}
}

// RouterOptions configures NewRouter.
type RouterOptions struct {
	// Middlewares run in order around every request, including unmatched ones.
	Middlewares []middleware.Middleware
	// Metrics is served at GET /metrics when set.
	Metrics http.Handler
}

// NewRouter builds the HTTP handler for the route table.
func NewRouter(h *Handlers, opts RouterOptions) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.StripPrefix(APIPrefix), chimw.StripSlashes)
	for _, m := range opts.Middlewares {
		r.Use(m)
	}
	r.Use(middleware.Preflight)

	for _, route := range h.Routes() {
		r.Method(route.Method, chiPattern(route.Pattern), bind(route))
	}
	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics)
	}

	r.NotFound(noRoute)
	r.MethodNotAllowed(noRoute)

	return r
}

var paramPattern = regexp.MustCompile(`\{(\w+)\}`)

func chiPattern(pattern string) string {
	return paramPattern.ReplaceAllString(pattern, "{$1:[0-9]+}")
}

func paramNames(pattern string) []string {
	matches := paramPattern.FindAllStringSubmatch(pattern, -1)
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m[1])
	}
	return names
}

// bind parses the route's identifiers before calling the endpoint.
// An identifier that does not fit in int64 is treated as no route.
func bind(route Route) http.HandlerFunc {
	names := paramNames(route.Pattern)
	return func(w http.ResponseWriter, r *http.Request) {
		params := make(Params, len(names))
		for _, name := range names {
			id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
			if err != nil {
				noRoute(w, r)
				return
			}
			params[name] = id
		}
		route.Handle(w, r, params)
	}
}

func noRoute(w http.ResponseWriter, _ *http.Request) {
	WriteError(w, model.NewNotFoundError(MsgNoRoute))
}
