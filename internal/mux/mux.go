package mux

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"crapette-server/internal/jwt"
	"crapette-server/pkg/crapette"
	"crapette-server/pkg/model"
	"crapette-server/pkg/room"

	gmux "github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type ctxKey int

const (
	ctxPlayerKey ctxKey = iota
	ctxMatchKey
)

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	config    config
	version   string
	recaptcha recaptcha
	engine    *crapette.Engine
	hub       *room.Hub

	// store for testing purposes
	authRouter  *gmux.Router
	adminRouter *gmux.Router
}

type config struct {
	// playerCreateDelay is the minimum duration between two player create events from a single remote address
	playerCreateDelay time.Duration
}

// NewMux returns a new HTTP mux
func NewMux(version string) *Mux {
	hub := room.NewHub(logrus.StandardLogger())
	hub.Run()

	this := &Mux{
		Router:  gmux.NewRouter(),
		version: version,
		engine:  crapette.New(logrus.StandardLogger()),
		hub:     hub,
		config: config{
			playerCreateDelay: time.Minute,
		},
		recaptcha: newRecaptcha(),
	}

	this.authRouter = this.Router.NewRoute().Subrouter()
	this.authRouter.Use(this.authMiddleware)

	this.adminRouter = this.authRouter.NewRoute().Subrouter()
	this.adminRouter.Use(this.adminMiddleware)

	// unauthorized endpoints
	{
		r := this.Router
		r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
		r.Methods(http.MethodPost).Path("/player").Handler(this.postPlayer())
		r.Methods(http.MethodPost).Path("/player/auth").Handler(this.postPlayerAuth())
		r.Methods(http.MethodGet).Path("/player/auth/{jwt:.*}").Handler(this.getPlayerAuthJWT())
	}

	// requires bearer authorization
	{
		r := this.authRouter

		r.Methods(http.MethodPost).Path("/match").Handler(this.postMatch())

		mr := r.PathPrefix("/match/{uuid:(?i)[a-f0-9]{8}(?:-[a-f0-9]{4}){3}-[a-f0-9]{12}}").Subrouter()
		mr.Use(this.matchMiddleware)

		mr.Methods(http.MethodGet).Path("").Handler(this.getMatchUUID())
		mr.Methods(http.MethodGet).Path("/moves").Handler(this.getMatchUUIDMoves())
		mr.Methods(http.MethodGet).Path("/verify").Handler(this.getMatchUUIDVerify())
		mr.Methods(http.MethodPost).Path("/action").Handler(this.postMatchUUIDAction())
		mr.Methods(http.MethodPost).Path("/ai-move").Handler(this.postMatchUUIDAIMove())
		mr.Methods(http.MethodPost).Path("/undo").Handler(this.postMatchUUIDUndo())
		mr.Methods(http.MethodGet).Path("/ws").Handler(this.getMatchUUIDWS())
	}

	// requires admin access
	// depends on authMiddleware
	{
		r := this.adminRouter
		r.Methods(http.MethodGet).Path("/admin/match").Handler(this.getAdminMatch())
	}

	return this
}

func (m *Mux) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.FormValue("access_token")
		if token == "" {
			authHeader := strings.Split(r.Header.Get("Authorization"), " ")
			if len(authHeader) != 2 || strings.ToLower(authHeader[0]) != "bearer" {
				writeJSONError(w, http.StatusUnauthorized, nil)
				return
			}

			token = authHeader[1]
		}

		id, err := jwt.ValidPlayerID(token)
		if err != nil {
			writeJSONError(w, http.StatusUnauthorized, nil)
			return
		}

		player, err := model.GetPlayerByID(r.Context(), id)
		if err != nil {
			writeJSONError(w, http.StatusUnauthorized, nil)
			return
		}

		newCtx := context.WithValue(r.Context(), ctxPlayerKey, player)
		w.Header().Set("Crapette-PlayerID", strconv.FormatInt(player.ID, 10))
		next.ServeHTTP(w, r.WithContext(newCtx))
	})
}

// adminMiddleware requires authMiddleware to execute first
func (m *Mux) adminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		player := r.Context().Value(ctxPlayerKey).(*model.Player)
		if !player.IsSiteAdmin {
			writeJSONError(w, http.StatusForbidden, nil)
			return
		}

		next.ServeHTTP(w, r)
	})
}
