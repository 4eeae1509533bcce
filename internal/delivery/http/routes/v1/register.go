package v1

import (
	"github.com/Laibah-Shahid/ats/internal/delivery/http/handler"
	"github.com/Laibah-Shahid/ats/internal/delivery/http/middleware"
	"github.com/Laibah-Shahid/ats/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
)

type Deps struct {
	JWT jwt.Service

	Jobs         *handler.JobHandler
	Match        *handler.MatchHandler
	MatchQueries *handler.MatchQueryHandler
}

func Register(r fiber.Router, d Deps) {
	if r == nil {
		return
	}

	// Job browsing is public; the match trigger keeps its fixed wire
	// contract and is not gated either.
	d.Jobs.RegisterRoutes(r)
	d.Match.RegisterRoutes(r)

	// Persisted match listings are recruiter-facing.
	authMw := middleware.NewAuthMiddleware(d.JWT)
	protected := r.Group("", authMw.Middleware())
	d.MatchQueries.RegisterRoutes(protected)
}
