// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	applicationsfeature "github.com/jaikviktechnology/jaikvik-api/internal/app/features/applications"
	authfeature "github.com/jaikviktechnology/jaikvik-api/internal/app/features/authapi"
	bannersfeature "github.com/jaikviktechnology/jaikvik-api/internal/app/features/banners"
	blogsfeature "github.com/jaikviktechnology/jaikvik-api/internal/app/features/blogs"
	careersfeature "github.com/jaikviktechnology/jaikvik-api/internal/app/features/careers"
	clientsfeature "github.com/jaikviktechnology/jaikvik-api/internal/app/features/clients"
	enquiriesfeature "github.com/jaikviktechnology/jaikvik-api/internal/app/features/enquiries"
	healthfeature "github.com/jaikviktechnology/jaikvik-api/internal/app/features/health"
	servicesfeature "github.com/jaikviktechnology/jaikvik-api/internal/app/features/services"
	sitepagesfeature "github.com/jaikviktechnology/jaikvik-api/internal/app/features/sitepages"
	statsfeature "github.com/jaikviktechnology/jaikvik-api/internal/app/features/stats"
	teamfeature "github.com/jaikviktechnology/jaikvik-api/internal/app/features/team"
	testimonialsfeature "github.com/jaikviktechnology/jaikvik-api/internal/app/features/testimonials"
	usersfeature "github.com/jaikviktechnology/jaikvik-api/internal/app/features/usersapi"

	applicationstore "github.com/jaikviktechnology/jaikvik-api/internal/app/store/applications"
	auditstore "github.com/jaikviktechnology/jaikvik-api/internal/app/store/audit"
	bannerstore "github.com/jaikviktechnology/jaikvik-api/internal/app/store/banners"
	blogstore "github.com/jaikviktechnology/jaikvik-api/internal/app/store/blogs"
	careerstore "github.com/jaikviktechnology/jaikvik-api/internal/app/store/careers"
	clientstore "github.com/jaikviktechnology/jaikvik-api/internal/app/store/clients"
	enquirystore "github.com/jaikviktechnology/jaikvik-api/internal/app/store/enquiries"
	servicestore "github.com/jaikviktechnology/jaikvik-api/internal/app/store/services"
	"github.com/jaikviktechnology/jaikvik-api/internal/app/store/singleton"
	teamstore "github.com/jaikviktechnology/jaikvik-api/internal/app/store/team"
	testimonialstore "github.com/jaikviktechnology/jaikvik-api/internal/app/store/testimonials"
	userstore "github.com/jaikviktechnology/jaikvik-api/internal/app/store/users"

	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/auditlog"
	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/auth"
	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/ratelimit"
	"github.com/jaikviktechnology/jaikvik-api/internal/domain/models"
)

// BuildHandler constructs the root HTTP handler for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// the Startup hook have completed. It wires the shared pieces (JWT token
// manager, auth gate, audit logger, login rate limiter), then mounts a
// feature router per resource under /api.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	tokens, err := auth.NewTokenManager(appCfg.JWTSecret, appCfg.JWTExpiry)
	if err != nil {
		logger.Error("token manager init failed", zap.Error(err))
		return nil, err
	}
	gate := auth.NewGate(tokens, logger)

	db := deps.MongoDatabase
	audit := auditlog.New(auditstore.New(db), logger)
	limiter := ratelimit.NewCredentialLimiter(
		appCfg.LoginIPLimit, appCfg.LoginIPWindow,
		appCfg.LoginEmailLimit, appCfg.LoginEmailWindow,
	)

	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   splitOrigins(appCfg.CORSAllowedOrigins),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "Accept"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Global auth middleware: loads the token user into context when a
	// valid bearer token is present. Handlers read it via auth.CurrentUser(r).
	r.Use(gate.LoadTokenUser)

	// Health check endpoint for load balancers and orchestrators
	r.Mount("/health", healthfeature.Routes(healthfeature.NewHandler()))

	// Serve uploaded files directly when using local storage. S3 uploads
	// are served by S3/CloudFront and need no route here.
	if appCfg.StorageType == "local" || appCfg.StorageType == "" {
		r.Handle(appCfg.StorageLocalURL+"/*", fileserver.Handler(appCfg.StorageLocalURL, appCfg.StorageLocalPath))
	}

	users := userstore.New(db)
	blogs := blogstore.New(db)
	banners := bannerstore.New(db)
	services := servicestore.New(db)
	team := teamstore.New(db)
	testimonials := testimonialstore.New(db)
	postings := careerstore.New(db)
	applications := applicationstore.New(db)
	clients := clientstore.New(db)
	enquiries := enquirystore.New(db)

	r.Route("/api", func(api chi.Router) {
		authHandler := authfeature.NewHandler(users, tokens, deps.Mailer, limiter, audit, logger, authfeature.Config{
			SiteName: appCfg.SiteName,
			ResetTTL: appCfg.ResetCodeExpiry,
		})
		api.Mount("/auth", authfeature.Routes(authHandler, gate))

		api.Mount("/users", usersfeature.Routes(usersfeature.NewHandler(users, audit, logger), gate))

		api.Mount("/blogs", blogsfeature.Routes(blogsfeature.NewHandler(blogs, deps.FileStorage, audit, logger), gate))
		api.Mount("/banners", bannersfeature.Routes(bannersfeature.NewHandler(banners, deps.FileStorage, audit, logger), gate))
		api.Mount("/services", servicesfeature.Routes(servicesfeature.NewHandler(services, deps.FileStorage, audit, logger), gate))
		api.Mount("/team", teamfeature.Routes(teamfeature.NewHandler(team, deps.FileStorage, audit, logger), gate))
		api.Mount("/testimonials", testimonialsfeature.Routes(testimonialsfeature.NewHandler(testimonials, deps.FileStorage, audit, logger), gate))
		api.Mount("/clients", clientsfeature.Routes(clientsfeature.NewHandler(clients, deps.FileStorage, audit, logger), gate))

		api.Mount("/careers", careersfeature.Routes(careersfeature.NewHandler(postings, audit, logger), gate))

		appsHandler := applicationsfeature.NewHandler(applications, postings, deps.FileStorage, deps.Mailer, audit, logger, applicationsfeature.Config{
			SiteName:    appCfg.SiteName,
			NotifyEmail: appCfg.ApplicationNotifyEmail,
		})
		api.Mount("/applications", applicationsfeature.Routes(appsHandler, gate))

		api.Mount("/enquiries", enquiriesfeature.Routes(enquiriesfeature.NewHandler(enquiries, audit, logger), gate))

		// Site page singletons: /api/footer, /api/navbar, /api/hero, /api/about
		sitePages := sitepagesfeature.NewHandler(
			singleton.New[*models.Footer](db, "footer"),
			singleton.New[*models.Navbar](db, "navbar"),
			singleton.New[*models.Hero](db, "hero"),
			singleton.New[*models.About](db, "about"),
			audit, logger,
		)
		api.Mount("/", sitepagesfeature.Routes(sitePages, gate))

		statsHandler := statsfeature.NewHandler(statsfeature.Stores{
			Blogs:        blogs,
			Banners:      banners,
			Services:     services,
			Team:         team,
			Testimonials: testimonials,
			Postings:     postings,
			Applications: applications,
			Clients:      clients,
			Enquiries:    enquiries,
			Users:        users,
		}, logger)
		api.Mount("/stats", statsfeature.Routes(statsHandler, gate))
	})

	return r, nil
}

// splitOrigins turns the cors_allowed_origins setting into the slice the
// CORS middleware expects. "*" stays a single wildcard entry.
func splitOrigins(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "*" {
		return []string{"*"}
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}
