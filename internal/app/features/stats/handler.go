// internal/app/features/stats/handler.go

// Package stats serves the admin dashboard aggregates: document counts per
// collection, blog status breakdown, total blog views, and inbox counts.
package stats

import (
	"context"
	"net/http"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	applicationstore "github.com/jaikviktechnology/jaikvik-api/internal/app/store/applications"
	bannerstore "github.com/jaikviktechnology/jaikvik-api/internal/app/store/banners"
	blogstore "github.com/jaikviktechnology/jaikvik-api/internal/app/store/blogs"
	careerstore "github.com/jaikviktechnology/jaikvik-api/internal/app/store/careers"
	clientstore "github.com/jaikviktechnology/jaikvik-api/internal/app/store/clients"
	enquirystore "github.com/jaikviktechnology/jaikvik-api/internal/app/store/enquiries"
	servicestore "github.com/jaikviktechnology/jaikvik-api/internal/app/store/services"
	teamstore "github.com/jaikviktechnology/jaikvik-api/internal/app/store/team"
	testimonialstore "github.com/jaikviktechnology/jaikvik-api/internal/app/store/testimonials"
	userstore "github.com/jaikviktechnology/jaikvik-api/internal/app/store/users"
	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/apierr"
	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/jsonapi"
	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/status"
	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/timeouts"
)

type Handler struct {
	blogs        *blogstore.Store
	banners      *bannerstore.Store
	services     *servicestore.Store
	team         *teamstore.Store
	testimonials *testimonialstore.Store
	postings     *careerstore.Store
	apps         *applicationstore.Store
	clients      *clientstore.Store
	enquiries    *enquirystore.Store
	users        *userstore.Store
	log          *zap.Logger
}

type Stores struct {
	Blogs        *blogstore.Store
	Banners      *bannerstore.Store
	Services     *servicestore.Store
	Team         *teamstore.Store
	Testimonials *testimonialstore.Store
	Postings     *careerstore.Store
	Applications *applicationstore.Store
	Clients      *clientstore.Store
	Enquiries    *enquirystore.Store
	Users        *userstore.Store
}

func NewHandler(s Stores, logger *zap.Logger) *Handler {
	return &Handler{
		blogs:        s.Blogs,
		banners:      s.Banners,
		services:     s.Services,
		team:         s.Team,
		testimonials: s.Testimonials,
		postings:     s.Postings,
		apps:         s.Applications,
		clients:      s.Clients,
		enquiries:    s.Enquiries,
		users:        s.Users,
		log:          logger,
	}
}

type dashboard struct {
	Counts       map[string]int64 `json:"counts"`
	Blogs        map[string]int64 `json:"blogs"`
	TotalViews   int64            `json:"total_views"`
	Enquiries    map[string]int64 `json:"enquiries"`
	NewEnquiries int64            `json:"new_enquiries"`
	OpenJobs     int64            `json:"open_jobs"`
	NewApps      int64            `json:"new_applications"`
}

// Dashboard handles GET /api/stats/dashboard. The aggregates run
// concurrently; one failure fails the whole response.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	var out dashboard
	counts := make(map[string]int64, 10)

	type counter struct {
		name  string
		count func(context.Context, bson.M) (int64, error)
	}
	counters := []counter{
		{"blogs", h.blogs.Count},
		{"banners", h.banners.Count},
		{"services", h.services.Count},
		{"team_members", h.team.Count},
		{"testimonials", h.testimonials.Count},
		{"job_postings", h.postings.Count},
		{"job_applications", h.apps.Count},
		{"clients", h.clients.Count},
		{"enquiries", h.enquiries.Count},
		{"users", h.users.Count},
	}

	results := make([]int64, len(counters))
	g, gctx := errgroup.WithContext(ctx)
	for i, c := range counters {
		g.Go(func() error {
			n, err := c.count(gctx, bson.M{})
			if err != nil {
				return err
			}
			results[i] = n
			return nil
		})
	}
	g.Go(func() error {
		m, err := h.blogs.CountByStatus(gctx)
		if err != nil {
			return err
		}
		out.Blogs = m
		return nil
	})
	g.Go(func() error {
		n, err := h.blogs.TotalViews(gctx)
		if err != nil {
			return err
		}
		out.TotalViews = n
		return nil
	})
	g.Go(func() error {
		m, err := h.enquiries.CountByStatus(gctx)
		if err != nil {
			return err
		}
		out.Enquiries = m
		return nil
	})
	g.Go(func() error {
		n, err := h.postings.Count(gctx, bson.M{"status": status.Open})
		if err != nil {
			return err
		}
		out.OpenJobs = n
		return nil
	})
	g.Go(func() error {
		n, err := h.apps.Count(gctx, bson.M{"status": status.New})
		if err != nil {
			return err
		}
		out.NewApps = n
		return nil
	})

	if err := g.Wait(); err != nil {
		h.log.Error("dashboard aggregation failed", zap.Error(err))
		jsonapi.Fail(w, apierr.Internal, "Failed to load dashboard stats")
		return
	}

	for i, c := range counters {
		counts[c.name] = results[i]
	}
	out.Counts = counts
	out.NewEnquiries = out.Enquiries[status.New]
	if out.Blogs == nil {
		out.Blogs = map[string]int64{}
	}
	if out.Enquiries == nil {
		out.Enquiries = map[string]int64{}
	}

	jsonapi.OK(w, out)
}
