// internal/app/system/seeding/seeding.go
package seeding

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/jaikviktechnology/jaikvik-api/internal/app/store/singleton"
	userstore "github.com/jaikviktechnology/jaikvik-api/internal/app/store/users"
	"github.com/jaikviktechnology/jaikvik-api/internal/domain/models"
)

// AdminBootstrap describes the initial admin account created on first run.
// Empty values disable bootstrapping.
type AdminBootstrap struct {
	FullName string
	Email    string
	Password string
}

// SeedAll seeds default data if not already present.
func SeedAll(ctx context.Context, db *mongo.Database, logger *zap.Logger, admin AdminBootstrap) error {
	if err := seedAdmin(ctx, db, logger, admin); err != nil {
		return err
	}
	if err := seedSitePages(ctx, db, logger); err != nil {
		return err
	}
	return nil
}

// seedAdmin creates the bootstrap admin account when no account with that
// email exists yet.
func seedAdmin(ctx context.Context, db *mongo.Database, logger *zap.Logger, admin AdminBootstrap) error {
	if admin.Email == "" || admin.Password == "" {
		logger.Info("admin bootstrap skipped (not configured)")
		return nil
	}

	users := userstore.New(db)
	if _, err := users.GetByEmail(ctx, admin.Email); err == nil {
		return nil
	} else if err != userstore.ErrNotFound {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	name := admin.FullName
	if name == "" {
		name = "Administrator"
	}
	_, err = users.Create(ctx, models.User{
		FullName:     name,
		Email:        admin.Email,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	})
	if err == userstore.ErrDuplicateEmail {
		// Another instance won the race; the account exists.
		return nil
	}
	if err != nil {
		return err
	}

	logger.Info("seeded bootstrap admin", zap.String("email", admin.Email))
	return nil
}

// seedSitePages creates empty-but-presentable singleton documents so the
// public site renders before anyone touches the back office.
func seedSitePages(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	footerStore := singleton.New[*models.Footer](db, "footer")
	if _, found, err := footerStore.Get(ctx); err != nil {
		return err
	} else if !found {
		_, err := footerStore.Save(ctx, &models.Footer{
			AboutText: "Jaikvik Technology India Private Limited",
			Copyright: "© Jaikvik Technology. All rights reserved.",
		})
		if err != nil {
			return err
		}
		logger.Info("seeded default footer")
	}

	navbarStore := singleton.New[*models.Navbar](db, "navbar")
	if _, found, err := navbarStore.Get(ctx); err != nil {
		return err
	} else if !found {
		_, err := navbarStore.Save(ctx, &models.Navbar{
			Items: []models.NavItem{
				{Label: "Home", URL: "/", Order: 1},
				{Label: "Services", URL: "/services", Order: 2},
				{Label: "Blogs", URL: "/blogs", Order: 3},
				{Label: "Careers", URL: "/careers", Order: 4},
				{Label: "Contact", URL: "/contact", Order: 5},
			},
		})
		if err != nil {
			return err
		}
		logger.Info("seeded default navbar")
	}

	heroStore := singleton.New[*models.Hero](db, "hero")
	if _, found, err := heroStore.Get(ctx); err != nil {
		return err
	} else if !found {
		_, err := heroStore.Save(ctx, &models.Hero{
			Heading: "Grow your business with us",
			Subtext: "Digital marketing, software development, and media production under one roof.",
		})
		if err != nil {
			return err
		}
		logger.Info("seeded default hero")
	}

	aboutStore := singleton.New[*models.About](db, "about")
	if _, found, err := aboutStore.Get(ctx); err != nil {
		return err
	} else if !found {
		_, err := aboutStore.Save(ctx, &models.About{
			Title: "About Us",
			Body:  "<p>This page can be customized by an administrator.</p>",
		})
		if err != nil {
			return err
		}
		logger.Info("seeded default about page")
	}

	return nil
}
