// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
We aggregate errors so any problem is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := ensureBlogs(ctx, db); err != nil {
		problems = append(problems, "blogs: "+err.Error())
	}
	if err := ensureBanners(ctx, db); err != nil {
		problems = append(problems, "banners: "+err.Error())
	}
	if err := ensureServices(ctx, db); err != nil {
		problems = append(problems, "services: "+err.Error())
	}
	if err := ensureTeamMembers(ctx, db); err != nil {
		problems = append(problems, "team_members: "+err.Error())
	}
	if err := ensureTestimonials(ctx, db); err != nil {
		problems = append(problems, "testimonials: "+err.Error())
	}
	if err := ensureJobPostings(ctx, db); err != nil {
		problems = append(problems, "job_postings: "+err.Error())
	}
	if err := ensureJobApplications(ctx, db); err != nil {
		problems = append(problems, "job_applications: "+err.Error())
	}
	if err := ensureClients(ctx, db); err != nil {
		problems = append(problems, "clients: "+err.Error())
	}
	if err := ensureEnquiries(ctx, db); err != nil {
		problems = append(problems, "enquiries: "+err.Error())
	}
	if err := ensureAuditLogs(ctx, db); err != nil {
		problems = append(problems, "audit_logs: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Core helper: reconcile a set of desired indexes for one collection         */
/* -------------------------------------------------------------------------- */

type existingIndex struct {
	Name   string `bson:"name"`
	Key    bson.D `bson:"key"`
	Unique *bool  `bson:"unique,omitempty"`
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

func sameBoolPtr(a, b *bool) bool {
	av := false
	bv := false
	if a != nil {
		av = *a
	}
	if b != nil {
		bv = *b
	}
	return av == bv
}

// Best-effort duplicate-detector (works cross-vendors)
func isDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == 11000 { // E11000 duplicate key error index
				return true
			}
		}
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == 11000 {
		return true
	}
	s := err.Error()
	return strings.Contains(s, "E11000") || strings.Contains(strings.ToLower(s), "duplicate key")
}

func listExisting(ctx context.Context, coll *mongo.Collection) (map[string]existingIndex, error) {
	existing := map[string]existingIndex{} // sig -> index
	cur, err := coll.Indexes().List(ctx)
	if err != nil {
		return existing, err
	}
	defer cur.Close(ctx)
	for cur.Next(ctx) {
		var idx existingIndex
		if err := cur.Decode(&idx); err != nil {
			zap.L().Warn("failed to decode existing index",
				zap.String("collection", coll.Name()),
				zap.Error(err))
			continue
		}
		existing[keySig(idx.Key)] = idx
	}
	return existing, nil
}

func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	var errs []string

	for _, m := range models {
		var desiredName string
		var desiredUnique *bool
		if m.Options != nil {
			if m.Options.Name != nil {
				desiredName = *m.Options.Name
			}
			desiredUnique = m.Options.Unique
		}
		desiredSig := keySig(m.Keys.(bson.D))

		start := time.Now()

		existing, _ := listExisting(ctx, coll)

		if ex, ok := existing[desiredSig]; ok {
			if sameBoolPtr(desiredUnique, ex.Unique) && (desiredName == "" || ex.Name == desiredName) {
				// Same keys, same options, same name. Nothing to do.
				continue
			}
			// Name or options differ. Drop and recreate.
			if _, err := coll.Indexes().DropOne(ctx, ex.Name); err != nil {
				errs = append(errs, fmt.Sprintf("%s(%s): drop failed: %v", coll.Name(), desiredName, err))
				continue
			}
		}

		if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
			if isDuplicateKeyErr(err) && desiredUnique != nil && *desiredUnique {
				errs = append(errs, fmt.Sprintf("%s(%s): cannot create unique index (duplicates present)", coll.Name(), desiredName))
			} else {
				errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), desiredName, err))
			}
			continue
		}

		zap.L().Info("index created",
			zap.String("collection", coll.Name()),
			zap.String("name", desiredName),
			zap.String("keys", desiredSig),
			zap.Bool("unique", desiredUnique != nil && *desiredUnique),
			zap.String("took", time.Since(start).String()))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Collection-specific index sets                                             */
/* -------------------------------------------------------------------------- */

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("users")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Email must be unique across all accounts (case/diacritics folded).
		{
			Keys:    bson.D{{Key: "email_ci", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_users_emailci"),
		},
		// Admin user list: filter by role, sort by name.
		{
			Keys:    bson.D{{Key: "role", Value: 1}, {Key: "full_name", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("idx_users_role_fullname_id"),
		},
		// Password reset cleanup worker scans by expiry.
		{
			Keys:    bson.D{{Key: "reset_expires_at", Value: 1}},
			Options: options.Index().SetName("idx_users_reset_expires"),
		},
	})
}

func ensureBlogs(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("blogs")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Slugs are the public lookup key and must be unique.
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_blogs_slug"),
		},
		// Public listing: published posts newest first.
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("idx_blogs_status_created_id"),
		},
		// Category filter within a status.
		{
			Keys:    bson.D{{Key: "category", Value: 1}, {Key: "status", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_blogs_category_status_created"),
		},
		// Admin search by title prefix.
		{
			Keys:    bson.D{{Key: "title_ci", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("idx_blogs_titleci_id"),
		},
	})
}

func ensureBanners(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("banners")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Public carousel: active banners for a platform in display order.
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "platform", Value: 1}, {Key: "order", Value: 1}},
			Options: options.Index().SetName("idx_banners_status_platform_order"),
		},
		// Admin listing in display order.
		{
			Keys:    bson.D{{Key: "order", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("idx_banners_order_id"),
		},
	})
}

func ensureServices(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("services")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_services_slug"),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "order", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("idx_services_status_order_id"),
		},
	})
}

func ensureTeamMembers(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("team_members")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "order", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("idx_team_order_id"),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "order", Value: 1}},
			Options: options.Index().SetName("idx_team_status_order"),
		},
	})
}

func ensureTestimonials(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("testimonials")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "order", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("idx_testimonials_status_order_id"),
		},
	})
}

func ensureJobPostings(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("job_postings")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Careers page: open postings newest first.
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("idx_postings_status_created_id"),
		},
	})
}

func ensureJobApplications(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("job_applications")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// All applications for one posting, newest first.
		{
			Keys:    bson.D{{Key: "posting_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_applications_posting_created"),
		},
		// Review queue filtered by status.
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_applications_status_created"),
		},
	})
}

func ensureClients(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("clients")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "order", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("idx_clients_order_id"),
		},
		{
			Keys:    bson.D{{Key: "name_ci", Value: 1}},
			Options: options.Index().SetName("idx_clients_nameci"),
		},
	})
}

func ensureEnquiries(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("enquiries")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Inbox: filter by status, newest first.
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("idx_enquiries_status_created_id"),
		},
		// Lookup all enquiries from one address.
		{
			Keys:    bson.D{{Key: "email", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_enquiries_email_created"),
		},
	})
}

func ensureAuditLogs(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("audit_logs")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("idx_audit_created_id"),
		},
		{
			Keys:    bson.D{{Key: "actor_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_audit_actor_created"),
		},
		{
			Keys:    bson.D{{Key: "entity", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_audit_entity_created"),
		},
	})
}
