// internal/app/system/auditlog/auditlog.go

// Package auditlog records staff mutations to the audit_logs collection and
// mirrors them to structured logs. Recording is best effort; an audit write
// failure never fails the request that triggered it.
package auditlog

import (
	"context"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	auditstore "github.com/jaikviktechnology/jaikvik-api/internal/app/store/audit"
	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/auth"
	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/ratelimit"
	"github.com/jaikviktechnology/jaikvik-api/internal/app/system/timeouts"
)

// Logger writes audit entries to Mongo and zap.
type Logger struct {
	store *auditstore.Store
	log   *zap.Logger
}

func New(store *auditstore.Store, log *zap.Logger) *Logger {
	return &Logger{store: store, log: log}
}

// Record writes one audit entry for the acting user on r. Entity is the
// collection name; entityID may be nil for batch operations.
func (l *Logger) Record(r *http.Request, action, entity string, entityID *primitive.ObjectID, details map[string]string) {
	entry := auditstore.Entry{
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		IP:       ratelimit.ClientIP(r),
		Details:  details,
	}
	if user, ok := auth.CurrentUser(r); ok {
		if id, err := primitive.ObjectIDFromHex(user.ID); err == nil {
			entry.ActorID = &id
		}
		entry.ActorName = user.Name
	}

	fields := []zap.Field{
		zap.Bool("audit", true),
		zap.String("action", action),
		zap.String("entity", entity),
		zap.String("actor", entry.ActorName),
		zap.String("ip", entry.IP),
	}
	if entityID != nil {
		fields = append(fields, zap.String("entity_id", entityID.Hex()))
	}
	l.log.Info("audit event", fields...)

	// Detach from the request context so the write survives the response.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeouts.Short())
		defer cancel()
		if err := l.store.Insert(ctx, entry); err != nil {
			l.log.Warn("audit insert failed",
				zap.String("action", action),
				zap.String("entity", entity),
				zap.Error(err))
		}
	}()
}
