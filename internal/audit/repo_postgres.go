package audit

import (
	"context"
	"database/sql"
)

// NOTE: This repository assumes the following table exists:
//
//   audit_events (
//     id            UUID PRIMARY KEY,
//     type          VARCHAR NOT NULL,
//     actor_user_id UUID,
//     actor_role    VARCHAR,
//     ip_address    VARCHAR,
//     target_type   VARCHAR,
//     target_id     VARCHAR,
//     message       TEXT,
//     metadata      JSONB,
//     created_at    TIMESTAMPTZ NOT NULL
//   )

type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo {
	return &PostgresRepo{db: db}
}

func (r *PostgresRepo) Append(ctx context.Context, e Event) error {
	const q = `
INSERT INTO audit_events (
  id, type, actor_user_id, actor_role, ip_address, target_type, target_id, message, metadata, created_at
) VALUES (
  $1,$2,NULLIF($3,''),$4,$5,$6,$7,$8,NULLIF($9,'')::jsonb,$10
)
`
	_, err := r.db.ExecContext(ctx, q,
		e.ID,
		string(e.Type),
		e.ActorUserID,
		e.ActorRole,
		e.IPAddress,
		e.TargetType,
		e.TargetID,
		e.Message,
		e.Metadata,
		e.CreatedAt,
	)
	return err
}
