package store

import (
	"context"
	stdsql "database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib" // Register pgx driver for database/sql

	"github.com/mockstage/mockstage/pkg/models"
)

//go:embed migrations
var migrationsFS embed.FS

// PostgresConfig holds database connection settings
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// Postgres is the production Store backed by PostgreSQL
type Postgres struct {
	db *stdsql.DB
}

// NewPostgres opens a pooled connection and applies pending migrations
func NewPostgres(ctx context.Context, cfg PostgresConfig) (*Postgres, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Database, cfg.SSLMode,
	)

	db, err := stdsql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Postgres{db: db}, nil
}

// runMigrations applies the embedded migration files. Migrations are
// embedded so production deployments need no external files.
func runMigrations(db *stdsql.DB) error {
	source, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to open embedded migrations: %w", err)
	}
	sourceDriver, err := iofs.New(source, ".")
	if err != nil {
		return fmt.Errorf("failed to create migration source: %w", err)
	}
	dbDriver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", sourceDriver, "postgres", dbDriver)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// DB returns the underlying connection for health checks
func (p *Postgres) DB() *stdsql.DB {
	return p.db
}

func (p *Postgres) SaveInterview(ctx context.Context, rec InterviewRecord) error {
	weak, err := json.Marshal(rec.WeakAreas)
	if err != nil {
		return fmt.Errorf("failed to encode weak areas: %w", err)
	}
	strong, err := json.Marshal(rec.StrongAreas)
	if err != nil {
		return fmt.Errorf("failed to encode strong areas: %w", err)
	}
	suggestions, err := json.Marshal(rec.Suggestions)
	if err != nil {
		return fmt.Errorf("failed to encode suggestions: %w", err)
	}

	_, err = p.db.ExecContext(ctx, `
		INSERT INTO interviews (
			id, user_id, interview_type, interview_mode, difficulty, status,
			overall_score, content_score, relevance_score, clarity_score,
			fluency_score, confidence_score,
			weak_areas, strong_areas, suggestions, started_at, completed_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
		ON CONFLICT (id) DO UPDATE SET
			status = EXCLUDED.status,
			overall_score = EXCLUDED.overall_score,
			content_score = EXCLUDED.content_score,
			relevance_score = EXCLUDED.relevance_score,
			clarity_score = EXCLUDED.clarity_score,
			fluency_score = EXCLUDED.fluency_score,
			confidence_score = EXCLUDED.confidence_score,
			weak_areas = EXCLUDED.weak_areas,
			strong_areas = EXCLUDED.strong_areas,
			suggestions = EXCLUDED.suggestions,
			completed_at = EXCLUDED.completed_at`,
		rec.ID, rec.UserID, rec.Type, rec.Mode, rec.Difficulty, rec.Status,
		rec.Scores.OverallScore, rec.Scores.ContentScore, rec.Scores.RelevanceScore,
		rec.Scores.ClarityScore, rec.Scores.FluencyScore, rec.Scores.ConfidenceScore,
		weak, strong, suggestions, rec.StartedAt, rec.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save interview: %w", err)
	}
	return nil
}

func (p *Postgres) SaveResponses(ctx context.Context, recs []ResponseRecord) error {
	if len(recs) == 0 {
		return nil
	}
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, rec := range recs {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO responses (
				interview_id, question_order, question_text, category, answer_text,
				content_score, relevance_score, clarity_score, fluency_score,
				confidence_score, audio_ref, video_ref
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
			ON CONFLICT (interview_id, question_order) DO NOTHING`,
			rec.InterviewID, rec.QuestionOrder, rec.QuestionText, rec.Category,
			rec.AnswerText, rec.ContentScore, rec.RelevanceScore, rec.ClarityScore,
			rec.FluencyScore, rec.ConfidenceScore, rec.AudioRef, rec.VideoRef,
		)
		if err != nil {
			return fmt.Errorf("failed to save response %d: %w", rec.QuestionOrder, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit responses: %w", err)
	}
	return nil
}

func (p *Postgres) CompletedInterviews(ctx context.Context, userID string, interviewType models.InterviewType) ([]InterviewRecord, error) {
	query := `
		SELECT id, user_id, interview_type, interview_mode, difficulty, status,
		       overall_score, content_score, relevance_score, clarity_score,
		       fluency_score, confidence_score,
		       weak_areas, strong_areas, suggestions, started_at, completed_at
		FROM interviews
		WHERE user_id = $1 AND status = 'completed'`
	args := []any{userID}
	if interviewType != "" {
		query += ` AND interview_type = $2`
		args = append(args, interviewType)
	}
	query += ` ORDER BY completed_at ASC`

	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query interviews: %w", err)
	}
	defer rows.Close()

	var out []InterviewRecord
	for rows.Next() {
		var rec InterviewRecord
		var weak, strong, suggestions []byte
		if err := rows.Scan(
			&rec.ID, &rec.UserID, &rec.Type, &rec.Mode, &rec.Difficulty, &rec.Status,
			&rec.Scores.OverallScore, &rec.Scores.ContentScore, &rec.Scores.RelevanceScore,
			&rec.Scores.ClarityScore, &rec.Scores.FluencyScore, &rec.Scores.ConfidenceScore,
			&weak, &strong, &suggestions, &rec.StartedAt, &rec.CompletedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan interview: %w", err)
		}
		if err := json.Unmarshal(weak, &rec.WeakAreas); err != nil {
			return nil, fmt.Errorf("failed to decode weak areas: %w", err)
		}
		if err := json.Unmarshal(strong, &rec.StrongAreas); err != nil {
			return nil, fmt.Errorf("failed to decode strong areas: %w", err)
		}
		if err := json.Unmarshal(suggestions, &rec.Suggestions); err != nil {
			return nil, fmt.Errorf("failed to decode suggestions: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read interviews: %w", err)
	}
	return out, nil
}

func (p *Postgres) Close() error {
	return p.db.Close()
}
