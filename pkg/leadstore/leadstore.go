// Package leadstore persists collected leads to Postgres. It is one
// implementation of the lead-logging collaborator; deployments without a
// database use the console implementation instead.
package leadstore

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	contractx "github.com/pharmesol/pharmline/agent/contract"
)

type Config struct {
	DSN string `envconfig:"DSN" split_words:"true" required:"true"`
}

type leadRow struct {
	bun.BaseModel `bun:"table:leads,alias:l"`

	ID            string    `bun:"id,pk"`
	PharmacyName  string    `bun:"pharmacy_name,notnull"`
	Phone         string    `bun:"phone,notnull"`
	Email         string    `bun:"email"`
	Location      string    `bun:"location"`
	ContactPerson string    `bun:"contact_person"`
	RxVolume      int       `bun:"rx_volume"`
	CompletionPct int       `bun:"completion_pct"`
	Interests     string    `bun:"interests"`
	Notes         string    `bun:"notes"`
	CreatedAt     time.Time `bun:"created_at,notnull"`
}

type Store struct {
	db  *bun.DB
	now func() time.Time
}

var _ contractx.LeadLogger = (*Store)(nil)

func New(cfg Config) (*Store, error) {
	dsn := strings.TrimSpace(cfg.DSN)
	if dsn == "" {
		return nil, errors.New("lead store dsn is required")
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	return &Store{
		db:  bun.NewDB(sqldb, pgdialect.New()),
		now: time.Now,
	}, nil
}

// EnsureSchema creates the leads table if it does not exist yet.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.db.NewCreateTable().
		Model((*leadRow)(nil)).
		IfNotExists().
		Exec(ctx)
	return err
}

// Log inserts one lead snapshot. Each call is a new row; later snapshots
// of the same caller are kept, not merged, so the CRM sees the history.
func (s *Store) Log(ctx context.Context, lead contractx.LeadFields) error {
	row := &leadRow{
		ID:            uuid.NewString(),
		PharmacyName:  lead.PharmacyName,
		Phone:         lead.Phone,
		Email:         lead.Email,
		Location:      lead.Location,
		ContactPerson: lead.ContactPerson,
		RxVolume:      lead.RxVolume,
		CompletionPct: lead.CompletionPct,
		Interests:     strings.Join(lead.Interests, ", "),
		Notes:         lead.Notes,
		CreatedAt:     s.now().UTC(),
	}
	_, err := s.db.NewInsert().Model(row).Exec(ctx)
	return err
}

func (s *Store) Close() error {
	return s.db.Close()
}
