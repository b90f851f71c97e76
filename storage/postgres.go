package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ewintr.nl/learnpath/model"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

type PostgresInfo struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
}

func (pi PostgresInfo) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable", pi.Host, pi.Port, pi.User, pi.Password, pi.Database)
}

type Postgres struct {
	db *sqlx.DB
}

func NewPostgres(pgInfo PostgresInfo) (*Postgres, error) {
	db, err := sqlx.Connect("postgres", pgInfo.DSN())
	if err != nil {
		return &Postgres{}, err
	}

	return NewPostgresWithDB(db)
}

func NewPostgresWithDB(db *sqlx.DB) (*Postgres, error) {
	p := &Postgres{db: db}
	if err := p.migrate(pgMigration); err != nil {
		return &Postgres{}, err
	}

	return p, nil
}

func (p *Postgres) Close() error {
	return p.db.Close()
}

func (p *Postgres) Save(plan *model.Plan) error {
	plan.UpdatedAt = time.Now()
	doc, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("failed to marshal plan: %w", err)
	}

	query := `INSERT INTO plan (id, status, topic, email, document, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (id)
DO UPDATE SET
  status = EXCLUDED.status,
  document = EXCLUDED.document,
  updated_at = EXCLUDED.updated_at`
	if _, err := p.db.Exec(query, plan.ID, string(plan.Status), plan.Profile.Topic, plan.Profile.Email, doc, plan.CreatedAt, plan.UpdatedAt); err != nil {
		return fmt.Errorf("failed to save plan: %w", err)
	}

	return nil
}

type planRow struct {
	Document []byte `db:"document"`
}

func (p *Postgres) FindByID(id uuid.UUID) (*model.Plan, error) {
	var row planRow
	if err := p.db.Get(&row, `SELECT document FROM plan WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return decodePlan(row)
}

func (p *Postgres) FindAll() ([]*model.Plan, error) {
	rows := []planRow{}
	if err := p.db.Select(&rows, `SELECT document FROM plan ORDER BY created_at DESC`); err != nil {
		return []*model.Plan{}, err
	}

	plans := make([]*model.Plan, 0, len(rows))
	for _, row := range rows {
		plan, err := decodePlan(row)
		if err != nil {
			return []*model.Plan{}, err
		}
		plans = append(plans, plan)
	}

	return plans, nil
}

func decodePlan(row planRow) (*model.Plan, error) {
	plan := &model.Plan{}
	if err := json.Unmarshal(row.Document, plan); err != nil {
		return nil, fmt.Errorf("failed to unmarshal plan: %w", err)
	}

	return plan, nil
}

func (p *Postgres) migrate(wanted []string) error {
	query := `CREATE TABLE IF NOT EXISTS migration
("id" SERIAL PRIMARY KEY, "query" TEXT)`
	_, err := p.db.Exec(query)
	if err != nil {
		return err
	}

	// find existing
	existing := []string{}
	if err := p.db.Select(&existing, `SELECT query FROM migration ORDER BY id`); err != nil {
		return err
	}

	// compare
	missing, err := compareMigrations(wanted, existing)
	if err != nil {
		return err
	}

	// execute missing
	for _, query := range missing {
		if _, err := p.db.Exec(query); err != nil {
			return err
		}

		// register
		if _, err := p.db.Exec(`
INSERT INTO migration
(query) VALUES ($1)
`, query); err != nil {
			return err
		}
	}

	return nil
}

func compareMigrations(wanted, existing []string) ([]string, error) {
	needed := []string{}
	if len(wanted) < len(existing) {
		return []string{}, fmt.Errorf("not enough migrations")
	}

	for i, want := range wanted {
		switch {
		case i >= len(existing):
			needed = append(needed, want)
		case want == existing[i]:
			// do nothing
		case want != existing[i]:
			return []string{}, fmt.Errorf("incompatible migration: %v", want)
		}
	}

	return needed, nil
}
