package store

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/PolarWolf314/projfold/internal/configs"
	perrors "github.com/PolarWolf314/projfold/internal/errors"
	"github.com/PolarWolf314/projfold/internal/lifecycle"
)

// Project is the database record of a project.
type Project struct {
	ID        string           `toml:"id"`
	Name      string           `toml:"name"`
	ShortName string           `toml:"short_name"`
	Status    lifecycle.Status `toml:"status"`

	// Folder is the folder name, "<id> <short name>" unless the folder on disk
	// was named otherwise. Status changes rewrite it from the located folder.
	Folder    string    `toml:"folder,omitempty"`
	UpdatedAt time.Time `toml:"-"`
}

// Proposal is a fee proposal. ProjectRef is stored as written by whichever
// system created the record and must be compared with
// lifecycle.NormalizeProjectRef.
type Proposal struct {
	ID         string                   `toml:"id"`
	Number     string                   `toml:"number"`
	Name       string                   `toml:"name"`
	ProjectRef string                   `toml:"project"`
	Status     lifecycle.ProposalStatus `toml:"status"`
	UpdatedAt  time.Time                `toml:"-"`
}

// Store reads and writes project and proposal records.
type Store interface {
	GetProject(ctx context.Context, id string) (*Project, error)
	ListProjects(ctx context.Context) ([]Project, error)
	PutProject(ctx context.Context, p *Project) error
	UpdateProjectStatus(ctx context.Context, id string, status lifecycle.Status, folder string) error

	ListProposals(ctx context.Context) ([]Proposal, error)
	PutProposal(ctx context.Context, p *Proposal) error
	UpdateProposalStatus(ctx context.Context, id string, status lifecycle.ProposalStatus) error

	Close() error
}

// Open returns the store selected by the database configuration.
func Open(ctx context.Context, cfg configs.DatabaseConfig) (Store, error) {
	switch cfg.Driver {
	case configs.DriverSQLite:
		return OpenSQLite(ctx, cfg.Path)
	case configs.DriverRedis:
		return NewRedisStore(ctx, &redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}, cfg.Prefix)
	}
	return nil, fmt.Errorf("%w: %q", perrors.ErrUnknownDriver, cfg.Driver)
}

func projectNotFound(id string) error {
	return fmt.Errorf("%w: %s", perrors.ErrProjectNotFound, id)
}

func proposalNotFound(id string) error {
	return fmt.Errorf("%w: %s", perrors.ErrProposalNotFound, id)
}

func validateProject(p *Project) error {
	if err := lifecycle.ValidateProjectID(p.ID); err != nil {
		return err
	}
	if !p.Status.Valid() {
		return fmt.Errorf("%w: %q", perrors.ErrUnknownStatus, p.Status)
	}
	return nil
}

func validateProposal(p *Proposal) error {
	if p.ID == "" {
		return fmt.Errorf("proposal id cannot be empty")
	}
	if _, err := lifecycle.ParseProposalStatus(string(p.Status)); err != nil {
		return err
	}
	return nil
}
