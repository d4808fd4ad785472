package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	perrors "github.com/PolarWolf314/projfold/internal/errors"
	"github.com/PolarWolf314/projfold/internal/lifecycle"
)

// RedisStore keeps each record in a hash and indexes record IDs in sets.
//
// Keys:
//
//	<prefix>:project:<id>    hash
//	<prefix>:projects        set of project IDs
//	<prefix>:proposal:<id>   hash
//	<prefix>:proposals       set of proposal IDs
type RedisStore struct {
	rdb    *redis.Client
	prefix string
	now    func() time.Time
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(ctx context.Context, opts *redis.Options, prefix string) (*RedisStore, error) {
	if prefix == "" {
		return nil, fmt.Errorf("redis key prefix cannot be empty")
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", opts.Addr, err)
	}
	return &RedisStore{rdb: rdb, prefix: prefix, now: time.Now}, nil
}

func (s *RedisStore) Close() error {
	return s.rdb.Close()
}

func (s *RedisStore) projectKey(id string) string  { return s.prefix + ":project:" + id }
func (s *RedisStore) proposalKey(id string) string { return s.prefix + ":proposal:" + id }
func (s *RedisStore) projectsKey() string          { return s.prefix + ":projects" }
func (s *RedisStore) proposalsKey() string         { return s.prefix + ":proposals" }

func (s *RedisStore) timestamp() string {
	return s.now().UTC().Format(time.RFC3339Nano)
}

func (s *RedisStore) GetProject(ctx context.Context, id string) (*Project, error) {
	hash, err := s.rdb.HGetAll(ctx, s.projectKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load project %s: %w", id, err)
	}
	// HGetAll returns an empty map for missing keys.
	if len(hash) == 0 {
		return nil, projectNotFound(id)
	}
	return projectFromHash(hash), nil
}

func (s *RedisStore) ListProjects(ctx context.Context) ([]Project, error) {
	ids, err := s.rdb.SMembers(ctx, s.projectsKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	sort.Strings(ids)

	projects := make([]Project, 0, len(ids))
	for _, id := range ids {
		p, err := s.GetProject(ctx, id)
		if err != nil {
			if errors.Is(err, perrors.ErrProjectNotFound) {
				continue
			}
			return nil, err
		}
		projects = append(projects, *p)
	}
	return projects, nil
}

func (s *RedisStore) PutProject(ctx context.Context, p *Project) error {
	if err := validateProject(p); err != nil {
		return err
	}
	hash := map[string]any{
		"id":         p.ID,
		"name":       p.Name,
		"short_name": p.ShortName,
		"status":     string(p.Status),
		"folder":     p.Folder,
		"updated_at": s.timestamp(),
	}
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, s.projectKey(p.ID), hash)
		pipe.SAdd(ctx, s.projectsKey(), p.ID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save project %s: %w", p.ID, err)
	}
	return nil
}

func (s *RedisStore) UpdateProjectStatus(ctx context.Context, id string, status lifecycle.Status, folder string) error {
	key := s.projectKey(id)
	exists, err := s.rdb.Exists(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("failed to update status of %s: %w", id, err)
	}
	if exists == 0 {
		return projectNotFound(id)
	}

	fields := map[string]any{"status": string(status), "updated_at": s.timestamp()}
	if folder != "" {
		fields["folder"] = folder
	}
	if err := s.rdb.HSet(ctx, key, fields).Err(); err != nil {
		return fmt.Errorf("failed to update status of %s: %w", id, err)
	}
	return nil
}

func (s *RedisStore) ListProposals(ctx context.Context) ([]Proposal, error) {
	ids, err := s.rdb.SMembers(ctx, s.proposalsKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list proposals: %w", err)
	}
	sort.Strings(ids)

	proposals := make([]Proposal, 0, len(ids))
	for _, id := range ids {
		hash, err := s.rdb.HGetAll(ctx, s.proposalKey(id)).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to load proposal %s: %w", id, err)
		}
		if len(hash) == 0 {
			continue
		}
		proposals = append(proposals, proposalFromHash(hash))
	}
	return proposals, nil
}

func (s *RedisStore) PutProposal(ctx context.Context, p *Proposal) error {
	if err := validateProposal(p); err != nil {
		return err
	}
	hash := map[string]any{
		"id":          p.ID,
		"number":      p.Number,
		"name":        p.Name,
		"project_ref": p.ProjectRef,
		"status":      string(p.Status),
		"updated_at":  s.timestamp(),
	}
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, s.proposalKey(p.ID), hash)
		pipe.SAdd(ctx, s.proposalsKey(), p.ID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save proposal %s: %w", p.ID, err)
	}
	return nil
}

func (s *RedisStore) UpdateProposalStatus(ctx context.Context, id string, status lifecycle.ProposalStatus) error {
	key := s.proposalKey(id)
	exists, err := s.rdb.Exists(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("failed to update proposal %s: %w", id, err)
	}
	if exists == 0 {
		return proposalNotFound(id)
	}
	if err := s.rdb.HSet(ctx, key, "status", string(status), "updated_at", s.timestamp()).Err(); err != nil {
		return fmt.Errorf("failed to update proposal %s: %w", id, err)
	}
	return nil
}

func projectFromHash(hash map[string]string) *Project {
	return &Project{
		ID:        hash["id"],
		Name:      hash["name"],
		ShortName: hash["short_name"],
		Status:    lifecycle.Status(hash["status"]),
		Folder:    hash["folder"],
		UpdatedAt: parseTimestamp(hash["updated_at"]),
	}
}

func proposalFromHash(hash map[string]string) Proposal {
	return Proposal{
		ID:         hash["id"],
		Number:     hash["number"],
		Name:       hash["name"],
		ProjectRef: hash["project_ref"],
		Status:     lifecycle.ProposalStatus(hash["status"]),
		UpdatedAt:  parseTimestamp(hash["updated_at"]),
	}
}
