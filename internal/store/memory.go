package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/PolarWolf314/projfold/internal/lifecycle"
)

// MemoryStore keeps records in memory. It is safe for concurrent use.
type MemoryStore struct {
	mu        sync.RWMutex
	projects  map[string]Project
	proposals map[string]Proposal
	now       func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		projects:  map[string]Project{},
		proposals: map[string]Proposal{},
		now:       time.Now,
	}
}

func (s *MemoryStore) GetProject(ctx context.Context, id string) (*Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.projects[id]
	if !ok {
		return nil, projectNotFound(id)
	}
	return &p, nil
}

func (s *MemoryStore) ListProjects(ctx context.Context) ([]Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	projects := make([]Project, 0, len(s.projects))
	for _, p := range s.projects {
		projects = append(projects, p)
	}
	sort.Slice(projects, func(i, j int) bool { return projects[i].ID < projects[j].ID })
	return projects, nil
}

func (s *MemoryStore) PutProject(ctx context.Context, p *Project) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validateProject(p); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *p
	stored.UpdatedAt = s.now().UTC()
	s.projects[p.ID] = stored
	return nil
}

func (s *MemoryStore) UpdateProjectStatus(ctx context.Context, id string, status lifecycle.Status, folder string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.projects[id]
	if !ok {
		return projectNotFound(id)
	}
	p.Status = status
	if folder != "" {
		p.Folder = folder
	}
	p.UpdatedAt = s.now().UTC()
	s.projects[id] = p
	return nil
}

func (s *MemoryStore) ListProposals(ctx context.Context) ([]Proposal, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	proposals := make([]Proposal, 0, len(s.proposals))
	for _, p := range s.proposals {
		proposals = append(proposals, p)
	}
	sort.Slice(proposals, func(i, j int) bool { return proposals[i].ID < proposals[j].ID })
	return proposals, nil
}

func (s *MemoryStore) PutProposal(ctx context.Context, p *Proposal) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validateProposal(p); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *p
	stored.UpdatedAt = s.now().UTC()
	s.proposals[p.ID] = stored
	return nil
}

func (s *MemoryStore) UpdateProposalStatus(ctx context.Context, id string, status lifecycle.ProposalStatus) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.proposals[id]
	if !ok {
		return proposalNotFound(id)
	}
	p.Status = status
	p.UpdatedAt = s.now().UTC()
	s.proposals[id] = p
	return nil
}

func (s *MemoryStore) Close() error { return nil }
