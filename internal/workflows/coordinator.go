package workflows

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/projfold/internal/audit"
	"github.com/PolarWolf314/projfold/internal/configs"
	perrors "github.com/PolarWolf314/projfold/internal/errors"
	"github.com/PolarWolf314/projfold/internal/folders"
	"github.com/PolarWolf314/projfold/internal/impact"
	logger "github.com/PolarWolf314/projfold/internal/logging"
	"github.com/PolarWolf314/projfold/internal/store"
)

// Coordinator keeps project records and project folders in step.
type Coordinator struct {
	Store       store.Store
	Layout      folders.Layout
	Locator     *folders.Locator
	Provisioner *folders.Provisioner
	Mover       *folders.Mover
	Analyzer    *impact.Analyzer
	Audit       *audit.Recorder
	Log         logger.Logger

	// TemplateSets holds every configured set by name.
	TemplateSets map[string]folders.TemplateSet

	locks *KeyedMutex
}

// Deps are the collaborators of a Coordinator.
type Deps struct {
	Store        store.Store
	Layout       folders.Layout
	AwardSet     folders.TemplateSet
	TemplateSets map[string]folders.TemplateSet
	Audit        *audit.Recorder
	Log          logger.Logger
}

// NewCoordinator wires the folder components around a layout and a store.
func NewCoordinator(deps Deps) *Coordinator {
	locator := folders.NewLocator(deps.Layout, deps.Log)
	provisioner := folders.NewProvisioner(deps.Layout, deps.Log)

	sets := map[string]folders.TemplateSet{}
	for name, set := range deps.TemplateSets {
		sets[name] = set
	}
	if deps.AwardSet.Name != "" {
		sets[deps.AwardSet.Name] = deps.AwardSet
	}

	return &Coordinator{
		Store:        deps.Store,
		Layout:       deps.Layout,
		Locator:      locator,
		Provisioner:  provisioner,
		Mover:        folders.NewMover(locator, provisioner, deps.AwardSet, deps.Log),
		Analyzer:     impact.NewAnalyzer(deps.Store),
		Audit:        deps.Audit,
		Log:          deps.Log,
		TemplateSets: sets,
		locks:        NewKeyedMutex(),
	}
}

// NewFromConfig resolves the base path, opens the configured store and
// returns a ready Coordinator. The caller must Close it.
func NewFromConfig(ctx context.Context, cfg *configs.Config, log logger.Logger) (*Coordinator, error) {
	basePath, err := cfg.ResolveBasePath()
	if err != nil {
		return nil, err
	}
	layout, err := folders.NewLayout(basePath, cfg.TemplateOrigin, cfg.ProjectPattern)
	if err != nil {
		return nil, err
	}

	sets := map[string]folders.TemplateSet{}
	for _, name := range cfg.TemplateSetNames() {
		names, err := cfg.TemplateFolders(name)
		if err != nil {
			return nil, err
		}
		sets[name] = folders.TemplateSet{Name: name, Folders: names}
	}
	award, ok := sets[configs.DefaultTemplateSet]
	if !ok {
		return nil, fmt.Errorf("%w: %q", perrors.ErrUnknownTemplateSet, configs.DefaultTemplateSet)
	}

	s, err := store.Open(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("opening record store: %w", err)
	}
	log.Debugf("Using %s record store", cfg.Database.Driver)

	return NewCoordinator(Deps{
		Store:        s,
		Layout:       layout,
		AwardSet:     award,
		TemplateSets: sets,
		Audit:        audit.NewRecorder(cfg.AuditLog),
		Log:          log,
	}), nil
}

// Close releases the record store.
func (c *Coordinator) Close() error {
	if c.Store == nil {
		return nil
	}
	return c.Store.Close()
}

func errorString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
