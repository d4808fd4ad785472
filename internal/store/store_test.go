package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PolarWolf314/projfold/internal/configs"
	perrors "github.com/PolarWolf314/projfold/internal/errors"
	"github.com/PolarWolf314/projfold/internal/lifecycle"
)

// setupStores returns one instance of every Store implementation.
func setupStores(t *testing.T) map[string]Store {
	t.Helper()
	ctx := context.Background()

	sqliteStore, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "records.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqliteStore.Close() })

	mr := miniredis.RunT(t)
	redisStore, err := NewRedisStore(ctx, &redis.Options{Addr: mr.Addr()}, "test")
	require.NoError(t, err)
	t.Cleanup(func() { redisStore.Close() })

	return map[string]Store{
		"memory": NewMemoryStore(),
		"sqlite": sqliteStore,
		"redis":  redisStore,
	}
}

func TestProjectRecords(t *testing.T) {
	for name, s := range setupStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			require.NoError(t, s.PutProject(ctx, &Project{ID: "25-97105", Name: "Hotel Tower", ShortName: "Hotel", Status: lifecycle.StatusRFP}))
			require.NoError(t, s.PutProject(ctx, &Project{ID: "24-04401", Name: "Bridge", Status: lifecycle.StatusActive}))

			p, err := s.GetProject(ctx, "25-97105")
			require.NoError(t, err)
			assert.Equal(t, "Hotel Tower", p.Name)
			assert.Equal(t, "Hotel", p.ShortName)
			assert.Equal(t, lifecycle.StatusRFP, p.Status)
			assert.False(t, p.UpdatedAt.IsZero())

			projects, err := s.ListProjects(ctx)
			require.NoError(t, err)
			require.Len(t, projects, 2)
			assert.Equal(t, "24-04401", projects[0].ID)
			assert.Equal(t, "25-97105", projects[1].ID)
		})
	}
}

func TestUpdateProjectStatus(t *testing.T) {
	for name, s := range setupStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, s.PutProject(ctx, &Project{ID: "25-97105", Name: "Hotel", Status: lifecycle.StatusRFP, Folder: "/old"}))

			require.NoError(t, s.UpdateProjectStatus(ctx, "25-97105", lifecycle.StatusAwarded, "/base/11 Current/25-97105 Hotel"))
			p, err := s.GetProject(ctx, "25-97105")
			require.NoError(t, err)
			assert.Equal(t, lifecycle.StatusAwarded, p.Status)
			assert.Equal(t, "/base/11 Current/25-97105 Hotel", p.Folder)
			assert.Equal(t, "Hotel", p.Name)

			// An empty folder keeps the previous one.
			require.NoError(t, s.UpdateProjectStatus(ctx, "25-97105", lifecycle.StatusOnHold, ""))
			p, err = s.GetProject(ctx, "25-97105")
			require.NoError(t, err)
			assert.Equal(t, lifecycle.StatusOnHold, p.Status)
			assert.Equal(t, "/base/11 Current/25-97105 Hotel", p.Folder)
		})
	}
}

func TestMissingRecords(t *testing.T) {
	for name, s := range setupStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := s.GetProject(ctx, "99-99999")
			assert.ErrorIs(t, err, perrors.ErrProjectNotFound)

			err = s.UpdateProjectStatus(ctx, "99-99999", lifecycle.StatusActive, "")
			assert.ErrorIs(t, err, perrors.ErrProjectNotFound)

			err = s.UpdateProposalStatus(ctx, "nope", lifecycle.ProposalAwarded)
			assert.ErrorIs(t, err, perrors.ErrProposalNotFound)
		})
	}
}

func TestPutProjectValidates(t *testing.T) {
	for name, s := range setupStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			err := s.PutProject(ctx, &Project{ID: "25-97105", Status: "Pending"})
			assert.ErrorIs(t, err, perrors.ErrUnknownStatus)

			err = s.PutProject(ctx, &Project{ID: "a/b", Status: lifecycle.StatusRFP})
			assert.ErrorIs(t, err, perrors.ErrInvalidProjectID)
		})
	}
}

func TestProposalRecords(t *testing.T) {
	for name, s := range setupStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			require.NoError(t, s.PutProposal(ctx, &Proposal{ID: "fee-2", Number: "P-0143", ProjectRef: "projects:⟨25-97105⟩", Status: lifecycle.ProposalSent}))
			require.NoError(t, s.PutProposal(ctx, &Proposal{ID: "fee-1", Number: "P-0142", Name: "Design fee", ProjectRef: "projects:25_97105", Status: lifecycle.ProposalDraft}))

			proposals, err := s.ListProposals(ctx)
			require.NoError(t, err)
			require.Len(t, proposals, 2)
			assert.Equal(t, "fee-1", proposals[0].ID)
			assert.Equal(t, "projects:25_97105", proposals[0].ProjectRef)
			assert.Equal(t, "Design fee", proposals[0].Name)

			require.NoError(t, s.UpdateProposalStatus(ctx, "fee-1", lifecycle.ProposalAwarded))
			proposals, err = s.ListProposals(ctx)
			require.NoError(t, err)
			assert.Equal(t, lifecycle.ProposalAwarded, proposals[0].Status)
			assert.Equal(t, lifecycle.ProposalSent, proposals[1].Status)
		})
	}
}

func TestSQLiteStorePersists(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "nested", "records.db")

	s, err := OpenSQLite(ctx, dbPath)
	require.NoError(t, err)
	require.NoError(t, s.PutProject(ctx, &Project{ID: "25-97105", Name: "Hotel", Status: lifecycle.StatusCompleted}))
	require.NoError(t, s.Close())

	s, err = OpenSQLite(ctx, dbPath)
	require.NoError(t, err)
	defer s.Close()

	p, err := s.GetProject(ctx, "25-97105")
	require.NoError(t, err)
	assert.Equal(t, lifecycle.StatusCompleted, p.Status)
	assert.Equal(t, dbPath, s.DBPath())
}

func TestRedisStoreKeys(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	s, err := NewRedisStore(ctx, &redis.Options{Addr: mr.Addr()}, "office")
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.PutProject(ctx, &Project{ID: "25-97105", Name: "Hotel", Status: lifecycle.StatusRFP}))

	assert.Equal(t, "RFP", mr.HGet("office:project:25-97105", "status"))
	members, err := mr.Members("office:projects")
	require.NoError(t, err)
	assert.Equal(t, []string{"25-97105"}, members)
}

func TestNewRedisStoreRejectsEmptyPrefix(t *testing.T) {
	mr := miniredis.RunT(t)
	_, err := NewRedisStore(context.Background(), &redis.Options{Addr: mr.Addr()}, "")
	assert.Error(t, err)
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), configs.DatabaseConfig{Driver: "postgres"})
	assert.ErrorIs(t, err, perrors.ErrUnknownDriver)
}

func TestOpenRedisDriver(t *testing.T) {
	mr := miniredis.RunT(t)
	s, err := Open(context.Background(), configs.DatabaseConfig{Driver: configs.DriverRedis, Addr: mr.Addr(), Prefix: "projfold"})
	require.NoError(t, err)
	defer s.Close()
	assert.IsType(t, &RedisStore{}, s)
}

func TestLoadRecordFileAndImport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.toml")
	content := `
[[projects]]
id = "25-97105"
name = "Hotel Tower"
short_name = "Hotel"
status = "rfp"

[[projects]]
id = "24-04401"
name = "Bridge"
status = "on hold"

[[proposals]]
id = "fee-1"
number = "P-0142"
project = "projects:25_97105"
status = "under review"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	file, err := LoadRecordFile(path)
	require.NoError(t, err)
	require.Len(t, file.Projects, 2)
	assert.Equal(t, lifecycle.StatusRFP, file.Projects[0].Status)
	assert.Equal(t, lifecycle.StatusOnHold, file.Projects[1].Status)
	assert.Equal(t, lifecycle.ProposalUnderReview, file.Proposals[0].Status)

	s := NewMemoryStore()
	result, err := Import(context.Background(), s, file)
	require.NoError(t, err)
	assert.Equal(t, ImportResult{Projects: 2, Proposals: 1}, result)

	p, err := s.GetProject(context.Background(), "25-97105")
	require.NoError(t, err)
	assert.Equal(t, "Hotel", p.ShortName)
}

func TestLoadRecordFileRejectsUnknownStatus(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.toml")
	require.NoError(t, os.WriteFile(path, []byte("[[projects]]\nid = \"25-97105\"\nstatus = \"Pending\"\n"), 0600))

	_, err := LoadRecordFile(path)
	assert.ErrorIs(t, err, perrors.ErrUnknownStatus)
}
