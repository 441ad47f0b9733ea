package workflows

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/PolarWolf314/modelorg/internal/archive"
	"github.com/PolarWolf314/modelorg/internal/configs"
	"github.com/PolarWolf314/modelorg/internal/document"
	kerrors "github.com/PolarWolf314/modelorg/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const inputData = "0.000 0.841 0.909 0.141\n"

// seedTrigo creates project trigo with experiment sine holding input.dat.
func seedTrigo(t *testing.T, env *testEnv) (root, expdir string) {
	t.Helper()
	root = env.setup(t, "trigo").Root
	result, err := Init(context.Background(), env.store, InitOptions{Experiment: "sine", Description: "sine fit"})
	require.NoError(t, err)
	writeFile(t, filepath.Join(result.ExpDir, "input.dat"), inputData)
	writeFile(t, filepath.Join(result.ExpDir, "scratch.tmp"), "partial")
	return root, result.ExpDir
}

func withoutTimestamps(t *testing.T, doc *document.Map) string {
	t.Helper()
	c := doc.Clone()
	c.Delete(configs.KeyTimestamps)
	data, err := document.Marshal(c)
	require.NoError(t, err)
	return string(data)
}

func TestArchiveRoundTrip(t *testing.T) {
	for _, format := range archive.Formats() {
		t.Run(format, func(t *testing.T) {
			env := newTestEnv(t)
			env.store.Settings.Archive.Exclude = []string{"**/*.tmp"}
			root, expdir := seedTrigo(t, env)
			ctx := context.Background()

			s := env.reload(t)
			s.Settings.Archive.Exclude = []string{"**/*.tmp"}
			e, err := s.Experiment("sine")
			require.NoError(t, err)
			wantExperiment := withoutTimestamps(t, e.Doc())
			p, err := s.Project("trigo")
			require.NoError(t, err)
			wantProject := withoutTimestamps(t, p.Doc())

			archived, err := Archive(ctx, s, ArchiveOptions{Destination: env.home, Format: format, Remove: true})
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(env.home, "trigo."+format), archived.Container)
			assert.True(t, archived.Removed)
			assert.Equal(t, []string{"sine"}, archived.Experiments)
			assert.True(t, exists(archived.Container))
			assert.False(t, exists(root))

			s = env.reload(t)
			assert.True(t, s.IsArchived("trigo"))
			assert.True(t, s.ExperimentArchived("sine"))

			_, err = GetValue(ctx, s, ValueOptions{Experiment: "sine", Key: "description"})
			assert.ErrorIs(t, err, kerrors.ErrAlreadyArchived)
			_, err = Archive(ctx, s, ArchiveOptions{Project: "trigo", Destination: env.home, Format: format})
			assert.ErrorIs(t, err, kerrors.ErrAlreadyArchived)

			restored, err := Unarchive(ctx, s, UnarchiveOptions{Experiment: "sine", Complete: true})
			require.NoError(t, err)
			assert.Equal(t, root, restored.Root)
			assert.Equal(t, []string{"sine"}, restored.Experiments)
			assert.Empty(t, restored.Missing)

			got, err := os.ReadFile(filepath.Join(expdir, "input.dat"))
			require.NoError(t, err)
			assert.Equal(t, inputData, string(got))
			assert.False(t, exists(filepath.Join(expdir, "scratch.tmp")))

			s = env.reload(t)
			assert.False(t, s.IsArchived("trigo"))
			assert.Equal(t, "sine", s.Global.CurrentExperiment())

			e, err = s.Experiment("sine")
			require.NoError(t, err)
			assert.Equal(t, wantExperiment, withoutTimestamps(t, e.Doc()))
			assert.True(t, e.Timestamps().Has(OpArchive))
			assert.True(t, e.Timestamps().Has(OpUnarchive))

			p, err = s.Project("trigo")
			require.NoError(t, err)
			assert.Equal(t, wantProject, withoutTimestamps(t, p.Doc()))
			assert.False(t, p.Archived())
		})
	}
}

func TestArchiveKeepsRootWithoutRemove(t *testing.T) {
	env := newTestEnv(t)
	root, _ := seedTrigo(t, env)

	result, err := Archive(context.Background(), env.store, ArchiveOptions{Destination: env.home})
	require.NoError(t, err)
	assert.False(t, result.Removed)
	assert.Equal(t, "tar", result.Format)
	assert.True(t, exists(root))

	s := env.reload(t)
	assert.True(t, s.IsArchived("trigo"))
	p, err := s.Project("trigo")
	require.NoError(t, err)
	assert.True(t, p.Archived())
}

func TestArchiveWriteFailureLeavesProjectUntouched(t *testing.T) {
	env := newTestEnv(t)
	root, expdir := seedTrigo(t, env)

	_, err := Archive(context.Background(), env.store, ArchiveOptions{
		Destination: filepath.Join(env.home, "no", "such", "dir"),
		Remove:      true,
	})
	assert.ErrorIs(t, err, kerrors.ErrArchiveWrite)
	assert.True(t, exists(filepath.Join(expdir, "input.dat")))

	s := env.reload(t)
	assert.False(t, s.IsArchived("trigo"))
	p, err := s.Project("trigo")
	require.NoError(t, err)
	assert.Equal(t, root, p.Root())
	assert.False(t, p.Archived())
	assert.False(t, p.Doc().Map(configs.KeyTimestamps).Has(OpArchive))
}

func TestArchiveRejectsContainerInsideRoot(t *testing.T) {
	env := newTestEnv(t)
	root, _ := seedTrigo(t, env)

	_, err := Archive(context.Background(), env.store, ArchiveOptions{Destination: root, Remove: true})
	assert.ErrorIs(t, err, kerrors.ErrArchiveWrite)
	assert.True(t, exists(root))
}

func TestArchiveUnknownFormat(t *testing.T) {
	env := newTestEnv(t)
	seedTrigo(t, env)

	_, err := Archive(context.Background(), env.store, ArchiveOptions{Destination: env.home, Format: "rar"})
	assert.ErrorIs(t, err, kerrors.ErrInvalidValue)
}

func TestUnarchiveActiveProject(t *testing.T) {
	env := newTestEnv(t)
	root, _ := seedTrigo(t, env)
	ctx := context.Background()

	archived, err := Archive(ctx, env.store, ArchiveOptions{Destination: env.home})
	require.NoError(t, err)

	// The root was kept, so unarchiving replaces it in place.
	restored, err := Unarchive(ctx, env.store, UnarchiveOptions{})
	require.NoError(t, err)
	assert.Equal(t, root, restored.Root)

	_, err = Unarchive(ctx, env.store, UnarchiveOptions{Container: archived.Container})
	assert.ErrorIs(t, err, kerrors.ErrAlreadyActive)
}

func TestUnarchiveIncompleteContainer(t *testing.T) {
	env := newTestEnv(t)
	root, _ := seedTrigo(t, env)
	ctx := context.Background()

	_, err := Archive(ctx, env.store, ArchiveOptions{Destination: env.home, Remove: true})
	require.NoError(t, err)

	// An experiment registered after the container was written.
	env.store.Global.SetExperiment("cosine", "trigo")
	require.NoError(t, env.store.Save())

	_, err = Unarchive(ctx, env.store, UnarchiveOptions{Project: "trigo", Complete: true})
	assert.ErrorIs(t, err, kerrors.ErrIncompleteArchive)
	assert.False(t, exists(root))
	assert.True(t, env.store.IsArchived("trigo"))

	result, err := Unarchive(ctx, env.store, UnarchiveOptions{Project: "trigo"})
	require.NoError(t, err)
	assert.Equal(t, []string{"cosine"}, result.Missing)

	s := env.reload(t)
	_, ok := s.Global.ExperimentProject("cosine")
	assert.False(t, ok)
	assert.Equal(t, []string{"sine"}, s.Global.ExperimentsOf("trigo"))
}

func TestUnarchiveRestoresForgottenProject(t *testing.T) {
	env := newTestEnv(t)
	seedTrigo(t, env)
	ctx := context.Background()

	archived, err := Archive(ctx, env.store, ArchiveOptions{Destination: env.home, Format: "zip", Remove: true})
	require.NoError(t, err)
	_, err = Remove(ctx, env.store, RemoveOptions{Project: "trigo", All: true, Yes: true})
	require.NoError(t, err)
	require.Empty(t, env.reload(t).Global.Projects())

	dest := filepath.Join(env.home, "restored")
	result, err := Unarchive(ctx, env.store, UnarchiveOptions{Experiment: "sine", Container: archived.Container, Destination: dest})
	require.NoError(t, err)
	assert.Equal(t, "trigo", result.Project)
	assert.Equal(t, filepath.Join(dest, "trigo"), result.Root)

	s := env.reload(t)
	owner, ok := s.Global.ExperimentProject("sine")
	require.True(t, ok)
	assert.Equal(t, "trigo", owner)

	e, err := s.Experiment("sine")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dest, "trigo", "experiments", "sine"), e.ExpDir())
	got, err := os.ReadFile(filepath.Join(e.ExpDir(), "input.dat"))
	require.NoError(t, err)
	assert.Equal(t, inputData, string(got))
}

func TestUnarchiveMalformedContainer(t *testing.T) {
	env := newTestEnv(t)
	container := filepath.Join(env.home, "trigo.tar")
	writeFile(t, container, "definitely not a tarball")

	_, err := Unarchive(context.Background(), env.store, UnarchiveOptions{Container: container, Destination: env.home})
	assert.ErrorIs(t, err, kerrors.ErrExtract)
	assert.False(t, exists(filepath.Join(env.home, "trigo")))
	assert.Empty(t, env.reload(t).Global.Projects())
}

func TestUnarchiveWithoutContainer(t *testing.T) {
	env := newTestEnv(t)
	seedTrigo(t, env)

	_, err := Unarchive(context.Background(), env.store, UnarchiveOptions{Project: "trigo"})
	assert.ErrorIs(t, err, kerrors.ErrNotFound)
}
