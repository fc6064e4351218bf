package preset_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	presetrepo "github.com/nhanban-huy/nhan-ban-photo-print/internal/repository/postgres/preset"
	"github.com/nhanban-huy/nhan-ban-photo-print/internal/repository/postgres/testutil"
	"github.com/nhanban-huy/nhan-ban-photo-print/internal/usecase/draft"
)

func TestListFallsBackToDefaults(t *testing.T) {
	repo := presetrepo.NewRepo(testutil.MustOpenDocstore(t))

	out, err := repo.List(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, out)

	names := make([]string, 0, len(out))
	for _, p := range out {
		names = append(names, p.Name)
	}
	require.Contains(t, names, "Photocopy")
	require.Contains(t, names, "Ép plastic")
}

func TestSaveReplacesCatalog(t *testing.T) {
	repo := presetrepo.NewRepo(testutil.MustOpenDocstore(t))
	ctx := context.Background()

	custom := []draft.Preset{{ID: "ps-scan", Name: "Scan tài liệu", DefaultPrice: 2000, Category: "In ấn"}}
	require.NoError(t, repo.Save(ctx, custom))

	out, err := repo.List(ctx)
	require.NoError(t, err)
	require.Equal(t, custom, out)
}
