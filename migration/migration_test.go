package migration

import (
	"testing"

	"github.com/campusboard/backend/internal/entity"
	"github.com/campusboard/backend/pkg/testutil"
	"github.com/campusboard/backend/pkg/xcontext"

	"github.com/stretchr/testify/require"
)

func TestMigrateMySQL(t *testing.T) {
	ctx := testutil.MockContext()
	require.NoError(t, MigrateMySQL(ctx))

	// A second run must be a no-op.
	require.NoError(t, MigrateMySQL(ctx))

	migrator := xcontext.DB(ctx).Migrator()
	require.True(t, migrator.HasTable(&entity.Board{}))
	require.True(t, migrator.HasTable(&entity.PointHistory{}))
	require.True(t, migrator.HasColumn(&entity.Board{}, "post_count"))
}

func TestCQLSource(t *testing.T) {
	src, err := newCQLSource()
	require.NoError(t, err)
	defer src.Close()

	version, err := src.First()
	require.NoError(t, err)
	require.Equal(t, uint(1), version)

	r, identifier, err := src.ReadUp(version)
	require.NoError(t, err)
	defer r.Close()
	require.Equal(t, "create_messages", identifier)

	_, err = src.Next(version)
	require.Error(t, err)
}
