package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const directoryTOML = `
[[university]]
id = "kaist"
name = "KAIST"
email_domains = ["kaist.ac.kr"]
departments = ["cs", "ee"]

[[university]]
id = "snu"
name = "Seoul National University"
email_domains = ["snu.ac.kr"]
`

func TestLoadUniversityDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "universities.toml")
	require.NoError(t, os.WriteFile(path, []byte(directoryTOML), 0600))

	dir, err := LoadUniversityDirectory(path)
	require.NoError(t, err)
	require.Len(t, dir.Universities, 2)

	u, ok := dir.ByEmail("alice@kaist.ac.kr")
	require.True(t, ok)
	require.Equal(t, "kaist", u.ID)
	require.Equal(t, []string{"cs", "ee"}, u.Departments)

	u, ok = dir.ByEmail("bob@mail.SNU.ac.kr")
	require.True(t, ok)
	require.Equal(t, "snu", u.ID)

	_, ok = dir.ByEmail("eve@gmail.com")
	require.False(t, ok)

	_, ok = dir.ByEmail("broken@")
	require.False(t, ok)

	_, ok = dir.ByEmail("evil@notkaist.ac.kr")
	require.False(t, ok)
}

func TestUniversity_HasDepartment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "universities.toml")
	require.NoError(t, os.WriteFile(path, []byte(directoryTOML), 0600))

	dir, err := LoadUniversityDirectory(path)
	require.NoError(t, err)

	kaist, ok := dir.ByID("kaist")
	require.True(t, ok)
	require.True(t, kaist.HasDepartment("cs"))
	require.False(t, kaist.HasDepartment("law"))

	// No list means any department is accepted.
	snu, ok := dir.ByID("snu")
	require.True(t, ok)
	require.True(t, snu.HasDepartment("law"))

	_, ok = dir.ByID("mit")
	require.False(t, ok)
}
