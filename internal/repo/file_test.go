package repo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetIDFirstAssignmentWins(t *testing.T) {
	set := &Set{}
	set.SetIDFromRepoID("fedora")
	assert.Empty(t, set.ID())

	set.SetIDFromRepoID("copr:copr.fedorainfracloud.org:group_codescan:csutils")
	set.SetIDFromRepoID("copr:copr.fedorainfracloud.org:praiskup:ping")
	assert.Equal(t, "copr.fedorainfracloud.org/@codescan/csutils", set.ID())
}

func TestSetRender(t *testing.T) {
	set := &Set{}
	set.SetIDFromRepoID("copr:hub:owner:project")
	set.Parts = []*Part{
		NewPart("copr:hub:owner:project", "main", "https://results/a/", ""),
		NewPart("coprdep:dep", "dep", "https://results/b/", ""),
	}

	rendered := set.Render()
	assert.Equal(t, set.Parts[0].Render()+"\n"+set.Parts[1].Render(), rendered)
	assert.Contains(t, rendered, "enabled_metadata=1\n\n[coprdep:dep]\n")
}

func TestSaveWritesRepoFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "yum.repos.d")

	set := &Set{}
	set.SetIDFromRepoID("copr:copr.fedorainfracloud.org:group_copr:copr-dev")
	set.Parts = []*Part{NewPart("copr:copr.fedorainfracloud.org:group_copr:copr-dev", "main", "https://results/", "")}

	path, err := set.Save(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "_copr:copr.fedorainfracloud.org:group_copr:copr-dev.repo"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, set.Render(), string(content))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, RepoFilePerm, info.Mode().Perm()&RepoFilePerm)
}

func TestSaveKeepsBroaderPermissions(t *testing.T) {
	dir := t.TempDir()

	set := &Set{}
	set.SetIDFromRepoID("copr:hub:owner:project")
	set.Parts = []*Part{NewPart("copr:hub:owner:project", "main", "https://results/", "")}

	path := filepath.Join(dir, set.Filename())
	require.NoError(t, os.WriteFile(path, []byte("old"), 0600))
	require.NoError(t, os.Chmod(path, 0666))

	_, err := set.Save(dir)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0666), info.Mode().Perm())
}

func TestSaveWithoutID(t *testing.T) {
	_, err := (&Set{}).Save(t.TempDir())
	assert.Error(t, err)
}

func TestLoadLocal(t *testing.T) {
	dir := t.TempDir()

	write := func(name, content string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}

	write("_copr:copr.fedorainfracloud.org:group_copr:copr-dev.repo", `[copr:copr.fedorainfracloud.org:group_copr:copr-dev]
name=Copr repo for copr-dev owned by @copr
baseurl=https://download.copr.fedorainfracloud.org/results/@copr/copr-dev/fedora-$releasever-$basearch/
enabled=1

[copr:copr.fedorainfracloud.org:group_copr:copr-dev:ml]
name=Copr repo for copr-dev owned by @copr (i686)
baseurl=https://download.copr.fedorainfracloud.org/results/@copr/copr-dev/fedora-$releasever-i686/
enabled=0

[coprdep:copr.fedorainfracloud.org:group_python:python3.12]
baseurl=https://download.copr.fedorainfracloud.org/results/@python/python3.12/fedora-$releasever-$basearch/#frag
enabled=1
`)
	write("_copr:copr.fedorainfracloud.org:praiskup:ping.repo", `[copr:copr.fedorainfracloud.org:praiskup:ping]
name=ping
enabled=0
`)
	write("fedora.repo", `[fedora]
name=Fedora $releasever - $basearch
enabled=1

[coprdep:stray]
enabled=1
`)
	write("not-a-repo.txt", "[copr:hub:owner:ignored]\n")

	sets, err := LoadLocal(dir)
	require.NoError(t, err)
	require.Len(t, sets, 2)

	dev := sets[0]
	assert.Equal(t, "copr.fedorainfracloud.org/@copr/copr-dev", dev.ID())
	require.Len(t, dev.Parts, 3)
	assert.True(t, dev.Enabled())
	assert.True(t, dev.Multilib())
	assert.True(t, dev.HasExternalDeps())
	assert.False(t, dev.Parts[1].Enabled)

	ping := sets[1]
	assert.Equal(t, "copr.fedorainfracloud.org/praiskup/ping", ping.ID())
	assert.False(t, ping.Enabled())
	assert.False(t, ping.Multilib())
	assert.False(t, ping.HasExternalDeps())
}

func TestLoadLocalMissingDir(t *testing.T) {
	sets, err := LoadLocal(filepath.Join(t.TempDir(), "missing"))
	require.NoError(t, err)
	assert.Empty(t, sets)
}
