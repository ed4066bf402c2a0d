package lua

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScript(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "module.lua")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func TestHost_Resolver_CallsNamedFunction(t *testing.T) {
	path := writeScript(t, `
function on_word(word)
  return string.upper(word)
end
`)
	h := NewHost(time.Second)
	resolve, err := h.Resolver(path, "on_word")
	require.NoError(t, err)

	replacement, ok := resolve("cat")
	assert.True(t, ok)
	assert.Equal(t, "CAT", replacement)
}

func TestHost_Resolver_DecliningScriptReturnsFalse(t *testing.T) {
	path := writeScript(t, `
function on_word(word)
  return nil
end
`)
	h := NewHost(time.Second)
	resolve, err := h.Resolver(path, "on_word")
	require.NoError(t, err)

	_, ok := resolve("cat")
	assert.False(t, ok)
}

func TestHost_Resolver_MissingScriptErrors(t *testing.T) {
	h := NewHost(time.Second)
	_, err := h.Resolver(filepath.Join(t.TempDir(), "missing.lua"), "on_word")
	require.Error(t, err)
}

func TestHost_Resolver_SandboxBlocksIO(t *testing.T) {
	path := writeScript(t, `
function on_word(word)
  io.open("/etc/passwd")
  return word
end
`)
	h := NewHost(time.Second)
	resolve, err := h.Resolver(path, "on_word")
	require.NoError(t, err)

	// io is not in the sandboxed library set, so calling it is a runtime
	// error the host turns into a declined match, not a panic.
	_, ok := resolve("cat")
	assert.False(t, ok)
}

func TestHost_Resolver_CachesScriptSourceAcrossCalls(t *testing.T) {
	path := writeScript(t, `
function on_word(word)
  return word .. "!"
end
`)
	h := NewHost(time.Second)
	resolve, err := h.Resolver(path, "on_word")
	require.NoError(t, err)

	first, _ := resolve("a")
	second, _ := resolve("b")
	assert.Equal(t, "a!", first)
	assert.Equal(t, "b!", second)
}
