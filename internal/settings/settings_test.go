package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josephgoksu/Taskify/internal/kv"
)

func TestOpen_Defaults(t *testing.T) {
	s := Open(kv.NewMemoryBackend(), nil)
	assert.Equal(t, Defaults(), s.App())
	assert.Equal(t, ThemeSystem, s.Theme())
}

func TestOpen_StoredValues(t *testing.T) {
	b := kv.NewMemoryBackend()
	b.Inject(SettingsKey, []byte(`{"darkMode":true,"showProgressBar":false,"enableQuotes":false,"enableDragAndDrop":true}`))
	b.Inject(ThemeKey, []byte(`"dark"`))

	s := Open(b, nil)
	assert.Equal(t, AppSettings{DarkMode: true, EnableDragAndDrop: true}, s.App())
	assert.Equal(t, ThemeDark, s.Theme())
}

func TestTheme_UnknownReadsAsSystem(t *testing.T) {
	b := kv.NewMemoryBackend()
	b.Inject(ThemeKey, []byte(`"sepia"`))
	assert.Equal(t, ThemeSystem, Open(b, nil).Theme())
}

func TestSetTheme(t *testing.T) {
	b := kv.NewMemoryBackend()
	s := Open(b, nil)

	require.NoError(t, s.SetTheme(ThemeLight))
	raw, ok, err := b.Load(ThemeKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `"light"`, string(raw))

	assert.Error(t, s.SetTheme("neon"))
	assert.Equal(t, ThemeLight, s.Theme())
}

func TestEffective(t *testing.T) {
	assert.Equal(t, ThemeDark, Effective(ThemeDark, false))
	assert.Equal(t, ThemeLight, Effective(ThemeLight, true))
	assert.Equal(t, ThemeDark, Effective(ThemeSystem, true))
	assert.Equal(t, ThemeLight, Effective(ThemeSystem, false))
	assert.Equal(t, ThemeLight, Effective("bogus", false))
}
