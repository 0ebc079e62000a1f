package svgconfig

import (
	"strings"
	"testing"

	"github.com/benoitkugler/vectoricons/svgcompose"
	"github.com/benoitkugler/vectoricons/svgdrawable"
	"github.com/benoitkugler/vectoricons/svgicon"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tomlConfig = `
errorMode = "strict"

[vectorDrawable]
autoMirrored = true

[imageVector]
package = "com.example.icons"
extensionTarget = "com.example.AppIcons"
generatePreview = true

[imageVector.colorMappings]
"#000" = "LocalContentColor.current"
"*" = "MaterialTheme.colorScheme.primary"
`

const yamlConfig = `
errorMode: strict
vectorDrawable:
  autoMirrored: true
imageVector:
  package: com.example.icons
  extensionTarget: com.example.AppIcons
  generatePreview: true
  colorMappings:
    "#000": LocalContentColor.current
    "*": MaterialTheme.colorScheme.primary
`

func TestLoadFormats(t *testing.T) {
	fromToml, err := Load(strings.NewReader(tomlConfig), TOML)
	require.NoError(t, err)
	fromYaml, err := Load(strings.NewReader(yamlConfig), YAML)
	require.NoError(t, err)

	if diff := cmp.Diff(fromToml, fromYaml); diff != "" {
		t.Errorf("TOML and YAML mismatch (-toml +yaml):\n%s", diff)
	}

	opts, err := fromYaml.ParseOptions()
	require.NoError(t, err)
	assert.Equal(t, svgicon.Options{ErrorMode: svgicon.StrictErrorMode}, opts)
	assert.Equal(t, svgdrawable.Options{AutoMirrored: true}, fromYaml.DrawableOptions())
	assert.Equal(t, svgcompose.Options{
		Package:         "com.example.icons",
		Name:            "ic_home",
		ExtensionTarget: "com.example.AppIcons",
		ColorMappings: map[string]string{
			"#000": "LocalContentColor.current",
			"*":    "MaterialTheme.colorScheme.primary",
		},
		GeneratePreview: true,
	}, fromToml.ComposeOptions("ic_home"))
}

func TestLoadDefaults(t *testing.T) {
	for _, format := range []Format{TOML, YAML} {
		c, err := Load(strings.NewReader(""), format)
		require.NoError(t, err, format)
		opts, err := c.ParseOptions()
		require.NoError(t, err)
		assert.Equal(t, svgicon.WarnErrorMode, opts.ErrorMode)
		assert.False(t, c.DrawableOptions().AutoMirrored)
	}
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(strings.NewReader(`errorMode = "loud"`), TOML)
	assert.Error(t, err)

	_, err = Load(strings.NewReader(`unknownField = 1`), TOML)
	assert.Error(t, err)

	_, err = Load(strings.NewReader("imageVector:\n  unknown: 1\n"), YAML)
	assert.Error(t, err)

	_, err = Load(strings.NewReader(""), Format(8))
	assert.ErrorIs(t, err, errUnknownFormat)
}

func TestFormatFromFilename(t *testing.T) {
	for name, want := range map[string]Format{
		"icons.toml":     TOML,
		"dir/icons.yaml": YAML,
		"ICONS.YML":      YAML,
	} {
		got, err := FormatFromFilename(name)
		require.NoError(t, err)
		assert.Equal(t, want, got, name)
	}
	_, err := FormatFromFilename("icons.json")
	assert.ErrorIs(t, err, errUnknownFormat)
}
