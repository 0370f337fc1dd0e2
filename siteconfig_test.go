package kitcompanion

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSiteConfig_EmptyPathUsesDefaults(t *testing.T) {
	cfg, err := LoadSiteConfig("")
	require.NoError(t, err)
	assert.Equal(t, "Parent Protection Kit", cfg.Site.Product)
	assert.Equal(t, 8, cfg.Identity.PasswordPolicy.MinLength)
	assert.NotEmpty(t, cfg.Emergency.Reporting)
}

func TestLoadSiteConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadSiteConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "Senior Cyber Secure", cfg.Site.Name)
}

func TestLoadSiteConfig_ReadsFile(t *testing.T) {
	doc := `site:
  name: Test Site
  product: Test Kit
store:
  name: Shop
  url: https://shop.example.com
stats:
  - value: "$1"
    label: One dollar
products:
  - category: Routers
    items:
      - name: Safe Router
        price: $99
        url: https://example.com/router
emergency:
  reporting:
    - name: Hotline
      phone: 555-0100
      urgent: true
resources:
  - key: mac
    title: Mac
    items:
      - label: Updates
        url: https://example.com/updates
identity:
  user_pool_id: us-east-1_Test
  client_id: abc123
  region: us-east-1
  password_policy:
    min_length: 10
    require_lowercase: true
    require_special_characters: true
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	cfg, err := LoadSiteConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "Test Site", cfg.Site.Name)
	assert.Equal(t, "Shop", cfg.Store.Name)
	require.Len(t, cfg.Stats, 1)
	require.Len(t, cfg.Products, 1)
	assert.Equal(t, "Safe Router", cfg.Products[0].Items[0].Name)
	require.Len(t, cfg.Emergency.Reporting, 1)
	assert.True(t, cfg.Emergency.Reporting[0].Urgent)
	assert.Equal(t, "us-east-1_Test", cfg.Identity.UserPoolID)
	assert.Equal(t, 10, cfg.Identity.PasswordPolicy.MinLength)
	assert.True(t, cfg.Identity.PasswordPolicy.RequireSpecialCharacters)
	assert.False(t, cfg.Identity.PasswordPolicy.RequireUppercase)
}

func TestLoadSiteConfig_MalformedFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("site: [unclosed"), 0644))

	_, err := LoadSiteConfig(path)
	assert.Error(t, err)
}

func TestLoadSiteConfig_ZeroPolicyFallsBackToDefault(t *testing.T) {
	doc := `identity:
  user_pool_id: us-east-1_Test
  region: us-east-1
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	cfg, err := LoadSiteConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultPasswordPolicy(), cfg.Identity.PasswordPolicy)
}
