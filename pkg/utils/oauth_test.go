package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/jakechorley/clinic-roster/internal/config"
)

func TestMissingScopes(t *testing.T) {
	granted := ScopeSheets + " openid " + ScopeGmailSend

	assert.Empty(t, MissingScopes(granted, RequiredScopes()))
	assert.Equal(t, []string{ScopeGmailSend}, MissingScopes(ScopeSheets, RequiredScopes()))
	assert.Equal(t, RequiredScopes(), MissingScopes("", RequiredScopes()))
}

func TestGetOAuthConfig(t *testing.T) {
	cfg := &config.OAuthClientConfig{
		Installed: config.OAuthInstalled{
			ClientID:                "client-id.apps.googleusercontent.com",
			ProjectID:               "clinic-roster",
			AuthURI:                 "https://accounts.google.com/o/oauth2/auth",
			TokenURI:                "https://oauth2.googleapis.com/token",
			AuthProviderX509CertURL: "https://www.googleapis.com/oauth2/v1/certs",
			ClientSecret:            "secret",
			RedirectURIs:            []string{"http://localhost"},
		},
	}

	oauthConfig, err := GetOAuthConfig(cfg)
	require.NoError(t, err)

	assert.Equal(t, "client-id.apps.googleusercontent.com", oauthConfig.ClientID)
	assert.Equal(t, "http://localhost:3000/oauth/callback", oauthConfig.RedirectURL)
	assert.ElementsMatch(t, RequiredScopes(), oauthConfig.Scopes)
}

func TestTokenFileRoundTrip(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	token, err := LoadTokenFromFile("test")
	require.NoError(t, err)
	assert.Nil(t, token, "no stored token yet")

	stored := &oauth2.Token{
		AccessToken:  "access",
		RefreshToken: "refresh",
		TokenType:    "Bearer",
		Expiry:       time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC),
	}
	require.NoError(t, SaveTokenToFile("test", stored))

	info, err := os.Stat(filepath.Join(home, tokenDirName, "token-test.json"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(tokenFilePerms), info.Mode().Perm())

	loaded, err := LoadTokenFromFile("test")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "access", loaded.AccessToken)
	assert.Equal(t, "refresh", loaded.RefreshToken)
	assert.True(t, stored.Expiry.Equal(loaded.Expiry))

	require.NoError(t, DeleteTokenFile("test"))
	require.NoError(t, DeleteTokenFile("test"), "deleting a missing token is not an error")

	loaded, err = LoadTokenFromFile("test")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}
