package auth

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvProvider(t *testing.T) {
	t.Setenv("MONDAY_API_TOKEN", "env-token")

	provider := &EnvProvider{}
	token, err := provider.GetToken()

	require.NoError(t, err)
	assert.Equal(t, "env-token", token)
}

func TestEnvProviderEmpty(t *testing.T) {
	t.Setenv("MONDAY_API_TOKEN", "")

	provider := &EnvProvider{}
	_, err := provider.GetToken()

	assert.Error(t, err)
}

func TestConfigProvider(t *testing.T) {
	viper.Set("api_token", "config-token")
	defer viper.Set("api_token", "")

	provider := &ConfigProvider{}
	token, err := provider.GetToken()

	require.NoError(t, err)
	assert.Equal(t, "config-token", token)
}

func TestGetTokenPrefersEnv(t *testing.T) {
	t.Setenv("MONDAY_API_TOKEN", "env-token")
	viper.Set("api_token", "config-token")
	defer viper.Set("api_token", "")

	token, err := GetToken()

	require.NoError(t, err)
	assert.Equal(t, "env-token", token)
}

func TestGetTokenFallsBackToConfig(t *testing.T) {
	t.Setenv("MONDAY_API_TOKEN", "")
	viper.Set("api_token", "config-token")
	defer viper.Set("api_token", "")

	token, err := GetToken()

	require.NoError(t, err)
	assert.Equal(t, "config-token", token)
}

func TestGetTokenBothMissing(t *testing.T) {
	t.Setenv("MONDAY_API_TOKEN", "")
	viper.Set("api_token", "")

	_, err := GetToken()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "MONDAY_API_TOKEN")
}
