package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lojas7/produtos/config"
)

func useFiles(t *testing.T, appJSON, dotEnv string) {
	t.Helper()
	dir := t.TempDir()

	cfgPath := filepath.Join(dir, "app.json")
	envPath := filepath.Join(dir, ".env")
	if appJSON != "" {
		require.NoError(t, os.WriteFile(cfgPath, []byte(appJSON), 0o644))
	}
	if dotEnv != "" {
		require.NoError(t, os.WriteFile(envPath, []byte(dotEnv), 0o644))
	}

	prevCfg, prevEnv := config.ConfigFile, config.EnvFile
	config.ConfigFile, config.EnvFile = cfgPath, envPath
	config.Reset()
	t.Cleanup(func() {
		config.ConfigFile, config.EnvFile = prevCfg, prevEnv
		config.Reset()
	})
}

func TestDefaultsWithoutFiles(t *testing.T) {
	useFiles(t, "", "")

	assert.Equal(t, "sqlite", config.DatabaseDriver())
	assert.Equal(t, "produtos.db", config.DatabaseDSN())
	assert.Equal(t, "5001", config.AppPort())
	assert.Equal(t, "https://fakestoreapi.com/products", config.CatalogURL())
	assert.Equal(t, "http://pedidos_lojas7:5003/pedidos/criar", config.OrderIntakeURL())
	assert.Equal(t, 30*time.Second, config.HTTPClientTimeout())
	assert.Zero(t, config.CatalogCacheTTL())
	assert.Empty(t, config.GRPCPort())
}

func TestDotEnvOverridesJSON(t *testing.T) {
	useFiles(t,
		`{"app_port": "7000", "catalog_url": "http://json.local/products/"}`,
		"# comment\nAPP_PORT=8000\nCATALOG_CACHE_TTL=\"2m\"\n",
	)

	assert.Equal(t, "8000", config.AppPort())
	assert.Equal(t, "http://json.local/products", config.CatalogURL(), "trailing slash trimmed")
	assert.Equal(t, 2*time.Minute, config.CatalogCacheTTL())
}

func TestProcessEnvWins(t *testing.T) {
	useFiles(t, "", "ORDER_INTAKE_URL=http://from-file/pedidos\n")
	t.Setenv("ORDER_INTAKE_URL", "http://from-env/pedidos")
	config.Reset()

	assert.Equal(t, "http://from-env/pedidos", config.OrderIntakeURL())
}

func TestDriverSpecificDSN(t *testing.T) {
	useFiles(t, `{"db_driver": "postgres"}`, "")
	assert.Equal(t, "postgres", config.DatabaseDriver())
	assert.Contains(t, config.DatabaseDSN(), "dbname=produtos")

	config.Set("DB_DRIVER", "oracle")
	assert.Equal(t, "sqlite", config.DatabaseDriver(), "unknown drivers fall back to sqlite")
}

func TestDurationParsing(t *testing.T) {
	useFiles(t, "", "HTTP_CLIENT_TIMEOUT=5\nCATALOG_REFRESH_INTERVAL=bogus\n")

	assert.Equal(t, 5*time.Second, config.HTTPClientTimeout(), "bare integers are seconds")
	assert.Zero(t, config.CatalogRefreshInterval(), "unparseable values use the fallback")
}
