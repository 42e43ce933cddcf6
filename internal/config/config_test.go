package config_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/escrow-network/escrowd/internal/config"
)

func TestInitConfig(t *testing.T) {
	t.Setenv("ESCROWD_ADMIN_ID", "admin")
	t.Setenv("ESCROWD_DB_TYPE", "inmemory")
	t.Setenv("ESCROWD_FLAT_FEE", "25")

	require.NoError(t, config.InitConfig())

	require.Equal(t, "admin", config.GetString(config.AdminIdKey))
	require.Equal(t, config.DBInMemory, config.GetString(config.DBTypeKey))
	require.EqualValues(t, 25, config.GetUint64(config.FlatFeeKey))

	// defaults
	require.Equal(t, 9945, config.GetInt(config.HTTPListeningPortKey))
	require.Equal(t, config.LedgerInMemory, config.GetString(config.LedgerTypeKey))
	require.Equal(t, "custodian", config.GetString(config.CustodianIdKey))
	require.Equal(t, "credits", config.GetString(config.FeeAssetKey))
	require.False(t, config.GetBool(config.RequireConfirmationKey))
	require.NotEmpty(t, config.GetDatadir())
}

func TestFailingInitConfig(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{
			"missing_admin",
			map[string]string{
				"ESCROWD_DB_TYPE": "inmemory",
			},
		},
		{
			"unsupported_db_type",
			map[string]string{
				"ESCROWD_ADMIN_ID": "admin",
				"ESCROWD_DB_TYPE":  "postgres",
			},
		},
		{
			"unsupported_ledger_type",
			map[string]string{
				"ESCROWD_ADMIN_ID":    "admin",
				"ESCROWD_DB_TYPE":     "inmemory",
				"ESCROWD_LEDGER_TYPE": "grpc",
			},
		},
		{
			"rest_ledger_without_address",
			map[string]string{
				"ESCROWD_ADMIN_ID":    "admin",
				"ESCROWD_DB_TYPE":     "inmemory",
				"ESCROWD_LEDGER_TYPE": "rest",
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			for key, value := range tt.env {
				t.Setenv(key, value)
			}
			require.Error(t, config.InitConfig())
		})
	}
}
