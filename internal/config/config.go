package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

const (
	// DatadirKey is the local data directory to store the internal state of
	// the daemon.
	DatadirKey = "DATADIR"
	// LogLevelKey are the different logging levels. For reference on the
	// values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// HTTPListeningPortKey is the port where the HTTP interface will listen on.
	HTTPListeningPortKey = "HTTP_LISTENING_PORT"
	// DBTypeKey is used to switch database type between those supported.
	DBTypeKey = "DB_TYPE"
	// LedgerTypeKey selects the asset ledger backend, either "inmemory" or
	// "rest".
	LedgerTypeKey = "LEDGER_TYPE"
	// LedgerAddrKey is the base URL of the remote asset ledger, required when
	// the ledger type is "rest".
	LedgerAddrKey = "LEDGER_ADDR"
	// AdminIdKey is the account allowed to change the fee rate and recipient.
	AdminIdKey = "ADMIN_ID"
	// CustodianIdKey is the account that holds assets while trades are open.
	CustodianIdKey = "CUSTODIAN_ID"
	// FeeAssetKey is the fungible asset reference fees are charged in.
	FeeAssetKey = "FEE_ASSET"
	// FlatFeeKey is the initial per-participant flat fee.
	FlatFeeKey = "FLAT_FEE"
	// RequireConfirmationKey makes trades settle only after every participant
	// confirmed, instead of as soon as every asset is deposited.
	RequireConfirmationKey = "REQUIRE_CONFIRMATION"
	// MutatingRatePerSecondKey throttles the side-effecting HTTP routes.
	MutatingRatePerSecondKey = "MUTATING_RATE_PER_SECOND"

	DbLocation = "db"

	DBBadger   = "badger"
	DBInMemory = "inmemory"

	LedgerInMemory = "inmemory"
	LedgerRest     = "rest"
)

var vip *viper.Viper

func InitConfig() error {
	vip = viper.New()
	vip.SetEnvPrefix("ESCROWD")
	vip.AutomaticEnv()

	vip.SetDefault(DatadirKey, defaultDatadir())
	vip.SetDefault(LogLevelKey, 4)
	vip.SetDefault(HTTPListeningPortKey, 9945)
	vip.SetDefault(DBTypeKey, DBBadger)
	vip.SetDefault(LedgerTypeKey, LedgerInMemory)
	vip.SetDefault(CustodianIdKey, "custodian")
	vip.SetDefault(FeeAssetKey, "credits")
	vip.SetDefault(FlatFeeKey, 0)
	vip.SetDefault(RequireConfirmationKey, false)
	vip.SetDefault(MutatingRatePerSecondKey, 0)

	if err := validate(); err != nil {
		return fmt.Errorf("error while validating config: %s", err)
	}

	if err := initDatadir(); err != nil {
		return fmt.Errorf("error while creating datadir: %s", err)
	}

	return nil
}

func GetString(key string) string {
	return vip.GetString(key)
}

func GetInt(key string) int {
	return vip.GetInt(key)
}

func GetUint64(key string) uint64 {
	return vip.GetUint64(key)
}

func GetDuration(key string) time.Duration {
	return vip.GetDuration(key)
}

func GetBool(key string) bool {
	return vip.GetBool(key)
}

func GetDatadir() string {
	return GetString(DatadirKey)
}

func validate() error {
	datadir := GetString(DatadirKey)
	if len(datadir) <= 0 {
		return fmt.Errorf("missing datadir")
	}

	switch dbType := GetString(DBTypeKey); dbType {
	case DBBadger, DBInMemory:
	default:
		return fmt.Errorf("unsupported database type %s", dbType)
	}

	switch ledgerType := GetString(LedgerTypeKey); ledgerType {
	case LedgerInMemory:
	case LedgerRest:
		if GetString(LedgerAddrKey) == "" {
			return fmt.Errorf("missing ledger address for rest ledger")
		}
	default:
		return fmt.Errorf("unsupported ledger type %s", ledgerType)
	}

	if GetString(AdminIdKey) == "" {
		return fmt.Errorf("missing admin account id")
	}

	return nil
}

func initDatadir() error {
	if GetString(DBTypeKey) != DBBadger {
		return nil
	}
	return makeDirectoryIfNotExists(filepath.Join(GetDatadir(), DbLocation))
}

func defaultDatadir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".escrowd"
	}
	return filepath.Join(home, ".escrowd")
}

func makeDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, os.ModeDir|0755)
	}
	return nil
}
