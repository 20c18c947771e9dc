package config

import (
	"errors"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// DashboardConfig holds presentation-facing settings of the query layer.
type DashboardConfig struct {
	ItemsPerPage   int           `mapstructure:"itemsPerPage"`
	LatestInvoices int           `mapstructure:"latestInvoices"`
	CurrencySymbol string        `mapstructure:"currencySymbol"`
	RevenueDelay   time.Duration `mapstructure:"revenueDelay"`
}

func DefaultDashboardConfig() DashboardConfig {
	return DashboardConfig{
		ItemsPerPage:   6,
		LatestInvoices: 5,
		CurrencySymbol: "$",
		RevenueDelay:   0,
	}
}

type DashboardConfigHolder struct {
	current atomic.Value // holds DashboardConfig
}

// NewStaticDashboardConfig returns a holder that never reloads.
func NewStaticDashboardConfig(cfg DashboardConfig) *DashboardConfigHolder {
	holder := &DashboardConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

func NewDashboardConfigHolder(log *zap.Logger) (*DashboardConfigHolder, error) {
	log = log.Named("dashboard.config")
	v := viper.New()

	v.SetConfigName("dashboard")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/dashboard")
	v.AddConfigPath(".")

	v.SetEnvPrefix("DASHBOARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultDashboardConfig()
	v.SetDefault("dashboard.itemsPerPage", defaults.ItemsPerPage)
	v.SetDefault("dashboard.latestInvoices", defaults.LatestInvoices)
	v.SetDefault("dashboard.currencySymbol", defaults.CurrencySymbol)
	v.SetDefault("dashboard.revenueDelay", defaults.RevenueDelay)

	fileFound := true
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		fileFound = false
	}

	var cfg DashboardConfig
	if err := v.UnmarshalKey("dashboard", &cfg); err != nil {
		return nil, err
	}
	if err := validateDashboardConfig(cfg); err != nil {
		return nil, err
	}

	holder := NewStaticDashboardConfig(cfg)
	if !fileFound {
		return holder, nil
	}

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated DashboardConfig
		if err := v.UnmarshalKey("dashboard", &updated); err != nil {
			log.Warn("reload failed", zap.Error(err))
			return
		}
		if err := validateDashboardConfig(updated); err != nil {
			log.Warn("invalid config ignored", zap.Error(err))
			return
		}
		holder.current.Store(updated)
		log.Info("reloaded", zap.String("file", e.Name))
	})

	return holder, nil
}

func (h *DashboardConfigHolder) Get() DashboardConfig {
	if h == nil {
		return DefaultDashboardConfig()
	}
	return h.current.Load().(DashboardConfig)
}

func validateDashboardConfig(cfg DashboardConfig) error {
	if cfg.ItemsPerPage <= 0 {
		return errors.New("dashboard.itemsPerPage must be positive")
	}
	if cfg.LatestInvoices <= 0 {
		return errors.New("dashboard.latestInvoices must be positive")
	}
	if cfg.RevenueDelay < 0 {
		return errors.New("dashboard.revenueDelay cannot be negative")
	}
	return nil
}
