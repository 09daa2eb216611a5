package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/artem13815/cvdesk/pkg/config"
	"github.com/artem13815/cvdesk/pkg/cv"
	pgrepo "github.com/artem13815/cvdesk/pkg/repository/postgres"
	"github.com/artem13815/cvdesk/pkg/storage/postgres"
)

// settings are resolved by viper: flags, then CVDESK_* env, then an optional YAML file,
// on top of the service's own environment config.
type settings struct {
	DatabaseURL string `mapstructure:"database_url"`
	MaxCVs      int    `mapstructure:"max_cvs"`
}

var configFile string

func newRootCommand() *cobra.Command {
	v := viper.New()
	cmd := &cobra.Command{
		Use:   "cvdeskctl",
		Short: "cvdesk operator CLI",
		Long: `cvdeskctl runs database migrations, manages per-user upload quotas
and prints library reports straight from the database.`,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "YAML config file")
	cmd.PersistentFlags().String("database-url", "", "PostgreSQL DSN (defaults to DATABASE_URL)")
	cmd.PersistentFlags().Int("max-cvs", 0, "default per-user CV limit (defaults to MAX_CVS_PER_USER)")
	_ = v.BindPFlag("database_url", cmd.PersistentFlags().Lookup("database-url"))
	_ = v.BindPFlag("max_cvs", cmd.PersistentFlags().Lookup("max-cvs"))

	env := &environment{viper: v}
	cmd.AddCommand(
		newMigrateCmd(env),
		newQuotaCmd(env),
		newStatsCmd(env),
		newFacetsCmd(env),
		newExportCmd(env),
		newUserCmd(env),
	)
	return cmd
}

// environment lazily opens the database for commands that need it.
type environment struct {
	viper *viper.Viper
	pool  *pgxpool.Pool
	cfg   settings
}

func loadSettings(v *viper.Viper, base config.Config) (settings, error) {
	v.SetDefault("database_url", base.DatabaseURL)
	v.SetDefault("max_cvs", base.MaxCVs)
	v.SetEnvPrefix("cvdesk")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return settings{}, fmt.Errorf("read config: %w", err)
		}
	}
	var s settings
	if err := v.Unmarshal(&s); err != nil {
		return settings{}, fmt.Errorf("decode config: %w", err)
	}
	if s.MaxCVs <= 0 {
		s.MaxCVs = cv.DefaultMaxCVs
	}
	return s, nil
}

func (e *environment) open(ctx context.Context) (*pgxpool.Pool, error) {
	if e.pool != nil {
		return e.pool, nil
	}
	s, err := loadSettings(e.viper, config.Load())
	if err != nil {
		return nil, err
	}
	if s.DatabaseURL == "" {
		return nil, errors.New("database url is not set (use --database-url or DATABASE_URL)")
	}
	pool, err := postgres.Connect(ctx, s.DatabaseURL, 2)
	if err != nil {
		return nil, err
	}
	e.pool, e.cfg = pool, s
	return pool, nil
}

func (e *environment) close() {
	if e.pool != nil {
		e.pool.Close()
		e.pool = nil
	}
}

// services bundles the use cases the report commands share.
type services struct {
	users     *pgrepo.UserRepository
	library   cv.LibraryUseCase
	dashboard cv.DashboardUseCase
	quotas    cv.QuotaAdminUseCase
}

func (e *environment) services(ctx context.Context) (services, error) {
	pool, err := e.open(ctx)
	if err != nil {
		return services{}, err
	}
	cvRepo := pgrepo.NewCVRepository(pool)
	quotaRepo := pgrepo.NewQuotaRepository(pool)
	return services{
		users:     pgrepo.NewUserRepository(pool),
		library:   cv.NewLibraryService(cvRepo, nil, quotaRepo),
		dashboard: cv.NewDashboardService(cvRepo, quotaRepo, e.cfg.MaxCVs),
		quotas:    cv.NewQuotaAdminService(cvRepo, quotaRepo, e.cfg.MaxCVs),
	}, nil
}

// resolveUser accepts a user id or an email address.
func (s services) resolveUser(ctx context.Context, ref string) (uuid.UUID, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return uuid.Nil, errors.New("--user is required")
	}
	if id, err := uuid.Parse(ref); err == nil {
		return id, nil
	}
	u, err := s.users.GetByEmail(ctx, ref)
	if err != nil {
		return uuid.Nil, fmt.Errorf("lookup user %s: %w", ref, err)
	}
	return u.ID, nil
}
