package main

import (
	"dsmovie/pkg/config"
	"dsmovie/pkg/logger"
	"dsmovie/postgres"
	"strconv"
	"sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newRootCommand() *cobra.Command {
	ctx := new(commandContext)

	rootCmd := &cobra.Command{
		Use:           "dsmovie",
		Short:         "Movie catalog and rating service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.AddCommand(newServeCommand(ctx))
	rootCmd.AddCommand(newMigrateCommand(ctx))
	rootCmd.AddCommand(newSeedCommand(ctx))

	return rootCmd
}

// commandContext lazily loads what every subcommand needs.
type commandContext struct {
	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *zap.SugaredLogger
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		c.config, c.configErr = config.LoadConfig()
	})
	return c.config, c.configErr
}

func (c *commandContext) log() *zap.SugaredLogger {
	c.loggerOnce.Do(func() {
		c.logger = logger.NOOPLogger
		cfg, err := c.ensureConfig()
		if err != nil {
			return
		}
		if l, err := logger.New(cfg.AppEnv); err == nil {
			c.logger = l
		}
	})
	return c.logger
}

func (c *commandContext) dbOptions() postgres.Options {
	cfg := c.config
	return postgres.Options{
		DBName:   cfg.DB.Name,
		DBUser:   cfg.DB.User,
		Password: cfg.DB.Pass,
		Host:     cfg.DB.Host,
		Port:     strconv.Itoa(cfg.DB.Port),
		SSLMode:  cfg.DB.EnableSSL,
		Debug:    cfg.DB.Debug,
	}
}

func (c *commandContext) openDB() (*gorm.DB, error) {
	return postgres.NewConnection(c.dbOptions())
}
