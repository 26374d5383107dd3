package cmd

import (
	"fmt"
	"os"

	"github.com/webmarks/webmarks-service/global"
	internalApp "github.com/webmarks/webmarks-service/internal/app"
	"github.com/webmarks/webmarks-service/internal/dao"
	"github.com/webmarks/webmarks-service/internal/upgrade"
	"github.com/webmarks/webmarks-service/pkg/logger"

	"github.com/spf13/cobra"
)

var upgradeCmd = &cobra.Command{
	Use:   "upgrade",
	Short: "Upgrade legacy database schema and data to the latest version",
	Long: `Upgrade legacy database schema and data to the latest version.

This command checks the current database version and applies all pending
migrations. It is safe to run multiple times - already applied migrations
are skipped.`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		if len(configPath) <= 0 {
			configPath = "config/config.yaml"
		}

		appConfig, configRealpath, err := internalApp.LoadConfig(configPath)
		if err != nil {
			fmt.Printf("Failed to load config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Loading config from: %s\n", configRealpath)

		lg, err := logger.NewLogger(logger.Config{
			Level:      appConfig.Log.Level,
			File:       appConfig.Log.File,
			Production: appConfig.Log.Production,
		})
		if err != nil {
			fmt.Printf("Failed to init logger: %v\n", err)
			os.Exit(1)
		}

		db, err := dao.NewDBEngineWithConfig(dao.DatabaseConfig{
			Type:            appConfig.Database.Type,
			Path:            appConfig.Database.Path,
			UserName:        appConfig.Database.UserName,
			Password:        appConfig.Database.Password,
			Host:            appConfig.Database.Host,
			Name:            appConfig.Database.Name,
			TablePrefix:     appConfig.Database.TablePrefix,
			AutoMigrate:     appConfig.Database.AutoMigrate,
			Charset:         appConfig.Database.Charset,
			ParseTime:       appConfig.Database.ParseTime,
			MaxIdleConns:    appConfig.Database.MaxIdleConns,
			MaxOpenConns:    appConfig.Database.MaxOpenConns,
			ConnMaxLifetime: appConfig.Database.ConnMaxLifetime,
			ConnMaxIdleTime: appConfig.Database.ConnMaxIdleTime,
			RunMode:         appConfig.Server.RunMode,
		}, lg)
		if err != nil {
			fmt.Printf("Failed to init database: %v\n", err)
			os.Exit(1)
		}

		global.Logger = lg
		global.DBEngine = db

		fmt.Println("Starting database upgrade...")
		if err := upgrade.Execute(); err != nil {
			fmt.Printf("Upgrade failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Database upgrade completed successfully!")
	},
}

func init() {
	rootCmd.AddCommand(upgradeCmd)
	upgradeCmd.Flags().StringP("config", "c", "", "config file path")
}
