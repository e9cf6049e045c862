package main

import (
	"log"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	"github.com/chirper-app/backend/internal/apperrors"
	"github.com/chirper-app/backend/internal/router"
	"github.com/chirper-app/backend/internal/validators"
	"github.com/chirper-app/backend/pkg/config"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "chirper-server",
		Short: "Chirper social networking backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			db, err := config.InitDB(cfg.PostgresConnStr)
			if err != nil {
				return err
			}
			defer db.CloseDB()
			return router.AutoMigrate(db.Postgres)
		},
	}

	rootCmd.AddCommand(serveCmd, migrateCmd)
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func serve() error {
	cfg := config.Load()
	db, err := config.InitDB(cfg.PostgresConnStr)
	if err != nil {
		return err
	}
	defer db.CloseDB()

	e := echo.New()
	e.HideBanner = true
	e.Validator = validators.NewValidator()
	e.HTTPErrorHandler = apperrors.HTTPErrorHandler

	router.SetupMiddleware(e)
	if err := router.SetupRoutes(e, db.Postgres, cfg); err != nil {
		return err
	}

	return e.Start(":" + cfg.Port)
}
