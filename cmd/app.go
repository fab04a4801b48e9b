package cmd

import (
	"fmt"
	"log/slog"

	"github.com/frahmantamala/employee-directory/internal"
	"github.com/frahmantamala/employee-directory/internal/core/database"
	"github.com/frahmantamala/employee-directory/internal/core/events"
	"github.com/frahmantamala/employee-directory/internal/employee"
	employeePostgres "github.com/frahmantamala/employee-directory/internal/employee/postgres"
	"github.com/frahmantamala/employee-directory/internal/media"
	"github.com/frahmantamala/employee-directory/internal/placement"
	placementPostgres "github.com/frahmantamala/employee-directory/internal/placement/postgres"
	"github.com/frahmantamala/employee-directory/internal/skill"
	skillPostgres "github.com/frahmantamala/employee-directory/internal/skill/postgres"
	"github.com/frahmantamala/employee-directory/internal/workstation"
	workstationPostgres "github.com/frahmantamala/employee-directory/internal/workstation/postgres"
	"github.com/frahmantamala/employee-directory/pkg/logger"
)

// application is the object graph shared by the commands.
type application struct {
	Config *internal.Config
	DB     *database.Handle
	Logger *slog.Logger
	Store  *media.LocalStore
	Bus    *events.EventBus

	EmployeeRepo *employeePostgres.EmployeeRepository
	Workstations *workstation.Service
	Skills       *skill.Service
	Employees    *employee.Service
	Reader       *employee.Reader
}

func newApplication() (*application, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logCfg := cfg.Observability.Logging
	logger.Init(logCfg.Format, logCfg.Level)
	lg := logger.LoggerWrapper()

	handle, err := database.Open(cfg.Database, database.NewGormLogger(lg, logCfg.Level))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if cfg.Database.AutoMigrate {
		if err := database.AutoMigrate(handle.Gorm); err != nil {
			_ = handle.Close()
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		lg.Info("database schema migrated from models", "driver", cfg.Database.Driver)
	}

	store := media.NewLocalStore(cfg.Media.Root, cfg.Media.BaseURL)
	bus := events.NewEventBus(lg)

	checker := placement.NewService(placementPostgres.NewOccupancyRepository(handle.SQLX), lg)
	workstations := workstation.NewService(workstationPostgres.NewWorkstationRepository(handle.Gorm), checker, lg)
	skills := skill.NewService(skillPostgres.NewSkillRepository(handle.Gorm), lg)

	repo := employeePostgres.NewEmployeeRepository(handle.Gorm)
	employees := employee.NewService(repo, checker, workstations, skills, store, bus, lg)
	reader := employee.NewReader(repo, store, cfg.Directory, lg)

	return &application{
		Config:       cfg,
		DB:           handle,
		Logger:       lg,
		Store:        store,
		Bus:          bus,
		EmployeeRepo: repo,
		Workstations: workstations,
		Skills:       skills,
		Employees:    employees,
		Reader:       reader,
	}, nil
}

func (a *application) Close() {
	a.Bus.Wait()
	if err := a.DB.Close(); err != nil {
		a.Logger.Error("database close error", "error", err)
	}
}
