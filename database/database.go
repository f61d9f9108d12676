package database

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"
)

type Database struct {
	categoryRepo *CategoryRepo
	projectRepo  *ProjectRepo
	videoRepo    *VideoRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		categoryRepo: NewCategoryRepo(db),
		projectRepo:  NewProjectRepo(db),
		videoRepo:    NewVideoRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) CategoryRepo() *CategoryRepo {
	return d.categoryRepo
}

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) VideoRepo() *VideoRepo {
	return d.videoRepo
}

// Options configures Open.
type Options struct {
	DSN string
	// ReplicaDSN, when set, routes reads to a replica and writes to DSN.
	ReplicaDSN    string
	SlowThreshold time.Duration
	MaxOpenConns  int
}

// Open connects to Postgres the way Supabase's pooler expects: simple
// protocol, no prepared statements.
func Open(opts Options) (*gorm.DB, error) {
	if opts.SlowThreshold == 0 {
		opts.SlowThreshold = 10 * time.Second
	}

	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             opts.SlowThreshold,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  opts.DSN,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		PrepareStmt:    false,
		Logger:         gormLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	if opts.ReplicaDSN != "" {
		resolver := dbresolver.Register(dbresolver.Config{
			Replicas: []gorm.Dialector{postgres.New(postgres.Config{
				DSN:                  opts.ReplicaDSN,
				PreferSimpleProtocol: true,
			})},
			Policy: dbresolver.RandomPolicy{},
		})
		if opts.MaxOpenConns > 0 {
			resolver = resolver.SetMaxOpenConns(opts.MaxOpenConns)
		}
		if err := db.Use(resolver); err != nil {
			return nil, fmt.Errorf("error registering read replica: %w", err)
		}
	} else if opts.MaxOpenConns > 0 {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("error getting connection pool: %w", err)
		}
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	}

	return db, nil
}

// Ping checks the connection is usable.
func Ping(ctx context.Context, db *gorm.DB) error {
	var result int
	return db.WithContext(ctx).Raw("SELECT 1").Scan(&result).Error
}
