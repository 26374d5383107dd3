// Package dao implements the data access layer
package dao

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/webmarks/webmarks-service/pkg/fileurl"

	"github.com/glebarez/sqlite"
	"github.com/haierkeys/gormTracing"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
	"gorm.io/plugin/dbresolver"
)

// DatabaseConfig database connection configuration
type DatabaseConfig struct {
	Type            string
	Path            string
	UserName        string
	Password        string
	Host            string
	Name            string
	TablePrefix     string
	AutoMigrate     bool
	Charset         string
	ParseTime       bool
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime string
	ConnMaxIdleTime string
	Replicas        []string
	RunMode         string
}

// Dao bundles the database handle shared by the repositories
type Dao struct {
	db  *gorm.DB
	ctx context.Context
}

func New(db *gorm.DB, ctx context.Context) *Dao {
	return &Dao{db: db, ctx: ctx}
}

type contextTxKey struct{}

// DB returns the transaction bound to ctx when there is one, otherwise the
// root handle with ctx attached
func (d *Dao) DB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(contextTxKey{}).(*gorm.DB); ok {
		return tx
	}
	return d.db.WithContext(ctx)
}

// Transaction runs fn inside one database transaction; repository calls made
// with the ctx passed to fn join that transaction. When ctx already carries a
// transaction the new one nests inside it as a savepoint.
func (d *Dao) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return d.DB(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, contextTxKey{}, tx))
	})
}

// NewDBEngineWithConfig opens the database engine described by the config
func NewDBEngineWithConfig(c DatabaseConfig, lg *zap.Logger) (*gorm.DB, error) {
	dialector := dialectorFor(c)
	if dialector == nil {
		return nil, fmt.Errorf("unsupported database type: %s", c.Type)
	}

	logMode := logger.Default.LogMode(logger.Silent)
	if c.RunMode == "debug" {
		logMode = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logMode,
		TranslateError: true,
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   c.TablePrefix,
			SingularTable: true,
		},
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(c.MaxIdleConns)
	sqlDB.SetMaxOpenConns(c.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(parseDurationOr(c.ConnMaxLifetime, 30*time.Minute))
	sqlDB.SetConnMaxIdleTime(parseDurationOr(c.ConnMaxIdleTime, 10*time.Minute))

	// route reads to replicas when they are configured
	if len(c.Replicas) > 0 {
		var replicas []gorm.Dialector
		for _, dsn := range c.Replicas {
			replica := c
			if c.Type == "sqlite" {
				replica.Path = dsn
			} else {
				replica.Host = dsn
			}
			replicas = append(replicas, dialectorFor(replica))
		}
		if err := db.Use(dbresolver.Register(dbresolver.Config{Replicas: replicas})); err != nil {
			return nil, err
		}
	}

	if err := db.Use(&gormTracing.OpentracingPlugin{}); err != nil {
		if lg != nil {
			lg.Warn("failed to register tracing plugin", zap.Error(err))
		}
	}

	return db, nil
}

func dialectorFor(c DatabaseConfig) gorm.Dialector {
	switch c.Type {
	case "mysql":
		return mysql.Open(fmt.Sprintf("%s:%s@tcp(%s)/%s?charset=%s&parseTime=%t&loc=Local",
			c.UserName,
			c.Password,
			c.Host,
			c.Name,
			c.Charset,
			c.ParseTime,
		))
	case "postgres":
		return postgres.Open(fmt.Sprintf("host=%s user=%s password=%s dbname=%s",
			c.Host,
			c.UserName,
			c.Password,
			c.Name,
		))
	case "sqlite":
		if !fileurl.IsExist(c.Path) {
			fileurl.CreatePath(c.Path, os.ModePerm)
		}
		return sqlite.Open(c.Path)
	}
	return nil
}

func parseDurationOr(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}
