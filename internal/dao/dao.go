// Package dao 实现数据访问层
package dao

import (
	"fmt"
	"strings"
	"time"

	"github.com/listkeep/list-note-service/internal/model"
	"github.com/listkeep/list-note-service/pkg/util"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
	"gorm.io/plugin/dbresolver"
)

// DatabaseConfig 数据库连接配置
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
	Replicas        []string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime string
	ConnMaxIdleTime string
	RunMode         string
}

// Dao 数据访问对象，持有数据库连接和日志器
type Dao struct {
	Db     *gorm.DB
	logger *zap.Logger
}

// Option Dao 可选依赖
type Option func(*Dao)

// WithLogger 注入日志器
func WithLogger(lg *zap.Logger) Option {
	return func(d *Dao) {
		d.logger = lg
	}
}

// New 创建 Dao 实例
func New(db *gorm.DB, opts ...Option) *Dao {
	d := &Dao{Db: db, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DB 返回底层连接
func (d *Dao) DB() *gorm.DB {
	return d.Db
}

// dialector builds the gorm dialector for the configured database type
// dialector 根据配置的数据库类型构建 gorm 方言
func dialector(c DatabaseConfig) (gorm.Dialector, error) {
	switch c.Type {
	case "sqlite", "":
		return sqlite.Open(c.Path), nil
	case "mysql":
		return mysql.Open(mysqlDSN(c)), nil
	case "postgres":
		return postgres.Open(postgresDSN(c)), nil
	}
	return nil, fmt.Errorf("unsupported database type %q", c.Type)
}

func mysqlDSN(c DatabaseConfig) string {
	charset := c.Charset
	if charset == "" {
		charset = "utf8mb4"
	}
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?charset=%s&parseTime=%t&loc=Local",
		c.UserName, c.Password, c.Host, c.Name, charset, c.ParseTime)
}

func postgresDSN(c DatabaseConfig) string {
	host := c.Host
	port := "5432"
	if h, p, ok := strings.Cut(c.Host, ":"); ok {
		host, port = h, p
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port, c.UserName, c.Password, c.Name)
}

// NewDBEngineWithConfig opens the database, configures the pool and
// optional read replicas, and runs migrations when enabled.
// NewDBEngineWithConfig 打开数据库，配置连接池与只读副本，并按需迁移。
func NewDBEngineWithConfig(c DatabaseConfig, lg *zap.Logger) (*gorm.DB, error) {
	dial, err := dialector(c)
	if err != nil {
		return nil, err
	}

	logMode := logger.Silent
	if c.RunMode == "debug" {
		logMode = logger.Info
	}

	db, err := gorm.Open(dial, &gorm.Config{
		Logger: logger.Default.LogMode(logMode),
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   c.TablePrefix, // 表名前缀
			SingularTable: true,          // 使用单数表名
		},
	})
	if err != nil {
		return nil, err
	}

	// 只读副本，读写分离
	if len(c.Replicas) > 0 {
		replicas := make([]gorm.Dialector, 0, len(c.Replicas))
		for _, dsn := range c.Replicas {
			switch c.Type {
			case "mysql":
				replicas = append(replicas, mysql.Open(dsn))
			case "postgres":
				replicas = append(replicas, postgres.Open(dsn))
			default:
				replicas = append(replicas, sqlite.Open(dsn))
			}
		}
		if err := db.Use(dbresolver.Register(dbresolver.Config{
			Replicas: replicas,
			Policy:   dbresolver.RandomPolicy{},
		})); err != nil {
			return nil, err
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if c.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(c.MaxIdleConns)
	}
	if c.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(c.MaxOpenConns)
	}
	if d, err := util.ParseDuration(c.ConnMaxLifetime); err == nil && d > 0 {
		sqlDB.SetConnMaxLifetime(d)
	} else {
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}
	if d, err := util.ParseDuration(c.ConnMaxIdleTime); err == nil && d > 0 {
		sqlDB.SetConnMaxIdleTime(d)
	} else {
		sqlDB.SetConnMaxIdleTime(10 * time.Minute)
	}

	if c.AutoMigrate {
		if err := model.AutoMigrate(db); err != nil {
			return nil, err
		}
		if lg != nil {
			lg.Info("database migrated", zap.String("type", c.Type))
		}
	}

	return db, nil
}
