// Package dao 实现数据访问层
package dao

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/linkgrove/link-page-service/internal/domain"
	"github.com/linkgrove/link-page-service/internal/model"

	"github.com/glebarez/sqlite"
	"github.com/haierkeys/gormTracing"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Type         string `yaml:"type" default:"sqlite"` // sqlite mysql postgres
	Path         string `yaml:"path" default:"storage/database/link.db"`
	UserName     string `yaml:"username"`
	Password     string `yaml:"password"`
	Host         string `yaml:"host"`
	Name         string `yaml:"name"`
	TablePrefix  string `yaml:"table-prefix"`
	Charset      string `yaml:"charset" default:"utf8mb4"`
	ParseTime    bool   `yaml:"parse-time" default:"true"`
	MaxIdleConns int    `yaml:"max-idle-conns" default:"10"`
	MaxOpenConns int    `yaml:"max-open-conns" default:"30"`
}

// Dao 数据访问对象，持有数据库连接并按需迁移模型
type Dao struct {
	db      *gorm.DB
	logger  *zap.Logger
	migrate sync.Map // 模型Key -> *sync.Once
}

// New 创建 Dao 实例
func New(db *gorm.DB, logger *zap.Logger) *Dao {
	return &Dao{db: db, logger: logger}
}

// DB 获取底层 gorm 连接
func (d *Dao) DB() *gorm.DB {
	return d.db
}

type txKey struct{}

// orm 获取请求级别的 gorm 句柄
// 上下文中存在事务时加入事务，否则使用普通连接
func (d *Dao) orm(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return d.db.WithContext(ctx)
}

// useModel 首次使用时自动迁移模型表结构
func (d *Dao) useModel(key string) {
	v, _ := d.migrate.LoadOrStore(key, &sync.Once{})
	v.(*sync.Once).Do(func() {
		if err := model.AutoMigrate(d.db, key); err != nil {
			d.logger.Error("dao.AutoMigrate failed", zap.String("model", key), zap.Error(err))
		}
	})
}

// txManager 实现 domain.TxManager 接口
type txManager struct {
	dao *Dao
}

// NewTxManager 创建事务管理器
func NewTxManager(dao *Dao) domain.TxManager {
	return &txManager{dao: dao}
}

// Transaction 在一个数据库事务中执行 fn
// 已经处于事务中时直接复用外层事务
func (t *txManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	return t.dao.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// NewDBEngine 初始化 GORM 连接
func NewDBEngine(c DatabaseConfig, runMode string) (*gorm.DB, error) {

	dialector := newDialector(c)
	if dialector == nil {
		return nil, fmt.Errorf("unsupported database type: %s", c.Type)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   c.TablePrefix,
			SingularTable: true, // 使用单数表名
		},
	})
	if err != nil {
		return nil, err
	}
	if runMode == "debug" {
		db.Config.Logger = logger.Default.LogMode(logger.Info)
	}

	// 获取通用数据库对象 sql.DB，配置连接池
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(c.MaxIdleConns)
	sqlDB.SetMaxOpenConns(c.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Minute * 10)

	_ = db.Use(&gormTracing.OpentracingPlugin{})

	return db, nil
}

func newDialector(c DatabaseConfig) gorm.Dialector {
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
		return postgres.Open(fmt.Sprintf("host=%s user=%s password=%s dbname=%s sslmode=disable",
			c.Host,
			c.UserName,
			c.Password,
			c.Name,
		))
	case "sqlite":
		dir := filepath.Dir(c.Path)
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			_ = os.MkdirAll(dir, os.ModePerm)
		}
		return sqlite.Open(c.Path)
	}
	return nil
}
