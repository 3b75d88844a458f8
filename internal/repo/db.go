package repo

import (
	"fmt"
	"github.com/dudsmessias/new-automacao-esp-seedf/internal/model"
	"strings"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

// Models — порядок миграции: родительские таблицы раньше дочерних.
func Models() []any {
	return []any{
		&model.User{},
		&model.Caderno{},
		&model.Esp{},
		&model.ArquivoMidia{},
		&model.ItemEspecificacao{},
		&model.LogAtividade{},
	}
}

// InitDB открывает соединение (postgres по DSN-схеме, иначе sqlite) и мигрирует схему.
func InitDB(dsn string, log *zap.SugaredLogger) (*gorm.DB, error) {
	db, err := gorm.Open(dialector(dsn), &gorm.Config{
		Logger: NewGormLogger(log),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate создаёт/обновляет таблицы всех моделей.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return nil
}

func dialector(dsn string) gorm.Dialector {
	if isPostgresDSN(dsn) {
		return postgres.Open(dsn)
	}
	// modernc.org/sqlite регистрируется под именем "sqlite"
	return gormsqlite.Dialector{DriverName: "sqlite", DSN: sqliteDSN(dsn)}
}

func isPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") ||
		strings.HasPrefix(dsn, "postgresql://") ||
		strings.Contains(dsn, "host=")
}

// sqliteDSN включает проверку внешних ключей, если DSN её не задаёт.
func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "foreign_keys") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)"
}
