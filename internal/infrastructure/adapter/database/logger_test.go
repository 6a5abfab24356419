package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/amirhossein-jamali/payment-reconciler/internal/domain/port/core"
	applog "github.com/amirhossein-jamali/payment-reconciler/internal/infrastructure/adapter/logger"
	timeprovider "github.com/amirhossein-jamali/payment-reconciler/internal/infrastructure/adapter/time"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func observedLogger() (core.Logger, *observer.ObservedLogs) {
	obs, logs := observer.New(zap.DebugLevel)
	return applog.NewZapLoggerFromCore(obs, zap.NewAtomicLevelAt(zap.DebugLevel)), logs
}

func TestExtractQueryType(t *testing.T) {
	assert.Equal(t, "SELECT", extractQueryType(" select * from add_funds"))
	assert.Equal(t, "UPDATE", extractQueryType(`UPDATE "users" SET balance = balance + 1`))
	assert.Equal(t, "OTHER", extractQueryType("SET TRANSACTION ISOLATION LEVEL SERIALIZABLE"))
}

func TestExtractTableName(t *testing.T) {
	assert.Equal(t, "add_funds", extractTableName(`SELECT * FROM "add_funds" WHERE invoice_id = 'x'`))
	assert.Equal(t, "users", extractTableName(`UPDATE "users" SET balance = 1`))
	assert.Equal(t, "user_settings", extractTableName("INSERT INTO user_settings (id) VALUES (1)"))
	assert.Equal(t, "", extractTableName("BEGIN"))
}

func TestDatabaseLogger_Trace(t *testing.T) {
	tp := timeprovider.NewRealTimeProvider()
	sql := func() (string, int64) { return `SELECT * FROM "add_funds"`, 1 }

	t.Run("errors are logged with the request id", func(t *testing.T) {
		log, logs := observedLogger()
		l := NewDatabaseLogger(log, tp, "info")
		ctx := applog.WithRequestID(context.Background(), "req-1")

		l.Trace(ctx, time.Now(), sql, errors.New("boom"))

		entries := logs.FilterMessage("SQL Error").All()
		require.Len(t, entries, 1)
		assert.Equal(t, "req-1", entries[0].ContextMap()["request_id"])
		assert.Equal(t, "add_funds", entries[0].ContextMap()["table"])
	})

	t.Run("record not found is not an error", func(t *testing.T) {
		log, logs := observedLogger()
		l := NewDatabaseLogger(log, tp, "info")

		l.Trace(context.Background(), time.Now(), sql, gorm.ErrRecordNotFound)

		assert.Zero(t, logs.FilterMessage("SQL Error").Len())
		assert.Equal(t, 1, logs.FilterMessage("SQL Query").Len())
	})

	t.Run("slow queries warn", func(t *testing.T) {
		log, logs := observedLogger()
		l := NewDatabaseLogger(log, tp, "warn")

		l.Trace(context.Background(), time.Now().Add(-time.Second), sql, nil)

		assert.Equal(t, 1, logs.FilterMessage("Slow SQL Query").Len())
	})

	t.Run("silent logs nothing", func(t *testing.T) {
		log, logs := observedLogger()
		l := NewDatabaseLogger(log, tp, "silent").LogMode(gormlogger.Silent)

		l.Trace(context.Background(), time.Now(), sql, errors.New("boom"))

		assert.Zero(t, logs.Len())
	})
}
