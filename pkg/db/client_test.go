package db

import (
	"context"
	"io"
	"testing"

	"github.com/evamarchetti/lessonplanner-backend/pkg/config"
	"github.com/evamarchetti/lessonplanner-backend/pkg/logger"
)

func TestNewRequiresDSN(t *testing.T) {
	_, err := New(context.Background(), config.DBConfig{}, nil)
	if err == nil {
		t.Fatal("expected error when DSN is empty")
	}
}

func TestNewSQLiteInMemory(t *testing.T) {
	cfg := config.DBConfig{
		DSN:    "file::memory:?cache=shared",
		Driver: "sqlite",
	}
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})

	client, err := New(context.Background(), cfg, logg)
	if err != nil {
		t.Fatalf("unexpected error opening sqlite: %v", err)
	}
	defer client.Close()

	if err := client.Ping(context.Background()); err != nil {
		t.Fatalf("ping failed: %v", err)
	}
	if client.DB() == nil {
		t.Fatal("expected usable gorm connection")
	}
}
