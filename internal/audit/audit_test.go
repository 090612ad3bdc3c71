package audit

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func TestOpenAndWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.db")
	log, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %s", err)
	}
	defer log.Close()

	if err := log.Write(context.Background(), Record{
		RequestID:  "req-1",
		ResultType: "Int",
		Result:     "42",
	}); err != nil {
		t.Fatalf("Write success record: %s", err)
	}

	if err := log.Write(context.Background(), Record{
		RequestID: "req-2",
		Err:       errors.New("get(NONE)"),
	}); err != nil {
		t.Fatalf("Write error record: %s", err)
	}
}

func TestOpenCreatesSchemaIdempotently(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.db")
	log1, err := Open(path)
	if err != nil {
		t.Fatalf("Open first: %s", err)
	}
	log1.Close()

	log2, err := Open(path)
	if err != nil {
		t.Fatalf("Open second (schema must already exist): %s", err)
	}
	defer log2.Close()
}
