package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func TestLogging_RecordsRequest(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(log.DebugLevel)

	h := Logging(logger, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/v1/board", nil))

	entry := hook.LastEntry()
	if entry == nil {
		t.Fatal("Expected a log entry")
	}
	if entry.Data["method"] != "GET" || entry.Data["path"] != "/api/v1/board" {
		t.Errorf("Unexpected fields: %v", entry.Data)
	}
	if entry.Data["status"] != http.StatusTeapot {
		t.Errorf("status = %v", entry.Data["status"])
	}
	if entry.Level != log.DebugLevel {
		t.Errorf("level = %v", entry.Level)
	}
}

func TestLogging_ServerErrorsWarn(t *testing.T) {
	logger, hook := test.NewNullLogger()

	h := Logging(logger, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("POST", "/api/v1/cards", nil))

	if len(hook.Entries) != 1 || hook.LastEntry().Level != log.WarnLevel {
		t.Errorf("Expected one warn entry, got %+v", hook.AllEntries())
	}
}
