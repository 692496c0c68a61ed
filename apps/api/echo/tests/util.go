package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	. "github.com/studyroom/backend/apps/api/echo"
	"github.com/studyroom/backend/core"
	"github.com/studyroom/backend/core/schedule"
	"github.com/studyroom/backend/core/session"
	aisvc "github.com/studyroom/backend/services/ai"
	inmemdb "github.com/studyroom/backend/storage/database/inmem"
	testutil "github.com/studyroom/backend/tests"
)

var (
	errMissingToken = httpErr{Error: "missing or malformed jwt"}
	errInvalidToken = httpErr{Error: "invalid or expired jwt"}
)

type fakeGenerator struct {
	mu   sync.Mutex
	text string
	err  error
	reqs []aisvc.Request
}

func (g *fakeGenerator) GenerateSchedule(_ context.Context, req aisvc.Request) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.reqs = append(g.reqs, req)
	return g.text, g.err
}

type testLogger struct {
	mu     sync.Mutex
	errors []string
}

func (l *testLogger) Debug(string, ...interface{}) {}
func (l *testLogger) Info(string, ...interface{})  {}
func (l *testLogger) Warn(string, ...interface{})  {}
func (l *testLogger) Fatal(string, ...interface{}) {}
func (l *testLogger) Error(msg string, _ ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, msg)
}

type testApp struct {
	server    *Server
	conf      *core.Config
	logger    *testLogger
	generator *fakeGenerator
	schedRepo schedule.Repository
	sessRepo  session.Repository
}

func setup(t *testing.T) *testApp {
	conf := testutil.NewConfig()
	conf.Debug = false
	conf.Server.DisableReqLogs = true

	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("inmemdb.Open() failed: %v", err)
	}
	app := &testApp{
		conf:      conf,
		logger:    new(testLogger),
		generator: new(fakeGenerator),
		schedRepo: inmemdb.NewScheduleRepository(db),
		sessRepo:  inmemdb.NewSessionRepository(db),
	}

	validate, translator := testutil.NewValidator()
	app.server = NewServer(ServerDeps{
		Conf:        conf,
		Logger:      app.logger,
		ScheduleSvc: schedule.NewService(app.schedRepo, conf),
		SessionSvc:  session.NewService(app.sessRepo),
		Generator:   app.generator,
		Validate:    validate,
		Translator:  translator,
	})
	return app
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
	extra    interface{}
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func getToken(t *testing.T, conf *core.Config, userID string) string {
	token, err := testTokenWithKey(userID, conf.SecretKey)
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

func testTokenWithKey(userID, key string) (string, error) {
	return GenerateToken(NewClaims(userID, userID+"@test.test", time.Hour), key)
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func marchallList(t *testing.T, objs ...interface{}) []byte {
	if objs == nil {
		objs = []interface{}{}
	}
	data, err := json.Marshal(objs)
	if err != nil {
		t.Fatalf("marchallList() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	if j1 == nil || j2 == nil {
		return false, nil
	}
	if _, ok := j1.([]interface{}); !ok {
		return false, nil
	}
	return assert.ElementsMatch(t, j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
