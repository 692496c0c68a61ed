package logsvc

import (
	"bytes"
	"log"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/studyroom/backend/core"
)

func newTestLogger() (*RollbarLogger, *bytes.Buffer) {
	buf := new(bytes.Buffer)
	l := NewRollbarLogger(log.New(buf, "TEST : ", 0), &core.Config{Env: "TEST"})
	l.Enable(false)
	return l, buf
}

func TestRollbarLogger_prepare(t *testing.T) {
	l, _ := newTestLogger()
	err := errors.New("boom")
	extra := map[string]interface{}{"schedule": "abc123"}

	got := l.prepare("msg", []interface{}{err, core.Person{ID: "u1"}, extra, core.Person{ID: "u2"}})
	assert.Equal(t, []interface{}{"msg", err, extra}, got)
}

func TestRollbarLogger_print(t *testing.T) {
	l, buf := newTestLogger()

	l.Warn("gateway slow", map[string]interface{}{"status": 504})
	assert.Equal(t, "TEST : WARN: gateway slow\nTEST : map[status:504]\n", buf.String())
}
