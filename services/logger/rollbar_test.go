package logsvc

import (
	"bytes"
	"log"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/trezcool/dailysutra/core"
)

type person struct{ id, email string }

func (p person) PersonInfo() (string, string, string) { return p.id, "", p.email }

func TestRollbarLoggerPrepare(t *testing.T) {
	buf := new(bytes.Buffer)
	l := NewRollbarLogger(log.New(buf, "", 0), core.NewTestConfig())
	l.Enable(false)

	err := errors.New("boom")
	extras := map[string]interface{}{"week": 3}
	args := l.prepare("saving journey", []interface{}{err, person{"u1", "a@test.cd"}, extras, person{"u2", "b@test.cd"}})
	assert.Equal(t, []interface{}{"saving journey", err, extras}, args)

	l.Error("saving journey", err, person{"u1", "a@test.cd"})
	assert.Contains(t, buf.String(), "saving journey\nboom\n")
	assert.NotContains(t, buf.String(), "a@test.cd")
}
