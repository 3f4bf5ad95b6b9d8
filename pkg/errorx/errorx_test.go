package errorx

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("record not found")
	err := Wrapf(cause, CodeNotFound, "查询帖子 id=%d", 3)

	assert.Equal(t, "查询帖子 id=3: record not found", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.True(t, IsNotFound(err))
	assert.Equal(t, CodeNotFound, GetCode(err))
}

func TestGetCodeDefaultsToServerBusy(t *testing.T) {
	assert.Equal(t, CodeServerBusy, GetCode(errors.New("boom")))
}

func TestHTTPStatus(t *testing.T) {
	cases := map[int]int{
		CodeSuccess:         http.StatusOK,
		CodeInvalidParam:    http.StatusBadRequest,
		CodeUserExist:       http.StatusBadRequest,
		CodeBadRequest:      http.StatusBadRequest,
		CodeInvalidPassword: http.StatusUnauthorized,
		CodeUnauthorized:    http.StatusUnauthorized,
		CodeForbidden:       http.StatusForbidden,
		CodeNotFound:        http.StatusNotFound,
		CodeUserNotExist:    http.StatusNotFound,
		CodeDBError:         http.StatusInternalServerError,
		CodeServerBusy:      http.StatusInternalServerError,
	}
	for code, want := range cases {
		assert.Equal(t, want, HTTPStatus(code), "code %d", code)
	}
}
