package api

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_SentinelMapping(t *testing.T) {
	assert.ErrorIs(t, &Error{Kind: KindAuth, Status: 401}, ErrUnauthorized)
	assert.ErrorIs(t, &Error{Kind: KindTransport}, ErrUnavailable)
	assert.NotErrorIs(t, &Error{Kind: KindAPI, Status: 400}, ErrUnauthorized)
}

func TestMessage(t *testing.T) {
	err := &Error{Kind: KindAPI, Status: 400, Message: "duplicate name"}
	assert.Equal(t, "duplicate name", Message(err, "fallback"))
	assert.Equal(t, "fallback", Message(&Error{Kind: KindTransport}, "fallback"))
	assert.Equal(t, "fallback", Message(errors.New("other"), "fallback"))
}

func TestMessage_Wrapped(t *testing.T) {
	err := fmt.Errorf("login: %w", &Error{Kind: KindAPI, Status: 409, Message: "taken"})
	assert.Equal(t, "taken", Message(err, "fallback"))
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, 402, StatusOf(&Error{Kind: KindAPI, Status: 402}))
	assert.Equal(t, 0, StatusOf(errors.New("other")))
}
