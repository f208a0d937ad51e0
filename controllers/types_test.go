package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fit-lynq/api-go/services"
)

func TestStatusForError(t *testing.T) {
	cases := []struct {
		kind   services.Kind
		status int
	}{
		{services.KindInvalidArgument, http.StatusBadRequest},
		{services.KindNotFound, http.StatusNotFound},
		{services.KindConflict, http.StatusConflict},
		{services.KindForbidden, http.StatusForbidden},
		{services.KindUnavailable, http.StatusServiceUnavailable},
	}
	for _, tc := range cases {
		err := &services.Error{Kind: tc.kind, Message: "boom"}
		assert.Equal(t, tc.status, statusForError(err))
	}
}

func TestStatusForErrorWrapped(t *testing.T) {
	inner := &services.Error{Kind: services.KindConflict, Message: "already following"}
	wrapped := fmt.Errorf("handling request: %w", inner)
	assert.Equal(t, http.StatusConflict, statusForError(wrapped))
}

func TestStatusForErrorUnknown(t *testing.T) {
	assert.Equal(t, http.StatusServiceUnavailable, statusForError(errors.New("connection reset")))
}
