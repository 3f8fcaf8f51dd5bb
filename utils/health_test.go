package utils

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckHealth(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("down") }

	status := CheckHealth(context.Background(), []PingFunc{ok, down}, ok)

	assert.True(t, status.Mongo)
	assert.Equal(t, []bool{true, false}, status.Redis)
	assert.Equal(t, status, GetHealthStatus())
}

func TestCheckHealthWithoutMongo(t *testing.T) {
	status := CheckHealth(context.Background(), nil, nil)
	assert.False(t, status.Mongo)
	assert.Empty(t, status.Redis)
}
