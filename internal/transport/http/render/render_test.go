package render

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/corray333/backend-labs/coffee/internal/service/serviceerr"
	"github.com/stretchr/testify/assert"
)

func TestStatusOf(t *testing.T) {
	notFound := serviceerr.New(fmt.Errorf("coffee type 9: %w", serviceerr.ErrCoffeeTypeNotFound), "failed to make order")
	missing := serviceerr.New(serviceerr.ErrConfigurationMissing, "failed to make order")

	assert.Equal(t, http.StatusUnprocessableEntity, StatusOf(notFound))
	assert.Equal(t, http.StatusUnprocessableEntity, StatusOf(missing))
	assert.Equal(t, http.StatusInternalServerError, StatusOf(serviceerr.New(errors.New("conn reset"), "failed")))
}
