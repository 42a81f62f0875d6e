package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestSetDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	SetDefaults()

	assert.Equal(t, "postgres", viper.GetString("storage.driver"))
	assert.Equal(t, 512, viper.GetInt("postgres.statement_cache_capacity"))
	assert.False(t, viper.GetBool("rabbitmq.enabled"))
	assert.Equal(t, 5, viper.GetInt("rabbitmq.outbox.max_retries"))
	assert.Equal(t, "coffee.orders", viper.GetString("rabbitmq.exchange"))
}
