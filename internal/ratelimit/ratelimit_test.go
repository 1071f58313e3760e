package ratelimit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllow_BurstThenDeny(t *testing.T) {
	krl := New(1, 2)
	defer krl.Stop()

	assert.True(t, krl.Allow("client"))
	assert.True(t, krl.Allow("client"))
	assert.False(t, krl.Allow("client"))
}

func TestAllow_KeysAreIndependent(t *testing.T) {
	krl := New(1, 1)
	defer krl.Stop()

	assert.True(t, krl.Allow("a"))
	assert.False(t, krl.Allow("a"))
	assert.True(t, krl.Allow("b"))
}

func TestStop_Idempotent(t *testing.T) {
	krl := New(1, 1)
	krl.Stop()
	krl.Stop()
}
