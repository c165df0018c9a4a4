package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsOwner(t *testing.T) {
	tests := []struct {
		name   string
		caller uint
		owner  uint
		want   bool
	}{
		{"owner", 1, 1, true},
		{"different account", 1, 2, false},
		{"anonymous caller", Anonymous, 2, false},
		{"anonymous caller and ownerless resource", Anonymous, Anonymous, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsOwner(tt.caller, tt.owner))
		})
	}
}
