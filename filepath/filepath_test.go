package file_path

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDotted(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{".", ""},
		{"sub", "sub"},
		{"sub/pkg", "sub.pkg"},
		{"sub/pkg/", "sub.pkg"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Dotted(tt.in))
		})
	}
}

func TestJoinDotted(t *testing.T) {
	assert.Equal(t, "app.sub.mod", JoinDotted("app", "sub", "mod"))
	assert.Equal(t, "mod", JoinDotted("", "mod"))
	assert.Equal(t, "app", JoinDotted("app", ""))
}

func TestSlashed(t *testing.T) {
	assert.Equal(t, "app/sub", Slashed("app.sub"))
}
