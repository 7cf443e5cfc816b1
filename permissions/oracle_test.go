package permissions

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuthorize(t *testing.T) {
	caps := NewSet("quiz.manage", "semester.manage")

	tests := []struct {
		name       string
		caps       Set
		systemRole bool
		req        Requirement
		want       bool
	}{
		{"single granted", caps, false, Single("quiz.manage"), true},
		{"single missing", caps, false, Single("quiz.grade"), false},
		{"any one granted", caps, false, Any("quiz.grade", "quiz.manage"), true},
		{"any none granted", caps, false, Any("quiz.grade", "enrollment.manage"), false},
		{"all granted", caps, false, All("quiz.manage", "semester.manage"), true},
		{"all one missing", caps, false, All("quiz.manage", "quiz.grade"), false},
		{"all empty is never satisfied", caps, false, All(), false},
		{"empty capability set", NewSet(), false, Single("quiz.manage"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Authorize(tt.caps, tt.systemRole, tt.req))
		})
	}
}

func TestAuthorizeSystemRoleBypassesChecks(t *testing.T) {
	// A system role passes every requirement without holding any code
	empty := NewSet()

	assert.True(t, Authorize(empty, true, Single("quiz.manage")))
	assert.True(t, Authorize(empty, true, Any("a", "b")))
	assert.True(t, Authorize(empty, true, All("a", "b", "c")))
	assert.True(t, Authorize(empty, true, All()))
}

func TestSetHas(t *testing.T) {
	s := NewSet("a", "b")

	assert.True(t, s.Has("a"))
	assert.False(t, s.Has("c"))
}
