package utils

import (
	"MediSched/models"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanAct(t *testing.T) {
	cases := []struct {
		name   string
		caller Caller
		owner  string
		want   bool
	}{
		{"admin acts on anyone", Caller{ID: "a", Role: models.RoleAdmin}, "someone-else", true},
		{"admin acts on empty owner", Caller{ID: "a", Role: models.RoleAdmin}, "", true},
		{"doctor acts on own resource", Caller{ID: "u1", Role: models.RoleDoctor}, "u1", true},
		{"doctor blocked on others", Caller{ID: "u1", Role: models.RoleDoctor}, "u2", false},
		{"doctor with empty id blocked", Caller{ID: "", Role: models.RoleDoctor}, "", false},
		{"plain user blocked", Caller{ID: "u1", Role: models.RoleUser}, "u1", false},
		{"unknown role blocked", Caller{ID: "u1", Role: "Superuser"}, "u1", false},
		{"empty role blocked", Caller{ID: "u1", Role: ""}, "u1", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CanAct(tc.caller, tc.owner))
		})
	}
}
