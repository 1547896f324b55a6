package userapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenFor(t *testing.T) {
	assert.Equal(t, TokenAdmin, TokenFor(RankAdmin))
	assert.Equal(t, TokenUser, TokenFor(RankRegular))
	// Banned users never reach token issuance, but the mapping is
	// defined for every non-admin rank.
	assert.Equal(t, TokenUser, TokenFor(RankBanned))
}

func TestAdminTokenSharesUserPrefix(t *testing.T) {
	// Authorization relies on a prefix check accepting both tokens.
	assert.Contains(t, TokenAdmin, TokenUser)
}

func TestPublic_ExcludesPassword(t *testing.T) {
	u := User{ID: 7, Username: "alice", Password: "secret", FirstName: "Alice", LastName: "A", Rank: RankAdmin}
	p := u.Public()
	assert.Equal(t, PublicUser{ID: "7", Username: "alice", FirstName: "Alice", LastName: "A", Rank: RankAdmin}, p)
}

func TestNextID(t *testing.T) {
	tests := []struct {
		name  string
		users []User
		want  int
	}{
		{name: "empty collection", users: nil, want: 1},
		{name: "sequential", users: []User{{ID: 1}, {ID: 2}}, want: 3},
		{name: "gaps are not reused", users: []User{{ID: 1}, {ID: 9}}, want: 10},
		{name: "unordered", users: []User{{ID: 5}, {ID: 2}}, want: 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextID(tt.users))
		})
	}
}

func TestRankValid(t *testing.T) {
	assert.True(t, RankRegular.Valid())
	assert.True(t, RankAdmin.Valid())
	assert.True(t, RankBanned.Valid())
	assert.False(t, Rank("Moderator").Valid())
	assert.False(t, Rank("").Valid())
}
