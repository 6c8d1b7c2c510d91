package tier

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name  string
		roles []string
		want  Tier
	}{
		{name: "no roles", roles: nil, want: Unranked},
		{name: "no matching role", roles: []string{"Member", "Streamer"}, want: Unranked},
		{name: "single tier", roles: []string{"Gold"}, want: Gold},
		{name: "substring match", roles: []string{"Diamond-Pro"}, want: Diamond},
		{name: "highest wins regardless of order", roles: []string{"Radiant", "Iron", "Gold 2"}, want: Radiant},
		{name: "highest wins when listed last", roles: []string{"Bronze", "Member", "Immortal 3"}, want: Immortal},
		{name: "explicit unranked role", roles: []string{"Unranked"}, want: Unranked},
		{name: "case sensitive", roles: []string{"gold"}, want: Unranked},
		{name: "decorative role still matches", roles: []string{"Diamond Sponsor", "Silver"}, want: Diamond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.roles))
		})
	}
}

func TestResolve_IsMaximumOfMatchedRoles(t *testing.T) {
	roleSets := [][]string{
		{"Iron", "Bronze", "Silver"},
		{"Platinum", "Ascendant"},
		{"Gold", "Team Captain", "Platinum 1"},
	}
	for _, roles := range roleSets {
		got := Resolve(roles)
		for _, r := range roles {
			single := Resolve([]string{r})
			assert.GreaterOrEqual(t, got.Priority(), single.Priority(), "roles %v", roles)
		}
	}
}

func TestPriorityOrder(t *testing.T) {
	all := All()
	assert.Equal(t, Unranked, all[0])
	assert.Equal(t, Radiant, all[len(all)-1])
	for i := 1; i < len(all); i++ {
		assert.Greater(t, all[i].Priority(), all[i-1].Priority())
	}
	assert.Equal(t, 0, Tier("Wood").Priority())
}

func TestParse(t *testing.T) {
	assert.Equal(t, Gold, Parse("Gold"))
	assert.Equal(t, Unranked, Parse(""))
	assert.Equal(t, Unranked, Parse("Wood"))
}
