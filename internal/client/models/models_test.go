package models

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccount_DecodesBackendPayload(t *testing.T) {
	raw := `{"id":"a1","account_name":"Shop","website":"https://shop.example","user_role":"owner","extra":1}`

	var got Account
	require.NoError(t, json.Unmarshal([]byte(raw), &got))

	want := Account{ID: "a1", AccountName: "Shop", Website: "https://shop.example", UserRole: "owner"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Account mismatch (-want +got):\n%s", diff)
	}
}

func TestNewAccount_Encodes(t *testing.T) {
	b, err := json.Marshal(NewAccount{AccountName: "Shop", Website: "https://shop.example"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"account_name":"Shop","website":"https://shop.example"}`, string(b))
}

func TestStatistics(t *testing.T) {
	tests := []struct {
		name  string
		in    Statistics
		total int64
		rate  string
	}{
		{"empty", Statistics{}, 0, "0.0"},
		{"all success", Statistics{Success: 10}, 10, "100.0"},
		{"mixed", Statistics{Success: 2, Failed: 1}, 3, "66.7"},
		{"pending counts", Statistics{Success: 1, Failed: 1, Pending: 2}, 4, "25.0"},
		{"none succeeded", Statistics{Failed: 3}, 3, "0.0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.total, tt.in.Total())
			assert.Equal(t, tt.rate, tt.in.SuccessRate())
		})
	}
}

func TestParseTab(t *testing.T) {
	tests := map[string]WorkspaceTab{
		"":             TabDashboard,
		"dashboard":    TabDashboard,
		"Destinations": TabDestinations,
		" logs ":       TabLogs,
		"members":      TabMembers,
		"settings":     TabSettings,
		"billing":      TabDashboard,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseTab(in), in)
	}
}

func TestWorkspaceTab_Title(t *testing.T) {
	assert.Equal(t, "Dashboard", TabDashboard.Title())
	assert.Equal(t, "Members", TabMembers.Title())
	assert.Equal(t, "", WorkspaceTab("").Title())
}
