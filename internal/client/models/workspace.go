package models

import "strings"

// WorkspaceTab is a section of the account workspace.
type WorkspaceTab string

const (
	TabDashboard    WorkspaceTab = "dashboard"
	TabDestinations WorkspaceTab = "destinations"
	TabLogs         WorkspaceTab = "logs"
	TabMembers      WorkspaceTab = "members"
	TabSettings     WorkspaceTab = "settings"
)

// WorkspaceTabs lists the tabs in display order.
var WorkspaceTabs = []WorkspaceTab{TabDashboard, TabDestinations, TabLogs, TabMembers, TabSettings}

// ParseTab maps user input to a tab. Anything unrecognised opens the
// dashboard.
func ParseTab(s string) WorkspaceTab {
	t := WorkspaceTab(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range WorkspaceTabs {
		if t == known {
			return t
		}
	}
	return TabDashboard
}

// Title is the tab label.
func (t WorkspaceTab) Title() string {
	if t == "" {
		return ""
	}
	return strings.ToUpper(string(t[:1])) + string(t[1:])
}
