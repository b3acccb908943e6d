package models

// State is the whole dashboard tree. Values handed out by the store are
// snapshots: callers must not mutate maps or slices reachable from them.
type State struct {
	Settings      SystemSettings                     `json:"settings"`
	Kindergartens map[string]Kindergarten            `json:"kindergartens"`
	Branches      map[string]Branch                  `json:"branches"`
	Groups        map[string]Group                   `json:"groups"`
	Teachers      map[string]Teacher                 `json:"teachers"`
	Students      map[string]Student                 `json:"students"`
	Users         map[string]User                    `json:"users"`
	Applications  map[string]KindergartenApplication `json:"applications"`
	Notifications []NotificationEntry                `json:"notifications"` // newest first

	// Version counts applied actions.
	Version uint64 `json:"version"`
}

// NewState returns an empty tree with default settings.
func NewState() State {
	return State{
		Settings:      DefaultSettings(),
		Kindergartens: map[string]Kindergarten{},
		Branches:      map[string]Branch{},
		Groups:        map[string]Group{},
		Teachers:      map[string]Teacher{},
		Students:      map[string]Student{},
		Users:         map[string]User{},
		Applications:  map[string]KindergartenApplication{},
		Notifications: []NotificationEntry{},
	}
}

func DefaultSettings() SystemSettings {
	return SystemSettings{
		Branding: Branding{
			LogoURL:      "/static/logo.svg",
			PrimaryColor: "#4f46e5",
			AccentColor:  "#0ea5e9",
		},
		Localization: Localization{
			Language: "en",
			Currency: "IDR",
		},
	}
}
