package view

type Device string

const (
	DeviceMobile  Device = "mobile"
	DeviceDesktop Device = "desktop"
)

const DefaultDevice = DeviceMobile

var Devices = []Device{DeviceMobile, DeviceDesktop}

func (d Device) Valid() bool {
	return d == DeviceMobile || d == DeviceDesktop
}

// Label is the Vietnamese name of the device used in status messages.
func (d Device) Label() string {
	if d == DeviceDesktop {
		return "máy tính"
	}
	return "di động"
}

type Location string

const (
	LocationVietnam   Location = "Vietnam"
	LocationSingapore Location = "Singapore"
	LocationJapan     Location = "Japan"
	LocationUSA       Location = "USA"
	LocationEurope    Location = "Europe"
)

const DefaultLocation = LocationVietnam

var Locations = []Location{LocationVietnam, LocationSingapore, LocationJapan, LocationUSA, LocationEurope}

func (l Location) Valid() bool {
	for _, loc := range Locations {
		if loc == l {
			return true
		}
	}
	return false
}

func (l Location) Label() string {
	return string(l) + " Server"
}

type Tab string

const (
	TabOverview       Tab = "overview"
	TabSocialSecurity Tab = "social_security"
	TabDetails        Tab = "details"
	TabCode           Tab = "code"
)

var Tabs = []Tab{TabOverview, TabSocialSecurity, TabDetails, TabCode}

// ParseTab falls back to the overview tab for anything it does not know.
func ParseTab(s string) Tab {
	for _, t := range Tabs {
		if string(t) == s {
			return t
		}
	}
	return TabOverview
}

type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type OptionsView struct {
	Devices   []Option `json:"devices"`
	Locations []Option `json:"locations"`
	Tabs      []Tab    `json:"tabs"`
}
