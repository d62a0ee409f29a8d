package logic

import "github.com/avct/uasurfer"

// DeviceClass maps a raw User-Agent string to a coarse device label used as
// a metrics dimension and span attribute.
func DeviceClass(uaString string) string {
	if uaString == "" {
		return "unknown"
	}
	u := uasurfer.Parse(uaString)
	if u.IsBot() {
		return "bot"
	}
	switch u.DeviceType {
	case uasurfer.DeviceComputer:
		return "desktop"
	case uasurfer.DevicePhone:
		return "mobile"
	case uasurfer.DeviceTablet:
		return "tablet"
	default:
		return "other"
	}
}
