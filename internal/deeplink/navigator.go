package deeplink

import (
	"fmt"
	"strconv"
	"strings"

	"backend-fleetdesk/internal/fleet"
)

// Navigator builds a turn-by-turn directions link for one platform.
type Navigator interface {
	Name() string
	Directions(from fleet.Position, destination string) string
}

type appleMaps struct{}

func (appleMaps) Name() string { return "apple" }

func (appleMaps) Directions(from fleet.Position, destination string) string {
	return "http://maps.apple.com/?saddr=" + coords(from) + "&daddr=" + EncodeComponent(destination) + "&dirflg=d"
}

type androidNavigation struct{}

func (androidNavigation) Name() string { return "android" }

func (androidNavigation) Directions(_ fleet.Position, destination string) string {
	return "google.navigation:q=" + EncodeComponent(destination) + "&mode=d"
}

type googleMapsWeb struct{}

func (googleMapsWeb) Name() string { return "web" }

func (googleMapsWeb) Directions(from fleet.Position, destination string) string {
	return "https://www.google.com/maps/dir/" + coords(from) + "/" + EncodeComponent(destination)
}

type waze struct{}

func (waze) Name() string { return "waze" }

func (waze) Directions(_ fleet.Position, destination string) string {
	return "https://waze.com/ul?q=" + EncodeComponent(destination) + "&navigate=yes"
}

var (
	Apple   Navigator = appleMaps{}
	Android Navigator = androidNavigation{}
	Web     Navigator = googleMapsWeb{}
	Waze    Navigator = waze{}
)

// Navigators lists every supported strategy.
func Navigators() []Navigator {
	return []Navigator{Apple, Android, Web, Waze}
}

func ByName(name string) (Navigator, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "apple", "ios":
		return Apple, nil
	case "android":
		return Android, nil
	case "web", "google":
		return Web, nil
	case "waze":
		return Waze, nil
	default:
		return nil, fmt.Errorf("unknown navigator %q", name)
	}
}

// ForUserAgent picks the platform navigator from a coarse user agent
// match, defaulting to the web map.
func ForUserAgent(ua string) Navigator {
	ua = strings.ToLower(ua)
	switch {
	case strings.Contains(ua, "iphone"), strings.Contains(ua, "ipad"), strings.Contains(ua, "ipod"):
		return Apple
	case strings.Contains(ua, "android"):
		return Android
	default:
		return Web
	}
}

func coords(p fleet.Position) string {
	return strconv.FormatFloat(p.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(p.Lng, 'f', -1, 64)
}
