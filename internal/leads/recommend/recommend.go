// Package recommend implements the security-system recommendation engine.
//
// The engine is a pure function over a HomeProfile: no I/O, no clock, no
// randomness. Output order is fixed by rule evaluation order so that repeated
// runs on the same profile produce identical sequences, which keeps rendered
// recommendations and persisted lead records comparable.
package recommend

import (
	"fmt"

	"homeshield_backend/internal/leads/domain"
)

// Monthly pricing policy: flat base fee plus a per-device charge.
const (
	baseMonthlyCost  = 20
	perDeviceMonthly = 5
)

// Item is a single recommended device group. Icon and color are opaque
// presentation tags carried alongside the business data; the engine assigns
// them but never interprets them.
type Item struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Count       int    `json:"count"`
	Color       string `json:"color"`
}

// Summary aggregates a recommendation set into dashboard-ready numbers.
type Summary struct {
	TotalDevices  int      `json:"totalDevices"`
	DeviceList    []string `json:"deviceList"`
	EstimatedCost int      `json:"estimatedCost"`
	MonthlyCost   int      `json:"monthlyCost"`
}

// Recommend evaluates the rule set against a home profile and returns the
// recommended device groups in rule order. Every rule is independent except
// the safety-detector pair: exactly one of CO detector or smoke/carbon combo
// always fires, so the result is never empty.
func Recommend(profile domain.HomeProfile) []Item {
	profile.Normalize()

	items := make([]Item, 0, 8)

	if profile.DoorCount > 0 {
		items = append(items, Item{
			ID:          "door-sensors",
			Title:       "Door Contact Sensors",
			Description: "Detects when doors are opened or closed.",
			Icon:        "🚪",
			Count:       profile.DoorCount,
			Color:       "blue",
		})
	}

	if profile.WindowRoomCount > 0 {
		items = append(items, Item{
			ID:          "glass-break",
			Title:       "Glass Break Detectors",
			Description: "Detects the sound of breaking glass.",
			Icon:        "🪟",
			Count:       profile.WindowRoomCount,
			Color:       "green",
		})
	}

	// A motion detector only makes sense without pets and with the home
	// regularly empty.
	if !profile.HasDogs && !profile.HomeOften {
		items = append(items, Item{
			ID:          "motion",
			Title:       "Motion Detector",
			Description: "Detects movement in your home when you're away.",
			Icon:        "👁️",
			Count:       1,
			Color:       "purple",
		})
	}

	if profile.FrequentVisitors || profile.FrequentPackages {
		items = append(items, Item{
			ID:          "doorbell",
			Title:       "Doorbell Camera",
			Description: "See and speak with visitors at your door.",
			Icon:        "🔔",
			Count:       1,
			Color:       "blue",
		})
	}

	// Safety detector branch: mutually exclusive and exhaustive.
	if profile.HasGasAppliances {
		items = append(items, Item{
			ID:          "co-detector",
			Title:       "CO Detector",
			Description: "Detects carbon monoxide gas on your main floor.",
			Icon:        "☢️",
			Count:       1,
			Color:       "red",
		})
	} else {
		items = append(items, Item{
			ID:          "smoke-carbon",
			Title:       "Smoke/Carbon Combo Detector",
			Description: "Detects both smoke and carbon monoxide.",
			Icon:        "🔥",
			Count:       1,
			Color:       "orange",
		})
	}

	if profile.OutsideVisitors {
		items = append(items, Item{
			ID:          "door-lock",
			Title:       "Connected Door Lock",
			Description: "Control access to your home remotely.",
			Icon:        "🔒",
			Count:       1,
			Color:       "indigo",
		})
	}

	if profile.ConnectThermostat {
		items = append(items, Item{
			ID:          "thermostat",
			Title:       "Thermostat Integration",
			Description: "Connect your WiFi thermostat to your security system.",
			Icon:        "🌡️",
			Count:       1,
			Color:       "teal",
		})
	}

	if cameraCount := profile.SelectedCameraCount(); cameraCount > 0 {
		title := "Surveillance Camera"
		if cameraCount > 1 {
			title = "Surveillance Cameras"
		}
		items = append(items, Item{
			ID:          "cameras",
			Title:       title,
			Description: "Monitor selected areas around your home.",
			Icon:        "📹",
			Count:       cameraCount,
			Color:       "gray",
		})
	}

	return items
}

// Summarize aggregates recommendation items into a system summary.
// Cost is totalDevices*5+20 dollars per month, zero when nothing is
// recommended. MonthlyCost always equals EstimatedCost.
func Summarize(items []Item) Summary {
	total := 0
	deviceList := make([]string, 0, len(items))
	for _, item := range items {
		total += item.Count
		label := item.Title
		if item.Count > 1 {
			label = fmt.Sprintf("%s (%d)", item.Title, item.Count)
		}
		deviceList = append(deviceList, label)
	}

	cost := 0
	if total > 0 {
		cost = total*perDeviceMonthly + baseMonthlyCost
	}

	return Summary{
		TotalDevices:  total,
		DeviceList:    deviceList,
		EstimatedCost: cost,
		MonthlyCost:   cost,
	}
}

// Build runs the full engine: recommendations plus their summary.
func Build(profile domain.HomeProfile) ([]Item, Summary) {
	items := Recommend(profile)
	return items, Summarize(items)
}
