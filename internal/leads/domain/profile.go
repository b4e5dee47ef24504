// Package domain holds the lead bounded context's core types and invariants.
package domain

// Camera location keys. The cameras map on a profile always contains exactly
// this set; a missing key means "not selected", never "unknown".
const (
	CameraFrontDoor  = "frontDoor"
	CameraGarageDoor = "garageDoor"
	CameraLeftSide   = "leftSide"
	CameraRightSide  = "rightSide"
	CameraBackyard   = "backyard"
)

// CameraLocations returns the fixed, ordered set of camera locations.
func CameraLocations() []string {
	return []string{CameraFrontDoor, CameraGarageDoor, CameraLeftSide, CameraRightSide, CameraBackyard}
}

// HomeProfile is the visitor-supplied questionnaire answer set. It is an
// immutable snapshot once submitted with a lead.
type HomeProfile struct {
	DoorCount         int             `json:"doorCount"`
	WindowRoomCount   int             `json:"windowRoomCount"`
	HasDogs           bool            `json:"hasDogs"`
	HomeOften         bool            `json:"homeOften"`
	FrequentVisitors  bool            `json:"frequentVisitors"`
	FrequentPackages  bool            `json:"frequentPackages"`
	HasGasAppliances  bool            `json:"hasGasAppliances"`
	OutsideVisitors   bool            `json:"outsideVisitors"`
	ConnectThermostat bool            `json:"connectThermostat"`
	Cameras           map[string]bool `json:"cameras"`
}

// Normalize enforces the profile invariants in place: counts are clamped at
// zero and the cameras map contains exactly the fixed location set. Keys
// outside the fixed set are dropped, missing keys default to unselected.
func (p *HomeProfile) Normalize() {
	if p.DoorCount < 0 {
		p.DoorCount = 0
	}
	if p.WindowRoomCount < 0 {
		p.WindowRoomCount = 0
	}

	cameras := make(map[string]bool, len(CameraLocations()))
	for _, location := range CameraLocations() {
		cameras[location] = p.Cameras[location]
	}
	p.Cameras = cameras
}

// SelectedCameraCount returns how many camera locations are selected.
func (p HomeProfile) SelectedCameraCount() int {
	count := 0
	for _, location := range CameraLocations() {
		if p.Cameras[location] {
			count++
		}
	}
	return count
}
