package recommend

import (
	"reflect"
	"testing"

	"homeshield_backend/internal/leads/domain"
)

func TestRecommend_TypicalProfile(t *testing.T) {
	profile := domain.HomeProfile{
		DoorCount:        2,
		WindowRoomCount:  1,
		FrequentVisitors: true,
		Cameras:          map[string]bool{domain.CameraFrontDoor: true},
	}

	items, summary := Build(profile)

	wantIDs := []string{"door-sensors", "glass-break", "motion", "doorbell", "smoke-carbon", "cameras"}
	gotIDs := make([]string, 0, len(items))
	for _, item := range items {
		gotIDs = append(gotIDs, item.ID)
	}
	if !reflect.DeepEqual(gotIDs, wantIDs) {
		t.Fatalf("expected item order %v, got %v", wantIDs, gotIDs)
	}

	if items[0].Count != 2 {
		t.Fatalf("expected 2 door sensors, got %d", items[0].Count)
	}
	if summary.TotalDevices != 7 {
		t.Fatalf("expected 7 total devices, got %d", summary.TotalDevices)
	}
	if summary.EstimatedCost != 55 {
		t.Fatalf("expected estimated cost 55, got %d", summary.EstimatedCost)
	}
	if summary.MonthlyCost != summary.EstimatedCost {
		t.Fatalf("monthly cost %d diverged from estimated cost %d", summary.MonthlyCost, summary.EstimatedCost)
	}
}

func TestRecommend_EmptyProfileStillRecommendsSafetyDetector(t *testing.T) {
	// Everything false/zero: only the smoke/carbon combo fires.
	items, summary := Build(domain.HomeProfile{HasDogs: true, HomeOften: true})

	if len(items) != 1 {
		t.Fatalf("expected exactly one item, got %d", len(items))
	}
	if items[0].ID != "smoke-carbon" {
		t.Fatalf("expected smoke-carbon, got %s", items[0].ID)
	}
	if summary.TotalDevices != 1 {
		t.Fatalf("expected 1 device, got %d", summary.TotalDevices)
	}
	if summary.EstimatedCost != 25 {
		t.Fatalf("expected cost 25, got %d", summary.EstimatedCost)
	}
}

func TestRecommend_SafetyDetectorBranchIsExclusive(t *testing.T) {
	profiles := []domain.HomeProfile{
		{},
		{HasGasAppliances: true},
		{DoorCount: 4, WindowRoomCount: 3, HasGasAppliances: true, OutsideVisitors: true, ConnectThermostat: true},
		{HasDogs: true, HomeOften: true, FrequentPackages: true},
	}

	for _, profile := range profiles {
		items := Recommend(profile)
		safety := 0
		for _, item := range items {
			if item.ID == "co-detector" || item.ID == "smoke-carbon" {
				safety++
			}
		}
		if safety != 1 {
			t.Fatalf("profile %+v: expected exactly one safety detector, got %d", profile, safety)
		}
	}
}

func TestRecommend_GasAppliancesSelectCODetector(t *testing.T) {
	items := Recommend(domain.HomeProfile{HasGasAppliances: true})
	for _, item := range items {
		if item.ID == "smoke-carbon" {
			t.Fatal("smoke-carbon must not fire when gas appliances are present")
		}
	}
}

func TestRecommend_Deterministic(t *testing.T) {
	profile := domain.HomeProfile{
		DoorCount:         3,
		WindowRoomCount:   2,
		FrequentPackages:  true,
		OutsideVisitors:   true,
		ConnectThermostat: true,
		Cameras: map[string]bool{
			domain.CameraFrontDoor: true,
			domain.CameraBackyard:  true,
			domain.CameraLeftSide:  true,
		},
	}

	first, firstSummary := Build(profile)
	for i := 0; i < 50; i++ {
		next, nextSummary := Build(profile)
		if !reflect.DeepEqual(first, next) {
			t.Fatalf("run %d produced different items:\nfirst: %+v\nnext:  %+v", i, first, next)
		}
		if !reflect.DeepEqual(firstSummary, nextSummary) {
			t.Fatalf("run %d produced different summary", i)
		}
	}
}

func TestRecommend_CameraTitlePluralizes(t *testing.T) {
	single := Recommend(domain.HomeProfile{Cameras: map[string]bool{domain.CameraBackyard: true}})
	if got := single[len(single)-1]; got.ID != "cameras" || got.Title != "Surveillance Camera" || got.Count != 1 {
		t.Fatalf("expected singular camera item, got %+v", got)
	}

	multi := Recommend(domain.HomeProfile{Cameras: map[string]bool{
		domain.CameraBackyard:  true,
		domain.CameraFrontDoor: true,
	}})
	if got := multi[len(multi)-1]; got.Title != "Surveillance Cameras" || got.Count != 2 {
		t.Fatalf("expected plural camera item with count 2, got %+v", got)
	}
}

func TestRecommend_IgnoresUnknownCameraKeys(t *testing.T) {
	items := Recommend(domain.HomeProfile{Cameras: map[string]bool{
		"roof":                 true,
		domain.CameraFrontDoor: true,
	}})

	for _, item := range items {
		if item.ID == "cameras" && item.Count != 1 {
			t.Fatalf("unknown camera key counted: got %d cameras", item.Count)
		}
	}
}

func TestRecommend_NegativeCountsClamped(t *testing.T) {
	items, summary := Build(domain.HomeProfile{DoorCount: -3, WindowRoomCount: -1, HasDogs: true, HomeOften: true})
	if len(items) != 1 {
		t.Fatalf("negative counts should not emit sensors, got %d items", len(items))
	}
	if summary.TotalDevices != 1 {
		t.Fatalf("expected 1 device, got %d", summary.TotalDevices)
	}
}

func TestSummarize_DeviceListLabels(t *testing.T) {
	items := []Item{
		{Title: "Door Contact Sensors", Count: 2},
		{Title: "Motion Detector", Count: 1},
	}

	summary := Summarize(items)

	want := []string{"Door Contact Sensors (2)", "Motion Detector"}
	if !reflect.DeepEqual(summary.DeviceList, want) {
		t.Fatalf("expected device list %v, got %v", want, summary.DeviceList)
	}
}

func TestSummarize_PricingIdentity(t *testing.T) {
	for devices := 0; devices <= 30; devices++ {
		items := []Item{}
		if devices > 0 {
			items = append(items, Item{Title: "x", Count: devices})
		}
		summary := Summarize(items)

		want := 0
		if devices > 0 {
			want = devices*5 + 20
		}
		if summary.EstimatedCost != want {
			t.Fatalf("devices=%d: expected cost %d, got %d", devices, want, summary.EstimatedCost)
		}
	}
}
