package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/theoremus-urban-solutions/fleet-gps-analytics/config"
	"github.com/theoremus-urban-solutions/fleet-gps-analytics/fleet"
	"github.com/theoremus-urban-solutions/fleet-gps-analytics/mongostore"
	"github.com/theoremus-urban-solutions/fleet-gps-analytics/tracking"
)

func main() {
	configPath := flag.String("config", "", "path to config YAML (defaults apply when empty)")
	fleetID := flag.String("fleet", "demo-fleet", "fleet id to report on")
	storeKind := flag.String("store", "memory", "memory|mongo")
	database := flag.String("db", "fleet", "mongo database name")
	interval := flag.Duration("interval", 0, "repeat the dashboard snapshot at this interval (0 = once)")
	flag.Parse()

	// Optional; env vars may come from the shell instead.
	_ = godotenv.Load()

	log.SetFormatter(&log.JSONFormatter{})

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.WithError(err).Fatal("loading config")
	}

	ctx := context.Background()

	var store fleet.Store
	switch *storeKind {
	case "mongo":
		client, err := mongostore.Connect(ctx)
		if err != nil {
			log.WithError(err).Fatal("connecting to mongo")
		}
		defer client.Disconnect(ctx)
		store = mongostore.New(client, *database)
	case "memory":
		store = seedDemoFleet(*fleetID)
	default:
		log.Fatalf("unknown store %q", *storeKind)
	}

	tracker := tracking.New(store, cfg)

	snapshot := func() {
		dash, err := tracker.FleetDashboard(ctx, *fleetID)
		if err != nil {
			log.WithError(err).Error("building dashboard")
			return
		}
		buf, err := json.MarshalIndent(dash, "", "  ")
		if err != nil {
			log.WithError(err).Error("encoding dashboard")
			return
		}
		fmt.Println(string(buf))
	}

	snapshot()
	if *interval <= 0 {
		return
	}
	ticker := time.NewTicker(*interval)
	defer ticker.Stop()
	for range ticker.C {
		snapshot()
	}
}

// seedDemoFleet builds an in-memory store with one vehicle on an in-progress
// two-stop route, enough to exercise the dashboard end to end.
func seedDemoFleet(fleetID string) *fleet.MemoryStore {
	store := fleet.NewMemoryStore()
	now := time.Now()

	lat := 48.1351
	lng := 11.5820
	locAt := now.Add(-2 * time.Minute)
	store.PutVehicle(&fleet.Vehicle{
		ID:             "veh-demo-1",
		FleetID:        fleetID,
		LicensePlate:   "M-FL 100",
		DriverID:       "drv-demo-1",
		DriverName:     "Demo Driver",
		Status:         fleet.VehicleInUse,
		CurrentLat:     &lat,
		CurrentLng:     &lng,
		LastLocationAt: &locAt,
	})

	stop1Lat, stop1Lng := 48.1400, 11.5900
	stop2Lat, stop2Lng := 48.1500, 11.6100
	store.PutRoute(&fleet.Route{
		ID:        "route-demo-1",
		FleetID:   fleetID,
		VehicleID: "veh-demo-1",
		Status:    fleet.RouteInProgress,
		RouteDate: now,
		Stops: []fleet.Stop{
			{ID: "stop-1", Order: 1, Status: fleet.StopPending, Latitude: &stop1Lat, Longitude: &stop1Lng, RecipientName: "First Recipient"},
			{ID: "stop-2", Order: 2, Status: fleet.StopPending, Latitude: &stop2Lat, Longitude: &stop2Lng, RecipientName: "Second Recipient"},
		},
	})

	samples := make([]fleet.PositionSample, 0, 5)
	for i := 0; i < 5; i++ {
		samples = append(samples, fleet.PositionSample{
			VehicleID:     "veh-demo-1",
			Latitude:      48.1300 + float64(i)*0.0015,
			Longitude:     11.5750 + float64(i)*0.0020,
			Speed:         35 + float64(i*3),
			Heading:       45,
			EngineRunning: true,
			RecordedAt:    now.Add(time.Duration(i-5) * time.Minute),
		})
	}
	store.AddPositions(samples...)

	return store
}
