// Demo load generator: registers vehicles, drives their odometers forward
// with periodic check-ins, and requests maintenance forecasts and commute
// estimates against a running server.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	log "github.com/sirupsen/logrus"
)

// Vehicle mirrors the registration payload of the API.
type Vehicle struct {
	ID             string  `json:"id,omitempty"`
	Year           int     `json:"year"`
	Make           string  `json:"make"`
	Model          string  `json:"model"`
	CurrentMileage *int    `json:"current_mileage,omitempty"`
	MonthlyMiles   int     `json:"monthly_miles"`
	MPG            float64 `json:"mpg"`
	ZipCode        string  `json:"zip_code"`
}

// CommuteRequest mirrors the commute scenario payload of the API.
type CommuteRequest struct {
	Destination      string  `json:"destination"`
	DistanceMiles    float64 `json:"distance_miles"`
	WorkDaysPerMonth int     `json:"work_days_per_month"`
}

var (
	makes      = []string{"Ford", "Chevrolet", "Toyota", "Honda", "BMW", "Subaru"}
	carModels  = []string{"F-150", "Silverado", "Camry", "Civic", "X5", "Outback"}
	zips       = []string{"10001", "60601", "90012", "75201", "98101", "30303", "80202", "02108"}
	authToken  string
	httpClient = &http.Client{Timeout: 10 * time.Second}
)

// mintToken signs a demo token with the shared secret so requests pass the
// server's validation middleware.
func mintToken() (string, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "default-secret-key-change-in-production"
	}
	claims := jwt.MapClaims{
		"user_id": "simulator",
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func authorizedRequest(method, url string, body []byte) (*http.Response, error) {
	var reader *bytes.Buffer
	if body != nil {
		reader = bytes.NewBuffer(body)
	} else {
		reader = bytes.NewBuffer(nil)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if authToken != "" {
		req.Header.Set("Authorization", "Bearer "+authToken)
	}
	return httpClient.Do(req)
}

func createVehicle(apiURL string) (string, int, error) {
	mileage := 10000 + rand.Intn(80000)
	vehicle := Vehicle{
		Year:           2016 + rand.Intn(10),
		Make:           makes[rand.Intn(len(makes))],
		Model:          carModels[rand.Intn(len(carModels))],
		CurrentMileage: &mileage,
		MonthlyMiles:   500 + rand.Intn(1500),
		MPG:            18 + rand.Float64()*22,
		ZipCode:        zips[rand.Intn(len(zips))],
	}

	data, err := json.Marshal(vehicle)
	if err != nil {
		return "", 0, fmt.Errorf("failed to marshal vehicle: %w", err)
	}

	resp, err := authorizedRequest(http.MethodPost, apiURL+"/vehicles", data)
	if err != nil {
		return "", 0, fmt.Errorf("failed to create vehicle: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return "", 0, fmt.Errorf("vehicle creation failed with status: %d", resp.StatusCode)
	}

	var created Vehicle
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", 0, fmt.Errorf("failed to decode response: %w", err)
	}
	if created.ID == "" {
		return "", 0, fmt.Errorf("invalid vehicle ID in response")
	}

	log.WithFields(log.Fields{
		"vehicle_id": created.ID,
		"make":       vehicle.Make,
		"model":      vehicle.Model,
		"zip":        vehicle.ZipCode,
	}).Info("Created vehicle")
	return created.ID, mileage, nil
}

func checkin(apiURL, vehicleID string, mileage int) error {
	data, _ := json.Marshal(map[string]int{"mileage": mileage})
	resp, err := authorizedRequest(http.MethodPost, apiURL+"/vehicles/"+vehicleID+"/checkin", data)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("checkin failed with status: %d", resp.StatusCode)
	}
	return nil
}

func requestForecast(apiURL, vehicleID string, horizonMonths int) error {
	url := fmt.Sprintf("%s/vehicles/%s/forecast?horizon_months=%d", apiURL, vehicleID, horizonMonths)
	resp, err := authorizedRequest(http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("forecast failed with status: %d", resp.StatusCode)
	}

	var body struct {
		Forecast struct {
			Region struct {
				Region string `json:"region"`
			} `json:"region"`
			Predictions []struct {
				ServiceType   string  `json:"service_type"`
				EstimatedCost float64 `json:"estimated_cost"`
			} `json:"predictions"`
		} `json:"forecast"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"vehicle_id":  vehicleID,
		"region":      body.Forecast.Region.Region,
		"predictions": len(body.Forecast.Predictions),
	}).Info("Forecast received")
	return nil
}

func requestCommute(apiURL, vehicleID string) error {
	req := CommuteRequest{
		Destination:      "office",
		DistanceMiles:    5 + rand.Float64()*45,
		WorkDaysPerMonth: 18 + rand.Intn(5),
	}
	data, _ := json.Marshal(req)
	resp, err := authorizedRequest(http.MethodPost, apiURL+"/vehicles/"+vehicleID+"/commute", data)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("commute estimate failed with status: %d", resp.StatusCode)
	}
	return nil
}

func main() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	apiURL := os.Getenv("API_URL")
	if apiURL == "" {
		apiURL = "http://localhost:8080/api"
	}
	vehicleCount := 5
	if raw := os.Getenv("VEHICLE_COUNT"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			vehicleCount = v
		}
	}
	interval := 10 * time.Second
	if raw := os.Getenv("INTERVAL"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil {
			interval = d
		}
	}

	token, err := mintToken()
	if err != nil {
		log.WithError(err).Fatal("Failed to mint token")
	}
	authToken = token

	mileages := make(map[string]int)
	for i := 0; i < vehicleCount; i++ {
		id, mileage, err := createVehicle(apiURL)
		if err != nil {
			log.WithError(err).Error("Vehicle creation failed")
			continue
		}
		mileages[id] = mileage
	}
	if len(mileages) == 0 {
		log.Fatal("No vehicles created, exiting")
	}

	log.WithFields(log.Fields{
		"vehicles": len(mileages),
		"interval": interval.String(),
	}).Info("Simulator running")

	for {
		for id := range mileages {
			mileages[id] += 50 + rand.Intn(500)
			if err := checkin(apiURL, id, mileages[id]); err != nil {
				log.WithError(err).WithField("vehicle_id", id).Error("Checkin failed")
				continue
			}
			if err := requestForecast(apiURL, id, 12); err != nil {
				log.WithError(err).WithField("vehicle_id", id).Error("Forecast request failed")
			}
			if rand.Intn(3) == 0 {
				if err := requestCommute(apiURL, id); err != nil {
					log.WithError(err).WithField("vehicle_id", id).Error("Commute request failed")
				}
			}
		}
		time.Sleep(interval)
	}
}
