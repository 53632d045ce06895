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

	log "github.com/sirupsen/logrus"
)

// Customer mirrors the API payload for registering a customer.
type Customer struct {
	Name       string `json:"name"`
	DocumentID string `json:"document_id"`
	Phone      string `json:"phone"`
}

// Vehicle mirrors the API payload for registering a customer vehicle.
type Vehicle struct {
	Plate      string  `json:"plate"`
	Brand      string  `json:"brand"`
	Model      string  `json:"model"`
	VType      string  `json:"type"`
	CustomerID string  `json:"customer_id"`
	Mileage    float64 `json:"mileage"`
}

// Delivery mirrors the API payload for handing a vehicle back.
type Delivery struct {
	ServiceID            string `json:"service_id"`
	DeliveredBy          string `json:"delivered_by"`
	ReceivedBy           string `json:"received_by"`
	CustomerSatisfaction int    `json:"customer_satisfaction"`
	Notes                string `json:"notes"`
}

// Service mirrors the API payload for opening a repair service.
type Service struct {
	VehicleID       string  `json:"vehicle_id"`
	MaintenanceType string  `json:"maintenance_type"`
	Description     string  `json:"description"`
	LaborCost       float64 `json:"labor_cost"`
	Mileage         *int    `json:"mileage,omitempty"`
}

// PartUsageRequest mirrors the API payload for consuming stock on a service.
type PartUsageRequest struct {
	PartID   string `json:"part_id"`
	Quantity int    `json:"quantity"`
}

var brands = map[string][]string{
	"Toyota":    {"Corolla", "Hilux", "RAV4"},
	"Chevrolet": {"Spark", "Onix", "Tracker"},
	"Renault":   {"Logan", "Duster", "Sandero"},
	"Mazda":     {"3", "CX-30", "CX-5"},
	"Nissan":    {"Versa", "Frontier", "Kicks"},
}

var customerNames = []string{
	"Laura Gomez",
	"Carlos Herrera",
	"Ana Castillo",
	"Jorge Ramirez",
	"Paula Mendoza",
}

var technicians = []string{
	"M. Rodriguez",
	"S. Vargas",
	"D. Torres",
}

var descriptions = []string{
	"Oil and filter change",
	"Front brake pad replacement",
	"Timing belt service",
	"Coolant flush",
	"Alternator replacement",
	"Suspension check and alignment",
	"Clutch adjustment",
}

var authToken string

func authorizedRequest(method, url string, body *bytes.Buffer) (*http.Response, error) {
	if body == nil {
		body = &bytes.Buffer{}
	}
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if authToken != "" {
		req.Header.Set("Authorization", "Bearer "+authToken)
	}
	client := &http.Client{Timeout: 10 * time.Second}
	return client.Do(req)
}

func postJSON(url string, payload interface{}) (map[string]interface{}, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}
	resp, err := authorizedRequest(http.MethodPost, url, bytes.NewBuffer(data))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("request to %s failed with status: %d", url, resp.StatusCode)
	}
	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return result, nil
}

func randomCustomer() Customer {
	return Customer{
		Name:       customerNames[rand.Intn(len(customerNames))],
		DocumentID: fmt.Sprintf("CC%09d", rand.Intn(1_000_000_000)),
		Phone:      fmt.Sprintf("300%07d", rand.Intn(10_000_000)),
	}
}

func createCustomer(apiURL string) (id, name string, err error) {
	customer := randomCustomer()
	result, err := postJSON(apiURL+"/customers", customer)
	if err != nil {
		return "", "", err
	}
	id, ok := result["id"].(string)
	if !ok {
		return "", "", fmt.Errorf("invalid customer ID in response")
	}
	log.WithFields(log.Fields{
		"customer_id": id,
		"name":        customer.Name,
	}).Info("Registered customer")
	return id, customer.Name, nil
}

func randomVehicle(customerID string) Vehicle {
	brand := randomKey(brands)
	models := brands[brand]
	return Vehicle{
		Plate:      randomPlate(),
		Brand:      brand,
		Model:      models[rand.Intn(len(models))],
		VType:      []string{"car", "motorcycle", "truck", "van"}[rand.Intn(4)],
		CustomerID: customerID,
		Mileage:    float64(20000 + rand.Intn(180000)),
	}
}

func createVehicle(apiURL, customerID string) (string, error) {
	vehicle := randomVehicle(customerID)
	result, err := postJSON(apiURL+"/vehicles", vehicle)
	if err != nil {
		return "", err
	}
	id, ok := result["id"].(string)
	if !ok {
		return "", fmt.Errorf("invalid vehicle ID in response")
	}
	log.WithFields(log.Fields{
		"vehicle_id": id,
		"plate":      vehicle.Plate,
		"brand":      vehicle.Brand,
		"model":      vehicle.Model,
	}).Info("Registered vehicle")
	return id, nil
}

func randomService(vehicleID string) Service {
	mileage := 20000 + rand.Intn(180000)
	return Service{
		VehicleID:       vehicleID,
		MaintenanceType: []string{"CORRECTIVE", "PREVENTIVE"}[rand.Intn(2)],
		Description:     descriptions[rand.Intn(len(descriptions))],
		LaborCost:       float64(20+rand.Intn(18)) * 5, // 100..185 in steps of 5
		Mileage:         &mileage,
	}
}

func createService(apiURL, vehicleID string) (string, error) {
	svc := randomService(vehicleID)
	result, err := postJSON(apiURL+"/services", svc)
	if err != nil {
		return "", err
	}
	id, ok := result["id"].(string)
	if !ok {
		return "", fmt.Errorf("invalid service ID in response")
	}
	log.WithFields(log.Fields{
		"service_id": id,
		"vehicle_id": vehicleID,
		"type":       svc.MaintenanceType,
	}).Info("Opened service")
	return id, nil
}

func changeStatus(apiURL, serviceID, status string) error {
	payload := map[string]string{"status": status}
	_, err := postJSON(apiURL+"/services/"+serviceID+"/status", payload)
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{"service_id": serviceID, "status": status}).Info("Advanced service")
	return nil
}

func recordUsage(apiURL, serviceID, partID string) {
	usage := PartUsageRequest{
		PartID:   partID,
		Quantity: 1 + rand.Intn(3),
	}
	if _, err := postJSON(apiURL+"/services/"+serviceID+"/parts", usage); err != nil {
		log.WithError(err).WithField("service_id", serviceID).Warn("Part usage rejected")
		return
	}
	log.WithFields(log.Fields{
		"service_id": serviceID,
		"part_id":    partID,
		"quantity":   usage.Quantity,
	}).Info("Recorded part usage")
}

func randomDelivery(serviceID, customerName string) Delivery {
	return Delivery{
		ServiceID:            serviceID,
		DeliveredBy:          technicians[rand.Intn(len(technicians))],
		ReceivedBy:           customerName,
		CustomerSatisfaction: 3 + rand.Intn(3),
		Notes:                "Delivered after road test",
	}
}

func createDelivery(apiURL, serviceID, customerName string) (string, error) {
	payload := randomDelivery(serviceID, customerName)
	result, err := postJSON(apiURL+"/deliveries", payload)
	if err != nil {
		return "", err
	}
	id, ok := result["id"].(string)
	if !ok {
		return "", fmt.Errorf("invalid delivery order ID in response")
	}
	log.WithFields(log.Fields{"delivery_id": id, "service_id": serviceID}).Info("Created delivery order")
	return id, nil
}

func fetchPartIDs(apiURL string) []string {
	resp, err := authorizedRequest(http.MethodGet, apiURL+"/parts", nil)
	if err != nil {
		log.WithError(err).Warn("Failed to list parts")
		return nil
	}
	defer resp.Body.Close()
	var parts []map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&parts); err != nil {
		return nil
	}
	ids := make([]string, 0, len(parts))
	for _, p := range parts {
		if id, ok := p["id"].(string); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

func randomPlate() string {
	letters := "ABCDEFGHJKLMNPRSTUVWXYZ"
	return fmt.Sprintf("%c%c%c%03d",
		letters[rand.Intn(len(letters))],
		letters[rand.Intn(len(letters))],
		letters[rand.Intn(len(letters))],
		rand.Intn(1000))
}

func randomKey(m map[string][]string) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys[rand.Intn(len(keys))]
}

// simulateBay runs one repair bay: it opens a service for a fresh vehicle,
// walks it through the full lifecycle, and hands it over with a delivery
// order before starting again.
func simulateBay(apiURL string, partIDs []string, interval time.Duration) {
	tick := time.NewTicker(interval)
	defer tick.Stop()
	for range tick.C {
		customerID, customerName, err := createCustomer(apiURL)
		if err != nil {
			log.WithError(err).Error("Failed to register customer")
			continue
		}
		vehicleID, err := createVehicle(apiURL, customerID)
		if err != nil {
			log.WithError(err).Error("Failed to register vehicle")
			continue
		}
		serviceID, err := createService(apiURL, vehicleID)
		if err != nil {
			log.WithError(err).Error("Failed to open service")
			continue
		}

		if err := changeStatus(apiURL, serviceID, "IN_PROGRESS"); err != nil {
			log.WithError(err).Error("Failed to start service")
			continue
		}

		if len(partIDs) > 0 {
			for i := 0; i < 1+rand.Intn(3); i++ {
				recordUsage(apiURL, serviceID, partIDs[rand.Intn(len(partIDs))])
			}
		}

		if err := changeStatus(apiURL, serviceID, "COMPLETED"); err != nil {
			log.WithError(err).Error("Failed to complete service")
			continue
		}

		if _, err := createDelivery(apiURL, serviceID, customerName); err != nil {
			log.WithError(err).Error("Failed to create delivery order")
		}
	}
}

func main() {
	authToken = os.Getenv("SIM_AUTH_TOKEN")

	bays := 3
	if val := os.Getenv("BAY_COUNT"); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n >= 1 {
			bays = n
		}
	}

	apiURL := os.Getenv("API_BASE_URL")
	if apiURL == "" {
		apiURL = "http://localhost:8080/api"
	}

	interval := 5 * time.Second
	if v := os.Getenv("SIM_TICK_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 {
			interval = time.Duration(n) * time.Second
		}
	}

	log.WithFields(log.Fields{
		"bays":     bays,
		"api_url":  apiURL,
		"interval": interval,
	}).Info("Starting workshop simulation")

	partIDs := fetchPartIDs(apiURL)
	if len(partIDs) == 0 {
		log.Warn("No parts in inventory, services will be labor-only")
	}

	for i := 0; i < bays; i++ {
		go simulateBay(apiURL, partIDs, interval)
	}

	log.Info("Workshop simulation started")
	select {} // Block forever
}
