package main

import (
	"net/http"
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/AtexDEPR/Sistema-CarMotors-sub000/internal/auth"
	"github.com/AtexDEPR/Sistema-CarMotors-sub000/internal/db"
	"github.com/AtexDEPR/Sistema-CarMotors-sub000/internal/handlers"
	"github.com/AtexDEPR/Sistema-CarMotors-sub000/internal/middleware"
	"github.com/AtexDEPR/Sistema-CarMotors-sub000/internal/models"
	"github.com/AtexDEPR/Sistema-CarMotors-sub000/internal/notify"
	"github.com/AtexDEPR/Sistema-CarMotors-sub000/internal/workshop"
)

func newRouter(database *mongo.Database, authService *auth.Service, publisher notify.StatusPublisher) http.Handler {
	services := &db.MongoServiceCollection{Collection: database.Collection("services")}
	usage := &db.MongoPartUsageCollection{Collection: database.Collection("part_usage")}
	deliveries := &db.MongoDeliveryOrderCollection{Collection: database.Collection("delivery_orders")}
	purchaseOrders := &db.MongoPurchaseOrderCollection{Collection: database.Collection("purchase_orders")}
	suppliers := &db.MongoSupplierCollection{Collection: database.Collection("suppliers")}
	evaluations := &db.MongoEvaluationCollection{Collection: database.Collection("supplier_evaluations")}
	parts := &db.MongoPartCollection{Collection: database.Collection("parts")}
	vehicles := &db.MongoVehicleCollection{Collection: database.Collection("vehicles")}
	technicians := &db.MongoTechnicianCollection{Collection: database.Collection("technicians")}
	customers := &db.MongoCustomerCollection{Collection: database.Collection("customers")}
	users := &db.MongoUserCollection{Collection: database.Collection("users")}

	orchestrator := workshop.New(services, usage, deliveries, parts, publisher)

	serviceHandler := handlers.NewServiceHandler(services, orchestrator)
	deliveryHandler := handlers.NewDeliveryHandler(deliveries, orchestrator)
	purchaseHandler := handlers.NewPurchaseOrderHandler(purchaseOrders)
	supplierHandler := handlers.NewSupplierHandler(suppliers, evaluations)
	partHandler := handlers.NewPartHandler(parts)
	vehicleHandler := handlers.NewVehicleHandler(vehicles)
	technicianHandler := handlers.NewTechnicianHandler(technicians)
	customerHandler := handlers.NewCustomerHandler(customers)
	authHandler := handlers.NewAuthHandler(authService, users)

	authMiddleware := middleware.NewAuthMiddleware(authService)
	requirePerm := authMiddleware.RequirePermission

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/auth/register", authHandler.Register)
	mux.HandleFunc("GET /api/auth/profile", authHandler.GetProfile)
	mux.HandleFunc("PUT /api/auth/profile", authHandler.UpdateProfile)
	mux.HandleFunc("POST /api/auth/change-password", authHandler.ChangePassword)

	mux.HandleFunc("POST /api/services", serviceHandler.Create)
	mux.HandleFunc("GET /api/services", serviceHandler.List)
	mux.HandleFunc("GET /api/services/{id}", serviceHandler.Get)
	mux.HandleFunc("PUT /api/services/{id}", serviceHandler.Update)
	mux.Handle("DELETE /api/services/{id}", authMiddleware.RequireRole(models.RoleManager)(http.HandlerFunc(serviceHandler.Delete)))
	mux.Handle("POST /api/services/{id}/status", requirePerm("advance_service")(http.HandlerFunc(serviceHandler.ChangeStatus)))
	mux.HandleFunc("GET /api/services/{id}/invoice", serviceHandler.Invoice)
	mux.HandleFunc("GET /api/services/{id}/warranty", serviceHandler.Warranty)
	mux.HandleFunc("POST /api/services/{id}/parts", serviceHandler.RecordUsage)

	mux.Handle("POST /api/deliveries", requirePerm("create_delivery_order")(http.HandlerFunc(deliveryHandler.Create)))
	mux.HandleFunc("GET /api/deliveries", deliveryHandler.List)
	mux.HandleFunc("GET /api/deliveries/{id}", deliveryHandler.Get)
	mux.Handle("DELETE /api/deliveries/{id}", requirePerm("delete_delivery_order")(http.HandlerFunc(deliveryHandler.Delete)))

	mux.HandleFunc("POST /api/purchase-orders", purchaseHandler.Create)
	mux.HandleFunc("GET /api/purchase-orders", purchaseHandler.List)
	mux.HandleFunc("GET /api/purchase-orders/{id}", purchaseHandler.Get)
	mux.HandleFunc("DELETE /api/purchase-orders/{id}", purchaseHandler.Delete)
	mux.HandleFunc("POST /api/purchase-orders/{id}/status", purchaseHandler.ChangeStatus)
	mux.HandleFunc("POST /api/purchase-orders/{id}/details", purchaseHandler.AddDetail)
	mux.HandleFunc("DELETE /api/purchase-orders/{id}/details/{detailId}", purchaseHandler.RemoveDetail)

	mux.HandleFunc("POST /api/suppliers", supplierHandler.Create)
	mux.HandleFunc("GET /api/suppliers", supplierHandler.List)
	mux.HandleFunc("GET /api/suppliers/{id}", supplierHandler.Get)
	mux.HandleFunc("PUT /api/suppliers/{id}", supplierHandler.Update)
	mux.HandleFunc("DELETE /api/suppliers/{id}", supplierHandler.Delete)
	mux.HandleFunc("POST /api/suppliers/{id}/evaluations", supplierHandler.CreateEvaluation)
	mux.HandleFunc("GET /api/suppliers/{id}/evaluations", supplierHandler.ListEvaluations)
	mux.HandleFunc("GET /api/suppliers/{id}/rating", supplierHandler.Rating)

	mux.HandleFunc("POST /api/parts", partHandler.Create)
	mux.HandleFunc("GET /api/parts", partHandler.List)
	mux.HandleFunc("GET /api/parts/low-stock", partHandler.LowStock)
	mux.HandleFunc("GET /api/parts/{id}", partHandler.Get)
	mux.HandleFunc("PUT /api/parts/{id}", partHandler.Update)
	mux.HandleFunc("DELETE /api/parts/{id}", partHandler.Delete)

	mux.HandleFunc("POST /api/vehicles", vehicleHandler.Create)
	mux.HandleFunc("GET /api/vehicles", vehicleHandler.List)
	mux.HandleFunc("GET /api/vehicles/{id}", vehicleHandler.Get)
	mux.HandleFunc("PUT /api/vehicles/{id}", vehicleHandler.Update)
	mux.HandleFunc("DELETE /api/vehicles/{id}", vehicleHandler.Delete)

	mux.HandleFunc("POST /api/technicians", technicianHandler.Create)
	mux.HandleFunc("GET /api/technicians", technicianHandler.List)
	mux.HandleFunc("GET /api/technicians/{id}", technicianHandler.Get)

	mux.HandleFunc("POST /api/customers", customerHandler.Create)
	mux.HandleFunc("GET /api/customers", customerHandler.List)
	mux.HandleFunc("GET /api/customers/{id}", customerHandler.Get)

	rateLimiter := middleware.NewRateLimitMiddleware()

	return rateLimiter.RateLimit(100, 60)(authMiddleware.Authenticate(mux))
}

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		log.Debug("No .env file found, using environment")
	}

	client, err := db.ConnectMongo()
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	log.Info("Connected to MongoDB")

	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "carmotors"
	}
	database := client.Database(dbName)

	authService, err := auth.NewService()
	if err != nil {
		log.Fatalf("Failed to create auth service: %v", err)
	}

	var publisher notify.StatusPublisher = notify.NopPublisher{}
	if broker := os.Getenv("MQTT_BROKER"); broker != "" {
		mqttPublisher, err := notify.NewMQTTPublisher(broker)
		if err != nil {
			log.WithField("broker", broker).Warnf("MQTT unavailable, status events disabled: %v", err)
		} else {
			defer mqttPublisher.Close()
			publisher = mqttPublisher
			log.WithField("broker", broker).Info("Publishing status events over MQTT")
		}
	}

	router := newRouter(database, authService, publisher)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.WithField("port", port).Info("HTTP server listening")
	log.Fatal(http.ListenAndServe(":"+port, router))
}
