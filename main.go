package main

import (
	"log"
	"net/http"
	"os"

	"botvance_backend/internal/database"
	"botvance_backend/internal/handlers"
	"botvance_backend/internal/services"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
)

// CORS middleware
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		// Set CORS headers
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Max-Age", "86400") // 24 hours

		// Handle preflight requests
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func main() {
	log.Println("DEBUG: Starting Botvance backend...")

	// Load environment variables from .env file (missing file is fine)
	if err := godotenv.Load(); err == nil {
		log.Println("DEBUG: Loaded environment from .env")
	}

	// Initialize database
	log.Println("DEBUG: Initializing database...")
	database.InitDatabase()
	log.Println("DEBUG: Database initialized successfully")

	db := database.GetDB()

	// Services
	authService := services.NewAuthService(db)
	workflowService := services.NewWorkflowService(db)
	followUpService := services.NewFollowUpService(db)
	qaService := services.NewQAService(db)
	connectionService := services.NewConnectionService(db)
	bridgeService := services.NewBridgeService()
	wizardService := services.NewWizardService(db)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	workflowHandler := handlers.NewWorkflowHandler(authService, workflowService, wizardService)
	followUpHandler := handlers.NewFollowUpHandler(authService, workflowService, followUpService)
	qaHandler := handlers.NewQAHandler(authService, workflowService, qaService)
	connectionHandler := handlers.NewConnectionHandler(authService, workflowService, connectionService, bridgeService)
	flowTemplateHandler := handlers.NewFlowTemplateHandler()

	r := mux.NewRouter()

	// Auth endpoints
	r.HandleFunc("/api/auth/register", authHandler.Register).Methods("POST")
	r.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/api/auth/logout", authHandler.Logout).Methods("POST")
	r.HandleFunc("/api/auth/profile", authHandler.GetProfile).Methods("GET")
	r.HandleFunc("/api/auth/profile", authHandler.UpdateProfile).Methods("PUT")
	r.HandleFunc("/api/account", authHandler.GetAccount).Methods("GET")

	// Workflow endpoints
	r.HandleFunc("/api/workflows", workflowHandler.List).Methods("GET")
	r.HandleFunc("/api/workflows", workflowHandler.Create).Methods("POST")
	r.HandleFunc("/api/workflows/{id}", workflowHandler.Get).Methods("GET")
	r.HandleFunc("/api/workflows/{id}", workflowHandler.Update).Methods("PUT")
	r.HandleFunc("/api/workflows/{id}", workflowHandler.Delete).Methods("DELETE")
	r.HandleFunc("/api/workflows/{id}/save", workflowHandler.Save).Methods("POST")
	r.HandleFunc("/api/workflows/{id}/connector-url", workflowHandler.ConnectorURL).Methods("GET")
	r.HandleFunc("/api/workflows/{id}/automation", workflowHandler.UpdateAutomation).Methods("PUT")
	r.HandleFunc("/api/workflows/{id}/openai-key", workflowHandler.GetOpenAIKey).Methods("GET")
	r.HandleFunc("/api/workflows/{id}/openai-key", workflowHandler.UpdateOpenAIKey).Methods("PUT")

	// Follow-up endpoints
	r.HandleFunc("/api/workflows/{id}/followup", followUpHandler.Get).Methods("GET")
	r.HandleFunc("/api/workflows/{id}/followup", followUpHandler.Put).Methods("PUT")

	// QA endpoints
	r.HandleFunc("/api/workflows/{id}/qa-pairs", qaHandler.List).Methods("GET")
	r.HandleFunc("/api/workflows/{id}/qa-pairs", qaHandler.Add).Methods("POST")
	r.HandleFunc("/api/qa-pairs/{id}", qaHandler.Update).Methods("PUT")
	r.HandleFunc("/api/qa-pairs/{id}", qaHandler.Delete).Methods("DELETE")

	// WhatsApp bridge endpoints
	r.HandleFunc("/api/wa/connect", connectionHandler.Connect).Methods("POST")
	r.HandleFunc("/api/wa/status", connectionHandler.Status).Methods("POST")
	r.HandleFunc("/api/wa/disconnect", connectionHandler.Disconnect).Methods("POST")
	r.HandleFunc("/api/wa/qr", connectionHandler.QRImage).Methods("GET")
	r.HandleFunc("/api/workflows/{id}/connection", connectionHandler.Get).Methods("GET")

	// Flow template endpoint
	r.HandleFunc("/api/flow-template", flowTemplateHandler.Get).Methods("GET")

	// Health check endpoint
	r.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","message":"Backend is running"}`))
	}).Methods("GET")

	// Apply CORS middleware
	handler := corsMiddleware(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "9090"
	}

	log.Println("🚀 Botvance Backend started on :" + port)
	log.Println("📡 Available endpoints:")
	log.Println("   🔐 AUTH:")
	log.Println("      POST /api/auth/register      - User registration")
	log.Println("      POST /api/auth/login         - User login")
	log.Println("      POST /api/auth/logout        - User logout")
	log.Println("      GET  /api/auth/profile       - Get user profile")
	log.Println("      PUT  /api/auth/profile       - Update user profile")
	log.Println("      GET  /api/account            - Get account with subscription")
	log.Println("   ⚙️ WORKFLOWS:")
	log.Println("      GET  /api/workflows          - List workflows")
	log.Println("      POST /api/workflows          - Create workflow")
	log.Println("      GET  /api/workflows/{id}     - Get workflow")
	log.Println("      PUT  /api/workflows/{id}     - Update workflow")
	log.Println("      DEL  /api/workflows/{id}     - Delete workflow")
	log.Println("      POST /api/workflows/{id}/save - Save wizard steps")
	log.Println("   📱 WHATSAPP:")
	log.Println("      POST /api/wa/connect         - Request pairing QR code")
	log.Println("      POST /api/wa/status          - Check connection status")
	log.Println("      POST /api/wa/disconnect      - Disconnect channel")
	log.Println("      GET  /api/wa/qr              - Render pairing code as PNG")

	log.Fatal(http.ListenAndServe(":"+port, handler))
}
