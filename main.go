package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sony/gobreaker"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"tasklist-project/backend/config"
	"tasklist-project/backend/handlers"
	"tasklist-project/backend/logging"
	"tasklist-project/backend/middleware"
	"tasklist-project/backend/repositories"
	"tasklist-project/backend/services"
	"tasklist-project/backend/utils"
)

func main() {
	logging.InitLogger()
	logging.Logger.Info("Event ID: SERVICE_START, Description: Starting tasklist backend...")

	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(cfg.MongoURI).
		SetServerSelectionTimeout(30 * time.Second).
		SetConnectTimeout(10 * time.Second).
		SetSocketTimeout(45 * time.Second)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		logging.Logger.Fatalf("Event ID: DB_CONNECTION_FAILED, Description: Invalid MongoDB configuration: %v", err)
	}
	defer client.Disconnect(context.Background())

	db := client.Database(cfg.MongoDBName)
	userRepo := repositories.NewUserRepo(db.Collection("users"))
	teamRepo := repositories.NewTeamRepo(db.Collection("teams"))
	taskRepo := repositories.NewTaskRepo(db.Collection("tasks"))

	// An unreachable database keeps the process alive: non-data endpoints stay
	// up and each data operation fails independently with 503.
	if err := client.Ping(ctx, nil); err != nil {
		logging.Logger.Warnf("Event ID: DB_PING_FAILED, Description: MongoDB unreachable, continuing degraded: %v", err)
	} else {
		logging.Logger.Infof("Event ID: DB_CONNECTED, Description: Successfully connected to MongoDB at %s.", cfg.MongoURI)
		if err := userRepo.EnsureIndexes(ctx); err != nil {
			logging.Logger.Warnf("Event ID: DB_INDEX_FAILED, Description: Could not create user indexes: %v", err)
		}
		if err := taskRepo.EnsureIndexes(ctx); err != nil {
			logging.Logger.Warnf("Event ID: DB_INDEX_FAILED, Description: Could not create task indexes: %v", err)
		}
	}

	googleBreaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "GoogleTokenVerifierCB",
		MaxRequests: 1,
		Timeout:     5 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Logger.Infof("Event ID: CIRCUIT_BREAKER_STATE_CHANGE, Description: Circuit Breaker '%s' changed from '%s' to '%s'", name, from.String(), to.String())
		},
	})

	verifier := utils.NewGoogleTokenVerifier(cfg.GoogleClientID)
	authService := services.NewAuthService(userRepo, verifier, googleBreaker)
	userService := services.NewUserService(userRepo, teamRepo, taskRepo)
	teamService := services.NewTeamService(teamRepo, userRepo)
	taskService := services.NewTaskService(taskRepo, userRepo)

	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	teamHandler := handlers.NewTeamHandler(teamService)
	taskHandler := handlers.NewTaskHandler(taskService)

	r := mux.NewRouter()
	r.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message": "TaskList API running"}`))
	}).Methods("GET")
	r.HandleFunc("/auth/google", authHandler.GoogleLogin).Methods("POST")

	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.UserAuth(userService))

	api.HandleFunc("/users/me", userHandler.GetMe).Methods("GET")
	api.HandleFunc("/users/me", userHandler.UpdateMe).Methods("PUT")
	api.HandleFunc("/users/me", userHandler.DeleteMe).Methods("DELETE")
	api.HandleFunc("/users/list", userHandler.ListUsers).Methods("GET")

	api.HandleFunc("/teams", teamHandler.ListTeams).Methods("GET")
	api.HandleFunc("/teams", teamHandler.CreateTeam).Methods("POST")
	api.HandleFunc("/teams/member", teamHandler.ListMemberTeams).Methods("GET")
	api.HandleFunc("/teams/{teamId}", teamHandler.UpdateTeam).Methods("PUT")
	api.HandleFunc("/teams/{teamId}", teamHandler.DeleteTeam).Methods("DELETE")

	api.HandleFunc("/tasks", taskHandler.CreateTask).Methods("POST")
	api.HandleFunc("/tasks/assigned", taskHandler.ListAssignedTasks).Methods("GET")
	api.HandleFunc("/tasks/created", taskHandler.ListCreatedTasks).Methods("GET")
	api.HandleFunc("/tasks/{taskId}", taskHandler.GetTask).Methods("GET")
	api.HandleFunc("/tasks/{taskId}", taskHandler.UpdateTask).Methods("PUT")
	api.HandleFunc("/tasks/{taskId}", taskHandler.DeleteTask).Methods("DELETE")
	api.HandleFunc("/tasks/{taskId}/completions", taskHandler.AppendCompletion).Methods("POST")

	corsRouter := enableCORS(cfg.ClientURL, r)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.ServerPort),
		Handler:      corsRouter,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	logging.Logger.Infof("Event ID: SERVER_START_INFO, Description: Server running on http://localhost:%s", cfg.ServerPort)
	if err := srv.ListenAndServe(); err != nil {
		logging.Logger.Fatalf("Event ID: SERVER_FATAL_ERROR, Description: Server failed to start: %v", err)
	}
}

// enableCORS allows the configured browser origin to call the API.
func enableCORS(clientURL string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", clientURL)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, x-user-id")
		w.Header().Set("Access-Control-Allow-Credentials", "true")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
