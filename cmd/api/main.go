package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/leavehq/leave-backend-go/internal/config"
	"github.com/leavehq/leave-backend-go/internal/fixtures"
	appHTTP "github.com/leavehq/leave-backend-go/internal/handler/http"
	"github.com/leavehq/leave-backend-go/internal/pkg/cron"
	"github.com/leavehq/leave-backend-go/internal/pkg/database"
	"github.com/leavehq/leave-backend-go/internal/pkg/jwt"
	"github.com/leavehq/leave-backend-go/internal/pkg/openai"
	"github.com/leavehq/leave-backend-go/internal/repository/postgresql"
	assistantService "github.com/leavehq/leave-backend-go/internal/service/assistant"
	authService "github.com/leavehq/leave-backend-go/internal/service/auth"
	employeeService "github.com/leavehq/leave-backend-go/internal/service/employee"
	leaveService "github.com/leavehq/leave-backend-go/internal/service/leave"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}
	defer db.Close()

	employeeRepo := postgresql.NewEmployeeRepository(db)
	leaveTypeRepo := postgresql.NewLeaveTypeRepository(db)
	leaveBalanceRepo := postgresql.NewLeaveBalanceRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	gateway := openai.NewClient(cfg.OpenAI)

	leaves := leaveService.NewLeaveService(db, leaveTypeRepo, leaveBalanceRepo, leaveRequestRepo, employeeRepo)
	employees := employeeService.NewEmployeeService(employeeRepo)
	auths := authService.NewAuthService(employeeRepo, jwtService)
	assistants := assistantService.NewAssistantService(gateway, leaveTypeRepo)

	seeder := fixtures.NewSeeder(employeeRepo, leaveTypeRepo, leaveBalanceRepo)
	if err := seeder.Run(context.Background()); err != nil {
		log.Fatal("Failed to seed default data: ", err)
	}

	scheduler := cron.NewScheduler()
	scheduler.AddJob("leave-balance-accrual", 24*time.Hour, leaves.AccrueBalances)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		jwtService,
		appHTTP.NewAuthHandler(auths),
		appHTTP.NewEmployeeHandler(employees),
		appHTTP.NewLeaveHandler(leaves),
		appHTTP.NewAssistantHandler(assistants),
	)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Println("Starting server on", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatal("Server error: ", err)
	}
}
