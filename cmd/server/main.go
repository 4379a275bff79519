package main

import (
	"context"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/reflection"

	grpcadapter "github.com/simaogato/inventory-ledger/internal/adapter/grpc"
	"github.com/simaogato/inventory-ledger/internal/adapter/repository/memory"
	"github.com/simaogato/inventory-ledger/internal/config"
	"github.com/simaogato/inventory-ledger/internal/usecase/dashboard"
	"github.com/simaogato/inventory-ledger/internal/usecase/inventory"
	"github.com/simaogato/inventory-ledger/internal/usecase/ledger"
	"github.com/simaogato/inventory-ledger/internal/usecase/seeder"
)

func main() {
	// 1. Load configuration (file is optional, env overrides)
	cfg, err := config.Load(os.Getenv(config.EnvConfigPath))
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// 2. Initialize Repositories (in memory, nothing is persisted)
	catalog := memory.NewCatalogRepository()

	// 3. Seed the catalog
	ctx := context.Background()
	items, storages := cfg.Catalog()
	if err := seeder.NewCatalogSeeder(catalog).Seed(ctx, items, storages); err != nil {
		log.Fatalf("Failed to seed catalog: %v", err)
	}
	log.Printf("Catalog seeded: %d items, %d storages", len(items), len(storages))

	// 4. Initialize the ledger and services (Use Cases)
	logger := log.Default()
	manager := ledger.NewManager(ledger.NewLogReporter(logger))
	manager.SetWarningLogger(logger.Printf)

	inventoryService := inventory.NewInventoryService(catalog, manager)
	dashboardService := dashboard.NewDashboardService(catalog, manager)

	// 5. Start gRPC Server
	grpcServer := grpclib.NewServer(
		grpclib.ChainUnaryInterceptor(
			grpcadapter.LoggingInterceptor(logger),
			grpcadapter.AuthInterceptor(cfg.APIToken),
		),
	)

	grpcadapter.RegisterLedgerServiceServer(grpcServer, grpcadapter.NewServer(inventoryService, dashboardService))

	reflection.Register(grpcServer)

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		log.Fatalf("Failed to listen on %s: %v", cfg.GRPCAddr, err)
	}

	// Start server in a goroutine
	go func() {
		log.Printf("gRPC server listening on %s", cfg.GRPCAddr)
		if err := grpcServer.Serve(lis); err != nil {
			log.Fatalf("Failed to serve gRPC server: %v", err)
		}
	}()

	// Graceful shutdown
	waitForShutdown(grpcServer)
}

// waitForShutdown waits for SIGTERM or SIGINT and gracefully shuts down the server
func waitForShutdown(grpcServer *grpclib.Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	log.Printf("Received signal: %v. Shutting down gracefully...", sig)

	grpcServer.GracefulStop()
	log.Println("gRPC server stopped")
}
