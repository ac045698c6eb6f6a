package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"github.com/enmanuelcanelon/DiamondSistem-sub006/internal/adapter/storage"
	"github.com/enmanuelcanelon/DiamondSistem-sub006/internal/core/profile"
	"github.com/enmanuelcanelon/DiamondSistem-sub006/internal/core/service"
)

// Drives concurrent forced allocations against a live database and
// verifies that no stock record went negative.
func main() {
	var (
		mysqlDSN    = flag.String("mysql", "root:root@tcp(localhost:3306)/diamondsistem?parseTime=true", "MySQL DSN")
		contractID  = flag.Int64("contract", 1, "contract to allocate")
		concurrency = flag.Int("concurrency", 10, "parallel allocation attempts")
	)
	flag.Parse()

	ctx := context.Background()

	db, err := sql.Open("mysql", *mysqlDSN)
	if err != nil {
		log.Fatalf("failed to connect mysql: %v", err)
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("failed to ping mysql: %v", err)
	}

	zapLogger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zapLogger.Sync()
	logger := zapLogger.Sugar()

	ledger := storage.NewMySQLLedger(db)
	store := storage.NewMySQLStore(db)
	demandService := service.NewDemandService(profile.Default(), store)
	allocator := service.NewAllocationService(ledger, store, store, store, store, demandService, logger)

	var succeeded, failed atomic.Int32
	var wg sync.WaitGroup
	start := time.Now()

	for i := 0; i < *concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := allocator.AllocateContract(ctx, *contractID, true); err != nil {
				failed.Add(1)
				return
			}
			succeeded.Add(1)
		}()
	}

	wg.Wait()
	elapsed := time.Since(start)

	fmt.Printf("allocations: %d ok, %d failed in %s\n", succeeded.Load(), failed.Load(), elapsed)

	var negatives int
	err = db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM inventario_central WHERE cantidad_actual < 0) +
			(SELECT COUNT(*) FROM inventario_salones WHERE cantidad_actual < 0)`,
	).Scan(&negatives)
	if err != nil {
		log.Fatalf("failed to check stock: %v", err)
	}

	if negatives > 0 {
		log.Fatalf("FAIL: %d stock records went negative", negatives)
	}
	fmt.Println("no stock record went negative")
}
