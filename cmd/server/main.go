package main

import (
    "log"

    "github.com/joho/godotenv"
    "github.com/labstack/echo/v4"

    "github.com/ramunasb/hotel-reservation/internal/config"
    "github.com/ramunasb/hotel-reservation/internal/database"
    "github.com/ramunasb/hotel-reservation/internal/handler"
    "github.com/ramunasb/hotel-reservation/internal/middleware"
    "github.com/ramunasb/hotel-reservation/internal/queue"
    "github.com/ramunasb/hotel-reservation/internal/repository"
    "github.com/ramunasb/hotel-reservation/internal/router"
)

func main() {
    // A .env file is optional; real deployments set variables directly.
    _ = godotenv.Load()

    cfg := config.Load()

    db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
    if err != nil {
        log.Fatalf("database: %v", err)
    }
    defer db.Close()

    // Nil when Redis is unreachable; cache and rate limiting then
    // degrade to pass-through.
    rdb := config.NewRedisClient()
    if rdb == nil {
        log.Printf("redis unavailable; response cache and rate limiting disabled")
    }
    cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
    rateLimitMW := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

    users := repository.NewUserRepo(db)
    tokens := repository.NewTokenRepo(db)
    profiles := repository.NewProfileRepo(db)
    balances := repository.NewBalanceRepo(db)
    hotels := repository.NewHotelRepo(db)
    orders := repository.NewOrderRepo(db)

    authH := handler.NewAuthHandler(cfg, users, tokens, balances)
    profileH := handler.NewProfileHandler(profiles)
    balanceH := handler.NewBalanceHandler(balances)
    catalogH := handler.NewCatalogHandler(hotels, profiles)
    reservationH := handler.NewReservationHandler(hotels, balances, orders, profiles)
    adminOrderH := handler.NewAdminOrderHandler(orders)
    adminUserH := handler.NewAdminUserHandler(users, balances)
    adminHotelH := handler.NewAdminHotelHandler(hotels)

    e := echo.New()
    router.RegisterRoutes(e)
    router.RegisterAuth(e, authH, cfg.JWTSecret, rateLimitMW)
    router.RegisterCustomer(e, profileH, balanceH, catalogH, reservationH, cfg.JWTSecret, cacheMW, rateLimitMW)
    router.RegisterAdmin(e, adminOrderH, adminUserH, adminHotelH, cfg.JWTSecret)

    // Order events land in logs/orders.log; the consumer reconnects
    // forever and never takes the server down.
    go func() {
        if err := queue.StartOrderConsumer(); err != nil {
            log.Printf("order consumer stopped: %v", err)
        }
    }()

    addr := ":" + cfg.Port
    log.Printf("listening on %s (env=%s)", addr, cfg.Env)

    if err := e.Start(addr); err != nil {
        log.Fatal(err)
    }
}
