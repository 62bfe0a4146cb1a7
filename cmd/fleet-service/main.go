package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/DriveFleet/DriveFleet/internal/booking"
	"github.com/DriveFleet/DriveFleet/internal/common/cache"
	"github.com/DriveFleet/DriveFleet/internal/common/config"
	"github.com/DriveFleet/DriveFleet/internal/common/db"
	"github.com/DriveFleet/DriveFleet/internal/common/logger"
	"github.com/DriveFleet/DriveFleet/internal/common/server"
	"github.com/DriveFleet/DriveFleet/internal/common/tracing"
	"github.com/DriveFleet/DriveFleet/internal/customer"
	"github.com/DriveFleet/DriveFleet/internal/maintenance"
	"github.com/DriveFleet/DriveFleet/internal/reconcile"
	"github.com/DriveFleet/DriveFleet/internal/schedule"
	"github.com/DriveFleet/DriveFleet/internal/staff"
	"github.com/DriveFleet/DriveFleet/internal/user"
	"github.com/DriveFleet/DriveFleet/internal/vehicle"
	"github.com/gin-gonic/gin"
)

func main() {
	configPath := flag.String("config", "configs/fleet-service.json", "config file path")
	consulKey := flag.String("consul-key", "", "consul KV key to overlay config from (optional)")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if *consulKey != "" {
		if err := config.OverrideFromConsulKV(cfg, cfg.Consul.Host, cfg.Consul.Port, *consulKey); err != nil {
			fmt.Fprintf(os.Stderr, "consul config overlay: %v\n", err)
			os.Exit(1)
		}
	}

	log, err := logger.New(cfg.Log.Driver, cfg.Log.Level, cfg.Log.Format, cfg.Log.Output, cfg.Log.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}

	_, closer, err := tracing.InitTracer(cfg.Server.Name, cfg.Jaeger)
	if err != nil {
		log.Warnf("init tracer: %v (continuing without tracing)", err)
	} else {
		defer closer.Close()
	}

	gdb, err := db.NewMySQL(
		cfg.Database.Host, cfg.Database.Port,
		cfg.Database.User, cfg.Database.Password, cfg.Database.Database,
		cfg.Database.MaxIdle, cfg.Database.MaxOpen,
	)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	if err := gdb.AutoMigrate(
		&vehicle.Vehicle{}, &customer.Customer{}, &staff.Staff{},
		&booking.Booking{}, &maintenance.Record{}, &user.User{},
	); err != nil {
		log.Fatalf("auto migrate: %v", err)
	}

	var c *cache.Cache
	if cfg.Redis.Enabled {
		c = cache.New(cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password,
			cfg.Redis.DB, cfg.Redis.PoolSize, cfg.Redis.TTL())
		if err := c.Ping(context.Background()); err != nil {
			log.Warnf("redis unreachable: %v (cache degraded to miss)", err)
		}
	}

	vehicleRepo := vehicle.NewRepo(gdb)
	customerRepo := customer.NewRepo(gdb)
	staffRepo := staff.NewRepo(gdb)
	bookingRepo := booking.NewRepo(gdb)
	maintenanceRepo := maintenance.NewRepo(gdb)
	userRepo := user.NewRepo(gdb)

	// 订单和保养互为冲突来源，checker 挂两边的 repo
	checker := schedule.NewChecker(bookingRepo, maintenanceRepo)

	vehicleSvc := vehicle.NewService(vehicleRepo, c)
	bookingSvc := booking.NewService(gdb, bookingRepo, vehicleRepo, customerRepo, staffRepo, checker, c, log)
	maintenanceSvc := maintenance.NewService(gdb, maintenanceRepo, vehicleRepo, staffRepo, checker, log)
	userSvc := user.NewService(userRepo, cfg.Auth, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Sweep.Enabled {
		sweeper := reconcile.NewSweeper(reconcile.NewStore(gdb), c, log)
		runner := reconcile.NewRunner(sweeper, cfg.Sweep.Interval(), log)
		runner.Start(ctx)
		log.Infof("reconcile runner started, interval=%s", cfg.Sweep.Interval())
	} else {
		log.Warn("reconcile sweep disabled: statuses will not advance automatically")
	}

	err = server.RunHTTPServer(cfg, log, func(r *gin.Engine) error {
		api := r.Group("/api/v1")
		user.RegisterRoutes(api, userSvc)
		vehicle.RegisterRoutes(api, vehicleSvc)
		customer.RegisterRoutes(api, customerRepo)
		staff.RegisterRoutes(api, staffRepo)
		booking.RegisterRoutes(api, bookingSvc)
		maintenance.RegisterRoutes(api, maintenanceSvc)
		return nil
	})
	if err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
