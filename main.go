package main

import (
	"log"
	"net/http"

	"mypage/account"
	"mypage/avatar"
	"mypage/bizerror"
	"mypage/client/s3"
	"mypage/infra/tracing"
	"mypage/interest"
	"mypage/misc"
	"mypage/persistence"
	"mypage/servehttp"
	"mypage/session"
	"mypage/sessions"

	"github.com/gin-gonic/gin"
)

func main() {
	log.Println("service start")

	dbConfig, err := persistence.ParseDatabaseConfigFromEnv()
	if err != nil {
		log.Fatalf("parse database config failed %v\n", err)
	}

	// create database (no conflict)
	if dbConfig.DriverType == "mysql" {
		if err := persistence.PrepareMysqlDatabase(dbConfig.DriverArgs); err != nil {
			log.Fatalf("failed to prepare database %v\n", err)
		}
	}

	// connect database
	ds := &persistence.DataSourceManager{DatabaseConfig: dbConfig}
	if err := ds.Start(); err != nil {
		log.Fatalf("database connection failed %v\n", err)
	}
	defer ds.Stop()
	persistence.ActiveDataSourceManager = ds

	// database migration (race condition)
	err = ds.GormDB().AutoMigrate(&account.User{}, &interest.InterestRecord{}).Error
	if err != nil {
		log.Fatalf("database migration failed %v\n", err)
	}

	if err := account.EnsureBootstrapAccount(); err != nil {
		log.Fatalf("bootstrap account failed %v\n", err)
	}

	tracingCloser, err := tracing.Bootstrap(misc.GetServiceName())
	if err != nil {
		log.Fatalf("tracing bootstrap failed %v\n", err)
	}
	defer tracingCloser.Close()

	s3.Bootstrap()

	engine := gin.Default()
	engine.Use(tracing.TracingIngress(), bizerror.ErrorHandling())
	engine.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "mypage")
	})

	sessions.RegisterSessionsRestAPI(engine)
	sessions.RegisterSessionRestAPI(engine, session.SimpleAuthFilter())
	account.RegisterSessionUsersRestAPI(engine, session.SimpleAuthFilter())
	account.RegisterPasswordRecoveriesRestAPI(engine)
	interest.RegisterInterestsRestAPI(engine, session.SimpleAuthFilter())
	interest.RegisterInterestCatalogRestAPI(engine)
	avatar.RegisterAvatarsRestAPI(engine, session.SimpleAuthFilter())

	servehttp.StartHTTPServer(engine)
}
