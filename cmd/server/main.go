package main

import (
	"net/http"
	"os"

	"github.com/Luismorlan/cookmux/server/middlewares"
	"github.com/Luismorlan/cookmux/server/rest"
	. "github.com/Luismorlan/cookmux/utils"
	"github.com/Luismorlan/cookmux/utils/dotenv"
	. "github.com/Luismorlan/cookmux/utils/flag"
	. "github.com/Luismorlan/cookmux/utils/log"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	gintrace "gopkg.in/DataDog/dd-trace-go.v1/contrib/gin-gonic/gin"
)

func cleanup() {
	CloseProfiler()
	CloseTracer()
	Log.Info("api server shutdown")
}

func main() {
	Parse()
	defer cleanup()

	if err := dotenv.LoadDotEnvs(); err != nil {
		panic(err)
	}

	SetupTracer()
	SetupProfiler()

	db, err := GetDBConnection()
	if err != nil {
		Log.Fatal("fail to connect to database: ", err)
	}
	DatabaseSetupAndMigration(db)

	// Default With the Logger and Recovery middleware already attached
	router := gin.Default()

	router.Use(cors.Default())
	router.Use(gintrace.Middleware(ServiceName))

	requireAuth := middlewares.TokenAuth(db)
	optionalAuth := middlewares.OptionalTokenAuth(db)
	if ByPassAuth {
		requireAuth = middlewares.TrustHeader()
		optionalAuth = middlewares.TrustHeader()
	}

	handler := rest.NewHandler(db)
	handler.RegisterRoutes(router, requireAuth, optionalAuth)

	// Serve stored images directly in development; production puts a CDN or
	// reverse proxy in front of this path.
	mediaRoot := os.Getenv("MEDIA_ROOT")
	if mediaRoot == "" {
		mediaRoot = "media"
	}
	router.Static("/media", mediaRoot)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	Log.Info("api server starts up")
	router.Run(":8080")
}
