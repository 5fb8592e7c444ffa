package utils

import (
	"os"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/chirp/chirp/config"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	config.Set(config.AppConfig{SessionSecret: "utils-test-secret"})
	os.Exit(m.Run())
}
