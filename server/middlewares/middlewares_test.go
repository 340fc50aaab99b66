package middlewares

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/Luismorlan/cookmux/model"
	"github.com/Luismorlan/cookmux/utils"
	"github.com/Luismorlan/cookmux/utils/dotenv"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	dotenv.LoadDotEnvsInTests()
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// echoRouter exposes the resolved identity so tests can observe what the
// middleware wrote into the "sub" header.
func echoRouter(middleware gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.GET("/whoami", middleware, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"sub": c.Request.Header.Get("sub")})
	})
	return router
}

func seedToken(t *testing.T, db *gorm.DB, userId string) string {
	t.Helper()
	token := model.AuthToken{Token: "tok-" + userId, UserID: userId, CreatedAt: time.Now()}
	require.NoError(t, db.Create(&token).Error)
	return token.Token
}

func perform(router *gin.Engine, target string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestTokenAuthResolvesHeaderAndQueryTokens(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	user := utils.TestCreateUser(t, db, "holder")
	token := seedToken(t, db, user.Id)
	router := echoRouter(TokenAuth(db))

	resp := perform(router, "/whoami", map[string]string{"Authorization": "Token " + token})
	require.Equal(t, http.StatusOK, resp.Code)
	require.Contains(t, resp.Body.String(), user.Id)

	resp = perform(router, "/whoami?token="+token, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	require.Contains(t, resp.Body.String(), user.Id)
}

func TestTokenAuthRejectsMissingAndUnknownTokens(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	router := echoRouter(TokenAuth(db))

	resp := perform(router, "/whoami", nil)
	require.Equal(t, http.StatusUnauthorized, resp.Code)

	resp = perform(router, "/whoami", map[string]string{"Authorization": "Token bogus"})
	require.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestOptionalTokenAuthStripsForgedIdentity(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	user := utils.TestCreateUser(t, db, "holder")
	token := seedToken(t, db, user.Id)
	router := echoRouter(OptionalTokenAuth(db))

	// anonymous request passes through with no identity
	resp := perform(router, "/whoami", map[string]string{"sub": "forged"})
	require.Equal(t, http.StatusOK, resp.Code)
	require.NotContains(t, resp.Body.String(), "forged")

	// a valid token still resolves
	resp = perform(router, "/whoami", map[string]string{"Authorization": "Token " + token})
	require.Equal(t, http.StatusOK, resp.Code)
	require.Contains(t, resp.Body.String(), user.Id)
}
