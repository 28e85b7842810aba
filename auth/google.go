package auth

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	firebase "firebase.google.com/go"
	firebaseauth "firebase.google.com/go/auth"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"google.golang.org/api/option"
	"gorm.io/gorm"

	"github.com/Lanterman/online-store/apperr"
	"github.com/Lanterman/online-store/dispatch"
	"github.com/Lanterman/online-store/logger"
	"github.com/Lanterman/online-store/models"
)

var (
	firebaseAuth *firebaseauth.Client
	projectID    string
)

// Init sets up the Google token verifier. Called from main; social login
// endpoints answer 503 until it has run, so the package stays importable
// without credentials (tests, offline tooling).
func Init(ctx context.Context) error {
	credsJSON := os.Getenv("FIREBASE_CREDENTIALS_JSON")
	projectID = os.Getenv("FIREBASE_PROJECT_ID")
	if credsJSON == "" || projectID == "" {
		return errors.New("FIREBASE_CREDENTIALS_JSON and FIREBASE_PROJECT_ID must be set")
	}

	opt := option.WithCredentialsJSON([]byte(credsJSON))
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opt)
	if err != nil {
		return err
	}
	firebaseAuth, err = app.Auth(ctx)
	return err
}

// GoogleLoginHandler verifies a Google ID token, upserts the user row and
// issues this API's own bearer token.
// POST /auth/google
func GoogleLoginHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if firebaseAuth == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Social login is not configured"})
			return
		}

		var req struct {
			IDToken string `json:"idToken" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
			return
		}

		token, err := firebaseAuth.VerifyIDTokenAndCheckRevoked(c.Request.Context(), req.IDToken)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or revoked ID token"})
			return
		}
		if token.Audience != projectID {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token audience"})
			return
		}

		email, _ := token.Claims["email"].(string)
		name, _ := token.Claims["name"].(string)
		picture, _ := token.Claims["picture"].(string)

		var user models.User
		err = db.Where("id = ?", token.UID).First(&user).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			user = models.User{
				ID:       token.UID,
				Username: usernameFromEmail(email),
				Email:    email,
				Name:     name,
				Picture:  picture,
				Provider: "google",
			}
			if err := db.Create(&user).Error; err != nil {
				// Username collision between different accounts: retry
				// with a suffix derived from the uid.
				if apperr.IsUniqueViolation(err) && len(token.UID) >= 6 {
					user.Username = user.Username + "_" + token.UID[:6]
					err = db.Create(&user).Error
				}
				if err != nil {
					logger.Log.Error("auth: failed to create user", zap.Error(err))
					c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
					return
				}
			}
		case err == nil:
			db.Model(&user).Updates(models.User{Name: name, Picture: picture})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}

		signed, err := IssueJWT(&user)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Login successful",
			"user":    user,
			"token":   signed,
		})
	}
}

// IssueJWT signs this API's bearer token for a user.
func IssueJWT(user *models.User) (string, error) {
	role := "user"
	if user.IsStaff {
		role = dispatch.RoleAdmin
	}
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"email":    user.Email,
		"role":     role,
		"exp":      time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

// usernameFromEmail derives a stable username from the account email, the
// attribute basket rows are keyed by.
func usernameFromEmail(email string) string {
	if i := strings.IndexByte(email, '@'); i > 0 {
		return email[:i]
	}
	return email
}
