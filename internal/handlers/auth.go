package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/Nehal2048/book-hive/configs"
	"github.com/Nehal2048/book-hive/internal/httputil"
	"github.com/Nehal2048/book-hive/internal/logger"
	appmw "github.com/Nehal2048/book-hive/internal/middleware"
	"github.com/Nehal2048/book-hive/internal/models"
	"github.com/Nehal2048/book-hive/internal/store"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

func RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		httputil.WriteError(w, http.StatusBadRequest, "name, email and password are required")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Error("failed to hash password", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, "failed to create user")
		return
	}

	user := models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hash),
		Balance:  decimal.Zero,
		UserType: models.UserRegular,
	}
	if err := store.DB.WithContext(r.Context()).Create(&user).Error; err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "email already registered")
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, map[string]any{
		"message": "user registered successfully",
		"user_id": user.ID,
	})
}

func LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		httputil.WriteError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	var user models.User
	if err := store.DB.WithContext(r.Context()).Where("email = ?", req.Email).First(&user).Error; err != nil {
		httputil.WriteError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		httputil.WriteError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	claims := jwt.MapClaims{
		"sub":  user.ID.String(),
		"role": string(user.UserType),
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
		"iat":  time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(configs.AppConfig.JWT.SECRET))
	if err != nil {
		logger.Log.Error("failed to sign jwt", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, "failed to create token")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, LoginResponse{Token: signed})
}

func MeHandler(w http.ResponseWriter, r *http.Request) {
	callerID, ok := appmw.CallerID(r.Context())
	if !ok {
		httputil.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var user models.User
	if err := store.DB.WithContext(r.Context()).First(&user, "id = ?", callerID).Error; err != nil {
		httputil.WriteError(w, http.StatusNotFound, "user not found")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, user)
}
