package server

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"mindbridge/internal/models"
	"mindbridge/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const tokenLifetime = time.Hour * 24 * 7

// Signup handles POST /api/auth/signup
// @Summary User signup
// @Description Register a new student, counselor, or institute account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body object{name=string,email=string,password=string,user_type=string,institute_id=integer} true "Signup request"
// @Success 201 {object} object{token=string,user=models.User}
// @Failure 400 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Router /auth/signup [post]
func (s *Server) Signup(c *fiber.Ctx) error {
	var req struct {
		Name        string `json:"name"`
		Email       string `json:"email"`
		Password    string `json:"password"`
		UserType    string `json:"user_type"`
		InstituteID *uint  `json:"institute_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Name, email, and password are required"))
	}

	if err := validation.ValidateName(req.Name); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	userType := models.UserType(req.UserType)
	if req.UserType == "" {
		userType = models.UserTypeStudent
	}
	if !userType.Valid() || userType == models.UserTypeAnonymous {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid user type"))
	}

	// Check if user already exists
	if _, err := s.userRepo.GetByEmail(c.Context(), req.Email); err == nil {
		return models.RespondWithError(c, fiber.StatusConflict,
			models.NewValidationError("User already exists"))
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	user := &models.User{
		Email:       &req.Email,
		Password:    string(hashedPassword),
		UserType:    userType,
		InstituteID: req.InstituteID,
		IsActive:    true,
		Profile:     models.Profile{Name: req.Name},
	}
	if err := user.Validate(); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}

	if createErr := s.userRepo.Create(c.Context(), user); createErr != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, createErr)
	}

	token, err := s.generateToken(user.ID, string(user.UserType))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// Login handles POST /api/auth/login
// @Summary User login
// @Description Authenticate user and return JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body object{email=string,password=string} true "Login credentials"
// @Success 200 {object} object{token=string,user=models.User}
// @Failure 400 {object} object{error=string}
// @Failure 401 {object} object{error=string}
// @Router /auth/login [post]
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userRepo.GetByEmail(c.Context(), req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid credentials"))
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	if cmpErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); cmpErr != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid credentials"))
	}

	_ = s.userRepo.UpdateLastLogin(c.Context(), user.ID)

	token, err := s.generateToken(user.ID, string(user.UserType))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// AnonymousSession handles POST /api/auth/anonymous
// @Summary Anonymous session
// @Description Create an anonymous account for mood tracking without identity
// @Tags auth
// @Accept json
// @Produce json
// @Param request body object{institute_id=integer} false "Optional institute attachment"
// @Success 201 {object} object{token=string,user=models.User}
// @Failure 403 {object} object{error=string}
// @Router /auth/anonymous [post]
func (s *Server) AnonymousSession(c *fiber.Ctx) error {
	var req struct {
		InstituteID *uint `json:"institute_id"`
	}
	// An empty body is fine for anonymous sessions.
	_ = c.BodyParser(&req)

	if req.InstituteID != nil {
		inst, err := s.instituteRepo.GetByID(c.Context(), *req.InstituteID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.RespondWithError(c, fiber.StatusNotFound,
					models.NewNotFoundError("Institute not found"))
			}
			return models.RespondWithError(c, fiber.StatusInternalServerError, err)
		}
		if !inst.Settings.AllowAnonymous {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewUnauthorizedError("Anonymous access is disabled for this institute"))
		}
	}

	anonymousID := "anon-" + uuid.NewString()
	user := &models.User{
		UserType:    models.UserTypeAnonymous,
		IsAnonymous: true,
		AnonymousID: &anonymousID,
		InstituteID: req.InstituteID,
		IsActive:    true,
	}

	if err := s.userRepo.Create(c.Context(), user); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	token, err := s.generateToken(user.ID, string(user.UserType))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// Refresh handles POST /api/auth/refresh
// @Summary Refresh token
// @Description Exchange a valid token for a fresh one; the old JTI is revoked
// @Tags auth
// @Produce json
// @Success 200 {object} object{token=string}
// @Failure 401 {object} object{error=string}
// @Router /auth/refresh [post]
func (s *Server) Refresh(c *fiber.Ctx) error {
	claims, err := s.parseTokenClaims(c)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid or expired token"))
	}

	sub, _ := claims["sub"].(string)
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid user ID in token"))
	}

	userType, _ := claims["user_type"].(string)

	// Revoke the old token before issuing a new one.
	s.blacklistClaims(c, claims)

	token, err := s.generateToken(uint(userID), userType)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{"token": token})
}

// Logout handles POST /api/auth/logout
// @Summary Logout
// @Description Revoke the presented token
// @Tags auth
// @Produce json
// @Success 200 {object} object{message=string}
// @Router /auth/logout [post]
func (s *Server) Logout(c *fiber.Ctx) error {
	claims, err := s.parseTokenClaims(c)
	if err == nil {
		s.blacklistClaims(c, claims)
	}
	return c.JSON(fiber.Map{"message": "Logged out"})
}

// parseTokenClaims extracts and verifies the Bearer token claims.
func (s *Server) parseTokenClaims(c *fiber.Ctx) (jwt.MapClaims, error) {
	authHeader := c.Get("Authorization")
	tokenString := ""
	if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
		tokenString = authHeader[7:]
	}
	if tokenString == "" {
		return nil, fmt.Errorf("missing token")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("invalid signing method")
		}
		return []byte(s.config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid claims")
	}
	return claims, nil
}

// blacklistClaims marks the token's JTI as revoked until its natural expiry.
func (s *Server) blacklistClaims(c *fiber.Ctx, claims jwt.MapClaims) {
	if s.redis == nil {
		return
	}
	jti, _ := claims["jti"].(string)
	if jti == "" {
		return
	}
	ttl := tokenLifetime
	if exp, ok := claims["exp"].(float64); ok {
		if remaining := time.Until(time.Unix(int64(exp), 0)); remaining > 0 {
			ttl = remaining
		}
	}
	s.redis.Set(c.Context(), "blacklist:"+jti, "1", ttl)
}

// generateToken creates a JWT token for the given user ID and user type
func (s *Server) generateToken(userID uint, userType string) (string, error) {
	// Validate secret exists
	if s.config.JWTSecret == "" {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":       strconv.FormatUint(uint64(userID), 10), // Subject (user ID as string)
		"user_type": userType,                               // Role (cached in token)
		"iss":       tokenIssuer,                            // Issuer
		"aud":       tokenAudience,                          // Audience
		"exp":       now.Add(tokenLifetime).Unix(),          // Expiration (7 days)
		"iat":       now.Unix(),                             // Issued at
		"nbf":       now.Unix(),                             // Not before
		"jti":       s.generateJTI(),                        // JWT ID (unique identifier)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

// generateJTI creates a unique JWT ID to prevent replay attacks
func (s *Server) generateJTI() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.New().String()[:8])
}
