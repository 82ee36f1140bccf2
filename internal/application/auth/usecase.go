package auth

import (
	"crypto/subtle"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/dawfilms-api/internal/application/dto"
	"github.com/jhoicas/dawfilms-api/internal/domain"
	"github.com/jhoicas/dawfilms-api/pkg/jwt"
)

// RoleAdmin único rol de la aplicación: el personal del cine.
const RoleAdmin = "admin"

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// Credenciales del administrador. PasswordHash es un hash bcrypt.
type Credenciales struct {
	Usuario      string
	PasswordHash string
}

// AuthUseCase login del administrador contra las credenciales de configuración.
type AuthUseCase struct {
	admin  Credenciales
	jwtCfg JWTConfig
	log    zerolog.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(admin Credenciales, jwtCfg JWTConfig, log zerolog.Logger) *AuthUseCase {
	return &AuthUseCase{admin: admin, jwtCfg: jwtCfg, log: log.With().Str("component", "auth").Logger()}
}

// Login verifica usuario/password, genera JWT y retorna el token.
// Sin hash configurado el login queda deshabilitado (ErrUnauthorized).
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	if uc.admin.PasswordHash == "" {
		uc.log.Warn().Msg("login deshabilitado: ADMIN_PASSWORD_HASH vacío")
		return nil, domain.ErrUnauthorized
	}
	usuarioOK := subtle.ConstantTimeCompare([]byte(in.Usuario), []byte(uc.admin.Usuario)) == 1
	if err := bcrypt.CompareHashAndPassword([]byte(uc.admin.PasswordHash), []byte(in.Password)); err != nil || !usuarioOK {
		uc.log.Debug().Str("usuario", in.Usuario).Msg("credenciales inválidas")
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, uc.admin.Usuario, RoleAdmin, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, fmt.Errorf("auth: generar token: %w", err)
	}
	uc.log.Info().Str("usuario", uc.admin.Usuario).Msg("sesión iniciada")
	return &dto.LoginResponse{Token: token, ExpiresIn: uc.jwtCfg.ExpMinutes * 60, Role: RoleAdmin}, nil
}
