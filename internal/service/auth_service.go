package service

import (
	"context"
	"errors"
	"time"

	"pizzapos/internal/config"
	"pizzapos/internal/dto"
	"pizzapos/internal/model"
	"pizzapos/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error)
	CrearEmpleado(ctx context.Context, req dto.CrearEmpleadoRequest) (*dto.EmpleadoResponse, error)
	ListarEmpleados(ctx context.Context, incluirInactivos bool) ([]dto.EmpleadoResponse, error)
	ActualizarEmpleado(ctx context.Context, id uuid.UUID, req dto.ActualizarEmpleadoRequest) (*dto.EmpleadoResponse, error)
	DesactivarEmpleado(ctx context.Context, id uuid.UUID) error
	ReactivarEmpleado(ctx context.Context, id uuid.UUID) error
}

type authService struct {
	repo repository.EmpleadoRepository
	cfg  *config.Config
}

func NewAuthService(repo repository.EmpleadoRepository, cfg *config.Config) AuthService {
	return &authService{repo: repo, cfg: cfg}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	empleado, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, errors.New("credenciales invalidas")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(empleado.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errors.New("credenciales invalidas")
	}

	return s.buildLoginResponse(empleado)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("refresh token invalido o expirado")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("claims invalidos")
	}
	empleadoIDStr, ok := claims["empleado_id"].(string)
	if !ok {
		return nil, errors.New("token mal formado")
	}
	uid, err := uuid.Parse(empleadoIDStr)
	if err != nil {
		return nil, errors.New("token mal formado")
	}

	empleado, err := s.repo.FindByID(ctx, uid)
	if err != nil || !empleado.Activo {
		return nil, errors.New("empleado no encontrado o inactivo")
	}

	return s.buildLoginResponse(empleado)
}

func (s *authService) CrearEmpleado(ctx context.Context, req dto.CrearEmpleadoRequest) (*dto.EmpleadoResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, err
	}
	empleado := &model.Empleado{
		Username:     req.Username,
		Nombre:       req.Nombre,
		Email:        req.Email,
		PasswordHash: string(hash),
		Rol:          req.Rol,
		Activo:       true,
	}
	if err := s.repo.Create(ctx, empleado); err != nil {
		return nil, err
	}
	resp := empleadoToDTO(empleado)
	return &resp, nil
}

func (s *authService) ListarEmpleados(ctx context.Context, incluirInactivos bool) ([]dto.EmpleadoResponse, error) {
	var empleados []model.Empleado
	var err error
	if incluirInactivos {
		empleados, err = s.repo.ListAll(ctx)
	} else {
		empleados, err = s.repo.List(ctx)
	}
	if err != nil {
		return nil, err
	}
	resp := make([]dto.EmpleadoResponse, len(empleados))
	for i := range empleados {
		resp[i] = empleadoToDTO(&empleados[i])
	}
	return resp, nil
}

func (s *authService) ActualizarEmpleado(ctx context.Context, id uuid.UUID, req dto.ActualizarEmpleadoRequest) (*dto.EmpleadoResponse, error) {
	empleado, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("empleado no encontrado")
	}
	if req.Nombre != "" {
		empleado.Nombre = req.Nombre
	}
	if req.Email != nil {
		empleado.Email = req.Email
	}
	if req.Rol != "" {
		empleado.Rol = req.Rol
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
		if err != nil {
			return nil, err
		}
		empleado.PasswordHash = string(hash)
	}
	if err := s.repo.Update(ctx, empleado); err != nil {
		return nil, err
	}
	resp := empleadoToDTO(empleado)
	return &resp, nil
}

func (s *authService) DesactivarEmpleado(ctx context.Context, id uuid.UUID) error {
	return s.repo.SoftDelete(ctx, id)
}

func (s *authService) ReactivarEmpleado(ctx context.Context, id uuid.UUID) error {
	return s.repo.Reactivar(ctx, id)
}

func (s *authService) buildLoginResponse(empleado *model.Empleado) (*dto.LoginResponse, error) {
	accessToken, err := s.generateToken(empleado, time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.generateToken(empleado, time.Duration(s.cfg.JWTRefreshHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresIn:    s.cfg.JWTExpirationHours * 3600,
		Empleado:     empleadoToDTO(empleado),
	}, nil
}

func (s *authService) generateToken(empleado *model.Empleado, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"empleado_id": empleado.ID.String(),
		"username":    empleado.Username,
		"rol":         empleado.Rol,
		"exp":         time.Now().Add(duration).Unix(),
		"iat":         time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func empleadoToDTO(e *model.Empleado) dto.EmpleadoResponse {
	return dto.EmpleadoResponse{
		ID:       e.ID.String(),
		Username: e.Username,
		Nombre:   e.Nombre,
		Email:    e.Email,
		Rol:      e.Rol,
		Activo:   e.Activo,
	}
}
