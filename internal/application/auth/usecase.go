package auth

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/almacen-core/internal/application/dto"
	"github.com/tu-usuario/almacen-core/internal/domain"
	"github.com/tu-usuario/almacen-core/internal/domain/authz"
	"github.com/tu-usuario/almacen-core/internal/domain/entity"
	"github.com/tu-usuario/almacen-core/internal/domain/repository"
	"github.com/tu-usuario/almacen-core/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación y gestión de usuarios:
// registro, login y cambio de rol.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// RegisterUser crea un usuario: hashea password con bcrypt y persiste.
// El rol pedido solo se respeta si actorRole es admin; el registro público
// (actorRole vacío) siempre crea viewer. Devuelve ErrEmailAlreadyExists si
// el email ya existe.
func (uc *AuthUseCase) RegisterUser(actorRole string, in dto.RegisterRequest) (*dto.UserResponse, error) {
	if in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	role := entity.RoleViewer
	if in.Role != "" && in.Role != entity.RoleViewer {
		if !authz.CanPerform(actorRole, authz.OpManageUsers) {
			return nil, domain.ErrUnauthorized
		}
		if !authz.ValidRole(in.Role) {
			return nil, domain.ErrInvalidInput
		}
		role = in.Role
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	name := in.Name
	if name == "" {
		name = in.Email
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
		Status:       entity.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login verifica email/password, genera JWT con el claim de rol y retorna
// token + usuario.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != entity.UserStatusActive {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

// ChangeRole cambia el único rol de un usuario. Solo admin pasa la puerta.
func (uc *AuthUseCase) ChangeRole(actorRole, userID, newRole string) (*dto.UserResponse, error) {
	if !authz.CanPerform(actorRole, authz.OpManageUsers) {
		return nil, domain.ErrUnauthorized
	}
	if !authz.ValidRole(newRole) {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	now := time.Now()
	if err := uc.userRepo.UpdateRole(userID, newRole, now); err != nil {
		return nil, err
	}
	user.Role = newRole
	user.UpdatedAt = now
	return toUserResponse(user), nil
}

// ListUsers lista usuarios; restringido a quien puede gestionarlos.
func (uc *AuthUseCase) ListUsers(actorRole string, limit, offset int) ([]*dto.UserResponse, error) {
	if !authz.CanPerform(actorRole, authz.OpManageUsers) {
		return nil, domain.ErrUnauthorized
	}
	users, err := uc.userRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
