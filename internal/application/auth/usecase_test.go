package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appauth "github.com/tu-usuario/almacen-core/internal/application/auth"
	"github.com/tu-usuario/almacen-core/internal/application/dto"
	"github.com/tu-usuario/almacen-core/internal/domain"
	"github.com/tu-usuario/almacen-core/internal/domain/entity"
	pkgjwt "github.com/tu-usuario/almacen-core/pkg/jwt"
)

type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func (r *fakeUserRepo) Create(user *entity.User) error { r.users[user.ID] = user; return nil }
func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}
func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}
func (r *fakeUserRepo) Update(user *entity.User) error { r.users[user.ID] = user; return nil }
func (r *fakeUserRepo) UpdateRole(id, role string, updatedAt time.Time) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Role = role
	u.UpdatedAt = updatedAt
	return nil
}
func (r *fakeUserRepo) List(limit, offset int) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func buildAuthUC() (*appauth.AuthUseCase, *fakeUserRepo) {
	repo := newFakeUserRepo()
	uc := appauth.NewAuthUseCase(repo, appauth.JWTConfig{
		Secret:     "test-secret",
		ExpMinutes: 60,
		Issuer:     "almacen-core-test",
	})
	return uc, repo
}

func TestRegister_PublicoSiempreViewer(t *testing.T) {
	uc, repo := buildAuthUC()

	// Un registro público pidiendo admin no escala privilegios.
	user, err := uc.RegisterUser("", dto.RegisterRequest{
		Email:    "ana@example.com",
		Password: "secreta123",
		Role:     entity.RoleAdmin,
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Nil(t, user)
	assert.Empty(t, repo.users)

	// Sin rol explícito queda como viewer.
	user, err = uc.RegisterUser("", dto.RegisterRequest{
		Email:    "ana@example.com",
		Password: "secreta123",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleViewer, user.Role)
	assert.Equal(t, entity.UserStatusActive, user.Status)
}

func TestRegister_AdminCreaOperator(t *testing.T) {
	uc, _ := buildAuthUC()

	user, err := uc.RegisterUser(entity.RoleAdmin, dto.RegisterRequest{
		Email:    "op@example.com",
		Password: "secreta123",
		Name:     "Operario",
		Role:     entity.RoleOperator,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleOperator, user.Role)
}

func TestRegister_RolInvalido(t *testing.T) {
	uc, _ := buildAuthUC()

	_, err := uc.RegisterUser(entity.RoleAdmin, dto.RegisterRequest{
		Email:    "x@example.com",
		Password: "secreta123",
		Role:     "superuser",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegister_EmailDuplicado(t *testing.T) {
	uc, _ := buildAuthUC()

	_, err := uc.RegisterUser("", dto.RegisterRequest{Email: "ana@example.com", Password: "secreta123"})
	require.NoError(t, err)

	_, err = uc.RegisterUser("", dto.RegisterRequest{Email: "ana@example.com", Password: "otra456"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLogin_EmiteTokenConRol(t *testing.T) {
	uc, _ := buildAuthUC()

	created, err := uc.RegisterUser(entity.RoleAdmin, dto.RegisterRequest{
		Email:    "op@example.com",
		Password: "secreta123",
		Role:     entity.RoleOperator,
	})
	require.NoError(t, err)

	out, err := uc.Login(dto.LoginRequest{Email: "op@example.com", Password: "secreta123"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, out.User.ID)

	// El claim de rol del token debe reflejar el rol persistido.
	userID, role, err := pkgjwt.Parse("test-secret", out.Token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, userID)
	assert.Equal(t, entity.RoleOperator, role)
}

func TestLogin_PasswordIncorrecta(t *testing.T) {
	uc, _ := buildAuthUC()

	_, err := uc.RegisterUser("", dto.RegisterRequest{Email: "ana@example.com", Password: "secreta123"})
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Email: "ana@example.com", Password: "equivocada"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	uc, repo := buildAuthUC()

	created, err := uc.RegisterUser("", dto.RegisterRequest{Email: "ana@example.com", Password: "secreta123"})
	require.NoError(t, err)
	repo.users[created.ID].Status = entity.UserStatusInactive

	_, err = uc.Login(dto.LoginRequest{Email: "ana@example.com", Password: "secreta123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestChangeRole_SoloAdmin(t *testing.T) {
	uc, repo := buildAuthUC()

	created, err := uc.RegisterUser("", dto.RegisterRequest{Email: "ana@example.com", Password: "secreta123"})
	require.NoError(t, err)

	_, err = uc.ChangeRole(entity.RoleOperator, created.ID, entity.RoleOperator)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Equal(t, entity.RoleViewer, repo.users[created.ID].Role)

	out, err := uc.ChangeRole(entity.RoleAdmin, created.ID, entity.RoleOperator)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleOperator, out.Role)
	assert.Equal(t, entity.RoleOperator, repo.users[created.ID].Role)
}

func TestChangeRole_RolFueraDelConjunto(t *testing.T) {
	uc, _ := buildAuthUC()

	created, err := uc.RegisterUser("", dto.RegisterRequest{Email: "ana@example.com", Password: "secreta123"})
	require.NoError(t, err)

	_, err = uc.ChangeRole(entity.RoleAdmin, created.ID, "root")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestChangeRole_UsuarioNoExiste(t *testing.T) {
	uc, _ := buildAuthUC()

	_, err := uc.ChangeRole(entity.RoleAdmin, "no-existe", entity.RoleViewer)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestListUsers_Puerta(t *testing.T) {
	uc, _ := buildAuthUC()

	_, err := uc.RegisterUser("", dto.RegisterRequest{Email: "ana@example.com", Password: "secreta123"})
	require.NoError(t, err)

	_, err = uc.ListUsers(entity.RoleViewer, 20, 0)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	users, err := uc.ListUsers(entity.RoleAdmin, 20, 0)
	require.NoError(t, err)
	assert.Len(t, users, 1)
	// La respuesta nunca expone el hash de la contraseña.
}
