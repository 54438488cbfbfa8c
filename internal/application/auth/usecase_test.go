package auth_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/redcobro-api/internal/application/auth"
	"github.com/jhoicas/redcobro-api/internal/application/dto"
	"github.com/jhoicas/redcobro-api/internal/domain"
	"github.com/jhoicas/redcobro-api/internal/domain/entity"
	"github.com/jhoicas/redcobro-api/pkg/clock"
	pkgjwt "github.com/jhoicas/redcobro-api/pkg/jwt"
)

type memCompanies struct{ byID map[string]*entity.Company }

func (r memCompanies) Create(context.Context, *entity.Company) error { return nil }
func (r memCompanies) GetByID(_ context.Context, id string) (*entity.Company, error) {
	return r.byID[id], nil
}
func (r memCompanies) GetByTaxID(context.Context, string) (*entity.Company, error) { return nil, nil }
func (r memCompanies) ListActive(context.Context) ([]*entity.Company, error)       { return nil, nil }

type memUsers struct {
	mu    sync.Mutex
	users []*entity.User
}

func (r *memUsers) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users = append(r.users, u)
	return nil
}

func (r *memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *memUsers) GetByEmailAndCompany(ctx context.Context, email, _ string) (*entity.User, error) {
	return r.GetByEmail(ctx, email)
}

func (r *memUsers) GetByID(context.Context, string, string) (*entity.User, error) { return nil, nil }

func (r *memUsers) ListByCompany(context.Context, string) ([]*entity.User, error) { return nil, nil }

func (r *memUsers) CountByCompany(_ context.Context, companyID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, u := range r.users {
		if u.CompanyID == companyID {
			n++
		}
	}
	return n, nil
}

func (r *memUsers) UpdateStatus(context.Context, string, string, string, time.Time) error { return nil }

const secret = "test-secret"

func newAuth(users *memUsers) *auth.AuthUseCase {
	companies := memCompanies{byID: map[string]*entity.Company{"c-1": {ID: "c-1", Name: "Red Norte"}}}
	return auth.NewAuthUseCase(users, companies, auth.JWTConfig{Secret: secret, ExpMinutes: 60, Issuer: "redcobro"},
		clock.Fixed{T: time.Date(2026, time.October, 19, 9, 0, 0, 0, time.UTC)})
}

func TestRegisterUser_PrimerOperadorEsAdmin(t *testing.T) {
	users := &memUsers{}
	uc := newAuth(users)
	ctx := context.Background()

	out, err := uc.RegisterUser(ctx, dto.RegisterRequest{CompanyID: "c-1", Email: " Dueno@Red.MX ", Password: "segura123", Role: "cobrador"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, out.Role, "el alta pública siempre crea al admin")
	assert.Equal(t, "dueno@red.mx", out.Email)
	assert.False(t, strings.HasPrefix(users.users[0].PasswordHash, "segura"), "el password se guarda hasheado")

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{CompanyID: "c-1", Email: "otro@red.mx", Password: "segura123"})
	assert.ErrorIs(t, err, domain.ErrForbidden, "con operadores existentes el alta la hace un admin")

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{CompanyID: "c-9", Email: "x@red.mx", Password: "segura123"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateOperator_Validaciones(t *testing.T) {
	uc := newAuth(&memUsers{})
	ctx := context.Background()

	out, err := uc.CreateOperator(ctx, "c-1", dto.RegisterRequest{Email: "cobra@red.mx", Password: "segura123"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleCobrador, out.Role)
	assert.Equal(t, "c-1", out.CompanyID)

	_, err = uc.CreateOperator(ctx, "c-1", dto.RegisterRequest{Email: "cobra@red.mx", Password: "segura123"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	_, err = uc.CreateOperator(ctx, "c-1", dto.RegisterRequest{Email: "corta@red.mx", Password: "123"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.CreateOperator(ctx, "c-1", dto.RegisterRequest{Email: "rol@red.mx", Password: "segura123", Role: "gerente"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin(t *testing.T) {
	users := &memUsers{}
	uc := newAuth(users)
	ctx := context.Background()
	_, err := uc.CreateOperator(ctx, "c-1", dto.RegisterRequest{Email: "tec@red.mx", Password: "segura123", Role: "tecnico"})
	require.NoError(t, err)

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "TEC@red.mx", Password: "segura123"})
	require.NoError(t, err)
	claims, err := pkgjwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, "c-1", claims.CompanyID)
	assert.Equal(t, entity.RoleTecnico, claims.Role)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "tec@red.mx", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@red.mx", Password: "segura123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	users.users[0].Status = entity.UserStatusInactive
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "tec@red.mx", Password: "segura123"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
