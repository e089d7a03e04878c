package auth_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"clinic-api/internal/apperror"
	"clinic-api/internal/auth"
	authdb "clinic-api/internal/auth/db"
	"clinic-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func setupService(t *testing.T) *auth.Service {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, "file::memory:?cache=shared")
	require.NoError(t, err)
	bunDB := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { bunDB.Close() })

	require.NoError(t, bunDB.ResetModel(context.Background(), (*models.Account)(nil)))

	return auth.NewService(&authdb.DB{Bun: bunDB})
}

func TestSignupThenLogin(t *testing.T) {
	service := setupService(t)

	account, err := service.Signup(models.SignupRequest{
		Mobile:   "9999999999",
		Password: "test123",
		Name:     "Test User",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, account.ID)
	assert.Equal(t, "9999999999", account.Mobile)
	assert.Equal(t, "Test User", account.Name)
	assert.Empty(t, account.PasswordHash)

	// The credential never appears in the serialized account.
	raw, err := json.Marshal(account)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "password")

	loggedIn, err := service.Login(models.LoginRequest{Mobile: "9999999999", Password: "test123"})
	require.NoError(t, err)
	assert.Equal(t, account.ID, loggedIn.ID)
	assert.Equal(t, account.Mobile, loggedIn.Mobile)
	assert.Empty(t, loggedIn.PasswordHash)
}

func TestSignupDuplicateMobile(t *testing.T) {
	service := setupService(t)

	_, err := service.Signup(models.SignupRequest{Mobile: "8888888888", Password: "first1"})
	require.NoError(t, err)

	// Conflict regardless of whether the password matches the existing one.
	_, err = service.Signup(models.SignupRequest{Mobile: "8888888888", Password: "first1"})
	var conflict *apperror.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, auth.MsgAccountExists, conflict.Message)

	_, err = service.Signup(models.SignupRequest{Mobile: "8888888888", Password: "different"})
	require.ErrorAs(t, err, &conflict)
}

func TestSignupValidationEnumeratesFields(t *testing.T) {
	service := setupService(t)

	_, err := service.Signup(models.SignupRequest{
		Mobile:   "12345",
		Password: "abc",
		Email:    "not-an-email",
	})
	var validation *apperror.ValidationError
	require.ErrorAs(t, err, &validation)

	fields := make([]string, len(validation.Fields))
	for i, f := range validation.Fields {
		fields[i] = f.Field
	}
	assert.ElementsMatch(t, []string{"mobile", "password", "email"}, fields)
}

func TestSignupMobileShapes(t *testing.T) {
	service := setupService(t)

	cases := []struct {
		name   string
		mobile string
		valid  bool
	}{
		{"ten digits", "9000000001", true},
		{"nine digits", "900000001", false},
		{"eleven digits", "90000000001", false},
		{"letters", "90000000ab", false},
		{"empty", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.Signup(models.SignupRequest{Mobile: tc.mobile, Password: "test123"})
			if tc.valid {
				assert.NoError(t, err)
			} else {
				var validation *apperror.ValidationError
				assert.ErrorAs(t, err, &validation)
			}
		})
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	service := setupService(t)

	_, err := service.Signup(models.SignupRequest{Mobile: "7777777777", Password: "secret1"})
	require.NoError(t, err)

	_, unknownErr := service.Login(models.LoginRequest{Mobile: "1234567890", Password: "whatever"})
	_, wrongErr := service.Login(models.LoginRequest{Mobile: "7777777777", Password: "not-secret"})

	var unknownAuth, wrongAuth *apperror.AuthenticationError
	require.ErrorAs(t, unknownErr, &unknownAuth)
	require.ErrorAs(t, wrongErr, &wrongAuth)

	// Byte-identical messages so account existence cannot be probed.
	assert.Equal(t, unknownAuth.Message, wrongAuth.Message)
	assert.Equal(t, auth.MsgInvalidCredentials, unknownAuth.Message)
}

func TestLoginLegacyAccountWithoutHash(t *testing.T) {
	service := setupService(t)

	// Seed a legacy row directly, bypassing signup.
	legacy := models.Account{ID: "legacy-1", Mobile: "6666666666", CreatedAt: time.Now().UTC()}
	require.NoError(t, service.DB.CreateAccount(legacy))

	_, err := service.Login(models.LoginRequest{Mobile: "6666666666", Password: "anything"})
	var authErr *apperror.AuthenticationError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, auth.MsgNoPasswordSet, authErr.Message)
}

func TestUpdateProfile(t *testing.T) {
	service := setupService(t)

	account, err := service.Signup(models.SignupRequest{Mobile: "5555555555", Password: "test123"})
	require.NoError(t, err)

	name := "Renamed"
	email := "renamed@example.com"
	updated, err := service.UpdateProfile(account.ID, models.ProfileUpdateRequest{Name: &name, Email: &email})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, "renamed@example.com", updated.Email)

	badMobile := "123"
	_, err = service.UpdateProfile(account.ID, models.ProfileUpdateRequest{Mobile: &badMobile})
	var validation *apperror.ValidationError
	assert.ErrorAs(t, err, &validation)
}

// MockDBLayer simulates the store for the insert-race path the sqlite
// uniqueness pre-check would otherwise short-circuit.
type MockDBLayer struct {
	mock.Mock
}

func (m *MockDBLayer) GetAccountByMobile(mobile string) (*models.Account, error) {
	args := m.Called(mobile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockDBLayer) GetAccountByID(id string) (*models.Account, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockDBLayer) CreateAccount(account models.Account) error {
	args := m.Called(account)
	return args.Error(0)
}

func (m *MockDBLayer) UpdateAccountFields(id string, updates map[string]interface{}) error {
	args := m.Called(id, updates)
	return args.Error(0)
}

func (m *MockDBLayer) ListAccounts() ([]models.Account, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Account), args.Error(1)
}

func TestSignupRaceMapsUniqueViolationToConflict(t *testing.T) {
	db := new(MockDBLayer)
	service := auth.NewService(db)

	// Pre-check sees nothing; a racing signup wins the insert.
	db.On("GetAccountByMobile", "4444444444").Return(nil, sql.ErrNoRows)
	db.On("CreateAccount", mock.Anything).
		Return(errors.New("constraint failed: UNIQUE constraint failed: users.mobile"))

	_, err := service.Signup(models.SignupRequest{Mobile: "4444444444", Password: "test123"})
	var conflict *apperror.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, auth.MsgAccountExists, conflict.Message)
	db.AssertExpectations(t)
}
