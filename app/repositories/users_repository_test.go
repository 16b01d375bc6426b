package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/cherryshop/cherryshop-api/app/db/testdb"
	"github.com/cherryshop/cherryshop-api/app/helpers"
	"github.com/cherryshop/cherryshop-api/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserCreateHashesPassword(t *testing.T) {
	ctx := context.Background()
	users := NewUserRepository(testdb.Open(t))

	user := &models.User{Username: "alice", Email: "a@x.com", Password: "Secret123"}
	require.NoError(t, users.Create(ctx, user))
	assert.NotEmpty(t, user.ID)
	assert.NotEqual(t, "Secret123", user.Password)

	stored, err := users.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "alice", stored.Username)
}

func TestUserCreateRejectsDuplicates(t *testing.T) {
	ctx := context.Background()
	users := NewUserRepository(testdb.Open(t))

	require.NoError(t, users.Create(ctx, &models.User{Username: "alice", Email: "a@x.com", Password: "Secret123"}))

	err := users.Create(ctx, &models.User{Username: "alice", Email: "a@x.com", Password: "Secret123"})
	var identityErrs IdentityErrors
	require.True(t, errors.As(err, &identityErrs))
	codes := []string{}
	for _, ie := range identityErrs {
		codes = append(codes, ie.Code)
	}
	assert.ElementsMatch(t, []string{"DuplicateUserName", "DuplicateEmail"}, codes)

	other, err := users.FindByUsername(ctx, "bob")
	require.NoError(t, err)
	assert.Nil(t, other)
}

func TestUserCreateRejectsEmptyFields(t *testing.T) {
	err := NewUserRepository(testdb.Open(t)).Create(context.Background(), &models.User{})
	var identityErrs IdentityErrors
	require.True(t, errors.As(err, &identityErrs))
	assert.Len(t, identityErrs, 3)
}

func TestCheckPasswordDoesNotDistinguishFailures(t *testing.T) {
	ctx := context.Background()
	users := NewUserRepository(testdb.Open(t))
	require.NoError(t, users.Create(ctx, &models.User{Username: "alice", Email: "a@x.com", Password: "Secret123"}))

	user, err := users.CheckPassword(ctx, "alice", "Secret123")
	require.NoError(t, err)
	require.NotNil(t, user)

	wrong, err := users.CheckPassword(ctx, "alice", "wrong")
	require.NoError(t, err)
	assert.Nil(t, wrong)

	unknown, err := users.CheckPassword(ctx, "mallory", "Secret123")
	require.NoError(t, err)
	assert.Nil(t, unknown)
}

func TestCheckPasswordHashesForUnknownUsers(t *testing.T) {
	ctx := context.Background()
	var hashes []string
	users := &userRepository{
		db: testdb.Open(t),
		compare: func(hash string, password []byte) bool {
			hashes = append(hashes, hash)
			return helpers.PasswordCompare(hash, password)
		},
	}
	require.NoError(t, users.Create(ctx, &models.User{Username: "alice", Email: "a@x.com", Password: "Secret123"}))

	unknown, err := users.CheckPassword(ctx, "mallory", "Secret123")
	require.NoError(t, err)
	assert.Nil(t, unknown)
	require.Len(t, hashes, 1)
	assert.Equal(t, missingUserHash(), hashes[0])

	wrong, err := users.CheckPassword(ctx, "alice", "Secret124")
	require.NoError(t, err)
	assert.Nil(t, wrong)
	assert.Len(t, hashes, 2)
	assert.NotEqual(t, hashes[0], hashes[1])
}

func TestAddToRoleIsIdempotent(t *testing.T) {
	ctx := context.Background()
	db := testdb.Open(t)
	users := NewUserRepository(db)
	roles := NewRoleRepository(db)

	require.NoError(t, roles.Create(ctx, &models.Role{Name: models.RoleStaff}))
	user := &models.User{Username: "staff", Email: "staff@test.com", Password: "P@ssw0rd"}
	require.NoError(t, users.Create(ctx, user))

	require.NoError(t, users.AddToRole(ctx, user, models.RoleStaff))
	require.NoError(t, users.AddToRole(ctx, user, models.RoleStaff))

	names, err := users.GetRoles(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{models.RoleStaff}, names)

	assert.Error(t, users.AddToRole(ctx, user, "Ghost"))
}

func TestRoleRepository(t *testing.T) {
	ctx := context.Background()
	roles := NewRoleRepository(testdb.Open(t))

	exists, err := roles.RoleExists(ctx, models.RoleAdministrator)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, roles.Create(ctx, &models.Role{Name: models.RoleAdministrator}))
	exists, err = roles.RoleExists(ctx, models.RoleAdministrator)
	require.NoError(t, err)
	assert.True(t, exists)

	role, err := roles.FindByName(ctx, models.RoleAdministrator)
	require.NoError(t, err)
	require.NotNil(t, role)
	assert.Greater(t, role.ID, uint(0))

	missing, err := roles.FindByName(ctx, "Nobody")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
