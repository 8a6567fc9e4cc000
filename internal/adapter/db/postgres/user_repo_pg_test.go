package postgres

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"

	"user-service/internal/domain/user"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// Migrate the schema
	err = db.AutoMigrate(&UserSchema{})
	require.NoError(t, err)

	return db
}

func setupRepo(t *testing.T) *UserRepoPG {
	return NewUserRepoPG(setupTestDB(t), zaptest.NewLogger(t))
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestUserRepoPG_Save_CreateAssignsID(t *testing.T) {
	repo := setupRepo(t)

	persisted, outcome, err := repo.Save(context.Background(), &user.User{
		Name:     strPtr("John Doe"),
		Email:    strPtr("john@example.com"),
		Priority: intPtr(1),
	})
	require.NoError(t, err)

	assert.Equal(t, user.SaveOutcomeCreated, outcome)
	assert.NotZero(t, persisted.ID)

	// Fetching by the returned id yields a record equal in all fields
	got, err := repo.FindByID(context.Background(), persisted.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "John Doe", *got.Name)
	assert.Equal(t, "john@example.com", *got.Email)
	assert.Equal(t, 1, *got.Priority)
}

func TestUserRepoPG_Save_UpdateOverwritesAllFields(t *testing.T) {
	repo := setupRepo(t)

	persisted, _, err := repo.Save(context.Background(), &user.User{
		Name:     strPtr("John Doe"),
		Email:    strPtr("john@example.com"),
		Priority: intPtr(1),
	})
	require.NoError(t, err)

	// Overwrite with only a name: email and priority must become NULL, not merge
	updated, outcome, err := repo.Save(context.Background(), &user.User{
		ID:   persisted.ID,
		Name: strPtr("Jane Smith"),
	})
	require.NoError(t, err)
	assert.Equal(t, user.SaveOutcomeUpdated, outcome)
	assert.Equal(t, persisted.ID, updated.ID)

	got, err := repo.FindByID(context.Background(), persisted.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Jane Smith", *got.Name)
	assert.Nil(t, got.Email)
	assert.Nil(t, got.Priority)
}

func TestUserRepoPG_Save_ExplicitIDWithoutRowCreates(t *testing.T) {
	repo := setupRepo(t)

	persisted, outcome, err := repo.Save(context.Background(), &user.User{
		ID:   42,
		Name: strPtr("Preassigned"),
	})
	require.NoError(t, err)

	assert.Equal(t, user.SaveOutcomeCreated, outcome)
	assert.Equal(t, int64(42), persisted.ID)

	got, err := repo.FindByID(context.Background(), 42)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Preassigned", *got.Name)
}

func TestUserRepoPG_Save_NilUser(t *testing.T) {
	repo := setupRepo(t)

	_, _, err := repo.Save(context.Background(), nil)
	assert.Error(t, err)
}

func TestUserRepoPG_FindByID_NotFound(t *testing.T) {
	repo := setupRepo(t)

	got, err := repo.FindByID(context.Background(), 999)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUserRepoPG_FindAll(t *testing.T) {
	repo := setupRepo(t)

	all, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)

	_, _, err = repo.Save(context.Background(), &user.User{Name: strPtr("A")})
	require.NoError(t, err)
	_, _, err = repo.Save(context.Background(), &user.User{Name: strPtr("B")})
	require.NoError(t, err)

	all, err = repo.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 2)

	// Primary-key order
	assert.Less(t, all[0].ID, all[1].ID)
	assert.Equal(t, "A", *all[0].Name)
	assert.Equal(t, "B", *all[1].Name)
}

func TestUserRepoPG_FindByPriority(t *testing.T) {
	repo := setupRepo(t)

	for _, u := range []user.User{
		{Name: strPtr("A"), Priority: intPtr(1)},
		{Name: strPtr("B"), Priority: intPtr(2)},
		{Name: strPtr("C"), Priority: intPtr(1)},
		{Name: strPtr("D")}, // NULL priority must never match
	} {
		_, _, err := repo.Save(context.Background(), &user.User{Name: u.Name, Priority: u.Priority})
		require.NoError(t, err)
	}

	got, err := repo.FindByPriority(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, got, 2)
	names := []string{*got[0].Name, *got[1].Name}
	assert.ElementsMatch(t, []string{"A", "C"}, names)

	got, err = repo.FindByPriority(context.Background(), 7)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestUserRepoPG_DeleteByID(t *testing.T) {
	repo := setupRepo(t)

	persisted, _, err := repo.Save(context.Background(), &user.User{Name: strPtr("John Doe")})
	require.NoError(t, err)

	outcome, err := repo.DeleteByID(context.Background(), persisted.ID)
	require.NoError(t, err)
	assert.Equal(t, user.DeleteOutcomeDeleted, outcome)

	// Deleted row is gone from lookups and listings
	got, err := repo.FindByID(context.Background(), persisted.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	all, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestUserRepoPG_DeleteByID_NotFound(t *testing.T) {
	repo := setupRepo(t)

	outcome, err := repo.DeleteByID(context.Background(), 999)
	require.NoError(t, err)
	assert.Equal(t, user.DeleteOutcomeNotFound, outcome)
}
