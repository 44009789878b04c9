package services

import (
	"testing"

	"spendlog/internal/models"
	"spendlog/internal/testutil"
)

func TestCreateUser(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		user, err := svc.CreateUser("alice", "s3cretpass", nil)
		testutil.AssertNoError(t, err)

		if user.ID == "" {
			t.Fatal("expected non-empty user ID")
		}
		if user.Name != "alice" {
			t.Errorf("expected name alice, got %s", user.Name)
		}
		if user.Password == "s3cretpass" {
			t.Error("password stored in plaintext")
		}
		if !svc.VerifyPassword(user, "s3cretpass") {
			t.Error("stored hash does not verify against original password")
		}
	})

	t.Run("duplicate_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		first, err := svc.CreateUser("bob", "s3cretpass", nil)
		testutil.AssertNoError(t, err)

		_, err = svc.CreateUser("bob", "otherpass1", nil)
		testutil.AssertAppError(t, err, "DUPLICATE_USERNAME")

		// The first user must remain retrievable
		got, err := svc.GetUserByID(first.ID)
		testutil.AssertNoError(t, err)
		if got.Name != "bob" {
			t.Errorf("expected bob, got %s", got.Name)
		}
	})

	t.Run("with_default_currency", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)
		currency := testutil.CreateTestCurrency(t, db)

		user, err := svc.CreateUser("carol", "s3cretpass", &currency.ID)
		testutil.AssertNoError(t, err)

		if user.DefaultCurrencyID == nil || *user.DefaultCurrencyID != currency.ID {
			t.Errorf("expected default currency %d, got %v", currency.ID, user.DefaultCurrencyID)
		}
	})

	t.Run("unknown_default_currency", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		nonexistent := uint(99999)
		_, err := svc.CreateUser("dave", "s3cretpass", &nonexistent)
		testutil.AssertAppError(t, err, "CURRENCY_NOT_FOUND")
	})

	t.Run("empty_fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.CreateUser("", "s3cretpass", nil)
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		_, err = svc.CreateUser("erin", "", nil)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestAuthenticate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		created, err := svc.CreateUser("frank", "s3cretpass", nil)
		testutil.AssertNoError(t, err)

		user, err := svc.Authenticate("frank", "s3cretpass")
		testutil.AssertNoError(t, err)
		if user.ID != created.ID {
			t.Errorf("expected user %s, got %s", created.ID, user.ID)
		}
	})

	t.Run("unknown_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.Authenticate("nobody", "s3cretpass")
		testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
	})

	t.Run("wrong_password", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.CreateUser("grace", "s3cretpass", nil)
		testutil.AssertNoError(t, err)

		_, err = svc.Authenticate("grace", "wrongpass1")
		testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
	})
}

func TestGetAllUsers(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewUserService(db)

	testutil.CreateTestUser(t, db)
	testutil.CreateTestUser(t, db)

	users, err := svc.GetAllUsers()
	testutil.AssertNoError(t, err)
	if len(users) != 2 {
		t.Errorf("expected 2 users, got %d", len(users))
	}
}

func TestDeleteUser(t *testing.T) {
	t.Run("deletes", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)
		user := testutil.CreateTestUser(t, db)

		testutil.AssertNoError(t, svc.DeleteUser(user.ID))

		_, err := svc.GetUserByID(user.ID)
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	})

	t.Run("nonexistent", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		err := svc.DeleteUser("00000000-0000-0000-0000-000000000000")
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	})

	t.Run("with_records", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		user := testutil.CreateTestUser(t, db)
		category := testutil.CreateTestCategory(t, db)
		currency := testutil.CreateTestCurrency(t, db)
		testutil.CreateTestRecord(t, db, user.ID, category.ID, currency.ID, 12.5)

		err := svc.DeleteUser(user.ID)
		testutil.AssertAppError(t, err, "USER_HAS_RECORDS")

		// The user must survive the refused deletion
		_, err = svc.GetUserByID(user.ID)
		testutil.AssertNoError(t, err)
	})

	t.Run("deletes_after_records_soft_deleted", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)
		recordSvc := NewRecordService(db)

		user := testutil.CreateTestUser(t, db)
		category := testutil.CreateTestCategory(t, db)
		currency := testutil.CreateTestCurrency(t, db)
		record := testutil.CreateTestRecord(t, db, user.ID, category.ID, currency.ID, 12.5)

		testutil.AssertNoError(t, recordSvc.DeleteRecord(record.ID))
		testutil.AssertNoError(t, svc.DeleteUser(user.ID))

		// No record rows, soft-deleted or otherwise, may still reference the user.
		var count int64
		if err := db.Unscoped().Model(&models.Record{}).Where("user_id = ?", user.ID).Count(&count).Error; err != nil {
			t.Fatalf("failed to count records: %v", err)
		}
		if count != 0 {
			t.Errorf("expected no record rows for deleted user, got %d", count)
		}
	})

	t.Run("name_reusable_after_delete", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		user, err := svc.CreateUser("heidi", "s3cretpass", nil)
		testutil.AssertNoError(t, err)
		testutil.AssertNoError(t, svc.DeleteUser(user.ID))

		_, err = svc.CreateUser("heidi", "s3cretpass", nil)
		testutil.AssertNoError(t, err)
	})
}
