package account_test

import (
	"testing"
	"time"

	"laxhq/internal/domain/account"
)

// TestAccount_Validate tests validation of Account.
func TestAccount_Validate(t *testing.T) {
	tests := []struct {
		name    string
		acct    account.Account
		wantErr bool
	}{
		{
			name:    "valid coach",
			acct:    account.Account{ID: "1", Email: "coach@example.com", Role: account.RoleCoach},
			wantErr: false,
		},
		{
			name:    "valid parent",
			acct:    account.Account{ID: "2", Email: "parent@example.com", Role: account.RoleParent},
			wantErr: false,
		},
		{
			name:    "empty email",
			acct:    account.Account{ID: "3", Email: "", Role: account.RoleCoach},
			wantErr: true,
		},
		{
			name:    "email without at sign",
			acct:    account.Account{ID: "4", Email: "coach.example.com", Role: account.RoleCoach},
			wantErr: true,
		},
		{
			name:    "invalid role",
			acct:    account.Account{ID: "5", Email: "x@example.com", Role: "referee"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.acct.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Account.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestAccount_PasswordRoundTrip tests SetPassword and CheckPassword.
func TestAccount_PasswordRoundTrip(t *testing.T) {
	var a account.Account

	if err := a.SetPassword("short"); err != account.ErrPasswordTooShort {
		t.Errorf("SetPassword(short) error = %v, want ErrPasswordTooShort", err)
	}
	if err := a.SetPassword(""); err != account.ErrEmptyPassword {
		t.Errorf("SetPassword(empty) error = %v, want ErrEmptyPassword", err)
	}

	if err := a.SetPassword("ground ball machine"); err != nil {
		t.Fatalf("SetPassword() error = %v", err)
	}
	if err := a.CheckPassword("ground ball machine"); err != nil {
		t.Errorf("CheckPassword(correct) error = %v", err)
	}
	if err := a.CheckPassword("wrong password!!"); err != account.ErrWrongPassword {
		t.Errorf("CheckPassword(wrong) error = %v, want ErrWrongPassword", err)
	}
}

// TestAccount_Lockout tests failed login counting and lockout.
func TestAccount_Lockout(t *testing.T) {
	var a account.Account

	for i := 0; i < 4; i++ {
		a.RecordFailedLogin()
	}
	if a.IsLocked() {
		t.Error("account locked after 4 failures, want unlocked")
	}

	a.RecordFailedLogin()
	if !a.IsLocked() {
		t.Error("account not locked after 5 failures")
	}

	a.ResetFailedLogins()
	if a.IsLocked() || a.FailedLogins != 0 {
		t.Error("ResetFailedLogins did not clear lockout")
	}
	if !a.LockedUntil.Equal(time.Time{}) {
		t.Error("LockedUntil not zeroed")
	}
}

// TestAccount_CanEditPlans tests the plan editing permission per role.
func TestAccount_CanEditPlans(t *testing.T) {
	tests := []struct {
		role string
		want bool
	}{
		{account.RoleAdmin, true},
		{account.RoleDirector, true},
		{account.RoleCoach, true},
		{account.RolePlayer, false},
		{account.RoleParent, false},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			a := account.Account{Role: tt.role}
			if got := a.CanEditPlans(); got != tt.want {
				t.Errorf("CanEditPlans() = %v, want %v", got, tt.want)
			}
		})
	}
}
