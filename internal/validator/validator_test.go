package validator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestValidatePassword(t *testing.T) {
	testCases := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{name: "valid", password: "secret1pass", wantErr: false},
		{name: "too short", password: "ab1", wantErr: true},
		{name: "no digit", password: "onlyletters", wantErr: true},
		{name: "no letter", password: "1234567890", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidatePassword(tc.password)
			if tc.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestValidateFullName(t *testing.T) {
	require.NoError(t, ValidateFullName("Nguyen Van A"))
	require.NoError(t, ValidateFullName("O'Brien-Smith"))
	require.Error(t, ValidateFullName("A"))
	require.Error(t, ValidateFullName("user_1234"))
}

func TestValidateEmail(t *testing.T) {
	require.NoError(t, ValidateEmail("staff@clinic.example.com"))
	require.Error(t, ValidateEmail("not-an-email"))
	require.Error(t, ValidateEmail("a@b"))
}

func TestValidatePhoneNumber(t *testing.T) {
	require.NoError(t, ValidatePhoneNumber("+84 912 345 678"))
	require.NoError(t, ValidatePhoneNumber("0912345678"))
	// Optional field: empty passes.
	require.NoError(t, ValidatePhoneNumber(""))
	require.Error(t, ValidatePhoneNumber("call me"))
}

func TestValidateReminderTime(t *testing.T) {
	now := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)

	require.NoError(t, ValidateReminderTime(now.Add(time.Hour), now))
	// A few seconds of clock skew is tolerated.
	require.NoError(t, ValidateReminderTime(now.Add(-30*time.Second), now))
	require.Error(t, ValidateReminderTime(now.Add(-2*time.Minute), now))
}
