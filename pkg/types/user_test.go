package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		ordinal int64
		want    Role
		wantErr bool
	}{
		{0, RoleAdmin, false},
		{1, RoleTeacher, false},
		{2, RoleStudent, false},
		{3, 0, true},
		{-1, 0, true},
		{99, 0, true},
	}
	for _, tt := range tests {
		got, err := ParseRole(tt.ordinal)
		if tt.wantErr {
			assert.Error(t, err, "ordinal %d", tt.ordinal)
			continue
		}
		require.NoError(t, err, "ordinal %d", tt.ordinal)
		assert.Equal(t, tt.want, got)
	}
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		ordinal int64
		want    Status
		wantErr bool
	}{
		{0, StatusActive, false},
		{1, StatusPendingApproval, false},
		{2, StatusDisabled, false},
		{3, 0, true},
		{-1, 0, true},
	}
	for _, tt := range tests {
		got, err := ParseStatus(tt.ordinal)
		if tt.wantErr {
			assert.Error(t, err, "ordinal %d", tt.ordinal)
			continue
		}
		require.NoError(t, err, "ordinal %d", tt.ordinal)
		assert.Equal(t, tt.want, got)
	}
}

func TestDate(t *testing.T) {
	assert.True(t, Date{}.IsZero())
	assert.False(t, Date{Day: 1, Month: 1, Year: 2000}.IsZero())
	assert.Equal(t, "", Date{}.String())
	assert.Equal(t, "05/09/1991", Date{Day: 5, Month: 9, Year: 1991}.String())
}

func TestUserValidate(t *testing.T) {
	valid := User{ID: "u1", FirstName: "Ada", Role: RoleStudent, Status: StatusActive}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*User)
		field  string
	}{
		{"empty id", func(u *User) { u.ID = "" }, "id"},
		{"empty first name", func(u *User) { u.FirstName = "" }, "firstName"},
		{"unknown role", func(u *User) { u.Role = Role(9) }, "role"},
		{"unknown status", func(u *User) { u.Status = Status(9) }, "status"},
		{"birthday day out of range", func(u *User) { u.Birthday = Date{Day: 32, Month: 1, Year: 2000} }, "birthday"},
		{"birthday month out of range", func(u *User) { u.Birthday = Date{Day: 1, Month: 13, Year: 2000} }, "birthday"},
		{"birthday year too small", func(u *User) { u.Birthday = Date{Day: 1, Month: 1, Year: 1800} }, "birthday"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := valid
			tt.mutate(&u)
			err := u.Validate()
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestStudentValidateRole(t *testing.T) {
	s := Student{User: User{ID: "s1", FirstName: "Ada", Role: RoleTeacher, Status: StatusActive}}
	var verr *ValidationError
	require.ErrorAs(t, s.Validate(), &verr)
	assert.Equal(t, "role", verr.Field)

	s.Role = RoleStudent
	assert.NoError(t, s.Validate())
}

func TestTeacherValidate(t *testing.T) {
	tt := Teacher{User: User{ID: "t1", FirstName: "Grace", Role: RoleTeacher, Status: StatusActive}}
	require.NoError(t, tt.Validate())

	tt.ExperienceYears = -1
	var verr *ValidationError
	require.ErrorAs(t, tt.Validate(), &verr)
	assert.Equal(t, "experienceYears", verr.Field)

	tt.ExperienceYears = 0
	tt.Role = RoleStudent
	require.ErrorAs(t, tt.Validate(), &verr)
	assert.Equal(t, "role", verr.Field)
}
