package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuslink/jobportal/internal/app/models"
	"github.com/campuslink/jobportal/internal/pkg/apperrors"
	"github.com/campuslink/jobportal/internal/pkg/auth"
	"github.com/campuslink/jobportal/internal/pkg/spreadsheet"
)

func makeRows(headers []string, data ...[]string) []spreadsheet.Row {
	rows := make([]spreadsheet.Row, 0, len(data))
	for i, cells := range data {
		values := map[string]string{}
		for j, h := range headers {
			if j < len(cells) {
				values[h] = cells[j]
			} else {
				values[h] = ""
			}
		}
		rows = append(rows, spreadsheet.Row{Number: i + 2, Values: values})
	}
	return rows
}

// --- importUsers ---

type fakeUserStore struct {
	existing   map[string]bool
	created    []*models.User
	students   []*models.Student
	schools    []*models.School
	failOn     string
	profileErr error
}

func (f *fakeUserStore) EmailExists(_ context.Context, email string) (bool, error) {
	return f.existing[email], nil
}

func (f *fakeUserStore) Create(_ context.Context, user *models.User) error {
	if user.Email == f.failOn {
		return errors.New("db down")
	}
	f.created = append(f.created, user)
	return nil
}

func (f *fakeUserStore) CreateStudent(_ context.Context, student *models.Student) error {
	if f.profileErr != nil {
		return f.profileErr
	}
	f.students = append(f.students, student)
	return nil
}

func (f *fakeUserStore) CreateSchool(_ context.Context, school *models.School) error {
	if f.profileErr != nil {
		return f.profileErr
	}
	f.schools = append(f.schools, school)
	return nil
}

type fakeMailer struct {
	sent    []string
	sendErr error
}

func (f *fakeMailer) Send(_ context.Context, toEmail, _ string, _ map[string]string) error {
	f.sent = append(f.sent, toEmail)
	return f.sendErr
}

func TestImportUsers(t *testing.T) {
	store := &fakeUserStore{existing: map[string]bool{"dup@school.edu": true}}
	mailer := &fakeMailer{}

	rows := makeRows([]string{"name", "email"},
		[]string{"Asha Verma", "asha@school.edu"},
		[]string{"", "noname@school.edu"},
		[]string{"Bad Email", "not-an-email"},
		[]string{"Dup User", "DUP@school.edu"},
		[]string{"Ravi Kumar", "ravi@school.edu"},
	)

	result := importUsers(context.Background(), rows, models.RoleStudent, store, mailer)

	assert.Equal(t, 2, result.UploadedCount)
	assert.Equal(t, 3, result.FailedCount)
	require.Len(t, result.FailedDetails, 3)
	assert.Equal(t, 3, result.FailedDetails[0].Row)
	assert.Equal(t, "name is required", result.FailedDetails[0].Reason)
	assert.Equal(t, "email is not valid", result.FailedDetails[1].Reason)
	assert.Equal(t, "user already exists", result.FailedDetails[2].Reason)

	require.Len(t, store.created, 2)
	created := store.created[0]
	assert.Equal(t, "asha@school.edu", created.Email, "email is lowercased")
	assert.Equal(t, models.RoleStudent, created.RoleType)
	assert.True(t, created.IsActive)
	assert.NotEmpty(t, created.Password)
	assert.NotEqual(t, "asha@school.edu", created.Password, "password is stored hashed")

	assert.Equal(t, []string{"asha@school.edu", "ravi@school.edu"}, mailer.sent)

	require.Len(t, store.students, 2, "every imported student gets a profile row")
	assert.Equal(t, "Asha", store.students[0].FirstName)
	assert.Equal(t, "Verma", store.students[0].LastName)
}

// Imported students must be resolvable by the mark upload before they ever
// log in, which requires the students row to exist from the import.
func TestImportUsersCreatesSchoolProfiles(t *testing.T) {
	store := &fakeUserStore{}
	rows := makeRows([]string{"name", "email"}, []string{"Northside High", "office@northside.edu"})

	result := importUsers(context.Background(), rows, models.RoleSchool, store, &fakeMailer{})

	assert.Equal(t, 1, result.UploadedCount)
	require.Len(t, store.schools, 1)
	assert.Equal(t, "Northside High", store.schools[0].Name)
	assert.Empty(t, store.students)
}

func TestImportUsersProfileFailureFailsRow(t *testing.T) {
	store := &fakeUserStore{profileErr: errors.New("db down")}
	mailer := &fakeMailer{}
	rows := makeRows([]string{"name", "email"}, []string{"Asha Verma", "asha@school.edu"})

	result := importUsers(context.Background(), rows, models.RoleStudent, store, mailer)

	assert.Equal(t, 0, result.UploadedCount)
	require.Len(t, result.FailedDetails, 1)
	assert.Equal(t, "profile create failed", result.FailedDetails[0].Reason)
	assert.Empty(t, mailer.sent, "no welcome email for a failed row")
}

func TestImportUsersEmailFailureStillCounts(t *testing.T) {
	store := &fakeUserStore{}
	mailer := &fakeMailer{sendErr: errors.New("smtp down")}

	rows := makeRows([]string{"name", "email"}, []string{"Asha", "asha@school.edu"})
	result := importUsers(context.Background(), rows, models.RoleStudent, store, mailer)

	assert.Equal(t, 1, result.UploadedCount, "a lost welcome email is not a failed row")
	assert.Equal(t, 0, result.FailedCount)
}

func TestImportUsersCreateRaceReadsAsDuplicate(t *testing.T) {
	store := &fakeUserStore{failOn: "race@school.edu"}
	store.existing = map[string]bool{}

	rows := makeRows([]string{"name", "email"}, []string{"Race", "race@school.edu"})
	result := importUsers(context.Background(), rows, models.RoleSchool, store, &fakeMailer{})

	assert.Equal(t, 0, result.UploadedCount)
	require.Len(t, result.FailedDetails, 1)
	assert.Equal(t, "create failed", result.FailedDetails[0].Reason)
}

// --- importMarks ---

type fakeMarkStore struct {
	students map[string]int64
	saved    []*models.SkillAssessment
}

func (f *fakeMarkStore) FindStudentIDByEmail(_ context.Context, email string) (int64, error) {
	if id, ok := f.students[email]; ok {
		return id, nil
	}
	return 0, apperrors.ErrStudentNotFound
}

func (f *fakeMarkStore) UpsertAssessment(_ context.Context, a *models.SkillAssessment) error {
	f.saved = append(f.saved, a)
	return nil
}

func TestImportMarks(t *testing.T) {
	skill := &models.CoreSkill{ID: 3, Name: "Communication", SubSkills: []string{"listening", "speaking"}}
	store := &fakeMarkStore{students: map[string]int64{"asha@school.edu": 11, "ravi@school.edu": 12}}

	rows := makeRows([]string{"email", "listening", "speaking"},
		[]string{"asha@school.edu", "8", "9"},
		[]string{"unknown@school.edu", "5", "5"},
		[]string{"ravi@school.edu", "7"},
		[]string{"not-an-email", "1", "2"},
	)

	result := importMarks(context.Background(), rows, skill, 10, store)

	assert.Equal(t, 1, result.UploadedCount)
	assert.Equal(t, 3, result.FailedCount)
	assert.Equal(t, "student not found", result.FailedDetails[0].Reason)
	assert.Equal(t, `missing mark for "speaking"`, result.FailedDetails[1].Reason)
	assert.Equal(t, "email is not valid", result.FailedDetails[2].Reason)

	require.Len(t, store.saved, 1)
	saved := store.saved[0]
	assert.Equal(t, int64(11), saved.StudentID)
	assert.Equal(t, int64(3), saved.CoreSkillID)
	assert.Equal(t, map[string]int{"listening": 8, "speaking": 9}, saved.SubSkillMarks)
}

func TestParseMarks(t *testing.T) {
	subSkills := []string{"listening", "speaking"}

	row := func(listening, speaking string) spreadsheet.Row {
		return spreadsheet.Row{Number: 2, Values: map[string]string{
			"listening": listening, "speaking": speaking,
		}}
	}

	marks, reason := parseMarks(row("0", "10"), subSkills, 10)
	assert.Empty(t, reason)
	assert.Equal(t, map[string]int{"listening": 0, "speaking": 10}, marks)

	_, reason = parseMarks(row("eight", "9"), subSkills, 10)
	assert.Equal(t, `mark for "listening" is not a number`, reason)

	_, reason = parseMarks(row("8", "11"), subSkills, 10)
	assert.Equal(t, `mark for "speaking" must be between 0 and 10`, reason)

	_, reason = parseMarks(row("-1", "9"), subSkills, 10)
	assert.Equal(t, `mark for "listening" must be between 0 and 10`, reason)
}

func TestNormalizeSubSkills(t *testing.T) {
	out := normalizeSubSkills([]string{" Listening ", "speaking", "LISTENING", "", "  "})
	assert.Equal(t, []string{"Listening", "speaking"}, out)
}

// Sanity check that the generated temp password round-trips through the
// same hasher the import uses.
func TestTempPasswordHashRoundTrip(t *testing.T) {
	pw, err := auth.GenerateTempPassword()
	require.NoError(t, err)
	hash, err := auth.HashPassword(pw)
	require.NoError(t, err)
	assert.True(t, auth.CheckPassword(hash, pw))
}
