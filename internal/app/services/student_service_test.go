package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuslink/jobportal/internal/app/models"
	"github.com/campuslink/jobportal/internal/app/models/dto"
	"github.com/campuslink/jobportal/internal/pkg/apperrors"
)

func ptr[T any](v T) *T { return &v }

// --- reconcileEducations ---

type fakeEducationStore struct {
	nextID  int64
	created []*models.Education
	updated []*models.Education
	kept    []int64
}

func (f *fakeEducationStore) CreateEducation(_ context.Context, e *models.Education) error {
	f.nextID++
	e.ID = f.nextID
	f.created = append(f.created, e)
	return nil
}

func (f *fakeEducationStore) UpdateEducation(_ context.Context, e *models.Education) error {
	f.updated = append(f.updated, e)
	return nil
}

func (f *fakeEducationStore) DeleteEducationsExcept(_ context.Context, _ int64, keepIDs []int64) error {
	f.kept = keepIDs
	return nil
}

func TestReconcileEducations(t *testing.T) {
	store := &fakeEducationStore{nextID: 100}

	inputs := []dto.EducationInput{
		{ID: ptr(int64(5)), Institution: "Hill School", Degree: "Secondary", StartYear: 2018},
		{Institution: "City College", Degree: "B.Sc", StartYear: 2021, EndYear: ptr(2024)},
	}

	err := reconcileEducations(context.Background(), store, 9, inputs)
	require.NoError(t, err)

	require.Len(t, store.updated, 1)
	assert.Equal(t, int64(5), store.updated[0].ID)
	assert.Equal(t, int64(9), store.updated[0].StudentID)
	assert.Equal(t, "Hill School", store.updated[0].Institution)

	require.Len(t, store.created, 1)
	assert.Equal(t, int64(101), store.created[0].ID)
	assert.Equal(t, "City College", store.created[0].Institution)

	assert.Equal(t, []int64{5, 101}, store.kept, "ids absent from the submitted array are deleted")
}

func TestReconcileEducationsEmptyArrayDeletesAll(t *testing.T) {
	store := &fakeEducationStore{}
	err := reconcileEducations(context.Background(), store, 9, []dto.EducationInput{})
	require.NoError(t, err)
	assert.Empty(t, store.created)
	assert.Empty(t, store.updated)
	assert.Empty(t, store.kept)
}

// --- reconcileCertifications ---

type fakeCertificationStore struct {
	nextID  int64
	created []*models.Certification
	updated []*models.Certification
	kept    []int64
}

func (f *fakeCertificationStore) CreateCertification(_ context.Context, c *models.Certification) error {
	f.nextID++
	c.ID = f.nextID
	f.created = append(f.created, c)
	return nil
}

func (f *fakeCertificationStore) UpdateCertification(_ context.Context, c *models.Certification) error {
	f.updated = append(f.updated, c)
	return nil
}

func (f *fakeCertificationStore) DeleteCertificationsExcept(_ context.Context, _ int64, keepIDs []int64) error {
	f.kept = keepIDs
	return nil
}

func TestReconcileCertifications(t *testing.T) {
	store := &fakeCertificationStore{nextID: 200}

	inputs := []dto.CertificationInput{
		{ID: ptr(int64(3)), Name: "First Aid", IssueDate: ptr("15/06/2024")},
		{Name: "Typing", IssuingBody: ptr("NIELIT")},
	}

	err := reconcileCertifications(context.Background(), store, 9, inputs)
	require.NoError(t, err)

	require.Len(t, store.updated, 1)
	require.NotNil(t, store.updated[0].IssueDate)
	assert.Equal(t, "2024-06-15", store.updated[0].IssueDate.Format("2006-01-02"))

	require.Len(t, store.created, 1)
	assert.Nil(t, store.created[0].IssueDate)

	assert.Equal(t, []int64{3, 201}, store.kept)
}

func TestReconcileCertificationsRejectsBadIssueDate(t *testing.T) {
	store := &fakeCertificationStore{}
	inputs := []dto.CertificationInput{{Name: "First Aid", IssueDate: ptr("sometime last year")}}

	err := reconcileCertifications(context.Background(), store, 9, inputs)
	require.Error(t, err)

	var customErr *apperrors.CustomError
	require.ErrorAs(t, err, &customErr)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
	assert.Empty(t, store.created)
	assert.Nil(t, store.kept, "reconciliation stops before any delete")
}
