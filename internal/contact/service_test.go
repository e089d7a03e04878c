package contact_test

import (
	"context"
	"database/sql"
	"testing"

	"clinic-api/internal/apperror"
	"clinic-api/internal/contact"
	contactdb "clinic-api/internal/contact/db"
	"clinic-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

// recordingPublisher captures submitted events; optionally fails.
type recordingPublisher struct {
	published []models.ContactSubmission
	err       error
}

func (p *recordingPublisher) PublishContactSubmitted(s models.ContactSubmission) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, s)
	return nil
}

func setupService(t *testing.T) (*contact.Service, *recordingPublisher) {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, "file::memory:?cache=shared")
	require.NoError(t, err)
	bunDB := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { bunDB.Close() })
	require.NoError(t, bunDB.ResetModel(context.Background(), (*models.ContactSubmission)(nil)))

	publisher := &recordingPublisher{}
	return contact.NewService(&contactdb.DB{Bun: bunDB}, publisher), publisher
}

func validRequest() models.ContactRequest {
	return models.ContactRequest{
		Name:    "Jay",
		Email:   "jay@example.com",
		Phone:   "9876543210",
		Subject: "Opening hours",
		Message: "Are you open on Sundays?",
	}
}

func TestSubmitAndList(t *testing.T) {
	service, publisher := setupService(t)

	submission, err := service.Submit(validRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, submission.ID)
	assert.Equal(t, "Jay", submission.Name)

	listed, err := service.List()
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, submission.ID, listed[0].ID)

	require.Len(t, publisher.published, 1)
	assert.Equal(t, submission.ID, publisher.published[0].ID)
}

func TestSubmitTrimsWhitespace(t *testing.T) {
	service, _ := setupService(t)

	req := validRequest()
	req.Name = "  Jay  "
	req.Subject = " Opening hours "

	submission, err := service.Submit(req)
	require.NoError(t, err)
	assert.Equal(t, "Jay", submission.Name)
	assert.Equal(t, "Opening hours", submission.Subject)
}

func TestSubmitValidation(t *testing.T) {
	service, publisher := setupService(t)

	_, err := service.Submit(models.ContactRequest{Email: "bad-email"})
	var validation *apperror.ValidationError
	require.ErrorAs(t, err, &validation)

	fields := make([]string, len(validation.Fields))
	for i, f := range validation.Fields {
		fields[i] = f.Field
	}
	assert.ElementsMatch(t, []string{"name", "email", "phone", "subject", "message"}, fields)
	assert.Empty(t, publisher.published)
}

func TestSubmitSurvivesPublishFailure(t *testing.T) {
	service, publisher := setupService(t)
	publisher.err = assert.AnError

	submission, err := service.Submit(validRequest())
	require.NoError(t, err)

	// Saved even though the event never went out.
	listed, err := service.List()
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, submission.ID, listed[0].ID)
}
