package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/HelaLetsGo/wheelstreet-api/internal/entity"
	"github.com/HelaLetsGo/wheelstreet-api/internal/infra/queue"
)

type LeadCreatorMock struct {
	mock.Mock
}

func (m *LeadCreatorMock) Insert(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

type QueueProducerMock struct {
	mock.Mock
}

func (m *QueueProducerMock) PublishLeadCaptured(ctx context.Context, payload queue.LeadCapturedPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

func TestCaptureLeadDefaults(t *testing.T) {
	repo := new(LeadCreatorMock)
	repo.On("Insert", mock.Anything, mock.MatchedBy(func(lead *entity.Lead) bool {
		return lead.Name == "Jonas" && lead.Status == entity.LeadStatusNew &&
			lead.Email == nil && lead.ID != ""
	})).Return(nil)

	uc := NewCaptureLeadUseCase(repo, nil)
	lead, err := uc.Execute(context.Background(), CaptureLeadInput{
		Name:  "  Jonas ",
		Phone: "+370 600 00000",
	})

	assert.NoError(t, err)
	assert.Equal(t, "Jonas", lead.Name)
	assert.Equal(t, entity.LeadStatusNew, lead.Status)
	repo.AssertExpectations(t)
}

func TestCaptureLeadCarriesAllOptionalFields(t *testing.T) {
	repo := new(LeadCreatorMock)
	repo.On("Insert", mock.Anything, mock.MatchedBy(func(lead *entity.Lead) bool {
		return lead.Notes != nil && *lead.Notes == "prefers evening calls" &&
			lead.Interest != nil && *lead.Interest == "buy" &&
			lead.Message != nil && *lead.Message == "call me"
	})).Return(nil)

	producer := new(QueueProducerMock)
	producer.On("PublishLeadCaptured", mock.Anything, mock.MatchedBy(func(p queue.LeadCapturedPayload) bool {
		return p.Notes == "prefers evening calls"
	})).Return(nil)

	uc := NewCaptureLeadUseCase(repo, producer)
	_, err := uc.Execute(context.Background(), CaptureLeadInput{
		Name:     "Jonas",
		Phone:    "+37060000000",
		Interest: "buy",
		Notes:    "prefers evening calls",
		Message:  "call me",
	})

	assert.NoError(t, err)
	repo.AssertExpectations(t)
	producer.AssertExpectations(t)
}

func TestCaptureLeadMissingPhoneWritesNothing(t *testing.T) {
	repo := new(LeadCreatorMock)

	uc := NewCaptureLeadUseCase(repo, nil)
	_, err := uc.Execute(context.Background(), CaptureLeadInput{Name: "Jonas"})

	var verrs ValidationErrors
	assert.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs, 1)
	assert.Equal(t, "phone", verrs[0].Field)
	repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestCaptureLeadInvalidEmail(t *testing.T) {
	repo := new(LeadCreatorMock)

	uc := NewCaptureLeadUseCase(repo, nil)
	_, err := uc.Execute(context.Background(), CaptureLeadInput{
		Name:  "Jonas",
		Phone: "+37060000000",
		Email: "not-an-email",
	})

	var verrs ValidationErrors
	assert.ErrorAs(t, err, &verrs)
	assert.Equal(t, "email", verrs[0].Field)
}

func TestCaptureLeadSurvivesBrokenQueue(t *testing.T) {
	repo := new(LeadCreatorMock)
	repo.On("Insert", mock.Anything, mock.Anything).Return(nil)

	producer := new(QueueProducerMock)
	producer.On("PublishLeadCaptured", mock.Anything, mock.Anything).
		Return(errors.New("broker down"))

	uc := NewCaptureLeadUseCase(repo, producer)
	lead, err := uc.Execute(context.Background(), CaptureLeadInput{
		Name:  "Jonas",
		Phone: "+37060000000",
	})

	assert.NoError(t, err)
	assert.NotNil(t, lead)
	producer.AssertExpectations(t)
}
