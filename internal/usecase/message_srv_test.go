package usecase

import (
	"context"
	"testing"

	"hypnos-booking/internal/data/entity"
	"hypnos-booking/internal/data/repository"
	"hypnos-booking/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// --- Mock repositories for messages ---

type mockFacilityRepo struct {
	repository.FacilityRepository
	facilities map[uuid.UUID]*entity.Facility
}

func (m *mockFacilityRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Facility, error) {
	return m.facilities[id], nil
}

type mockFeedbackTypeRepo struct {
	repository.FeedbackTypeRepository
	types map[uuid.UUID]*entity.FeedbackType
}

func (m *mockFeedbackTypeRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.FeedbackType, error) {
	return m.types[id], nil
}

type mockMessageRepo struct {
	repository.MessageRepository
	created []*entity.Message
}

func (m *mockMessageRepo) Create(ctx context.Context, message *entity.Message) error {
	m.created = append(m.created, message)
	return nil
}

type messageFixture struct {
	svc          MessageService
	messages     *mockMessageRepo
	facility     *entity.Facility
	feedbackType *entity.FeedbackType
}

func newMessageFixture() *messageFixture {
	facility := &entity.Facility{Base: entity.Base{ID: uuid.New()}, Name: "Hypnos Paris"}
	feedbackType := &entity.FeedbackType{Base: entity.Base{ID: uuid.New()}, Title: "Complaint"}
	messages := &mockMessageRepo{}

	repo := &repository.Repository{
		Facility:     &mockFacilityRepo{facilities: map[uuid.UUID]*entity.Facility{facility.ID: facility}},
		FeedbackType: &mockFeedbackTypeRepo{types: map[uuid.UUID]*entity.FeedbackType{feedbackType.ID: feedbackType}},
		Message:      messages,
	}

	return &messageFixture{
		svc:          NewMessageService(repo, zap.NewNop()),
		messages:     messages,
		facility:     facility,
		feedbackType: feedbackType,
	}
}

func validMessage() *request.MessageRequest {
	return &request.MessageRequest{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@example.com",
		Text:      "The view was lovely.",
	}
}

func TestSendMessage(t *testing.T) {
	f := newMessageFixture()
	req := validMessage()
	req.FacilityID = strPtr(f.facility.ID.String())
	req.FeedbackTypeID = strPtr(f.feedbackType.ID.String())

	resp, err := f.svc.SendMessage(context.Background(), req)

	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	require.Len(t, f.messages.created, 1)
	assert.Equal(t, f.facility.ID, *f.messages.created[0].FacilityID)
	assert.Equal(t, f.feedbackType.ID, *f.messages.created[0].FeedbackTypeID)
}

func TestSendMessage_WithoutReferences(t *testing.T) {
	f := newMessageFixture()

	_, err := f.svc.SendMessage(context.Background(), validMessage())

	require.NoError(t, err)
	require.Len(t, f.messages.created, 1)
	assert.Nil(t, f.messages.created[0].FacilityID)
}

func TestSendMessage_UnknownFacility(t *testing.T) {
	f := newMessageFixture()
	req := validMessage()
	req.FacilityID = strPtr(uuid.NewString())

	_, err := f.svc.SendMessage(context.Background(), req)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	assert.Empty(t, f.messages.created)
}

func TestSendMessage_DeletedFeedbackType(t *testing.T) {
	f := newMessageFixture()
	f.feedbackType.IsDeleted = true
	req := validMessage()
	req.FeedbackTypeID = strPtr(f.feedbackType.ID.String())

	_, err := f.svc.SendMessage(context.Background(), req)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSendMessage_ValidationFailed(t *testing.T) {
	f := newMessageFixture()
	req := validMessage()
	req.Email = "not-an-email"

	_, err := f.svc.SendMessage(context.Background(), req)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}
