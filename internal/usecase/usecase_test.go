package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"portfolio-backend/internal/domain"
	"portfolio-backend/internal/usecase"
	"portfolio-backend/pkg/apperror"
	"portfolio-backend/pkg/email"
	"portfolio-backend/pkg/security"
	"portfolio-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// Mock Dispatcher
type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) Send(ctx context.Context, data email.ContactEmailData) (string, error) {
	args := m.Called(ctx, data)
	return args.String(0), args.Error(1)
}

func newContactUsecase(d usecase.ContactDispatcher, secLog *security.SecurityLogger) domain.ContactUsecase {
	v := validator.New()
	return usecase.NewContactUsecase(validation.NewFieldValidator(v), validation.NewEmailValidator(v), d, secLog)
}

func asAppError(t *testing.T, err error) *apperror.AppError {
	t.Helper()
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr), "expected *apperror.AppError, got %T", err)
	return appErr
}

func TestSendContactMessage_Success(t *testing.T) {
	mockDispatcher := new(MockDispatcher)
	uc := newContactUsecase(mockDispatcher, nil)

	mockDispatcher.On("Send", mock.Anything, email.ContactEmailData{
		FirstName: "John",
		LastName:  "Doe",
		Email:     "john.doe@gmail.com",
		Message:   "A valid ten-plus char message.",
	}).Return("msg-1", nil).Once()

	err := uc.SendContactMessage(context.Background(), &domain.ContactRequest{
		FirstName: "John",
		LastName:  "Doe",
		Email:     "John.Doe@Gmail.com ",
		Message:   "A valid ten-plus char message.",
	})

	assert.NoError(t, err)
	mockDispatcher.AssertExpectations(t)
}

func TestSendContactMessage_SanitizesBeforeDispatch(t *testing.T) {
	mockDispatcher := new(MockDispatcher)
	uc := newContactUsecase(mockDispatcher, nil)

	mockDispatcher.On("Send", mock.Anything, mock.MatchedBy(func(d email.ContactEmailData) bool {
		return d.FirstName == "&lt;b&gt;Jo&lt;&#x2F;b&gt;" &&
			d.LastName == "" &&
			d.Message == "Hi &quot;there&quot; &amp; &#x27;you&#x27;"
	})).Return("msg-2", nil).Once()

	err := uc.SendContactMessage(context.Background(), &domain.ContactRequest{
		FirstName: "  <b>Jo</b>",
		Email:     "jo@example.com",
		Message:   `Hi "there" & 'you'  `,
	})

	assert.NoError(t, err)
	mockDispatcher.AssertExpectations(t)
}

func TestSendContactMessage_ValidationFailures(t *testing.T) {
	t.Run("Should reject a short first name", func(t *testing.T) {
		mockDispatcher := new(MockDispatcher)
		uc := newContactUsecase(mockDispatcher, nil)

		err := uc.SendContactMessage(context.Background(), &domain.ContactRequest{
			FirstName: "J",
			Email:     "a@b.com",
			Message:   "long enough message here",
		})

		appErr := asAppError(t, err)
		assert.Equal(t, http.StatusBadRequest, appErr.Code)
		assert.Equal(t, "Validation failed", appErr.Label)
		assert.Contains(t, appErr.Message, "between 2 and 50 characters")
		mockDispatcher.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})

	t.Run("Should join every violation", func(t *testing.T) {
		mockDispatcher := new(MockDispatcher)
		uc := newContactUsecase(mockDispatcher, nil)

		err := uc.SendContactMessage(context.Background(), &domain.ContactRequest{
			FirstName: "J",
			Message:   "short",
		})

		appErr := asAppError(t, err)
		assert.Equal(t, validation.MsgRequiredFields+", "+validation.MsgFirstNameLength+", "+validation.MsgMessageTooShort, appErr.Message)
	})

	t.Run("Should reject a disposable address after field checks", func(t *testing.T) {
		mockDispatcher := new(MockDispatcher)
		uc := newContactUsecase(mockDispatcher, nil)

		err := uc.SendContactMessage(context.Background(), &domain.ContactRequest{
			FirstName: "John",
			Email:     "test@10minutemail.com",
			Message:   "A valid ten-plus char message.",
		})

		appErr := asAppError(t, err)
		assert.Equal(t, http.StatusBadRequest, appErr.Code)
		assert.Equal(t, "Invalid email address", appErr.Label)
		assert.Equal(t, validation.MsgDisposableEmail, appErr.Message)
		mockDispatcher.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})

	t.Run("Should suggest a correction for a typo domain", func(t *testing.T) {
		uc := newContactUsecase(new(MockDispatcher), nil)

		err := uc.SendContactMessage(context.Background(), &domain.ContactRequest{
			FirstName: "John",
			Email:     "user@gmial.com",
			Message:   "A valid ten-plus char message.",
		})

		appErr := asAppError(t, err)
		assert.Equal(t, "Did you mean user@gmail.com?", appErr.Message)
	})
}

func TestSendContactMessage_DispatchFailure(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	secLog := security.NewSecurityLoggerFromZap(zap.New(core), "portfolio-backend", "test")

	transport := email.NewMemoryTransport()
	transport.FailWith(errors.New("smtp: 535 authentication failed"))
	dispatcher := email.NewDispatcher(transport, "me@example.com", "inbox@example.com")
	uc := newContactUsecase(dispatcher, secLog)

	ctx := context.WithValue(context.Background(), domain.KeyRequestID, "req-123")
	err := uc.SendContactMessage(ctx, &domain.ContactRequest{
		FirstName: "John",
		LastName:  "Doe",
		Email:     "john.doe@gmail.com",
		Message:   "A valid ten-plus char message.",
	})

	appErr := asAppError(t, err)
	assert.Equal(t, http.StatusInternalServerError, appErr.Code)
	assert.Equal(t, "Failed to send email", appErr.Label)
	assert.Equal(t, "An error occurred while processing your request. Please try again later.", appErr.Message)
	assert.NotContains(t, appErr.Message, "535")
	assert.ErrorIs(t, err, email.ErrDispatchFailed)

	entries := logs.FilterMessage(string(security.EventDispatchFailed)).All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "req-123", fields["request_id"])
	assert.Equal(t, "j***@gmail.com", fields["subject_value"])
	assert.Contains(t, fields["details"], "535 authentication failed")
	assert.Empty(t, transport.Messages())
}

func TestSendContactMessage_DeliversThroughMemoryTransport(t *testing.T) {
	transport := email.NewMemoryTransport()
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	dispatcher := email.NewDispatcher(transport, "me@example.com", "inbox@example.com", email.WithClock(func() time.Time { return now }))
	uc := newContactUsecase(dispatcher, nil)

	err := uc.SendContactMessage(context.Background(), &domain.ContactRequest{
		FirstName: "John",
		LastName:  "Doe",
		Email:     "john.doe@gmail.com",
		Message:   "A valid ten-plus char message.",
	})
	require.NoError(t, err)

	sent := transport.Messages()
	require.Len(t, sent, 1)
	assert.Equal(t, "Portfolio Contact Form - Message from John Doe", sent[0].Subject)
	assert.Equal(t, "john.doe@gmail.com", sent[0].ReplyTo)
	assert.Equal(t, "inbox@example.com", sent[0].To)
}

func TestSanitizeContact(t *testing.T) {
	got := usecase.SanitizeContact(&domain.ContactRequest{
		FirstName: " <script>",
		LastName:  "O'Brien ",
		Email:     " USER@Example.COM ",
		Message:   "a/b",
	})

	assert.Equal(t, domain.SanitizedContact{
		FirstName: "&lt;script&gt;",
		LastName:  "O&#x27;Brien",
		Email:     "user@example.com",
		Message:   "a&#x2F;b",
	}, got)
}

func TestValidateEmail(t *testing.T) {
	uc := usecase.NewEmailUsecase(validation.NewEmailValidator(nil))
	ctx := context.Background()

	t.Run("Should accept a valid address after trimming and lower-casing", func(t *testing.T) {
		result := uc.ValidateEmail(ctx, "  John.Doe@GMAIL.com ")
		assert.True(t, result.IsValid)
		assert.Empty(t, result.Error)
	})

	t.Run("Should reject disposable domains", func(t *testing.T) {
		result := uc.ValidateEmail(ctx, "test@10minutemail.com")
		assert.False(t, result.IsValid)
		assert.Contains(t, result.Error, "Disposable email addresses are not allowed")
	})

	t.Run("Should suggest the intended domain", func(t *testing.T) {
		result := uc.ValidateEmail(ctx, "user@gmial.com")
		assert.False(t, result.IsValid)
		assert.Contains(t, result.Error, "gmail.com")
	})
}

func TestHealthCheck(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	uc := usecase.NewHealthUsecase(func() time.Time { return now })

	status := uc.Check(context.Background())
	assert.Equal(t, "healthy", status.Status)
	assert.Equal(t, "Portfolio Backend Server is running!", status.Message)
	assert.Equal(t, "2024-01-02T03:04:05Z", status.Timestamp)
}
