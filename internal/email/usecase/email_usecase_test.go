package usecase

import (
	"testing"
	"time"

	activitydomain "assistant-backend/internal/activity/domain"
	"assistant-backend/internal/email/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memEmailRepo struct {
	emails map[string]*domain.Email
}

func newMemEmailRepo() *memEmailRepo {
	return &memEmailRepo{emails: make(map[string]*domain.Email)}
}

func (m *memEmailRepo) Create(email *domain.Email) error {
	if email.ID == "" {
		email.ID = uuid.New().String()
	}
	m.emails[email.ID] = email
	return nil
}

func (m *memEmailRepo) FindByID(id string) (*domain.Email, error) {
	return m.emails[id], nil
}

func (m *memEmailRepo) FindByUser(userID string, limit, offset int) ([]*domain.Email, int64, error) {
	var out []*domain.Email
	for _, e := range m.emails {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, int64(len(out)), nil
}

func (m *memEmailRepo) ExistsToAnySince(userID string, recipients []string, since time.Time) (bool, error) {
	return false, nil
}

func (m *memEmailRepo) Update(email *domain.Email) error {
	m.emails[email.ID] = email
	return nil
}

type memActivityRepo struct {
	entries []*activitydomain.ActivityLog
}

func (m *memActivityRepo) Create(entry *activitydomain.ActivityLog) error {
	m.entries = append(m.entries, entry)
	return nil
}

func (m *memActivityRepo) FindByUser(string, int, int) ([]*activitydomain.ActivityLog, int64, error) {
	return nil, 0, nil
}

func (m *memActivityRepo) CountByActionSince(string, activitydomain.Action, time.Time) (int64, error) {
	return 0, nil
}

func TestDraftLifecycle(t *testing.T) {
	t.Run("draft to sent sets the timestamp and logs", func(t *testing.T) {
		activities := &memActivityRepo{}
		uc := NewEmailUsecase(newMemEmailRepo(), activities)

		draft, err := uc.CreateDraft("user-1", DraftInput{Recipient: "alice@example.com", Subject: "Hi"})
		require.NoError(t, err)
		assert.Equal(t, domain.EmailStatusDraft, draft.Status)

		sent, err := uc.MarkSent("user-1", draft.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.EmailStatusSent, sent.Status)
		require.NotNil(t, sent.SentAt)

		require.Len(t, activities.entries, 2)
		assert.Equal(t, activitydomain.ActionEmailDrafted, activities.entries[0].Action)
		assert.Equal(t, activitydomain.ActionEmailSent, activities.entries[1].Action)
	})

	t.Run("sent email cannot change again", func(t *testing.T) {
		uc := NewEmailUsecase(newMemEmailRepo(), &memActivityRepo{})
		draft, err := uc.CreateDraft("user-1", DraftInput{Recipient: "alice@example.com", Subject: "Hi"})
		require.NoError(t, err)

		_, err = uc.MarkSent("user-1", draft.ID)
		require.NoError(t, err)

		_, err = uc.MarkSent("user-1", draft.ID)
		assert.ErrorIs(t, err, ErrInvalidTransition)
		_, err = uc.MarkFailed("user-1", draft.ID, "bounced")
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("failed keeps the reason", func(t *testing.T) {
		uc := NewEmailUsecase(newMemEmailRepo(), &memActivityRepo{})
		draft, err := uc.CreateDraft("user-1", DraftInput{Recipient: "alice@example.com", Subject: "Hi"})
		require.NoError(t, err)

		failed, err := uc.MarkFailed("user-1", draft.ID, "smtp timeout")
		require.NoError(t, err)
		assert.Equal(t, domain.EmailStatusFailed, failed.Status)
		assert.Equal(t, "smtp timeout", failed.Error)
	})

	t.Run("ownership is enforced", func(t *testing.T) {
		uc := NewEmailUsecase(newMemEmailRepo(), &memActivityRepo{})
		draft, err := uc.CreateDraft("user-1", DraftInput{Recipient: "alice@example.com", Subject: "Hi"})
		require.NoError(t, err)

		_, err = uc.MarkSent("user-2", draft.ID)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("unknown email", func(t *testing.T) {
		uc := NewEmailUsecase(newMemEmailRepo(), &memActivityRepo{})
		_, err := uc.MarkSent("user-1", "missing")
		assert.ErrorIs(t, err, ErrEmailNotFound)
	})
}
