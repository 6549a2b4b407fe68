package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/avdeevsm/go-vault-core/internal/config"
	"github.com/avdeevsm/go-vault-core/internal/crypto"
	"github.com/avdeevsm/go-vault-core/internal/logger"
	"github.com/avdeevsm/go-vault-core/internal/mock"
	"github.com/avdeevsm/go-vault-core/internal/session"
	"github.com/avdeevsm/go-vault-core/models"
)

func newTestRotationSvc(t *testing.T, ctrl *gomock.Controller) (*rotationService, *mock.MockEntryRepository, crypto.CipherEngine) {
	t.Helper()

	engine, err := crypto.NewCipherEngine(crypto.SuiteAESGCM)
	require.NoError(t, err)

	mockRepo := mock.NewMockEntryRepository(ctrl)
	svc := NewRotationService(
		mockRepo,
		engine,
		session.NewRegistry(time.Minute),
		session.NewUserLocks(),
		logger.Nop(),
	).(*rotationService)

	return svc, mockRepo, engine
}

func TestRotationService_Rotate_SessionRequired(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, engine := newTestRotationSvc(t, ctrl)
	currentKey := testKey(0xAA, engine.KeySize())
	newKey := testKey(0xBB, engine.KeySize())

	_, err := svc.Rotate(context.Background(), 1, models.RotateRequest{
		CurrentKey: encodeKey(currentKey),
		NewKey:     encodeKey(newKey),
	})
	assert.ErrorIs(t, err, ErrSessionRequired)
}

func TestRotationService_Rotate_KeyMismatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, engine := newTestRotationSvc(t, ctrl)
	sessionKey := testKey(0xAA, engine.KeySize())
	otherKey := testKey(0xCC, engine.KeySize())
	newKey := testKey(0xBB, engine.KeySize())

	svc.sessions.Create(1, sessionKey)

	_, err := svc.Rotate(context.Background(), 1, models.RotateRequest{
		CurrentKey: encodeKey(otherKey),
		NewKey:     encodeKey(newKey),
	})
	assert.ErrorIs(t, err, ErrKeyMismatch)

	// the session stays bound to the original key
	assert.Equal(t, sessionKey, svc.sessions.EncryptionKey(1))
}

func TestRotationService_Rotate_MalformedKeys(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, engine := newTestRotationSvc(t, ctrl)
	sessionKey := testKey(0xAA, engine.KeySize())
	svc.sessions.Create(1, sessionKey)

	_, err := svc.Rotate(context.Background(), 1, models.RotateRequest{
		CurrentKey: "not-base64-%%",
		NewKey:     encodeKey(testKey(0xBB, engine.KeySize())),
	})
	assert.ErrorIs(t, err, ErrInvalidKeyFormat)

	_, err = svc.Rotate(context.Background(), 1, models.RotateRequest{
		CurrentKey: encodeKey(sessionKey),
		NewKey:     encodeKey([]byte("short")),
	})
	assert.ErrorIs(t, err, ErrInvalidKeyFormat)
}

func TestRotationService_Rotate_FullRotation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, engine := newTestRotationSvc(t, ctrl)
	currentKey := testKey(0xAA, engine.KeySize())
	newKey := testKey(0xBB, engine.KeySize())
	svc.sessions.Create(1, currentKey)

	entries := []models.VaultEntry{
		sealedEntry(t, engine, currentKey, "entry-1"),
		sealedEntry(t, engine, currentKey, "entry-2"),
	}

	mockRepo.EXPECT().GetAllEntries(gomock.Any(), int64(1)).Return(entries, nil)
	mockRepo.EXPECT().UpdateEntriesBatch(gomock.Any(), int64(1), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int64, rotated []models.VaultEntry) error {
			require.Len(t, rotated, 2)
			for _, entry := range rotated {
				// every rotated triple must open under the new key
				plaintext, err := engine.Decrypt(entry.Ciphertext, entry.IV, entry.AuthTag, newKey)
				require.NoError(t, err)
				assert.JSONEq(t, `{"title":"example.com"}`, string(plaintext))
			}
			return nil
		})

	result, err := svc.Rotate(context.Background(), 1, models.RotateRequest{
		CurrentKey: encodeKey(currentKey),
		NewKey:     encodeKey(newKey),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"entry-1", "entry-2"}, result.RotatedIDs)
	assert.Empty(t, result.SkippedIDs)

	// the session is rebound to the new key
	assert.Equal(t, newKey, svc.sessions.EncryptionKey(1))
}

func TestRotationService_Rotate_SkipsUnreadableEntries(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, engine := newTestRotationSvc(t, ctrl)
	currentKey := testKey(0xAA, engine.KeySize())
	strayKey := testKey(0xCC, engine.KeySize())
	newKey := testKey(0xBB, engine.KeySize())
	svc.sessions.Create(1, currentKey)

	entries := []models.VaultEntry{
		sealedEntry(t, engine, currentKey, "readable"),
		sealedEntry(t, engine, strayKey, "stray"),
	}

	mockRepo.EXPECT().GetAllEntries(gomock.Any(), int64(1)).Return(entries, nil)
	mockRepo.EXPECT().UpdateEntriesBatch(gomock.Any(), int64(1), gomock.Len(1)).Return(nil)

	result, err := svc.Rotate(context.Background(), 1, models.RotateRequest{
		CurrentKey: encodeKey(currentKey),
		NewKey:     encodeKey(newKey),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"readable"}, result.RotatedIDs)
	assert.Equal(t, []string{"stray"}, result.SkippedIDs)
}

func TestRotationService_Rotate_Ineffective(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, engine := newTestRotationSvc(t, ctrl)
	currentKey := testKey(0xAA, engine.KeySize())
	strayKey := testKey(0xCC, engine.KeySize())
	newKey := testKey(0xBB, engine.KeySize())
	svc.sessions.Create(1, currentKey)

	entries := []models.VaultEntry{sealedEntry(t, engine, strayKey, "stray")}

	// no batch write happens when nothing rotated
	mockRepo.EXPECT().GetAllEntries(gomock.Any(), int64(1)).Return(entries, nil)

	_, err := svc.Rotate(context.Background(), 1, models.RotateRequest{
		CurrentKey: encodeKey(currentKey),
		NewKey:     encodeKey(newKey),
	})
	assert.ErrorIs(t, err, ErrRotationIneffective)

	// the session stays on the old key
	assert.Equal(t, currentKey, svc.sessions.EncryptionKey(1))
}

func TestRotationService_Rotate_EmptyVault(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, engine := newTestRotationSvc(t, ctrl)
	currentKey := testKey(0xAA, engine.KeySize())
	newKey := testKey(0xBB, engine.KeySize())
	svc.sessions.Create(1, currentKey)

	mockRepo.EXPECT().GetAllEntries(gomock.Any(), int64(1)).Return([]models.VaultEntry{}, nil)
	mockRepo.EXPECT().UpdateEntriesBatch(gomock.Any(), int64(1), gomock.Len(0)).Return(nil)

	result, err := svc.Rotate(context.Background(), 1, models.RotateRequest{
		CurrentKey: encodeKey(currentKey),
		NewKey:     encodeKey(newKey),
	})
	require.NoError(t, err)
	assert.Zero(t, result.Rotated())
	assert.Zero(t, result.Skipped())

	// an empty vault still rebinds the session to the new key
	assert.Equal(t, newKey, svc.sessions.EncryptionKey(1))
}

// TestRotationService_Rotate_OldKeyStopsUnlocking drives rotation and unlock
// against the same registry: after rotating three entries from one key to
// another, the old key must fail unlock verification against the rewritten
// ciphertext and the new key must succeed.
func TestRotationService_Rotate_OldKeyStopsUnlocking(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine, err := crypto.NewCipherEngine(crypto.SuiteAESGCM)
	require.NoError(t, err)

	sessions := session.NewRegistry(time.Minute)
	locks := session.NewUserLocks()
	mockEntries := mock.NewMockEntryRepository(ctrl)

	mockUsers := mock.NewMockUserRepository(ctrl)
	mockUsers.EXPECT().
		FindUserByID(gomock.Any(), int64(1)).
		Return(models.User{UserID: 1}, nil).
		AnyTimes()

	rotateSvc := NewRotationService(mockEntries, engine, sessions, locks, logger.Nop()).(*rotationService)
	unlockSvc := NewUnlockService(
		mockUsers, mockEntries, engine, sessions,
		session.NewAttemptLimiter(10, time.Minute), locks,
		config.Unlock{}, logger.Nop(),
	).(*unlockService)

	oldKey := testKey(0xAA, engine.KeySize())
	newKey := testKey(0xBB, engine.KeySize())

	sealed := []models.VaultEntry{
		sealedEntry(t, engine, oldKey, "entry-1"),
		sealedEntry(t, engine, oldKey, "entry-2"),
		sealedEntry(t, engine, oldKey, "entry-3"),
	}

	mockEntries.EXPECT().GetAnyEntry(gomock.Any(), int64(1)).Return(sealed[0], nil)
	_, err = unlockSvc.Unlock(context.Background(), 1, models.UnlockRequest{Key: encodeKey(oldKey)})
	require.NoError(t, err)

	var rotated []models.VaultEntry
	mockEntries.EXPECT().GetAllEntries(gomock.Any(), int64(1)).Return(sealed, nil)
	mockEntries.EXPECT().
		UpdateEntriesBatch(gomock.Any(), int64(1), gomock.Len(3)).
		DoAndReturn(func(_ context.Context, _ int64, entries []models.VaultEntry) error {
			rotated = entries
			return nil
		})

	result, err := rotateSvc.Rotate(context.Background(), 1, models.RotateRequest{
		CurrentKey: encodeKey(oldKey),
		NewKey:     encodeKey(newKey),
	})
	require.NoError(t, err)
	require.Equal(t, 3, result.Rotated())
	require.Zero(t, result.Skipped())

	// the old key no longer authenticates against the rewritten ciphertext
	mockEntries.EXPECT().GetAnyEntry(gomock.Any(), int64(1)).Return(rotated[0], nil)
	_, err = unlockSvc.Unlock(context.Background(), 1, models.UnlockRequest{Key: encodeKey(oldKey)})
	assert.ErrorIs(t, err, ErrInvalidKey)

	// the new key does
	mockEntries.EXPECT().GetAnyEntry(gomock.Any(), int64(1)).Return(rotated[0], nil)
	_, err = unlockSvc.Unlock(context.Background(), 1, models.UnlockRequest{Key: encodeKey(newKey)})
	require.NoError(t, err)
	assert.Equal(t, newKey, sessions.EncryptionKey(1))
}
