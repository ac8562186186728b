package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"workspace/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateWithCredential(ctx context.Context, user *model.User, passwordHash string) error {
	args := m.Called(ctx, user, passwordHash)
	return args.Error(0)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

// MockCredentialRepository is a mock implementation of CredentialRepository.
type MockCredentialRepository struct {
	mock.Mock
}

func (m *MockCredentialRepository) FindByUser(ctx context.Context, userID uuid.UUID, providerID string) (*model.Credential, error) {
	args := m.Called(ctx, userID, providerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Credential), args.Error(1)
}

// MockSessionRepository is a mock implementation of SessionRepository.
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Create(ctx context.Context, session *model.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepository) FindByTokenHash(ctx context.Context, tokenHash string) (*model.Session, error) {
	args := m.Called(ctx, tokenHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Session), args.Error(1)
}

func (m *MockSessionRepository) DeleteByTokenHash(ctx context.Context, tokenHash string) error {
	args := m.Called(ctx, tokenHash)
	return args.Error(0)
}

// MockRevocationList is a mock implementation of RevocationListInterface.
type MockRevocationList struct {
	mock.Mock
}

func (m *MockRevocationList) Revoke(ctx context.Context, tokenHash string, ttl time.Duration) error {
	args := m.Called(ctx, tokenHash, ttl)
	return args.Error(0)
}

func (m *MockRevocationList) IsRevoked(ctx context.Context, tokenHash string) (bool, error) {
	args := m.Called(ctx, tokenHash)
	return args.Bool(0), args.Error(1)
}

// memoryRevocationList is a working in-process revocation list.
type memoryRevocationList struct {
	revoked map[string]bool
}

func newMemoryRevocationList() *memoryRevocationList {
	return &memoryRevocationList{revoked: make(map[string]bool)}
}

func (l *memoryRevocationList) Revoke(ctx context.Context, tokenHash string, ttl time.Duration) error {
	l.revoked[tokenHash] = true
	return nil
}

func (l *memoryRevocationList) IsRevoked(ctx context.Context, tokenHash string) (bool, error) {
	return l.revoked[tokenHash], nil
}

// MockOrganizationRepository is a mock implementation of OrganizationRepository.
type MockOrganizationRepository struct {
	mock.Mock
}

func (m *MockOrganizationRepository) CreateWithOwner(ctx context.Context, org *model.Organization, ownerID uuid.UUID) (*model.OrganizationMember, error) {
	args := m.Called(ctx, org, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OrganizationMember), args.Error(1)
}

func (m *MockOrganizationRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]model.OrganizationWithRole, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.OrganizationWithRole), args.Error(1)
}

// MockMemberRepository is a mock implementation of MemberRepository.
type MockMemberRepository struct {
	mock.Mock
}

func (m *MockMemberRepository) FindByUserAndOrganization(ctx context.Context, userID, orgID uuid.UUID) (*model.OrganizationMember, error) {
	args := m.Called(ctx, userID, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OrganizationMember), args.Error(1)
}

func (m *MockMemberRepository) FindByIDInOrganization(ctx context.Context, id, orgID uuid.UUID) (*model.OrganizationMember, error) {
	args := m.Called(ctx, id, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OrganizationMember), args.Error(1)
}

func (m *MockMemberRepository) ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]model.OrganizationMember, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.OrganizationMember), args.Error(1)
}

func (m *MockMemberRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockInvitationRepository is a mock implementation of InvitationRepository.
type MockInvitationRepository struct {
	mock.Mock
}

func (m *MockInvitationRepository) Create(ctx context.Context, invitation *model.Invitation) error {
	args := m.Called(ctx, invitation)
	return args.Error(0)
}

func (m *MockInvitationRepository) FindByToken(ctx context.Context, token string) (*model.Invitation, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Invitation), args.Error(1)
}

func (m *MockInvitationRepository) FindByEmailAndOrganization(ctx context.Context, email string, orgID uuid.UUID) (*model.Invitation, error) {
	args := m.Called(ctx, email, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Invitation), args.Error(1)
}

func (m *MockInvitationRepository) ListActiveByEmail(ctx context.Context, email string, now time.Time) ([]model.Invitation, error) {
	args := m.Called(ctx, email, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Invitation), args.Error(1)
}

func (m *MockInvitationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockInvitationRepository) Accept(ctx context.Context, invitation *model.Invitation, userID uuid.UUID, addMember bool) error {
	args := m.Called(ctx, invitation, userID, addMember)
	return args.Error(0)
}

// MockOutlineRepository is a mock implementation of OutlineRepository.
type MockOutlineRepository struct {
	mock.Mock
}

func (m *MockOutlineRepository) ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]model.Outline, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Outline), args.Error(1)
}

func (m *MockOutlineRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Outline, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Outline), args.Error(1)
}

func (m *MockOutlineRepository) Create(ctx context.Context, outline *model.Outline) error {
	args := m.Called(ctx, outline)
	return args.Error(0)
}

func (m *MockOutlineRepository) Update(ctx context.Context, id uuid.UUID, update model.OutlineUpdate) (*model.Outline, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Outline), args.Error(1)
}

func (m *MockOutlineRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOutlineRepository) Reorder(ctx context.Context, orgID uuid.UUID, ids []uuid.UUID) error {
	args := m.Called(ctx, orgID, ids)
	return args.Error(0)
}

// fixClock pins the service clock for the duration of a test.
func fixClock(t interface{ Cleanup(func()) }, at time.Time) {
	previous := now
	now = func() time.Time { return at }
	t.Cleanup(func() { now = previous })
}
