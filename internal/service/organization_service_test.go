package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"workspace/internal/access"
	"workspace/internal/errors"
	"workspace/internal/model"
)

type orgMocks struct {
	organizations *MockOrganizationRepository
	members       *MockMemberRepository
	users         *MockUserRepository
	invitations   *MockInvitationRepository
}

func newOrgMocks() *orgMocks {
	return &orgMocks{
		organizations: new(MockOrganizationRepository),
		members:       new(MockMemberRepository),
		users:         new(MockUserRepository),
		invitations:   new(MockInvitationRepository),
	}
}

func (m *orgMocks) service() OrganizationService {
	return NewOrganizationService(access.NewGate(m.members), m.organizations, m.members, m.users, m.invitations)
}

func (m *orgMocks) assertExpectations(t *testing.T) {
	m.organizations.AssertExpectations(t)
	m.members.AssertExpectations(t)
	m.users.AssertExpectations(t)
	m.invitations.AssertExpectations(t)
}

func TestOrganizationService_Create(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name          string
		orgName       string
		orgSlug       string
		expectedSlug  string
		expectedError bool
	}{
		{name: "slug derived from name", orgName: "Acme Corp", expectedSlug: "acme-corp"},
		{name: "explicit slug kept", orgName: "Acme Corp", orgSlug: "acme", expectedSlug: "acme"},
		{name: "blank name", orgName: "   ", expectedError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newOrgMocks()
			if !tt.expectedError {
				m.organizations.On("CreateWithOwner", mock.Anything, mock.MatchedBy(func(o *model.Organization) bool {
					return o.Slug == tt.expectedSlug
				}), userID).Return(&model.OrganizationMember{UserID: userID, Role: model.RoleOwner}, nil)
			}

			org, err := m.service().Create(context.Background(), userID, tt.orgName, tt.orgSlug)

			if tt.expectedError {
				var validationErr *errors.ValidationError
				assert.ErrorAs(t, err, &validationErr)
				assert.Nil(t, org)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expectedSlug, org.Slug)
			}
			m.assertExpectations(t)
		})
	}
}

func TestOrganizationService_ListMembers_RequiresMembership(t *testing.T) {
	userID, orgID := uuid.New(), uuid.New()
	m := newOrgMocks()
	m.members.On("FindByUserAndOrganization", mock.Anything, userID, orgID).Return(nil, gorm.ErrRecordNotFound)

	members, err := m.service().ListMembers(context.Background(), userID, orgID)

	assert.Equal(t, errors.ErrForbidden, err)
	assert.Nil(t, members)
	m.members.AssertNotCalled(t, "ListByOrganization", mock.Anything, mock.Anything)
}

func TestOrganizationService_InviteMember(t *testing.T) {
	ownerID, orgID := uuid.New(), uuid.New()
	target := &model.User{ID: uuid.New(), Email: "bob@example.com"}
	at := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	fixClock(t, at)
	owner := &model.OrganizationMember{UserID: ownerID, OrganizationID: orgID, Role: model.RoleOwner}

	tests := []struct {
		name          string
		email         string
		setupMock     func(*orgMocks)
		expectedError error
	}{
		{
			name:  "successful invite",
			email: "bob@example.com",
			setupMock: func(m *orgMocks) {
				m.members.On("FindByUserAndOrganization", mock.Anything, ownerID, orgID).Return(owner, nil)
				m.users.On("FindByEmail", mock.Anything, "bob@example.com").Return(target, nil)
				m.members.On("FindByUserAndOrganization", mock.Anything, target.ID, orgID).Return(nil, gorm.ErrRecordNotFound)
				m.invitations.On("FindByEmailAndOrganization", mock.Anything, "bob@example.com", orgID).Return(nil, gorm.ErrRecordNotFound)
				m.invitations.On("Create", mock.Anything, mock.MatchedBy(func(inv *model.Invitation) bool {
					return inv.Role == model.RoleMember && inv.ExpiresAt.Equal(at.Add(7*24*time.Hour)) && inv.Token != ""
				})).Return(nil)
			},
		},
		{
			name:  "caller is a plain member",
			email: "bob@example.com",
			setupMock: func(m *orgMocks) {
				m.members.On("FindByUserAndOrganization", mock.Anything, ownerID, orgID).
					Return(&model.OrganizationMember{Role: model.RoleMember}, nil)
			},
			expectedError: errors.ErrOwnerRequired,
		},
		{
			name:  "caller is not a member",
			email: "bob@example.com",
			setupMock: func(m *orgMocks) {
				m.members.On("FindByUserAndOrganization", mock.Anything, ownerID, orgID).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrForbidden,
		},
		{
			name:  "unregistered email",
			email: "ghost@example.com",
			setupMock: func(m *orgMocks) {
				m.members.On("FindByUserAndOrganization", mock.Anything, ownerID, orgID).Return(owner, nil)
				m.users.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrUserNotFound,
		},
		{
			name:  "already a member",
			email: "bob@example.com",
			setupMock: func(m *orgMocks) {
				m.members.On("FindByUserAndOrganization", mock.Anything, ownerID, orgID).Return(owner, nil)
				m.users.On("FindByEmail", mock.Anything, "bob@example.com").Return(target, nil)
				m.members.On("FindByUserAndOrganization", mock.Anything, target.ID, orgID).
					Return(&model.OrganizationMember{Role: model.RoleMember}, nil)
			},
			expectedError: errors.ErrAlreadyMember,
		},
		{
			name:  "invitation already pending",
			email: "bob@example.com",
			setupMock: func(m *orgMocks) {
				m.members.On("FindByUserAndOrganization", mock.Anything, ownerID, orgID).Return(owner, nil)
				m.users.On("FindByEmail", mock.Anything, "bob@example.com").Return(target, nil)
				m.members.On("FindByUserAndOrganization", mock.Anything, target.ID, orgID).Return(nil, gorm.ErrRecordNotFound)
				m.invitations.On("FindByEmailAndOrganization", mock.Anything, "bob@example.com", orgID).
					Return(&model.Invitation{Email: "bob@example.com"}, nil)
			},
			expectedError: errors.ErrInvitationExists,
		},
		{
			name:  "concurrent invite hits unique index",
			email: "bob@example.com",
			setupMock: func(m *orgMocks) {
				m.members.On("FindByUserAndOrganization", mock.Anything, ownerID, orgID).Return(owner, nil)
				m.users.On("FindByEmail", mock.Anything, "bob@example.com").Return(target, nil)
				m.members.On("FindByUserAndOrganization", mock.Anything, target.ID, orgID).Return(nil, gorm.ErrRecordNotFound)
				m.invitations.On("FindByEmailAndOrganization", mock.Anything, "bob@example.com", orgID).Return(nil, gorm.ErrRecordNotFound)
				m.invitations.On("Create", mock.Anything, mock.Anything).Return(gorm.ErrDuplicatedKey)
			},
			expectedError: errors.ErrInvitationExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newOrgMocks()
			tt.setupMock(m)

			invitation, err := m.service().InviteMember(context.Background(), ownerID, orgID, tt.email)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, invitation)
			} else {
				require.NoError(t, err)
				assert.Equal(t, orgID, invitation.OrganizationID)
				assert.Equal(t, tt.email, invitation.Email)
			}
			m.assertExpectations(t)
		})
	}
}

func TestOrganizationService_InviteMember_InvalidEmail(t *testing.T) {
	ownerID, orgID := uuid.New(), uuid.New()
	m := newOrgMocks()
	m.members.On("FindByUserAndOrganization", mock.Anything, ownerID, orgID).
		Return(&model.OrganizationMember{Role: model.RoleOwner}, nil)

	_, err := m.service().InviteMember(context.Background(), ownerID, orgID, "not-an-email")

	var validationErr *errors.ValidationError
	assert.ErrorAs(t, err, &validationErr)
	m.users.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
}

func TestOrganizationService_RemoveMember(t *testing.T) {
	ownerID, orgID := uuid.New(), uuid.New()
	memberID := uuid.New()
	owner := &model.OrganizationMember{ID: uuid.New(), UserID: ownerID, OrganizationID: orgID, Role: model.RoleOwner}

	tests := []struct {
		name          string
		memberID      string
		setupMock     func(*orgMocks)
		expectedError error
		validation    bool
	}{
		{
			name:     "successful removal",
			memberID: memberID.String(),
			setupMock: func(m *orgMocks) {
				m.members.On("FindByUserAndOrganization", mock.Anything, ownerID, orgID).Return(owner, nil)
				m.members.On("FindByIDInOrganization", mock.Anything, memberID, orgID).
					Return(&model.OrganizationMember{ID: memberID, Role: model.RoleMember}, nil)
				m.members.On("Delete", mock.Anything, memberID).Return(nil)
			},
		},
		{
			name:       "missing member id checked before ownership",
			memberID:   "",
			setupMock:  func(m *orgMocks) {},
			validation: true,
		},
		{
			name:     "caller is a plain member",
			memberID: memberID.String(),
			setupMock: func(m *orgMocks) {
				m.members.On("FindByUserAndOrganization", mock.Anything, ownerID, orgID).
					Return(&model.OrganizationMember{Role: model.RoleMember}, nil)
			},
			expectedError: errors.ErrOwnerRequired,
		},
		{
			name:     "member of another organization",
			memberID: memberID.String(),
			setupMock: func(m *orgMocks) {
				m.members.On("FindByUserAndOrganization", mock.Anything, ownerID, orgID).Return(owner, nil)
				m.members.On("FindByIDInOrganization", mock.Anything, memberID, orgID).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrMemberNotFound,
		},
		{
			name:     "malformed member id",
			memberID: "nope",
			setupMock: func(m *orgMocks) {
				m.members.On("FindByUserAndOrganization", mock.Anything, ownerID, orgID).Return(owner, nil)
			},
			expectedError: errors.ErrMemberNotFound,
		},
		{
			name:     "owner cannot be removed",
			memberID: owner.ID.String(),
			setupMock: func(m *orgMocks) {
				m.members.On("FindByUserAndOrganization", mock.Anything, ownerID, orgID).Return(owner, nil)
				m.members.On("FindByIDInOrganization", mock.Anything, owner.ID, orgID).Return(owner, nil)
			},
			expectedError: errors.ErrCannotRemoveOwner,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newOrgMocks()
			tt.setupMock(m)

			err := m.service().RemoveMember(context.Background(), ownerID, orgID, tt.memberID)

			switch {
			case tt.validation:
				var validationErr *errors.ValidationError
				assert.ErrorAs(t, err, &validationErr)
			case tt.expectedError != nil:
				assert.Equal(t, tt.expectedError, err)
			default:
				assert.NoError(t, err)
			}
			m.members.AssertNotCalled(t, "Delete", mock.Anything, owner.ID)
			m.assertExpectations(t)
		})
	}
}
