package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson/primitive"

	apperrors "tasklist-project/backend/errors"
	"tasklist-project/backend/models"
)

type TeamServiceTestSuite struct {
	suite.Suite
	users   *fakeUserStore
	teams   *fakeTeamStore
	service *TeamService

	owner  *models.User
	member *models.User
}

func (s *TeamServiceTestSuite) SetupTest() {
	s.users = newFakeUserStore()
	s.teams = newFakeTeamStore()
	s.service = NewTeamService(s.teams, s.users)

	s.owner = s.users.add("Ana", "ana@example.com")
	s.member = s.users.add("Bojan", "bojan@example.com")
}

func (s *TeamServiceTestSuite) createTeam(req CreateTeamRequest) *models.TeamDetails {
	team, err := s.service.CreateTeam(context.Background(), s.owner.ID, req)
	s.Require().NoError(err)
	return team
}

func (s *TeamServiceTestSuite) TestCreateTeam() {
	team := s.createTeam(CreateTeamRequest{
		Name:        "Ops",
		Description: "Infra team",
		Members:     []string{s.owner.ID.Hex(), s.member.ID.Hex()},
	})

	s.Equal("Ops", team.Name)
	s.Equal("Infra team", team.Description)
	s.Equal(s.owner.ID, team.CreatedBy.ID)
	s.Require().Len(team.Members, 2)
	s.Equal(s.owner.ID, team.Members[0].ID)
	s.Equal(s.member.ID, team.Members[1].ID)
}

func (s *TeamServiceTestSuite) TestCreateTeamNameBounds() {
	cases := []struct {
		name  string
		valid bool
	}{
		{"A", false},
		{"Ab", true},
		{strings.Repeat("x", 30), true},
		{strings.Repeat("x", 31), false},
	}

	for _, tc := range cases {
		_, err := s.service.CreateTeam(context.Background(), s.owner.ID, CreateTeamRequest{
			Name:    tc.name,
			Members: []string{s.owner.ID.Hex()},
		})
		if tc.valid {
			s.NoError(err, "name %q should be accepted", tc.name)
		} else {
			s.ErrorIs(err, apperrors.ErrValidation, "name %q should be rejected", tc.name)
		}
	}
}

func (s *TeamServiceTestSuite) TestCreateTeamDescriptionBounds() {
	cases := []struct {
		description string
		valid       bool
	}{
		{"", true},
		{"abcd", false},
		{"abcde", true},
		{strings.Repeat("x", 50), true},
		{strings.Repeat("x", 51), false},
	}

	for _, tc := range cases {
		_, err := s.service.CreateTeam(context.Background(), s.owner.ID, CreateTeamRequest{
			Name:        "Ops",
			Description: tc.description,
			Members:     []string{s.owner.ID.Hex()},
		})
		if tc.valid {
			s.NoError(err, "description of length %d should be accepted", len(tc.description))
		} else {
			s.ErrorIs(err, apperrors.ErrValidation, "description of length %d should be rejected", len(tc.description))
		}
	}
}

func (s *TeamServiceTestSuite) TestCreateTeamRequiresMembers() {
	_, err := s.service.CreateTeam(context.Background(), s.owner.ID, CreateTeamRequest{Name: "Ops"})
	s.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (s *TeamServiceTestSuite) TestCreateTeamUnknownMember() {
	_, err := s.service.CreateTeam(context.Background(), s.owner.ID, CreateTeamRequest{
		Name:    "Ops",
		Members: []string{primitive.NewObjectID().Hex()},
	})
	s.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (s *TeamServiceTestSuite) TestUpdateTeamPartialKeepsOtherFields() {
	team := s.createTeam(CreateTeamRequest{
		Name:        "Ops",
		Description: "Infra team",
		Members:     []string{s.owner.ID.Hex(), s.member.ID.Hex()},
	})

	updated, err := s.service.UpdateTeam(context.Background(), s.owner.ID, team.ID, UpdateTeamRequest{
		Name: strPtr("Ops2"),
	})
	s.Require().NoError(err)

	s.Equal("Ops2", updated.Name)
	s.Equal("Infra team", updated.Description)
	s.Len(updated.Members, 2)
}

func (s *TeamServiceTestSuite) TestUpdateTeamNonOwnerForbidden() {
	team := s.createTeam(CreateTeamRequest{
		Name:    "Ops",
		Members: []string{s.owner.ID.Hex(), s.member.ID.Hex()},
	})

	_, err := s.service.UpdateTeam(context.Background(), s.member.ID, team.ID, UpdateTeamRequest{
		Name: strPtr("Hijacked"),
	})
	s.Require().ErrorIs(err, apperrors.ErrForbidden)

	current, err := s.teams.FindByID(context.Background(), team.ID)
	s.Require().NoError(err)
	s.Equal("Ops", current.Name)
}

func (s *TeamServiceTestSuite) TestUpdateTeamRevalidatesMembers() {
	team := s.createTeam(CreateTeamRequest{
		Name:    "Ops",
		Members: []string{s.owner.ID.Hex()},
	})

	_, err := s.service.UpdateTeam(context.Background(), s.owner.ID, team.ID, UpdateTeamRequest{
		Members: &[]string{},
	})
	s.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (s *TeamServiceTestSuite) TestUpdateTeamNotFound() {
	_, err := s.service.UpdateTeam(context.Background(), s.owner.ID, primitive.NewObjectID(), UpdateTeamRequest{})
	s.Require().ErrorIs(err, apperrors.ErrNotFound)
}

func (s *TeamServiceTestSuite) TestDeleteTeamOwnerOnly() {
	team := s.createTeam(CreateTeamRequest{
		Name:    "Ops",
		Members: []string{s.owner.ID.Hex(), s.member.ID.Hex()},
	})

	err := s.service.DeleteTeam(context.Background(), s.member.ID, team.ID)
	s.Require().ErrorIs(err, apperrors.ErrForbidden)

	s.Require().NoError(s.service.DeleteTeam(context.Background(), s.owner.ID, team.ID))

	err = s.service.DeleteTeam(context.Background(), s.owner.ID, team.ID)
	s.Require().ErrorIs(err, apperrors.ErrNotFound)
}

func (s *TeamServiceTestSuite) TestListTeamsOwnedByNewestFirst() {
	first := s.createTeam(CreateTeamRequest{Name: "Ops", Members: []string{s.owner.ID.Hex()}})
	second := s.createTeam(CreateTeamRequest{Name: "Platform", Members: []string{s.owner.ID.Hex()}})

	teams, err := s.service.ListTeamsOwnedBy(context.Background(), s.owner.ID)
	s.Require().NoError(err)
	s.Require().Len(teams, 2)
	s.Equal(second.ID, teams[0].ID)
	s.Equal(first.ID, teams[1].ID)
}

func (s *TeamServiceTestSuite) TestListTeamsOwnedByExcludesMemberships() {
	s.createTeam(CreateTeamRequest{Name: "Ops", Members: []string{s.member.ID.Hex()}})

	teams, err := s.service.ListTeamsOwnedBy(context.Background(), s.member.ID)
	s.Require().NoError(err)
	s.Empty(teams)
}

func (s *TeamServiceTestSuite) TestListTeamsWithMember() {
	team := s.createTeam(CreateTeamRequest{Name: "Ops", Members: []string{s.member.ID.Hex()}})

	teams, err := s.service.ListTeamsWithMember(context.Background(), s.member.ID)
	s.Require().NoError(err)
	s.Require().Len(teams, 1)
	s.Equal(team.ID, teams[0].ID)
	s.Equal(s.owner.ID, teams[0].CreatedBy.ID)
}

func TestTeamServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TeamServiceTestSuite))
}
